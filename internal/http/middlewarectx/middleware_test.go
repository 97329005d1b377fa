package middlewarectx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/metrics"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type RecorderMock struct{ mock.Mock }

func (m *RecorderMock) Record(ctx context.Context, ev models.AuditEvent) {
	m.Called(ctx, ev)
}

func TestCORS(t *testing.T) {
	h := middlewarectx.CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Authorization")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	h := middlewarectx.RateLimitMiddleware(newNoopLogger(), 0.0001, 2)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/login", nil))
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestAuditAndMetrics(t *testing.T) {
	rec := new(RecorderMock)
	auth := new(AuthMock)
	auth.On("Authenticate", mock.Anything, "good").
		Return(&models.User{ID: 3, Role: models.RoleUser}, nil)

	r := chi.NewRouter()
	r.Use(middlewarectx.Metrics, middlewarectx.Audit(rec))
	r.Get("/public/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(auth, newNoopLogger()))
		r.Post("/api/rsvp", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	rec.On("Record", mock.Anything, mock.MatchedBy(func(ev models.AuditEvent) bool {
		return ev.ActorID == 3 && ev.Role == models.RoleUser && ev.Action == "POST /api/rsvp" &&
			ev.Status == http.StatusOK && ev.Outcome == models.OutcomeSuccess
	})).Once()
	rec.On("Record", mock.Anything, mock.MatchedBy(func(ev models.AuditEvent) bool {
		return ev.ActorID == 0 && ev.Action == "GET /public/{id}" &&
			ev.Status == http.StatusTeapot && ev.Outcome == models.OutcomeFailure
	})).Once()

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/public/{id}", "418"))

	req := httptest.NewRequest(http.MethodPost, "/api/rsvp", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/public/15", nil))

	rec.AssertExpectations(t)
	after := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/public/{id}", "418"))
	require.InDelta(t, before+1, after, 1e-9)
}

func TestRecoverer(t *testing.T) {
	t.Run("panic becomes json 500", func(t *testing.T) {
		h := middlewarectx.Recoverer(newNoopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		rr := httptest.NewRecorder()

		require.NotPanics(t, func() {
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
		})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"internal server error"}`, rr.Body.String())
	})

	t.Run("no panic passes through", func(t *testing.T) {
		h := middlewarectx.Recoverer(newNoopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/classes", nil))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, 0, rr.Body.Len())
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		h := middlewarectx.Recoverer(newNoopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
