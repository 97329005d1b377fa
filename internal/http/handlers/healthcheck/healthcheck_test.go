package healthcheck

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		wantCode int
		wantBody string
	}{
		{name: "healthy", wantCode: http.StatusOK, wantBody: `{"status":"OK","data":{"status":"ok"}}`},
		{name: "storage down", pingErr: errors.New("refused"), wantCode: http.StatusServiceUnavailable, wantBody: `{"status":"Error","error":"storage unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var deadlineSet bool
			h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), pingerFunc(func(ctx context.Context) error {
				_, deadlineSet = ctx.Deadline()
				return tt.pingErr
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.True(t, deadlineSet)
		})
	}
}
