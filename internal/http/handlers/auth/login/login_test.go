package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	args := m.Called(ctx, username, password)
	resp, _ := args.Get(0).(*models.TokenResponse)
	return resp, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		callService    bool
		mockResp       *models.TokenResponse
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "valid login",
			requestBody:    `{"username":"alice","password":"secret1"}`,
			callService:    true,
			mockResp:       &models.TokenResponse{AccessToken: "tok", Role: models.RoleAdmin},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid json",
			requestBody:    `{"username":`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "missing password",
			requestBody:    `{"username":"alice"}`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Missing username or password",
		},
		{
			name:           "missing username",
			requestBody:    `{"password":"secret1"}`,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Missing username or password",
		},
		{
			name:           "invalid credentials",
			requestBody:    `{"username":"alice","password":"wrong"}`,
			callService:    true,
			mockErr:        models.ErrInvalidCredentials,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "Invalid credentials",
		},
		{
			name:           "unexpected failure",
			requestBody:    `{"username":"alice","password":"secret1"}`,
			callService:    true,
			mockErr:        errors.New("connection refused"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), authMock)

			if tt.callService {
				authMock.On("Login", mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(tt.requestBody))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
				assert.Nil(t, got["access_token"])
			} else {
				assert.Equal(t, "tok", got["access_token"])
				assert.Equal(t, models.RoleAdmin, got["role"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
