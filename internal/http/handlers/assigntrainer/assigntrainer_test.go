package assigntrainer

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

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) AssignTrainer(ctx context.Context, userID, trainerID int) error {
	return m.Called(ctx, userID, trainerID).Error(0)
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		callService bool
		mockErr     error
		wantCode    int
		wantKey     string
		wantValue   string
	}{
		{
			name:        "assigned",
			body:        `{"user_id":3,"trainer_id":2}`,
			callService: true,
			wantCode:    http.StatusOK,
			wantKey:     "message",
			wantValue:   "Trainer assigned successfully",
		},
		{
			name:        "user missing",
			body:        `{"user_id":3,"trainer_id":2}`,
			callService: true,
			mockErr:     models.ErrUserNotFound,
			wantCode:    http.StatusNotFound,
			wantKey:     "error",
			wantValue:   "User or trainer not found",
		},
		{
			name:        "trainer missing",
			body:        `{"user_id":3,"trainer_id":2}`,
			callService: true,
			mockErr:     models.ErrTrainerNotFound,
			wantCode:    http.StatusNotFound,
			wantKey:     "error",
			wantValue:   "User or trainer not found",
		},
		{
			name:        "target not trainer",
			body:        `{"user_id":3,"trainer_id":2}`,
			callService: true,
			mockErr:     models.ErrNotTrainer,
			wantCode:    http.StatusBadRequest,
			wantKey:     "error",
			wantValue:   "Selected user is not a trainer",
		},
		{
			name:        "already assigned",
			body:        `{"user_id":3,"trainer_id":2}`,
			callService: true,
			mockErr:     models.ErrTrainerAlreadyAssigned,
			wantCode:    http.StatusConflict,
			wantKey:     "error",
			wantValue:   "Trainer already assigned to this user",
		},
		{
			name:        "failure",
			body:        `{"user_id":3,"trainer_id":2}`,
			callService: true,
			mockErr:     errors.New("db down"),
			wantCode:    http.StatusInternalServerError,
			wantKey:     "error",
			wantValue:   "internal server error",
		},
		{
			name:      "missing trainer id",
			body:      `{"user_id":3}`,
			wantCode:  http.StatusBadRequest,
			wantKey:   "error",
			wantValue: "field TrainerID is a required field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callService {
				svc.On("AssignTrainer", mock.Anything, 3, 2).Return(tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/assign-trainer", bytes.NewBufferString(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantValue, got[tt.wantKey])
			svc.AssertExpectations(t)
		})
	}
}
