package dashboard

import (
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

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) User(ctx context.Context, user *models.User) (*models.UserDashboard, error) {
	args := m.Called(ctx, user)
	res, _ := args.Get(0).(*models.UserDashboard)
	return res, args.Error(1)
}

func (m *ServiceMock) Admin(ctx context.Context, user *models.User) (*models.AdminDashboard, error) {
	args := m.Called(ctx, user)
	res, _ := args.Get(0).(*models.AdminDashboard)
	return res, args.Error(1)
}

func (m *ServiceMock) Trainer(ctx context.Context, user *models.User) (*models.TrainerDashboard, error) {
	args := m.Called(ctx, user)
	res, _ := args.Get(0).(*models.TrainerDashboard)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	if user != nil {
		ctx = middlewarectx.WithUser(ctx, user)
	}
	return req.WithContext(ctx)
}

func TestHandler_User(t *testing.T) {
	user := &models.User{ID: 3, Username: "alice", Email: "a@x.io", Role: models.RoleUser}
	trainer := models.UserResponse{ID: 9, Username: "coach", Role: models.RoleTrainer}

	svc := new(ServiceMock)
	svc.On("User", mock.Anything, user).Return(&models.UserDashboard{
		User:              models.NewUserResponse(user),
		Subscriptions:     []models.PlanResponse{{ID: 1, Name: "Gold", DurationDays: 90}},
		UserSubscriptions: []models.UserSubscriptionResponse{},
		Attendance:        []models.AttendanceResponse{{ID: 1, UserID: 3, Date: "2024-05-07", Attended: true}},
		TrainerDetails:    &trainer,
		Classes:           []models.ClassResponse{},
		RSVPs:             []models.RSVPResponse{},
	}, nil).Once()

	rec := httptest.NewRecorder()
	New(newNoopLogger(), svc).User(rec, newRequest(user))

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	assert.Equal(t, "alice", got["user"].(map[string]any)["username"])
	assert.Equal(t, "coach", got["trainer_details"].(map[string]any)["username"])
	assert.Len(t, got["subscriptions"], 1)
	assert.Len(t, got["attendance"], 1)
	assert.NotContains(t, got["user"], "password_hash")
	svc.AssertExpectations(t)
}

func TestHandler_Admin(t *testing.T) {
	admin := &models.User{ID: 1, Username: "root", Role: models.RoleAdmin}

	svc := new(ServiceMock)
	svc.On("Admin", mock.Anything, admin).Return(&models.AdminDashboard{
		User:          models.NewUserResponse(admin),
		Users:         []models.UserResponse{{ID: 1}, {ID: 2}},
		Trainers:      []models.UserResponse{{ID: 2}},
		Subscriptions: []models.PlanResponse{},
		Stats:         models.AdminStats{UserCount: 2, TrainerCount: 1},
	}, nil).Once()

	rec := httptest.NewRecorder()
	New(newNoopLogger(), svc).Admin(rec, newRequest(admin))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.AdminDashboard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 2, got.Stats.UserCount)
	assert.Equal(t, 1, got.Stats.TrainerCount)
	assert.Equal(t, 0, got.Stats.SubscriptionCount)
	svc.AssertExpectations(t)
}

func TestHandler_Trainer(t *testing.T) {
	trainer := &models.User{ID: 2, Username: "coach", Role: models.RoleTrainer}

	tests := []struct {
		name     string
		mockResp *models.TrainerDashboard
		mockErr  error
		wantCode int
	}{
		{
			name: "success",
			mockResp: &models.TrainerDashboard{
				User:         models.NewUserResponse(trainer),
				Classes:      []models.ClassResponse{},
				TrainedUsers: []models.UserResponse{},
				ClassStats:   []models.ClassStat{{Name: "Yoga", AttendanceCount: 4}},
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "service failure",
			mockErr:  errors.New("db down"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Trainer", mock.Anything, trainer).Return(tt.mockResp, tt.mockErr).Once()

			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).Trainer(rec, newRequest(trainer))

			assert.Equal(t, tt.wantCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.mockErr != nil {
				assert.Equal(t, "internal server error", got["error"])
			} else {
				stats := got["class_stats"].([]any)
				require.Len(t, stats, 1)
				assert.EqualValues(t, 4, stats[0].(map[string]any)["attendance_count"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_NoUserInContext(t *testing.T) {
	svc := new(ServiceMock)
	rec := httptest.NewRecorder()

	New(newNoopLogger(), svc).User(rec, newRequest(nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "User", mock.Anything, mock.Anything)
}
