package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/cache"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateClass(ctx context.Context, class models.WorkoutClass) (*models.WorkoutClass, error) {
	args := m.Called(ctx, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkoutClass), args.Error(1)
}
func (m *RepoMock) ListClasses(ctx context.Context) ([]*models.WorkoutClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WorkoutClass), args.Error(1)
}
func (m *RepoMock) ListClassesByTrainer(ctx context.Context, trainerID int) ([]*models.WorkoutClass, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WorkoutClass), args.Error(1)
}
func (m *RepoMock) ReserveClassSpot(ctx context.Context, userID, classID int) (*models.ClassRSVP, error) {
	args := m.Called(ctx, userID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClassRSVP), args.Error(1)
}
func (m *RepoMock) ListRSVPsByUser(ctx context.Context, userID int) ([]*models.ClassRSVP, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ClassRSVP), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}
func (m *CacheMock) VersionedKey(ctx context.Context, ns string) (string, error) {
	args := m.Called(ctx, ns)
	return args.String(0), args.Error(1)
}
func (m *CacheMock) Invalidate(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassService_CreateClass(t *testing.T) {
	at := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	six := 6

	tests := []struct {
		name         string
		req          models.CreateClassRequest
		wantCapacity int
	}{
		{name: "default capacity", req: models.CreateClassRequest{Name: "Yoga", DateTime: at}, wantCapacity: 10},
		{name: "explicit capacity", req: models.CreateClassRequest{Name: "HIIT", DateTime: at, MaxCapacity: &six}, wantCapacity: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(RepoMock)
			c := new(CacheMock)
			r.On("CreateClass", mock.Anything, mock.MatchedBy(func(wc models.WorkoutClass) bool {
				return wc.MaxCapacity == tt.wantCapacity && wc.CurrentCapacity == 0 &&
					wc.TrainerID != nil && *wc.TrainerID == 4 && wc.Name == tt.req.Name
			})).Return(&models.WorkoutClass{ID: 1, Name: tt.req.Name, MaxCapacity: tt.wantCapacity}, nil).Once()
			c.On("Invalidate", mock.Anything, []string{cache.KeyClasses}).Return(nil).Once()

			got, err := NewClassService(r, c, time.Minute, newNoopLogger()).CreateClass(context.Background(), 4, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCapacity, got.MaxCapacity)
			r.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestClassService_ListClasses(t *testing.T) {
	classes := []*models.WorkoutClass{{ID: 1, Name: "Yoga"}}
	key := cache.KeyClasses + ":v3"

	t.Run("cache miss", func(t *testing.T) {
		r := new(RepoMock)
		c := new(CacheMock)
		c.On("VersionedKey", mock.Anything, cache.KeyClasses).Return(key, nil).Once()
		c.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		r.On("ListClasses", mock.Anything).Return(classes, nil).Once()
		c.On("Set", mock.Anything, key, classes, time.Minute).Return(nil).Once()

		got, err := NewClassService(r, c, time.Minute, newNoopLogger()).ListClasses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, classes, got)
	})

	t.Run("cache hit", func(t *testing.T) {
		r := new(RepoMock)
		c := new(CacheMock)
		c.On("VersionedKey", mock.Anything, cache.KeyClasses).Return(key, nil).Once()
		c.On("Get", mock.Anything, key, mock.Anything).Run(func(args mock.Arguments) {
			*args.Get(2).(*[]*models.WorkoutClass) = classes
		}).Return(true, nil).Once()

		got, err := NewClassService(r, c, time.Minute, newNoopLogger()).ListClasses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, classes, got)
		r.AssertNotCalled(t, "ListClasses", mock.Anything)
	})

	t.Run("unknown generation bypasses cache", func(t *testing.T) {
		r := new(RepoMock)
		c := new(CacheMock)
		c.On("VersionedKey", mock.Anything, cache.KeyClasses).Return("", errors.New("redis down")).Once()
		r.On("ListClasses", mock.Anything).Return(classes, nil).Once()

		got, err := NewClassService(r, c, time.Minute, newNoopLogger()).ListClasses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, classes, got)
		c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
		c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestClassService_RSVP(t *testing.T) {
	tests := []struct {
		name           string
		repoErr        error
		wantInvalidate bool
	}{
		{name: "success", wantInvalidate: true},
		{name: "class full", repoErr: models.ErrClassFull},
		{name: "class missing", repoErr: models.ErrClassNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(RepoMock)
			c := new(CacheMock)
			if tt.repoErr != nil {
				r.On("ReserveClassSpot", mock.Anything, 2, 8).Return(nil, tt.repoErr).Once()
			} else {
				r.On("ReserveClassSpot", mock.Anything, 2, 8).
					Return(&models.ClassRSVP{ID: 1, UserID: 2, ClassID: 8, Attending: true}, nil).Once()
			}
			if tt.wantInvalidate {
				c.On("Invalidate", mock.Anything, []string{cache.KeyClasses}).Return(errors.New("redis down")).Once()
			}

			got, err := NewClassService(r, c, time.Minute, newNoopLogger()).RSVP(context.Background(), 2, 8)
			if tt.repoErr != nil {
				assert.ErrorIs(t, err, tt.repoErr)
				c.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.True(t, got.Attending)
			}
			r.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestRsvpResult(t *testing.T) {
	assert.Equal(t, "success", rsvpResult(nil))
	assert.Equal(t, "conflict", rsvpResult(models.ErrClassFull))
	assert.Equal(t, "not_found", rsvpResult(models.ErrClassNotFound))
	assert.Equal(t, "error", rsvpResult(errors.New("boom")))
}
