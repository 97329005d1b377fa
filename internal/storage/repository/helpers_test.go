package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/migrations"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("gym"),
		postgres.WithUsername("gym"),
		postgres.WithPassword("gym"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)

	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, filepath.Join(root, "migrations")))

	t.Cleanup(func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	return storage
}

// testDataFactory создаёт тестовые записи.
type testDataFactory struct {
	storage *Storage
}

func (f *testDataFactory) user(t *testing.T, username, role string) *models.User {
	t.Helper()
	u, err := f.storage.CreateUser(context.Background(), models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func (f *testDataFactory) plan(t *testing.T, name string, months int) *models.SubscriptionPlan {
	t.Helper()
	p, err := f.storage.CreatePlan(context.Background(), models.SubscriptionPlan{
		Name:         name,
		DurationDays: months * models.DaysPerMonth,
		Price:        29.99,
	})
	require.NoError(t, err)
	return p
}

func (f *testDataFactory) class(t *testing.T, trainerID *int, maxCapacity int) *models.WorkoutClass {
	t.Helper()
	c, err := f.storage.CreateClass(context.Background(), models.WorkoutClass{
		Name:        "Yoga",
		DateTime:    time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
		TrainerID:   trainerID,
		MaxCapacity: maxCapacity,
	})
	require.NoError(t, err)
	return c
}

func (f *testDataFactory) capacity(t *testing.T, classID int) int {
	t.Helper()
	var n int
	require.NoError(t, f.storage.DB.QueryRow(
		`SELECT current_capacity FROM workout_classes WHERE id = $1`, classID).Scan(&n))
	return n
}
