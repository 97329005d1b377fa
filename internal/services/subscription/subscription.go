// Package services содержит бизнес-логику тарифных планов и абонементов
// с кешированием списка планов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/cache"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/metrics"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// SubscriptionRepository определяет методы для работы с планами и абонементами в хранилище.
type SubscriptionRepository interface {
	// CreatePlan сохраняет тарифный план.
	CreatePlan(ctx context.Context, plan models.SubscriptionPlan) (*models.SubscriptionPlan, error)
	// ListPlans возвращает все тарифные планы.
	ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error)
	// RegisterUserSubscription атомарно оформляет абонемент.
	RegisterUserSubscription(ctx context.Context, userID, planID int, now time.Time) (*models.UserSubscription, error)
	// ListUserSubscriptions возвращает абонементы пользователя.
	ListUserSubscriptions(ctx context.Context, userID int) ([]*models.UserSubscription, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// VersionedKey возвращает ключ текущего поколения пространства имён.
	VersionedKey(ctx context.Context, ns string) (string, error)
	// Invalidate переводит пространства имён на новое поколение.
	Invalidate(ctx context.Context, namespaces ...string) error
}

// SubscriptionService реализует бизнес-логику планов и абонементов.
type SubscriptionService struct {
	repo     SubscriptionRepository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreatePlan проверяет длительность (1–60 месяцев) и цену, сохраняет план
// и сбрасывает кеш списка планов.
func (s *SubscriptionService) CreatePlan(ctx context.Context, req models.CreatePlanRequest) (*models.SubscriptionPlan, error) {
	const op = "services.subscription.CreatePlan"

	if req.DurationMonths < models.MinDurationMonths || req.DurationMonths > models.MaxDurationMonths {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidDuration)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidPrice)
	}

	plan, err := s.repo.CreatePlan(ctx, models.SubscriptionPlan{
		Name:         req.PlanName,
		DurationDays: req.DurationMonths * models.DaysPerMonth,
		Price:        req.Price,
		Description:  req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created subscription plan", slog.Int("id", plan.ID), slog.Int("duration_days", plan.DurationDays))
	if err := s.cache.Invalidate(ctx, cache.KeyPlans); err != nil {
		s.log.Warn("failed to invalidate plans cache", sl.Err(err))
	}
	return plan, nil
}

// ListPlans возвращает тарифные планы из кеша или хранилища.
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	const op = "services.subscription.ListPlans"

	key, err := s.cache.VersionedKey(ctx, cache.KeyPlans)
	if err != nil {
		s.log.Warn("failed to resolve plans cache key", sl.Err(err))
		plans, err := s.repo.ListPlans(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return plans, nil
	}

	var plans []*models.SubscriptionPlan
	found, err := s.cache.Get(ctx, key, &plans)
	if err != nil {
		s.log.Warn("failed to read plans from cache", sl.Err(err))
	}
	if found {
		return plans, nil
	}

	plans, err = s.repo.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, plans, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache plans", sl.Err(err))
	}
	return plans, nil
}

// RegisterUserSubscription оформляет абонемент userID по плану planID, начиная с текущего момента.
func (s *SubscriptionService) RegisterUserSubscription(ctx context.Context, userID, planID int) (*models.UserSubscription, error) {
	const op = "services.subscription.RegisterUserSubscription"

	sub, err := s.repo.RegisterUserSubscription(ctx, userID, planID, s.now())
	metrics.SubscriptionRegistrations.WithLabelValues(registrationResult(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered user subscription",
		slog.Int("user_id", userID),
		slog.Int("plan_id", planID),
		slog.Time("end_date", sub.EndDate))
	return sub, nil
}

// ListUserSubscriptions возвращает абонементы пользователя.
func (s *SubscriptionService) ListUserSubscriptions(ctx context.Context, userID int) ([]*models.UserSubscription, error) {
	const op = "services.subscription.ListUserSubscriptions"

	subs, err := s.repo.ListUserSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

func registrationResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, models.ErrActiveSubscription), errors.Is(err, models.ErrAlreadySubscribed):
		return metrics.ResultConflict
	case errors.Is(err, models.ErrPlanNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}
