// Package services содержит бизнес-логику групповых занятий и записи на них.
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

// ClassRepository определяет методы для работы с занятиями в хранилище.
type ClassRepository interface {
	CreateClass(ctx context.Context, class models.WorkoutClass) (*models.WorkoutClass, error)
	ListClasses(ctx context.Context) ([]*models.WorkoutClass, error)
	ListClassesByTrainer(ctx context.Context, trainerID int) ([]*models.WorkoutClass, error)
	ReserveClassSpot(ctx context.Context, userID, classID int) (*models.ClassRSVP, error)
	ListRSVPsByUser(ctx context.Context, userID int) ([]*models.ClassRSVP, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	VersionedKey(ctx context.Context, ns string) (string, error)
	Invalidate(ctx context.Context, namespaces ...string) error
}

// ClassService реализует создание занятий и запись на них.
type ClassService struct {
	repo     ClassRepository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewClassService создает новый экземпляр ClassService.
func NewClassService(repo ClassRepository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *ClassService {
	return &ClassService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// CreateClass создаёт занятие, которое ведёт trainerID.
// Без указанной вместимости используется models.DefaultMaxCapacity.
func (s *ClassService) CreateClass(ctx context.Context, trainerID int, req models.CreateClassRequest) (*models.WorkoutClass, error) {
	const op = "services.classes.CreateClass"

	maxCapacity := models.DefaultMaxCapacity
	if req.MaxCapacity != nil {
		maxCapacity = *req.MaxCapacity
	}

	class, err := s.repo.CreateClass(ctx, models.WorkoutClass{
		Name:        req.Name,
		DateTime:    req.DateTime.UTC(),
		Description: req.Description,
		TrainerID:   &trainerID,
		MaxCapacity: maxCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created workout class", slog.Int("id", class.ID), slog.Int("trainer_id", trainerID))
	s.invalidate(ctx)
	return class, nil
}

// ListClasses возвращает все занятия из кеша или хранилища.
func (s *ClassService) ListClasses(ctx context.Context) ([]*models.WorkoutClass, error) {
	const op = "services.classes.ListClasses"

	// ключ берётся до чтения хранилища: снимок, прочитанный до RSVP,
	// попадёт в уже сброшенное поколение
	key, err := s.cache.VersionedKey(ctx, cache.KeyClasses)
	if err != nil {
		s.log.Warn("failed to resolve classes cache key", sl.Err(err))
		classes, err := s.repo.ListClasses(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return classes, nil
	}

	var classes []*models.WorkoutClass
	found, err := s.cache.Get(ctx, key, &classes)
	if err != nil {
		s.log.Warn("failed to read classes from cache", sl.Err(err))
	}
	if found {
		return classes, nil
	}

	classes, err = s.repo.ListClasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, classes, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache classes", sl.Err(err))
	}
	return classes, nil
}

// ListTrainerClasses возвращает занятия тренера.
func (s *ClassService) ListTrainerClasses(ctx context.Context, trainerID int) ([]*models.WorkoutClass, error) {
	const op = "services.classes.ListTrainerClasses"

	classes, err := s.repo.ListClassesByTrainer(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return classes, nil
}

// RSVP записывает пользователя на занятие, занимая одно место.
func (s *ClassService) RSVP(ctx context.Context, userID, classID int) (*models.ClassRSVP, error) {
	const op = "services.classes.RSVP"

	rsvp, err := s.repo.ReserveClassSpot(ctx, userID, classID)
	metrics.RSVPs.WithLabelValues(rsvpResult(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("class rsvp accepted", slog.Int("user_id", userID), slog.Int("class_id", classID))
	s.invalidate(ctx)
	return rsvp, nil
}

// ListRSVPs возвращает записи пользователя на занятия.
func (s *ClassService) ListRSVPs(ctx context.Context, userID int) ([]*models.ClassRSVP, error) {
	const op = "services.classes.ListRSVPs"

	rsvps, err := s.repo.ListRSVPsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rsvps, nil
}

func (s *ClassService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.KeyClasses); err != nil {
		s.log.Warn("failed to invalidate classes cache", sl.Err(err))
	}
}

func rsvpResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, models.ErrClassFull):
		return metrics.ResultConflict
	case errors.Is(err, models.ErrClassNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}
