// Package services содержит работу с профилем здоровья пользователя.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// HealthRepository определяет методы хранения профилей здоровья.
type HealthRepository interface {
	GetHealthProfile(ctx context.Context, userID int) (*models.HealthProfile, error)
	UpsertHealthProfile(ctx context.Context, userID int, patch models.HealthProfilePatch) (*models.HealthProfile, error)
}

// HealthService читает и обновляет профиль здоровья.
type HealthService struct {
	repo HealthRepository
	log  *slog.Logger
}

// NewHealthService создает новый экземпляр HealthService.
func NewHealthService(repo HealthRepository, log *slog.Logger) *HealthService {
	return &HealthService{repo: repo, log: log}
}

// Get возвращает профиль пользователя или models.ErrProfileNotFound.
func (s *HealthService) Get(ctx context.Context, userID int) (*models.HealthProfile, error) {
	const op = "services.health.Get"

	p, err := s.repo.GetHealthProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Patch создаёт профиль при первом обращении и применяет изменения.
func (s *HealthService) Patch(ctx context.Context, userID int, patch models.HealthProfilePatch) (*models.HealthProfile, error) {
	const op = "services.health.Patch"

	p, err := s.repo.UpsertHealthProfile(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("health profile updated", slog.Int("user_id", userID), slog.Bool("has_bmi", p.BMI != nil))
	return p, nil
}
