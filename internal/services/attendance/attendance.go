// Package services содержит учёт посещений.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// AttendanceRepository определяет методы хранения посещений.
type AttendanceRepository interface {
	MarkAttendance(ctx context.Context, userID int, date time.Time) (*models.Attendance, error)
	ListAttendance(ctx context.Context, userID int) ([]*models.Attendance, error)
}

// AttendanceService отмечает и перечисляет посещения.
type AttendanceService struct {
	repo AttendanceRepository
	now  func() time.Time
}

// NewAttendanceService создает новый экземпляр AttendanceService.
func NewAttendanceService(repo AttendanceRepository) *AttendanceService {
	return &AttendanceService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Mark отмечает посещение за текущий день (UTC).
func (s *AttendanceService) Mark(ctx context.Context, userID int) (*models.Attendance, error) {
	const op = "services.attendance.Mark"

	a, err := s.repo.MarkAttendance(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// List возвращает посещения пользователя.
func (s *AttendanceService) List(ctx context.Context, userID int) ([]*models.Attendance, error) {
	const op = "services.attendance.List"

	items, err := s.repo.ListAttendance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
