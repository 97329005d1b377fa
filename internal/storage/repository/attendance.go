package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// MarkAttendance отмечает посещение пользователя за календарный день date.
// Повторная отметка за тот же день возвращает существующую запись.
func (s *Storage) MarkAttendance(ctx context.Context, userID int, date time.Time) (*models.Attendance, error) {
	const op = "storage.MarkAttendance"

	query := `INSERT INTO attendances (user_id, date, attended)
			  VALUES ($1, $2::date, TRUE)
			  ON CONFLICT (user_id, date) DO UPDATE SET attended = TRUE
			  RETURNING id, user_id, date, attended`
	var a models.Attendance
	err := s.DB.QueryRowContext(ctx, query, userID, date.Format(models.DateLayout)).
		Scan(&a.ID, &a.UserID, &a.Date, &a.Attended)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

// ListAttendance возвращает отметки посещения пользователя по датам.
func (s *Storage) ListAttendance(ctx context.Context, userID int) ([]*models.Attendance, error) {
	const op = "storage.ListAttendance"

	query := `SELECT id, user_id, date, attended
			  FROM attendances
			  WHERE user_id = $1
			  ORDER BY date`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.UserID, &a.Date, &a.Attended); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
