package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

const classColumns = `id, name, date_time, description, trainer_id, max_capacity, current_capacity`

func scanClass(row rowScanner) (*models.WorkoutClass, error) {
	var (
		c         models.WorkoutClass
		trainerID sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.DateTime, &c.Description, &trainerID,
		&c.MaxCapacity, &c.CurrentCapacity); err != nil {
		return nil, err
	}
	if trainerID.Valid {
		id := int(trainerID.Int64)
		c.TrainerID = &id
	}
	return &c, nil
}

// CreateClass сохраняет занятие и возвращает его с присвоенным ID.
func (s *Storage) CreateClass(ctx context.Context, class models.WorkoutClass) (*models.WorkoutClass, error) {
	const op = "storage.CreateClass"

	query := `INSERT INTO workout_classes (name, date_time, description, trainer_id, max_capacity, current_capacity)
			  VALUES ($1, $2, $3, $4, $5, 0)
			  RETURNING ` + classColumns
	c, err := scanClass(s.DB.QueryRowContext(ctx, query,
		class.Name, class.DateTime, class.Description, class.TrainerID, class.MaxCapacity))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrTrainerNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// ListClasses возвращает все занятия по времени проведения.
func (s *Storage) ListClasses(ctx context.Context) ([]*models.WorkoutClass, error) {
	const op = "storage.ListClasses"

	query := `SELECT ` + classColumns + ` FROM workout_classes ORDER BY date_time, id`
	res, err := s.queryClasses(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// ListClassesByTrainer возвращает занятия, которые ведёт тренер.
func (s *Storage) ListClassesByTrainer(ctx context.Context, trainerID int) ([]*models.WorkoutClass, error) {
	const op = "storage.ListClassesByTrainer"

	query := `SELECT ` + classColumns + ` FROM workout_classes WHERE trainer_id = $1 ORDER BY date_time, id`
	res, err := s.queryClasses(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *Storage) queryClasses(ctx context.Context, query string, args ...any) ([]*models.WorkoutClass, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.WorkoutClass
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// ReserveClassSpot записывает пользователя на занятие и занимает одно место.
//
// Строка занятия блокируется до конца транзакции: одновременные записи
// на одно занятие проверяют вместимость по очереди и не превышают её.
// Повторная запись того же пользователя не проверяется.
func (s *Storage) ReserveClassSpot(ctx context.Context, userID, classID int) (*models.ClassRSVP, error) {
	const op = "storage.ReserveClassSpot"

	var rsvp *models.ClassRSVP
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var maxCapacity, currentCapacity int
		err := tx.QueryRowContext(ctx,
			`SELECT max_capacity, current_capacity FROM workout_classes WHERE id = $1 FOR UPDATE`, classID).
			Scan(&maxCapacity, &currentCapacity)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrClassNotFound
		}
		if err != nil {
			return err
		}
		if currentCapacity >= maxCapacity {
			return models.ErrClassFull
		}

		rsvp = &models.ClassRSVP{UserID: userID, ClassID: classID, Attending: true}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO class_rsvps (user_id, class_id, attending) VALUES ($1, $2, TRUE) RETURNING id`,
			userID, classID).Scan(&rsvp.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return models.ErrUserNotFound
			}
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE workout_classes SET current_capacity = current_capacity + 1 WHERE id = $1`, classID)
		if isCheckViolation(err) {
			return models.ErrClassFull
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rsvp, nil
}

// ListRSVPsByUser возвращает записи пользователя на занятия.
func (s *Storage) ListRSVPsByUser(ctx context.Context, userID int) ([]*models.ClassRSVP, error) {
	const op = "storage.ListRSVPsByUser"

	query := `SELECT id, user_id, class_id, attending
			  FROM class_rsvps
			  WHERE user_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ClassRSVP
	for rows.Next() {
		var r models.ClassRSVP
		if err := rows.Scan(&r.ID, &r.UserID, &r.ClassID, &r.Attending); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
