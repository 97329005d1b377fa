package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// AssignTrainer связывает тренера trainerID с подопечным userID.
func (s *Storage) AssignTrainer(ctx context.Context, userID, trainerID int) error {
	const op = "storage.AssignTrainer"

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var userExists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&userExists); err != nil {
			return err
		}
		if !userExists {
			return models.ErrUserNotFound
		}

		var role string
		err := tx.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1`, trainerID).Scan(&role)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrTrainerNotFound
		}
		if err != nil {
			return err
		}
		if role != models.RoleTrainer {
			return models.ErrNotTrainer
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO trainer_trainee (trainer_id, trainee_id) VALUES ($1, $2)`, trainerID, userID)
		switch {
		case isUniqueViolation(err):
			return models.ErrTrainerAlreadyAssigned
		case isForeignKeyViolation(err):
			return models.ErrUserNotFound
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListTrainersOf возвращает тренеров, назначенных пользователю.
func (s *Storage) ListTrainersOf(ctx context.Context, userID int) ([]*models.User, error) {
	const op = "storage.ListTrainersOf"

	query := `SELECT u.id, u.username, u.email, u.password_hash, u.role, u.created_at
			  FROM users u
			  JOIN trainer_trainee tt ON tt.trainer_id = u.id
			  WHERE tt.trainee_id = $1
			  ORDER BY u.id`
	res, err := s.queryUsers(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// ListTrainees возвращает подопечных тренера.
func (s *Storage) ListTrainees(ctx context.Context, trainerID int) ([]*models.User, error) {
	const op = "storage.ListTrainees"

	query := `SELECT u.id, u.username, u.email, u.password_hash, u.role, u.created_at
			  FROM users u
			  JOIN trainer_trainee tt ON tt.trainee_id = u.id
			  WHERE tt.trainer_id = $1
			  ORDER BY u.id`
	res, err := s.queryUsers(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
