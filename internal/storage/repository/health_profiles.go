package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

const healthColumns = `id, user_id, weight_kg, height_cm, bmi, goal`

func scanHealthProfile(row rowScanner) (*models.HealthProfile, error) {
	var (
		p                      models.HealthProfile
		weight, height, bmiVal sql.NullFloat64
		goal                   sql.NullString
	)
	if err := row.Scan(&p.ID, &p.UserID, &weight, &height, &bmiVal, &goal); err != nil {
		return nil, err
	}
	if weight.Valid {
		p.WeightKg = &weight.Float64
	}
	if height.Valid {
		p.HeightCm = &height.Float64
	}
	if bmiVal.Valid {
		p.BMI = &bmiVal.Float64
	}
	if goal.Valid {
		p.Goal = &goal.String
	}
	return &p, nil
}

// GetHealthProfile возвращает профиль здоровья пользователя.
func (s *Storage) GetHealthProfile(ctx context.Context, userID int) (*models.HealthProfile, error) {
	const op = "storage.GetHealthProfile"

	query := `SELECT ` + healthColumns + ` FROM health_profiles WHERE user_id = $1`
	p, err := scanHealthProfile(s.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpsertHealthProfile создаёт профиль пользователя, если его нет,
// и применяет к нему patch с пересчётом BMI.
func (s *Storage) UpsertHealthProfile(ctx context.Context, userID int, patch models.HealthProfilePatch) (*models.HealthProfile, error) {
	const op = "storage.UpsertHealthProfile"

	var profile *models.HealthProfile
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO health_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return models.ErrUserNotFound
			}
			return err
		}

		profile, err = scanHealthProfile(tx.QueryRowContext(ctx,
			`SELECT `+healthColumns+` FROM health_profiles WHERE user_id = $1 FOR UPDATE`, userID))
		if err != nil {
			return err
		}

		profile.Apply(patch)

		_, err = tx.ExecContext(ctx,
			`UPDATE health_profiles
			 SET weight_kg = $2, height_cm = $3, bmi = $4, goal = $5
			 WHERE id = $1`,
			profile.ID, profile.WeightKg, profile.HeightCm, profile.BMI, profile.Goal)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}
