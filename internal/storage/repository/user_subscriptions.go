package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// RegisterUserSubscription оформляет абонемент пользователя userID по плану planID.
//
// Строка пользователя блокируется на время транзакции, поэтому одновременные
// оформления одного пользователя выполняются последовательно. Проверки:
// план существует, у пользователя нет действующего абонемента
// (end_date > now) и нет ни одного абонемента по этому же плану.
func (s *Storage) RegisterUserSubscription(ctx context.Context, userID, planID int, now time.Time) (*models.UserSubscription, error) {
	const op = "storage.RegisterUserSubscription"

	var sub *models.UserSubscription
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var lockedID int
		err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&lockedID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		var plan models.SubscriptionPlan
		err = tx.QueryRowContext(ctx,
			`SELECT id, name, duration_days, price, description FROM subscription_plans WHERE id = $1`, planID).
			Scan(&plan.ID, &plan.Name, &plan.DurationDays, &plan.Price, &plan.Description)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrPlanNotFound
		}
		if err != nil {
			return err
		}

		var active bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM user_subscriptions WHERE user_id = $1 AND end_date > $2)`,
			userID, now).Scan(&active)
		if err != nil {
			return err
		}
		if active {
			return models.ErrActiveSubscription
		}

		var samePlan bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM user_subscriptions WHERE user_id = $1 AND plan_id = $2)`,
			userID, planID).Scan(&samePlan)
		if err != nil {
			return err
		}
		if samePlan {
			return models.ErrAlreadySubscribed
		}

		sub = &models.UserSubscription{
			UserID:    userID,
			PlanID:    plan.ID,
			PlanName:  plan.Name,
			StartDate: now,
			EndDate:   plan.EndDate(now),
		}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO user_subscriptions (user_id, plan_id, start_date, end_date)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			sub.UserID, sub.PlanID, sub.StartDate, sub.EndDate).Scan(&sub.ID)
		if isUniqueViolation(err) {
			return models.ErrAlreadySubscribed
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListUserSubscriptions возвращает абонементы пользователя с названиями планов.
func (s *Storage) ListUserSubscriptions(ctx context.Context, userID int) ([]*models.UserSubscription, error) {
	const op = "storage.ListUserSubscriptions"

	query := `SELECT us.id, us.user_id, us.plan_id, p.name, us.start_date, us.end_date
			  FROM user_subscriptions us
			  JOIN subscription_plans p ON p.id = us.plan_id
			  WHERE us.user_id = $1
			  ORDER BY us.start_date, us.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserSubscription
	for rows.Next() {
		var us models.UserSubscription
		if err := rows.Scan(&us.ID, &us.UserID, &us.PlanID, &us.PlanName, &us.StartDate, &us.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &us)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
