package models

import "errors"

// Доменные ошибки. Обработчики сопоставляют их со статусами HTTP через errors.Is.
var (
	ErrUserExists             = errors.New("user exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrTrainerNotFound        = errors.New("trainer not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrPlanNotFound           = errors.New("subscription plan not found")
	ErrInvalidDuration        = errors.New("duration must be between 1 and 60 months")
	ErrInvalidPrice           = errors.New("price must be positive")
	ErrActiveSubscription     = errors.New("you have an active subscription, cannot register for a new one until the current one expires")
	ErrAlreadySubscribed      = errors.New("already subscribed to this plan")
	ErrClassNotFound          = errors.New("class not found")
	ErrClassFull              = errors.New("class is full")
	ErrNotTrainer             = errors.New("selected user is not a trainer")
	ErrTrainerAlreadyAssigned = errors.New("trainer already assigned to this user")
	ErrProfileNotFound        = errors.New("profile not found")
)
