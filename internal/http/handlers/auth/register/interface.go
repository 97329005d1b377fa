package register

import (
	"context"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Service регистрирует пользователя и выпускает для него токен доступа.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error)
}
