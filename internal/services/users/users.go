// Package services содержит административное управление пользователями и тренерами.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-manager/internal/cache"
	"github.com/magabrotheeeer/gym-manager/internal/lib/password"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Scope ограничивает набор пользователей, с которым работает операция.
type Scope int

const (
	// ScopeUsers все пользователи, роль задаётся свободно.
	ScopeUsers Scope = iota
	// ScopeTrainers только тренеры, роль фиксирована.
	ScopeTrainers
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
	AssignTrainer(ctx context.Context, userID, trainerID int) error
}

// Invalidator сбрасывает закешированные данные.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// UserService реализует CRUD пользователей и тренеров для администратора.
type UserService struct {
	repo  UserRepository
	cache Invalidator
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Invalidator, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает пользователей в пределах scope.
func (s *UserService) List(ctx context.Context, scope Scope) ([]*models.User, error) {
	const op = "services.users.List"

	var (
		users []*models.User
		err   error
	)
	if scope == ScopeTrainers {
		users, err = s.repo.ListUsersByRole(ctx, models.RoleTrainer)
	} else {
		users, err = s.repo.ListUsers(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Create создаёт пользователя. В ScopeTrainers роль всегда trainer.
func (s *UserService) Create(ctx context.Context, scope Scope, req models.RegisterRequest) (*models.User, error) {
	const op = "services.users.Create"

	role := req.Role
	switch {
	case scope == ScopeTrainers:
		role = models.RoleTrainer
	case role == "":
		role = models.RoleUser
	}
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         role,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user created by admin", slog.Int("id", user.ID), slog.String("role", user.Role))
	return user, nil
}

// Update меняет переданные поля пользователя. В ScopeTrainers роль не меняется.
func (s *UserService) Update(ctx context.Context, scope Scope, req models.UpdateUserRequest) (*models.User, error) {
	const op = "services.users.Update"

	if err := s.checkScope(ctx, scope, req.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	upd := models.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}
	if scope == ScopeTrainers {
		upd.Role = nil
	}
	if req.Password != nil {
		hashed, err := password.GetHash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.PasswordHash = &hashed
	}

	user, err := s.repo.UpdateUser(ctx, req.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Delete удаляет пользователя вместе с зависимыми записями.
func (s *UserService) Delete(ctx context.Context, scope Scope, id int) error {
	const op = "services.users.Delete"

	if err := s.checkScope(ctx, scope, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user deleted by admin", slog.Int("id", id))
	// удаление освобождает места на занятиях
	if err := s.cache.Invalidate(ctx, cache.KeyClasses); err != nil {
		s.log.Warn("failed to invalidate classes cache", sl.Err(err))
	}
	return nil
}

// AssignTrainer назначает пользователю тренера.
func (s *UserService) AssignTrainer(ctx context.Context, userID, trainerID int) error {
	const op = "services.users.AssignTrainer"

	if err := s.repo.AssignTrainer(ctx, userID, trainerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trainer assigned", slog.Int("user_id", userID), slog.Int("trainer_id", trainerID))
	return nil
}

// checkScope проверяет, что пользователь id существует и попадает в scope.
func (s *UserService) checkScope(ctx context.Context, scope Scope, id int) error {
	if scope != ScopeTrainers {
		return nil
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.ErrTrainerNotFound
		}
		return err
	}
	if user.Role != models.RoleTrainer {
		return models.ErrTrainerNotFound
	}
	return nil
}
