// Package models содержит доменные структуры спортзала, DTO запросов и ответов,
// а также доменные ошибки. Доменные структуры не имеют json-тегов:
// каждый эндпоинт отдаёт собственный DTO.
package models

import "time"

// Роли пользователей.
const (
	RoleUser    = "user"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int       // Идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль: user, trainer или admin
	CreatedAt    time.Time // Дата регистрации
}

// UserUpdate содержит изменяемые поля пользователя. nil означает «не менять».
type UserUpdate struct {
	Username     *string
	Email        *string
	Role         *string
	PasswordHash *string
}

// RegisterRequest входные данные регистрации и создания пользователя администратором.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user trainer admin"`
}

// LoginRequest входные данные авторизации.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest частичное обновление пользователя администратором.
type UpdateUserRequest struct {
	ID       int     `json:"id" validate:"required,gt=0"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=120"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=user trainer admin"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// DeleteUserRequest идентификатор удаляемого пользователя.
type DeleteUserRequest struct {
	ID int `json:"id" validate:"required,gt=0"`
}

// AssignTrainerRequest назначение тренера пользователю.
type AssignTrainerRequest struct {
	UserID    int `json:"user_id" validate:"required,gt=0"`
	TrainerID int `json:"trainer_id" validate:"required,gt=0"`
}

// TokenResponse ответ регистрации и авторизации.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// UserResponse публичное представление пользователя, без хэша пароля.
type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// NewUserResponse формирует UserResponse из доменной модели.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// NewUserResponses формирует список UserResponse, никогда не возвращает nil.
func NewUserResponses(users []*User) []UserResponse {
	res := make([]UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, NewUserResponse(u))
	}
	return res
}
