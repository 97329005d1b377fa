// Package users реализует административный CRUD пользователей.
//
// Один и тот же Handler обслуживает /api/users и /api/trainers, различаясь
// областью видимости: для тренеров роль при создании всегда trainer,
// а изменение или удаление не-тренера отвечает 404.
// Идентификатор изменяемого или удаляемого пользователя передаётся в теле запроса.
package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/request"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	usersvc "github.com/magabrotheeeer/gym-manager/internal/services/users"
)

// Service описывает административные операции над пользователями.
type Service interface {
	List(ctx context.Context, scope usersvc.Scope) ([]*models.User, error)
	Create(ctx context.Context, scope usersvc.Scope, req models.RegisterRequest) (*models.User, error)
	Update(ctx context.Context, scope usersvc.Scope, req models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, scope usersvc.Scope, id int) error
}

// Handler обрабатывает CRUD-запросы в пределах одной области видимости.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис пользователей
	scope    usersvc.Scope       // Пользователи или только тренеры
	validate *validator.Validate // Валидатор входных данных
}

// New создает новый экземпляр Handler для указанной области видимости.
func New(log *slog.Logger, service Service, scope usersvc.Scope) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		scope:    scope,
		validate: validator.New(),
	}
}

func (h *Handler) notFoundMsg() string {
	if h.scope == usersvc.ScopeTrainers {
		return "Trainer not found"
	}
	return "User not found"
}

func (h *Handler) deletedMsg() string {
	if h.scope == usersvc.ScopeTrainers {
		return "Trainer deleted"
	}
	return "User deleted"
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("scope", int(h.scope)),
	)
}

// List godoc
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users [get]
// @Router /trainers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.List")

	users, err := h.service.List(r.Context(), h.scope)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}
	render.JSON(w, r, models.NewUserResponses(users))
}

// Create godoc
// @Summary Создание пользователя
// @Description Для /trainers роль принудительно trainer.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RegisterRequest true "Данные пользователя"
// @Success 201 {object} models.UserResponse
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или пользователь уже существует"
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users [post]
// @Router /trainers [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.Create")

	var req models.RegisterRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	user, err := h.service.Create(r.Context(), h.scope, req)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("user created", slog.Int("id", user.ID), slog.String("role", user.Role))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, models.NewUserResponse(user))
}

// Update godoc
// @Summary Изменение пользователя
// @Description Меняются только переданные поля. Для /trainers роль не меняется.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateUserRequest true "Изменяемые поля"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users [put]
// @Router /trainers [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.Update")

	var req models.UpdateUserRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	user, err := h.service.Update(r.Context(), h.scope, req)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("user updated", slog.Int("id", user.ID))
	render.JSON(w, r, models.NewUserResponse(user))
}

// Delete godoc
// @Summary Удаление пользователя
// @Description Удаляет пользователя и зависимые записи, освобождая занятые им места на занятиях.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DeleteUserRequest true "Идентификатор"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users [delete]
// @Router /trainers [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.Delete")

	var req models.DeleteUserRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	if err := h.service.Delete(r.Context(), h.scope, req.ID); err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("user deleted", slog.Int("id", req.ID))
	render.JSON(w, r, response.Message(h.deletedMsg()))
}

// fail сопоставляет ошибку сервиса со статусом ответа.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound), errors.Is(err, models.ErrTrainerNotFound):
		log.Info("user not found", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(h.notFoundMsg()))
	case errors.Is(err, models.ErrUserExists):
		log.Info("username or email taken", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("User exists"))
	default:
		log.Error("user operation failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
	}
}
