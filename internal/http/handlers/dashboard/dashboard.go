// Package dashboard реализует HTTP-обработчики сводных панелей участника,
// администратора и тренера. Роль проверяется middleware до вызова обработчика,
// обработчик лишь берёт пользователя из контекста и собирает сводку.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Service собирает сводки по ролям.
type Service interface {
	User(ctx context.Context, user *models.User) (*models.UserDashboard, error)
	Admin(ctx context.Context, user *models.User) (*models.AdminDashboard, error)
	Trainer(ctx context.Context, user *models.User) (*models.TrainerDashboard, error)
}

// Handler обрабатывает запросы к панелям.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// User godoc
// @Summary Панель участника
// @Description Профиль, тарифы, абонементы, посещения, тренер, занятия и записи текущего пользователя.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserDashboard
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /dashboard [get]
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "handlers.dashboard.User", h.service.User)
}

// Admin godoc
// @Summary Панель администратора
// @Description Все пользователи, тренеры, тарифы и счётчики.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminDashboard
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /admin-dashboard [get]
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "handlers.dashboard.Admin", h.service.Admin)
}

// Trainer godoc
// @Summary Панель тренера
// @Description Занятия тренера, его подопечные и число записавшихся на каждое занятие.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.TrainerDashboard
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /trainer-dashboard [get]
func (h *Handler) Trainer(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "handlers.dashboard.Trainer", h.service.Trainer)
}

func serve[T any](h *Handler, w http.ResponseWriter, r *http.Request, op string,
	build func(context.Context, *models.User) (T, error)) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user is missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := build(r.Context(), user)
	if err != nil {
		log.Error("failed to build dashboard", slog.Int("user_id", user.ID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Debug("dashboard built", slog.Int("user_id", user.ID))
	render.JSON(w, r, res)
}
