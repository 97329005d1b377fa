// Package usersubscription реализует HTTP-обработчик оформления абонемента
// участником. Пользователь не может иметь больше одного действующего абонемента
// и не может дважды оформить один и тот же план, даже после истечения срока.
package usersubscription

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/request"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Service оформляет абонемент.
type Service interface {
	RegisterUserSubscription(ctx context.Context, userID, planID int) (*models.UserSubscription, error)
}

// Handler обрабатывает POST /api/user-subscriptions.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис абонементов
	validate *validator.Validate // Валидатор входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформление абонемента
// @Description Дата окончания равна дате начала плюс длительность плана в днях.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RegisterSubscriptionRequest true "Идентификатор плана"
// @Success 201 {object} models.UserSubscriptionResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 409 {object} response.ErrorResponse "Есть действующий абонемент или план уже оформлялся"
// @Failure 500 {object} response.ErrorResponse
// @Router /user-subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usersubscription.Register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.CurrentUserID(r.Context())
	if !ok {
		log.Error("user id is missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.RegisterSubscriptionRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}
	log = log.With(slog.Int("user_id", userID), slog.Int("plan_id", req.PlanID))

	sub, err := h.service.RegisterUserSubscription(r.Context(), userID, req.PlanID)
	switch {
	case errors.Is(err, models.ErrPlanNotFound):
		log.Info("plan not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Subscription plan not found"))
		return
	case errors.Is(err, models.ErrActiveSubscription):
		log.Info("active subscription exists")
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("You have an active subscription. Cannot register for a new one until the current one expires"))
		return
	case errors.Is(err, models.ErrAlreadySubscribed):
		log.Info("plan already used by user")
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("Already subscribed to this plan"))
		return
	case errors.Is(err, models.ErrUserNotFound):
		log.Info("user no longer exists")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("User not found"))
		return
	case err != nil:
		log.Error("failed to register subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Info("subscription registered", slog.Time("end_date", sub.EndDate))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, models.NewUserSubscriptionResponse(sub))
}
