// Package plans реализует HTTP-обработчики тарифных планов:
// создание плана администратором и список планов для любой роли.
package plans

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
)

// Service описывает операции с тарифными планами.
type Service interface {
	CreatePlan(ctx context.Context, req models.CreatePlanRequest) (*models.SubscriptionPlan, error)
	ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error)
}

// Handler обрабатывает запросы к /api/subscriptions.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Create godoc
// @Summary Создание тарифного плана
// @Description Длительность задаётся в месяцах (1..60) и хранится в днях, месяц равен 30 дням.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreatePlanRequest true "Тарифный план"
// @Success 201 {object} models.PlanResponse
// @Failure 400 {object} response.ErrorResponse "Некорректная длительность или цена"
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /subscriptions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.Create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreatePlanRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	plan, err := h.service.CreatePlan(r.Context(), req)
	switch {
	case errors.Is(err, models.ErrInvalidDuration):
		log.Info("invalid duration", slog.Int("duration_months", req.DurationMonths))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Duration must be between 1 and 60 months"))
		return
	case errors.Is(err, models.ErrInvalidPrice):
		log.Info("invalid price", slog.Float64("price", req.Price))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Price must be positive"))
		return
	case err != nil:
		log.Error("failed to create plan", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Info("plan created", slog.Int("plan_id", plan.ID), slog.Int("duration_days", plan.DurationDays))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, models.NewPlanResponse(plan))
}

// List godoc
// @Summary Список тарифных планов
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PlanResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /subscriptions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.List"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}
	render.JSON(w, r, models.NewPlanResponses(plans))
}
