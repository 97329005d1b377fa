// Package assigntrainer реализует назначение тренера пользователю администратором.
package assigntrainer

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

// Service назначает тренера.
type Service interface {
	AssignTrainer(ctx context.Context, userID, trainerID int) error
}

// Handler обрабатывает POST /api/assign-trainer.
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

// ServeHTTP godoc
// @Summary Назначение тренера
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AssignTrainerRequest true "Пользователь и тренер"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "Выбранный пользователь не тренер"
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Пользователь или тренер не найден"
// @Failure 409 {object} response.ErrorResponse "Тренер уже назначен"
// @Failure 500 {object} response.ErrorResponse
// @Router /assign-trainer [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assigntrainer"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AssignTrainerRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}
	log = log.With(slog.Int("user_id", req.UserID), slog.Int("trainer_id", req.TrainerID))

	err := h.service.AssignTrainer(r.Context(), req.UserID, req.TrainerID)
	switch {
	case errors.Is(err, models.ErrUserNotFound), errors.Is(err, models.ErrTrainerNotFound):
		log.Info("user or trainer not found", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("User or trainer not found"))
		return
	case errors.Is(err, models.ErrNotTrainer):
		log.Info("target is not a trainer")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Selected user is not a trainer"))
		return
	case errors.Is(err, models.ErrTrainerAlreadyAssigned):
		log.Info("trainer already assigned")
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("Trainer already assigned to this user"))
		return
	case err != nil:
		log.Error("failed to assign trainer", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Info("trainer assigned")
	render.JSON(w, r, response.Message("Trainer assigned successfully"))
}
