// Package healthprofile реализует чтение и частичное обновление профиля здоровья
// текущего пользователя. Первое обновление создаёт профиль, BMI пересчитывается,
// когда известны и рост, и вес.
package healthprofile

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

// Service описывает операции с профилем здоровья.
type Service interface {
	Get(ctx context.Context, userID int) (*models.HealthProfile, error)
	Patch(ctx context.Context, userID int, patch models.HealthProfilePatch) (*models.HealthProfile, error)
}

// Handler обрабатывает запросы к /api/health-profile.
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

// Get godoc
// @Summary Профиль здоровья
// @Tags Health
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.HealthProfileResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Профиль ещё не создан"
// @Failure 500 {object} response.ErrorResponse
// @Router /health-profile [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.healthprofile.Get"
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

	profile, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			log.Info("profile not found", slog.Int("user_id", userID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Profile not found"))
			return
		}
		log.Error("failed to get profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}
	render.JSON(w, r, models.NewHealthProfileResponse(profile))
}

// Patch godoc
// @Summary Обновление профиля здоровья
// @Description Меняются только переданные поля, отсутствующие сохраняют прежнее значение.
// @Tags Health
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.HealthProfilePatch true "Изменяемые поля"
// @Success 200 {object} models.HealthProfileResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /health-profile [patch]
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.healthprofile.Patch"
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

	var patch models.HealthProfilePatch
	if !request.Bind(w, r, log, h.validate, &patch) {
		return
	}

	profile, err := h.service.Patch(r.Context(), userID, patch)
	if err != nil {
		log.Error("failed to update profile", slog.Int("user_id", userID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Info("profile updated", slog.Int("user_id", userID))
	render.JSON(w, r, models.NewHealthProfileResponse(profile))
}
