// Package classes реализует HTTP-обработчики групповых занятий:
// список занятий, создание занятия тренером и запись участника на занятие.
//
// Запись (RSVP) атомарно занимает место: если мест нет, возвращается 409,
// если занятия нет, возвращается 404.
package classes

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

// Service описывает бизнес-логику занятий.
type Service interface {
	CreateClass(ctx context.Context, trainerID int, req models.CreateClassRequest) (*models.WorkoutClass, error)
	ListClasses(ctx context.Context) ([]*models.WorkoutClass, error)
	RSVP(ctx context.Context, userID, classID int) (*models.ClassRSVP, error)
}

// RSVPResponse ответ на успешную запись.
type RSVPResponse struct {
	Message string              `json:"message" example:"RSVP successful"`
	RSVP    models.RSVPResponse `json:"rsvp"`
}

// Handler обрабатывает запросы к /api/classes и /api/rsvp.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис занятий
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

// List godoc
// @Summary Список занятий
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ClassResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /classes [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.classes.List"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	classes, err := h.service.ListClasses(r.Context())
	if err != nil {
		log.Error("failed to list classes", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}
	render.JSON(w, r, models.NewClassResponses(classes))
}

// Create godoc
// @Summary Создание занятия
// @Description Тренер создаёт занятие, тренером занятия становится он сам. Вместимость по умолчанию 10.
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateClassRequest true "Данные занятия"
// @Success 201 {object} models.ClassResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /classes [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.classes.Create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	trainerID, ok := middlewarectx.CurrentUserID(r.Context())
	if !ok {
		log.Error("user id is missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.CreateClassRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	class, err := h.service.CreateClass(r.Context(), trainerID, req)
	if err != nil {
		if errors.Is(err, models.ErrTrainerNotFound) {
			log.Info("trainer no longer exists", slog.Int("trainer_id", trainerID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Trainer not found"))
			return
		}
		log.Error("failed to create class", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Info("class created", slog.Int("class_id", class.ID), slog.Int("trainer_id", trainerID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, models.NewClassResponse(class))
}

// RSVP godoc
// @Summary Запись на занятие
// @Description Занимает место на занятии. Отказ, если мест нет.
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RSVPRequest true "Идентификатор занятия"
// @Success 200 {object} RSVPResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Занятие не найдено"
// @Failure 409 {object} response.ErrorResponse "Мест нет"
// @Failure 500 {object} response.ErrorResponse
// @Router /rsvp [post]
func (h *Handler) RSVP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.classes.RSVP"
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

	var req models.RSVPRequest
	if !request.Bind(w, r, log, h.validate, &req) {
		return
	}

	rsvp, err := h.service.RSVP(r.Context(), userID, req.ClassID)
	switch {
	case errors.Is(err, models.ErrClassNotFound):
		log.Info("class not found", slog.Int("class_id", req.ClassID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Class not found"))
		return
	case errors.Is(err, models.ErrClassFull):
		log.Info("class is full", slog.Int("class_id", req.ClassID))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("Class is full"))
		return
	case err != nil:
		log.Error("failed to rsvp", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Info("rsvp accepted", slog.Int("user_id", userID), slog.Int("class_id", req.ClassID))
	render.JSON(w, r, RSVPResponse{
		Message: "RSVP successful",
		RSVP:    models.NewRSVPResponse(rsvp),
	})
}
