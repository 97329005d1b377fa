// Package attendance реализует HTTP-обработчики посещений текущего пользователя:
// получение списка отметок и отметку посещения за сегодняшний день.
package attendance

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

// Service описывает операции с посещениями.
type Service interface {
	Mark(ctx context.Context, userID int) (*models.Attendance, error)
	List(ctx context.Context, userID int) ([]*models.Attendance, error)
}

// MarkResponse ответ на отметку посещения.
type MarkResponse struct {
	Message    string                    `json:"message" example:"Attendance marked"`
	Attendance models.AttendanceResponse `json:"attendance"`
}

// Handler обрабатывает запросы к /api/attendance.
type Handler struct {
	log     *slog.Logger // Логгер
	service Service      // Сервис посещений
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// List godoc
// @Summary Список посещений
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AttendanceResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /attendance [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.List"
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

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list attendance", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}
	render.JSON(w, r, models.NewAttendanceResponses(items))
}

// Mark godoc
// @Summary Отметить посещение
// @Description Отмечает посещение за текущую дату. Повторная отметка в тот же день не создаёт новую запись.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MarkResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /attendance [post]
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.Mark"
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

	a, err := h.service.Mark(r.Context(), userID)
	if err != nil {
		log.Error("failed to mark attendance", slog.Int("user_id", userID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Info("attendance marked", slog.Int("user_id", userID), slog.String("date", a.Date.Format(models.DateLayout)))
	render.JSON(w, r, MarkResponse{
		Message:    "Attendance marked",
		Attendance: models.NewAttendanceResponse(a),
	})
}
