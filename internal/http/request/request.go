// Package request содержит разбор тела HTTP-запроса.
package request

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
)

// Decode декодирует JSON из тела запроса в dst без валидации.
// При ошибке сам отвечает 400 и возвращает false.
func Decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.MsgInvalidBody))
		return false
	}
	return true
}

// Bind декодирует JSON из тела запроса в dst и проверяет его валидатором.
// При ошибке сам отвечает 400 и возвращает false.
func Bind(w http.ResponseWriter, r *http.Request, log *slog.Logger, validate *validator.Validate, dst any) bool {
	if !Decode(w, r, log, dst) {
		return false
	}

	err := validate.Struct(dst)
	if err == nil {
		return true
	}
	log.Info("validation failed", sl.Err(err))
	render.Status(r, http.StatusBadRequest)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		render.JSON(w, r, response.ValidationError(verrs))
		return false
	}
	render.JSON(w, r, response.Error(response.MsgInvalidBody))
	return false
}
