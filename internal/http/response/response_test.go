package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	NotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{
		"error":   "Not Found",
		"message": "The requested endpoint does not exist",
	}, body)
}

func TestMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowed(rr, httptest.NewRequest(http.MethodPatch, "/api/login", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"status":"Error","error":"method not allowed"}`, rr.Body.String())
}

func TestValidationError(t *testing.T) {
	type req struct {
		Username string `validate:"required"`
		Email    string `validate:"email"`
		Password string `validate:"min=6"`
		Role     string `validate:"oneof=user trainer admin"`
	}
	err := validator.New().Struct(req{Email: "bad", Password: "123", Role: "root"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Username is a required field")
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Password must be at least 6")
	assert.Contains(t, resp.Error, "field Role must be one of: user trainer admin")
}

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(42)
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, 42, resp.Data)
	assert.Empty(t, resp.Error)
}
