package request

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"omitempty,gt=0"`
}

func TestBind(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		body      string
		wantOK    bool
		wantError string
	}{
		{name: "valid", body: `{"name":"yoga","count":3}`, wantOK: true},
		{name: "malformed json", body: `{"name":`, wantError: "invalid request body"},
		{name: "wrong type", body: `{"name":1}`, wantError: "invalid request body"},
		{name: "missing required", body: `{"count":3}`, wantError: "field Name is a required field"},
		{name: "out of range", body: `{"name":"yoga","count":-1}`, wantError: "field Count must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst payload
			ok := Bind(rec, req, log, validator.New(), &dst)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "yoga", dst.Name)
				assert.Equal(t, 0, rec.Body.Len())
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantError, got["error"])
		})
	}
}

func TestDecode_SkipsValidation(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("invalid struct is still decoded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"count":-1}`))
		rec := httptest.NewRecorder()

		var dst payload
		require.True(t, Decode(rec, req, log, &dst))
		assert.Equal(t, -1, dst.Count)
		assert.Equal(t, 0, rec.Body.Len())
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[`))
		rec := httptest.NewRecorder()

		var dst payload
		require.False(t, Decode(rec, req, log, &dst))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"status":"Error","error":"invalid request body"}`, rec.Body.String())
	})
}
