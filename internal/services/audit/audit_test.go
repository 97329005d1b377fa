package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, message any) error {
	return m.Called(ctx, message).Error(0)
}

func TestRecorder_Record(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := models.AuditEvent{ActorID: 3, Role: models.RoleUser, Action: "POST /api/rsvp", Status: 200, Outcome: models.OutcomeSuccess}

	t.Run("logs and publishes", func(t *testing.T) {
		var buf bytes.Buffer
		p := new(PublisherMock)
		p.On("Publish", mock.Anything, mock.MatchedBy(func(msg any) bool {
			got, ok := msg.(models.AuditEvent)
			if !ok {
				return false
			}
			_, err := uuid.Parse(got.ID)
			return err == nil && got.At.Equal(at) && got.ActorID == 3
		})).Return(nil).Once()

		r := NewRecorder(slog.New(slog.NewJSONHandler(&buf, nil)), p)
		r.now = func() time.Time { return at }
		r.Record(context.Background(), ev)

		p.AssertExpectations(t)
		assert.Contains(t, buf.String(), `"action":"POST /api/rsvp"`)
		assert.Contains(t, buf.String(), `"outcome":"success"`)
	})

	t.Run("publish failure is logged", func(t *testing.T) {
		var buf bytes.Buffer
		p := new(PublisherMock)
		p.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

		NewRecorder(slog.New(slog.NewJSONHandler(&buf, nil)), p).Record(context.Background(), ev)
		assert.Contains(t, buf.String(), "failed to publish audit event")
	})

	t.Run("without publisher", func(t *testing.T) {
		var buf bytes.Buffer
		require.NotPanics(t, func() {
			NewRecorder(slog.New(slog.NewJSONHandler(&buf, nil)), nil).Record(context.Background(), ev)
		})
		assert.Contains(t, buf.String(), `"actor_id":3`)
	})
}
