// Package services записывает события аудита в лог и, при наличии брокера, публикует их.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/metrics"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Publisher отправляет сообщение в брокер.
type Publisher interface {
	Publish(ctx context.Context, message any) error
}

// Recorder фиксирует исходы запросов. Publisher может быть nil.
type Recorder struct {
	log       *slog.Logger
	publisher Publisher
	now       func() time.Time
}

// NewRecorder создает новый экземпляр Recorder.
func NewRecorder(log *slog.Logger, publisher Publisher) *Recorder {
	return &Recorder{
		log:       log,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Record дополняет событие идентификатором и временем, пишет его в лог
// и публикует. Ошибка публикации не прерывает обработку запроса.
func (r *Recorder) Record(ctx context.Context, ev models.AuditEvent) {
	ev.ID = uuid.NewString()
	ev.At = r.now()

	r.log.Info("audit",
		slog.String("event_id", ev.ID),
		slog.Int("actor_id", ev.ActorID),
		slog.String("role", ev.Role),
		slog.String("action", ev.Action),
		slog.Int("status", ev.Status),
		slog.String("outcome", ev.Outcome),
		slog.String("request_id", ev.RequestID),
	)

	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, ev); err != nil {
		metrics.AuditPublishFailures.Inc()
		r.log.Warn("failed to publish audit event", slog.String("event_id", ev.ID), sl.Err(err))
	}
}
