package middlewarectx

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Recorder фиксирует событие аудита.
type Recorder interface {
	Record(ctx context.Context, ev models.AuditEvent)
}

type auditActorKey struct{}

// auditActor заполняется JWTMiddleware, который работает внутри Audit.
type auditActor struct {
	id   int
	role string
}

func setAuditActor(ctx context.Context, user *models.User) {
	if a, ok := ctx.Value(auditActorKey{}).(*auditActor); ok {
		a.id = user.ID
		a.role = user.Role
	}
}

// Audit записывает исход каждого запроса: кто, какое действие, статус и успех.
// Ответы со статусом ниже 400 считаются успешными.
func Audit(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := &auditActor{}
			ctx := context.WithValue(r.Context(), auditActorKey{}, actor)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := statusOf(ww)
			outcome := models.OutcomeSuccess
			if status >= http.StatusBadRequest {
				outcome = models.OutcomeFailure
			}
			rec.Record(context.WithoutCancel(r.Context()), models.AuditEvent{
				ActorID:   actor.id,
				Role:      actor.role,
				Action:    r.Method + " " + routePattern(r),
				Status:    status,
				Outcome:   outcome,
				RequestID: middleware.GetReqID(r.Context()),
			})
		})
	}
}
