package models

import "time"

// Исходы запроса для аудита.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuditEvent запись аудита об исходе запроса.
// ActorID равен 0 для анонимных запросов.
type AuditEvent struct {
	ID        string    `json:"id"`
	ActorID   int       `json:"actor_id"`
	Role      string    `json:"role,omitempty"`
	Action    string    `json:"action"`
	Status    int       `json:"status"`
	Outcome   string    `json:"outcome"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}
