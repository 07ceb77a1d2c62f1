package shared

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditEntry struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Details    json.RawMessage
	CreatedAt  time.Time
}

// AppointmentLocker serializes capacity decisions per appointment across goroutines and processes.
type AppointmentLocker interface {
	// Lock acquires every id in a stable order; unlock releases them all.
	Lock(ctx context.Context, ids ...uuid.UUID) (unlock func(), err error)
}

// WebhookQueue hands committed log ids to the delivery workers.
type WebhookQueue interface {
	Enqueue(logIDs ...uuid.UUID)
}

type SendResult struct {
	StatusCode int
	Body       json.RawMessage
}

func (r SendResult) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// WebhookSender performs the HTTP POST. A returned error means no response was received.
type WebhookSender interface {
	Send(ctx context.Context, url string, body []byte, signature string) (SendResult, error)
}
