package response

import (
	"encoding/json"
	"time"

	"visa-booking/internal/domain/webhook"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type WebhookLogResponse struct {
	ID             uuid.UUID          `json:"id"`
	EventID        uuid.UUID          `json:"event_id"`
	EventType      webhook.EventType  `json:"event_type"`
	Payload        json.RawMessage    `json:"payload"`
	Status         webhook.Status     `json:"status"`
	Signature      *string            `json:"signature,omitempty"`
	ResponseStatus *int               `json:"response_status,omitempty"`
	ResponseBody   json.RawMessage    `json:"response_body,omitempty"`
	Error          *string            `json:"error,omitempty"`
	ErrorKind      *webhook.ErrorKind `json:"error_kind,omitempty"`
	Attempts       int                `json:"attempts"`
	NextAttemptAt  *time.Time         `json:"next_attempt_at,omitempty"`
	RetryOf        *uuid.UUID         `json:"retry_of,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func FromWebhookLog(l *webhook.Log) (*WebhookLogResponse, error) {
	var out WebhookLogResponse
	if err := copier.Copy(&out, l); err != nil {
		return nil, err
	}
	return &out, nil
}
