package webhook

import (
	"encoding/json"
	"math"
	"time"

	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrLogNotFound = errs.Newm(errs.ErrNotFound, "webhook log not found")

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

// ErrorKind separates operator mistakes from transient delivery problems.
type ErrorKind string

const (
	ErrorKindConfig   ErrorKind = "CONFIG"
	ErrorKindDelivery ErrorKind = "DELIVERY"
)

// Log is both the outbox entry and the delivery record of one event.
type Log struct {
	ID             uuid.UUID
	EventID        uuid.UUID
	EventType      EventType
	Payload        json.RawMessage
	Status         Status
	RequestBody    []byte
	Signature      *string
	ResponseStatus *int
	ResponseBody   json.RawMessage
	Error          *string
	ErrorKind      *ErrorKind
	Attempts       int
	NextAttemptAt  *time.Time
	RetryOf        *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewLog creates a PENDING log for e with a fresh public event id.
func NewLog(e Event, now time.Time) (*Log, error) {
	payload, err := EncodePayload(e)
	if err != nil {
		return nil, err
	}
	return newLog(e.Type(), payload, now), nil
}

func newLog(t EventType, payload json.RawMessage, now time.Time) *Log {
	return &Log{
		ID:            uuid.New(),
		EventID:       uuid.New(),
		EventType:     t,
		Payload:       payload,
		Status:        StatusPending,
		NextAttemptAt: &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewRetry builds the resend of original: same payload plus retry metadata, a new event id,
// and a back reference. The original is not modified.
func NewRetry(original *Log, retriedBy uuid.UUID, now time.Time) (*Log, error) {
	fields, err := decodeObject(original.Payload)
	if err != nil {
		return nil, errs.Wrap(err, "stored webhook payload is not a JSON object")
	}
	fields["retry_of_event_id"] = original.EventID.String()
	fields["retried_by"] = retriedBy.String()
	fields["retried_at"] = now.UTC().Format(time.RFC3339Nano)

	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode retry payload")
	}
	l := newLog(original.EventType, payload, now)
	originalID := original.ID
	l.RetryOf = &originalID
	return l, nil
}

// Prepare records the exact bytes and signature that are about to be sent.
func (l *Log) Prepare(body []byte, signature string, now time.Time) {
	l.RequestBody = body
	l.Signature = &signature
	l.Attempts++
	l.UpdatedAt = now
}

func (l *Log) MarkSent(status int, response json.RawMessage, now time.Time) {
	l.Status = StatusSent
	l.ResponseStatus = &status
	l.ResponseBody = response
	l.Error = nil
	l.ErrorKind = nil
	l.NextAttemptAt = nil
	l.UpdatedAt = now
}

// MarkConfigFailure never schedules a retry; the operator has to fix the configuration and resend.
func (l *Log) MarkConfigFailure(msg string, now time.Time) {
	kind := ErrorKindConfig
	l.Status = StatusFailed
	l.Error = &msg
	l.ErrorKind = &kind
	l.NextAttemptAt = nil
	l.UpdatedAt = now
}

// MarkDeliveryFailure records the failure and schedules the next attempt with
// exponential backoff until maxAttempts is reached.
func (l *Log) MarkDeliveryFailure(msg string, status *int, response json.RawMessage, maxAttempts int, base time.Duration, now time.Time) {
	kind := ErrorKindDelivery
	l.Status = StatusFailed
	l.Error = &msg
	l.ErrorKind = &kind
	l.ResponseStatus = status
	l.ResponseBody = response
	l.NextAttemptAt = nil
	if l.Attempts < maxAttempts {
		next := now.Add(Backoff(base, l.Attempts))
		l.NextAttemptAt = &next
	}
	l.UpdatedAt = now
}

// IsDue reports whether the sweeper should pick the log up at now.
func (l *Log) IsDue(now time.Time) bool {
	if l.Status == StatusSent || l.NextAttemptAt == nil {
		return false
	}
	if l.ErrorKind != nil && *l.ErrorKind == ErrorKindConfig {
		return false
	}
	return !l.NextAttemptAt.After(now)
}

// Claim reserves a due log for one delivery attempt until leaseUntil, so a queued
// copy and the sweeper never send the same log concurrently.
func (l *Log) Claim(now, leaseUntil time.Time) bool {
	if !l.IsDue(now) {
		return false
	}
	l.NextAttemptAt = &leaseUntil
	l.UpdatedAt = now
	return true
}

// Backoff returns base * 2^(attempt-1), capped at one hour.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt-1)))
	if d > time.Hour || d <= 0 {
		return time.Hour
	}
	return d
}
