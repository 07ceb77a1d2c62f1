package webhook

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCaseSubmitted           EventType = "CASE_SUBMITTED"
	EventWaitlistPromoted        EventType = "WAITLIST_PROMOTED"
	EventCaseRescheduled         EventType = "CASE_RESCHEDULED"
	EventAmendmentRequestCreated EventType = "AMENDMENT_REQUEST_CREATED"
	EventAmendmentDecision       EventType = "AMENDMENT_DECISION"
)

// Event is implemented by every outbound payload schema.
type Event interface {
	Type() EventType
}

type CaseSubmitted struct {
	CaseID            uuid.UUID `json:"case_id"`
	AgencyID          uuid.UUID `json:"agency_id"`
	AppointmentID     uuid.UUID `json:"appointment_id"`
	Status            string    `json:"status"`
	Confirmed         bool      `json:"confirmed"`
	AppointmentStatus string    `json:"appointment_status"`
	Applicants        int       `json:"applicants"`
	Total             int64     `json:"total"`
	Currency          string    `json:"currency"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

func (CaseSubmitted) Type() EventType { return EventCaseSubmitted }

type WaitlistPromoted struct {
	CaseID            uuid.UUID `json:"case_id"`
	AppointmentID     uuid.UUID `json:"appointment_id"`
	PromotedBy        uuid.UUID `json:"promoted_by"`
	ConfirmedCount    int       `json:"confirmed_count"`
	Capacity          int       `json:"capacity"`
	AppointmentStatus string    `json:"appointment_status"`
}

func (WaitlistPromoted) Type() EventType { return EventWaitlistPromoted }

type CaseRescheduled struct {
	CaseID            uuid.UUID `json:"case_id"`
	FromAppointmentID uuid.UUID `json:"from_appointment_id"`
	ToAppointmentID   uuid.UUID `json:"to_appointment_id"`
	Status            string    `json:"status"`
	Confirmed         bool      `json:"confirmed"`
	RescheduledBy     uuid.UUID `json:"rescheduled_by"`
	SourceReopened    bool      `json:"source_reopened"`
	TargetStatus      string    `json:"target_appointment_status"`
}

func (CaseRescheduled) Type() EventType { return EventCaseRescheduled }

type AmendmentRequestCreated struct {
	RequestID   uuid.UUID `json:"request_id"`
	CaseID      uuid.UUID `json:"case_id"`
	RequestType string    `json:"request_type"`
	Details     string    `json:"details"`
	RequestedBy uuid.UUID `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (AmendmentRequestCreated) Type() EventType { return EventAmendmentRequestCreated }

type DecisionEffects struct {
	Status       *string `json:"status,omitempty"`
	LockStatus   *string `json:"lock_status,omitempty"`
	SeatReleased bool    `json:"seat_released"`
	Reopened     bool    `json:"appointment_reopened"`
}

type AmendmentDecision struct {
	RequestID   uuid.UUID       `json:"request_id"`
	CaseID      uuid.UUID       `json:"case_id"`
	RequestType string          `json:"request_type"`
	Decision    string          `json:"decision"`
	Reason      *string         `json:"reason,omitempty"`
	ReviewedBy  uuid.UUID       `json:"reviewed_by"`
	ResolvedAt  time.Time       `json:"resolved_at"`
	Effects     DecisionEffects `json:"effects"`
}

func (AmendmentDecision) Type() EventType { return EventAmendmentDecision }
