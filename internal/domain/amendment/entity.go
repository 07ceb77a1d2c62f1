package amendment

import (
	"strings"
	"time"

	"visa-booking/internal/domain/booking"
	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRequestNotFound = errs.Newm(errs.ErrNotFound, "amendment request not found")

const MaxDetailsLength = 2000

type Type string

const (
	TypeEdit       Type = "EDIT"
	TypeCancel     Type = "CANCEL"
	TypeReschedule Type = "RESCHEDULE"
)

func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeEdit, TypeCancel, TypeReschedule:
		return t, nil
	default:
		return "", errs.Newm(errs.ErrValidation, "invalid amendment type %q", s)
	}
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

func ParseDecision(s string) (Decision, error) {
	d := Decision(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case DecisionApprove, DecisionReject:
		return d, nil
	default:
		return "", errs.Newm(errs.ErrValidation, "invalid decision %q", s)
	}
}

type Request struct {
	ID          uuid.UUID
	CaseID      uuid.UUID
	Type        Type
	Status      Status
	Details     string
	RequestedBy uuid.UUID
	ReviewedBy  *uuid.UUID
	Reason      *string
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

func NewRequest(caseID uuid.UUID, t Type, details string, requestedBy uuid.UUID, now time.Time) (*Request, error) {
	d := strings.TrimSpace(details)
	if len(d) > MaxDetailsLength {
		return nil, errs.Newm(errs.ErrValidation, "details exceed %d characters", MaxDetailsLength)
	}
	if _, err := ParseType(string(t)); err != nil {
		return nil, err
	}
	return &Request{
		ID:          uuid.New(),
		CaseID:      caseID,
		Type:        t,
		Status:      StatusPending,
		Details:     d,
		RequestedBy: requestedBy,
		CreatedAt:   now,
	}, nil
}

func (r *Request) IsPending() bool { return r.Status == StatusPending }

// Effect describes what an approval did to the case, for audit and webhook consumers.
type Effect struct {
	Status     *booking.Status     `json:"status,omitempty"`
	LockStatus *booking.LockStatus `json:"lock_status,omitempty"`
	// SeatReleased is set when the case held a confirmed seat before the change.
	SeatReleased bool `json:"seat_released"`
}

// Resolve records the decision and, on approval, applies the type's side effect to c.
// A request resolves exactly once.
func (r *Request) Resolve(d Decision, reviewer uuid.UUID, reason *string, c *booking.Case, now time.Time) (Effect, error) {
	if !r.IsPending() {
		return Effect{}, errs.Newm(errs.ErrInvalidStateTransition, "amendment request %s is already %s", r.ID, r.Status)
	}
	if c == nil || c.ID() != r.CaseID {
		return Effect{}, errs.Newm(errs.ErrValidation, "amendment request %s does not belong to the given case", r.ID)
	}

	var effect Effect
	switch d {
	case DecisionApprove:
		heldSeat := c.IsConfirmed()
		switch r.Type {
		case TypeCancel:
			c.Cancel(now)
			effect.SeatReleased = heldSeat
		case TypeEdit:
			c.OpenForEdit(now)
		case TypeReschedule:
			c.AwaitReschedule(now)
			effect.SeatReleased = heldSeat
		}
		st, ls := c.Status(), c.LockStatus()
		effect.Status = &st
		effect.LockStatus = &ls
		r.Status = StatusApproved
	case DecisionReject:
		r.Status = StatusRejected
	default:
		return Effect{}, errs.Newm(errs.ErrValidation, "invalid decision %q", d)
	}

	r.ReviewedBy = &reviewer
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if trimmed != "" {
			r.Reason = &trimmed
		}
	}
	r.ResolvedAt = &now
	return effect, nil
}
