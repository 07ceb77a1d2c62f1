package appointment

import (
	"strings"
	"time"

	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errs.Newm(errs.ErrNotFound, "appointment not found")

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusFull      Status = "FULL"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) String() string { return string(s) }

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusOpen, StatusFull, StatusCancelled, StatusCompleted:
		return st, nil
	default:
		return "", errs.Newm(errs.ErrValidation, "invalid appointment status %q", s)
	}
}

// IsClosed reports whether the slot no longer takes bookings of any kind, waitlisted included.
func (s Status) IsClosed() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type Appointment struct {
	ID          uuid.UUID
	Country     string
	Center      string
	Date        time.Time
	Capacity    int
	CapacityVIP int
	Status      Status
	PriceBookID *uuid.UUID
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Input struct {
	Country     string
	Center      string
	Date        time.Time
	Capacity    int
	CapacityVIP int
	PriceBookID *uuid.UUID
}

func New(in Input, now time.Time) (*Appointment, error) {
	country := strings.ToUpper(strings.TrimSpace(in.Country))
	center := strings.TrimSpace(in.Center)
	if country == "" || center == "" {
		return nil, errs.Newm(errs.ErrValidation, "appointment requires country and center")
	}
	if in.Date.IsZero() {
		return nil, errs.Newm(errs.ErrValidation, "appointment requires a date")
	}
	if in.Capacity < 0 || in.CapacityVIP < 0 {
		return nil, errs.Newm(errs.ErrValidation, "capacity cannot be negative")
	}
	return &Appointment{
		ID:          uuid.New(),
		Country:     country,
		Center:      center,
		Date:        in.Date,
		Capacity:    in.Capacity,
		CapacityVIP: in.CapacityVIP,
		Status:      StatusOpen,
		PriceBookID: in.PriceBookID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ChangeStatus is the administrative transition (cancel, complete, reopen).
// FULL is reached only through capacity decisions.
func (a *Appointment) ChangeStatus(to Status, now time.Time) error {
	if a.Status == to {
		return nil
	}
	if a.Status.IsClosed() {
		return errs.Newm(errs.ErrInvalidStateTransition, "appointment %s is %s", a.ID, a.Status)
	}
	switch to {
	case StatusCancelled, StatusCompleted, StatusOpen:
	default:
		return errs.Newm(errs.ErrInvalidStateTransition, "appointment cannot be set to %s directly", to)
	}
	a.Status = to
	a.touch(now)
	return nil
}

func (a *Appointment) PricingTarget() pricing.Target {
	return pricing.Target{
		AppointmentID: a.ID,
		Country:       a.Country,
		Center:        a.Center,
		PriceBookID:   a.PriceBookID,
	}
}

func (a *Appointment) touch(now time.Time) {
	a.UpdatedAt = now
	a.Version++
}
