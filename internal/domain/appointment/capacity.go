package appointment

import (
	"time"

	"visa-booking/internal/pkg/errs"
)

// Decision is the outcome of a capacity check for one case.
type Decision int

const (
	DecisionWaitlisted Decision = iota
	DecisionConfirmed
)

func (d Decision) String() string {
	if d == DecisionConfirmed {
		return "confirmed"
	}
	return "waitlisted"
}

// Decide grants a seat while confirmed stays below capacity; otherwise the case is waitlisted.
// Closed appointments refuse both outcomes.
func (a *Appointment) Decide(confirmed int) (Decision, error) {
	if a.Status.IsClosed() {
		return DecisionWaitlisted, errs.Newm(errs.ErrAppointmentNotOpen, "appointment %s is %s", a.ID, a.Status)
	}
	if confirmed < a.Capacity {
		return DecisionConfirmed, nil
	}
	return DecisionWaitlisted, nil
}

// RequireSeat is the strict variant used by promotion: it fails instead of waitlisting.
func (a *Appointment) RequireSeat(confirmed int) error {
	if a.Status.IsClosed() {
		return errs.Newm(errs.ErrAppointmentNotOpen, "appointment %s is %s", a.ID, a.Status)
	}
	if confirmed >= a.Capacity {
		return errs.Newm(errs.ErrCapacityExceeded, "appointment %s has %d/%d seats confirmed", a.ID, confirmed, a.Capacity)
	}
	return nil
}

// RequireOpen guards operations that need a bookable slot, such as rescheduling into it.
func (a *Appointment) RequireOpen() error {
	if a.Status != StatusOpen {
		return errs.Newm(errs.ErrAppointmentNotOpen, "appointment %s is %s", a.ID, a.Status)
	}
	return nil
}

// SyncFullness flips OPEN to FULL once confirmed reaches capacity and FULL back to OPEN when a seat frees up.
// It returns true when the status changed.
func (a *Appointment) SyncFullness(confirmed int, now time.Time) bool {
	switch {
	case a.Status == StatusOpen && confirmed >= a.Capacity:
		a.Status = StatusFull
	case a.Status == StatusFull && confirmed < a.Capacity:
		a.Status = StatusOpen
	default:
		return false
	}
	a.touch(now)
	return true
}
