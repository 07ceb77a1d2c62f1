package booking

import (
	"time"

	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCaseNotFound      = errs.Newm(errs.ErrNotFound, "case not found")
	ErrApplicantNotFound = errs.Newm(errs.ErrNotFound, "applicant not found")
)

// Case is a booking: an applicant roster bound to one appointment, priced by a locked snapshot.
type Case struct {
	id            uuid.UUID
	agencyID      uuid.UUID
	appointmentID uuid.UUID
	lockStatus    LockStatus
	status        Status
	applicants    []Applicant
	snapshot      PricingSnapshot
	submittedAt   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewCase(agencyID, appointmentID uuid.UUID, seat pricing.SeatType, res pricing.Resolution, now time.Time) (*Case, error) {
	if !seat.IsConcrete() {
		return nil, errs.Newm(errs.ErrValidation, "seat type must be NORMAL or VIP, got %q", seat)
	}
	return &Case{
		id:            uuid.New(),
		agencyID:      agencyID,
		appointmentID: appointmentID,
		lockStatus:    LockDraft,
		status:        StatusNew,
		applicants:    []Applicant{},
		snapshot:      NewSnapshot(seat, res, now),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructCase(
	id, agencyID, appointmentID uuid.UUID,
	lockStatus LockStatus,
	status Status,
	applicants []Applicant,
	snapshot PricingSnapshot,
	submittedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Case {
	roster := make([]Applicant, len(applicants))
	copy(roster, applicants)
	ids := make([]uuid.UUID, len(snapshot.AppliedOverrideIDs))
	copy(ids, snapshot.AppliedOverrideIDs)
	snapshot.AppliedOverrideIDs = ids
	return &Case{
		id:            id,
		agencyID:      agencyID,
		appointmentID: appointmentID,
		lockStatus:    lockStatus,
		status:        status,
		applicants:    roster,
		snapshot:      snapshot,
		submittedAt:   submittedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Clone returns a deep copy; stores hand out clones so callers never share rosters.
func (c *Case) Clone() *Case {
	return ReconstructCase(c.id, c.agencyID, c.appointmentID, c.lockStatus, c.status,
		c.applicants, c.snapshot, c.submittedAt, c.createdAt, c.updatedAt)
}

func (c *Case) IsEditable() bool {
	return c.lockStatus == LockDraft || c.lockStatus == LockEditOpen
}

func (c *Case) requireEditable() error {
	if !c.IsEditable() {
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s is %s and cannot be edited", c.id, c.lockStatus)
	}
	if c.status == StatusCancelled {
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s is cancelled", c.id)
	}
	return nil
}

func (c *Case) AddApplicant(a Applicant, ref, now time.Time) error {
	if err := c.requireEditable(); err != nil {
		return err
	}
	c.applicants = append(c.applicants, a)
	c.Recompute(ref, now)
	return nil
}

func (c *Case) RemoveApplicant(applicantID uuid.UUID, ref, now time.Time) error {
	if err := c.requireEditable(); err != nil {
		return err
	}
	for i, a := range c.applicants {
		if a.ID == applicantID {
			c.applicants = append(c.applicants[:i], c.applicants[i+1:]...)
			c.Recompute(ref, now)
			return nil
		}
	}
	return ErrApplicantNotFound
}

// Recompute refreshes counts and totals against the locked snapshot rates.
func (c *Case) Recompute(ref, now time.Time) {
	c.snapshot.Recompute(c.applicants, ref)
	c.updatedAt = now
}

// CanSubmit checks the lock state machine: DRAFT and EDIT_OPEN may submit, SUBMITTED may not.
func (c *Case) CanSubmit() error {
	if c.lockStatus == LockSubmitted {
		return errs.Newm(errs.ErrAlreadySubmitted, "case %s is already submitted", c.id)
	}
	if c.status == StatusCancelled {
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s is cancelled", c.id)
	}
	return nil
}

// Submit locks the case. A case that already holds a seat keeps it on resubmission.
func (c *Case) Submit(confirmed bool, now time.Time) error {
	if err := c.CanSubmit(); err != nil {
		return err
	}
	c.lockStatus = LockSubmitted
	if !c.status.IsConfirmed() {
		c.status = statusFor(confirmed)
	}
	c.submittedAt = &now
	c.updatedAt = now
	return nil
}

func (c *Case) CanPromote() error {
	if c.submittedAt == nil {
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s was never submitted", c.id)
	}
	switch c.status {
	case StatusReady:
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s is already confirmed", c.id)
	case StatusCancelled:
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s is cancelled", c.id)
	}
	return nil
}

func (c *Case) Promote(now time.Time) error {
	if err := c.CanPromote(); err != nil {
		return err
	}
	c.status = StatusReady
	c.updatedAt = now
	return nil
}

func (c *Case) CanReschedule(to uuid.UUID) error {
	if c.status == StatusCancelled {
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s is cancelled", c.id)
	}
	if c.appointmentID == to {
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s is already on appointment %s", c.id, to)
	}
	return nil
}

// Rebind moves the case to another appointment with a fresh capacity decision. Locked prices stay as they are.
func (c *Case) Rebind(appointmentID uuid.UUID, confirmed bool, now time.Time) error {
	if err := c.CanReschedule(appointmentID); err != nil {
		return err
	}
	c.appointmentID = appointmentID
	c.status = statusFor(confirmed)
	c.updatedAt = now
	return nil
}

// Cancel is the approved-CANCEL side effect.
func (c *Case) Cancel(now time.Time) {
	c.status = StatusCancelled
	c.updatedAt = now
}

// OpenForEdit is the approved-EDIT side effect.
func (c *Case) OpenForEdit(now time.Time) {
	c.lockStatus = LockEditOpen
	c.updatedAt = now
}

// AwaitReschedule is the approved-RESCHEDULE side effect; the seat is released until the case is rebound.
func (c *Case) AwaitReschedule(now time.Time) {
	c.status = StatusNew
	c.updatedAt = now
}

// SetLabel sets one of the informational statuses; capacity-significant ones have dedicated transitions.
func (c *Case) SetLabel(s Status, now time.Time) error {
	if s.IsCapacitySignificant() {
		return errs.Newm(errs.ErrInvalidStateTransition, "status %q is managed by the capacity workflow", s)
	}
	switch c.status {
	case StatusCancelled:
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s is cancelled", c.id)
	case StatusReady:
		// relabelling would silently release the seat
		return errs.Newm(errs.ErrInvalidStateTransition, "case %s holds a confirmed seat", c.id)
	}
	c.status = s
	c.updatedAt = now
	return nil
}

func statusFor(confirmed bool) Status {
	if confirmed {
		return StatusReady
	}
	return StatusNew
}

func (c *Case) ID() uuid.UUID             { return c.id }
func (c *Case) AgencyID() uuid.UUID       { return c.agencyID }
func (c *Case) AppointmentID() uuid.UUID  { return c.appointmentID }
func (c *Case) LockStatus() LockStatus    { return c.lockStatus }
func (c *Case) Status() Status            { return c.status }
func (c *Case) Snapshot() PricingSnapshot { return c.snapshot }
func (c *Case) SubmittedAt() *time.Time   { return c.submittedAt }
func (c *Case) CreatedAt() time.Time      { return c.createdAt }
func (c *Case) UpdatedAt() time.Time      { return c.updatedAt }
func (c *Case) IsConfirmed() bool         { return c.status.IsConfirmed() }

func (c *Case) Applicants() []Applicant {
	out := make([]Applicant, len(c.applicants))
	copy(out, c.applicants)
	return out
}
