package commands

import (
	"context"
	"log/slog"
	"time"

	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/domain/user"
	"visa-booking/internal/pkg/clock"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/queries"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	AppointmentID uuid.UUID
	SeatType      pricing.SeatType
	// AgencyID is only honoured for admins; agents always book for their own agency.
	AgencyID *uuid.UUID
}

type AddApplicantRequest struct {
	FullName       string
	PassportNumber string
	BirthDate      time.Time
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, actor user.Actor, req CreateBookingRequest) (*booking.Case, error)
	AddApplicant(ctx context.Context, actor user.Actor, caseID uuid.UUID, req AddApplicantRequest) (*booking.Case, error)
	RemoveApplicant(ctx context.Context, actor user.Actor, caseID, applicantID uuid.UUID) (*booking.Case, error)
	RecomputeBooking(ctx context.Context, actor user.Actor, caseID uuid.UUID) (*booking.Case, error)
	UpdateCaseStatus(ctx context.Context, actor user.Actor, caseID uuid.UUID, status booking.Status) (*booking.Case, error)
}

type bookingUseCaseImpl struct {
	uow   shared.UnitOfWork
	guard caseGuard
	clock clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, locker shared.AppointmentLocker, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:   uow,
		guard: caseGuard{uow: uow, locker: locker},
		clock: clk,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, actor user.Actor, req CreateBookingRequest) (*booking.Case, error) {
	agencyID, err := owningAgency(actor, req.AgencyID)
	if err != nil {
		return nil, err
	}

	var created *booking.Case
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().Get(ctx, req.AppointmentID)
		if err != nil {
			return err
		}
		if appt.Status.IsClosed() {
			return errs.Newm(errs.ErrAppointmentNotOpen, "appointment %s is %s", appt.ID, appt.Status)
		}

		res, err := queries.ResolveWithin(ctx, tx, appt)
		if err != nil {
			return err
		}
		c, err := booking.NewCase(agencyID, appt.ID, req.SeatType, res, uc.clock.Now())
		if err != nil {
			return err
		}
		if err = tx.Cases().Create(ctx, c); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("case created",
		"case_id", created.ID(),
		"appointment_id", created.AppointmentID(),
		"price_book_id", created.Snapshot().PriceBookID)
	return created, nil
}

func (uc *bookingUseCaseImpl) AddApplicant(ctx context.Context, actor user.Actor, caseID uuid.UUID, req AddApplicantRequest) (*booking.Case, error) {
	a, err := booking.NewApplicant(req.FullName, req.PassportNumber, req.BirthDate)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, actor, caseID, func(c *booking.Case, appt *appointment.Appointment, now time.Time) error {
		return c.AddApplicant(a, appt.Date, now)
	})
}

func (uc *bookingUseCaseImpl) RemoveApplicant(ctx context.Context, actor user.Actor, caseID, applicantID uuid.UUID) (*booking.Case, error) {
	return uc.mutate(ctx, actor, caseID, func(c *booking.Case, appt *appointment.Appointment, now time.Time) error {
		return c.RemoveApplicant(applicantID, appt.Date, now)
	})
}

// RecomputeBooking refreshes counts and totals, for example after the appointment date moved
// an applicant across an age boundary. Unit prices stay locked.
func (uc *bookingUseCaseImpl) RecomputeBooking(ctx context.Context, actor user.Actor, caseID uuid.UUID) (*booking.Case, error) {
	return uc.mutate(ctx, actor, caseID, func(c *booking.Case, appt *appointment.Appointment, now time.Time) error {
		c.Recompute(appt.Date, now)
		return nil
	})
}

func (uc *bookingUseCaseImpl) UpdateCaseStatus(ctx context.Context, actor user.Actor, caseID uuid.UUID, status booking.Status) (*booking.Case, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, actor, caseID, func(c *booking.Case, _ *appointment.Appointment, now time.Time) error {
		return c.SetLabel(status, now)
	})
}

func (uc *bookingUseCaseImpl) mutate(
	ctx context.Context,
	actor user.Actor,
	caseID uuid.UUID,
	fn func(c *booking.Case, appt *appointment.Appointment, now time.Time) error,
) (*booking.Case, error) {
	// whole-row write: same locks as a capacity decision
	var out *booking.Case
	err := uc.guard.run(ctx, caseID, nil, func(ctx context.Context, tx shared.Tx, c *booking.Case) error {
		if err := actor.RequireAgency(c.AgencyID()); err != nil {
			return err
		}
		appt, err := tx.Appointments().GetForUpdate(ctx, c.AppointmentID())
		if err != nil {
			return err
		}
		if err = fn(c, appt, uc.clock.Now()); err != nil {
			return err
		}
		if err = tx.Cases().Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func owningAgency(actor user.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if actor.IsAdmin() {
		if requested == nil || *requested == uuid.Nil {
			return uuid.Nil, errs.Newm(errs.ErrValidation, "agency_id is required when an admin creates a case")
		}
		return *requested, nil
	}
	if actor.AgencyID == nil {
		return uuid.Nil, errs.Newm(errs.ErrUnauthorized, "caller has no agency")
	}
	return *actor.AgencyID, nil
}
