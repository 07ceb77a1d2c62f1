package commands

import (
	"context"
	"log/slog"

	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/user"
	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/pkg/clock"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CapacityResult struct {
	Case        *booking.Case
	Appointment *appointment.Appointment
	// ConfirmedCount is the appointment's confirmed seats after the operation.
	ConfirmedCount int
}

type RescheduleResult struct {
	CapacityResult
	Source         *appointment.Appointment
	SourceReopened bool
}

type CapacityCommands interface {
	SubmitBooking(ctx context.Context, actor user.Actor, caseID uuid.UUID) (*CapacityResult, error)
	PromoteWaitlisted(ctx context.Context, actor user.Actor, caseID uuid.UUID) (*CapacityResult, error)
	RescheduleBooking(ctx context.Context, actor user.Actor, caseID, newAppointmentID uuid.UUID) (*RescheduleResult, error)
	ConfirmedCount(ctx context.Context, appointmentID uuid.UUID) (int, error)
}

type capacityUseCaseImpl struct {
	uow   shared.UnitOfWork
	guard caseGuard
	queue shared.WebhookQueue
	clock clock.Clock
}

func NewCapacityUseCase(uow shared.UnitOfWork, locker shared.AppointmentLocker, queue shared.WebhookQueue, clk clock.Clock) CapacityCommands {
	return &capacityUseCaseImpl{
		uow:   uow,
		guard: caseGuard{uow: uow, locker: locker},
		queue: queue,
		clock: clk,
	}
}

func (uc *capacityUseCaseImpl) ConfirmedCount(ctx context.Context, appointmentID uuid.UUID) (int, error) {
	var n int
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Appointments().Get(ctx, appointmentID); err != nil {
			return err
		}
		var err error
		n, err = tx.Cases().ConfirmedCountForAppointment(ctx, appointmentID)
		return err
	})
	return n, err
}

func (uc *capacityUseCaseImpl) SubmitBooking(ctx context.Context, actor user.Actor, caseID uuid.UUID) (*CapacityResult, error) {
	var (
		out CapacityResult
		ob  outbox
	)
	err := uc.guard.run(ctx, caseID, nil, func(ctx context.Context, tx shared.Tx, c *booking.Case) error {
		ob.reset()
		if err := actor.RequireAgency(c.AgencyID()); err != nil {
			return err
		}
		if err := c.CanSubmit(); err != nil {
			return err
		}
		appt, err := tx.Appointments().GetForUpdate(ctx, c.AppointmentID())
		if err != nil {
			return err
		}
		confirmed, err := tx.Cases().ConfirmedCountForAppointment(ctx, appt.ID)
		if err != nil {
			return err
		}

		decision, err := appt.Decide(confirmed)
		if err != nil {
			return err
		}
		// a resubmitted case that already holds a seat keeps it
		granted := c.IsConfirmed()
		if !granted && decision == appointment.DecisionConfirmed {
			granted = true
			confirmed++
		}

		now := uc.clock.Now()
		if err = c.Submit(granted, now); err != nil {
			return err
		}
		if err = tx.Cases().Update(ctx, c); err != nil {
			return err
		}
		if appt.SyncFullness(confirmed, now) {
			if err = tx.Appointments().Update(ctx, appt); err != nil {
				return err
			}
		}

		snap := c.Snapshot()
		err = ob.record(ctx, tx, webhook.CaseSubmitted{
			CaseID:            c.ID(),
			AgencyID:          c.AgencyID(),
			AppointmentID:     appt.ID,
			Status:            c.Status().String(),
			Confirmed:         c.IsConfirmed(),
			AppointmentStatus: appt.Status.String(),
			Applicants:        snap.Counts.Total(),
			Total:             snap.Total,
			Currency:          snap.Currency,
			SubmittedAt:       now,
		}, now)
		if err != nil {
			return err
		}
		out = CapacityResult{Case: c, Appointment: appt, ConfirmedCount: confirmed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ob.flush(uc.queue)

	slog.Info("case submitted",
		"case_id", caseID,
		"appointment_id", out.Appointment.ID,
		"status", out.Case.Status(),
		"confirmed_count", out.ConfirmedCount,
		"appointment_status", out.Appointment.Status)
	return &out, nil
}

func (uc *capacityUseCaseImpl) PromoteWaitlisted(ctx context.Context, actor user.Actor, caseID uuid.UUID) (*CapacityResult, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	var (
		out CapacityResult
		ob  outbox
	)
	err := uc.guard.run(ctx, caseID, nil, func(ctx context.Context, tx shared.Tx, c *booking.Case) error {
		ob.reset()
		appt, err := tx.Appointments().GetForUpdate(ctx, c.AppointmentID())
		if err != nil {
			return err
		}
		if err = c.CanPromote(); err != nil {
			return err
		}
		confirmed, err := tx.Cases().ConfirmedCountForAppointment(ctx, appt.ID)
		if err != nil {
			return err
		}
		if err = appt.RequireSeat(confirmed); err != nil {
			return err
		}

		now := uc.clock.Now()
		if err = c.Promote(now); err != nil {
			return err
		}
		confirmed++
		if err = tx.Cases().Update(ctx, c); err != nil {
			return err
		}
		if appt.SyncFullness(confirmed, now) {
			if err = tx.Appointments().Update(ctx, appt); err != nil {
				return err
			}
		}

		err = ob.record(ctx, tx, webhook.WaitlistPromoted{
			CaseID:            c.ID(),
			AppointmentID:     appt.ID,
			PromotedBy:        actor.UserID,
			ConfirmedCount:    confirmed,
			Capacity:          appt.Capacity,
			AppointmentStatus: appt.Status.String(),
		}, now)
		if err != nil {
			return err
		}
		out = CapacityResult{Case: c, Appointment: appt, ConfirmedCount: confirmed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ob.flush(uc.queue)

	slog.Info("waitlisted case promoted",
		"case_id", caseID,
		"appointment_id", out.Appointment.ID,
		"confirmed_count", out.ConfirmedCount,
		"promoted_by", actor.UserID)
	return &out, nil
}

func (uc *capacityUseCaseImpl) RescheduleBooking(ctx context.Context, actor user.Actor, caseID, newAppointmentID uuid.UUID) (*RescheduleResult, error) {
	var (
		out RescheduleResult
		ob  outbox
	)
	err := uc.guard.run(ctx, caseID, []uuid.UUID{newAppointmentID}, func(ctx context.Context, tx shared.Tx, c *booking.Case) error {
		ob.reset()
		if err := actor.RequireAgency(c.AgencyID()); err != nil {
			return err
		}
		if err := c.CanReschedule(newAppointmentID); err != nil {
			return err
		}

		source, target, err := lockPair(ctx, tx, c.AppointmentID(), newAppointmentID)
		if err != nil {
			return err
		}
		if err = target.RequireOpen(); err != nil {
			return err
		}
		targetConfirmed, err := tx.Cases().ConfirmedCountForAppointment(ctx, target.ID)
		if err != nil {
			return err
		}
		decision, err := target.Decide(targetConfirmed)
		if err != nil {
			return err
		}
		// a case that was never submitted moves without taking part in the capacity decision
		granted := c.SubmittedAt() != nil && decision == appointment.DecisionConfirmed
		if granted {
			targetConfirmed++
		}

		now := uc.clock.Now()
		heldSeat := c.IsConfirmed()
		if err = c.Rebind(target.ID, granted, now); err != nil {
			return err
		}
		// the roster is re-bucketed against the new appointment date; unit prices stay locked
		c.Recompute(target.Date, now)
		if err = tx.Cases().Update(ctx, c); err != nil {
			return err
		}

		if target.SyncFullness(targetConfirmed, now) {
			if err = tx.Appointments().Update(ctx, target); err != nil {
				return err
			}
		}
		reopened := false
		if heldSeat {
			sourceConfirmed, err := tx.Cases().ConfirmedCountForAppointment(ctx, source.ID)
			if err != nil {
				return err
			}
			if source.SyncFullness(sourceConfirmed, now) {
				reopened = true
				if err = tx.Appointments().Update(ctx, source); err != nil {
					return err
				}
			}
		}

		err = ob.record(ctx, tx, webhook.CaseRescheduled{
			CaseID:            c.ID(),
			FromAppointmentID: source.ID,
			ToAppointmentID:   target.ID,
			Status:            c.Status().String(),
			Confirmed:         c.IsConfirmed(),
			RescheduledBy:     actor.UserID,
			SourceReopened:    reopened,
			TargetStatus:      target.Status.String(),
		}, now)
		if err != nil {
			return err
		}
		out = RescheduleResult{
			CapacityResult: CapacityResult{Case: c, Appointment: target, ConfirmedCount: targetConfirmed},
			Source:         source,
			SourceReopened: reopened,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ob.flush(uc.queue)

	slog.Info("case rescheduled",
		"case_id", caseID,
		"from_appointment_id", out.Source.ID,
		"to_appointment_id", out.Appointment.ID,
		"status", out.Case.Status(),
		"source_reopened", out.SourceReopened)
	return &out, nil
}

// lockPair row-locks two appointments in id order so concurrent reschedules in
// opposite directions cannot deadlock.
func lockPair(ctx context.Context, tx shared.Tx, sourceID, targetID uuid.UUID) (source, target *appointment.Appointment, err error) {
	first, second := sourceID, targetID
	if first.String() > second.String() {
		first, second = second, first
	}
	a, err := tx.Appointments().GetForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := tx.Appointments().GetForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	if a.ID == sourceID {
		return a, b, nil
	}
	return b, a, nil
}
