package commands

import (
	"context"
	"log/slog"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/user"
	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/pkg/clock"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type FileAmendmentRequest struct {
	Type    amendment.Type
	Details string
}

type ResolveAmendmentRequest struct {
	Decision amendment.Decision
	Reason   *string
}

type ResolveAmendmentResult struct {
	Request             *amendment.Request
	Case                *booking.Case
	Effect              amendment.Effect
	AppointmentReopened bool
}

type AmendmentCommands interface {
	FileAmendment(ctx context.Context, actor user.Actor, caseID uuid.UUID, req FileAmendmentRequest) (*amendment.Request, error)
	ResolveAmendment(ctx context.Context, actor user.Actor, requestID uuid.UUID, req ResolveAmendmentRequest) (*ResolveAmendmentResult, error)
}

type amendmentUseCaseImpl struct {
	uow   shared.UnitOfWork
	guard caseGuard
	queue shared.WebhookQueue
	clock clock.Clock
}

func NewAmendmentUseCase(uow shared.UnitOfWork, locker shared.AppointmentLocker, queue shared.WebhookQueue, clk clock.Clock) AmendmentCommands {
	return &amendmentUseCaseImpl{
		uow:   uow,
		guard: caseGuard{uow: uow, locker: locker},
		queue: queue,
		clock: clk,
	}
}

func (uc *amendmentUseCaseImpl) FileAmendment(ctx context.Context, actor user.Actor, caseID uuid.UUID, req FileAmendmentRequest) (*amendment.Request, error) {
	var (
		created *amendment.Request
		ob      outbox
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ob.reset()
		c, err := tx.Cases().Get(ctx, caseID)
		if err != nil {
			return err
		}
		if err = actor.RequireAgency(c.AgencyID()); err != nil {
			return err
		}
		if c.LockStatus() != booking.LockSubmitted {
			return errs.Newm(errs.ErrInvalidStateTransition, "case %s is %s; amendments require a submitted case", c.ID(), c.LockStatus())
		}
		if c.Status() == booking.StatusCancelled {
			return errs.Newm(errs.ErrInvalidStateTransition, "case %s is cancelled", c.ID())
		}
		pending, err := tx.Amendments().HasPending(ctx, caseID)
		if err != nil {
			return err
		}
		if pending {
			return errs.Newm(errs.ErrInvalidStateTransition, "case %s already has a pending amendment request", c.ID())
		}

		now := uc.clock.Now()
		r, err := amendment.NewRequest(caseID, req.Type, req.Details, actor.UserID, now)
		if err != nil {
			return err
		}
		if err = tx.Amendments().Create(ctx, r); err != nil {
			return err
		}
		err = ob.record(ctx, tx, webhook.AmendmentRequestCreated{
			RequestID:   r.ID,
			CaseID:      caseID,
			RequestType: string(r.Type),
			Details:     r.Details,
			RequestedBy: actor.UserID,
			CreatedAt:   now,
		}, now)
		if err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	ob.flush(uc.queue)

	slog.Info("amendment request filed", "request_id", created.ID, "case_id", caseID, "type", created.Type)
	return created, nil
}

func (uc *amendmentUseCaseImpl) ResolveAmendment(ctx context.Context, actor user.Actor, requestID uuid.UUID, req ResolveAmendmentRequest) (*ResolveAmendmentResult, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	caseID, err := uc.caseOf(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var (
		out ResolveAmendmentResult
		ob  outbox
	)
	err = uc.guard.run(ctx, caseID, nil, func(ctx context.Context, tx shared.Tx, c *booking.Case) error {
		ob.reset()
		r, err := tx.Amendments().Get(ctx, requestID)
		if err != nil {
			return err
		}
		appt, err := tx.Appointments().GetForUpdate(ctx, c.AppointmentID())
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		effect, err := r.Resolve(req.Decision, actor.UserID, req.Reason, c, now)
		if err != nil {
			return err
		}
		if err = tx.Amendments().Update(ctx, r); err != nil {
			return err
		}

		reopened := false
		if r.Status == amendment.StatusApproved {
			if err = tx.Cases().Update(ctx, c); err != nil {
				return err
			}
			if effect.SeatReleased {
				confirmed, err := tx.Cases().ConfirmedCountForAppointment(ctx, appt.ID)
				if err != nil {
					return err
				}
				if appt.SyncFullness(confirmed, now) {
					reopened = true
					if err = tx.Appointments().Update(ctx, appt); err != nil {
						return err
					}
				}
			}
		}

		err = ob.record(ctx, tx, webhook.AmendmentDecision{
			RequestID:   r.ID,
			CaseID:      c.ID(),
			RequestType: string(r.Type),
			Decision:    string(req.Decision),
			Reason:      r.Reason,
			ReviewedBy:  actor.UserID,
			ResolvedAt:  now,
			Effects:     decisionEffects(effect, reopened),
		}, now)
		if err != nil {
			return err
		}
		out = ResolveAmendmentResult{Request: r, Case: c, Effect: effect, AppointmentReopened: reopened}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ob.flush(uc.queue)

	recordAudit(ctx, uc.uow, actor.UserID, "amendment."+string(out.Request.Status), "amendment_request", requestID, map[string]any{
		"case_id":              caseID,
		"type":                 out.Request.Type,
		"reason":               out.Request.Reason,
		"effect":               out.Effect,
		"appointment_reopened": out.AppointmentReopened,
	}, uc.clock.Now())

	slog.Info("amendment request resolved",
		"request_id", requestID,
		"case_id", caseID,
		"status", out.Request.Status,
		"seat_released", out.Effect.SeatReleased)
	return &out, nil
}

func (uc *amendmentUseCaseImpl) caseOf(ctx context.Context, requestID uuid.UUID) (uuid.UUID, error) {
	var caseID uuid.UUID
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Amendments().Get(ctx, requestID)
		if err != nil {
			return err
		}
		caseID = r.CaseID
		return nil
	})
	return caseID, err
}

func decisionEffects(e amendment.Effect, reopened bool) webhook.DecisionEffects {
	out := webhook.DecisionEffects{SeatReleased: e.SeatReleased, Reopened: reopened}
	if e.Status != nil {
		s := e.Status.String()
		out.Status = &s
	}
	if e.LockStatus != nil {
		l := e.LockStatus.String()
		out.LockStatus = &l
	}
	return out
}
