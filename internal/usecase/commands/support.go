package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxRelockAttempts = 3

var errAppointmentMoved = errs.New("case moved to another appointment while waiting for the lock")

// outbox collects the webhook logs written by one business transaction.
// The ids are handed to the delivery queue only after commit.
type outbox struct {
	ids []uuid.UUID
}

// reset must run at the top of every transaction attempt so a retried
// transaction does not enqueue logs that were rolled back.
func (o *outbox) reset() { o.ids = o.ids[:0] }

func (o *outbox) record(ctx context.Context, tx shared.Tx, e webhook.Event, now time.Time) error {
	l, err := webhook.NewLog(e, now)
	if err != nil {
		return err
	}
	if err = tx.WebhookLogs().Create(ctx, l); err != nil {
		return err
	}
	o.ids = append(o.ids, l.ID)
	return nil
}

func (o *outbox) flush(q shared.WebhookQueue) {
	if q != nil && len(o.ids) > 0 {
		q.Enqueue(o.ids...)
	}
}

// recordAudit writes outside the business transaction; a failure is logged and swallowed.
func recordAudit(ctx context.Context, uow shared.UnitOfWork, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, details any, now time.Time) {
	raw, err := json.Marshal(details)
	if err != nil {
		slog.Warn("failed to encode audit details", "action", action, "error", err.Error())
		raw = json.RawMessage(`{}`)
	}
	entry := shared.AuditEntry{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    raw,
		CreatedAt:  now,
	}
	err = uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Audit().Record(ctx, entry)
	})
	if err != nil {
		slog.Warn("audit write failed", "action", action, "entity_id", entityID, "error", err.Error())
	}
}

// caseGuard serializes work on a case with its current appointment. The appointment id
// is read first, locked, and re-checked inside the transaction; a case that moved in
// between is retried against its new appointment.
type caseGuard struct {
	uow    shared.UnitOfWork
	locker shared.AppointmentLocker
}

func (g caseGuard) run(
	ctx context.Context,
	caseID uuid.UUID,
	extra []uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx, c *booking.Case) error,
) error {
	for attempt := 0; attempt < maxRelockAttempts; attempt++ {
		apptID, err := g.peekAppointment(ctx, caseID)
		if err != nil {
			return err
		}

		err = g.runLocked(ctx, caseID, apptID, extra, fn)
		if errs.Is(err, errAppointmentMoved) {
			slog.Info("case moved while waiting for appointment lock, retrying", "case_id", caseID, "attempt", attempt+1)
			continue
		}
		return err
	}
	return errs.Newm(errs.ErrInvalidStateTransition, "case %s keeps moving between appointments", caseID)
}

func (g caseGuard) runLocked(
	ctx context.Context,
	caseID, apptID uuid.UUID,
	extra []uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx, c *booking.Case) error,
) error {
	unlock, err := g.locker.Lock(ctx, append([]uuid.UUID{apptID}, extra...)...)
	if err != nil {
		return err
	}
	defer unlock()

	return g.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Cases().GetForUpdate(ctx, caseID)
		if err != nil {
			return err
		}
		if c.AppointmentID() != apptID {
			return errAppointmentMoved
		}
		return fn(ctx, tx, c)
	})
}

func (g caseGuard) peekAppointment(ctx context.Context, caseID uuid.UUID) (uuid.UUID, error) {
	var apptID uuid.UUID
	err := g.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Cases().Get(ctx, caseID)
		if err != nil {
			return err
		}
		apptID = c.AppointmentID()
		return nil
	})
	return apptID, err
}
