package queries

import (
	"context"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/user"
	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingQueries interface {
	GetBooking(ctx context.Context, actor user.Actor, caseID uuid.UUID) (*booking.Case, error)
	ListAmendments(ctx context.Context, actor user.Actor, caseID uuid.UUID) ([]amendment.Request, error)
	GetWebhookLog(ctx context.Context, actor user.Actor, logID uuid.UUID) (*webhook.Log, error)
}

type bookingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBookingQueries(uow shared.UnitOfWork) BookingQueries {
	return &bookingQueriesImpl{uow: uow}
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actor user.Actor, caseID uuid.UUID) (*booking.Case, error) {
	var c *booking.Case
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		c, err = tx.Cases().Get(ctx, caseID)
		if err != nil {
			return err
		}
		return actor.RequireAgency(c.AgencyID())
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (q *bookingQueriesImpl) ListAmendments(ctx context.Context, actor user.Actor, caseID uuid.UUID) ([]amendment.Request, error) {
	var out []amendment.Request
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Cases().Get(ctx, caseID)
		if err != nil {
			return err
		}
		if err = actor.RequireAgency(c.AgencyID()); err != nil {
			return err
		}
		out, err = tx.Amendments().ListByCase(ctx, caseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (q *bookingQueriesImpl) GetWebhookLog(ctx context.Context, actor user.Actor, logID uuid.UUID) (*webhook.Log, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	var l *webhook.Log
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		l, err = tx.WebhookLogs().Get(ctx, logID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}
