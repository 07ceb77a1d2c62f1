package queries

import (
	"context"

	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PricingQueries interface {
	ResolvePrices(ctx context.Context, appointmentID uuid.UUID) (*pricing.Resolution, error)
}

type pricingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewPricingQueries(uow shared.UnitOfWork) PricingQueries {
	return &pricingQueriesImpl{uow: uow}
}

func (q *pricingQueriesImpl) ResolvePrices(ctx context.Context, appointmentID uuid.UUID) (*pricing.Resolution, error) {
	var res pricing.Resolution
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().Get(ctx, appointmentID)
		if err != nil {
			return err
		}
		res, err = ResolveWithin(ctx, tx, appt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ResolveWithin prices appt using the catalog visible to tx. Callers that store the
// result pass their write transaction so the snapshot and the case commit together.
func ResolveWithin(ctx context.Context, tx shared.Tx, appt *appointment.Appointment) (pricing.Resolution, error) {
	target := appt.PricingTarget()

	var explicit *pricing.PriceBook
	if target.PriceBookID != nil {
		b, err := tx.PriceBooks().Get(ctx, *target.PriceBookID)
		switch {
		case err == nil:
			explicit = b
		case errs.Is(err, errs.ErrNotFound):
			// a dangling reference falls back to the country books
		default:
			return pricing.Resolution{}, err
		}
	}

	var countryBooks []pricing.PriceBook
	if explicit == nil || !explicit.IsActive {
		books, err := tx.PriceBooks().ListActiveByCountry(ctx, target.Country)
		if err != nil {
			return pricing.Resolution{}, err
		}
		countryBooks = books
	}

	book, err := pricing.SelectPriceBook(target, explicit, countryBooks)
	if err != nil {
		return pricing.Resolution{}, err
	}

	overrides, err := tx.PriceOverrides().ListActiveFor(ctx, target.Country, target.Center, target.AppointmentID)
	if err != nil {
		return pricing.Resolution{}, err
	}
	return pricing.Resolve(target, book, overrides), nil
}
