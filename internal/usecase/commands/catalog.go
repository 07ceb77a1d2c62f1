package commands

import (
	"context"
	"log/slog"

	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/domain/user"
	"visa-booking/internal/pkg/clock"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// CatalogCommands are the admin writes on price books, overrides and appointments.
type CatalogCommands interface {
	CreatePriceBook(ctx context.Context, actor user.Actor, in pricing.PriceBookInput) (*pricing.PriceBook, error)
	UpdatePriceBook(ctx context.Context, actor user.Actor, id uuid.UUID, in pricing.PriceBookInput) (*pricing.PriceBook, error)
	DeactivatePriceBook(ctx context.Context, actor user.Actor, id uuid.UUID) (*pricing.PriceBook, error)
	CreatePriceOverride(ctx context.Context, actor user.Actor, in pricing.PriceOverrideInput) (*pricing.PriceOverride, error)
	DeactivatePriceOverride(ctx context.Context, actor user.Actor, id uuid.UUID) (*pricing.PriceOverride, error)
	CreateAppointment(ctx context.Context, actor user.Actor, in appointment.Input) (*appointment.Appointment, error)
	ChangeAppointmentStatus(ctx context.Context, actor user.Actor, id uuid.UUID, to appointment.Status) (*appointment.Appointment, error)
}

type catalogUseCaseImpl struct {
	uow    shared.UnitOfWork
	locker shared.AppointmentLocker
	clock  clock.Clock
}

func NewCatalogUseCase(uow shared.UnitOfWork, locker shared.AppointmentLocker, clk clock.Clock) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, locker: locker, clock: clk}
}

func (uc *catalogUseCaseImpl) CreatePriceBook(ctx context.Context, actor user.Actor, in pricing.PriceBookInput) (*pricing.PriceBook, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	var out *pricing.PriceBook
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := pricing.NewPriceBook(in, uc.clock.Now())
		if err != nil {
			return err
		}
		if err = tx.PriceBooks().Create(ctx, b); err != nil {
			return err
		}
		if err = uc.demoteOtherDefaults(ctx, tx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("price book created", "price_book_id", out.ID, "code", out.Code, "country", out.Country)
	return out, nil
}

func (uc *catalogUseCaseImpl) UpdatePriceBook(ctx context.Context, actor user.Actor, id uuid.UUID, in pricing.PriceBookInput) (*pricing.PriceBook, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	var out *pricing.PriceBook
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.PriceBooks().Get(ctx, id)
		if err != nil {
			return err
		}
		if err = b.Update(in, uc.clock.Now()); err != nil {
			return err
		}
		if err = tx.PriceBooks().Update(ctx, b); err != nil {
			return err
		}
		if err = uc.demoteOtherDefaults(ctx, tx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *catalogUseCaseImpl) DeactivatePriceBook(ctx context.Context, actor user.Actor, id uuid.UUID) (*pricing.PriceBook, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	var out *pricing.PriceBook
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.PriceBooks().Get(ctx, id)
		if err != nil {
			return err
		}
		b.Deactivate(uc.clock.Now())
		if err = tx.PriceBooks().Update(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// demoteOtherDefaults keeps at most one active default book per country.
func (uc *catalogUseCaseImpl) demoteOtherDefaults(ctx context.Context, tx shared.Tx, b *pricing.PriceBook) error {
	if !b.IsActive || !b.IsDefaultForCountry {
		return nil
	}
	books, err := tx.PriceBooks().ListActiveByCountry(ctx, b.Country)
	if err != nil {
		return err
	}
	now := uc.clock.Now()
	for i := range books {
		other := books[i]
		if other.ID == b.ID || !other.IsDefaultForCountry {
			continue
		}
		other.IsDefaultForCountry = false
		other.UpdatedAt = now
		if err = tx.PriceBooks().Update(ctx, &other); err != nil {
			return err
		}
		slog.Info("price book lost country default", "price_book_id", other.ID, "replaced_by", b.ID)
	}
	return nil
}

func (uc *catalogUseCaseImpl) CreatePriceOverride(ctx context.Context, actor user.Actor, in pricing.PriceOverrideInput) (*pricing.PriceOverride, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	var out *pricing.PriceOverride
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := pricing.NewPriceOverride(in, uc.clock.Now())
		if err != nil {
			return err
		}
		if o.AppointmentID != nil {
			if _, err = tx.Appointments().Get(ctx, *o.AppointmentID); err != nil {
				return err
			}
		}
		if err = tx.PriceOverrides().Create(ctx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("price override created", "override_id", out.ID, "scope", out.Scope, "modifier", out.ModifierType)
	return out, nil
}

func (uc *catalogUseCaseImpl) DeactivatePriceOverride(ctx context.Context, actor user.Actor, id uuid.UUID) (*pricing.PriceOverride, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	var out *pricing.PriceOverride
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.PriceOverrides().Get(ctx, id)
		if err != nil {
			return err
		}
		o.Deactivate(uc.clock.Now())
		if err = tx.PriceOverrides().Update(ctx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *catalogUseCaseImpl) CreateAppointment(ctx context.Context, actor user.Actor, in appointment.Input) (*appointment.Appointment, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	var out *appointment.Appointment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := appointment.New(in, uc.clock.Now())
		if err != nil {
			return err
		}
		if a.PriceBookID != nil {
			if _, err = tx.PriceBooks().Get(ctx, *a.PriceBookID); err != nil {
				return err
			}
		}
		// a zero-capacity slot is full from the start
		a.SyncFullness(0, a.CreatedAt)
		if err = tx.Appointments().Create(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("appointment created", "appointment_id", out.ID, "country", out.Country, "center", out.Center, "capacity", out.Capacity)
	return out, nil
}

func (uc *catalogUseCaseImpl) ChangeAppointmentStatus(ctx context.Context, actor user.Actor, id uuid.UUID, to appointment.Status) (*appointment.Appointment, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	unlock, err := uc.locker.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var out *appointment.Appointment
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Appointments().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if err = a.ChangeStatus(to, now); err != nil {
			return err
		}
		if a.Status == appointment.StatusOpen {
			confirmed, err := tx.Cases().ConfirmedCountForAppointment(ctx, a.ID)
			if err != nil {
				return err
			}
			a.SyncFullness(confirmed, now)
		}
		if err = tx.Appointments().Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("appointment status changed", "appointment_id", id, "status", out.Status, "changed_by", actor.UserID)
	return out, nil
}
