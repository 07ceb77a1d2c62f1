package repository

import (
	"context"

	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/infra"
	"visa-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const overrideColumns = `id, scope, country, center, appointment_id, modifier_type, value,
	seat_type, passenger_type, is_active, created_at, updated_at`

type PriceOverrideRepository struct {
	db DBTX
}

func NewPriceOverrideRepository(db DBTX) *PriceOverrideRepository {
	return &PriceOverrideRepository{db: db}
}

func (r *PriceOverrideRepository) Create(ctx context.Context, o *pricing.PriceOverride) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO price_overrides (`+overrideColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, string(o.Scope), o.Country, o.Center, pgconv.UUIDPtrToPgtype(o.AppointmentID),
		string(o.ModifierType), o.Value, string(o.SeatType), string(o.PassengerType),
		o.IsActive, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return infra.FromDBError("failed to create price override", err, pricing.ErrPriceOverrideNotFound)
	}
	return nil
}

func (r *PriceOverrideRepository) Get(ctx context.Context, id uuid.UUID) (*pricing.PriceOverride, error) {
	o, err := scanOverride(r.db.QueryRow(ctx, `SELECT `+overrideColumns+` FROM price_overrides WHERE id = $1`, id))
	if err != nil {
		return nil, infra.FromDBError("failed to get price override", err, pricing.ErrPriceOverrideNotFound)
	}
	return o, nil
}

// Update only persists the mutable flags; an override's rule is immutable once created.
func (r *PriceOverrideRepository) Update(ctx context.Context, o *pricing.PriceOverride) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE price_overrides SET is_active = $2, updated_at = $3 WHERE id = $1`,
		o.ID, o.IsActive, o.UpdatedAt)
	if err != nil {
		return infra.FromDBError("failed to update price override", err, pricing.ErrPriceOverrideNotFound)
	}
	return rowCount(tag, pricing.ErrPriceOverrideNotFound)
}

func (r *PriceOverrideRepository) ListActiveFor(ctx context.Context, country, center string, appointmentID uuid.UUID) ([]pricing.PriceOverride, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+overrideColumns+`
		FROM price_overrides
		WHERE is_active
		  AND ((scope = 'CITY' AND upper(country) = upper($1) AND lower(center) = lower($2))
		    OR (scope = 'APPOINTMENT' AND appointment_id = $3))
		ORDER BY created_at, id`, country, center, appointmentID)
	if err != nil {
		return nil, infra.FromDBError("failed to list price overrides", err, pricing.ErrPriceOverrideNotFound)
	}
	defer rows.Close()

	var out []pricing.PriceOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, infra.FromDBError("failed to scan price override", err, pricing.ErrPriceOverrideNotFound)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.FromDBError("failed to list price overrides", err, pricing.ErrPriceOverrideNotFound)
	}
	return out, nil
}

func scanOverride(row pgx.Row) (*pricing.PriceOverride, error) {
	var (
		o                                        pricing.PriceOverride
		scope, modifier, seatType, passengerType string
		appointmentID                            pgtype.UUID
	)
	err := row.Scan(&o.ID, &scope, &o.Country, &o.Center, &appointmentID, &modifier, &o.Value,
		&seatType, &passengerType, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Scope = pricing.OverrideScope(scope)
	o.ModifierType = pricing.ModifierType(modifier)
	o.SeatType = pricing.SeatType(seatType)
	o.PassengerType = pricing.PassengerType(passengerType)
	o.AppointmentID = pgconv.UUIDPtrFromPgtype(appointmentID)
	return &o, nil
}
