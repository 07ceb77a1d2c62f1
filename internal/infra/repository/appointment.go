package repository

import (
	"context"

	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/infra"
	"visa-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const appointmentColumns = `id, country, center, date, capacity, capacity_vip, status, price_book_id, version, created_at, updated_at`

type AppointmentRepository struct {
	db DBTX
}

func NewAppointmentRepository(db DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Country, a.Center, a.Date, a.Capacity, a.CapacityVIP, string(a.Status),
		pgconv.UUIDPtrToPgtype(a.PriceBookID), a.Version, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return infra.FromDBError("failed to create appointment", err, appointment.ErrAppointmentNotFound)
	}
	return nil
}

func (r *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return r.get(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
}

func (r *AppointmentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return r.get(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 FOR UPDATE`, id)
}

func (r *AppointmentRepository) get(ctx context.Context, query string, id uuid.UUID) (*appointment.Appointment, error) {
	var (
		a           appointment.Appointment
		status      string
		priceBookID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Country, &a.Center, &a.Date, &a.Capacity, &a.CapacityVIP, &status,
		&priceBookID, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, infra.FromDBError("failed to get appointment", err, appointment.ErrAppointmentNotFound)
	}
	a.Status = appointment.Status(status)
	a.PriceBookID = pgconv.UUIDPtrFromPgtype(priceBookID)
	return &a, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE appointments
		SET country = $2, center = $3, date = $4, capacity = $5, capacity_vip = $6,
		    status = $7, price_book_id = $8, version = $9, updated_at = $10
		WHERE id = $1`,
		a.ID, a.Country, a.Center, a.Date, a.Capacity, a.CapacityVIP, string(a.Status),
		pgconv.UUIDPtrToPgtype(a.PriceBookID), a.Version, a.UpdatedAt)
	if err != nil {
		return infra.FromDBError("failed to update appointment", err, appointment.ErrAppointmentNotFound)
	}
	return rowCount(tag, appointment.ErrAppointmentNotFound)
}
