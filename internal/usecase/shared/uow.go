package shared

import (
	"context"
	"time"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/domain/webhook"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to one transaction.
type Tx interface {
	Appointments() AppointmentRepository
	Cases() CaseRepository
	PriceBooks() PriceBookRepository
	PriceOverrides() PriceOverrideRepository
	Amendments() AmendmentRepository
	WebhookLogs() WebhookLogRepository
	Audit() AuditRepository
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *appointment.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	// GetForUpdate holds a row lock on the appointment until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	Update(ctx context.Context, a *appointment.Appointment) error
}

type CaseRepository interface {
	Create(ctx context.Context, c *booking.Case) error
	Get(ctx context.Context, id uuid.UUID) (*booking.Case, error)
	// GetForUpdate holds a row lock on the case until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Case, error)
	Update(ctx context.Context, c *booking.Case) error
	ConfirmedCountForAppointment(ctx context.Context, appointmentID uuid.UUID) (int, error)
}

type PriceBookRepository interface {
	Create(ctx context.Context, b *pricing.PriceBook) error
	Get(ctx context.Context, id uuid.UUID) (*pricing.PriceBook, error)
	Update(ctx context.Context, b *pricing.PriceBook) error
	ListActiveByCountry(ctx context.Context, country string) ([]pricing.PriceBook, error)
}

type PriceOverrideRepository interface {
	Create(ctx context.Context, o *pricing.PriceOverride) error
	Get(ctx context.Context, id uuid.UUID) (*pricing.PriceOverride, error)
	Update(ctx context.Context, o *pricing.PriceOverride) error
	// ListActiveFor returns active CITY overrides for (country, center) and active
	// APPOINTMENT overrides for appointmentID, in no particular order.
	ListActiveFor(ctx context.Context, country, center string, appointmentID uuid.UUID) ([]pricing.PriceOverride, error)
}

type AmendmentRepository interface {
	Create(ctx context.Context, r *amendment.Request) error
	Get(ctx context.Context, id uuid.UUID) (*amendment.Request, error)
	Update(ctx context.Context, r *amendment.Request) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]amendment.Request, error)
	HasPending(ctx context.Context, caseID uuid.UUID) (bool, error)
}

type WebhookLogRepository interface {
	Create(ctx context.Context, l *webhook.Log) error
	Get(ctx context.Context, id uuid.UUID) (*webhook.Log, error)
	// GetForUpdate holds a row lock on the log until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*webhook.Log, error)
	Update(ctx context.Context, l *webhook.Log) error
	// ListDue returns logs whose next attempt is at or before now, oldest first.
	ListDue(ctx context.Context, now time.Time, limit int) ([]webhook.Log, error)
}

type AuditRepository interface {
	Record(ctx context.Context, e AuditEntry) error
}
