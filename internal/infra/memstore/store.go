// Package memstore is an in-process implementation of the unit of work, used by
// tests and by local runs without Postgres. Every transaction holds one store-wide
// lock, which also stands in for row locks.
package memstore

import (
	"context"
	"maps"
	"sync"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errs.New("write attempted in a read-only transaction")

type state struct {
	appointments map[uuid.UUID]appointment.Appointment
	cases        map[uuid.UUID]*booking.Case
	priceBooks   map[uuid.UUID]pricing.PriceBook
	overrides    map[uuid.UUID]pricing.PriceOverride
	amendments   map[uuid.UUID]amendment.Request
	webhookLogs  map[uuid.UUID]webhook.Log
	audit        []shared.AuditEntry
}

// snapshot is cheap because stored values are never mutated in place; writes replace map entries.
func (s *state) snapshot() state {
	return state{
		appointments: maps.Clone(s.appointments),
		cases:        maps.Clone(s.cases),
		priceBooks:   maps.Clone(s.priceBooks),
		overrides:    maps.Clone(s.overrides),
		amendments:   maps.Clone(s.amendments),
		webhookLogs:  maps.Clone(s.webhookLogs),
		audit:        s.audit[:len(s.audit):len(s.audit)],
	}
}

type Store struct {
	mu sync.Mutex
	st state
}

func New() *Store {
	return &Store{st: state{
		appointments: map[uuid.UUID]appointment.Appointment{},
		cases:        map[uuid.UUID]*booking.Case{},
		priceBooks:   map[uuid.UUID]pricing.PriceBook{},
		overrides:    map[uuid.UUID]pricing.PriceOverride{},
		amendments:   map[uuid.UUID]amendment.Request{},
		webhookLogs:  map[uuid.UUID]webhook.Log{},
	}}
}

func NewUoW(s *Store) shared.UnitOfWork {
	return s
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.st.snapshot()
	if err := fn(ctx, &memTx{st: &s.st}); err != nil {
		s.st = before
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &memTx{st: &s.st, readOnly: true})
}

// AuditEntries returns a copy of the audit trail.
func (s *Store) AuditEntries() []shared.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.AuditEntry, len(s.st.audit))
	copy(out, s.st.audit)
	return out
}

type memTx struct {
	st       *state
	readOnly bool
}

func (t *memTx) writable() error {
	if t.readOnly {
		return errReadOnly
	}
	return nil
}

func (t *memTx) Appointments() shared.AppointmentRepository     { return appointmentRepo{t} }
func (t *memTx) Cases() shared.CaseRepository                   { return caseRepo{t} }
func (t *memTx) PriceBooks() shared.PriceBookRepository         { return priceBookRepo{t} }
func (t *memTx) PriceOverrides() shared.PriceOverrideRepository { return overrideRepo{t} }
func (t *memTx) Amendments() shared.AmendmentRepository         { return amendmentRepo{t} }
func (t *memTx) WebhookLogs() shared.WebhookLogRepository       { return webhookLogRepo{t} }
func (t *memTx) Audit() shared.AuditRepository                  { return auditRepo{t} }
