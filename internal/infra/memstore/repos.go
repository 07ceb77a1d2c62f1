package memstore

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"time"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/infra"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

func duplicate(entity string) error {
	return infra.WrapRepoErr(infra.KindDuplicateKey, entity+" already exists", nil)
}

type appointmentRepo struct{ t *memTx }

func (r appointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.appointments[a.ID]; ok {
		return duplicate("appointment")
	}
	r.t.st.appointments[a.ID] = cloneAppointment(*a)
	return nil
}

func (r appointmentRepo) Get(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.t.st.appointments[id]
	if !ok {
		return nil, infra.NotFound(appointment.ErrAppointmentNotFound)
	}
	out := cloneAppointment(a)
	return &out, nil
}

// GetForUpdate needs no extra locking: the transaction already holds the store lock.
func (r appointmentRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return r.Get(ctx, id)
}

func (r appointmentRepo) Update(_ context.Context, a *appointment.Appointment) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.appointments[a.ID]; !ok {
		return infra.NotFound(appointment.ErrAppointmentNotFound)
	}
	r.t.st.appointments[a.ID] = cloneAppointment(*a)
	return nil
}

type caseRepo struct{ t *memTx }

func (r caseRepo) Create(_ context.Context, c *booking.Case) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.cases[c.ID()]; ok {
		return duplicate("case")
	}
	if _, ok := r.t.st.appointments[c.AppointmentID()]; !ok {
		return infra.WrapRepoErr(infra.KindForeignKeyViolated, "case references an unknown appointment", nil)
	}
	r.t.st.cases[c.ID()] = c.Clone()
	return nil
}

func (r caseRepo) Get(_ context.Context, id uuid.UUID) (*booking.Case, error) {
	c, ok := r.t.st.cases[id]
	if !ok {
		return nil, infra.NotFound(booking.ErrCaseNotFound)
	}
	return c.Clone(), nil
}

// GetForUpdate needs no extra locking: the transaction already holds the store lock.
func (r caseRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Case, error) {
	return r.Get(ctx, id)
}

func (r caseRepo) Update(_ context.Context, c *booking.Case) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.cases[c.ID()]; !ok {
		return infra.NotFound(booking.ErrCaseNotFound)
	}
	r.t.st.cases[c.ID()] = c.Clone()
	return nil
}

func (r caseRepo) ConfirmedCountForAppointment(_ context.Context, appointmentID uuid.UUID) (int, error) {
	n := 0
	for _, c := range r.t.st.cases {
		if c.AppointmentID() == appointmentID && c.IsConfirmed() {
			n++
		}
	}
	return n, nil
}

type priceBookRepo struct{ t *memTx }

func (r priceBookRepo) Create(_ context.Context, b *pricing.PriceBook) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.priceBooks[b.ID]; ok {
		return duplicate("price book")
	}
	for _, other := range r.t.st.priceBooks {
		if other.Code == b.Code {
			return duplicate("price book code " + b.Code)
		}
	}
	r.t.st.priceBooks[b.ID] = clonePriceBook(*b)
	return nil
}

func (r priceBookRepo) Get(_ context.Context, id uuid.UUID) (*pricing.PriceBook, error) {
	b, ok := r.t.st.priceBooks[id]
	if !ok {
		return nil, infra.NotFound(pricing.ErrPriceBookNotFound)
	}
	out := clonePriceBook(b)
	return &out, nil
}

func (r priceBookRepo) Update(_ context.Context, b *pricing.PriceBook) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.priceBooks[b.ID]; !ok {
		return infra.NotFound(pricing.ErrPriceBookNotFound)
	}
	for id, other := range r.t.st.priceBooks {
		if id != b.ID && other.Code == b.Code {
			return duplicate("price book code " + b.Code)
		}
	}
	r.t.st.priceBooks[b.ID] = clonePriceBook(*b)
	return nil
}

func (r priceBookRepo) ListActiveByCountry(_ context.Context, country string) ([]pricing.PriceBook, error) {
	var out []pricing.PriceBook
	for _, b := range r.t.st.priceBooks {
		if b.IsActive && strings.EqualFold(b.Country, country) {
			out = append(out, clonePriceBook(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type overrideRepo struct{ t *memTx }

func (r overrideRepo) Create(_ context.Context, o *pricing.PriceOverride) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.overrides[o.ID]; ok {
		return duplicate("price override")
	}
	r.t.st.overrides[o.ID] = cloneOverride(*o)
	return nil
}

func (r overrideRepo) Get(_ context.Context, id uuid.UUID) (*pricing.PriceOverride, error) {
	o, ok := r.t.st.overrides[id]
	if !ok {
		return nil, infra.NotFound(pricing.ErrPriceOverrideNotFound)
	}
	out := cloneOverride(o)
	return &out, nil
}

func (r overrideRepo) Update(_ context.Context, o *pricing.PriceOverride) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.overrides[o.ID]; !ok {
		return infra.NotFound(pricing.ErrPriceOverrideNotFound)
	}
	r.t.st.overrides[o.ID] = cloneOverride(*o)
	return nil
}

func (r overrideRepo) ListActiveFor(_ context.Context, country, center string, appointmentID uuid.UUID) ([]pricing.PriceOverride, error) {
	var out []pricing.PriceOverride
	for _, o := range r.t.st.overrides {
		if o.MatchesCity(country, center) || o.MatchesAppointment(appointmentID) {
			out = append(out, cloneOverride(o))
		}
	}
	return out, nil
}

type amendmentRepo struct{ t *memTx }

func (r amendmentRepo) Create(_ context.Context, a *amendment.Request) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.amendments[a.ID]; ok {
		return duplicate("amendment request")
	}
	r.t.st.amendments[a.ID] = cloneAmendment(*a)
	return nil
}

func (r amendmentRepo) Get(_ context.Context, id uuid.UUID) (*amendment.Request, error) {
	a, ok := r.t.st.amendments[id]
	if !ok {
		return nil, infra.NotFound(amendment.ErrRequestNotFound)
	}
	out := cloneAmendment(a)
	return &out, nil
}

func (r amendmentRepo) Update(_ context.Context, a *amendment.Request) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.amendments[a.ID]; !ok {
		return infra.NotFound(amendment.ErrRequestNotFound)
	}
	r.t.st.amendments[a.ID] = cloneAmendment(*a)
	return nil
}

func (r amendmentRepo) ListByCase(_ context.Context, caseID uuid.UUID) ([]amendment.Request, error) {
	out := []amendment.Request{}
	for _, a := range r.t.st.amendments {
		if a.CaseID == caseID {
			out = append(out, cloneAmendment(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r amendmentRepo) HasPending(_ context.Context, caseID uuid.UUID) (bool, error) {
	for _, a := range r.t.st.amendments {
		if a.CaseID == caseID && a.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

type webhookLogRepo struct{ t *memTx }

func (r webhookLogRepo) Create(_ context.Context, l *webhook.Log) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.webhookLogs[l.ID]; ok {
		return duplicate("webhook log")
	}
	r.t.st.webhookLogs[l.ID] = cloneLog(*l)
	return nil
}

func (r webhookLogRepo) Get(_ context.Context, id uuid.UUID) (*webhook.Log, error) {
	l, ok := r.t.st.webhookLogs[id]
	if !ok {
		return nil, infra.NotFound(webhook.ErrLogNotFound)
	}
	out := cloneLog(l)
	return &out, nil
}

func (r webhookLogRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*webhook.Log, error) {
	return r.Get(ctx, id)
}

func (r webhookLogRepo) Update(_ context.Context, l *webhook.Log) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, ok := r.t.st.webhookLogs[l.ID]; !ok {
		return infra.NotFound(webhook.ErrLogNotFound)
	}
	r.t.st.webhookLogs[l.ID] = cloneLog(*l)
	return nil
}

func (r webhookLogRepo) ListDue(_ context.Context, now time.Time, limit int) ([]webhook.Log, error) {
	var out []webhook.Log
	for _, l := range r.t.st.webhookLogs {
		if l.IsDue(now) {
			out = append(out, cloneLog(l))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextAttemptAt.Equal(*out[j].NextAttemptAt) {
			return out[i].NextAttemptAt.Before(*out[j].NextAttemptAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type auditRepo struct{ t *memTx }

func (r auditRepo) Record(_ context.Context, e shared.AuditEntry) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	e.Details = slices.Clone(e.Details)
	r.t.st.audit = append(r.t.st.audit, e)
	return nil
}

func cloneAppointment(a appointment.Appointment) appointment.Appointment {
	a.PriceBookID = clonePtr(a.PriceBookID)
	return a
}

func clonePriceBook(b pricing.PriceBook) pricing.PriceBook {
	b.Center = clonePtr(b.Center)
	return b
}

func cloneOverride(o pricing.PriceOverride) pricing.PriceOverride {
	o.AppointmentID = clonePtr(o.AppointmentID)
	return o
}

func cloneAmendment(a amendment.Request) amendment.Request {
	a.ReviewedBy = clonePtr(a.ReviewedBy)
	a.Reason = clonePtr(a.Reason)
	a.ResolvedAt = clonePtr(a.ResolvedAt)
	return a
}

func cloneLog(l webhook.Log) webhook.Log {
	l.Payload = json.RawMessage(slices.Clone([]byte(l.Payload)))
	l.RequestBody = slices.Clone(l.RequestBody)
	l.ResponseBody = json.RawMessage(slices.Clone([]byte(l.ResponseBody)))
	l.Signature = clonePtr(l.Signature)
	l.ResponseStatus = clonePtr(l.ResponseStatus)
	l.Error = clonePtr(l.Error)
	l.ErrorKind = clonePtr(l.ErrorKind)
	l.NextAttemptAt = clonePtr(l.NextAttemptAt)
	l.RetryOf = clonePtr(l.RetryOf)
	return l
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
