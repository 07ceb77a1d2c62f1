package pricing

import (
	"math"
	"strings"
	"time"

	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrPriceOverrideNotFound = errs.Newm(errs.ErrNotFound, "price override not found")

type PriceOverride struct {
	ID            uuid.UUID
	Scope         OverrideScope
	Country       string
	Center        string
	AppointmentID *uuid.UUID
	ModifierType  ModifierType
	Value         float64
	SeatType      SeatType
	PassengerType PassengerType
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PriceOverrideInput struct {
	Scope         OverrideScope
	Country       string
	Center        string
	AppointmentID *uuid.UUID
	ModifierType  ModifierType
	Value         float64
	SeatType      SeatType
	PassengerType PassengerType
}

func NewPriceOverride(in PriceOverrideInput, now time.Time) (*PriceOverride, error) {
	o := &PriceOverride{
		ID:            uuid.New(),
		Scope:         in.Scope,
		ModifierType:  in.ModifierType,
		Value:         in.Value,
		SeatType:      in.SeatType,
		PassengerType: in.PassengerType,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch in.Scope {
	case ScopeCity:
		o.Country = strings.ToUpper(strings.TrimSpace(in.Country))
		o.Center = strings.TrimSpace(in.Center)
		if o.Country == "" || o.Center == "" {
			return nil, errs.Newm(errs.ErrValidation, "CITY override requires country and center")
		}
	case ScopeAppointment:
		if in.AppointmentID == nil || *in.AppointmentID == uuid.Nil {
			return nil, errs.Newm(errs.ErrValidation, "APPOINTMENT override requires an appointment id")
		}
		id := *in.AppointmentID
		o.AppointmentID = &id
	default:
		return nil, errs.Newm(errs.ErrValidation, "invalid override scope %q", in.Scope)
	}

	if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) || in.Value < 0 {
		return nil, errs.Newm(errs.ErrValidation, "override value must be a non-negative number")
	}
	switch in.ModifierType {
	case ModifierFixedPrice, ModifierDiscountAmount:
	case ModifierDiscountPercent:
		if in.Value > 100 {
			return nil, errs.Newm(errs.ErrValidation, "discount percent must be between 0 and 100")
		}
	default:
		return nil, errs.Newm(errs.ErrValidation, "invalid modifier type %q", in.ModifierType)
	}
	if in.SeatType == "" {
		o.SeatType = SeatTypeAll
	}
	if in.PassengerType == "" {
		o.PassengerType = PassengerAll
	}
	return o, nil
}

func (o *PriceOverride) Deactivate(now time.Time) {
	o.IsActive = false
	o.UpdatedAt = now
}

// MatchesCity reports whether a CITY override applies to the given location.
func (o *PriceOverride) MatchesCity(country, center string) bool {
	return o.IsActive && o.Scope == ScopeCity &&
		strings.EqualFold(o.Country, country) && strings.EqualFold(o.Center, center)
}

func (o *PriceOverride) MatchesAppointment(id uuid.UUID) bool {
	return o.IsActive && o.Scope == ScopeAppointment && o.AppointmentID != nil && *o.AppointmentID == id
}

// Apply computes the new value of one cell. The result is rounded to whole currency units and never negative.
func (o *PriceOverride) Apply(current int64) int64 {
	var v float64
	switch o.ModifierType {
	case ModifierFixedPrice:
		v = o.Value
	case ModifierDiscountAmount:
		v = float64(current) - o.Value
	case ModifierDiscountPercent:
		v = float64(current) * (1 - o.Value/100)
	default:
		return current
	}
	if v < 0 {
		v = 0
	}
	return int64(math.Round(v))
}
