//go:build unit || e2e

package builder

import (
	"time"

	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/pricing"
	reqdto "visa-booking/internal/handler/dto/request"
	"visa-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

// Fixed reference date shared by the builders so age buckets are deterministic.
var BaseDate = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

type PriceBookBuilder struct {
	Name                string
	Country             string
	Center              *string
	Prices              pricing.Grid
	Currency            string
	IsDefaultForCountry bool
}

func NewPriceBookBuilder() *PriceBookBuilder {
	return &PriceBookBuilder{
		Name:    "Standard",
		Country: "FR",
		Prices: pricing.Grid{
			Normal: pricing.Rates{Adult: 450, Child: 300, Infant: 100},
			VIP:    pricing.Rates{Adult: 900, Child: 600, Infant: 200},
		},
		Currency:            "EUR",
		IsDefaultForCountry: true,
	}
}

func (b *PriceBookBuilder) With(mutate func(*PriceBookBuilder)) *PriceBookBuilder {
	mutate(b)
	return b
}

func (b *PriceBookBuilder) WithCenter(center string) *PriceBookBuilder {
	b.Center = patch.Ptr(center)
	return b
}

func (b *PriceBookBuilder) BuildInput() pricing.PriceBookInput {
	return pricing.PriceBookInput{
		Name:                b.Name,
		Country:             b.Country,
		Center:              b.Center,
		Prices:              b.Prices,
		Currency:            b.Currency,
		IsDefaultForCountry: b.IsDefaultForCountry,
	}
}

func (b *PriceBookBuilder) BuildDomain(now time.Time) *pricing.PriceBook {
	pb, err := pricing.NewPriceBook(b.BuildInput(), now)
	if err != nil {
		panic(err)
	}
	return pb
}

func (b *PriceBookBuilder) BuildRequestDTO() reqdto.PriceBookRequest {
	return reqdto.PriceBookRequest{
		Name:                b.Name,
		Country:             b.Country,
		Center:              b.Center,
		Prices:              b.Prices,
		Currency:            b.Currency,
		IsDefaultForCountry: b.IsDefaultForCountry,
	}
}

type OverrideBuilder struct {
	in pricing.PriceOverrideInput
}

// NewCityOverrideBuilder starts from a CITY override on FR/Paris covering the whole grid.
func NewCityOverrideBuilder() *OverrideBuilder {
	return &OverrideBuilder{in: pricing.PriceOverrideInput{
		Scope:         pricing.ScopeCity,
		Country:       "FR",
		Center:        "Paris",
		ModifierType:  pricing.ModifierFixedPrice,
		Value:         100,
		SeatType:      pricing.SeatTypeAll,
		PassengerType: pricing.PassengerAll,
	}}
}

func NewAppointmentOverrideBuilder(appointmentID uuid.UUID) *OverrideBuilder {
	return &OverrideBuilder{in: pricing.PriceOverrideInput{
		Scope:         pricing.ScopeAppointment,
		AppointmentID: &appointmentID,
		ModifierType:  pricing.ModifierFixedPrice,
		Value:         100,
		SeatType:      pricing.SeatTypeAll,
		PassengerType: pricing.PassengerAll,
	}}
}

func (b *OverrideBuilder) Modifier(m pricing.ModifierType, value float64) *OverrideBuilder {
	b.in.ModifierType = m
	b.in.Value = value
	return b
}

func (b *OverrideBuilder) Cells(seat pricing.SeatType, passenger pricing.PassengerType) *OverrideBuilder {
	b.in.SeatType = seat
	b.in.PassengerType = passenger
	return b
}

func (b *OverrideBuilder) BuildInput() pricing.PriceOverrideInput {
	return b.in
}

func (b *OverrideBuilder) BuildDomain(now time.Time) *pricing.PriceOverride {
	o, err := pricing.NewPriceOverride(b.in, now)
	if err != nil {
		panic(err)
	}
	return o
}

type AppointmentBuilder struct {
	Country     string
	Center      string
	Date        time.Time
	Capacity    int
	CapacityVIP int
	PriceBookID *uuid.UUID
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		Country:     "FR",
		Center:      "Paris",
		Date:        BaseDate,
		Capacity:    2,
		CapacityVIP: 1,
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

func (b *AppointmentBuilder) WithCapacity(n int) *AppointmentBuilder {
	b.Capacity = n
	return b
}

func (b *AppointmentBuilder) BuildInput() appointment.Input {
	return appointment.Input{
		Country:     b.Country,
		Center:      b.Center,
		Date:        b.Date,
		Capacity:    b.Capacity,
		CapacityVIP: b.CapacityVIP,
		PriceBookID: b.PriceBookID,
	}
}

func (b *AppointmentBuilder) BuildDomain(now time.Time) *appointment.Appointment {
	a, err := appointment.New(b.BuildInput(), now)
	if err != nil {
		panic(err)
	}
	return a
}

func (b *AppointmentBuilder) BuildRequestDTO() reqdto.CreateAppointmentRequest {
	return reqdto.CreateAppointmentRequest{
		Country:     b.Country,
		Center:      b.Center,
		Date:        b.Date.Format("2006-01-02"),
		Capacity:    b.Capacity,
		CapacityVIP: b.CapacityVIP,
		PriceBookID: b.PriceBookID,
	}
}
