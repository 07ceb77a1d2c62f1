package request

import (
	"strings"
	"time"

	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type PriceBookRequest struct {
	Name                string       `json:"name" binding:"required"`
	Country             string       `json:"country" binding:"required"`
	Center              *string      `json:"center,omitempty"`
	Prices              pricing.Grid `json:"prices"`
	Currency            string       `json:"currency" binding:"required"`
	IsDefaultForCountry bool         `json:"is_default_for_country"`
}

func (r PriceBookRequest) ToInput() pricing.PriceBookInput {
	return pricing.PriceBookInput{
		Name:                r.Name,
		Country:             r.Country,
		Center:              r.Center,
		Prices:              r.Prices,
		Currency:            r.Currency,
		IsDefaultForCountry: r.IsDefaultForCountry,
	}
}

type PriceOverrideRequest struct {
	Scope         string     `json:"scope" binding:"required"`
	Country       string     `json:"country"`
	Center        string     `json:"center"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	ModifierType  string     `json:"modifier_type" binding:"required"`
	Value         float64    `json:"value"`
	SeatType      string     `json:"seat_type" binding:"required"`
	PassengerType string     `json:"passenger_type" binding:"required"`
}

func (r PriceOverrideRequest) ToInput() (pricing.PriceOverrideInput, error) {
	scope, err := pricing.ParseOverrideScope(strings.TrimSpace(r.Scope))
	if err != nil {
		return pricing.PriceOverrideInput{}, err
	}
	mod, err := pricing.ParseModifierType(strings.TrimSpace(r.ModifierType))
	if err != nil {
		return pricing.PriceOverrideInput{}, err
	}
	seat, err := pricing.ParseSeatType(strings.TrimSpace(r.SeatType))
	if err != nil {
		return pricing.PriceOverrideInput{}, err
	}
	pax, err := pricing.ParsePassengerType(strings.TrimSpace(r.PassengerType))
	if err != nil {
		return pricing.PriceOverrideInput{}, err
	}
	return pricing.PriceOverrideInput{
		Scope:         scope,
		Country:       r.Country,
		Center:        r.Center,
		AppointmentID: r.AppointmentID,
		ModifierType:  mod,
		Value:         r.Value,
		SeatType:      seat,
		PassengerType: pax,
	}, nil
}

type CreateAppointmentRequest struct {
	Country     string     `json:"country" binding:"required"`
	Center      string     `json:"center" binding:"required"`
	Date        string     `json:"date" binding:"required,calendardate"`
	Capacity    int        `json:"capacity"`
	CapacityVIP int        `json:"capacity_vip"`
	PriceBookID *uuid.UUID `json:"price_book_id,omitempty"`
}

func (r CreateAppointmentRequest) ToInput() (appointment.Input, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return appointment.Input{}, errs.Newm(errs.ErrValidation, "date must be YYYY-MM-DD")
	}
	return appointment.Input{
		Country:     r.Country,
		Center:      r.Center,
		Date:        date,
		Capacity:    r.Capacity,
		CapacityVIP: r.CapacityVIP,
		PriceBookID: r.PriceBookID,
	}, nil
}

type AppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r AppointmentStatusRequest) ToStatus() (appointment.Status, error) {
	return appointment.ParseStatus(strings.TrimSpace(r.Status))
}
