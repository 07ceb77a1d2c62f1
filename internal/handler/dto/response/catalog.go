package response

import (
	"time"

	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AppointmentResponse struct {
	ID          uuid.UUID          `json:"id"`
	Country     string             `json:"country"`
	Center      string             `json:"center"`
	Date        string             `json:"date"`
	Capacity    int                `json:"capacity"`
	CapacityVIP int                `json:"capacity_vip"`
	Status      appointment.Status `json:"status"`
	PriceBookID *uuid.UUID         `json:"price_book_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func FromAppointment(a *appointment.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:          a.ID,
		Country:     a.Country,
		Center:      a.Center,
		Date:        a.Date.Format("2006-01-02"),
		Capacity:    a.Capacity,
		CapacityVIP: a.CapacityVIP,
		Status:      a.Status,
		PriceBookID: a.PriceBookID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type PriceBookResponse struct {
	ID                  uuid.UUID    `json:"id"`
	Name                string       `json:"name"`
	Code                string       `json:"code"`
	Country             string       `json:"country"`
	Center              *string      `json:"center,omitempty"`
	Prices              pricing.Grid `json:"prices"`
	Currency            string       `json:"currency"`
	IsActive            bool         `json:"is_active"`
	IsDefaultForCountry bool         `json:"is_default_for_country"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

func FromPriceBook(b *pricing.PriceBook) (*PriceBookResponse, error) {
	var out PriceBookResponse
	if err := copier.Copy(&out, b); err != nil {
		return nil, err
	}
	return &out, nil
}

type PriceOverrideResponse struct {
	ID            uuid.UUID             `json:"id"`
	Scope         pricing.OverrideScope `json:"scope"`
	Country       string                `json:"country,omitempty"`
	Center        string                `json:"center,omitempty"`
	AppointmentID *uuid.UUID            `json:"appointment_id,omitempty"`
	ModifierType  pricing.ModifierType  `json:"modifier_type"`
	Value         float64               `json:"value"`
	SeatType      pricing.SeatType      `json:"seat_type"`
	PassengerType pricing.PassengerType `json:"passenger_type"`
	IsActive      bool                  `json:"is_active"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func FromPriceOverride(o *pricing.PriceOverride) (*PriceOverrideResponse, error) {
	var out PriceOverrideResponse
	if err := copier.Copy(&out, o); err != nil {
		return nil, err
	}
	return &out, nil
}

type ResolutionResponse struct {
	Currency           string       `json:"currency"`
	PriceBookID        uuid.UUID    `json:"price_book_id"`
	AppliedOverrideIDs []uuid.UUID  `json:"applied_override_ids"`
	Prices             pricing.Grid `json:"prices"`
}

func FromResolution(r *pricing.Resolution) *ResolutionResponse {
	applied := r.AppliedOverrideIDs
	if applied == nil {
		applied = []uuid.UUID{}
	}
	return &ResolutionResponse{
		Currency:           r.Currency,
		PriceBookID:        r.PriceBookID,
		AppliedOverrideIDs: applied,
		Prices:             r.Prices,
	}
}
