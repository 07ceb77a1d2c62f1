package booking

import (
	"time"

	"visa-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

type Counts struct {
	Adult  int `json:"adult"`
	Child  int `json:"child"`
	Infant int `json:"infant"`
}

func (c Counts) Total() int { return c.Adult + c.Child + c.Infant }

func (c *Counts) add(p pricing.PassengerType) {
	switch p {
	case pricing.PassengerAdult:
		c.Adult++
	case pricing.PassengerChild:
		c.Child++
	case pricing.PassengerInfant:
		c.Infant++
	}
}

// PricingSnapshot freezes the prices a case was created with.
// Prices is written once by NewSnapshot; Recompute only touches counts and totals.
type PricingSnapshot struct {
	SeatType           pricing.SeatType `json:"seat_type"`
	Counts             Counts           `json:"counts"`
	Prices             pricing.Grid     `json:"prices"`
	PriceBookID        uuid.UUID        `json:"price_book_id"`
	AppliedOverrideIDs []uuid.UUID      `json:"applied_override_ids"`
	Subtotal           int64            `json:"subtotal"`
	Total              int64            `json:"total"`
	Currency           string           `json:"currency"`
	CapturedAt         time.Time        `json:"captured_at"`
}

func NewSnapshot(seat pricing.SeatType, res pricing.Resolution, now time.Time) PricingSnapshot {
	ids := make([]uuid.UUID, len(res.AppliedOverrideIDs))
	copy(ids, res.AppliedOverrideIDs)
	return PricingSnapshot{
		SeatType:           seat,
		Prices:             res.Prices,
		PriceBookID:        res.PriceBookID,
		AppliedOverrideIDs: ids,
		Currency:           res.Currency,
		CapturedAt:         now,
	}
}

// UnitPrice is the locked rate for one passenger type at the snapshot's seat type.
func (s PricingSnapshot) UnitPrice(p pricing.PassengerType) int64 {
	return s.Prices.Get(s.SeatType, p)
}

// Recompute rebuilds counts and totals from the roster using the locked rates.
func (s *PricingSnapshot) Recompute(applicants []Applicant, ref time.Time) {
	var counts Counts
	for _, a := range applicants {
		counts.add(PassengerTypeAt(a.BirthDate, ref))
	}
	s.Counts = counts
	s.Subtotal = int64(counts.Adult)*s.UnitPrice(pricing.PassengerAdult) +
		int64(counts.Child)*s.UnitPrice(pricing.PassengerChild) +
		int64(counts.Infant)*s.UnitPrice(pricing.PassengerInfant)
	s.Total = s.Subtotal
}
