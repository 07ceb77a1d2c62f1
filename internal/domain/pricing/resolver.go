package pricing

import (
	"sort"

	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// Target is the part of an appointment the catalog needs to price it.
type Target struct {
	AppointmentID uuid.UUID
	Country       string
	Center        string
	PriceBookID   *uuid.UUID
}

type Resolution struct {
	Currency           string
	PriceBookID        uuid.UUID
	AppliedOverrideIDs []uuid.UUID
	Prices             Grid
}

// SelectPriceBook picks the book that prices target.
// Order: the explicit book when set and active, then the active country default, then any active book.
// Among equals a center-specific book beats a country-wide one and older beats newer.
func SelectPriceBook(target Target, explicit *PriceBook, countryBooks []PriceBook) (*PriceBook, error) {
	if explicit != nil && explicit.IsActive {
		return explicit, nil
	}

	eligible := make([]PriceBook, 0, len(countryBooks))
	for _, b := range countryBooks {
		if b.IsActive && b.AppliesTo(target.Country, target.Center) {
			eligible = append(eligible, b)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		ci, cj := eligible[i].Center != nil, eligible[j].Center != nil
		if ci != cj {
			return ci
		}
		return eligible[i].CreatedAt.Before(eligible[j].CreatedAt)
	})

	for i := range eligible {
		if eligible[i].IsDefaultForCountry {
			return &eligible[i], nil
		}
	}
	if len(eligible) > 0 {
		return &eligible[0], nil
	}
	return nil, errs.Newm(errs.ErrNoDefaultPriceBook, "no active price book for country %s", target.Country)
}

// Resolve seeds the grid from book and applies the CITY overrides followed by the APPOINTMENT overrides.
// Every override is computed from the book's base price and overwrites the cells it covers,
// so the last override to touch a cell decides its value; overrides never compound.
func Resolve(target Target, book *PriceBook, overrides []PriceOverride) Resolution {
	res := Resolution{
		Currency:           book.Currency,
		PriceBookID:        book.ID,
		AppliedOverrideIDs: []uuid.UUID{},
		Prices:             book.Prices,
	}

	for _, o := range OrderOverrides(target, overrides) {
		changed := false
		for _, c := range Cells(o.SeatType, o.PassengerType) {
			before := res.Prices.Get(c.Seat, c.Passenger)
			after := o.Apply(book.Prices.Get(c.Seat, c.Passenger))
			if after != before {
				res.Prices.Set(c.Seat, c.Passenger, after)
				changed = true
			}
		}
		if changed {
			res.AppliedOverrideIDs = append(res.AppliedOverrideIDs, o.ID)
		}
	}
	return res
}

// OrderOverrides filters overrides to the ones applicable to target and returns them in application order:
// CITY overrides first, then APPOINTMENT overrides, each group by creation time.
func OrderOverrides(target Target, overrides []PriceOverride) []PriceOverride {
	var city, appt []PriceOverride
	for _, o := range overrides {
		switch {
		case o.MatchesCity(target.Country, target.Center):
			city = append(city, o)
		case o.MatchesAppointment(target.AppointmentID):
			appt = append(appt, o)
		}
	}
	byCreated := func(s []PriceOverride) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].CreatedAt.Before(s[j].CreatedAt) })
	}
	byCreated(city)
	byCreated(appt)
	return append(city, appt...)
}
