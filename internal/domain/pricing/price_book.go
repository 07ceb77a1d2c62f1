package pricing

import (
	"strings"
	"time"

	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/pkg/patch"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrPriceBookNotFound = errs.Newm(errs.ErrNotFound, "price book not found")

type PriceBook struct {
	ID                  uuid.UUID
	Name                string
	Code                string
	Country             string
	Center              *string
	Prices              Grid
	Currency            string
	IsActive            bool
	IsDefaultForCountry bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type PriceBookInput struct {
	Name                string
	Country             string
	Center              *string
	Prices              Grid
	Currency            string
	IsDefaultForCountry bool
}

func NewPriceBook(in PriceBookInput, now time.Time) (*PriceBook, error) {
	pb := &PriceBook{
		ID:        uuid.New(),
		IsActive:  true,
		CreatedAt: now,
	}
	if err := pb.apply(in, now); err != nil {
		return nil, err
	}
	return pb, nil
}

// Update replaces the editable fields. Snapshots taken earlier keep their own copy of the prices.
func (pb *PriceBook) Update(in PriceBookInput, now time.Time) error {
	return pb.apply(in, now)
}

func (pb *PriceBook) Deactivate(now time.Time) {
	pb.IsActive = false
	pb.IsDefaultForCountry = false
	pb.UpdatedAt = now
}

func (pb *PriceBook) apply(in PriceBookInput, now time.Time) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return errs.Newm(errs.ErrValidation, "price book name is required")
	}
	country := strings.ToUpper(strings.TrimSpace(in.Country))
	if country == "" {
		return errs.Newm(errs.ErrValidation, "price book country is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if len(currency) != 3 {
		return errs.Newm(errs.ErrValidation, "currency must be a 3-letter code, got %q", in.Currency)
	}
	for _, c := range Cells(SeatTypeAll, PassengerAll) {
		if in.Prices.Get(c.Seat, c.Passenger) < 0 {
			return errs.Newm(errs.ErrValidation, "price for %s/%s cannot be negative", c.Seat, c.Passenger)
		}
	}

	center := normalizeCenter(in.Center)
	code := country + " " + name
	if center != nil {
		code = country + " " + *center + " " + name
	}

	pb.Name = name
	pb.Code = slug.Make(code)
	pb.Country = country
	pb.Center = center
	pb.Prices = in.Prices
	pb.Currency = currency
	pb.IsDefaultForCountry = in.IsDefaultForCountry
	pb.UpdatedAt = now
	return nil
}

// AppliesTo reports whether the book may price an appointment at the given center.
// Country-wide books apply everywhere in their country.
func (pb *PriceBook) AppliesTo(country, center string) bool {
	if !strings.EqualFold(pb.Country, country) {
		return false
	}
	return pb.Center == nil || strings.EqualFold(*pb.Center, center)
}

// normalizeCenter maps a blank center to nil, meaning country-wide.
func normalizeCenter(c *string) *string {
	v := strings.TrimSpace(patch.Coalesce(c, ""))
	if v == "" {
		return nil
	}
	return patch.Ptr(v)
}
