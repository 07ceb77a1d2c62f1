package pricing

import (
	"strings"

	"visa-booking/internal/pkg/errs"
)

type SeatType string

const (
	SeatNormal  SeatType = "NORMAL"
	SeatVIP     SeatType = "VIP"
	SeatTypeAll SeatType = "ALL"
)

func (s SeatType) String() string { return string(s) }

// IsConcrete reports whether s names a real seat tier rather than the ALL wildcard.
func (s SeatType) IsConcrete() bool {
	return s == SeatNormal || s == SeatVIP
}

func ParseSeatType(s string) (SeatType, error) {
	st := SeatType(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case SeatNormal, SeatVIP, SeatTypeAll:
		return st, nil
	default:
		return "", errs.Newm(errs.ErrValidation, "invalid seat type %q", s)
	}
}

type PassengerType string

const (
	PassengerAdult  PassengerType = "ADULT"
	PassengerChild  PassengerType = "CHILD"
	PassengerInfant PassengerType = "INFANT"
	PassengerAll    PassengerType = "ALL"
)

func (p PassengerType) String() string { return string(p) }

func ParsePassengerType(s string) (PassengerType, error) {
	pt := PassengerType(strings.ToUpper(strings.TrimSpace(s)))
	switch pt {
	case PassengerAdult, PassengerChild, PassengerInfant, PassengerAll:
		return pt, nil
	default:
		return "", errs.Newm(errs.ErrValidation, "invalid passenger type %q", s)
	}
}

type ModifierType string

const (
	ModifierFixedPrice      ModifierType = "FIXED_PRICE"
	ModifierDiscountAmount  ModifierType = "DISCOUNT_AMOUNT"
	ModifierDiscountPercent ModifierType = "DISCOUNT_PERCENT"
)

func ParseModifierType(s string) (ModifierType, error) {
	mt := ModifierType(strings.ToUpper(strings.TrimSpace(s)))
	switch mt {
	case ModifierFixedPrice, ModifierDiscountAmount, ModifierDiscountPercent:
		return mt, nil
	default:
		return "", errs.Newm(errs.ErrValidation, "invalid modifier type %q", s)
	}
}

type OverrideScope string

const (
	ScopeCity        OverrideScope = "CITY"
	ScopeAppointment OverrideScope = "APPOINTMENT"
)

func ParseOverrideScope(s string) (OverrideScope, error) {
	sc := OverrideScope(strings.ToUpper(strings.TrimSpace(s)))
	switch sc {
	case ScopeCity, ScopeAppointment:
		return sc, nil
	default:
		return "", errs.Newm(errs.ErrValidation, "invalid override scope %q", s)
	}
}

var (
	concreteSeats      = []SeatType{SeatNormal, SeatVIP}
	concretePassengers = []PassengerType{PassengerAdult, PassengerChild, PassengerInfant}
)
