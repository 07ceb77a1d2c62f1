package booking

import (
	"strings"
	"time"

	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	InfantMaxAge = 2
	ChildMaxAge  = 12
)

type Applicant struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	PassportNumber string    `json:"passport_number"`
	BirthDate      time.Time `json:"birth_date"`
}

func NewApplicant(fullName, passport string, birthDate time.Time) (Applicant, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return Applicant{}, errs.Newm(errs.ErrValidation, "applicant name is required")
	}
	if birthDate.IsZero() {
		return Applicant{}, errs.Newm(errs.ErrValidation, "applicant birth date is required")
	}
	return Applicant{
		ID:             uuid.New(),
		FullName:       name,
		PassportNumber: strings.ToUpper(strings.TrimSpace(passport)),
		BirthDate:      birthDate,
	}, nil
}

// AgeYears returns completed years between birth and ref, by calendar date.
func AgeYears(birth, ref time.Time) int {
	by, bm, bd := birth.Date()
	ry, rm, rd := ref.In(birth.Location()).Date()
	age := ry - by
	if rm < bm || (rm == bm && rd < bd) {
		age--
	}
	return age
}

// PassengerTypeAt buckets an applicant by age at ref: INFANT below 2, CHILD below 12, otherwise ADULT.
func PassengerTypeAt(birth, ref time.Time) pricing.PassengerType {
	age := AgeYears(birth, ref)
	switch {
	case age < InfantMaxAge:
		return pricing.PassengerInfant
	case age < ChildMaxAge:
		return pricing.PassengerChild
	default:
		return pricing.PassengerAdult
	}
}
