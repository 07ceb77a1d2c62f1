//go:build unit || e2e

package builder

import (
	"time"

	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/domain/user"
	reqdto "visa-booking/internal/handler/dto/request"
	"visa-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// BornYearsBefore returns a birth date exactly years before ref.
func BornYearsBefore(ref time.Time, years int) time.Time {
	return ref.AddDate(-years, 0, 0)
}

type ApplicantBuilder struct {
	FullName       string
	PassportNumber string
	BirthDate      time.Time
}

func NewApplicantBuilder() *ApplicantBuilder {
	return &ApplicantBuilder{
		FullName:       "Jane Doe",
		PassportNumber: "p1234567",
		BirthDate:      BornYearsBefore(BaseDate, 30),
	}
}

func (b *ApplicantBuilder) With(mutate func(*ApplicantBuilder)) *ApplicantBuilder {
	mutate(b)
	return b
}

func (b *ApplicantBuilder) AgedAt(ref time.Time, years int) *ApplicantBuilder {
	b.BirthDate = BornYearsBefore(ref, years)
	return b
}

func (b *ApplicantBuilder) BuildDomain() booking.Applicant {
	a, err := booking.NewApplicant(b.FullName, b.PassportNumber, b.BirthDate)
	if err != nil {
		panic(err)
	}
	return a
}

func (b *ApplicantBuilder) BuildCommand() commands.AddApplicantRequest {
	return commands.AddApplicantRequest{
		FullName:       b.FullName,
		PassportNumber: b.PassportNumber,
		BirthDate:      b.BirthDate,
	}
}

func (b *ApplicantBuilder) BuildRequestDTO() reqdto.AddApplicantRequest {
	return reqdto.AddApplicantRequest{
		FullName:       b.FullName,
		PassportNumber: b.PassportNumber,
		BirthDate:      b.BirthDate.Format("2006-01-02"),
	}
}

type CaseBuilder struct {
	AgencyID      uuid.UUID
	AppointmentID uuid.UUID
	SeatType      pricing.SeatType
	Resolution    pricing.Resolution
	Now           time.Time
}

func NewCaseBuilder() *CaseBuilder {
	return &CaseBuilder{
		AgencyID:      uuid.New(),
		AppointmentID: uuid.New(),
		SeatType:      pricing.SeatNormal,
		Resolution: pricing.Resolution{
			Currency:           "EUR",
			PriceBookID:        uuid.New(),
			AppliedOverrideIDs: []uuid.UUID{},
			Prices:             NewPriceBookBuilder().Prices,
		},
		Now: BaseDate,
	}
}

func (b *CaseBuilder) With(mutate func(*CaseBuilder)) *CaseBuilder {
	mutate(b)
	return b
}

func (b *CaseBuilder) BuildDomain() *booking.Case {
	c, err := booking.NewCase(b.AgencyID, b.AppointmentID, b.SeatType, b.Resolution, b.Now)
	if err != nil {
		panic(err)
	}
	return c
}

func Agent(agencyID uuid.UUID) user.Actor {
	return user.Actor{UserID: uuid.New(), Role: user.RoleAgent, AgencyID: &agencyID}
}

func Admin() user.Actor {
	return user.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
}

func CreateBookingCommand(appointmentID uuid.UUID) commands.CreateBookingRequest {
	return commands.CreateBookingRequest{AppointmentID: appointmentID, SeatType: pricing.SeatNormal}
}
