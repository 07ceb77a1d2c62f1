package request

import (
	"strings"
	"time"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	AppointmentID uuid.UUID  `json:"appointment_id" binding:"required"`
	SeatType      string     `json:"seat_type" binding:"required"`
	AgencyID      *uuid.UUID `json:"agency_id,omitempty"`
}

func (r CreateBookingRequest) ToCommand() (commands.CreateBookingRequest, error) {
	seat, err := pricing.ParseSeatType(strings.TrimSpace(r.SeatType))
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	return commands.CreateBookingRequest{
		AppointmentID: r.AppointmentID,
		SeatType:      seat,
		AgencyID:      r.AgencyID,
	}, nil
}

type AddApplicantRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	PassportNumber string `json:"passport_number" binding:"required"`
	// BirthDate is a calendar date, YYYY-MM-DD.
	BirthDate string `json:"birth_date" binding:"required,calendardate"`
}

func (r AddApplicantRequest) ToCommand() (commands.AddApplicantRequest, error) {
	birth, err := time.Parse(dateLayout, strings.TrimSpace(r.BirthDate))
	if err != nil {
		return commands.AddApplicantRequest{}, errs.Newm(errs.ErrValidation, "birth_date must be YYYY-MM-DD")
	}
	return commands.AddApplicantRequest{
		FullName:       r.FullName,
		PassportNumber: r.PassportNumber,
		BirthDate:      birth,
	}, nil
}

type RescheduleRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
}

type UpdateCaseStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateCaseStatusRequest) ToStatus() (booking.Status, error) {
	return booking.ParseStatus(strings.TrimSpace(r.Status))
}

type FileAmendmentRequest struct {
	Type    string `json:"type" binding:"required"`
	Details string `json:"details"`
}

func (r FileAmendmentRequest) ToCommand() (commands.FileAmendmentRequest, error) {
	t, err := amendment.ParseType(strings.TrimSpace(r.Type))
	if err != nil {
		return commands.FileAmendmentRequest{}, err
	}
	return commands.FileAmendmentRequest{Type: t, Details: r.Details}, nil
}

type ResolveAmendmentRequest struct {
	Decision string  `json:"decision" binding:"required"`
	Reason   *string `json:"reason,omitempty"`
}

func (r ResolveAmendmentRequest) ToCommand() (commands.ResolveAmendmentRequest, error) {
	d, err := amendment.ParseDecision(strings.TrimSpace(r.Decision))
	if err != nil {
		return commands.ResolveAmendmentRequest{}, err
	}
	return commands.ResolveAmendmentRequest{Decision: d, Reason: r.Reason}, nil
}
