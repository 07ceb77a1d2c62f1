package response

import (
	"time"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ApplicantResponse struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	PassportNumber string    `json:"passport_number"`
	BirthDate      string    `json:"birth_date"`
}

type CaseResponse struct {
	ID            uuid.UUID               `json:"id"`
	AgencyID      uuid.UUID               `json:"agency_id"`
	AppointmentID uuid.UUID               `json:"appointment_id"`
	LockStatus    booking.LockStatus      `json:"lock_status"`
	Status        booking.Status          `json:"status"`
	Confirmed     bool                    `json:"confirmed"`
	Applicants    []ApplicantResponse     `json:"applicants"`
	Pricing       booking.PricingSnapshot `json:"pricing_snapshot"`
	SubmittedAt   *time.Time              `json:"submitted_at,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

func FromCase(c *booking.Case) *CaseResponse {
	applicants := c.Applicants()
	out := make([]ApplicantResponse, len(applicants))
	for i, a := range applicants {
		out[i] = ApplicantResponse{
			ID:             a.ID,
			FullName:       a.FullName,
			PassportNumber: a.PassportNumber,
			BirthDate:      a.BirthDate.Format("2006-01-02"),
		}
	}
	return &CaseResponse{
		ID:            c.ID(),
		AgencyID:      c.AgencyID(),
		AppointmentID: c.AppointmentID(),
		LockStatus:    c.LockStatus(),
		Status:        c.Status(),
		Confirmed:     c.IsConfirmed(),
		Applicants:    out,
		Pricing:       c.Snapshot(),
		SubmittedAt:   c.SubmittedAt(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

type CapacityResponse struct {
	Case           *CaseResponse        `json:"case"`
	Appointment    *AppointmentResponse `json:"appointment"`
	ConfirmedCount int                  `json:"confirmed_count"`
}

func FromCapacityResult(r *commands.CapacityResult) *CapacityResponse {
	return &CapacityResponse{
		Case:           FromCase(r.Case),
		Appointment:    FromAppointment(r.Appointment),
		ConfirmedCount: r.ConfirmedCount,
	}
}

type RescheduleResponse struct {
	CapacityResponse
	Source         *AppointmentResponse `json:"source_appointment"`
	SourceReopened bool                 `json:"source_reopened"`
}

func FromRescheduleResult(r *commands.RescheduleResult) *RescheduleResponse {
	return &RescheduleResponse{
		CapacityResponse: *FromCapacityResult(&r.CapacityResult),
		Source:           FromAppointment(r.Source),
		SourceReopened:   r.SourceReopened,
	}
}

type AmendmentResponse struct {
	ID          uuid.UUID        `json:"id"`
	CaseID      uuid.UUID        `json:"case_id"`
	Type        amendment.Type   `json:"type"`
	Status      amendment.Status `json:"status"`
	Details     string           `json:"details"`
	RequestedBy uuid.UUID        `json:"requested_by"`
	ReviewedBy  *uuid.UUID       `json:"reviewed_by,omitempty"`
	Reason      *string          `json:"reason,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	ResolvedAt  *time.Time       `json:"resolved_at,omitempty"`
}

func FromAmendment(r *amendment.Request) (*AmendmentResponse, error) {
	var out AmendmentResponse
	if err := copier.Copy(&out, r); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromAmendments(rs []amendment.Request) ([]*AmendmentResponse, error) {
	out := make([]*AmendmentResponse, 0, len(rs))
	for i := range rs {
		r, err := FromAmendment(&rs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

type ResolveAmendmentResponse struct {
	Request             *AmendmentResponse `json:"request"`
	Case                *CaseResponse      `json:"case"`
	SeatReleased        bool               `json:"seat_released"`
	AppointmentReopened bool               `json:"appointment_reopened"`
}

func FromResolveResult(r *commands.ResolveAmendmentResult) (*ResolveAmendmentResponse, error) {
	req, err := FromAmendment(r.Request)
	if err != nil {
		return nil, err
	}
	return &ResolveAmendmentResponse{
		Request:             req,
		Case:                FromCase(r.Case),
		SeatReleased:        r.Effect.SeatReleased,
		AppointmentReopened: r.AppointmentReopened,
	}, nil
}
