package booking

import (
	"strings"

	"visa-booking/internal/pkg/errs"
)

type LockStatus string

const (
	LockDraft     LockStatus = "DRAFT"
	LockSubmitted LockStatus = "SUBMITTED"
	LockEditOpen  LockStatus = "EDIT_OPEN"
)

func (l LockStatus) String() string { return string(l) }

// Status is the operational label of a case. Only StatusReady and StatusNew
// take part in capacity accounting; the rest are informational.
type Status string

const (
	StatusNew              Status = "new"
	StatusReady            Status = "ready"
	StatusCancelled        Status = "cancelled"
	StatusDocumentsPending Status = "documents_pending"
	StatusInReview         Status = "in_review"
	StatusCompleted        Status = "completed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsConfirmed() bool  { return s == StatusReady }
func (s Status) IsWaitlisted() bool { return s == StatusNew }

// IsCapacitySignificant reports whether the label can only be set by the capacity workflow.
func (s Status) IsCapacitySignificant() bool {
	return s == StatusReady || s == StatusNew || s == StatusCancelled
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusNew, StatusReady, StatusCancelled, StatusDocumentsPending, StatusInReview, StatusCompleted:
		return st, nil
	default:
		return "", errs.Newm(errs.ErrValidation, "invalid case status %q", s)
	}
}
