package user

import (
	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// Actor is an already authenticated caller.
type Actor struct {
	UserID uuid.UUID
	Role   Role
	// AgencyID is required for agents; admins act across agencies.
	AgencyID *uuid.UUID
}

func NewActor(userID uuid.UUID, role Role, agencyID *uuid.UUID) (Actor, error) {
	if !role.IsValid() {
		return Actor{}, ErrInvalidRole
	}
	if role == RoleAgent && (agencyID == nil || *agencyID == uuid.Nil) {
		return Actor{}, errs.Newm(errs.ErrUnauthorized, "agent %s has no agency", userID)
	}
	return Actor{UserID: userID, Role: role, AgencyID: agencyID}, nil
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func (a Actor) RequireAdmin() error {
	if !a.IsAdmin() {
		return errs.Newm(errs.ErrUnauthorized, "admin role required")
	}
	return nil
}

// CanAccessAgency reports whether the actor may act on records owned by agencyID.
func (a Actor) CanAccessAgency(agencyID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.AgencyID != nil && *a.AgencyID == agencyID
}

func (a Actor) RequireAgency(agencyID uuid.UUID) error {
	if !a.CanAccessAgency(agencyID) {
		return errs.Newm(errs.ErrUnauthorized, "case belongs to another agency")
	}
	return nil
}
