package user

import (
	"visa-booking/internal/pkg/errs"
)

var ErrInvalidRole = errs.Newm(errs.ErrValidation, "invalid role")

type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAgent, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
