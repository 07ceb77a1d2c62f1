//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"visa-booking/internal/domain/user"
	"visa-booking/internal/pkg/config"
	"visa-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role, agencyID *uuid.UUID) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.AccessTokenDuration)
	token, err := service.GenerateToken(userID, role, agencyID)
	require.NoError(t, err)
	return token
}

// AgentToken issues a token for a fresh agent user of agencyID.
func (h *JWTHelper) AgentToken(t *testing.T, agencyID uuid.UUID) string {
	t.Helper()
	return h.GenerateToken(t, uuid.New(), user.RoleAgent, &agencyID)
}

func (h *JWTHelper) AdminToken(t *testing.T) string {
	t.Helper()
	return h.GenerateToken(t, uuid.New(), user.RoleAdmin, nil)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(userID, role, nil)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
