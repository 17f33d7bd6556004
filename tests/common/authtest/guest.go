//go:build unit || e2e

package authtest

import (
	"testing"

	"wild-oasis-api/internal/pkg/config"
	"wild-oasis-api/tests/common/dbtest"

	"github.com/google/uuid"
)

// CreateAndAuth inserts a guest row and returns a valid session token for it.
// Tokens are normally issued by the guest-facing app, so tests mint their own.
func CreateAndAuth(t *testing.T, db dbtest.DBLike, cfg config.JWTConfig, email, name string) (uuid.UUID, string) {
	t.Helper()

	guestID := dbtest.CreateTestGuest(t, db, email, name)
	token := NewJWTHelper(cfg).GenerateToken(t, guestID, email, name)
	return guestID, token
}
