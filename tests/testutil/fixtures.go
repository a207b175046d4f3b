package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared/valueobject"
)

// NewCustomer returns a customer user context with a fresh user ID.
func NewCustomer() identity.UserContext {
	id := uuid.New()
	return identity.UserContext{
		UserID: id,
		Email:  "customer-" + id.String()[:8] + "@example.com",
		Role:   identity.RoleCustomer,
	}
}

// NewAdmin returns an admin user context with a fresh user ID.
func NewAdmin() identity.UserContext {
	id := uuid.New()
	return identity.UserContext{
		UserID: id,
		Email:  "admin-" + id.String()[:8] + "@example.com",
		Role:   identity.RoleAdmin,
	}
}

// MustAddress builds a valid shipping address, failing the test on error.
func MustAddress(t *testing.T) valueobject.Address {
	t.Helper()

	addr, err := valueobject.NewAddress("100 Main St", "Springfield", "IL", "62701")
	require.NoError(t, err)
	return addr
}
