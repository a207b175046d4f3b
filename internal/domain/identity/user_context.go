package identity

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// Role represents a user's role for authorization decisions
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// UserContext is the authenticated-user value supplied by the authorization
// collaborator. Services use it for actor attribution on domain events and
// for admin gating; they never look up users themselves.
type UserContext struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// IsAdmin returns true if the user carries the admin role
func (u UserContext) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RequireAdmin returns ErrPermissionDenied unless the user is an admin
func (u UserContext) RequireAdmin() error {
	if !u.IsAdmin() {
		return shared.ErrPermissionDenied
	}
	return nil
}
