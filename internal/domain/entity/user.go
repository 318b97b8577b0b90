package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account of the storefront. Users are deactivated, never removed.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // Unique, case-sensitive login key.
	PasswordHash string    // Irreversible credential hash.
	FirstName    string
	LastName     string
	Roles        RoleSet   // Fixed set of granted roles.
	TenantID     uuid.UUID // Isolation scope assigned at registration.
	Active       bool      // Inactive users cannot sign in.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// Principal is the authenticated caller as described by its token claims.
// It is passed explicitly into every operation that needs authorization.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Roles  RoleSet
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Roles.Has(RoleAdmin)
}

// Owns reports whether ownerID identifies the caller.
func (p *Principal) Owns(ownerID uuid.UUID) bool {
	return p != nil && p.UserID != uuid.Nil && p.UserID == ownerID
}
