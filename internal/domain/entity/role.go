// Package entity contains the core business objects of the project.
package entity

import (
	"encoding/json"
	"strings"
)

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin manages the catalog and every order.
	RoleAdmin Role = "ADMIN"
	// RoleWorker moves orders through fulfillment.
	RoleWorker Role = "WORKER"
	// RoleCustomer places orders and manages their own address book.
	RoleCustomer Role = "CUSTOMER"
)

// allRoles is the fixed ordering used when a RoleSet is listed.
var allRoles = [...]Role{RoleAdmin, RoleWorker, RoleCustomer}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	return r.bit() != 0
}

func (r Role) bit() RoleSet {
	switch r {
	case RoleAdmin:
		return 1 << 0
	case RoleWorker:
		return 1 << 1
	case RoleCustomer:
		return 1 << 2
	default:
		return 0
	}
}

// ParseRole maps a role token such as "admin" or "WORKER" to a Role.
// The second return value is false when the token names no known role.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", false
	}

	return role, true
}

// RoleSet is a fixed set of roles stored as a bitmask.
type RoleSet uint8

// NewRoleSet builds a set from the given roles, ignoring invalid values.
func NewRoleSet(roles ...Role) RoleSet {
	var set RoleSet
	for _, r := range roles {
		set = set.Add(r)
	}

	return set
}

// Add returns the set with role included.
func (s RoleSet) Add(role Role) RoleSet {
	return s | role.bit()
}

// Remove returns the set without role.
func (s RoleSet) Remove(role Role) RoleSet {
	return s &^ role.bit()
}

// Has checks if the set contains role.
func (s RoleSet) Has(role Role) bool {
	bit := role.bit()

	return bit != 0 && s&bit == bit
}

// HasAny checks if the set contains at least one of roles.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}

	return false
}

// IsEmpty reports whether no role is set.
func (s RoleSet) IsEmpty() bool {
	return s == 0
}

// Roles lists the members in a stable order.
func (s RoleSet) Roles() []Role {
	result := make([]Role, 0, len(allRoles))
	for _, r := range allRoles {
		if s.Has(r) {
			result = append(result, r)
		}
	}

	return result
}

// ToStrings converts the set to []string for JWT compatibility.
func (s RoleSet) ToStrings() []string {
	roles := s.Roles()
	result := make([]string, len(roles))
	for i, r := range roles {
		result[i] = r.String()
	}

	return result
}

// RoleSetFromStrings converts claim strings back into a set, dropping unknown entries.
func RoleSetFromStrings(ss []string) RoleSet {
	var set RoleSet
	for _, s := range ss {
		if role, ok := ParseRole(s); ok {
			set = set.Add(role)
		}
	}

	return set
}

// MarshalJSON encodes the set as a list of role names.
func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToStrings())
}

// UnmarshalJSON decodes a list of role names.
func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = RoleSetFromStrings(names)

	return nil
}
