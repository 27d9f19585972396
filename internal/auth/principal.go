package auth

import "github.com/voxedgemedia/media-api/internal/models"

// PrincipalKind discriminates the two principal variants.
type PrincipalKind string

// Principal variants.
const (
	// KindUser marks a principal backed by the users table.
	KindUser PrincipalKind = "user"
	// KindAdmin marks a principal backed by the admins table.
	KindAdmin PrincipalKind = "admin"
)

// Principal is an authenticated identity resolved from a session token.
// It is a tagged variant over User and Admin; exactly one of the two
// record fields is set, matching the Kind.
type Principal struct {
	Kind  PrincipalKind
	User  *models.User
	Admin *models.Admin
}

// ID returns the principal's opaque unique id.
func (p Principal) ID() string {
	if p.Kind == KindAdmin && p.Admin != nil {
		return p.Admin.ID
	}
	if p.User != nil {
		return p.User.ID
	}
	return ""
}

// Email returns the principal's email address, or "" for phone-only users.
func (p Principal) Email() string {
	if p.Kind == KindAdmin && p.Admin != nil {
		return p.Admin.Email
	}
	if p.User != nil && p.User.Email != nil {
		return *p.User.Email
	}
	return ""
}

// Role returns the principal's role. Admin records always carry the admin role.
func (p Principal) Role() string {
	if p.Kind == KindAdmin {
		return models.RoleAdmin
	}
	if p.User != nil {
		return p.User.Role
	}
	return ""
}

// IsAdmin reports whether the principal passes the admin access gate.
// A user record promoted to the admin role is treated the same as a
// dedicated admin record.
func (p Principal) IsAdmin() bool {
	return p.Role() == models.RoleAdmin
}
