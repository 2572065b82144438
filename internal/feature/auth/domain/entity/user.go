// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Roles an account may hold. Every HR-management route is restricted to
// these two roles.
const (
	RoleHR    = "HR"
	RoleAdmin = "Admin"
)

// User represents a registered account in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null" json:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Phone is optional; when present it must be unique. Nullable so that
	// accounts without a phone do not collide on the unique index.
	Phone *string `gorm:"uniqueIndex;size:32" json:"phone,omitempty"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null" json:"-"`

	// Role is either RoleHR or RoleAdmin. Defaults to HR on registration.
	Role string `gorm:"size:16;not null;default:HR" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public returns the client-facing projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// IsPrivileged reports whether the user may act on records other than their own.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}
