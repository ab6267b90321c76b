package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role user role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid returns true for admin and user
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an account
type User struct {
	ID           uuid.UUID
	LoginID      string
	PasswordHash string
	Name         string
	Department   Department
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin returns true if the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ExpiresAt returns the expiry moment of a non-admin account.
// ok is false for admins: their accounts never expire.
func (u *User) ExpiresAt(ttlMonths int) (expiresAt time.Time, ok bool) {
	if u.IsAdmin() {
		return time.Time{}, false
	}
	return u.CreatedAt.AddDate(0, ttlMonths, 0), true
}

// IsExpired returns true once now is past the expiry moment
func (u *User) IsExpired(now time.Time, ttlMonths int) bool {
	expiresAt, ok := u.ExpiresAt(ttlMonths)
	return ok && now.After(expiresAt)
}

// Session returns the session identity of the user
func (u *User) Session() Session {
	return Session{
		UserID:     u.ID,
		LoginID:    u.LoginID,
		Name:       u.Name,
		Department: u.Department,
		Role:       u.Role,
	}
}

// UserUpdate fields an administrator may change. Nil fields stay as is.
type UserUpdate struct {
	Name         *string
	Department   *Department
	PasswordHash *string
}
