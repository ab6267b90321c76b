package domain

import "github.com/google/uuid"

// Session identity of the caller, passed explicitly into every operation
type Session struct {
	UserID     uuid.UUID
	LoginID    string
	Name       string
	Department Department
	Role       Role
}

// IsAdmin returns true if the caller is an administrator
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanModify admins may change any reservation, users only their own
func (s Session) CanModify(ownerID uuid.UUID) bool {
	return s.IsAdmin() || (s.UserID != uuid.Nil && s.UserID == ownerID)
}
