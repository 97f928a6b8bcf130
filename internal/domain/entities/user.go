package entities

import (
	"time"
)

// UserRole represents the role of a user
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleAgent  UserRole = "agent"
	UserRoleClient UserRole = "client"
	UserRoleUser   UserRole = "user"
)

// IsOperator reports whether the role belongs to the elevated tier that may
// manage reservations and read dashboard metrics.
func (r UserRole) IsOperator() bool {
	return r == UserRoleAdmin || r == UserRoleAgent
}

// IsValid reports whether the role is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleAgent, UserRoleClient, UserRoleUser:
		return true
	}
	return false
}

// UserStatus represents the account status of a user. The stored values are
// the French labels of the original data set.
type UserStatus string

const (
	UserStatusActive    UserStatus = "actif"
	UserStatusInactive  UserStatus = "inactif"
	UserStatusSuspended UserStatus = "suspendu"
)

// IsValid reports whether the status is one of the known statuses.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

// User represents a user in the system. Accounts are never physically
// deleted; deactivation happens through the status field.
type User struct {
	ID        string     `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	Name      string     `json:"name" db:"name"`
	Role      UserRole   `json:"role" db:"role"`
	Status    UserStatus `json:"status" db:"status"`
	Phone     string     `json:"phone" db:"phone"`
	LastLogin *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
