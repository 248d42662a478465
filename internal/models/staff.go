package models

import "time"

// Staff roles.
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// StaffUser is a portal operator. Applicants are not users; they submit
// through the public intake endpoint without an account.
type StaffUser struct {
	ID        uint   `gorm:"primarykey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `json:"-"`
	FirstName string
	LastName  string
	Role      string `gorm:"default:'agent'"`
	// TokenVersion invalidates outstanding JWTs when bumped.
	TokenVersion int `gorm:"default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
