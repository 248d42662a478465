package models

import "time"

// Contact is a CRM record for an applicant or partner. Contacts are
// deduplicated by email; repeat applications merge into the same row.
type Contact struct {
	ID            uint   `gorm:"primarykey"`
	FirstName     string
	LastName      string
	Email         string `gorm:"uniqueIndex;not null"`
	Phone         string
	Source        string
	ApplicationID string `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
