package models

import "time"

// Document verification statuses.
const (
	DocumentStatusPending  = "pending"
	DocumentStatusVerified = "verified"
	DocumentStatusRejected = "rejected"
)

// ExpectedDocument is a checklist row created once at intake from the
// requirement resolver output. It is not file storage and is never
// regenerated when the application changes after submission.
type ExpectedDocument struct {
	ID            uint   `gorm:"primarykey"`
	ApplicationID string `gorm:"type:uuid;not null;index:idx_expected_app_key,unique"`
	Key           string `gorm:"not null;index:idx_expected_app_key,unique"`
	Label         string
	Required      bool
	// Months applies to period-based requirements (bank statements).
	Months    int
	CreatedAt time.Time
}

// Document is uploaded-file metadata. A document satisfies at most one
// ExpectedDocument, matched by Type equality; no foreign key links them.
type Document struct {
	ID                 uint   `gorm:"primarykey"`
	ApplicationID      string `gorm:"type:uuid;not null;index"`
	Type               string `gorm:"not null"`
	FileName           string
	StorageKey         string `gorm:"uniqueIndex"`
	ContentType        string
	SizeBytes          int64
	VerificationStatus string `gorm:"default:'pending'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
