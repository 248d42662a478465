package models

import (
	"strings"
	"time"
)

type Business struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"not null"`
	// NormalizedName carries the unique index that makes concurrent
	// lookup-or-create safe: the constraint violation is the dedup signal.
	NormalizedName string `gorm:"uniqueIndex;not null"`
	EntityType     string
	Industry       string
	Address        string
	City           string
	State          string
	PostalCode     string
	TaxID          string `gorm:"column:tax_id"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeBusinessName produces the dedup key for a business name.
// Exact-match semantics after trim and case folding; near-duplicates
// with different spellings can legitimately coexist.
func NormalizeBusinessName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
