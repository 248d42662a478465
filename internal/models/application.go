package models

import (
	"time"
)

// Application statuses. Transitions are monotonic in normal operation;
// only the staff override endpoint may move backwards.
const (
	ApplicationStatusDraft     = "draft"
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusInReview  = "in_review"
	ApplicationStatusApproved  = "approved"
	ApplicationStatusDeclined  = "declined"
	ApplicationStatusFunded    = "funded"
)

// Pipeline stages (board column labels).
const (
	StageNew        = "New"
	StageInReview   = "In Review"
	StageWithLender = "With Lender"
	StageApproved   = "Approved"
	StageDeclined   = "Declined"
	StageFunded     = "Funded"
)

// statusRank orders the normal lifecycle for monotonicity checks.
var statusRank = map[string]int{
	ApplicationStatusDraft:     1,
	ApplicationStatusSubmitted: 2,
	ApplicationStatusInReview:  3,
	ApplicationStatusApproved:  4,
	ApplicationStatusDeclined:  4,
	ApplicationStatusFunded:    5,
}

// IsValidStatus reports whether s is a known application status.
func IsValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving from one status to another is a
// forward move in the normal lifecycle.
func CanTransition(from, to string) bool {
	fr, ok1 := statusRank[from]
	tr, ok2 := statusRank[to]
	return ok1 && ok2 && tr > fr
}

type Application struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	ExternalID string `gorm:"uniqueIndex"`
	BusinessID uint   `gorm:"not null;index"`
	Business   *Business

	Status string `gorm:"default:'draft';index"`
	Stage  string `gorm:"default:'New';index"`

	RequestedAmount float64
	UseOfFunds      string
	Country         string
	ProductCategory string

	ContactFirstName string
	ContactLastName  string
	ContactEmail     string `gorm:"index"`
	ContactPhone     string

	PartnerFirstName string
	PartnerLastName  string
	PartnerEmail     string

	MonthsInBusiness int
	MonthlyRevenue   float64

	// FormData retains the raw client payload verbatim for audit.
	// Mapped columns above are the normalized view of the same data.
	FormData JSON `gorm:"type:jsonb"`

	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Summary is the application shape returned by list/finalize endpoints.
type ApplicationSummary struct {
	ID                string     `json:"id"`
	ExternalID        string     `json:"externalId"`
	Status            string     `json:"status"`
	Stage             string     `json:"stage"`
	BusinessID        uint       `json:"businessId"`
	BusinessName      string     `json:"businessName"`
	RequestedAmount   float64    `json:"requestedAmount"`
	ContactEmail      string     `json:"contactEmail"`
	IsReadyForLenders bool       `json:"isReadyForLenders"`
	SubmittedAt       *time.Time `json:"submittedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}
