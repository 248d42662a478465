package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type Lender struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"not null;uniqueIndex"`
	Website      string
	ContactEmail string
	Active       bool `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Products []LenderProduct `gorm:"foreignKey:LenderID"`
}

// DocRequirement is one entry of a lender product's required-documents
// list, stored as jsonb on the product row.
type DocRequirement struct {
	Key      string `json:"key"`
	Label    string `json:"label,omitempty"`
	Required bool   `json:"required"`
	Months   int    `json:"months,omitempty"`
}

type DocRequirementList []DocRequirement

func (l DocRequirementList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *DocRequirementList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// LenderProduct is a lender's offering with hard eligibility bounds and
// soft-match preferences. Read-mostly during scoring.
type LenderProduct struct {
	ID       uint `gorm:"primarykey"`
	LenderID uint `gorm:"not null;index"`
	Lender   *Lender

	Name     string `gorm:"not null"`
	Category string `gorm:"index"`
	// Country empty means any country is eligible.
	Country   string
	MinAmount float64
	MaxAmount float64

	MinMonthsInBusiness int
	MinMonthlyRevenue   float64
	PreferredIndustries StringList `gorm:"type:jsonb"`

	DocRequirements DocRequirementList `gorm:"type:jsonb"`

	RateLow  float64
	RateHigh float64
	Active   bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
