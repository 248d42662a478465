package validation

import (
	"testing"

	"boreal/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBusinessName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid name", "Acme Co", true},
		{"minimum length", "AB", true},
		{"single character", "A", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.BusinessName("business_name", tt.input)
			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}

func TestRequestedAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		valid  bool
	}{
		{"typical amount", 50000, true},
		{"floor", MinRequestedAmount, true},
		{"below floor", 999, false},
		{"ceiling", MaxRequestedAmount, true},
		{"above ceiling", MaxRequestedAmount + 1, false},
		{"zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.RequestedAmount("requested_amount", tt.amount)
			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}

func TestLenderProduct(t *testing.T) {
	valid := &models.LenderProduct{
		LenderID:  1,
		Name:      "Term Loan",
		MinAmount: 10000,
		MaxAmount: 250000,
		DocRequirements: models.DocRequirementList{
			{Key: "bank_statements", Required: true, Months: 6},
		},
	}

	v := New()
	v.LenderProduct(valid)
	assert.True(t, v.Valid())

	inverted := &models.LenderProduct{LenderID: 1, Name: "Bad Band", MinAmount: 100, MaxAmount: 50}
	v = New()
	v.LenderProduct(inverted)
	assert.False(t, v.Valid())
	assert.Contains(t, v.Errors, "max_amount")

	missingKey := &models.LenderProduct{
		LenderID:        1,
		Name:            "No Key",
		DocRequirements: models.DocRequirementList{{Required: true}},
	}
	v = New()
	v.LenderProduct(missingKey)
	assert.False(t, v.Valid())
}
