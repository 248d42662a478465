package validation

import (
	"strings"

	"boreal/internal/models"
)

// BusinessName validates a business legal/operating name.
func (v *Validator) BusinessName(field, name string) {
	trimmed := strings.TrimSpace(name)
	v.Check(trimmed != "", field, "must not be empty")
	if trimmed != "" {
		v.MinLength(field, trimmed, MinBusinessNameLength)
		v.MaxLength(field, trimmed, MaxBusinessNameLength)
	}
}

// RequestedAmount validates a funding amount.
func (v *Validator) RequestedAmount(field string, amount float64) {
	v.Range(field, amount, MinRequestedAmount, MaxRequestedAmount)
}

// LenderProduct validates a lender product's eligibility bounds.
func (v *Validator) LenderProduct(p *models.LenderProduct) {
	v.Required("name", p.Name)
	v.Required("lender_id", p.LenderID)
	v.Check(p.MinAmount >= 0, "min_amount", "must not be negative")
	v.Check(p.MaxAmount >= p.MinAmount, "max_amount", "must not be below min_amount")
	v.Check(p.MinMonthsInBusiness >= 0, "min_months_in_business", "must not be negative")

	for _, req := range p.DocRequirements {
		v.Check(req.Key != "", "doc_requirements", "every requirement needs a key")
		v.Check(req.Months >= 0, "doc_requirements", "months must not be negative")
	}
}
