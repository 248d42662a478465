// Package docreq resolves the document checklist an application must
// satisfy before it can be sent to lenders.
package docreq

import (
	"log"

	"boreal/internal/models"
	"boreal/internal/repositories"
)

const (
	BankStatementsKey = "bank_statements"
	// MinBankStatementMonths is the baseline every checklist must meet.
	// Requirements below it are tightened; requirements at or above it
	// are left untouched.
	MinBankStatementMonths = 6
)

// defaultRequirements applies when no lender product for the submitted
// category carries an override list.
var defaultRequirements = []models.DocRequirement{
	{Key: BankStatementsKey, Label: "Bank Statements", Required: true, Months: MinBankStatementMonths},
	{Key: "government_id", Label: "Government-Issued ID", Required: true},
	{Key: "void_cheque", Label: "Void Cheque", Required: true},
	{Key: "business_license", Label: "Business License", Required: false},
	{Key: "tax_return", Label: "Most Recent Tax Return", Required: false},
}

type Resolver struct {
	lenders repositories.LenderRepository
}

func NewResolver(lenders repositories.LenderRepository) *Resolver {
	return &Resolver{lenders: lenders}
}

// Resolve returns the ordered requirement list for a product category.
// A per-product override wins when one exists; the default set applies
// otherwise. Either way the bank-statement baseline is guaranteed.
func (r *Resolver) Resolve(category string) []models.DocRequirement {
	reqs := r.categoryOverride(category)
	if len(reqs) == 0 {
		reqs = append([]models.DocRequirement(nil), defaultRequirements...)
	}
	return EnsureBankStatements(reqs)
}

func (r *Resolver) categoryOverride(category string) []models.DocRequirement {
	if category == "" || r.lenders == nil {
		return nil
	}
	products, err := r.lenders.ProductsByCategory(category)
	if err != nil {
		log.Printf("doc requirements: category lookup failed for %q: %v", category, err)
		return nil
	}
	for _, p := range products {
		if len(p.DocRequirements) > 0 {
			return append([]models.DocRequirement(nil), p.DocRequirements...)
		}
	}
	return nil
}

// EnsureBankStatements guarantees a bank-statement requirement covering
// at least MinBankStatementMonths. The merge is one-directional:
// requirements can only be tightened up to the baseline, never loosened.
func EnsureBankStatements(reqs []models.DocRequirement) []models.DocRequirement {
	for i := range reqs {
		if reqs[i].Key != BankStatementsKey {
			continue
		}
		if reqs[i].Months < MinBankStatementMonths {
			reqs[i].Months = MinBankStatementMonths
		}
		if reqs[i].Label == "" {
			reqs[i].Label = "Bank Statements"
		}
		return reqs
	}
	return append(reqs, models.DocRequirement{
		Key:      BankStatementsKey,
		Label:    "Bank Statements",
		Required: true,
		Months:   MinBankStatementMonths,
	})
}
