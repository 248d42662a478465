package matching

import (
	"fmt"
	"math"
	"strings"

	"boreal/internal/models"
)

// Soft-score weights. They sum to 1 so the score stays in [0,1].
const (
	weightAmountFit = 0.4
	weightIndustry  = 0.3
	weightTenure    = 0.2
	weightRevenue   = 0.1
)

// hardFilter applies the eligibility rules that eliminate a product
// outright. It returns the human-readable rules that passed.
func hardFilter(app *models.Application, p models.LenderProduct) (bool, []string) {
	var rules []string

	if p.Country != "" && !strings.EqualFold(p.Country, app.Country) {
		return false, nil
	}
	rules = append(rules, "country eligible")

	if p.Category != "" && app.ProductCategory != "" && !strings.EqualFold(p.Category, app.ProductCategory) {
		return false, nil
	}
	rules = append(rules, "category eligible")

	if app.RequestedAmount < p.MinAmount || (p.MaxAmount > 0 && app.RequestedAmount > p.MaxAmount) {
		return false, nil
	}
	rules = append(rules, fmt.Sprintf("amount within %.0f-%.0f", p.MinAmount, p.MaxAmount))

	return true, rules
}

// softScore ranks a surviving product in [0,1] and annotates each
// component that contributed.
func softScore(app *models.Application, p models.LenderProduct) (float64, []string) {
	var score float64
	var rules []string

	if fit := amountFit(app.RequestedAmount, p.MinAmount, p.MaxAmount); fit > 0 {
		score += weightAmountFit * fit
		rules = append(rules, fmt.Sprintf("amount fit %.0f%%", fit*100))
	}

	industry := ""
	if app.Business != nil {
		industry = app.Business.Industry
	}
	switch {
	case len(p.PreferredIndustries) == 0:
		score += weightIndustry / 2
		rules = append(rules, "no industry restriction")
	case containsFold(p.PreferredIndustries, industry):
		score += weightIndustry
		rules = append(rules, "preferred industry")
	}

	if app.MonthsInBusiness >= p.MinMonthsInBusiness && app.MonthsInBusiness > 0 {
		score += weightTenure
		rules = append(rules, fmt.Sprintf("%d months in business", app.MonthsInBusiness))
	}

	if p.MinMonthlyRevenue == 0 || app.MonthlyRevenue >= p.MinMonthlyRevenue {
		if app.MonthlyRevenue > 0 {
			score += weightRevenue
			rules = append(rules, "revenue meets minimum")
		}
	}

	return math.Min(score, 1), rules
}

// amountFit measures how close the requested amount sits to the middle
// of the product's band; 1 at the midpoint, 0 at the edges.
func amountFit(requested, min, max float64) float64 {
	if max <= min {
		return 1
	}
	mid := (min + max) / 2
	half := (max - min) / 2
	fit := 1 - math.Abs(requested-mid)/half
	if fit < 0 {
		return 0
	}
	return fit
}

func containsFold(list []string, value string) bool {
	if value == "" {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
