package matching

import (
	"testing"

	"boreal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleApp() *models.Application {
	return &models.Application{
		RequestedAmount:  50000,
		Country:          "CA",
		ProductCategory:  "working_capital",
		MonthsInBusiness: 36,
		MonthlyRevenue:   40000,
		Business: &models.Business{
			Name:     "Acme Co",
			Industry: "retail",
		},
	}
}

func product(lenderName, productName string, min, max float64) models.LenderProduct {
	return models.LenderProduct{
		Name:      productName,
		Category:  "working_capital",
		Country:   "CA",
		MinAmount: min,
		MaxAmount: max,
		Lender:    &models.Lender{Name: lenderName},
	}
}

func TestHardFilter(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Application, *models.LenderProduct)
		wantOK bool
	}{
		{
			name:   "eligible product passes",
			mutate: func(a *models.Application, p *models.LenderProduct) {},
			wantOK: true,
		},
		{
			name: "country mismatch eliminates",
			mutate: func(a *models.Application, p *models.LenderProduct) {
				p.Country = "US"
			},
			wantOK: false,
		},
		{
			name: "empty product country matches any",
			mutate: func(a *models.Application, p *models.LenderProduct) {
				p.Country = ""
			},
			wantOK: true,
		},
		{
			name: "category mismatch eliminates",
			mutate: func(a *models.Application, p *models.LenderProduct) {
				p.Category = "equipment"
			},
			wantOK: false,
		},
		{
			name: "empty application category matches any",
			mutate: func(a *models.Application, p *models.LenderProduct) {
				a.ProductCategory = ""
			},
			wantOK: true,
		},
		{
			name: "amount below minimum eliminates",
			mutate: func(a *models.Application, p *models.LenderProduct) {
				a.RequestedAmount = 5000
			},
			wantOK: false,
		},
		{
			name: "amount above maximum eliminates",
			mutate: func(a *models.Application, p *models.LenderProduct) {
				a.RequestedAmount = 900000
			},
			wantOK: false,
		},
		{
			name: "zero max means uncapped",
			mutate: func(a *models.Application, p *models.LenderProduct) {
				a.RequestedAmount = 900000
				p.MaxAmount = 0
			},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := sampleApp()
			p := product("Northway Capital", "Term Loan", 10000, 250000)
			tt.mutate(app, &p)

			ok, rules := hardFilter(app, p)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.NotEmpty(t, rules)
			}
		})
	}
}

func TestSoftScore_PreferredIndustryBeatsUnrestricted(t *testing.T) {
	app := sampleApp()

	preferred := product("A", "P1", 10000, 90000)
	preferred.PreferredIndustries = models.StringList{"retail"}

	unrestricted := product("B", "P2", 10000, 90000)

	preferredScore, preferredRules := softScore(app, preferred)
	unrestrictedScore, _ := softScore(app, unrestricted)

	assert.Greater(t, preferredScore, unrestrictedScore)
	assert.Contains(t, preferredRules, "preferred industry")
}

func TestSoftScore_WrongIndustryGetsNoCredit(t *testing.T) {
	app := sampleApp()

	p := product("A", "P1", 10000, 90000)
	p.PreferredIndustries = models.StringList{"construction"}

	_, rules := softScore(app, p)
	assert.NotContains(t, rules, "preferred industry")
	assert.NotContains(t, rules, "no industry restriction")
}

func TestAmountFit(t *testing.T) {
	// Midpoint of 10000..90000 is 50000.
	assert.InDelta(t, 1.0, amountFit(50000, 10000, 90000), 0.001)
	assert.InDelta(t, 0.0, amountFit(10000, 10000, 90000), 0.001)
	assert.InDelta(t, 0.5, amountFit(30000, 10000, 90000), 0.001)
	// Degenerate band is always a perfect fit.
	assert.Equal(t, 1.0, amountFit(5000, 5000, 5000))
}

func TestRank_OrdersByScoreThenName(t *testing.T) {
	app := sampleApp()

	// Identical eligibility so all three tie on score; order must fall
	// back to lender name, then product name.
	products := []models.LenderProduct{
		product("Zenith Funding", "Term Loan", 10000, 90000),
		product("Atlas Capital", "Working Capital B", 10000, 90000),
		product("Atlas Capital", "Working Capital A", 10000, 90000),
	}

	ranked := Rank(app, products)
	require.Len(t, ranked, 3)

	assert.Equal(t, "Atlas Capital", ranked[0].LenderName)
	assert.Equal(t, "Working Capital A", ranked[0].Product)
	assert.Equal(t, "Working Capital B", ranked[1].Product)
	assert.Equal(t, "Zenith Funding", ranked[2].LenderName)
}

func TestRank_DeterministicAcrossInputOrder(t *testing.T) {
	app := sampleApp()

	forward := []models.LenderProduct{
		product("Atlas Capital", "A", 10000, 90000),
		product("Meridian", "B", 20000, 80000),
		product("Zenith Funding", "C", 10000, 250000),
	}
	reversed := []models.LenderProduct{forward[2], forward[1], forward[0]}

	first := Rank(app, forward)
	second := Rank(app, reversed)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Product, second[i].Product)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestRank_EliminatedProductsExcluded(t *testing.T) {
	app := sampleApp()

	usOnly := product("Atlas Capital", "US Loan", 10000, 90000)
	usOnly.Country = "US"

	ranked := Rank(app, []models.LenderProduct{
		usOnly,
		product("Meridian", "CA Loan", 10000, 90000),
	})

	require.Len(t, ranked, 1)
	assert.Equal(t, "CA Loan", ranked[0].Product)
}
