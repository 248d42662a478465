package docreq

import (
	"testing"

	"boreal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLenderRepo struct {
	mock.Mock
}

func (m *MockLenderRepo) GetByID(id uint) (*models.Lender, error) {
	args := m.Called(id)
	return args.Get(0).(*models.Lender), args.Error(1)
}

func (m *MockLenderRepo) List(includeInactive bool) ([]models.Lender, error) {
	args := m.Called(includeInactive)
	return args.Get(0).([]models.Lender), args.Error(1)
}

func (m *MockLenderRepo) Create(lender *models.Lender) error {
	return m.Called(lender).Error(0)
}

func (m *MockLenderRepo) Update(lender *models.Lender) error {
	return m.Called(lender).Error(0)
}

func (m *MockLenderRepo) GetProductByID(id uint) (*models.LenderProduct, error) {
	args := m.Called(id)
	return args.Get(0).(*models.LenderProduct), args.Error(1)
}

func (m *MockLenderRepo) ActiveProducts() ([]models.LenderProduct, error) {
	args := m.Called()
	return args.Get(0).([]models.LenderProduct), args.Error(1)
}

func (m *MockLenderRepo) ProductsByCategory(category string) ([]models.LenderProduct, error) {
	args := m.Called(category)
	return args.Get(0).([]models.LenderProduct), args.Error(1)
}

func (m *MockLenderRepo) CreateProduct(product *models.LenderProduct) error {
	return m.Called(product).Error(0)
}

func (m *MockLenderRepo) UpdateProduct(product *models.LenderProduct) error {
	return m.Called(product).Error(0)
}

func findRequirement(reqs []models.DocRequirement, key string) (models.DocRequirement, bool) {
	for _, r := range reqs {
		if r.Key == key {
			return r, true
		}
	}
	return models.DocRequirement{}, false
}

func TestResolve_DefaultsWhenNoCategory(t *testing.T) {
	resolver := NewResolver(nil)

	reqs := resolver.Resolve("")
	require.NotEmpty(t, reqs)

	bank, ok := findRequirement(reqs, BankStatementsKey)
	require.True(t, ok)
	assert.True(t, bank.Required)
	assert.Equal(t, MinBankStatementMonths, bank.Months)
}

func TestResolve_CategoryOverrideWins(t *testing.T) {
	repo := new(MockLenderRepo)
	repo.On("ProductsByCategory", "equipment").Return([]models.LenderProduct{
		{
			Name: "Equipment Financing",
			DocRequirements: models.DocRequirementList{
				{Key: "equipment_quote", Required: true},
				{Key: BankStatementsKey, Required: true, Months: 6},
			},
		},
	}, nil)

	resolver := NewResolver(repo)
	reqs := resolver.Resolve("equipment")

	assert.Len(t, reqs, 2)
	_, ok := findRequirement(reqs, "equipment_quote")
	assert.True(t, ok)
	repo.AssertExpectations(t)
}

func TestResolve_FallsBackWhenOverrideEmpty(t *testing.T) {
	repo := new(MockLenderRepo)
	repo.On("ProductsByCategory", "working_capital").Return([]models.LenderProduct{
		{Name: "Term Loan"},
	}, nil)

	resolver := NewResolver(repo)
	reqs := resolver.Resolve("working_capital")

	assert.Len(t, reqs, len(defaultRequirements))
	repo.AssertExpectations(t)
}

func TestEnsureBankStatements(t *testing.T) {
	tests := []struct {
		name       string
		input      []models.DocRequirement
		wantMonths int
		wantLen    int
	}{
		{
			name:       "injected when absent",
			input:      []models.DocRequirement{{Key: "government_id", Required: true}},
			wantMonths: 6,
			wantLen:    2,
		},
		{
			name:       "raised when below baseline",
			input:      []models.DocRequirement{{Key: BankStatementsKey, Required: true, Months: 3}},
			wantMonths: 6,
			wantLen:    1,
		},
		{
			name:       "untouched at baseline",
			input:      []models.DocRequirement{{Key: BankStatementsKey, Required: true, Months: 6}},
			wantMonths: 6,
			wantLen:    1,
		},
		{
			name:       "never loosened above baseline",
			input:      []models.DocRequirement{{Key: BankStatementsKey, Required: true, Months: 12}},
			wantMonths: 12,
			wantLen:    1,
		},
		{
			name:       "injected into empty list",
			input:      nil,
			wantMonths: 6,
			wantLen:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureBankStatements(tt.input)
			assert.Len(t, got, tt.wantLen)

			bank, ok := findRequirement(got, BankStatementsKey)
			require.True(t, ok)
			assert.Equal(t, tt.wantMonths, bank.Months)
		})
	}
}
