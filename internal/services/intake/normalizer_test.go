package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepPayload() map[string]interface{} {
	return map[string]interface{}{
		"step1": map[string]interface{}{
			"requestedAmount": 50000.0,
			"useOfFunds":      "inventory",
			"country":         "CA",
			"productCategory": "working_capital",
		},
		"step3": map[string]interface{}{
			"businessName":     "Acme Co",
			"industry":         "retail",
			"monthsInBusiness": 36.0,
			"monthlyRevenue":   42000.0,
		},
		"step4": map[string]interface{}{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"email":     "ada@acme.ca",
			"phone":     "+14165550100",
		},
	}
}

func TestNormalize_TopLevelSteps(t *testing.T) {
	sub, err := Normalize(stepPayload())
	require.NoError(t, err)

	assert.Equal(t, 50000.0, sub.RequestedAmount)
	assert.Equal(t, "Acme Co", sub.BusinessName)
	assert.Equal(t, "ada@acme.ca", sub.Email)
	assert.Equal(t, 36, sub.MonthsInBusiness)
	assert.Equal(t, 42000.0, sub.MonthlyRevenue)
}

func TestNormalize_FormDataWrapper(t *testing.T) {
	raw := map[string]interface{}{
		"formData": stepPayload(),
	}

	sub, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Acme Co", sub.BusinessName)
	assert.Equal(t, 50000.0, sub.RequestedAmount)
}

// Top-level steps win over a formData wrapper; the two shapes are never
// merged, even when the wrapper carries steps the top level lacks.
func TestNormalize_TopLevelWinsOverWrapper(t *testing.T) {
	raw := stepPayload()
	raw["formData"] = map[string]interface{}{
		"step1": map[string]interface{}{"requestedAmount": 99999.0},
		"step3": map[string]interface{}{"businessName": "Wrapper Inc"},
		"step4": map[string]interface{}{"email": "wrapper@wrapper.ca"},
	}

	sub, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Acme Co", sub.BusinessName)
	assert.Equal(t, 50000.0, sub.RequestedAmount)
}

func TestNormalize_RejectsLegacyPayload(t *testing.T) {
	raw := map[string]interface{}{
		"legalName":          "Old Style Ltd",
		"applicantFirstName": "Grace",
		"fundingAmount":      25000.0,
	}

	_, err := Normalize(raw)
	require.Error(t, err)

	var legacyErr *LegacyPayloadError
	require.ErrorAs(t, err, &legacyErr)
	assert.Equal(t, []string{"legalName", "applicantFirstName"}, legacyErr.RejectedFields)
}

func TestNormalize_MissingSteps(t *testing.T) {
	raw := map[string]interface{}{
		"step1": map[string]interface{}{"requestedAmount": 10000.0},
	}

	_, err := Normalize(raw)
	require.Error(t, err)

	var stepsErr *MissingStepsError
	require.ErrorAs(t, err, &stepsErr)
	assert.Equal(t, []string{"step3", "step4"}, stepsErr.Required)
	assert.Equal(t, []string{"step1"}, stepsErr.Received)
}

func TestNormalize_NoStepsAtAll(t *testing.T) {
	_, err := Normalize(map[string]interface{}{"hello": "world"})

	var stepsErr *MissingStepsError
	require.ErrorAs(t, err, &stepsErr)
	assert.Equal(t, []string{"step1", "step3", "step4"}, stepsErr.Required)
	assert.Empty(t, stepsErr.Received)
}

func TestNormalize_LegacyAliasesInsideSteps(t *testing.T) {
	raw := map[string]interface{}{
		"step1": map[string]interface{}{"fundingAmount": 75000.0},
		"step3": map[string]interface{}{"operatingName": "North Bakery"},
		"step4": map[string]interface{}{"applicantEmail": "owner@northbakery.ca"},
	}

	sub, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 75000.0, sub.RequestedAmount)
	assert.Equal(t, "North Bakery", sub.BusinessName)
	assert.Equal(t, "owner@northbakery.ca", sub.Email)
}

// Alias resolution must never leak into the audit copy: Raw keeps the
// step maps exactly as the client sent them.
func TestNormalize_RawPayloadUntouchedByAliases(t *testing.T) {
	raw := map[string]interface{}{
		"step1": map[string]interface{}{"fundingAmount": 75000.0},
		"step3": map[string]interface{}{"operatingName": "North Bakery"},
		"step4": map[string]interface{}{"applicantEmail": "owner@northbakery.ca"},
	}

	sub, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 75000.0, sub.RequestedAmount)
	assert.Equal(t, "North Bakery", sub.BusinessName)

	assert.Equal(t, map[string]interface{}{"fundingAmount": 75000.0},
		sub.Raw["step1"])
	assert.Equal(t, map[string]interface{}{"operatingName": "North Bakery"},
		sub.Raw["step3"])
	assert.Equal(t, map[string]interface{}{"applicantEmail": "owner@northbakery.ca"},
		sub.Raw["step4"])
}

// The canonical key is the source of truth when both it and a legacy
// alias are present.
func TestNormalize_CanonicalKeyWinsOverAlias(t *testing.T) {
	raw := stepPayload()
	raw["step1"].(map[string]interface{})["fundingAmount"] = 1.0

	sub, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, sub.RequestedAmount)
}

func TestNormalize_AmountAsString(t *testing.T) {
	raw := stepPayload()
	raw["step1"].(map[string]interface{})["requestedAmount"] = "50000"

	sub, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, sub.RequestedAmount)
}

func TestNormalize_FinancialProfileOnStep2(t *testing.T) {
	raw := stepPayload()
	delete(raw["step3"].(map[string]interface{}), "monthsInBusiness")
	delete(raw["step3"].(map[string]interface{}), "monthlyRevenue")
	raw["step2"] = map[string]interface{}{
		"monthsInBusiness": 18.0,
		"monthlyRevenue":   20000.0,
	}

	sub, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 18, sub.MonthsInBusiness)
	assert.Equal(t, 20000.0, sub.MonthlyRevenue)
}

func TestNormalize_ClientApplicationID(t *testing.T) {
	raw := stepPayload()
	raw["applicationId"] = "e7b8a1a0-1111-4222-8333-444455556666"

	sub, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "e7b8a1a0-1111-4222-8333-444455556666", sub.ClientApplicationID)
}

func TestNormalize_DocumentsUploadedCount(t *testing.T) {
	raw := stepPayload()
	raw["documents"] = []interface{}{
		map[string]interface{}{"name": "statement.pdf"},
		map[string]interface{}{"name": "id.png"},
	}

	sub, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.DocumentsUploaded)
}

func TestIsTestSubmission(t *testing.T) {
	tests := []struct {
		name         string
		businessName string
		email        string
		want         bool
	}{
		{"test corp in name", "Test Corp Holdings", "real@business.ca", true},
		{"test business in name", "My Test Business", "real@business.ca", true},
		{"plus test email", "Acme Co", "dev+test@acme.ca", true},
		{"example.com email", "Acme Co", "someone@example.com", true},
		{"real submission", "Acme Co", "owner@acme.ca", false},
		{"name containing contest", "Contest Winners Inc", "owner@contest.ca", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Submission{BusinessName: tt.businessName, Email: tt.email}
			assert.Equal(t, tt.want, IsTestSubmission(sub))
		})
	}
}
