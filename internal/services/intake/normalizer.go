package intake

import (
	"strconv"
	"strings"

	"boreal/internal/models"
)

// legacyAliases maps pre-step field names onto canonical ones. The
// canonical key always wins when both are present.
var legacyAliases = map[string]string{
	"fundingAmount":      "requestedAmount",
	"amountRequested":    "requestedAmount",
	"operatingName":      "businessName",
	"legalName":          "businessName",
	"applicantEmail":     "email",
	"contactEmail":       "email",
	"applicantFirstName": "firstName",
	"applicantLastName":  "lastName",
	"applicantPhone":     "phone",
	"contactPhone":       "phone",
}

// legacyDenyList is the set of pure-legacy fields whose presence at the
// top level, with no step structure at all, fails the whole submission.
var legacyDenyList = []string{
	"legalName",
	"applicantFirstName",
	"applicantLastName",
	"businessName",
}

var requiredSteps = []string{"step1", "step3", "step4"}

const stepCount = 4

// Normalize coerces a client payload into a Submission. Accepted shapes,
// tried in order: top-level step1..step4, then step objects nested under
// a formData wrapper. Legacy-only payloads are rejected with the exact
// offending keys.
func Normalize(raw map[string]interface{}) (*Submission, error) {
	steps, received := extractSteps(raw)

	if len(steps) == 0 {
		if rejected := legacyFieldsPresent(raw); len(rejected) > 0 {
			return nil, &LegacyPayloadError{RejectedFields: rejected}
		}
		return nil, &MissingStepsError{Required: requiredSteps, Received: received}
	}

	var missing []string
	for _, name := range requiredSteps {
		if _, ok := steps[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingStepsError{Required: missing, Received: received}
	}

	// Aliases are resolved on copies so Raw keeps the client payload
	// byte-for-byte for audit.
	for name, step := range steps {
		steps[name] = withAliases(step)
	}

	step1 := steps["step1"]
	step2 := steps["step2"]
	step3 := steps["step3"]
	step4 := steps["step4"]

	sub := &Submission{
		ClientApplicationID: getString(raw, "applicationId"),

		RequestedAmount: getFloat(step1, "requestedAmount"),
		UseOfFunds:      getString(step1, "useOfFunds", "purpose"),
		Country:         getString(step1, "country"),
		ProductCategory: getString(step1, "productCategory", "category"),

		BusinessName: getString(step3, "businessName"),
		EntityType:   getString(step3, "entityType", "businessType"),
		Industry:     getString(step3, "industry"),
		Address:      getString(step3, "address", "street"),
		City:         getString(step3, "city"),
		State:        getString(step3, "state", "province"),
		PostalCode:   getString(step3, "postalCode", "zip"),
		TaxID:        getString(step3, "taxId", "ein"),

		MonthsInBusiness: getInt(step3, "monthsInBusiness"),
		MonthlyRevenue:   getFloat(step3, "monthlyRevenue"),

		FirstName: getString(step4, "firstName"),
		LastName:  getString(step4, "lastName"),
		Email:     getString(step4, "email"),
		Phone:     getString(step4, "phone", "mobile"),

		PartnerFirstName: getString(step4, "partnerFirstName"),
		PartnerLastName:  getString(step4, "partnerLastName"),
		PartnerEmail:     getString(step4, "partnerEmail"),

		Raw: models.JSON(raw),
	}

	// Financial profile may arrive on step2 instead of step3.
	if sub.MonthsInBusiness == 0 {
		sub.MonthsInBusiness = getInt(step2, "monthsInBusiness")
	}
	if sub.MonthlyRevenue == 0 {
		sub.MonthlyRevenue = getFloat(step2, "monthlyRevenue")
	}
	if sub.ClientApplicationID == "" {
		if wrapper, ok := raw["formData"].(map[string]interface{}); ok {
			sub.ClientApplicationID = getString(wrapper, "applicationId")
		}
	}
	if docs, ok := raw["documents"].([]interface{}); ok {
		sub.DocumentsUploaded = len(docs)
	}

	return sub, nil
}

// extractSteps returns the step objects and the list of step keys found.
// Top-level steps take priority over a formData wrapper; the two shapes
// are never merged.
func extractSteps(raw map[string]interface{}) (map[string]map[string]interface{}, []string) {
	sources := []map[string]interface{}{raw}
	if wrapper, ok := raw["formData"].(map[string]interface{}); ok {
		sources = append(sources, wrapper)
	}

	for _, source := range sources {
		steps := make(map[string]map[string]interface{})
		var received []string
		for i := 1; i <= stepCount; i++ {
			name := "step" + strconv.Itoa(i)
			if step, ok := source[name].(map[string]interface{}); ok {
				steps[name] = step
				received = append(received, name)
			}
		}
		if len(steps) > 0 {
			return steps, received
		}
	}
	return nil, nil
}

func legacyFieldsPresent(raw map[string]interface{}) []string {
	var rejected []string
	for _, field := range legacyDenyList {
		if _, ok := raw[field]; ok {
			rejected = append(rejected, field)
		}
	}
	return rejected
}

// withAliases returns a copy of the step with legacy values mirrored
// onto canonical keys. A canonical key already present is the source of
// truth and is never overwritten. The submitted map is left untouched.
func withAliases(step map[string]interface{}) map[string]interface{} {
	resolved := make(map[string]interface{}, len(step))
	for k, v := range step {
		resolved[k] = v
	}
	for legacy, canonical := range legacyAliases {
		value, ok := resolved[legacy]
		if !ok {
			continue
		}
		if _, exists := resolved[canonical]; !exists {
			resolved[canonical] = value
		}
	}
	return resolved
}

// IsTestSubmission detects internal test fixtures that must never reach
// persistence. Matched submissions are acknowledged with 202 and dropped.
func IsTestSubmission(sub *Submission) bool {
	name := strings.ToLower(sub.BusinessName)
	if strings.Contains(name, "test corp") || strings.Contains(name, "test business") {
		return true
	}
	email := strings.ToLower(sub.Email)
	return strings.Contains(email, "+test@") || strings.HasSuffix(email, "@example.com")
}

func getString(m map[string]interface{}, keys ...string) string {
	if m == nil {
		return ""
	}
	for _, key := range keys {
		if v, ok := m[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func getFloat(m map[string]interface{}, keys ...string) float64 {
	if m == nil {
		return 0
	}
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			if v != 0 {
				return v
			}
		case int:
			if v != 0 {
				return float64(v)
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f != 0 {
				return f
			}
		}
	}
	return 0
}

func getInt(m map[string]interface{}, keys ...string) int {
	return int(getFloat(m, keys...))
}
