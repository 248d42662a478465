package intake

import (
	"fmt"
	"strings"
)

// LegacyPayloadError rejects payloads that carry only pre-step legacy
// fields. This is a hard compatibility gate, not a best-effort fallback.
type LegacyPayloadError struct {
	RejectedFields []string
}

func (e *LegacyPayloadError) Error() string {
	return fmt.Sprintf("legacy submission format no longer accepted (fields: %s)",
		strings.Join(e.RejectedFields, ", "))
}

// MissingStepsError rejects payloads without the required step structure.
type MissingStepsError struct {
	Required []string
	Received []string
}

func (e *MissingStepsError) Error() string {
	return fmt.Sprintf("missing required steps: %s", strings.Join(e.Required, ", "))
}

// FieldError reports a missing or invalid required field group.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
