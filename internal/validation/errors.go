package validation

import "fmt"

// ValidationError carries a single field failure across service
// boundaries so handlers can map it to a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
