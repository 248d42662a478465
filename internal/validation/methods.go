package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// Validator accumulates field failures across a sequence of checks so
// callers can report every problem at once instead of the first one hit.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether every check so far passed.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors[field] = message
}

// Check records message under field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// Required rejects zero values. Strings are trimmed first so
// whitespace-only input does not pass.
func (v *Validator) Required(field string, value interface{}) {
	if value == nil {
		v.AddError(field, "must not be nil")
		return
	}

	switch val := value.(type) {
	case string:
		v.Check(strings.TrimSpace(val) != "", field, "must not be empty")
	case float64:
		v.Check(val != 0, field, "must not be zero")
	case int:
		v.Check(val != 0, field, "must not be zero")
	case uint:
		v.Check(val != 0, field, "must not be zero")
	}
}

func (v *Validator) MinLength(field string, value string, n int) {
	v.Check(len(value) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

func (v *Validator) MaxLength(field string, value string, n int) {
	v.Check(len(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// Range checks a numeric value against inclusive bounds.
func (v *Validator) Range(field string, value float64, min, max float64) {
	v.Check(value >= min && value <= max, field, fmt.Sprintf("must be between %v and %v", min, max))
}

// Password enforces the staff credential policy: minimum length plus
// upper, lower, digit and special character classes.
func (v *Validator) Password(field, password string) {
	v.MinLength(field, password, MinPasswordLength)

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	v.Check(hasUpper, field, "must contain at least one uppercase letter")
	v.Check(hasLower, field, "must contain at least one lowercase letter")
	v.Check(hasNumber, field, "must contain at least one number")
	v.Check(hasSpecial, field, "must contain at least one special character")
}
