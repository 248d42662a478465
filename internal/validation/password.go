package validation

import "regexp"

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// HasSpecialChar reports whether s contains a character the password
// policy counts as special.
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}
