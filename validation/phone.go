package validation

import (
	"strings"
	"unicode"
)

// NormalizePhone brings Russian mobile numbers to the +7XXXXXXXXXX form:
// "8 (900) 123-45-67", "7900…" and "+7-900-…" all map to "+79001234567".
// Anything else is returned trimmed and unchanged, so foreign or partial
// numbers are still stored.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	var digits strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		case r == '+' || r == '-' || r == '(' || r == ')' || unicode.IsSpace(r):
		default:
			return s
		}
	}
	d := digits.String()
	if len(d) != 11 {
		return s
	}
	switch d[0] {
	case '8', '7':
		return "+7" + d[1:]
	}
	return s
}
