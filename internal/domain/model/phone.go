package model

import (
	"strings"
	"unicode"
)

// NormalizePhone strips whitespace and punctuation from a phone number.
// Digits are kept, as is a single leading '+'. Returns "" when no digits remain.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(raw))
	digits := 0
	for i, r := range raw {
		switch {
		case unicode.IsDigit(r) && r <= unicode.MaxASCII:
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	if digits == 0 {
		return ""
	}
	return b.String()
}
