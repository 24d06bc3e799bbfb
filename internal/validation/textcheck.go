package validation

import "strings"

// IsBlank reports whether s is empty or contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsWholePositiveNumber reports whether every character of s is an ASCII
// digit. The empty string is considered valid; callers that care about
// blankness check it separately with IsBlank.
func IsWholePositiveNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HasAnyPrefix reports whether s starts with at least one of the given
// prefixes.
func HasAnyPrefix(s string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// IsLuhnValid runs the Luhn mod-10 checksum over s. Any non-digit character
// fails immediately.
func IsLuhnValid(s string) bool {
	sum := 0
	double := false

	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}

		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		double = !double
	}

	return sum%10 == 0
}
