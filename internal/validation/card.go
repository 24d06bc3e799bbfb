package validation

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"card-tokenizer/internal/stripeerr"
)

const (
	minNumberLength = 10
	maxNumberLength = 19
)

// NormalizeNumber strips whitespace and hyphens from a card number. Nothing
// else is removed: a number containing other separators, dots included,
// still fails the digit check in ValidateNumber.
func NormalizeNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, number)
}

// ValidateNumber checks a raw card number: after normalization it must be
// 10-19 characters, all digits, and Luhn valid.
func ValidateNumber(number string) Result {
	if IsBlank(number) {
		return Fail(stripeerr.ErrInvalidNumber)
	}

	raw := NormalizeNumber(number)
	if IsBlank(raw) ||
		len(raw) < minNumberLength ||
		len(raw) > maxNumberLength ||
		!IsWholePositiveNumber(raw) ||
		!IsLuhnValid(raw) {
		return Fail(stripeerr.ErrInvalidNumber)
	}
	return OK()
}

// ValidateExpMonth checks that month is a number between 1 and 12.
func ValidateExpMonth(month string) Result {
	month = strings.TrimSpace(month)
	if month == "" || !IsWholePositiveNumber(month) {
		return Fail(stripeerr.ErrInvalidExpMonth)
	}

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return Fail(stripeerr.ErrInvalidExpMonth)
	}
	return OK()
}

// ValidateExpYear checks that year, after two-digit normalization, is the
// current year or later.
func ValidateExpYear(year string) Result {
	return validateExpYearAt(year, time.Now())
}

func validateExpYearAt(year string, now time.Time) Result {
	year = strings.TrimSpace(year)
	if year == "" || !IsWholePositiveNumber(year) {
		return Fail(stripeerr.ErrInvalidExpYear)
	}

	y, err := strconv.Atoi(year)
	if err != nil || normalizeYear(y, now) < now.Year() {
		return Fail(stripeerr.ErrInvalidExpYear)
	}
	return OK()
}

// ValidateExpiryDate combines month and year validation, then rejects a
// month/year pair that has already fully elapsed. A card stays valid through
// the end of its expiry month, so the current month passes.
func ValidateExpiryDate(month, year string) Result {
	return validateExpiryDateAt(month, year, time.Now())
}

func validateExpiryDateAt(month, year string, now time.Time) Result {
	combined := Combine(validateExpYearAt(year, now), ValidateExpMonth(month))
	if !combined.Valid {
		return combined
	}

	m, _ := strconv.Atoi(strings.TrimSpace(month))
	y, _ := strconv.Atoi(strings.TrimSpace(year))
	if hasMonthPassed(y, m, now) {
		return Fail(stripeerr.ErrInvalidExpMonth)
	}
	return combined
}

// ValidateCVC checks a CVC against the brand's required length. For an
// Unknown brand both 3 and 4 digits are accepted, since the required length
// cannot be determined without the brand.
func ValidateCVC(cvc string, brand Brand) Result {
	if IsBlank(cvc) {
		return Fail(stripeerr.ErrInvalidCVC)
	}

	cvc = strings.TrimSpace(cvc)
	validLength := (brand == Unknown && len(cvc) >= 3 && len(cvc) <= 4) ||
		(brand != Unknown && len(cvc) == CVCLength(brand))

	if !IsWholePositiveNumber(cvc) || !validLength {
		return Fail(stripeerr.ErrInvalidCVC)
	}
	return OK()
}

// ValidateCard validates a full set of card fields. The CVC check is skipped
// entirely when no CVC is supplied, so a card collected without one can
// still be fully valid; flows that collect the CVC separately rely on this.
func ValidateCard(number, expMonth, expYear, cvc string) Result {
	return validateCardAt(number, expMonth, expYear, cvc, time.Now())
}

func validateCardAt(number, expMonth, expYear, cvc string, now time.Time) Result {
	if IsBlank(cvc) {
		return Combine(
			ValidateNumber(number),
			validateExpiryDateAt(expMonth, expYear, now),
		)
	}
	return Combine(
		ValidateNumber(number),
		validateExpiryDateAt(expMonth, expYear, now),
		ValidateCVC(cvc, DetectBrand(NormalizeNumber(number))),
	)
}

// normalizeYear widens a two-digit year with the current century's prefix.
// The prefix comes from the current year at call time, not a hardcoded
// cutoff, so results near a century boundary track the clock.
func normalizeYear(year int, now time.Time) int {
	if year >= 0 && year < 100 {
		return (now.Year()/100)*100 + year
	}
	return year
}

func hasYearPassed(year int, now time.Time) bool {
	return normalizeYear(year, now) < now.Year()
}

func hasMonthPassed(year, month int, now time.Time) bool {
	if hasYearPassed(year, now) {
		return true
	}
	return normalizeYear(year, now) == now.Year() && month < int(now.Month())
}
