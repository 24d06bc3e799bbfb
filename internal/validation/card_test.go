package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-tokenizer/internal/stripeerr"
)

// Fixed clock for the expiry tests so they never rot as real time advances.
var testNow = time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

func TestIsLuhnValid(t *testing.T) {
	valid := []string{
		"4242424242424242",
		"4012888888881881",
		"378282246310005",  // American Express
		"30569309025904",   // Diners Club
		"6011111111111117", // Discover
		"5555555555554444", // MasterCard
	}
	for _, number := range valid {
		assert.True(t, IsLuhnValid(number), "expected %s to pass the Luhn check", number)
	}

	invalid := []string{
		"4242424242424241",
		"4242424242424243",
		"1234567890123456",
		"4242x42424242424",
	}
	for _, number := range invalid {
		assert.False(t, IsLuhnValid(number), "expected %s to fail the Luhn check", number)
	}
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "4242424242424242", NormalizeNumber("4242 4242 4242 4242"))
	assert.Equal(t, "4242424242424242", NormalizeNumber("4242-4242-4242-4242"))
	assert.Equal(t, "4242424242424242", NormalizeNumber(" 4242\t4242 4242 4242 "))

	// Only whitespace and hyphens are separators; anything else stays put.
	assert.Equal(t, "4242.4242.4242.4242", NormalizeNumber("4242.4242.4242.4242"))
}

func TestValidateNumber(t *testing.T) {
	valid := []string{
		"4242424242424242",
		"4242 4242 4242 4242",
		"4242-4242-4242-4242",
		"378282246310005",
		"30569309025904",
	}
	for _, number := range valid {
		assert.True(t, ValidateNumber(number).Valid, "expected %s to be valid", number)
	}

	invalid := []string{
		"",
		"   ",
		"4242424242424241",    // Luhn failure
		"424242424",           // 9 digits, below minimum
		"42424242424242424242", // 20 digits, above maximum
		"4242.4242.4242.4242", // dots are not separators
		"4242a42424242424",
	}
	for _, number := range invalid {
		result := ValidateNumber(number)
		require.False(t, result.Valid, "expected %q to be invalid", number)
		assert.Equal(t, []stripeerr.Error{stripeerr.ErrInvalidNumber}, result.Errors)
	}
}

func TestValidateExpMonth(t *testing.T) {
	for _, month := range []string{"1", "01", "6", "12", " 9 "} {
		assert.True(t, ValidateExpMonth(month).Valid, "expected month %q to be valid", month)
	}

	for _, month := range []string{"", "0", "13", "-1", "ab", "1.5"} {
		result := ValidateExpMonth(month)
		require.False(t, result.Valid, "expected month %q to be invalid", month)
		assert.Equal(t, []stripeerr.Error{stripeerr.ErrInvalidExpMonth}, result.Errors)
	}
}

func TestValidateExpYear(t *testing.T) {
	for _, year := range []string{"2026", "2030", "26", "50", "99"} {
		assert.True(t, validateExpYearAt(year, testNow).Valid, "expected year %q to be valid", year)
	}

	for _, year := range []string{"", "2025", "25", "00", "1999", "-1", "abcd"} {
		result := validateExpYearAt(year, testNow)
		require.False(t, result.Valid, "expected year %q to be invalid", year)
		assert.Equal(t, []stripeerr.Error{stripeerr.ErrInvalidExpYear}, result.Errors)
	}
}

func TestNormalizeYear(t *testing.T) {
	assert.Equal(t, 2050, normalizeYear(50, testNow))
	assert.Equal(t, 2026, normalizeYear(26, testNow))
	assert.Equal(t, 2050, normalizeYear(2050, testNow))

	// The century prefix follows the clock rather than a fixed cutoff.
	future := time.Date(2105, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2150, normalizeYear(50, future))
}

func TestValidateExpiryDate(t *testing.T) {
	// The card stays valid through the end of its expiry month.
	assert.True(t, validateExpiryDateAt("9", "2026", testNow).Valid)
	assert.True(t, validateExpiryDateAt("12", "2026", testNow).Valid)
	assert.True(t, validateExpiryDateAt("1", "2027", testNow).Valid)
	assert.True(t, validateExpiryDateAt("09", "26", testNow).Valid)

	// An earlier month of the current year reads as an expired month.
	august := validateExpiryDateAt("8", "2026", testNow)
	require.False(t, august.Valid)
	assert.Equal(t, []stripeerr.Error{stripeerr.ErrInvalidExpMonth}, august.Errors)

	lastYear := validateExpiryDateAt("12", "2025", testNow)
	require.False(t, lastYear.Valid)
	assert.Equal(t, []stripeerr.Error{stripeerr.ErrInvalidExpYear}, lastYear.Errors)

	// Both fields out of range report both errors.
	both := validateExpiryDateAt("13", "2025", testNow)
	require.False(t, both.Valid)
	assert.Len(t, both.Errors, 2)
	assert.Contains(t, both.Errors, stripeerr.ErrInvalidExpYear)
	assert.Contains(t, both.Errors, stripeerr.ErrInvalidExpMonth)
}

func TestValidateCVC(t *testing.T) {
	assert.True(t, ValidateCVC("123", Visa).Valid)
	assert.True(t, ValidateCVC("123", MasterCard).Valid)
	assert.True(t, ValidateCVC("123", Discover).Valid)
	assert.True(t, ValidateCVC("1234", AmericanExpress).Valid)

	// Without a brand, either common length is accepted.
	assert.True(t, ValidateCVC("123", Unknown).Valid)
	assert.True(t, ValidateCVC("1234", Unknown).Valid)

	invalid := []struct {
		cvc   string
		brand Brand
	}{
		{"", Visa},
		{"   ", Visa},
		{"1234", Visa},
		{"123", AmericanExpress},
		{"12", Unknown},
		{"12345", Unknown},
		{"12a", Visa},
	}
	for _, tc := range invalid {
		result := ValidateCVC(tc.cvc, tc.brand)
		require.False(t, result.Valid, "expected cvc %q for %s to be invalid", tc.cvc, tc.brand)
		assert.Equal(t, []stripeerr.Error{stripeerr.ErrInvalidCVC}, result.Errors)
	}
}

func TestValidateCard(t *testing.T) {
	result := validateCardAt("4242 4242 4242 4242", "12", "2050", "123", testNow)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	// A blank CVC skips the CVC check entirely.
	result = validateCardAt("4242424242424242", "12", "2050", "", testNow)
	assert.True(t, result.Valid)

	// A present CVC is validated against the detected brand.
	result = validateCardAt("378282246310005", "12", "2050", "123", testNow)
	require.False(t, result.Valid)
	assert.Equal(t, []stripeerr.Error{stripeerr.ErrInvalidCVC}, result.Errors)

	// Multiple failures are all reported, once each.
	result = validateCardAt("4242424242424241", "13", "2025", "12", testNow)
	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors, stripeerr.ErrInvalidNumber)
	assert.Contains(t, result.Errors, stripeerr.ErrInvalidExpMonth)
	assert.Contains(t, result.Errors, stripeerr.ErrInvalidExpYear)
	assert.Contains(t, result.Errors, stripeerr.ErrInvalidCVC)
}

func TestValidateCardDeterministic(t *testing.T) {
	first := validateCardAt("4242424242424242", "12", "2050", "123", testNow)
	second := validateCardAt("4242424242424242", "12", "2050", "123", testNow)
	assert.Equal(t, first, second)
}

func TestCombineDeduplicates(t *testing.T) {
	combined := Combine(
		Fail(stripeerr.ErrInvalidNumber),
		Fail(stripeerr.ErrInvalidNumber, stripeerr.ErrInvalidCVC),
	)
	require.False(t, combined.Valid)
	assert.Equal(t, []stripeerr.Error{stripeerr.ErrInvalidNumber, stripeerr.ErrInvalidCVC}, combined.Errors)

	assert.True(t, Combine(OK(), OK()).Valid)
	assert.True(t, Combine().Valid)
}
