// Package stripeerr classifies failures from both local card validation and
// the remote tokenization API into a single typed error value. Every error
// carries a message key the embedding application resolves against its own
// localized string table; this package only selects keys, it never localizes.
package stripeerr

import "fmt"

// Kind is the coarse classification of an error.
type Kind string

const (
	APIError       Kind = "api_error"
	CardError      Kind = "card_error"
	InvalidRequest Kind = "invalid_request_error"
	Unauthorized   Kind = "unauthorized"
	Unexpected     Kind = "unexpected_error"
)

// CardCode is the card-specific sub-classification. It is set only when the
// error Kind is CardError.
type CardCode string

const (
	InvalidNumber   CardCode = "invalid_number"
	InvalidExpMonth CardCode = "invalid_expiry_month"
	InvalidExpYear  CardCode = "invalid_expiry_year"
	InvalidCVC      CardCode = "invalid_cvc"
	ExpiredCard     CardCode = "expired_card"
	CardDeclined    CardCode = "card_declined"
	ProcessingError CardCode = "processing_error"
	UnexpectedCard  CardCode = "unexpected_error"
)

// Message keys resolved by the embedding application's string table.
const (
	MessageKeyInvalidNumber   = "incorrect_number_message"
	MessageKeyInvalidCVC      = "incorrect_cvc_message"
	MessageKeyInvalidExpMonth = "invalid_expiry_month_message"
	MessageKeyInvalidExpYear  = "invalid_expiry_year_message"
	MessageKeyExpiredCard     = "expired_card_message"
	MessageKeyDeclined        = "card_declined_message"
	MessageKeyProcessingError = "processing_error_message"
	MessageKeyUnexpectedError = "unexpected_error_message"
	MessageKeyInvalidRequest  = "invalid_request_error_message"
	MessageKeyUnauthorized    = "unauthorized_request_error_message"
	MessageKeyMissingNumber   = "missing_number_message"
	MessageKeyMissingCVC      = "missing_cvc_message"
	MessageKeyMissingExpMonth = "missing_expiry_month_message"
	MessageKeyMissingExpYear  = "missing_expiry_year_message"
)

const (
	devMessageInvalidNumber   = "Card number must be between 10 and 19 digits long and Luhn valid."
	devMessageInvalidExpYear  = "Card expYear must be this year or a year in the future"
	devMessageInvalidExpMonth = "Card expMonth must be less than 13"
	devMessageInvalidCVC      = "Card CVC must be numeric, 3 digits for Visa, Discover, MasterCard, JCB, and Diners Club cards, and 4 digits for American Express cards."
	devMessageUnknown         = "Could not interpret the response that was returned from Stripe."
	devMessageUnauthorized    = "Received 401 Unauthorized from Stripe, please ensure you are using the correct publishable key."
)

// Error is a classified failure. Errors are plain values compared by value:
// two errors with the same kind, message key, developer message, card code
// and parameter are equal, which lets callers deduplicate validation results
// in a set.
type Error struct {
	Kind       Kind
	MessageKey string
	DevMessage string
	CardCode   CardCode
	Param      string
}

func (e Error) Error() string {
	if e.CardCode != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.CardCode, e.DevMessage)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.DevMessage)
}

// Errors raised by local validation, before any network I/O.
var (
	ErrInvalidNumber = Error{
		Kind:       CardError,
		MessageKey: MessageKeyInvalidNumber,
		DevMessage: devMessageInvalidNumber,
		CardCode:   InvalidNumber,
		Param:      "number",
	}

	ErrInvalidExpMonth = Error{
		Kind:       CardError,
		MessageKey: MessageKeyInvalidExpMonth,
		DevMessage: devMessageInvalidExpMonth,
		CardCode:   InvalidExpMonth,
		Param:      "expMonth",
	}

	ErrInvalidExpYear = Error{
		Kind:       CardError,
		MessageKey: MessageKeyInvalidExpYear,
		DevMessage: devMessageInvalidExpYear,
		CardCode:   InvalidExpYear,
		Param:      "expYear",
	}

	ErrInvalidCVC = Error{
		Kind:       CardError,
		MessageKey: MessageKeyInvalidCVC,
		DevMessage: devMessageInvalidCVC,
		CardCode:   InvalidCVC,
		Param:      "cvc",
	}

	ErrUnauthorized = Error{
		Kind:       Unauthorized,
		MessageKey: MessageKeyUnauthorized,
		DevMessage: devMessageUnauthorized,
	}

	ErrUnknown = Error{
		Kind:       Unexpected,
		MessageKey: MessageKeyUnexpectedError,
		DevMessage: devMessageUnknown,
	}
)

// FromErr wraps an arbitrary failure, typically a transport or parse error,
// keeping its text as the developer-facing diagnostic.
func FromErr(err error) Error {
	e := ErrUnknown
	if err != nil && err.Error() != "" {
		e.DevMessage = err.Error()
	}
	return e
}
