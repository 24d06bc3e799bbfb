package stripeerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPayloadCardErrorCodes(t *testing.T) {
	cases := []struct {
		code       string
		cardCode   CardCode
		messageKey string
	}{
		{"incorrect_number", InvalidNumber, MessageKeyInvalidNumber},
		{"invalid_number", InvalidNumber, MessageKeyInvalidNumber},
		{"incorrect_cvc", InvalidCVC, MessageKeyInvalidCVC},
		{"invalid_cvc", InvalidCVC, MessageKeyInvalidCVC},
		{"invalid_expiry_month", InvalidExpMonth, MessageKeyInvalidExpMonth},
		{"invalid_expiry_year", InvalidExpYear, MessageKeyInvalidExpYear},
		{"expired_card", ExpiredCard, MessageKeyExpiredCard},
		{"card_declined", CardDeclined, MessageKeyDeclined},
		{"processing_error", ProcessingError, MessageKeyProcessingError},
		{"some_future_code", UnexpectedCard, MessageKeyUnexpectedError},
	}

	for _, tc := range cases {
		body := fmt.Sprintf(`{"error": {"type": "card_error", "message": "nope", "code": %q}}`, tc.code)
		e := FromPayload([]byte(body))

		assert.Equal(t, CardError, e.Kind, "code %s", tc.code)
		assert.Equal(t, tc.cardCode, e.CardCode, "code %s", tc.code)
		assert.Equal(t, tc.messageKey, e.MessageKey, "code %s", tc.code)
		assert.Equal(t, "nope", e.DevMessage, "code %s", tc.code)
	}
}

func TestFromPayloadMissingFieldFallback(t *testing.T) {
	// Without a code, the offending parameter selects a missing-field
	// variant. The snake_case param is reported camel-cased.
	cases := []struct {
		param      string
		wantParam  string
		cardCode   CardCode
		messageKey string
	}{
		{"number", "number", InvalidNumber, MessageKeyMissingNumber},
		{"exp_year", "expYear", InvalidExpYear, MessageKeyMissingExpYear},
		{"exp_month", "expMonth", InvalidExpMonth, MessageKeyMissingExpMonth},
		{"cvc", "cvc", InvalidCVC, MessageKeyMissingCVC},
		{"name", "name", UnexpectedCard, MessageKeyUnexpectedError},
	}

	for _, tc := range cases {
		body := fmt.Sprintf(`{"error": {"type": "card_error", "message": "missing", "param": %q}}`, tc.param)
		e := FromPayload([]byte(body))

		assert.Equal(t, CardError, e.Kind, "param %s", tc.param)
		assert.Equal(t, tc.cardCode, e.CardCode, "param %s", tc.param)
		assert.Equal(t, tc.messageKey, e.MessageKey, "param %s", tc.param)
		assert.Equal(t, tc.wantParam, e.Param, "param %s", tc.param)
	}
}

func TestFromPayloadOtherKinds(t *testing.T) {
	e := FromPayload([]byte(`{"error": {"type": "api_error", "message": "server hiccup"}}`))
	assert.Equal(t, APIError, e.Kind)
	assert.Equal(t, MessageKeyUnexpectedError, e.MessageKey)
	assert.Equal(t, "server hiccup", e.DevMessage)
	assert.Empty(t, e.CardCode)

	e = FromPayload([]byte(`{"error": {"type": "invalid_request_error", "message": "bad param", "param": "exp_month"}}`))
	assert.Equal(t, InvalidRequest, e.Kind)
	assert.Equal(t, MessageKeyInvalidRequest, e.MessageKey)
	assert.Equal(t, "expMonth", e.Param)
}

func TestFromPayloadMalformed(t *testing.T) {
	// Missing or incomplete error objects classify as unknown rather than
	// failing outright.
	for _, body := range []string{
		`{}`,
		`{"error": null}`,
		`{"error": {"message": "no type"}}`,
		`{"error": {"type": "card_error"}}`,
		`{"error": {"type": "alien_error", "message": "hm"}}`,
	} {
		assert.Equal(t, ErrUnknown, FromPayload([]byte(body)), "body %s", body)
	}

	// Unparseable bodies keep the parse failure as the diagnostic.
	e := FromPayload([]byte(`this is not json`))
	assert.Equal(t, Unexpected, e.Kind)
	assert.Equal(t, MessageKeyUnexpectedError, e.MessageKey)
	assert.NotEqual(t, ErrUnknown.DevMessage, e.DevMessage)
}

func TestFromResponse(t *testing.T) {
	// A 401 never touches the body.
	assert.Equal(t, ErrUnauthorized, FromResponse(401, []byte(`not even json`)))

	e := FromResponse(402, []byte(`{"error": {"type": "card_error", "message": "declined", "code": "card_declined"}}`))
	assert.Equal(t, CardError, e.Kind)
	assert.Equal(t, CardDeclined, e.CardCode)
}

func TestFromErr(t *testing.T) {
	e := FromErr(errors.New("connection refused"))
	assert.Equal(t, Unexpected, e.Kind)
	assert.Equal(t, "connection refused", e.DevMessage)

	assert.Equal(t, ErrUnknown, FromErr(nil))
}

func TestErrorValueEquality(t *testing.T) {
	a := Error{Kind: CardError, MessageKey: MessageKeyInvalidNumber, CardCode: InvalidNumber, Param: "number"}
	b := Error{Kind: CardError, MessageKey: MessageKeyInvalidNumber, CardCode: InvalidNumber, Param: "number"}
	assert.Equal(t, a, b)
	assert.True(t, a == b)

	c := b
	c.Param = "cvc"
	assert.NotEqual(t, a, c)
}

func TestErrorString(t *testing.T) {
	assert.Contains(t, ErrInvalidNumber.Error(), "card_error")
	assert.Contains(t, ErrInvalidNumber.Error(), "invalid_number")
	assert.Contains(t, ErrUnauthorized.Error(), "unauthorized")
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "expMonth", toCamelCase("exp_month"))
	assert.Equal(t, "expYear", toCamelCase("exp_year"))
	assert.Equal(t, "number", toCamelCase("number"))
	assert.Equal(t, "", toCamelCase(""))
	assert.Equal(t, "addressLine1", toCamelCase("address_line1"))
}
