package stripeerr

import (
	"encoding/json"
	"net/http"
	"strings"
)

type errorPayload struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Code    string `json:"code"`
		Param   string `json:"param"`
	} `json:"error"`
}

// FromPayload maps a server error body of the form
// {"error": {"type": ..., "message": ..., "code": ..., "param": ...}} to a
// typed Error. A body missing the error object, the type or the message maps
// to ErrUnknown rather than failing.
func FromPayload(body []byte) Error {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return FromErr(err)
	}
	if payload.Error == nil || payload.Error.Type == "" || payload.Error.Message == "" {
		return ErrUnknown
	}

	param := toCamelCase(payload.Error.Param)

	e := Error{DevMessage: payload.Error.Message, Param: param}
	switch payload.Error.Type {
	case "api_error":
		e.Kind = APIError
		e.MessageKey = MessageKeyUnexpectedError
	case "invalid_request_error":
		e.Kind = InvalidRequest
		e.MessageKey = MessageKeyInvalidRequest
	case "card_error":
		e.Kind = CardError
		e.CardCode, e.MessageKey = classifyCardError(payload.Error.Code, param)
	default:
		return ErrUnknown
	}
	return e
}

// classifyCardError maps a card_error code to a card sub-code and message
// key. When the server omits the code but names the offending parameter, the
// error is treated as a missing-field variant of the same sub-code.
func classifyCardError(code, param string) (CardCode, string) {
	switch code {
	case "incorrect_number", "invalid_number":
		return InvalidNumber, MessageKeyInvalidNumber
	case "incorrect_cvc", "invalid_cvc":
		return InvalidCVC, MessageKeyInvalidCVC
	case "invalid_expiry_month":
		return InvalidExpMonth, MessageKeyInvalidExpMonth
	case "invalid_expiry_year":
		return InvalidExpYear, MessageKeyInvalidExpYear
	case "expired_card":
		return ExpiredCard, MessageKeyExpiredCard
	case "card_declined":
		return CardDeclined, MessageKeyDeclined
	case "processing_error":
		return ProcessingError, MessageKeyProcessingError
	}

	if code == "" {
		switch param {
		case "number":
			return InvalidNumber, MessageKeyMissingNumber
		case "expYear":
			return InvalidExpYear, MessageKeyMissingExpYear
		case "expMonth":
			return InvalidExpMonth, MessageKeyMissingExpMonth
		case "cvc":
			return InvalidCVC, MessageKeyMissingCVC
		}
	}

	return UnexpectedCard, MessageKeyUnexpectedError
}

// FromResponse classifies a non-200 HTTP response. A 401 maps straight to
// ErrUnauthorized without touching the body, since a 401 body is not
// guaranteed to be JSON.
func FromResponse(statusCode int, body []byte) Error {
	if statusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return FromPayload(body)
}

// toCamelCase converts a snake_case parameter name such as exp_month to the
// camel-cased form (expMonth) used for local field references.
func toCamelCase(s string) string {
	if s == "" {
		return ""
	}
	parts := strings.Split(s, "_")
	out := parts[0]
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		out += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return out
}
