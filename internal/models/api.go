package models

// CardDetails is the inbound card payload accepted by the gateway API.
type CardDetails struct {
	Number   string   `json:"number" binding:"required"`
	ExpMonth string   `json:"exp_month" binding:"required"`
	ExpYear  string   `json:"exp_year" binding:"required"`
	CVC      string   `json:"cvc"`
	Name     string   `json:"name"`
	Address  *Address `json:"address,omitempty"`
}

// Address is the billing address attached to a card.
type Address struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// ToCard maps the request payload onto a normalized Card.
func (d *CardDetails) ToCard() Card {
	card := Card{
		Number:   d.Number,
		ExpMonth: d.ExpMonth,
		ExpYear:  d.ExpYear,
		CVC:      d.CVC,
		Name:     d.Name,
	}
	if d.Address != nil {
		card.AddressLine1 = d.Address.Line1
		card.AddressLine2 = d.Address.Line2
		card.AddressCity = d.Address.City
		card.AddressState = d.Address.State
		card.AddressZip = d.Address.Zip
		card.AddressCountry = d.Address.Country
	}
	return card.Normalized()
}

// TokenizeRequest asks the gateway to exchange card details for a token.
type TokenizeRequest struct {
	Card           *CardDetails `json:"card" binding:"required"`
	IdempotencyKey string       `json:"idempotency_key,omitempty"`
}

// TokenResponse is the gateway's view of a created token.
type TokenResponse struct {
	TokenID  string `json:"token_id"`
	Type     string `json:"type"`
	Brand    string `json:"brand,omitempty"`
	Last4    string `json:"last4,omitempty"`
	Livemode bool   `json:"livemode"`
	Used     bool   `json:"used"`
	Created  int64  `json:"created"`
	RecordID string `json:"record_id"`
}

// CardValidationRequest validates card details without exchanging them.
type CardValidationRequest struct {
	Card *CardDetails `json:"card" binding:"required"`
}

// CardValidationResponse reports the local validation outcome.
type CardValidationResponse struct {
	Valid    bool     `json:"valid"`
	Brand    string   `json:"brand,omitempty"`
	Last4    string   `json:"last4,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Messages []string `json:"message_keys,omitempty"`
}
