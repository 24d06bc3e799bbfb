package models

import (
	"encoding/json"
	"net/url"
	"strings"

	"card-tokenizer/internal/validation"
)

// Card holds a payment card's identifying and billing data. The number is
// always stored with whitespace and hyphens stripped, last4 always matches
// the number when both are present, and the brand is derived from the number
// prefix alone. Construct cards through NewCard or CardFromJSON so those
// invariants hold.
type Card struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
	Name     string

	AddressLine1   string
	AddressLine2   string
	AddressCity    string
	AddressState   string
	AddressZip     string
	AddressCountry string

	// Derived or server-supplied
	Object      string
	Last4       string
	Brand       validation.Brand
	Fingerprint string
	Country     string
}

// NewCard builds a Card from raw user input, normalizing the number and
// deriving last4 and brand.
func NewCard(number, expMonth, expYear, cvc string) Card {
	return Card{
		Number:   number,
		ExpMonth: expMonth,
		ExpYear:  expYear,
		CVC:      cvc,
	}.Normalized()
}

// Normalized returns a copy with every field trimmed, the number stripped of
// whitespace and hyphens, and the derived fields filled in. A server-supplied
// last4 or brand wins over the derived value.
func (c Card) Normalized() Card {
	c.Number = validation.NormalizeNumber(strings.TrimSpace(c.Number))
	c.ExpMonth = strings.TrimSpace(c.ExpMonth)
	c.ExpYear = strings.TrimSpace(c.ExpYear)
	c.CVC = strings.TrimSpace(c.CVC)
	c.Name = strings.TrimSpace(c.Name)

	c.AddressLine1 = strings.TrimSpace(c.AddressLine1)
	c.AddressLine2 = strings.TrimSpace(c.AddressLine2)
	c.AddressCity = strings.TrimSpace(c.AddressCity)
	c.AddressState = strings.TrimSpace(c.AddressState)
	c.AddressZip = strings.TrimSpace(c.AddressZip)
	c.AddressCountry = strings.TrimSpace(c.AddressCountry)

	if c.Last4 == "" && len(c.Number) > 4 {
		c.Last4 = c.Number[len(c.Number)-4:]
	}
	if c.Brand == "" && c.Number != "" {
		c.Brand = validation.DetectBrand(c.Number)
	}
	return c
}

// Validate checks the card's number, expiry and CVC. The CVC check is
// skipped when the card carries no CVC.
func (c Card) Validate() validation.Result {
	return validation.ValidateCard(c.Number, c.ExpMonth, c.ExpYear, c.CVC)
}

// FormValues encodes the card for a token-creation request body. Only
// non-empty fields are included, each keyed card[...].
func (c Card) FormValues() url.Values {
	form := url.Values{}
	set := func(key, value string) {
		if value != "" {
			form.Set("card["+key+"]", value)
		}
	}

	set("number", c.Number)
	set("cvc", c.CVC)
	set("exp_month", c.ExpMonth)
	set("exp_year", c.ExpYear)
	set("name", c.Name)
	set("address_line1", c.AddressLine1)
	set("address_line2", c.AddressLine2)
	set("address_city", c.AddressCity)
	set("address_state", c.AddressState)
	set("address_zip", c.AddressZip)
	set("address_country", c.AddressCountry)
	return form
}

// CardFromJSON decodes a card object from a server payload.
func CardFromJSON(body []byte) (Card, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return Card{}, err
	}
	return cardFromMap(m), nil
}

func cardFromMap(m map[string]interface{}) Card {
	c := Card{
		Number:         optString(m, "number"),
		ExpMonth:       optString(m, "exp_month"),
		ExpYear:        optString(m, "exp_year"),
		CVC:            optString(m, "cvc"),
		Name:           optString(m, "name"),
		AddressLine1:   optString(m, "address_line1"),
		AddressLine2:   optString(m, "address_line2"),
		AddressCity:    optString(m, "address_city"),
		AddressState:   optString(m, "address_state"),
		AddressZip:     optString(m, "address_zip"),
		AddressCountry: optString(m, "address_country"),
		Object:         optString(m, "object"),
		Last4:          optString(m, "last4"),
		Fingerprint:    optString(m, "fingerprint"),
		Country:        optString(m, "country"),
	}

	// The server reports the brand as "type" on legacy payloads and
	// "brand" on newer ones.
	if brand := optString(m, "brand"); brand != "" {
		c.Brand = validation.Brand(brand)
	} else if typ := optString(m, "type"); typ != "" {
		c.Brand = validation.Brand(typ)
	}

	return c.Normalized()
}
