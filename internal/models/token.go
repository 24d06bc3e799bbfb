package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Token types reported by the tokenization API.
const (
	TokenTypeCard        = "card"
	TokenTypeBankAccount = "bank_account"
)

var ErrMalformedToken = errors.New("malformed token payload")

// Token is a server-issued single-use credential. Tokens are only ever built
// by parsing a successful server response; a parsed token always has a
// non-empty id and exactly one of Card or BankAccount set for its type.
type Token struct {
	ID       string
	Type     string
	Livemode bool
	Used     bool
	Created  time.Time

	Card        *Card
	BankAccount *BankAccount
}

// TokenFromJSON parses a successful token-creation response body.
func TokenFromJSON(body []byte) (*Token, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}

	id := optString(m, "id")
	if id == "" {
		return nil, ErrMalformedToken
	}

	token := &Token{
		ID:       id,
		Type:     optString(m, "type"),
		Livemode: optBool(m, "livemode"),
		Used:     optBool(m, "used"),
		Created:  time.Unix(optInt64(m, "created"), 0),
	}

	if cardMap := optMap(m, "card"); cardMap != nil {
		card := cardFromMap(cardMap)
		token.Card = &card
		if token.Type == "" {
			token.Type = TokenTypeCard
		}
	} else if bankMap := optMap(m, "bank_account"); bankMap != nil {
		account := bankAccountFromMap(bankMap)
		token.BankAccount = &account
		if token.Type == "" {
			token.Type = TokenTypeBankAccount
		}
	}

	return token, nil
}
