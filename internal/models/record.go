package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TokenStatus string

const (
	StatusCreated  TokenStatus = "created"
	StatusFailed   TokenStatus = "failed"
	StatusConsumed TokenStatus = "consumed"
)

// TokenRecord is the gateway's stored trace of a token exchange. It never
// contains the card number or CVC, only the derived brand and last4.
type TokenRecord struct {
	bun.BaseModel `bun:"table:token_records"`

	RecordID       string      `json:"record_id" bun:"record_id,pk"`
	TokenID        string      `json:"token_id" bun:"token_id"`
	Status         TokenStatus `json:"status" bun:"status"`
	Brand          string      `json:"brand" bun:"brand"`
	Last4          string      `json:"last4" bun:"last4"`
	Livemode       bool        `json:"livemode" bun:"livemode"`
	ErrorCode      string      `json:"error_code,omitempty" bun:"error_code"`
	IdempotencyKey string      `json:"idempotency_key,omitempty" bun:"idempotency_key"`
	CreatedDate    time.Time   `json:"created_date" bun:"created_date"`
	UpdatedDate    time.Time   `json:"updated_date" bun:"updated_date"`
}

type TokenEvent struct {
	Type      string       `json:"type"`
	RecordID  string       `json:"record_id"`
	Record    *TokenRecord `json:"record"`
	Timestamp time.Time    `json:"timestamp"`
}
