package storage

import (
	"card-tokenizer/internal/models"
)

type Store interface {
	SaveRecord(record *models.TokenRecord) error
	GetRecord(recordID string) (*models.TokenRecord, error)
	GetRecordByTokenID(tokenID string) (*models.TokenRecord, error)
	UpdateRecord(record *models.TokenRecord) error
	// ListRecords returns records matching status, newest first. An empty
	// status matches every record.
	ListRecords(status models.TokenStatus, limit, offset int) ([]*models.TokenRecord, error)
}
