package storage

import (
	"errors"
	"sync"

	"card-tokenizer/internal/models"
)

type InMemoryStore struct {
	records map[string]*models.TokenRecord
	mutex   sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*models.TokenRecord),
	}
}

func (s *InMemoryStore) SaveRecord(record *models.TokenRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.records[record.RecordID] = record
	return nil
}

func (s *InMemoryStore) GetRecord(recordID string) (*models.TokenRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.records[recordID]
	if !exists {
		return nil, errors.New("record not found")
	}

	return record, nil
}

func (s *InMemoryStore) GetRecordByTokenID(tokenID string) (*models.TokenRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, record := range s.records {
		if record.TokenID == tokenID && tokenID != "" {
			return record, nil
		}
	}

	return nil, errors.New("record not found")
}

func (s *InMemoryStore) UpdateRecord(record *models.TokenRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.records[record.RecordID]; !exists {
		return errors.New("record not found")
	}

	s.records[record.RecordID] = record
	return nil
}

func (s *InMemoryStore) ListRecords(status models.TokenStatus, limit, offset int) ([]*models.TokenRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var records []*models.TokenRecord
	count := 0

	for _, record := range s.records {
		if status == "" || record.Status == status {
			if count >= offset && len(records) < limit {
				records = append(records, record)
			}
			count++
		}
	}

	return records, nil
}
