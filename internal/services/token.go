package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"card-tokenizer/internal/kafka"
	"card-tokenizer/internal/logger"
	"card-tokenizer/internal/models"
	"card-tokenizer/internal/storage"
	"card-tokenizer/internal/stripeclient"
	"card-tokenizer/internal/stripeerr"
	"card-tokenizer/internal/utils"
	"card-tokenizer/internal/validation"
)

var (
	ErrRecordNotFound   = errors.New("token record not found")
	ErrDuplicateRequest = errors.New("another request with this idempotency key is in flight")
)

type RedisLock interface {
	AcquireIdempotencyLock(key, recordID string) (bool, error)
	ReleaseIdempotencyLock(key, recordID string) error
	LockOwner(key string) (string, error)
}

type TokenService struct {
	store    storage.Store
	producer *kafka.Producer
	client   *stripeclient.Client
	log      *logger.Logger
	redis    RedisLock
}

func NewTokenService(store storage.Store, producer *kafka.Producer, client *stripeclient.Client, log *logger.Logger, redis RedisLock) *TokenService {
	return &TokenService{
		store:    store,
		producer: producer,
		client:   client,
		log:      log,
		redis:    redis,
	}
}

// CreateToken exchanges card details for a token and records the outcome.
// Local validation failures and upstream errors both come back as
// stripeerr.Error values; the failed exchange is still recorded.
func (s *TokenService) CreateToken(ctx context.Context, req *models.TokenizeRequest) (*models.TokenResponse, error) {
	card := req.Card.ToCard()
	recordID := utils.GenerateRecordID()

	s.log.LogToken("INIT", recordID, fmt.Sprintf("Tokenizing %s card ending in %s", card.Brand, card.Last4))

	if req.IdempotencyKey != "" && s.redis != nil {
		ok, err := s.redis.AcquireIdempotencyLock(req.IdempotencyKey, recordID)
		if err != nil {
			s.log.Error("REDIS", fmt.Sprintf("Failed to acquire idempotency lock: %v", err))
		} else if !ok {
			s.log.LogToken("DUPLICATE", recordID, fmt.Sprintf("Idempotency key already in flight: %s", req.IdempotencyKey))
			return nil, ErrDuplicateRequest
		}
		defer func() {
			if err := s.redis.ReleaseIdempotencyLock(req.IdempotencyKey, recordID); err != nil {
				s.log.Error("REDIS", fmt.Sprintf("Failed to release idempotency lock: %v", err))
			}
		}()
	}

	var opts *stripeclient.RequestOptions
	if req.IdempotencyKey != "" {
		opts = &stripeclient.RequestOptions{IdempotencyKey: req.IdempotencyKey}
	}

	token, err := s.client.CreateToken(ctx, card, opts)
	if err != nil {
		s.recordFailure(recordID, card, req.IdempotencyKey, err)
		return nil, err
	}

	now := time.Now()
	record := &models.TokenRecord{
		RecordID:       recordID,
		TokenID:        token.ID,
		Status:         models.StatusCreated,
		Brand:          string(card.Brand),
		Last4:          card.Last4,
		Livemode:       token.Livemode,
		IdempotencyKey: req.IdempotencyKey,
		CreatedDate:    now,
		UpdatedDate:    now,
	}
	if token.Card != nil {
		record.Brand = string(token.Card.Brand)
		record.Last4 = token.Card.Last4
	}

	if err := s.store.SaveRecord(record); err != nil {
		s.log.Error("TOKEN", fmt.Sprintf("Failed to save record %s: %v", recordID, err))
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	s.log.LogDatabase("SAVE", "token_records", fmt.Sprintf("Record %s saved for token %s", recordID, token.ID))
	s.publishTokenEvent("token.created", record)

	return &models.TokenResponse{
		TokenID:  token.ID,
		Type:     token.Type,
		Brand:    record.Brand,
		Last4:    record.Last4,
		Livemode: token.Livemode,
		Used:     token.Used,
		Created:  token.Created.Unix(),
		RecordID: recordID,
	}, nil
}

func (s *TokenService) recordFailure(recordID string, card models.Card, idempotencyKey string, cause error) {
	now := time.Now()
	record := &models.TokenRecord{
		RecordID:       recordID,
		Status:         models.StatusFailed,
		Brand:          string(card.Brand),
		Last4:          card.Last4,
		IdempotencyKey: idempotencyKey,
		CreatedDate:    now,
		UpdatedDate:    now,
	}

	var stripeErr stripeerr.Error
	if errors.As(cause, &stripeErr) {
		if stripeErr.CardCode != "" {
			record.ErrorCode = string(stripeErr.CardCode)
		} else {
			record.ErrorCode = string(stripeErr.Kind)
		}
	}

	if err := s.store.SaveRecord(record); err != nil {
		s.log.Error("TOKEN", fmt.Sprintf("Failed to save failed record %s: %v", recordID, err))
		return
	}

	s.log.LogToken("FAILED", recordID, fmt.Sprintf("Tokenization failed: %v", cause))
	s.publishTokenEvent("token.failed", record)
}

// ValidateCard runs local validation only, for live feedback before a
// tokenize call. No network I/O.
func (s *TokenService) ValidateCard(details *models.CardDetails) *models.CardValidationResponse {
	card := details.ToCard()
	result := card.Validate()

	response := &models.CardValidationResponse{
		Valid: result.Valid,
		Brand: string(card.Brand),
		Last4: card.Last4,
	}
	for _, e := range result.Errors {
		response.Errors = append(response.Errors, string(e.CardCode))
		response.Messages = append(response.Messages, e.MessageKey)
	}

	if result.Valid {
		s.log.LogToken("VALIDATE", card.Last4, fmt.Sprintf("Card valid: %s ending in %s", card.Brand, card.Last4))
	} else {
		s.log.LogToken("VALIDATE", card.Last4, fmt.Sprintf("Card invalid: %v", response.Errors))
	}
	return response
}

// ValidateBrand reports the brand detected for a partial number, used by
// clients that show brand feedback while the user types.
func (s *TokenService) ValidateBrand(partialNumber string) validation.Brand {
	return validation.DetectBrand(validation.NormalizeNumber(partialNumber))
}

func (s *TokenService) GetRecord(ctx context.Context, recordID string) (*models.TokenRecord, error) {
	s.log.LogToken("LOOKUP", recordID, "Retrieving token record")

	record, err := s.store.GetRecord(recordID)
	if err != nil {
		s.log.LogToken("NOT_FOUND", recordID, "Record not found in storage")
		return nil, ErrRecordNotFound
	}

	s.log.LogToken("FOUND", recordID, fmt.Sprintf("Record retrieved with status: %s", record.Status))
	return record, nil
}

// GetUpstreamToken fetches the token from the tokenization API by id.
func (s *TokenService) GetUpstreamToken(ctx context.Context, tokenID string) (*models.Token, error) {
	s.log.LogToken("LOOKUP_UPSTREAM", tokenID, "Retrieving token from upstream")
	return s.client.RequestToken(ctx, tokenID, nil)
}

func (s *TokenService) ListRecords(ctx context.Context, status models.TokenStatus, limit, offset int) ([]*models.TokenRecord, error) {
	return s.store.ListRecords(status, limit, offset)
}

// ProcessUsageEvent handles token usage events consumed from Kafka, marking
// the matching record consumed.
func (s *TokenService) ProcessUsageEvent(event *models.TokenEvent) error {
	s.log.LogKafka("EVENT_RECEIVED", "token-usage", fmt.Sprintf("Processing event type: %s for record: %s", event.Type, event.RecordID))

	if event.Record == nil || event.Record.TokenID == "" {
		s.log.Warn("KAFKA", "Usage event without a token id, skipping")
		return nil
	}

	record, err := s.store.GetRecordByTokenID(event.Record.TokenID)
	if err != nil {
		s.log.Warn("KAFKA", fmt.Sprintf("No record for token %s, skipping", event.Record.TokenID))
		return nil
	}

	if record.Status == models.StatusConsumed {
		s.log.Warn("KAFKA", fmt.Sprintf("Record %s already consumed, skipping", record.RecordID))
		return nil
	}

	record.Status = models.StatusConsumed
	record.UpdatedDate = time.Now()
	if err := s.store.UpdateRecord(record); err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to mark record %s consumed: %v", record.RecordID, err))
		return fmt.Errorf("failed to update record: %w", err)
	}

	s.log.LogDatabase("UPDATE", "token_records", fmt.Sprintf("Record %s marked consumed", record.RecordID))
	s.publishTokenEvent("token.consumed", record)
	return nil
}

func (s *TokenService) publishTokenEvent(eventType string, record *models.TokenRecord) {
	s.log.LogKafka("PUBLISH", "token-events", fmt.Sprintf("Publishing %s event for record %s", eventType, record.RecordID))

	event := &models.TokenEvent{
		Type:      eventType,
		RecordID:  record.RecordID,
		Record:    record,
		Timestamp: time.Now(),
	}

	if err := s.producer.PublishTokenEvent(event); err != nil {
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish %s event for record %s: %v", eventType, record.RecordID, err))
		s.log.LogProcess("FALLBACK", fmt.Sprintf("Record %s processed despite Kafka publish failure", record.RecordID))
	} else {
		s.log.LogKafka("PUBLISHED", "token-events", fmt.Sprintf("Successfully published %s event for record %s", eventType, record.RecordID))
	}
}
