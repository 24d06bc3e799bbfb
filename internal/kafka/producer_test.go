package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-tokenizer/internal/logger"
	"card-tokenizer/internal/models"
)

func TestMockModeProducer(t *testing.T) {
	log := logger.NewLogger()

	producer, err := NewProducer(nil, true, log)
	require.NoError(t, err)
	defer producer.Close()

	event := &models.TokenEvent{
		Type:      "token.created",
		RecordID:  "rec_1",
		Record:    &models.TokenRecord{RecordID: "rec_1", TokenID: "tok_1", Status: models.StatusCreated},
		Timestamp: time.Now(),
	}

	// Mock mode never touches a broker, so publishing always succeeds.
	assert.NoError(t, producer.PublishTokenEvent(event))
	assert.NoError(t, producer.Close())
}

func TestGetTopicForEvent(t *testing.T) {
	producer := &Producer{mockMode: true, log: logger.NewLogger()}

	assert.Equal(t, "token-created", producer.getTopicForEvent("token.created"))
	assert.Equal(t, "token-failed", producer.getTopicForEvent("token.failed"))
	assert.Equal(t, "token-consumed", producer.getTopicForEvent("token.consumed"))
	assert.Equal(t, "token-events", producer.getTopicForEvent("token.something_else"))
}
