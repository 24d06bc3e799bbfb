package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/IBM/sarama"

	"card-tokenizer/internal/models"
	"card-tokenizer/internal/storage"
)

// UsageConsumer listens for token usage events published by downstream
// charge services, so consumed tokens can be marked in the local records.
type UsageConsumer struct {
	consumer sarama.ConsumerGroup
	topics   []string
	store    storage.Store
}

func NewUsageConsumer(brokers []string, groupID string, store storage.Store) (*UsageConsumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	topics := []string{"token-usage"}

	return &UsageConsumer{
		consumer: consumer,
		topics:   topics,
		store:    store,
	}, nil
}

func (c *UsageConsumer) ConsumeUsage(ctx context.Context, handler func(*models.TokenEvent) error) error {
	consumerHandler := &UsageConsumerHandler{Handler: handler, Store: c.store}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := c.consumer.Consume(ctx, c.topics, consumerHandler); err != nil {
				log.Printf("Error consuming messages: %v", err)
				return err
			}
		}
	}
}

func (c *UsageConsumer) Close() error {
	return c.consumer.Close()
}

// UsageConsumerHandler is exported for testing purposes
type UsageConsumerHandler struct {
	Handler func(*models.TokenEvent) error
	Store   storage.Store
}

func (h *UsageConsumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *UsageConsumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *UsageConsumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event models.TokenEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			continue
		}

		if err := h.Handler(&event); err != nil {
			log.Printf("Failed to handle token event: %v", err)
			continue
		}

		session.MarkMessage(message, "")
	}

	return nil
}
