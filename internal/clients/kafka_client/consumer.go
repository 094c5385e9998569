package kafka_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/sentirank/internal/models"
)

// RecordConsumer reads records announced by RecordPublisher.
type RecordConsumer struct {
	consumer *kafka.Consumer
	topic    string
}

func NewRecordConsumer(cfg KafkaConfig) (*RecordConsumer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Consumer...",
		slog.String("broker", cfg.Broker),
		slog.String("group_id", cfg.GroupID),
		slog.String("topic", cfg.Topic))

	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"group.id":           cfg.GroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create consumer: %w", err)
	}

	if err := c.SubscribeTopics([]string{cfg.Topic}, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("[KafkaClient] Failed to subscribe to topics: %w", err)
	}

	slog.Info("[KafkaClient] Kafka Consumer initialized successfully")
	return &RecordConsumer{consumer: c, topic: cfg.Topic}, nil
}

// Follow hands every decoded record to handle and commits its offset. It
// returns nil when ctx ends.
func (rc *RecordConsumer) Follow(ctx context.Context, handle func(models.SentimentRecord)) error {
	iterator := NewKafkaMessageIterator(ctx, rc.consumer)
	committer := NewCommitHandler(ctx, rc.consumer)

	slog.Info("[RecordConsumer] Listening for records...", slog.String("topic", rc.topic))

	for {
		msg, err := iterator.Next()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				slog.Warn("[RecordConsumer] Stopping consumer...")
				return nil
			}
			return err
		}

		var record models.SentimentRecord
		if err := json.Unmarshal(msg.Value, &record); err != nil {
			slog.Warn("[RecordConsumer] Skipping undecodable record",
				slog.String("error", err.Error()))
		} else {
			handle(record)
		}

		if err := committer.Commit(msg); err != nil {
			slog.Warn("[RecordConsumer] Failed to commit offset",
				slog.String("error", err.Error()))
		}
	}
}

func (rc *RecordConsumer) Close() error {
	return rc.consumer.Close()
}
