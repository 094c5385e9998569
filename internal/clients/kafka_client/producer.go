package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/sentirank/internal/models"
)

// RecordPublisher announces new sentiment records on a Kafka topic.
type RecordPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewRecordPublisher(cfg KafkaConfig) (*RecordPublisher, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker),
		slog.String("topic", cfg.Topic))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   cfg.Broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"enable.idempotence":  true,
		"acks":                "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &RecordPublisher{producer: p, topic: cfg.Topic}, nil
}

// Publish sends record keyed by its ID and waits for the delivery report.
func (rp *RecordPublisher) Publish(ctx context.Context, record models.SentimentRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal record: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &rp.topic, Partition: kafka.PartitionAny},
		Key:            []byte(record.ID),
		Value:          jsonData,
	}

	deliveryChan := make(chan kafka.Event, 1)
	for i := 0; i < 3; i++ {
		err = rp.producer.Produce(msg, deliveryChan)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce record: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, DELIVERY_WAIT)
	defer cancel()

	select {
	case <-waitCtx.Done():
		return fmt.Errorf("[KafkaClient] delivery report not received: %w", waitCtx.Err())
	case e := <-deliveryChan:
		delivered, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("[KafkaClient] unexpected delivery event: %v", e)
		}
		if delivered.TopicPartition.Error != nil {
			return fmt.Errorf("[KafkaClient] delivery failed: %w", delivered.TopicPartition.Error)
		}
	}

	slog.Info("[KafkaClient] Published sentiment record to Kafka",
		slog.String("topic", rp.topic),
		slog.String("record_id", record.ID))
	return nil
}

func (rp *RecordPublisher) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if rp.producer == nil {
		return
	}

	if remaining := rp.producer.Flush(FLUSH_TIMEOUT_MS); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	rp.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}
