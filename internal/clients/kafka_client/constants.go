package kafka_client

import "time"

const (
	KAFKA_TOPIC_SENTIMENT_RECORDS = "sentiment-records" // one message per normalized record
)

const (
	MAX_RETRIES      = 5
	RETRY_DELAY      = 2 * time.Second
	DELIVERY_WAIT    = 10 * time.Second
	FLUSH_TIMEOUT_MS = 5000
)
