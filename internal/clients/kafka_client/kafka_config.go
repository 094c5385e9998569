package kafka_client

const (
	DEFAULT_KAFKA_BROKER   = "localhost:29092"
	DEFAULT_KAFKA_GROUP_ID = "sentirank-consumer-group"
)

type KafkaConfig struct {
	Broker  string
	GroupID string
	Topic   string
}

// NewKafkaConfig fills blank fields with the local development defaults.
func NewKafkaConfig(broker, groupID, topic string) KafkaConfig {
	if broker == "" {
		broker = DEFAULT_KAFKA_BROKER
	}
	if groupID == "" {
		groupID = DEFAULT_KAFKA_GROUP_ID
	}
	if topic == "" {
		topic = KAFKA_TOPIC_SENTIMENT_RECORDS
	}
	return KafkaConfig{Broker: broker, GroupID: groupID, Topic: topic}
}
