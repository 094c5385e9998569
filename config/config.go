package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spacesedan/sentirank/internal/sentiment"
)

const (
	BackendComprehend  = "comprehend"
	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"
	BackendHugot       = "hugot"
	BackendVADER       = "vader"
)

var Backends = []string{BackendComprehend, BackendHuggingFace, BackendOpenAI, BackendHugot, BackendVADER}

type Config struct {
	Env      string
	LogLevel string

	Backend         string
	LanguageCode    string
	ClassifyTimeout time.Duration
	Priority        sentiment.Priority
	RecordFailures  bool

	AWSRegion   string
	AWSEndpoint string

	HuggingFaceEndpoint string
	HuggingFaceToken    string

	OpenAIAPIKey string
	OpenAIModel  string

	HugotModel    string
	HugotModelDir string

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
	CacheTTL       time.Duration

	KafkaBroker  string
	KafkaTopic   string
	KafkaGroupID string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}

// Load reads the configuration from the environment. Call LoadEnv first to
// pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                 getEnv("APP_ENV", "dev"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Backend:             strings.ToLower(getEnv("CLASSIFIER_BACKEND", BackendComprehend)),
		LanguageCode:        getEnv("LANGUAGE_CODE", "en"),
		RecordFailures:      getEnv("RECORD_FAILURES", "false") == "true",
		AWSRegion:           getEnv("AWS_REGION", "us-west-2"),
		AWSEndpoint:         getEnv("AWS_ENDPOINT", ""),
		HuggingFaceEndpoint: getEnv("HF_SENTIMENT_ENDPOINT", ""),
		HuggingFaceToken:    getEnv("HF_API_TOKEN", ""),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		HugotModel:          getEnv("HUGOT_MODEL", ""),
		HugotModelDir:       getEnv("HUGOT_MODEL_DIR", "./models"),
		ValkeyAddress:       getEnv("VALKEY_INIT_ADDRESS", ""),
		ValkeyPassword:      getEnv("VALKEY_PASSWORD", ""),
		ValkeyTLS:           getEnv("VALKEY_TLS", "false") == "true",
		KafkaBroker:         getEnv("KAFKA_BROKER", ""),
		KafkaTopic:          getEnv("KAFKA_RECORDS_TOPIC", "sentiment-records"),
		KafkaGroupID:        getEnv("KAFKA_CONSUMER_GROUP_ID", "sentirank-consumer-group"),
	}

	var err error
	if cfg.ClassifyTimeout, err = getDuration("CLASSIFY_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL < time.Second {
		return nil, errors.New("CACHE_TTL must be at least 1s")
	}

	cfg.Priority = sentiment.DefaultPriority()
	if value := getEnv("SENTIMENT_PRIORITY", ""); value != "" {
		if cfg.Priority, err = sentiment.ParsePriority(value); err != nil {
			return nil, fmt.Errorf("SENTIMENT_PRIORITY: %w", err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	known := false
	for _, backend := range Backends {
		if cfg.Backend == backend {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("CLASSIFIER_BACKEND must be one of %s, got %q", strings.Join(Backends, ", "), cfg.Backend)
	}

	switch cfg.Backend {
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai backend")
		}
	case BackendHugot:
		if cfg.HugotModel == "" {
			return errors.New("HUGOT_MODEL is required for the hugot backend")
		}
	}

	if cfg.LanguageCode == "" {
		return errors.New("LANGUAGE_CODE is required")
	}

	return nil
}
