package monitoring

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/sentirank/internal/models"
	"github.com/spacesedan/sentirank/internal/sentiment"
)

const (
	HEALTHCHECK_TIMER = 15 * time.Second
	HEALTHCHECK_TEXT  = "I love this wonderful product!"
)

// CheckConnection sends a known-positive sentence through classifier and
// returns the category it resolves to.
func CheckConnection(ctx context.Context, classifier sentiment.Classifier) (models.SentimentCategory, error) {
	raw, err := classifier.Classify(ctx, HEALTHCHECK_TEXT)
	if err != nil {
		slog.Error("[HealthCheck] Classifier connection failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("[HealthCheck] classifier connection failed: %w", err)
	}

	record := sentiment.Normalize(HEALTHCHECK_TEXT, raw)
	slog.Info("[HealthCheck] Classifier connection successful",
		slog.String("sentiment", string(record.Category)),
		slog.Float64("confidence", record.Confidence))
	return record.Category, nil
}

// MonitorClassifierHealth re-runs CheckConnection every interval until ctx
// ends and stores the outcome in healthy.
func MonitorClassifierHealth(ctx context.Context, classifier sentiment.Classifier, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = HEALTHCHECK_TIMER
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, interval)
			_, err := CheckConnection(checkCtx, classifier)
			cancel()

			isHealthy := err == nil
			if healthy.Swap(isHealthy) != isHealthy && !isHealthy {
				slog.Warn("[HealthCheck] Classifier is unhealthy")
			}
		}
	}
}
