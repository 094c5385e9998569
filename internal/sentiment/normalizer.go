package sentiment

import (
	"math"

	"github.com/spacesedan/sentirank/internal/models"
)

// Normalize converts a classifier response into a canonical record. Malformed
// input degrades to a neutral record with zero confidence; it never fails.
func Normalize(text string, raw models.RawResponse) models.SentimentRecord {
	category, ok := models.ParseSentimentCategory(raw.DominantLabel)
	if !ok {
		category = models.SentimentNeutral
	}

	score, _ := raw.Scores.ScoreFor(category)

	return models.SentimentRecord{
		Text:       text,
		Category:   category,
		Confidence: ToPercentage(score),
	}
}

// ToPercentage maps a 0-1 fraction onto the 0-100 display scale, rounded to
// two decimals. Non-finite and negative scores become 0.
func ToPercentage(fraction float64) float64 {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) || fraction <= 0 {
		return 0
	}
	return math.Round(fraction*100*100) / 100
}
