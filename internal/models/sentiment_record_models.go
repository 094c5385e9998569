package models

import (
	"strings"
	"time"
)

type SentimentCategory string

const (
	SentimentPositive SentimentCategory = "positive"
	SentimentNeutral  SentimentCategory = "neutral"
	SentimentMixed    SentimentCategory = "mixed"
	SentimentNegative SentimentCategory = "negative"
)

// SentimentCategories lists the known categories in their default display priority.
var SentimentCategories = []SentimentCategory{
	SentimentPositive,
	SentimentNeutral,
	SentimentMixed,
	SentimentNegative,
}

// ParseSentimentCategory resolves a label case-insensitively. The boolean is
// false for empty or unknown labels.
func ParseSentimentCategory(label string) (SentimentCategory, bool) {
	category := SentimentCategory(strings.ToLower(strings.TrimSpace(label)))
	switch category {
	case SentimentPositive, SentimentNeutral, SentimentMixed, SentimentNegative:
		return category, true
	default:
		return "", false
	}
}

// SentimentRecord is the canonical classification result. Confidence is a
// percentage in [0, 100] rounded to two decimals.
type SentimentRecord struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Category   SentimentCategory `json:"category"`
	Confidence float64           `json:"confidence"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
}
