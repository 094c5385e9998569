package models

// RawResponse mirrors the shape of an AWS Comprehend DetectSentiment result.
// Every backend decodes into it so a single normalizer serves them all.
type RawResponse struct {
	DominantLabel string           `json:"Sentiment,omitempty"`
	Scores        *SentimentScores `json:"SentimentScore,omitempty"`
}

type SentimentScores struct {
	Positive *float64 `json:"Positive,omitempty"`
	Negative *float64 `json:"Negative,omitempty"`
	Neutral  *float64 `json:"Neutral,omitempty"`
	Mixed    *float64 `json:"Mixed,omitempty"`
}

// ScoreFor returns the score reported for category, if any.
func (s *SentimentScores) ScoreFor(category SentimentCategory) (float64, bool) {
	if s == nil {
		return 0, false
	}

	var score *float64
	switch category {
	case SentimentPositive:
		score = s.Positive
	case SentimentNegative:
		score = s.Negative
	case SentimentNeutral:
		score = s.Neutral
	case SentimentMixed:
		score = s.Mixed
	}
	if score == nil {
		return 0, false
	}
	return *score, true
}
