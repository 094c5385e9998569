package sentiment

import (
	"math"
	"testing"

	"github.com/spacesedan/sentirank/internal/models"
	"github.com/stretchr/testify/assert"
)

func score(v float64) *float64 { return &v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		raw            models.RawResponse
		wantCategory   models.SentimentCategory
		wantConfidence float64
	}{
		{
			name: "mixed label",
			raw: models.RawResponse{
				DominantLabel: "MIXED",
				Scores:        &models.SentimentScores{Mixed: score(0.73), Positive: score(0.2)},
			},
			wantCategory:   models.SentimentMixed,
			wantConfidence: 73,
		},
		{
			name:           "missing label and scores",
			raw:            models.RawResponse{},
			wantCategory:   models.SentimentNeutral,
			wantConfidence: 0,
		},
		{
			name: "unknown label defaults to neutral score",
			raw: models.RawResponse{
				DominantLabel: "ECSTATIC",
				Scores:        &models.SentimentScores{Neutral: score(0.41), Positive: score(0.59)},
			},
			wantCategory:   models.SentimentNeutral,
			wantConfidence: 41,
		},
		{
			name: "score missing for dominant category",
			raw: models.RawResponse{
				DominantLabel: "negative",
				Scores:        &models.SentimentScores{Positive: score(0.9)},
			},
			wantCategory:   models.SentimentNegative,
			wantConfidence: 0,
		},
		{
			name: "rounds to two decimals",
			raw: models.RawResponse{
				DominantLabel: "Positive",
				Scores:        &models.SentimentScores{Positive: score(0.987654)},
			},
			wantCategory:   models.SentimentPositive,
			wantConfidence: 98.77,
		},
		{
			name: "float32 sourced score",
			raw: models.RawResponse{
				DominantLabel: "POSITIVE",
				Scores:        &models.SentimentScores{Positive: score(float64(float32(0.73)))},
			},
			wantCategory:   models.SentimentPositive,
			wantConfidence: 73,
		},
		{
			name: "non-finite score",
			raw: models.RawResponse{
				DominantLabel: "NEGATIVE",
				Scores:        &models.SentimentScores{Negative: score(math.NaN())},
			},
			wantCategory:   models.SentimentNegative,
			wantConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize("some text", tt.raw)

			assert.Equal(t, "some text", got.Text)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestToPercentage(t *testing.T) {
	assert.Equal(t, 0.0, ToPercentage(-0.5))
	assert.Equal(t, 0.0, ToPercentage(math.Inf(1)))
	assert.Equal(t, 100.0, ToPercentage(1))
	assert.Equal(t, 12.35, ToPercentage(0.12345))
}
