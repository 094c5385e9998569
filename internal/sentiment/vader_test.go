package sentiment

import (
	"context"
	"testing"

	"github.com/spacesedan/sentirank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVADERClassifier_Classify(t *testing.T) {
	classifier := NewVADERClassifier()

	tests := []struct {
		text string
		want models.SentimentCategory
	}{
		{"I love this wonderful product!", models.SentimentPositive},
		{"This is terrible, I hate it and it is awful.", models.SentimentNegative},
		{"The package arrived on Tuesday.", models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			raw, err := classifier.Classify(context.Background(), tt.text)
			require.NoError(t, err)
			require.NotNil(t, raw.Scores)

			record := Normalize(tt.text, raw)
			assert.Equal(t, tt.want, record.Category)
			assert.GreaterOrEqual(t, record.Confidence, 0.0)
			assert.LessOrEqual(t, record.Confidence, 100.0)
		})
	}
}

func TestVADERClassifier_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewVADERClassifier().Classify(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("**Great** [docs](https://example.com/docs) at https://example.com")
	assert.Equal(t, "Great docs at", got)
}
