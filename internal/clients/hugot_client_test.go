package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsToRaw(t *testing.T) {
	raw := labelsToRaw([]labelScore{
		{label: "negative", score: 0.1},
		{label: "Positive", score: 0.7},
		{label: "LABEL_9", score: 0.95},
		{label: "neutral", score: 0.2},
	})

	assert.Equal(t, "POSITIVE", raw.DominantLabel)
	require.NotNil(t, raw.Scores)
	require.NotNil(t, raw.Scores.Positive)
	assert.Equal(t, 0.7, *raw.Scores.Positive)
	assert.Equal(t, 0.1, *raw.Scores.Negative)
	assert.Equal(t, 0.2, *raw.Scores.Neutral)
	assert.Nil(t, raw.Scores.Mixed)
}

func TestLabelsToRaw_NoRecognizedLabels(t *testing.T) {
	raw := labelsToRaw([]labelScore{{label: "LABEL_0", score: 0.99}})

	assert.Empty(t, raw.DominantLabel)
	assert.Nil(t, raw.Scores)
}
