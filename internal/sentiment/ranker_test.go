package sentiment

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/spacesedan/sentirank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(text string, category models.SentimentCategory, confidence float64) *models.SentimentRecord {
	return &models.SentimentRecord{Text: text, Category: category, Confidence: confidence}
}

func texts(records []*models.SentimentRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		if r == nil {
			out[i] = "<nil>"
			continue
		}
		out[i] = r.Text
	}
	return out
}

func TestCompare_CategoryPriority(t *testing.T) {
	priority := DefaultPriority()
	for i := range priority {
		for j := i + 1; j < len(priority); j++ {
			higher := record("x", priority[i], 1)
			lower := record("x", priority[j], 99)
			assert.Negative(t, Compare(higher, lower), "%s before %s", priority[i], priority[j])
			assert.Positive(t, Compare(lower, higher), "%s after %s", priority[j], priority[i])
		}
	}
}

func TestCompare_ConfidenceDescending(t *testing.T) {
	for _, category := range models.SentimentCategories {
		assert.Negative(t, Compare(record("a", category, 90), record("a", category, 80)))
		assert.Positive(t, Compare(record("a", category, 10), record("a", category, 11)))
	}
}

func TestCompare_Identity(t *testing.T) {
	r := record("A", models.SentimentPositive, 95)
	assert.Zero(t, Compare(r, r))
}

func TestCompare_Nil(t *testing.T) {
	r := record("A", models.SentimentNegative, 0)

	assert.Negative(t, Compare(r, nil))
	assert.Positive(t, Compare(nil, r))
	assert.Zero(t, Compare(nil, nil))
}

func TestCompare_CaseInsensitiveCategory(t *testing.T) {
	upper := record("same", "POSITIVE", 50)
	lower := record("same", models.SentimentPositive, 50)

	assert.Zero(t, Compare(upper, lower))
	assert.Negative(t, Compare(record("same", "NEUTRAL", 50), record("same", "negative", 50)))
}

func TestCompare_EqualScoresFallBackToText(t *testing.T) {
	a := record("A", models.SentimentNeutral, 70)
	b := record("B", models.SentimentNeutral, 70)

	assert.Negative(t, Compare(a, b))
	assert.Positive(t, Compare(b, a))
	assert.Zero(t, Compare(record("", models.SentimentNeutral, 0.7), record("", models.SentimentNeutral, 0.7)))
}

func TestCompare_UnknownCategoryIsLowestPriority(t *testing.T) {
	unknown := record("A", "furious", 100)
	negative := record("B", models.SentimentNegative, 1)

	assert.Positive(t, Compare(unknown, negative))
	assert.Negative(t, Compare(negative, unknown))
	assert.Negative(t, Compare(unknown, nil))
	assert.Zero(t, Compare(unknown, record("A", "other", 100)))
}

func TestSort_MixedCategories(t *testing.T) {
	records := []*models.SentimentRecord{
		record("A", models.SentimentNegative, 0.9),
		record("B", models.SentimentPositive, 0.8),
		record("C", models.SentimentPositive, 0.9),
		record("D", models.SentimentNeutral, 0.7),
	}

	defaultRanker.Sort(records)

	assert.Equal(t, []string{"C", "B", "D", "A"}, texts(records))
}

func TestSort_NilSinksAndTiesUseText(t *testing.T) {
	records := []*models.SentimentRecord{
		record("C", models.SentimentPositive, 95),
		record("B", models.SentimentNeutral, 80),
		record("A", models.SentimentPositive, 95),
		nil,
	}

	defaultRanker.Sort(records)

	require.Len(t, records, 4)
	assert.Nil(t, records[3])
	assert.Equal(t, []string{"A", "C", "B", "<nil>"}, texts(records))
}

func TestSort_InvariantToInputOrder(t *testing.T) {
	base := []*models.SentimentRecord{
		record("alpha", models.SentimentMixed, 55.5),
		record("beta", models.SentimentPositive, 99),
		record("gamma", models.SentimentPositive, 99),
		record("delta", models.SentimentNegative, 12),
		record("epsilon", models.SentimentNeutral, 0),
		record("zeta", "unknown", 80),
		nil,
		nil,
		record("eta", models.SentimentMixed, 55.5),
	}

	want := slices.Clone(base)
	defaultRanker.Sort(want)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		shuffled := slices.Clone(base)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		defaultRanker.Sort(shuffled)
		assert.Equal(t, texts(want), texts(shuffled))
	}

	again := slices.Clone(want)
	defaultRanker.Sort(again)
	assert.Equal(t, texts(want), texts(again))
}

func TestRanker_CustomPriority(t *testing.T) {
	priority, err := ParsePriority("positive,mixed,neutral,negative")
	require.NoError(t, err)
	ranker := NewRanker(priority)

	mixed := record("m", models.SentimentMixed, 10)
	neutral := record("n", models.SentimentNeutral, 90)

	assert.Negative(t, ranker.Compare(mixed, neutral))
	assert.Positive(t, Compare(mixed, neutral))
	assert.Equal(t, 1, ranker.Rank(models.SentimentMixed))
	assert.Equal(t, 4, ranker.Rank("bogus"))
}

func TestNewRanker_UpperCasePriority(t *testing.T) {
	ranker := NewRanker(Priority{"NEGATIVE", "MIXED", "NEUTRAL", "POSITIVE"})

	assert.Equal(t, 0, ranker.Rank(models.SentimentNegative))
	assert.Equal(t, 3, ranker.Rank(models.SentimentPositive))
	assert.Equal(t, 4, ranker.Rank("bogus"))

	negative := record("n", models.SentimentNegative, 1)
	positive := record("p", models.SentimentPositive, 99)
	assert.Negative(t, ranker.Compare(negative, positive))
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Priority
		wantErr bool
	}{
		{
			name:  "default order",
			value: "positive,neutral,mixed,negative",
			want:  DefaultPriority(),
		},
		{
			name:  "case and spacing",
			value: " NEGATIVE , Mixed,neutral ,positive",
			want: Priority{
				models.SentimentNegative,
				models.SentimentMixed,
				models.SentimentNeutral,
				models.SentimentPositive,
			},
		},
		{name: "unknown category", value: "positive,neutral,mixed,angry", wantErr: true},
		{name: "duplicate category", value: "positive,positive,mixed,negative", wantErr: true},
		{name: "missing category", value: "positive,neutral,mixed", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePriority(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "positive,neutral,mixed,negative", DefaultPriority().String())
}
