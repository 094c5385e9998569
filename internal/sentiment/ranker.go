package sentiment

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spacesedan/sentirank/internal/models"
)

var ErrInvalidPriority = errors.New("invalid sentiment priority")

// Priority orders categories for display; a category's rank is its index.
type Priority []models.SentimentCategory

// DefaultPriority ranks mixed below neutral. Override with SENTIMENT_PRIORITY.
func DefaultPriority() Priority {
	return slices.Clone(Priority(models.SentimentCategories))
}

// ParsePriority reads a comma separated category list such as
// "positive,mixed,neutral,negative". Each known category must appear once.
func ParsePriority(value string) (Priority, error) {
	parts := strings.Split(value, ",")
	priority := make(Priority, 0, len(parts))
	seen := make(map[models.SentimentCategory]bool, len(parts))

	for _, part := range parts {
		category, ok := models.ParseSentimentCategory(part)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidPriority, strings.TrimSpace(part))
		}
		if seen[category] {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidPriority, category)
		}
		seen[category] = true
		priority = append(priority, category)
	}

	if len(priority) != len(models.SentimentCategories) {
		return nil, fmt.Errorf("%w: expected %d categories, got %d",
			ErrInvalidPriority, len(models.SentimentCategories), len(priority))
	}

	return priority, nil
}

func (p Priority) String() string {
	names := make([]string, len(p))
	for i, category := range p {
		names[i] = string(category)
	}
	return strings.Join(names, ",")
}

// Ranker orders sentiment records by category priority, then descending
// confidence, then text. It holds no state besides the rank table.
type Ranker struct {
	ranks   map[models.SentimentCategory]int
	unknown int
}

func NewRanker(priority Priority) *Ranker {
	ranks := make(map[models.SentimentCategory]int, len(priority))
	for i, category := range priority {
		key := models.SentimentCategory(strings.ToLower(string(category)))
		if _, exists := ranks[key]; !exists {
			ranks[key] = i
		}
	}

	return &Ranker{
		ranks:   ranks,
		unknown: len(priority),
	}
}

var defaultRanker = NewRanker(DefaultPriority())

// Compare orders records with the default priority.
func Compare(a, b *models.SentimentRecord) int {
	return defaultRanker.Compare(a, b)
}

// Rank returns the position of category. Unknown categories share the lowest
// priority bucket.
func (r *Ranker) Rank(category models.SentimentCategory) int {
	rank, ok := r.ranks[models.SentimentCategory(strings.ToLower(string(category)))]
	if !ok {
		return r.unknown
	}
	return rank
}

// Compare is a total order usable with slices.SortFunc. nil records sort last.
func (r *Ranker) Compare(a, b *models.SentimentRecord) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a == b:
		return 0
	}

	if c := cmp.Compare(r.Rank(a.Category), r.Rank(b.Category)); c != 0 {
		return c
	}

	if c := cmp.Compare(b.Confidence, a.Confidence); c != 0 {
		return c
	}

	return strings.Compare(a.Text, b.Text)
}

// Sort orders records in place.
func (r *Ranker) Sort(records []*models.SentimentRecord) {
	slices.SortFunc(records, r.Compare)
}
