package sentiment

import (
	"context"

	"github.com/spacesedan/sentirank/internal/models"
)

// Classifier is the external sentiment service. Implementations own their
// transport, retries and credentials.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.RawResponse, error)
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func(ctx context.Context, text string) (models.RawResponse, error)

func (f ClassifierFunc) Classify(ctx context.Context, text string) (models.RawResponse, error) {
	return f(ctx, text)
}
