package clients

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/spacesedan/sentirank/internal/models"
)

// ComprehendAPI is the subset of the Comprehend client used for classification.
type ComprehendAPI interface {
	DetectSentiment(ctx context.Context, params *comprehend.DetectSentimentInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error)
}

type ComprehendClassifier struct {
	api          ComprehendAPI
	languageCode string
}

func NewComprehendClassifier(api ComprehendAPI, languageCode string) *ComprehendClassifier {
	return &ComprehendClassifier{
		api:          api,
		languageCode: languageCode,
	}
}

func (c *ComprehendClassifier) Classify(ctx context.Context, text string) (models.RawResponse, error) {
	start := time.Now()

	out, err := c.api.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: types.LanguageCode(c.languageCode),
	})
	if err != nil {
		slog.Error("[ComprehendClient] DetectSentiment request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return models.RawResponse{}, fmt.Errorf("[ComprehendClient] detect sentiment: %w", err)
	}

	slog.Debug("[ComprehendClient] DetectSentiment request successful",
		slog.Duration("elapsed", time.Since(start)),
		slog.String("sentiment", string(out.Sentiment)))

	return comprehendToRaw(out), nil
}

func comprehendToRaw(out *comprehend.DetectSentimentOutput) models.RawResponse {
	raw := models.RawResponse{DominantLabel: string(out.Sentiment)}
	if s := out.SentimentScore; s != nil {
		raw.Scores = &models.SentimentScores{
			Positive: widen(s.Positive),
			Negative: widen(s.Negative),
			Neutral:  widen(s.Neutral),
			Mixed:    widen(s.Mixed),
		}
	}
	return raw
}

func widen(v *float32) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
