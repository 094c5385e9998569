package sentiment

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/sentirank/internal/models"
)

const (
	vaderPositiveThreshold = 0.20
	vaderNegativeThreshold = -0.20
	// both polarities at or above this share of the text read as mixed
	vaderMixedThreshold = 0.25
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and keeps only the visible words,
// without links or smart punctuation that the lexicon would not match.
func ConvertMarkdownToText(input string) string {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{})
	output := blackfriday.Run([]byte(RemoveLinks(input)),
		blackfriday.WithNoExtensions(),
		blackfriday.WithRenderer(renderer))

	plainText := html.UnescapeString(tagPattern.ReplaceAllString(string(output), " "))
	return strings.Join(strings.Fields(plainText), " ")
}

// VADERClassifier scores text locally with the VADER lexicon. It needs no
// network and is the fallback backend for offline use.
type VADERClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERClassifier() *VADERClassifier {
	return &VADERClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADERClassifier) Classify(ctx context.Context, text string) (models.RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return models.RawResponse{}, err
	}

	polarity := v.analyzer.PolarityScores(ConvertMarkdownToText(text))

	positive := polarity.Positive
	negative := polarity.Negative
	neutral := polarity.Neutral
	mixed := 0.0

	var label string
	switch {
	case positive >= vaderMixedThreshold && negative >= vaderMixedThreshold:
		label = "MIXED"
		mixed = positive + negative
	case polarity.Compound >= vaderPositiveThreshold:
		label = "POSITIVE"
	case polarity.Compound <= vaderNegativeThreshold:
		label = "NEGATIVE"
	default:
		label = "NEUTRAL"
	}

	return models.RawResponse{
		DominantLabel: label,
		Scores: &models.SentimentScores{
			Positive: &positive,
			Negative: &negative,
			Neutral:  &neutral,
			Mixed:    &mixed,
		},
	}, nil
}
