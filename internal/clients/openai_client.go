package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spacesedan/sentirank/internal/models"
)

const (
	openAIRequestTimeout = 60 * time.Second
	DEFAULT_OPENAI_MODEL = openai.ChatModelGPT4oMini
)

const openAIPrompt = `Classify the sentiment of the user's text.
Language of the text: %s.

### **STRICT OUTPUT FORMAT**
You MUST return only **valid JSON**, formatted exactly as follows:
{
  "Sentiment": "POSITIVE" | "NEGATIVE" | "NEUTRAL" | "MIXED",
  "SentimentScore": {"Positive": 0.0, "Negative": 0.0, "Neutral": 0.0, "Mixed": 0.0}
}

### **REQUIREMENTS**
- Scores are probabilities between 0 and 1 that sum to 1.
- **No Markdown formatting** (no triple backticks, no explanations).
- **No extra text before or after the JSON output**.
`

var ErrEmptyCompletion = errors.New("[OpenAIClient] empty completion")

type chatCompletionFunc func(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)

// OpenAIClassifier asks a chat model for a Comprehend-shaped verdict.
type OpenAIClassifier struct {
	complete     chatCompletionFunc
	model        openai.ChatModel
	languageCode string
}

func NewOpenAIClassifier(apiKey string, model string, languageCode string) *OpenAIClassifier {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(openAIRequestTimeout),
	)
	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", openAIRequestTimeout))

	return newOpenAIClassifier(client.Chat.Completions.New, model, languageCode)
}

func newOpenAIClassifier(complete chatCompletionFunc, model string, languageCode string) *OpenAIClassifier {
	if model == "" {
		model = string(DEFAULT_OPENAI_MODEL)
	}
	return &OpenAIClassifier{
		complete:     complete,
		model:        openai.ChatModel(model),
		languageCode: languageCode,
	}
}

func (o *OpenAIClassifier) Classify(ctx context.Context, text string) (models.RawResponse, error) {
	start := time.Now()

	chatCompletion, err := o.complete(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(openAIPrompt, o.languageCode)),
			openai.UserMessage(text),
		}),
		Model:       openai.F(o.model),
		Temperature: openai.Float(0),
	})
	if err != nil {
		slog.Error("[OpenAIClient] Chat completion failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return models.RawResponse{}, fmt.Errorf("[OpenAIClient] chat completion: %w", err)
	}

	if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
		slog.Warn("[OpenAIClient] OpenAI returned empty response")
		return models.RawResponse{}, ErrEmptyCompletion
	}

	content := cleanOpenAIResponse(chatCompletion.Choices[0].Message.Content)

	var raw models.RawResponse
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		slog.Error("[OpenAIClient] Failed to parse JSON into struct",
			slog.String("error", err.Error()),
			getPreview([]byte(content)))
		return models.RawResponse{}, fmt.Errorf("[OpenAIClient] parse completion: %w", err)
	}

	slog.Debug("[OpenAIClient] Chat completion successful",
		slog.Duration("elapsed", time.Since(start)),
		slog.String("sentiment", raw.DominantLabel))
	return raw, nil
}

// cleanOpenAIResponse strips markdown code fences the model adds despite the
// prompt.
func cleanOpenAIResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
