package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/sentirank/internal/models"
	"golang.org/x/oauth2"
)

const HF_SENTIMENT_ANALYSIS_ENDPOINT = "https://spacesedan-sentiment-analyzer.hf.space/analyze"

type HuggingFaceOptions struct {
	Endpoint     string
	LanguageCode string
	// Token is sent as a bearer token when set.
	Token      string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// HuggingFaceClassifier posts text to a hosted sentiment endpoint that answers
// with a Comprehend-shaped JSON body.
type HuggingFaceClassifier struct {
	Client       *http.Client
	endpoint     string
	languageCode string
	maxRetries   int
	backoff      time.Duration
}

func NewHuggingFaceClassifier(opts HuggingFaceOptions) *HuggingFaceClassifier {
	if opts.Endpoint == "" {
		opts.Endpoint = HF_SENTIMENT_ANALYSIS_ENDPOINT
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = MAX_RETRIES
	}
	if opts.Backoff <= 0 {
		opts.Backoff = INITIAL_BACKOFF
	}

	client := &http.Client{Timeout: opts.Timeout}
	if opts.Token != "" {
		client = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.Token,
			TokenType:   "Bearer",
		}))
		client.Timeout = opts.Timeout
	}

	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.Duration("timeout", opts.Timeout),
		slog.String("endpoint", opts.Endpoint),
		slog.Bool("authenticated", opts.Token != ""))

	return &HuggingFaceClassifier{
		Client:       client,
		endpoint:     opts.Endpoint,
		languageCode: opts.LanguageCode,
		maxRetries:   opts.MaxRetries,
		backoff:      opts.Backoff,
	}
}

func (h *HuggingFaceClassifier) Classify(ctx context.Context, text string) (models.RawResponse, error) {
	var result models.RawResponse
	slog.Debug("[HuggingFaceClient] Requesting sentiment analysis from sentiment analysis service")
	start := time.Now()

	err := h.postJSON(ctx, models.SentimentAnalysisRequest{
		Inputs:       text,
		LanguageCode: h.languageCode,
	}, &result)
	if err != nil {
		slog.Error("[HuggingFaceClient] Sentiment Analysis request failed",
			slog.Duration("elapsed", time.Since(start)))
		return models.RawResponse{}, err
	}

	slog.Debug("[HuggingFaceClient] Sentiment Analysis request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// DoWithRetry retries transport errors and 5xx responses with exponential
// backoff. The request is rebuilt each attempt so the body can be resent.
func (h *HuggingFaceClassifier) DoWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := h.backoff

	for attempt := 0; attempt < h.maxRetries; attempt++ {
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)

		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		if resp != nil {
			resp.Body.Close()
			if err == nil {
				err = fmt.Errorf("status code %d", resp.StatusCode)
			}
			resp = nil
		}

		if attempt == h.maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	return nil, err
}

func (h *HuggingFaceClassifier) postJSON(ctx context.Context, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to marshal input",
			slog.String("endpoint", h.endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	resp, err := h.DoWithRetry(ctx, body)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("endpoint", h.endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to read response",
			slog.String("endpoint", h.endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		slog.Error("[HuggingFaceClient] Request rejected",
			slog.String("endpoint", h.endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return fmt.Errorf("request rejected: status code %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", h.endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))

		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
