package clients

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/sentirank/internal/models"
)

const DEFAULT_HUGOT_MODEL_DIR = "./models"

// HugotClassifier runs a local text-classification model. The model must emit
// positive/negative/neutral/mixed style labels; other labels are ignored.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.Mutex
}

// NewHugotClassifier loads model from modelDir, downloading it from the
// Hugging Face hub on first use.
func NewHugotClassifier(model string, modelDir string) (*HugotClassifier, error) {
	if modelDir == "" {
		modelDir = DEFAULT_HUGOT_MODEL_DIR
	}

	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("[HugotClient] failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(model, "/", "_"))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[HugotClient] Model not found, downloading...",
			slog.String("model", model))
		modelPath, err = hugot.DownloadModel(model, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("[HugotClient] failed to download model: %w", err)
		}
		slog.Info("[HugotClient] Model downloaded successfully", slog.String("path", modelPath))
	} else {
		slog.Info("[HugotClient] Using existing model", slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("[HugotClient] failed to initialize session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentClassificationPipeline",
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("[HugotClient] failed to initialize pipeline: %w", err)
	}

	return &HugotClassifier{session: session, pipeline: pipeline}, nil
}

func (h *HugotClassifier) Classify(ctx context.Context, text string) (models.RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return models.RawResponse{}, err
	}

	h.mu.Lock()
	output, err := h.pipeline.RunPipeline([]string{text})
	h.mu.Unlock()
	if err != nil {
		slog.Warn("[HugotClient] Classification failed", slog.String("error", err.Error()))
		return models.RawResponse{}, fmt.Errorf("[HugotClient] run pipeline: %w", err)
	}

	if len(output.ClassificationOutputs) == 0 {
		return models.RawResponse{}, nil
	}

	labels := make([]labelScore, 0, len(output.ClassificationOutputs[0]))
	for _, out := range output.ClassificationOutputs[0] {
		labels = append(labels, labelScore{label: out.Label, score: float64(out.Score)})
	}
	return labelsToRaw(labels), nil
}

func (h *HugotClassifier) Close() error {
	if h.session == nil {
		return nil
	}
	return h.session.Destroy()
}

type labelScore struct {
	label string
	score float64
}

// labelsToRaw keeps recognized labels and picks the highest scoring one as
// dominant.
func labelsToRaw(labels []labelScore) models.RawResponse {
	var raw models.RawResponse
	scores := &models.SentimentScores{}
	best := -1.0

	for _, l := range labels {
		category, ok := models.ParseSentimentCategory(l.label)
		if !ok {
			continue
		}

		score := l.score
		switch category {
		case models.SentimentPositive:
			scores.Positive = &score
		case models.SentimentNegative:
			scores.Negative = &score
		case models.SentimentNeutral:
			scores.Neutral = &score
		case models.SentimentMixed:
			scores.Mixed = &score
		}

		if score > best {
			best = score
			raw.DominantLabel = strings.ToUpper(string(category))
		}
	}

	if best >= 0 {
		raw.Scores = scores
	}
	return raw
}
