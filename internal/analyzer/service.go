package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/sentirank/internal/models"
	"github.com/spacesedan/sentirank/internal/sentiment"
)

const DEFAULT_CLASSIFY_TIMEOUT = 10 * time.Second

var (
	ErrEmptyText       = errors.New("[Analyzer] text is empty")
	ErrRequestInFlight = errors.New("[Analyzer] a classification request is already in flight")
)

// Publisher receives every record once it is part of the collection.
type Publisher interface {
	Publish(ctx context.Context, record models.SentimentRecord) error
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRecordFailures keeps a nil placeholder for each failed classification
// so failures stay visible at the bottom of the list.
func WithRecordFailures() Option {
	return func(s *Service) { s.recordFailures = true }
}

func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithHealth attaches the flag kept current by the classifier health monitor.
// Submissions still go through while it is false, with a warning.
func WithHealth(healthy *atomic.Bool) Option {
	return func(s *Service) { s.healthy = healthy }
}

// Service is the submit handler and render source for the result list.
// At most one classification runs at a time.
type Service struct {
	classifier     sentiment.Classifier
	ranker         *sentiment.Ranker
	results        *sentiment.ResultCollection
	publisher      Publisher
	timeout        time.Duration
	recordFailures bool
	clock          clockwork.Clock
	healthy        *atomic.Bool
	inFlight       atomic.Bool
}

func NewService(classifier sentiment.Classifier, ranker *sentiment.Ranker, opts ...Option) *Service {
	s := &Service{
		classifier: classifier,
		ranker:     ranker,
		results:    sentiment.NewResultCollection(),
		timeout:    DEFAULT_CLASSIFY_TIMEOUT,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit classifies text and adds the normalized record to the collection.
func (s *Service) Submit(ctx context.Context, text string) (*models.SentimentRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		slog.Warn("[Analyzer] Rejecting submission while another is in flight")
		return nil, ErrRequestInFlight
	}
	defer s.inFlight.Store(false)

	if !s.Healthy() {
		slog.Warn("[Analyzer] Classifier failed its last health check, submitting anyway")
	}

	classifyCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.clock.Now()
	raw, err := s.classifier.Classify(classifyCtx, text)
	if err != nil {
		slog.Error("[Analyzer] Analysis failed",
			slog.Duration("elapsed", s.clock.Since(start)),
			slog.String("error", err.Error()))
		if s.recordFailures {
			s.results.Add(nil)
		}
		return nil, fmt.Errorf("[Analyzer] classify: %w", err)
	}

	record := sentiment.Normalize(text, raw)
	record.ID = uuid.NewString()
	record.AnalyzedAt = s.clock.Now().UTC()

	s.results.Add(&record)

	slog.Info("[Analyzer] Text analyzed",
		slog.String("record_id", record.ID),
		slog.String("category", string(record.Category)),
		slog.Float64("confidence", record.Confidence),
		slog.Duration("elapsed", s.clock.Since(start)))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, record); err != nil {
			slog.Warn("[Analyzer] Failed to publish record",
				slog.String("record_id", record.ID),
				slog.String("error", err.Error()))
		}
	}

	return &record, nil
}

// Results returns the collection in display order.
func (s *Service) Results() []*models.SentimentRecord {
	return s.results.Ranked(s.ranker)
}

// Healthy reports the last health check outcome, true when no monitor is
// attached.
func (s *Service) Healthy() bool {
	return s.healthy == nil || s.healthy.Load()
}

func (s *Service) Reset() {
	s.results.Reset()
}
