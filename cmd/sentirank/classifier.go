package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/sentirank/config"
	"github.com/spacesedan/sentirank/internal/clients"
	"github.com/spacesedan/sentirank/internal/sentiment"
)

// buildClassifier selects the configured backend and wraps it in the Valkey
// response cache when an address is configured. backend is the unwrapped
// classifier for health checks. The returned cleanup func is always safe to
// call.
func buildClassifier(ctx context.Context, cfg *config.Config) (classifier, backend sentiment.Classifier, cleanup func(), err error) {
	var cleanups []func()
	cleanup = func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	switch cfg.Backend {
	case config.BackendComprehend:
		opts := clients.AWSOptions{Region: cfg.AWSRegion, Endpoint: cfg.AWSEndpoint}
		awsCfg, err := clients.LoadAWSConfig(ctx, opts)
		if err != nil {
			return nil, nil, cleanup, err
		}
		classifier = clients.NewComprehendClassifier(clients.NewComprehendClient(awsCfg, opts), cfg.LanguageCode)
	case config.BackendHuggingFace:
		classifier = clients.NewHuggingFaceClassifier(clients.HuggingFaceOptions{
			Endpoint:     cfg.HuggingFaceEndpoint,
			LanguageCode: cfg.LanguageCode,
			Token:        cfg.HuggingFaceToken,
		})
	case config.BackendOpenAI:
		classifier = clients.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LanguageCode)
	case config.BackendHugot:
		hc, err := clients.NewHugotClassifier(cfg.HugotModel, cfg.HugotModelDir)
		if err != nil {
			return nil, nil, cleanup, err
		}
		cleanups = append(cleanups, func() {
			if err := hc.Close(); err != nil {
				slog.Warn("[Main] Failed to close hugot session", slog.String("error", err.Error()))
			}
		})
		classifier = hc
	case config.BackendVADER:
		classifier = sentiment.NewVADERClassifier()
	default:
		return nil, nil, cleanup, fmt.Errorf("[Main] unknown classifier backend %q", cfg.Backend)
	}

	backend = classifier
	cached := false
	if cfg.ValkeyAddress != "" {
		vc, err := clients.NewValkeyClient(ctx, clients.ValkeyOptions{
			Address:  cfg.ValkeyAddress,
			Password: cfg.ValkeyPassword,
			UseTLS:   cfg.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, running without response cache",
				slog.String("error", err.Error()))
		} else {
			cleanups = append(cleanups, vc.Close)
			classifier = clients.NewCachedClassifier(classifier, vc, cfg.CacheTTL, cfg.LanguageCode)
			cached = true
		}
	}

	slog.Info("[Main] Classifier ready",
		slog.String("backend", cfg.Backend),
		slog.Bool("cached", cached))

	return classifier, backend, cleanup, nil
}
