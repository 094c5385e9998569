package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spacesedan/sentirank/config"
	"github.com/spacesedan/sentirank/internal/analyzer"
	"github.com/spacesedan/sentirank/internal/clients/kafka_client"
	"github.com/spacesedan/sentirank/internal/logging"
	"github.com/spacesedan/sentirank/internal/models"
	"github.com/spacesedan/sentirank/internal/monitoring"
	"github.com/spacesedan/sentirank/internal/sentiment"
)

const (
	COMMAND_RESET = "/reset"
	COMMAND_TEST  = "/test"
	COMMAND_QUIT  = "/quit"
)

func main() {
	testConnection := flag.Bool("test-connection", false, "classify a canned sentence and exit")
	follow := flag.Bool("follow", false, "rank records published to Kafka instead of reading stdin")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ranker := sentiment.NewRanker(cfg.Priority)
	kafkaCfg := kafka_client.NewKafkaConfig(cfg.KafkaBroker, cfg.KafkaGroupID, cfg.KafkaTopic)

	if *follow {
		if err := runFollow(ctx, ranker, kafkaCfg); err != nil {
			slog.Error("[Main] Follow stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	classifier, backend, cleanup, err := buildClassifier(ctx, cfg)
	defer cleanup()
	if err != nil {
		slog.Error("[Main] Failed to build classifier",
			slog.String("backend", cfg.Backend),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *testConnection {
		if !runConnectionTest(ctx, backend) {
			os.Exit(1)
		}
		return
	}

	classifierHealthy := &atomic.Bool{}
	classifierHealthy.Store(true)
	go monitoring.MonitorClassifierHealth(ctx, backend, classifierHealthy, monitoring.HEALTHCHECK_TIMER)

	opts := []analyzer.Option{
		analyzer.WithTimeout(cfg.ClassifyTimeout),
		analyzer.WithHealth(classifierHealthy),
	}
	if cfg.RecordFailures {
		opts = append(opts, analyzer.WithRecordFailures())
	}
	if cfg.KafkaBroker != "" {
		publisher, err := kafka_client.NewRecordPublisher(kafkaCfg)
		if err != nil {
			slog.Warn("[Main] Kafka unavailable, records will not be published",
				slog.String("error", err.Error()))
		} else {
			defer publisher.Close()
			opts = append(opts, analyzer.WithPublisher(publisher))
		}
	}

	svc := analyzer.NewService(classifier, ranker, opts...)
	runInteractive(ctx, svc, backend)
}

func runConnectionTest(ctx context.Context, classifier sentiment.Classifier) bool {
	category, err := monitoring.CheckConnection(ctx, classifier)
	if err != nil {
		fmt.Fprintf(os.Stdout, "connection failed: %v\n", err)
		return false
	}
	fmt.Fprintf(os.Stdout, "connection ok: %q classified as %s\n", monitoring.HEALTHCHECK_TEXT, category)
	return true
}

// runInteractive reads one submission per line and prints the ranked list
// after each one.
func runInteractive(ctx context.Context, svc *analyzer.Service, classifier sentiment.Classifier) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			slog.Error("[Main] Failed to read input", slog.String("error", err.Error()))
		}
	}()

	fmt.Fprintf(os.Stderr, "Enter text to analyze (%s, %s, %s)\n", COMMAND_RESET, COMMAND_TEST, COMMAND_QUIT)

	for {
		select {
		case <-ctx.Done():
			slog.Info("[Main] Shutting down")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}

			switch strings.TrimSpace(line) {
			case COMMAND_QUIT:
				return
			case COMMAND_RESET:
				svc.Reset()
			case COMMAND_TEST:
				runConnectionTest(ctx, classifier)
				continue
			default:
				_, err := svc.Submit(ctx, line)
				if errors.Is(err, analyzer.ErrEmptyText) {
					continue
				}
				if err != nil {
					fmt.Fprintf(os.Stdout, "analysis failed: %v\n", err)
				}
			}

			printResults(svc.Results())
			if !svc.Healthy() {
				fmt.Fprintln(os.Stderr, "warning: classifier failed its last health check")
			}
		}
	}
}

// runFollow ranks every record arriving on the records topic.
func runFollow(ctx context.Context, ranker *sentiment.Ranker, kafkaCfg kafka_client.KafkaConfig) error {
	consumer, err := kafka_client.NewRecordConsumer(kafkaCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			slog.Warn("[Main] Failed to close consumer", slog.String("error", err.Error()))
		}
	}()

	results := sentiment.NewResultCollection()
	return consumer.Follow(ctx, func(record models.SentimentRecord) {
		results.Add(&record)
		printResults(results.Ranked(ranker))
	})
}

func printResults(records []*models.SentimentRecord) {
	if err := analyzer.WriteResults(os.Stdout, records); err != nil {
		slog.Error("[Main] Failed to render results", slog.String("error", err.Error()))
	}
	fmt.Fprintln(os.Stdout)
}
