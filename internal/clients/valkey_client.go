package clients

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/sentirank/internal/models"
	"github.com/spacesedan/sentirank/internal/sentiment"
	"github.com/valkey-io/valkey-go"
)

const VALKEY_SENTIMENT_KEY_PREFIX = "sentiment:response:"

type ValkeyOptions struct {
	Address  string
	Password string
	UseTLS   bool
}

type ValkeyClient struct {
	Client valkey.Client
}

func NewValkeyClient(ctx context.Context, opts ValkeyOptions) (*ValkeyClient, error) {
	clientOpts := valkey.ClientOption{
		InitAddress: []string{
			opts.Address,
		},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", opts.Address))

	return &ValkeyClient{Client: client}, nil
}

func (vc *ValkeyClient) Close() {
	if vc.Client != nil {
		vc.Client.Close()
	}
}

// DoWithRetry retries connection errors. Commands are recycled after Do, so
// build is called once per attempt.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Builder) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, build(vc.Client.B()))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) || !isConnectionError(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

// CachedClassifier serves repeated texts from Valkey. Cache failures are
// logged and fall through to the wrapped classifier.
type CachedClassifier struct {
	next         sentiment.Classifier
	valkey       *ValkeyClient
	ttl          time.Duration
	languageCode string
}

func NewCachedClassifier(next sentiment.Classifier, vc *ValkeyClient, ttl time.Duration, languageCode string) *CachedClassifier {
	return &CachedClassifier{
		next:         next,
		valkey:       vc,
		ttl:          ttl,
		languageCode: languageCode,
	}
}

func (c *CachedClassifier) Classify(ctx context.Context, text string) (models.RawResponse, error) {
	key := cacheKey(c.languageCode, text)

	cached, err := c.valkey.DoWithRetry(ctx, func(b valkey.Builder) valkey.Completed {
		return b.Get().Key(key).Build()
	}, 3).AsBytes()
	switch {
	case err == nil:
		var raw models.RawResponse
		if jsonErr := json.Unmarshal(cached, &raw); jsonErr == nil {
			slog.Debug("[ValkeyClient] Cache hit", slog.String("key", key))
			return raw, nil
		}
		slog.Warn("[ValkeyClient] Discarding unreadable cache entry", slog.String("key", key))
	case !valkey.IsValkeyNil(err):
		slog.Warn("[ValkeyClient] Cache lookup failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	raw, err := c.next.Classify(ctx, text)
	if err != nil {
		return models.RawResponse{}, err
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return raw, nil
	}

	set := func(b valkey.Builder) valkey.Completed {
		return b.Set().Key(key).Value(valkey.BinaryString(payload)).ExSeconds(int64(c.ttl.Seconds())).Build()
	}
	if err := c.valkey.DoWithRetry(ctx, set, 3).Error(); err != nil {
		slog.Warn("[ValkeyClient] Failed to cache response",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	return raw, nil
}

func cacheKey(languageCode string, text string) string {
	sum := sha256.Sum256([]byte(languageCode + "\x00" + text))
	return VALKEY_SENTIMENT_KEY_PREFIX + hex.EncodeToString(sum[:])
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
