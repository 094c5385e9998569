package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spacesedan/sentirank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHuggingFace(t *testing.T, handler http.HandlerFunc, token string) *HuggingFaceClassifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewHuggingFaceClassifier(HuggingFaceOptions{
		Endpoint:     server.URL,
		LanguageCode: "en",
		Token:        token,
		Timeout:      time.Second,
		MaxRetries:   3,
		Backoff:      time.Millisecond,
	})
}

func TestHuggingFaceClassifier_Classify(t *testing.T) {
	var got models.SentimentAnalysisRequest
	var auth string

	hf := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, USER_AGENT, r.Header.Get("User-Agent"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Sentiment":"POSITIVE","SentimentScore":{"Positive":0.91,"Negative":0.01}}`))
	}, "hf_secret")

	raw, err := hf.Classify(context.Background(), "great stuff")
	require.NoError(t, err)

	assert.Equal(t, models.SentimentAnalysisRequest{Inputs: "great stuff", LanguageCode: "en"}, got)
	assert.Equal(t, "Bearer hf_secret", auth)
	assert.Equal(t, "POSITIVE", raw.DominantLabel)
	require.NotNil(t, raw.Scores)
	require.NotNil(t, raw.Scores.Positive)
	assert.Equal(t, 0.91, *raw.Scores.Positive)
	assert.Nil(t, raw.Scores.Mixed)
}

func TestHuggingFaceClassifier_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	hf := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"Sentiment":"NEGATIVE","SentimentScore":{"Negative":0.8}}`))
	}, "")

	raw, err := hf.Classify(context.Background(), "bad")
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "NEGATIVE", raw.DominantLabel)
}

func TestHuggingFaceClassifier_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32

	hf := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, "")

	_, err := hf.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 502")
	assert.Equal(t, int32(3), calls.Load())
}

func TestHuggingFaceClassifier_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32

	hf := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad token"}`))
	}, "")

	_, err := hf.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHuggingFaceClassifier_MalformedBody(t *testing.T) {
	hf := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}, "")

	_, err := hf.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal response")
}
