package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"slidegen/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, rec *metrics.Recorder) *IONetClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultIONetConfig("test-key")
	cfg.BaseURL = server.URL
	cfg.Timeout = 5 * time.Second
	cfg.Metrics = rec
	return NewIONetClient(cfg)
}

func TestIONetClient_Complete_Success(t *testing.T) {
	var got chatRequest
	rec := metrics.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  {\"title\": \"Hi\"}  "}}]}`))
	}, rec)

	out, err := client.Complete(context.Background(), Request{Prompt: "hello", Temperature: 0.8})
	require.NoError(t, err)
	assert.Equal(t, `{"title": "Hi"}`, out)

	assert.Equal(t, DefaultIONetModel, got.Model)
	assert.Equal(t, 800, got.MaxCompletionTokens)
	assert.InDelta(t, 0.8, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[0].Content)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.LLMRequests.WithLabelValues("ionet", "success")))
}

func TestIONetClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"bad key"}`, ErrInvalidAPIKey},
		{"rate limited", http.StatusTooManyRequests, `{}`, ErrRateLimited},
		{"model not supported", http.StatusBadRequest, `{"detail":"Model X does not support Chat Completions API","Supported models":["a","b"]}`, ErrModelNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, nil)
			_, err := client.Complete(context.Background(), Request{Prompt: "x"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIONetClient_ServerErrorAndEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("oops"))
	}, nil)
	_, err := client.Complete(context.Background(), Request{Prompt: "x"})
	assert.ErrorContains(t, err, "status 500")

	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}, nil)
	_, err = client.Complete(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestIONetClient_NoAPIKey(t *testing.T) {
	client := NewIONetClient(DefaultIONetConfig(""))
	_, err := client.Complete(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestIONetClient_BreakerOpensAfterFailures(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := DefaultIONetConfig("k")
	cfg.BaseURL = server.URL
	cfg.Breaker = BreakerSettings{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, MinRequests: 2, FailureThreshold: 0.5}
	client := NewIONetClient(cfg)

	for i := 0; i < 2; i++ {
		_, err := client.Complete(context.Background(), Request{Prompt: "x"})
		require.Error(t, err)
	}
	_, err := client.Complete(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestIONetClient_InvalidKeyDoesNotTripBreaker(t *testing.T) {
	cfg := DefaultIONetConfig("k")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()
	cfg.BaseURL = server.URL
	cfg.Breaker = BreakerSettings{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, MinRequests: 1, FailureThreshold: 0.1}
	client := NewIONetClient(cfg)

	for i := 0; i < 3; i++ {
		_, err := client.Complete(context.Background(), Request{Prompt: "x"})
		assert.ErrorIs(t, err, ErrInvalidAPIKey)
	}
}
