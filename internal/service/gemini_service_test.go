package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fadilmartias/harvard-cv/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const geminiOK = `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"name\":\"Jane Doe\"}"}]}}]}`

const geminiUnavailable = `{"error":{"code":503,"message":"The model is overloaded.","status":"UNAVAILABLE"}}`

// flakyGemini answers 503 for the first failures calls and 200 afterwards.
func flakyGemini(t *testing.T, failures int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n <= failures {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(geminiUnavailable))
			return
		}
		_, _ = w.Write([]byte(geminiOK))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestGemini(t *testing.T, baseURL string) *GeminiService {
	t.Helper()
	s, err := NewGeminiService(context.Background(), &config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return s
}

func TestGeminiMissingKeyFailsAtCallTime(t *testing.T) {
	s, err := NewGeminiService(context.Background(), &config.GeminiConfig{Model: "gemini-2.5-flash"})
	require.NoError(t, err)

	_, err = s.GenerateJSON(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGeminiGenerateJSON(t *testing.T) {
	srv, hits := flakyGemini(t, 0)
	s := newTestGemini(t, srv.URL)

	out, err := s.GenerateJSON(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Jane Doe"}`, out)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGeminiBreakerRecoversAfterCooldown(t *testing.T) {
	srv, hits := flakyGemini(t, defaultBreakerMax)
	s := newTestGemini(t, srv.URL)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.breaker.now = func() time.Time { return now }

	for i := 0; i < defaultBreakerMax; i++ {
		_, err := s.GenerateJSON(context.Background(), "prompt")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "circuit breaker open")
	}
	_, open := s.GetCircuitBreakerStatus()
	require.True(t, open)

	_, err := s.GenerateJSON(context.Background(), "prompt")
	assert.ErrorContains(t, err, "circuit breaker open")
	assert.Equal(t, int32(defaultBreakerMax), hits.Load(), "open breaker does not call upstream")

	now = now.Add(defaultBreakerCooldown + time.Second)
	out, err := s.GenerateJSON(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Jane Doe"}`, out)

	_, err = s.GenerateJSON(context.Background(), "prompt")
	require.NoError(t, err)
	n, open := s.GetCircuitBreakerStatus()
	assert.Zero(t, n)
	assert.False(t, open)
	assert.Equal(t, int32(defaultBreakerMax+2), hits.Load())
}

func TestGeminiFailedTrialReopens(t *testing.T) {
	srv, hits := flakyGemini(t, defaultBreakerMax+1)
	s := newTestGemini(t, srv.URL)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.breaker.now = func() time.Time { return now }

	for i := 0; i < defaultBreakerMax; i++ {
		_, _ = s.GenerateJSON(context.Background(), "prompt")
	}

	now = now.Add(defaultBreakerCooldown + time.Second)
	_, err := s.GenerateJSON(context.Background(), "prompt")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "circuit breaker open", "trial reached upstream")

	_, err = s.GenerateJSON(context.Background(), "prompt")
	assert.ErrorContains(t, err, "circuit breaker open", "cooldown restarted")
	assert.Equal(t, int32(defaultBreakerMax+1), hits.Load())
}

func TestGeminiCallerCancellationDoesNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	s := newTestGemini(t, srv.URL)

	for i := 0; i < defaultBreakerMax+1; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		_, err := s.GenerateJSON(ctx, "prompt")
		cancel()
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "circuit breaker open")
	}
	n, open := s.GetCircuitBreakerStatus()
	assert.Zero(t, n)
	assert.False(t, open)
}

func TestCircuitBreakerSingleTrial(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	b := newCircuitBreaker(2, time.Minute)
	b.now = func() time.Time { return now }

	b.failure()
	require.NoError(t, b.allow())
	b.failure()
	assert.Error(t, b.allow())

	now = now.Add(time.Minute)
	require.NoError(t, b.allow(), "first caller after cooldown is the trial")
	assert.Error(t, b.allow(), "only one trial at a time")

	b.release()
	require.NoError(t, b.allow(), "released trial can be retried")
	b.success()
	assert.NoError(t, b.allow())
	assert.NoError(t, b.allow())
}

func TestGeminiResetCircuitBreaker(t *testing.T) {
	s := &GeminiService{breaker: newCircuitBreaker(2, time.Hour)}
	s.breaker.failure()
	s.breaker.failure()

	n, open := s.GetCircuitBreakerStatus()
	assert.Equal(t, 2, n)
	assert.True(t, open)

	_, err := s.GenerateJSON(context.Background(), "prompt")
	assert.ErrorContains(t, err, "circuit breaker open")

	s.ResetCircuitBreaker()
	_, open = s.GetCircuitBreakerStatus()
	assert.False(t, open)
}

func TestValidateGenerateResponse(t *testing.T) {
	assert.Error(t, validateGenerateResponse(nil))
	assert.Error(t, validateGenerateResponse(&genai.GenerateContentResponse{}))
	assert.Error(t, validateGenerateResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}))
	assert.NoError(t, validateGenerateResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: "{}"}}}}},
	}))
}
