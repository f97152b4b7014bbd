package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	return &Client{
		apiKey:      "test-key",
		model:       "test-model",
		baseURL:     url,
		httpc:       &http.Client{Timeout: 5 * time.Second},
		maxAttempts: 3,
		backoffBase: time.Millisecond,
	}
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello there"}]}}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Generate(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.Equal(t, "hello there", got)
}

func TestGenerateRetriesTransientFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Generate(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestGenerateGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "hi", "")
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestGenerateDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "hi", "")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGenerateWithoutKey(t *testing.T) {
	c := NewClient("", "model")
	_, err := c.Generate(context.Background(), "hi", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Generate(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.Equal(t, "No response from AI.", got)
}
