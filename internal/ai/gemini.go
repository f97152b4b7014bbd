// Package ai proxies prompts to the Gemini generateContent endpoint.
// The service is an opaque collaborator: text in, text out.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const defaultSystemInstruction = "You are a helpful GATE tutor."

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("ai: api key not configured")

type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client

	// retry knobs, overridden in tests
	maxAttempts int
	backoffBase time.Duration
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:      apiKey,
		model:       model,
		baseURL:     defaultBaseURL,
		httpc:       &http.Client{Timeout: 30 * time.Second},
		maxAttempts: 3,
		backoffBase: 500 * time.Millisecond,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction content   `json:"systemInstruction"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the model's text. Transient
// failures (429, 5xx, network errors) are retried with exponential
// backoff up to the attempt limit; 4xx responses fail immediately.
func (c *Client) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	if systemInstruction == "" {
		systemInstruction = defaultSystemInstruction
	}

	body, err := json.Marshal(generateRequest{
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var lastErr error
	delay := c.backoffBase
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		text, retryable, err := c.tryGenerate(ctx, url, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", fmt.Errorf("ai: giving up after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) tryGenerate(ctx context.Context, url string, body []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, fmt.Errorf("ai: upstream status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false, fmt.Errorf("ai: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "No response from AI.", false, nil
	}
	return out.Candidates[0].Content.Parts[0].Text, false, nil
}
