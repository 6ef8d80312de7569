package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/legal-os/pkg/poll"
)

// withKey runs fn with the current key and moves on to the next key when the
// service reports a quota error.
func (c *implClient) withKey(ctx context.Context, op string, fn func(context.Context, *genai.Client) error) error {
	if len(c.apiKeys) == 0 {
		return ErrNoAPIKey
	}

	var lastErr error
	for range len(c.apiKeys) {
		client, idx, err := c.client(ctx)
		if err != nil {
			lastErr = err
			c.rotateKey(idx)
			continue
		}

		err = fn(ctx, client)
		if err == nil {
			return nil
		}
		if isRateLimited(err) {
			c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
			c.rotateKey(idx)
			lastErr = err
			continue
		}
		return wrap(op, err)
	}

	return &ServiceError{Op: op, Err: fmt.Errorf("all API keys exhausted: %w", lastErr)}
}

// wrap leaves sentinel and timeout errors recognisable for callers.
func wrap(op string, err error) error {
	var timeout *poll.TimeoutError
	if errors.As(err, &timeout) || errors.Is(err, ErrEmptyResponse) || errors.Is(err, context.Canceled) {
		return err
	}
	return &ServiceError{Op: op, Err: err}
}

func (c *implClient) client(ctx context.Context) (*genai.Client, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.currentKey
	key := c.apiKeys[idx]
	if client, ok := c.clients[key]; ok {
		return client, idx, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, idx, fmt.Errorf("create client: %w", err)
	}
	c.clients[key] = client
	return client, idx, nil
}

// rotateKey advances past idx unless another call already did.
func (c *implClient) rotateKey(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}

// rateLimitMarkers match quota errors that reach us without an APIError,
// such as ones flattened into text by a proxy.
var rateLimitMarkers = []string{"RESOURCE_EXHAUSTED", "Error 429", "429 Too Many Requests", "exceeded your current quota"}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}

	msg := err.Error()
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
