package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/Sidharth1743/File-Search/internal/logger"
)

const (
	// DefaultBaseURL is the Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultTimeout is the default HTTP request timeout. Generous
	// because media uploads share the same client; individual calls are
	// bounded by their context.
	DefaultTimeout = 2 * time.Minute

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// apiKeyHeader carries the API key on every request.
	apiKeyHeader = "x-goog-api-key"
)

// DefaultRateLimit throttles requests to stay under the free-tier
// per-minute quota while leaving headroom for operation polling.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 2.0, BurstSize: 4}

// RateLimitConfig holds rate limiting configuration for the API client.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// Config holds the settings needed to talk to the File Search API.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string

	// Model is the generation model used for grounded queries,
	// e.g. "gemini-2.5-flash".
	Model string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// Timeout overrides the HTTP timeout. Defaults to DefaultTimeout.
	Timeout time.Duration

	// RateLimit overrides the request throttle. Defaults to
	// DefaultRateLimit.
	RateLimit RateLimitConfig

	// HTTPClient overrides the underlying client. Used in tests.
	HTTPClient *http.Client
}

// Client talks to the Gemini File Search REST API. It implements the
// remote store service consumed by the core: store listing and creation,
// document upload with operation polling, document listing and deletion,
// and grounded generation.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a File Search API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	limit := cfg.RateLimit
	if limit.RequestsPerSecond == 0 {
		limit = DefaultRateLimit
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), limit.BurstSize),
	}
}

// doJSON performs one JSON API call. The path is relative to the base
// URL, body is marshalled when non-nil and the response is decoded into
// out when non-nil. Transient failures are retried with exponential
// backoff.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	data, err := c.doRaw(ctx, method, requestURL, payload)
	if err != nil {
		return err
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doRaw performs one JSON request against an absolute URL and returns
// the raw response body.
func (c *Client) doRaw(ctx context.Context, method, requestURL string, payload []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			delay := RetryDelay << (attempt - 1)
			logger.Debug("[gemini] retrying %s %s in %s", method, requestURL, delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set(apiKeyHeader, c.apiKey)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%s %s: %w", method, requestURL, err)
			continue
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("read response: %w", readErr)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return data, nil
		}

		apiErr := decodeAPIError(resp.StatusCode, data)
		if !isRetryable(resp.StatusCode) {
			return nil, apiErr
		}
		lastErr = apiErr
	}

	return nil, lastErr
}

// decodeAPIError maps an error response body onto an APIError. The API
// wraps failures as {"error": {"code", "message", "status"}}; anything
// else is reported verbatim.
func decodeAPIError(statusCode int, data []byte) *APIError {
	var wrapper struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Error.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Status:     wrapper.Error.Status,
			Message:    wrapper.Error.Message,
		}
	}
	return &APIError{StatusCode: statusCode, Message: string(data)}
}
