// Package api implements the HTTP client for the webhook-ingestion backend.
//
// The backend exposes plain REST resources under /api/v1 authenticated by a
// static API key header. One method exists per resource operation; every
// failure surfaces as a single classified *Error so callers never branch on
// anything richer than the message and the optional HTTP status.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default client-side rate limit (requests per second).
	DefaultRateLimit = 10

	apiPrefix       = "/api/v1"
	headerAPIKey    = "X-API-Key"
	headerRequestID = "X-Request-ID"
)

// Client is a webhook-ingestion API client. Construct it with New once per
// process and pass it explicitly to whatever needs it.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets a custom HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a webhook-ingestion API client. A single trailing slash on
// baseURL is stripped so "http://h/" and "http://h" build identical request
// URLs.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:  slog.Default(),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the normalized base URL the client was constructed with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Verify issues a minimal authenticated request to confirm the configured
// base URL and key are accepted by the server.
func (c *Client) Verify(ctx context.Context) error {
	query := url.Values{}
	query.Set("limit", "1")
	query.Set("offset", "0")
	_, err := c.do(ctx, http.MethodGet, "/webhook-events", query, nil)
	return err
}

// do executes one API request and returns the raw response body. A nil body
// with a nil error means the server answered 204 No Content.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, transportError(err)
	}

	reqURL := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("build request: %v", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerRequestID, uuid.New().String())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api response",
		"method", method,
		"url", reqURL,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errorFromResponse(resp)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if contentType := resp.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
		return nil, &Error{Message: fmt.Sprintf("unexpected response from server: content type %q is not JSON", contentType)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	return body, nil
}

// errorFromResponse classifies a non-2xx response. JSON bodies surface the
// server-supplied detail; HTML bodies (typically a proxy error page) are
// replaced by a generic message rather than leaking markup; anything else
// falls back to the raw text or the status line.
func errorFromResponse(resp *http.Response) *Error {
	status := resp.StatusCode
	reason := http.StatusText(status)
	contentType := resp.Header.Get("Content-Type")
	body, _ := io.ReadAll(resp.Body)

	if strings.Contains(contentType, "application/json") {
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
			return &Error{Message: detail.Detail, Status: status, Detail: detail.Detail}
		}
	}

	text := strings.TrimSpace(string(body))
	if looksLikeHTML(contentType, text) {
		return &Error{
			Message: fmt.Sprintf("Server error (%d %s). The API may be unavailable.", status, reason),
			Status:  status,
		}
	}
	if text != "" {
		return &Error{Message: text, Status: status, Detail: text}
	}

	return &Error{Message: fmt.Sprintf("HTTP %d: %s", status, reason), Status: status}
}

func looksLikeHTML(contentType, body string) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	lower := strings.ToLower(body)
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
}

// decode unmarshals a response body into T, flattening legacy null wrappers
// first when the body carries any.
func decode[T any](body []byte) (T, error) {
	var out T
	if needsNormalization(body) {
		var tree any
		if err := json.Unmarshal(body, &tree); err != nil {
			return out, decodeError(err)
		}
		repaired, err := json.Marshal(normalizeLegacyNulls(tree))
		if err != nil {
			return out, decodeError(err)
		}
		body = repaired
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, decodeError(err)
	}
	return out, nil
}

// getJSON performs a GET request and decodes the response into T.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](body)
}

// postJSON performs a POST request with a JSON payload and decodes the
// response into T.
func postJSON[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	body, err := c.do(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](body)
}

// putJSON performs a PUT request with a JSON payload and decodes the response
// into T.
func putJSON[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	body, err := c.do(ctx, http.MethodPut, path, nil, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](body)
}

// patchJSON performs a PATCH request with a JSON payload and decodes the
// response into T.
func patchJSON[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	body, err := c.do(ctx, http.MethodPatch, path, nil, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](body)
}

// del performs a DELETE request. Both 200 and 204 count as success; the body,
// if any, is discarded.
func (c *Client) del(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
