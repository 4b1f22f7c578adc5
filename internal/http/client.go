// Package http implements the authenticated transport for the TeamForge
// REST API: URL assembly, header injection, response buffering, and uniform
// error translation. It does not interpret per-endpoint success codes;
// resource clients do that.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/teamforge-io/ctf/internal/auth"
	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// Logger is the transport's logging sink.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes a single API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string

	// RawBody, when set, is sent verbatim with ContentType instead of a
	// JSON-marshaled Body. Used for multipart uploads.
	RawBody     []byte
	ContentType string
}

// Response is a buffered API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logging sink.
func WithLogger(logger Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) { c.userAgent = userAgent }
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryable.HTTPClient.Timeout = timeout
		c.plain.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries of idempotent GETs on transient failures
// (connection errors, 5xx, 429). Non-idempotent methods are never retried.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.retryable.RetryMax = retryMax
		c.retryable.RetryWaitMin = retryWaitMin
		c.retryable.RetryWaitMax = retryWaitMax
	}
}

// Client performs authenticated HTTP requests against a TeamForge server.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	logger       Logger
	debug        bool
	userAgent    string

	// retryable serves GETs; plain serves everything else, so a
	// POST/PATCH/DELETE is never replayed.
	retryable *retryablehttp.Client
	plain     *retryablehttp.Client
}

// NewClient creates a transport for the given base URL. A nil token
// manager sends unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      baseURL,
		tokenManager: tokenManager,
		userAgent:    "teamforge-ctf/1.0",
		retryable:    newRetryableClient(),
		plain:        newRetryableClient(),
	}

	client.retryable.CheckRetry = transientRetryPolicy

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func newRetryableClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil
	client.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	// Keep the final response available to the caller instead of
	// swallowing it after the retry budget is spent.
	client.ErrorHandler = func(resp *http.Response, err error, _ int) (*http.Response, error) {
		return resp, err
	}

	return client
}

// transientRetryPolicy retries connection errors, 5xx, and 429.
func transientRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return true, nil
	}

	return false, nil
}

// Logger returns the configured logging sink, or nil.
func (c *Client) Logger() Logger {
	return c.logger
}

// Do executes a request. The response is always returned when the server
// answered, even on error; any status >= 300 yields a *ctf.APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.buildRequest(ctx, req, token)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	underlying := c.plain
	if req.Method == http.MethodGet {
		underlying = c.retryable
	}

	httpResp, err := underlying.Do(httpReq)
	if err != nil && httpResp == nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"bytes":  len(body),
		})
	}

	if httpResp.StatusCode >= http.StatusMultipleChoices {
		return resp, ctf.NewAPIError(httpResp.StatusCode, body)
	}

	return resp, nil
}

// currentToken resolves the bearer token before any network I/O, so an
// unauthenticated session fails without dialing.
func (c *Client) currentToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", nil
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("getting session token: %w", err)
	}

	return token, nil
}

func (c *Client) buildRequest(ctx context.Context, req *Request, token string) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var (
		bodyBytes   []byte
		contentType string
	)

	switch {
	case req.RawBody != nil:
		bodyBytes = req.RawBody
		contentType = req.ContentType
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		bodyBytes = encoded
		contentType = "application/json"
	}

	var rawBody interface{}
	if bodyBytes != nil {
		rawBody = bodyBytes
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostRaw performs a POST request with a raw body and explicit content
// type.
func (c *Client) PostRaw(ctx context.Context, path string, raw []byte, contentType string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, RawBody: raw, ContentType: contentType})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
