package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/restclient/internal/constants"
)

// Logger is the logging surface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client is an HTTP transport that hands responses back untouched.
// Status codes are never turned into errors and bodies are never read.
type Client struct {
	httpClient *retryablehttp.Client
	logger     Logger
	debug      bool
	userAgent  string
	metrics    *Metrics
}

// Request describes a single outgoing call.
type Request struct {
	Method  string
	URL     string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds every request, including reading the response headers.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries of connection errors, 429 and 5xx responses.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *nethttp.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient creates a transport. Without options it performs exactly one
// attempt per call and returns whatever the server answered.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Get issues a GET without query parameters.
func (c *Client) Get(ctx context.Context, rawURL string) (*nethttp.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, URL: rawURL})
}

// GetWithParams issues a GET with params merged into the URL query.
func (c *Client) GetWithParams(ctx context.Context, rawURL string, params url.Values) (*nethttp.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, URL: rawURL, Query: params})
}

// Post issues a POST.
func (c *Client) Post(ctx context.Context, rawURL string, data interface{}) (*nethttp.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, URL: rawURL, Body: data})
}

// Put issues a PUT.
func (c *Client) Put(ctx context.Context, rawURL string, data interface{}) (*nethttp.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, URL: rawURL, Body: data})
}

// Patch issues a PATCH.
func (c *Client) Patch(ctx context.Context, rawURL string, data interface{}) (*nethttp.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPatch, URL: rawURL, Body: data})
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, rawURL string) (*nethttp.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, URL: rawURL})
}

// Do executes req. The caller owns the returned response body.
func (c *Client) Do(ctx context.Context, req *Request) (*nethttp.Response, error) {
	target, err := buildURL(req.URL, req.Query)
	if err != nil {
		return nil, fmt.Errorf("building request URL: %w", err)
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()

	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	httpReq.Header.Set(constants.HeaderRequestID, requestID)

	if contentType != "" {
		httpReq.Header.Set(constants.HeaderContentType, contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	c.logRequest(req.Method, target, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)

	c.metrics.observe(req.Method, resp, elapsed)
	c.logResponse(req.Method, target, requestID, resp, err, elapsed)

	return resp, err //nolint:wrapcheck // transport errors are surfaced unchanged
}

func (c *Client) logRequest(method, target, requestID string) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":     method,
		"url":        target,
		"request_id": requestID,
	})
}

func (c *Client) logResponse(method, target, requestID string, resp *nethttp.Response, err error, elapsed time.Duration) {
	if !c.debug || c.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"method":      method,
		"url":         target,
		"request_id":  requestID,
		"duration_ms": elapsed.Milliseconds(),
	}

	if err != nil {
		fields["error"] = err.Error()
		c.logger.Debug("HTTP Request Failed", fields)

		return
	}

	fields["status_code"] = resp.StatusCode
	c.logger.Debug("HTTP Response", fields)
}

// buildURL merges query into the query string already present on rawURL.
func buildURL(rawURL string, query url.Values) (string, error) {
	if len(query) == 0 {
		return rawURL, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}

	merged := parsed.Query()

	for key, values := range query {
		for _, value := range values {
			merged.Add(key, value)
		}
	}

	parsed.RawQuery = merged.Encode()

	return parsed.String(), nil
}

// encodeBody turns a payload into something retryablehttp can replay.
// url.Values is form encoded, raw bytes and readers are sent as is and
// everything else is marshalled to JSON.
func encodeBody(data interface{}) (interface{}, string, error) {
	switch payload := data.(type) {
	case nil:
		return nil, "", nil
	case url.Values:
		return []byte(payload.Encode()), constants.ContentTypeForm, nil
	case []byte:
		return payload, "", nil
	case string:
		return []byte(payload), "", nil
	case io.Reader:
		return payload, "", nil
	default:
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("marshalling JSON: %w", err)
		}

		return encoded, constants.ContentTypeJSON, nil
	}
}
