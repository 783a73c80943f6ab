package restclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fivetwenty-io/restclient/internal/constants"
	resthttp "github.com/fivetwenty-io/restclient/internal/http"
)

// Transport performs the HTTP calls on behalf of a ResourceDriver. Responses
// and errors are handed back to the caller exactly as the transport returns
// them.
//
// Get and GetWithParams are separate so that a call made without query
// parameters never carries an empty parameter set.
type Transport interface {
	Get(ctx context.Context, rawURL string) (*http.Response, error)
	GetWithParams(ctx context.Context, rawURL string, params url.Values) (*http.Response, error)
	Post(ctx context.Context, rawURL string, data interface{}) (*http.Response, error)
	Put(ctx context.Context, rawURL string, data interface{}) (*http.Response, error)
	Patch(ctx context.Context, rawURL string, data interface{}) (*http.Response, error)
	Delete(ctx context.Context, rawURL string) (*http.Response, error)
}

var _ Transport = (*resthttp.Client)(nil)

// Logger interface for logging. It is the transport's logger, so any
// implementation can be passed straight through to it.
type Logger = resthttp.Logger

// Config represents client configuration for building a RestClient.
//
// Only BaseURL is required. The remaining transport fields are ignored when
// Transport is set.
type Config struct {
	// BaseURL is the API root every resource is resolved against.
	BaseURL string

	// URLsOnly makes every operation return the computed URL without
	// performing a request.
	URLsOnly bool

	// Transport overrides the default HTTP transport.
	Transport Transport

	// Logger receives transport debug output when Debug is set.
	Logger Logger
	Debug  bool

	// UserAgent replaces the default User-Agent header.
	UserAgent string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// RetryMax enables retries of 429, 5xx and connection errors. Zero, the
	// default, makes exactly one attempt per call.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// MetricsRegisterer, when set, receives request count and latency
	// collectors.
	MetricsRegisterer prometheus.Registerer
}

// RestClient resolves resource names into ResourceDrivers. It is immutable
// and safe for concurrent use.
type RestClient struct {
	baseURL   *url.URL
	rawBase   string
	urlsOnly  bool
	transport Transport
}

// New creates a RestClient from config.
func New(config *Config) (*RestClient, error) {
	if config == nil || config.BaseURL == "" {
		return nil, fmt.Errorf("%w: base_url is mandatory", ErrInvalidParameters)
	}

	base, err := parseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	transport := config.Transport
	if transport == nil {
		transport = resthttp.NewClient(createHTTPClientOptions(config)...)
	}

	return &RestClient{
		baseURL:   base,
		rawBase:   config.BaseURL,
		urlsOnly:  config.URLsOnly,
		transport: transport,
	}, nil
}

// NewWithTransport creates a RestClient for baseURL that sends requests through
// transport. A nil transport selects the default one.
func NewWithTransport(baseURL string, urlsOnly bool, transport Transport) (*RestClient, error) {
	return New(&Config{
		BaseURL:   baseURL,
		URLsOnly:  urlsOnly,
		Transport: transport,
	})
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *Config) []resthttp.Option {
	var httpOpts []resthttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, resthttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, resthttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, resthttp.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, resthttp.WithTimeout(config.Timeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, resthttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.MetricsRegisterer != nil {
		httpOpts = append(httpOpts, resthttp.WithMetrics(resthttp.NewMetrics(config.MetricsRegisterer)))
	}

	return httpOpts
}

// BaseURL returns the base URL the client was built with.
func (c *RestClient) BaseURL() string {
	return c.rawBase
}

// URLsOnly reports whether the client is in dry-run mode.
func (c *RestClient) URLsOnly() bool {
	return c.urlsOnly
}

// Resource returns a driver for the resource called name. Any name is
// accepted; slashes inside it address nested paths such as "v2/books".
// A new driver is built on every call.
func (c *RestClient) Resource(name string) *ResourceDriver {
	return &ResourceDriver{
		resourceURL: c.baseURL.JoinPath(escapeResourceName(name)),
		urlsOnly:    c.urlsOnly,
		transport:   c.transport,
	}
}
