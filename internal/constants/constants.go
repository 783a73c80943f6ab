package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP timeouts.
const (
	// DefaultHTTPTimeout is the timeout the CLI applies when none is configured.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. The library default is no retries at all.
const (
	// DefaultRetryMax is the number of retries performed by the default transport.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between retries when enabled.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// HTTP header names and values.
const (
	// HeaderUserAgent is the User-Agent header.
	HeaderUserAgent = "User-Agent"

	// HeaderContentType is the Content-Type header.
	HeaderContentType = "Content-Type"

	// HeaderRequestID carries the per-request correlation id.
	HeaderRequestID = "X-Request-Id"

	// ContentTypeJSON is used for structured request bodies.
	ContentTypeJSON = "application/json"

	// ContentTypeForm is used for url.Values request bodies.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "restclient-go"
)

// URL construction.
const (
	// PathSeparator joins base URL, resource name and key.
	PathSeparator = "/"
)

// Metrics.
const (
	// MetricsNamespace prefixes every collector registered by the transport.
	MetricsNamespace = "restclient"

	// MetricsSubsystem groups transport collectors.
	MetricsSubsystem = "http"
)

// CLI configuration.
const (
	// EnvPrefix is the prefix for environment variables read by the CLI.
	EnvPrefix = "RESTC"

	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".restc"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the config file format.
	ConfigFileType = "yml"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"
)
