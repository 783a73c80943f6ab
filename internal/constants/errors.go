package constants

import "errors"

// CLI input errors.
var (
	ErrBaseURLRequired      = errors.New("no base URL configured, use --base-url or 'restc config set base_url <url>'")
	ErrInvalidParamFormat   = errors.New("invalid parameter format, expected key=value")
	ErrDataAndJSONExclusive = errors.New("--data and --json cannot be used together")
	ErrInvalidJSONBody      = errors.New("invalid JSON body")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrUnknownOutputFormat  = errors.New("unknown output format")
)

// Request errors.
var (
	ErrBodyRequired  = errors.New("a request body is required, use --data or --json")
	ErrRequestFailed = errors.New("request failed")
)
