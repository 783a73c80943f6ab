package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/restclient/internal/constants"
	"github.com/fivetwenty-io/restclient/internal/logging"
	"github.com/fivetwenty-io/restclient/pkg/restclient"
)

// Viper keys shared by the commands and main.
const (
	KeyBaseURL   = "base_url"
	KeyURLsOnly  = "urls_only"
	KeyOutput    = "output"
	KeyVerbose   = "verbose"
	KeyUserAgent = "user_agent"
	KeyTimeout   = "timeout"
	KeyRetryMax  = "retry_max"
	KeyFail      = "fail"
)

// shownHeaders are the response headers rendered by the CLI.
var shownHeaders = []string{"Content-Type", "Content-Length", "Location", "X-Request-Id"}

// ResponseView is the rendered form of a Result.
type ResponseView struct {
	Method     string            `json:"method"                yaml:"method"`
	URL        string            `json:"url"                   yaml:"url"`
	Status     string            `json:"status,omitempty"      yaml:"status,omitempty"`
	StatusCode int               `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"     yaml:"headers,omitempty"`
	Body       interface{}       `json:"body,omitempty"        yaml:"body,omitempty"`
	DryRun     bool              `json:"dry_run,omitempty"     yaml:"dry_run,omitempty"`
}

// CreateClient builds a RestClient from the merged flag, env and file config.
func CreateClient() (*restclient.RestClient, error) {
	baseURL := viper.GetString(KeyBaseURL)
	if baseURL == "" {
		return nil, constants.ErrBaseURLRequired
	}

	config := &restclient.Config{
		BaseURL:   normalizeBaseURL(baseURL),
		URLsOnly:  viper.GetBool(KeyURLsOnly),
		UserAgent: viper.GetString(KeyUserAgent),
		Timeout:   viper.GetDuration(KeyTimeout),
		RetryMax:  viper.GetInt(KeyRetryMax),
	}

	if viper.GetBool(KeyVerbose) {
		config.Logger = logging.NewConsoleLogger(os.Stderr, true)
		config.Debug = true
	}

	client, err := restclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// normalizeBaseURL defaults bare hosts to https.
func normalizeBaseURL(baseURL string) string {
	if strings.Contains(baseURL, "://") || strings.HasPrefix(baseURL, "/") {
		return baseURL
	}

	return "https://" + baseURL
}

// parseParams turns repeated key=value flags into query values.
func parseParams(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	values := url.Values{}

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidParamFormat, pair)
		}

		values.Add(key, value)
	}

	return values, nil
}

// buildBody returns the payload for --data pairs (form encoded) or a --json
// document. Both being empty yields a nil payload.
func buildBody(dataPairs []string, jsonBody string) (interface{}, error) {
	if len(dataPairs) > 0 && jsonBody != "" {
		return nil, constants.ErrDataAndJSONExclusive
	}

	if jsonBody != "" {
		if !json.Valid([]byte(jsonBody)) {
			return nil, constants.ErrInvalidJSONBody
		}

		return json.RawMessage(jsonBody), nil
	}

	if len(dataPairs) == 0 {
		return nil, nil
	}

	return parseParams(dataPairs)
}

// outputFormat resolves --output, defaulting to a table on a terminal and
// JSON otherwise.
func outputFormat() string {
	if format := viper.GetString(KeyOutput); format != "" {
		return format
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return constants.FormatTable
	}

	return constants.FormatJSON
}

// newResponseView reads and closes the response body.
func newResponseView(method string, result *restclient.Result) (*ResponseView, error) {
	view := &ResponseView{Method: method, URL: result.URL, DryRun: result.DryRun()}
	if result.Response == nil {
		return view, nil
	}

	defer func() { _ = result.Response.Body.Close() }()

	view.Status = result.Response.Status
	view.StatusCode = result.Response.StatusCode
	view.Headers = map[string]string{}

	for _, name := range shownHeaders {
		if value := result.Response.Header.Get(name); value != "" {
			view.Headers[name] = value
		}
	}

	raw, err := io.ReadAll(result.Response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if len(raw) == 0 {
		return view, nil
	}

	var decoded interface{}
	if json.Unmarshal(raw, &decoded) == nil {
		view.Body = decoded
	} else {
		view.Body = string(raw)
	}

	return view, nil
}

// renderResult writes result to the command output in the selected format.
// With --fail a response status of 400 or above becomes an error.
func renderResult(cmd *cobra.Command, method string, result *restclient.Result) error {
	view, err := newResponseView(method, result)
	if err != nil {
		return err
	}

	err = renderView(cmd.OutOrStdout(), view, outputFormat())
	if err != nil {
		return err
	}

	if viper.GetBool(KeyFail) && view.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: %s %s returned %s", constants.ErrRequestFailed, method, view.URL, view.Status)
	}

	return nil
}

func renderView(out io.Writer, view *ResponseView, format string) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err := encoder.Encode(view)
		if err != nil {
			return fmt.Errorf("failed to encode response as JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(constants.JSONIndentSize)

		err := encoder.Encode(view)
		if err != nil {
			return fmt.Errorf("failed to encode response as YAML: %w", err)
		}

		return nil
	case constants.FormatTable:
		return renderViewTable(out, view)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, format)
	}
}

// renderViewTable prints a property table followed by the body. A dry-run
// view has no response, so only its URL is printed.
func renderViewTable(out io.Writer, view *ResponseView) error {
	if view.DryRun {
		_, err := fmt.Fprintln(out, view.URL)
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")
	_ = table.Append("Method", view.Method)
	_ = table.Append("URL", view.URL)
	_ = table.Append("Status", view.Status)

	names := make([]string, 0, len(view.Headers))
	for name := range view.Headers {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		_ = table.Append(name, view.Headers[name])
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if view.Body == nil {
		return nil
	}

	body, err := json.MarshalIndent(view.Body, "", strings.Repeat(" ", constants.JSONIndentSize))
	if err != nil {
		return fmt.Errorf("failed to encode response body: %w", err)
	}

	if text, ok := view.Body.(string); ok {
		body = []byte(text)
	}

	_, err = fmt.Fprintln(out, string(body))
	if err != nil {
		return fmt.Errorf("writing response body: %w", err)
	}

	return nil
}
