//go:build integration
// +build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	BaseURL   string
	Resource  string
	RestcPath string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	resource := os.Getenv("RESTC_TEST_RESOURCE")
	if resource == "" {
		resource = "posts"
	}

	return &TestConfig{
		BaseURL:   os.Getenv("RESTC_TEST_BASE_URL"),
		Resource:  resource,
		RestcPath: getRestcPath(),
		Verbose:   os.Getenv("RESTC_VERBOSE") == "true",
	}
}

// getRestcPath determines the path to the restc binary
func getRestcPath() string {
	if path := os.Getenv("RESTC_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../restc",
		"./restc",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "restc"
}

// SkipIfMissingConfig skips test if no API is configured
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.BaseURL == "" {
		t.Skip("RESTC_TEST_BASE_URL not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips test if the restc binary cannot be found
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	if _, err := exec.LookPath(config.RestcPath); err != nil {
		t.Skipf("restc binary not found at %s, skipping integration test", config.RestcPath)
	}
}

// CommandRunner runs the restc binary against the configured API
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

// Run executes restc with the base URL and JSON output preset
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	fullArgs := append([]string{"--base-url", runner.config.BaseURL, "--output", "json"}, args...)
	if runner.config.Verbose {
		fullArgs = append(fullArgs, "--verbose")
		runner.t.Logf("Running: %s %v", runner.config.RestcPath, fullArgs)
	}

	cmd := exec.Command(runner.config.RestcPath, fullArgs...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()

	return outBuf.String(), errBuf.String(), err
}

// GenerateTestName generates a unique test name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}
