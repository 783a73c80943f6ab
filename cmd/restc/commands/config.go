package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/restclient/internal/constants"
)

// Config represents the persisted CLI configuration.
type Config struct {
	BaseURL   string `json:"base_url,omitempty"   yaml:"base_url,omitempty"`
	URLsOnly  bool   `json:"urls_only"            yaml:"urls_only,omitempty"`
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	Timeout   string `json:"timeout,omitempty"    yaml:"timeout,omitempty"`
	RetryMax  int    `json:"retry_max"            yaml:"retry_max,omitempty"`
	Output    string `json:"output,omitempty"     yaml:"output,omitempty"`
}

// configSetters validate a raw value and store it in the config.
var configSetters = map[string]func(*Config, string) error{
	KeyBaseURL: func(config *Config, value string) error {
		config.BaseURL = value

		return nil
	},
	KeyURLsOnly: func(config *Config, value string) error {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", KeyURLsOnly, err)
		}

		config.URLsOnly = parsed

		return nil
	},
	KeyUserAgent: func(config *Config, value string) error {
		config.UserAgent = value

		return nil
	},
	KeyTimeout: func(config *Config, value string) error {
		_, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", KeyTimeout, err)
		}

		config.Timeout = value

		return nil
	},
	KeyRetryMax: func(config *Config, value string) error {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", KeyRetryMax, err)
		}

		config.RetryMax = parsed

		return nil
	},
	KeyOutput: func(config *Config, value string) error {
		switch value {
		case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
			config.Output = value

			return nil
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, value)
		}
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and update the settings stored in the restc config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after merging flags, environment and config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayConfig(cmd.OutOrStdout(), loadConfig(), outputFormat())
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Persist a configuration value. Valid keys: " + strings.Join(configKeys(), ", "),
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			setter, ok := configSetters[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config, err := loadConfigFile()
			if err != nil {
				return err
			}

			err = setter(config, value)
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			viper.Set(key, value)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)
			if err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			return nil
		},
	}
}

func configKeys() []string {
	return []string{KeyBaseURL, KeyURLsOnly, KeyUserAgent, KeyTimeout, KeyRetryMax, KeyOutput}
}

func loadConfig() *Config {
	config := &Config{
		BaseURL:   viper.GetString(KeyBaseURL),
		URLsOnly:  viper.GetBool(KeyURLsOnly),
		UserAgent: viper.GetString(KeyUserAgent),
		RetryMax:  viper.GetInt(KeyRetryMax),
		Output:    viper.GetString(KeyOutput),
	}

	if timeout := viper.GetDuration(KeyTimeout); timeout > 0 {
		config.Timeout = timeout.String()
	}

	return config
}

// loadConfigFile reads only what is stored in the config file, leaving out
// flag defaults and environment overrides.
func loadConfigFile() (*Config, error) {
	configFile, err := configFilePath()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	// configFile is the viper config file or derived from the user home dir
	// #nosec G304
	data, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func displayConfig(out io.Writer, config *Config, format string) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err := encoder.Encode(config)
		if err != nil {
			return fmt.Errorf("failed to encode config as JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)

		err := encoder.Encode(config)
		if err != nil {
			return fmt.Errorf("failed to encode config as YAML: %w", err)
		}

		return nil
	default:
		table := tablewriter.NewWriter(out)
		table.Header("Property", "Value")
		_ = table.Append("Base URL", valueOrNA(config.BaseURL))
		_ = table.Append("URLs Only", strconv.FormatBool(config.URLsOnly))
		_ = table.Append("User Agent", valueOrNA(config.UserAgent))
		_ = table.Append("Timeout", valueOrNA(config.Timeout))
		_ = table.Append("Retry Max", strconv.Itoa(config.RetryMax))
		_ = table.Append("Output", valueOrNA(config.Output))

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// configFilePath returns the file in use, or the default location under $HOME.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
