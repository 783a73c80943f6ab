package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/restclient/cmd/restc/commands"
	"github.com/fivetwenty-io/restclient/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "restc",
	Short: "Generic REST API CLI",
	Long: `A command-line interface for REST APIs that follow the
collection/item URL convention.

Resources are addressed by name relative to the base URL. With --urls-only
no request is sent and the target URL is printed instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.restc/config.yml)")
	flags.StringP("base-url", "b", "", "base URL of the API")
	flags.Bool("urls-only", false, "print target URLs instead of sending requests")
	flags.String("output", "", "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log requests and responses to stderr")
	flags.String("user-agent", "", "User-Agent header value")
	flags.Duration("timeout", constants.DefaultHTTPTimeout, "request timeout")
	flags.Int("retry-max", constants.DefaultRetryMax, "retries on connection errors and 5xx responses")
	flags.Bool("fail", false, "exit with an error on 4xx and 5xx responses")

	// Bind flags to viper
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag(commands.KeyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(commands.KeyURLsOnly, flags.Lookup("urls-only"))
	_ = viper.BindPFlag(commands.KeyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(commands.KeyVerbose, flags.Lookup("verbose"))
	_ = viper.BindPFlag(commands.KeyUserAgent, flags.Lookup("user-agent"))
	_ = viper.BindPFlag(commands.KeyTimeout, flags.Lookup("timeout"))
	_ = viper.BindPFlag(commands.KeyRetryMax, flags.Lookup("retry-max"))
	_ = viper.BindPFlag(commands.KeyFail, flags.Lookup("fail"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewURLCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewRetrieveCommand())
	rootCmd.AddCommand(commands.NewUpdateCommand())
	rootCmd.AddCommand(commands.NewPartialUpdateCommand())
	rootCmd.AddCommand(commands.NewDestroyCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.restc/config.yml
		viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		viper.SetConfigType(constants.ConfigFileType)
		viper.SetConfigName(constants.ConfigFileName)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool(commands.KeyVerbose) {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
