package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seqapi/internal/config"
	"seqapi/internal/logging"
	"seqapi/internal/version"
)

var (
	// configFile is the --config flag value
	configFile string
	// logLevelFlag and logFormatFlag override the configured logging
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "seqapi",
	Short: "seqapi - integer sequence HTTP service",
	Long: `seqapi serves the first N terms of the Fibonacci, Tribonacci, Lucas and Pell
sequences over HTTP, and can generate them locally from the command line.`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("seqapi version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default: ./seqapi.{toml,yaml,json} if present)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human, json")
}

// loadConfig resolves the effective configuration.
// Precedence: CLI flags > environment > config file > defaults
func loadConfig() (*config.LoadResult, error) {
	result, err := config.Load(config.LoadOptions{ConfigFile: configFile})
	if err != nil {
		return nil, err
	}

	if logLevelFlag != "" {
		result.Config.Logging.Level = logLevelFlag
	}
	if logFormatFlag != "" {
		result.Config.Logging.Format = logFormatFlag
	}
	return result, nil
}

// newLogger builds the process logger from the logging config
func newLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  level,
		Output: os.Stderr,
	}), nil
}

// outputFormatError reports an unsupported --format value
func outputFormatError(format string, allowed ...string) error {
	return fmt.Errorf("unsupported format %q (want one of %v)", format, allowed)
}
