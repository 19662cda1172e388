package main

import (
	"github.com/spf13/cobra"

	"ptest/internal/config"
	"ptest/internal/logging"
	"ptest/internal/version"
)

var (
	// configFlag is the CLI --config flag value
	configFlag string
	// logFormatFlag overrides the configured log format
	logFormatFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ptest",
	Short: "ptest - partial test selection",
	Long: `ptest identifies which test files need to be run for a given change set,
using coverage data recorded by earlier full builds. Running only the
affected tests keeps CI feedback fast; whenever a change cannot be reasoned
about incrementally, ptest falls back to requiring the full suite.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("ptest version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default: ~/"+config.ConfigFileName+".yaml)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn or error")
}

// loadConfig loads the effective configuration for a command
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}
	if logFormatFlag != "" {
		cfg.Logging.Format = logFormatFlag
	}
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}
	return cfg, nil
}

// newLogger builds the process logger from the effective configuration
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}
