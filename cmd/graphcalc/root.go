package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/graphcalc/internal/config"
)

var (
	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "graphcalc",
	Short: "Expression plotting and financial calculator kernel",
	Long: `graphcalc parses single-variable expressions and samples them for
plotting, finds internal rates of return by Newton-Raphson iteration, and
prices European options with the standard normal CDF.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := config.LogConfig{Level: logLevel, Format: logFormat}.NewLogger(os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (.yaml, .yml, or .toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
}

// loadConfig loads the file named by --config, or the defaults if none was
// given.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		cfg := config.Default()
		if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
			return nil, err
		}
		return cfg, config.Validate(cfg)
	}
	return config.Load(cfgFile)
}
