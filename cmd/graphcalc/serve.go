package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/graphcalc/internal/config"
	"github.com/zephyrtronium/graphcalc/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve expression evaluation, sampling, IRR, CDF, and option pricing over
HTTP. With --config, the file is watched and changes are applied without a
restart, except for the listen address and timeouts.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Flags given explicitly override the file.
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.New(cfg, logger)
	if cfgFile != "" {
		go func() {
			err := config.Watch(ctx, cfgFile, logger, s.Reload)
			if err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}
	return s.Start(ctx)
}
