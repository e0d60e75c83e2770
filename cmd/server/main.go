package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"parley/config"
	"parley/internal/di"
)

var (
	flagStorage  string
	flagDataDir  string
	flagLogLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parley",
		Short: "Messaging-core backend: users, channels, messages, read receipts",
		RunE:  run,

		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&flagStorage, "storage", "", "storage backend: memory, file or badger (default from PARLEY_STORAGE)")
	rootCmd.Flags().StringVar(&flagDataDir, "data-dir", "", "root directory for durable storage (default from PARLEY_DATA_DIR)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("starting parley core", "storage", cfg.Storage, "data_dir", cfg.DataDir)

	app, cleanup, err := di.InitializeApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer cleanup()

	return bootstrap(cmd.Context(), app, logger)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if flagStorage != "" {
		cfg.Storage = flagStorage
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
