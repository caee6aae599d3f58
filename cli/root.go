// Package cli holds the lightningbowl-sync commands.
package cli

import (
	"context"
	"fmt"
	"lightningbowl-sync/app"
	"lightningbowl-sync/config"
	"lightningbowl-sync/config/setup"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var (
	logger *slog.Logger
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "lightningbowl-sync",
	Short: "Keeps the Lightningbowl game history backed up to a cloud drive",
	Long: `lightningbowl-sync stores the bowling game history locally and uploads it
as a spreadsheet to Google Drive, OneDrive or Dropbox on a daily, weekly or
monthly schedule. Provider credentials stay with the OAuth backend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
}

// Execute runs the command named on the command line.
func Execute(l *slog.Logger) error {
	logger = l
	return rootCmd.ExecuteContext(context.Background())
}

func appConfig() *config.Config {
	if config.AppConfig == nil {
		config.Load()
	}
	cfg := *config.AppConfig
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return &cfg
}

func appLogger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// openApp wires the application for one-shot commands. Nothing runs in the
// background; call the returned func to close the database.
func openApp(ctx context.Context) (*app.App, func(), error) {
	cfg := appConfig()
	l := appLogger()

	db, err := setup.InitDatabase(cfg.DBPath, l)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	application, err := setup.InitApp(ctx, cfg, db, l)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return application, func() { db.Close() }, nil
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "never"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
