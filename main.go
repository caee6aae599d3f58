package main

import (
	"lightningbowl-sync/cli"
	"lightningbowl-sync/config"
	"log/slog"
	"os"
)

func main() {
	config.Load()

	logger := setupLogger()
	slog.SetDefault(logger)

	if err := cli.Execute(logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger() *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: config.AppConfig.Env == "development",
	}

	// stderr keeps command output on stdout clean
	if config.AppConfig.Env == "production" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func getLogLevel() slog.Level {
	switch config.AppConfig.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
