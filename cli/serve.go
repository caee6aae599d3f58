package cli

import (
	"context"
	"fmt"
	"lightningbowl-sync/config/setup"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and the startup sync",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := appConfig()
	l := appLogger()

	db, err := setup.InitDatabase(cfg.DBPath, l)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	application, err := setup.InitApp(ctx, cfg, db, l)
	if err != nil {
		db.Close()
		return err
	}
	setup.Start(ctx, application, l)

	fiberApp := setup.NewFiberApp(cfg, l)
	setup.ApplyMiddleware(fiberApp, cfg, l)
	setup.RegisterRoutes(fiberApp, application)

	l.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	errCh := make(chan error, 1)
	go func() {
		errCh <- fiberApp.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		setup.Shutdown(application.SyncWorker, db, l)
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	l.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		l.Error("server forced to shutdown", "error", err)
	}

	setup.Shutdown(application.SyncWorker, db, l)
	l.Info("server stopped")
	return nil
}
