package setup

import (
	"context"
	"lightningbowl-sync/app"
	"lightningbowl-sync/config"
	"lightningbowl-sync/database"
	"lightningbowl-sync/dropbox"
	"lightningbowl-sync/games"
	"lightningbowl-sync/notify"
	"lightningbowl-sync/onedrive"
	"lightningbowl-sync/services"
	"lightningbowl-sync/session"
	"lightningbowl-sync/settings"
	"lightningbowl-sync/storage"
	"lightningbowl-sync/sync"
	"log/slog"
)

const notificationHistory = 50

// InitDatabase initializes the SQLite database and runs migrations
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath)
	return db, nil
}

// InitApp wires every component. Nothing is started yet; see Start.
func InitApp(ctx context.Context, cfg *config.Config, db *database.DB, logger *slog.Logger) (*app.App, error) {
	repo := database.NewRepository(db)

	// Backend session cookies survive restarts
	jar := session.NewJar(repo, logger)
	if err := jar.Load(ctx); err != nil {
		return nil, err
	}

	settingsStore := settings.NewStore(repo, logger)
	gameStore := games.NewStore(repo, logger)
	auth := services.NewAuthService(cfg.AuthBackendURL, cfg.AppOrigin, jar, logger)

	registry := storage.NewRegistry(cfg.ProviderRateLimit,
		storage.NewDriveProvider(),
		storage.NewOneDriveProvider(onedrive.NewClient("", nil)),
		storage.NewDropboxProvider(dropbox.NewClient()),
	)
	logger.Info("upload providers registered", "rate_limit", cfg.ProviderRateLimit)

	excel := services.NewExcelService(gameStore, gameStore, logger)
	feed := notify.NewFeed(notificationHistory, logger)
	cloudSync := services.NewCloudSyncService(settingsStore, auth, excel, registry, gameStore, feed, logger)
	worker := sync.NewWorker(gameStore, cloudSync, logger)

	application := app.New(app.Deps{
		Config:        cfg,
		Repo:          repo,
		Settings:      settingsStore,
		Jar:           jar,
		Games:         gameStore,
		Excel:         excel,
		CloudSync:     cloudSync,
		Notifications: feed,
		SyncWorker:    worker,
	}, logger)
	logger.Info("application initialized with dependency injection")

	return application, nil
}

// Start launches the background routines: cookie cleanup and the startup
// worker that loads games and initializes cloud sync.
func Start(ctx context.Context, application *app.App, logger *slog.Logger) {
	application.Jar.StartCleanupRoutine(ctx)
	logger.Info("cookie cleanup routine started")

	application.SyncWorker.Start(ctx)
	logger.Info("sync worker started")
}

// Shutdown performs graceful shutdown of all services
func Shutdown(syncWorker *sync.Worker, db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if syncWorker != nil {
		syncWorker.Stop()
		logger.Info("sync worker stopped")
	}

	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}
