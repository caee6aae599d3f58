package app

import (
	"lightningbowl-sync/config"
	"lightningbowl-sync/database"
	"lightningbowl-sync/games"
	"lightningbowl-sync/notify"
	"lightningbowl-sync/services"
	"lightningbowl-sync/session"
	"lightningbowl-sync/settings"
	"lightningbowl-sync/sync"
	"lightningbowl-sync/validator"
	"log/slog"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Config        *config.Config
	Repo          *database.Repository
	Settings      *settings.Store
	Jar           *session.Jar
	Games         *games.Store
	Excel         *services.ExcelService
	CloudSync     *services.CloudSyncService
	Notifications *notify.Feed
	SyncWorker    *sync.Worker
	Validator     *validator.Validator
	Logger        *slog.Logger
}

// Deps are the collaborators New wires into an App.
type Deps struct {
	Config        *config.Config
	Repo          *database.Repository
	Settings      *settings.Store
	Jar           *session.Jar
	Games         *games.Store
	Excel         *services.ExcelService
	CloudSync     *services.CloudSyncService
	Notifications *notify.Feed
	SyncWorker    *sync.Worker
}

// New creates a new App instance with all dependencies
func New(deps Deps, logger *slog.Logger) *App {
	return &App{
		Config:        deps.Config,
		Repo:          deps.Repo,
		Settings:      deps.Settings,
		Jar:           deps.Jar,
		Games:         deps.Games,
		Excel:         deps.Excel,
		CloudSync:     deps.CloudSync,
		Notifications: deps.Notifications,
		SyncWorker:    deps.SyncWorker,
		Validator:     validator.New(),
		Logger:        logger,
	}
}
