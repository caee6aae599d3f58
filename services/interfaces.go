package services

import (
	"context"
	"lightningbowl-sync/models"

	"golang.org/x/oauth2"
)

// SettingsStore owns the persisted sync settings
type SettingsStore interface {
	Load(ctx context.Context) (models.SyncSettings, error)
	Get() models.SyncSettings
	Apply(ctx context.Context, patch models.SettingsPatch) (models.SyncSettings, error)
}

// Backend is the OAuth backend that holds the long-lived provider credentials
type Backend interface {
	StartURL(provider models.Provider) (string, error)
	AccessToken(ctx context.Context, provider models.Provider) (*oauth2.Token, error)
	Disconnect(ctx context.Context, provider models.Provider) error
}

// ArtifactGenerator builds the spreadsheet that gets uploaded
type ArtifactGenerator interface {
	Generate(ctx context.Context) ([]byte, error)
}

// UploadRegistry dispatches an upload to the matching provider adapter
type UploadRegistry interface {
	Upload(ctx context.Context, provider models.Provider, content []byte, accessToken string, settings models.SyncSettings) (string, error)
}

// GameSource exposes the local game history and its initial-load barrier
type GameSource interface {
	All() []models.Game
	Ready() <-chan struct{}
}
