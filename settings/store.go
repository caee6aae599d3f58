// Package settings persists the cloud-sync configuration and broadcasts every change.
package settings

import (
	"context"
	"fmt"
	"lightningbowl-sync/models"
	"lightningbowl-sync/pkg/observable"
	"log/slog"
	"sync"
)

// Repository is the key-value persistence the store writes through to.
type Repository interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
}

// Store is the single owner of SyncSettings. Writes are serialized, persisted,
// and only then published to subscribers.
type Store struct {
	repo   Repository
	value  *observable.Value[models.SyncSettings]
	writeM sync.Mutex
	logger *slog.Logger
}

func NewStore(repo Repository, logger *slog.Logger) *Store {
	return &Store{
		repo:   repo,
		value:  observable.New(models.DefaultSyncSettings()),
		logger: logger.With("component", "settings"),
	}
}

// Load reads the persisted settings, keeping the defaults when nothing is stored yet.
func (s *Store) Load(ctx context.Context) (models.SyncSettings, error) {
	s.writeM.Lock()
	defer s.writeM.Unlock()

	loaded := models.DefaultSyncSettings()
	found, err := s.repo.GetJSON(ctx, models.SettingsStorageKey, &loaded)
	if err != nil {
		return s.value.Get(), fmt.Errorf("load settings: %w", err)
	}
	if !found {
		s.logger.Debug("no stored settings, using defaults")
		return s.value.Get(), nil
	}

	s.value.Set(loaded)
	return loaded, nil
}

func (s *Store) Get() models.SyncSettings {
	return s.value.Get()
}

// Apply merges patch into the current settings and persists the result.
// On a persistence error the in-memory value is left unchanged.
func (s *Store) Apply(ctx context.Context, patch models.SettingsPatch) (models.SyncSettings, error) {
	s.writeM.Lock()
	defer s.writeM.Unlock()

	current := s.value.Get()
	if patch.IsEmpty() {
		return current, nil
	}

	updated := patch.Apply(current)
	if err := s.repo.SetJSON(ctx, models.SettingsStorageKey, updated); err != nil {
		return current, fmt.Errorf("save settings: %w", err)
	}

	s.value.Set(updated)
	return updated, nil
}

// Subscribe streams the current settings followed by every persisted change.
func (s *Store) Subscribe() (<-chan models.SyncSettings, func()) {
	return s.value.Subscribe()
}
