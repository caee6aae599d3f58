package services

import (
	"context"
	"errors"
	"fmt"
	"lightningbowl-sync/models"
	"lightningbowl-sync/notify"
	"lightningbowl-sync/pkg/observable"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Busy states shared by sync and disconnect. Only one of them runs at a time.
const (
	stateIdle int32 = iota
	stateSyncing
	stateDisconnecting
)

// CallbackStatusSuccess is the status value the backend sends after a completed OAuth flow.
const CallbackStatusSuccess = "success"

// CloudSyncService decides when a sync happens and owns every state
// transition that follows from it.
type CloudSyncService struct {
	settings  SettingsStore
	backend   Backend
	artifacts ArtifactGenerator
	uploads   UploadRegistry
	games     GameSource
	notifier  notify.Notifier

	status      *observable.Value[models.SyncStatus]
	busy        atomic.Int32
	initialized chan struct{}
	initOnce    sync.Once

	now    func() time.Time
	logger *slog.Logger
}

func NewCloudSyncService(
	settings SettingsStore,
	backend Backend,
	artifacts ArtifactGenerator,
	uploads UploadRegistry,
	games GameSource,
	notifier notify.Notifier,
	logger *slog.Logger,
) *CloudSyncService {
	return &CloudSyncService{
		settings:    settings,
		backend:     backend,
		artifacts:   artifacts,
		uploads:     uploads,
		games:       games,
		notifier:    notifier,
		status:      observable.New(models.SyncStatus{}),
		initialized: make(chan struct{}),
		now:         time.Now,
		logger:      logger.With("component", "cloud_sync"),
	}
}

// ==================== STATE ====================

// Settings returns the current sync settings.
func (s *CloudSyncService) Settings() models.SyncSettings {
	return s.settings.Get()
}

// Status returns the current status snapshot.
func (s *CloudSyncService) Status() models.SyncStatus {
	return s.status.Get()
}

// SubscribeStatus streams status snapshots until cancel is called.
func (s *CloudSyncService) SubscribeStatus() (<-chan models.SyncStatus, func()) {
	return s.status.Subscribe()
}

// Initialized is closed once Init has finished, successfully or not.
func (s *CloudSyncService) Initialized() <-chan struct{} {
	return s.initialized
}

// reflectSettings copies the settings-derived fields into the status.
func reflectSettings(st models.SyncStatus, settings models.SyncSettings) models.SyncStatus {
	st.IsAuthenticated = settings.ConnectedProvider != ""
	st.IsConfigured = settings.IsConfigured()
	st.LastSync = models.MillisToTime(settings.LastSyncDate)
	st.NextSync = models.MillisToTime(settings.NextSyncDate)
	return st
}

func (s *CloudSyncService) publish(settings models.SyncSettings, fn func(models.SyncStatus) models.SyncStatus) {
	s.status.Update(func(st models.SyncStatus) models.SyncStatus {
		st = reflectSettings(st, settings)
		if fn != nil {
			st = fn(st)
		}
		return st
	})
}

func (s *CloudSyncService) setError(msg string) {
	s.status.Update(func(st models.SyncStatus) models.SyncStatus {
		st.Error = msg
		return st
	})
}

// ==================== LIFECYCLE ====================

// Init loads the stored settings and runs the startup check. The
// initialization barrier is released when it returns.
func (s *CloudSyncService) Init(ctx context.Context) error {
	defer s.initOnce.Do(func() { close(s.initialized) })

	settings, err := s.settings.Load(ctx)
	s.publish(settings, nil)
	if err != nil {
		return err
	}

	if err := s.CheckAndSyncOnStartup(ctx); err != nil {
		s.logger.Error("automatic sync on startup failed", "error", err)
	}
	return nil
}

// CheckAndSyncOnStartup syncs when the configured frequency has elapsed since
// the last sync. A connection that never synced is due once its stored
// nextSyncDate has passed. The sync waits for the game history to load.
func (s *CloudSyncService) CheckAndSyncOnStartup(ctx context.Context) error {
	settings := s.settings.Get()
	if !settings.IsConfigured() {
		return nil
	}

	now := s.now().UnixMilli()
	due := models.ShouldSyncNow(settings.LastSyncDate, settings.Frequency, now)
	if settings.LastSyncDate == 0 && settings.NextSyncDate != 0 && now >= settings.NextSyncDate {
		due = true
	}
	if !due {
		s.logger.Debug("startup sync not due", "frequency", settings.Frequency, "last_sync", settings.LastSyncDate)
		return nil
	}

	select {
	case <-s.games.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	return s.SyncNow(ctx)
}

// ==================== SETTINGS ====================

// UpdateSettings merges patch into the settings. A frequency change
// recomputes nextSyncDate and syncs immediately if that date already passed.
func (s *CloudSyncService) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.SyncSettings, error) {
	current := s.settings.Get()

	// a cached Drive folder ID belongs to the old path
	if patch.FolderPath != nil && *patch.FolderPath != current.FolderPath && patch.FolderID == nil {
		cleared := ""
		patch.FolderID = &cleared
	}

	if patch.Frequency != nil {
		now := s.now().UnixMilli()
		from := current.LastSyncDate
		if from == 0 {
			from = now
		}
		next := models.CalculateNextSync(*patch.Frequency, from)

		if next < now {
			updated, err := s.settings.Apply(ctx, patch)
			if err != nil {
				return current, err
			}
			s.publish(updated, nil)

			if err := s.SyncNow(ctx); err != nil {
				s.logger.Warn("automatic sync after frequency change failed", "error", err)
				fallback := models.CalculateNextSync(*patch.Frequency, now)
				updated, err = s.settings.Apply(ctx, models.SettingsPatch{NextSyncDate: &fallback})
				s.publish(updated, nil)
				return updated, err
			}
			return s.settings.Get(), nil
		}

		patch.NextSyncDate = &next
	}

	updated, err := s.settings.Apply(ctx, patch)
	if err != nil {
		return current, err
	}
	s.publish(updated, nil)
	return updated, nil
}

// ==================== SYNC ====================

// SyncNow uploads a fresh artifact to the connected provider. It returns
// nil without doing anything while another sync or a disconnect is running.
func (s *CloudSyncService) SyncNow(ctx context.Context) error {
	if !s.busy.CompareAndSwap(stateIdle, stateSyncing) {
		s.logger.Debug("sync skipped, another operation is in progress")
		return nil
	}
	defer s.busy.Store(stateIdle)

	settings := s.settings.Get()
	if !settings.IsConfigured() {
		return ErrNotConfigured
	}

	logger := s.logger.With("sync_id", uuid.NewString(), "provider", settings.ConnectedProvider)
	logger.Info("sync started")
	started := s.now()

	s.status.Update(func(st models.SyncStatus) models.SyncStatus {
		st.SyncInProgress = true
		st.Error = ""
		return st
	})

	updated, err := s.runSync(ctx, settings)
	if err != nil {
		logger.Error("sync failed", "error", err)
		s.status.Update(func(st models.SyncStatus) models.SyncStatus {
			st.SyncInProgress = false
			st.Error = err.Error()
			return st
		})
		s.notifier.Notify("Sync failed. "+err.Error(), notify.IconBug, true)
		return err
	}

	s.publish(updated, func(st models.SyncStatus) models.SyncStatus {
		st.SyncInProgress = false
		return st
	})
	logger.Info("sync completed", "duration", s.now().Sub(started))
	s.notifier.Notify("Excel file synced to cloud successfully!", notify.IconCheckmark, false)
	return nil
}

func (s *CloudSyncService) runSync(ctx context.Context, settings models.SyncSettings) (models.SyncSettings, error) {
	provider := settings.ConnectedProvider

	token, err := s.backend.AccessToken(ctx, provider)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			s.clearConnection(ctx)
		}
		return settings, err
	}

	content, err := s.artifacts.Generate(ctx)
	if err != nil {
		return settings, err
	}

	folderID, err := s.uploads.Upload(ctx, provider, content, token.AccessToken, settings)
	if err != nil {
		return settings, err
	}

	now := s.now().UnixMilli()
	next := models.CalculateNextSync(settings.Frequency, now)
	patch := models.SettingsPatch{
		LastSyncDate: &now,
		NextSyncDate: &next,
	}
	if folderID != "" && folderID != settings.FolderID {
		patch.FolderID = &folderID
	}

	updated, err := s.settings.Apply(ctx, patch)
	if err != nil {
		return settings, fmt.Errorf("record sync: %w", err)
	}
	return updated, nil
}

// clearConnection drops the local connection after the backend reported
// that it holds no credentials.
func (s *CloudSyncService) clearConnection(ctx context.Context) {
	none := models.Provider("")
	disabled := false
	updated, err := s.settings.Apply(ctx, models.SettingsPatch{
		ConnectedProvider: &none,
		Enabled:           &disabled,
	})
	if err != nil {
		s.logger.Error("failed to clear connection", "error", err)
		return
	}
	s.publish(updated, nil)
}

// ==================== AUTH ====================

// AuthenticateWithProvider returns the backend URL the browser must navigate to.
// The outcome arrives later through HandleAuthCallback.
func (s *CloudSyncService) AuthenticateWithProvider(provider models.Provider) (string, error) {
	s.setError("")

	startURL, err := s.backend.StartURL(provider)
	if err != nil {
		s.setError(err.Error())
		s.notifier.Notify(ErrAuthFailed.Error(), notify.IconBug, true)
		return "", err
	}
	return startURL, nil
}

// HandleAuthCallback records the outcome of an OAuth flow once Init has
// finished. Cancelling ctx does not abort the call: the backend already holds
// the credentials, so the outcome is always applied.
func (s *CloudSyncService) HandleAuthCallback(ctx context.Context, provider models.Provider, status, errMsg string) error {
	<-s.initialized

	if status != CallbackStatusSuccess {
		if errMsg == "" {
			errMsg = ErrAuthFailed.Error()
		}
		return s.authFailed(errMsg)
	}
	if !provider.Valid() {
		return s.authFailed(fmt.Sprintf("%s: %s", ErrUnsupportedProvider, provider))
	}

	writeCtx := context.WithoutCancel(ctx)
	current := s.settings.Get()
	enabled := true
	var never int64
	next := models.CalculateNextSync(current.Frequency, s.now().UnixMilli())

	updated, err := s.settings.Apply(writeCtx, models.SettingsPatch{
		Provider:          &provider,
		ConnectedProvider: &provider,
		Enabled:           &enabled,
		LastSyncDate:      &never,
		NextSyncDate:      &next,
	})
	if err != nil {
		return s.authFailed(err.Error())
	}

	s.publish(updated, func(st models.SyncStatus) models.SyncStatus {
		st.Error = ""
		return st
	})
	s.logger.Info("provider connected", "provider", provider)
	s.notifier.Notify(provider.DisplayName()+" connected successfully!", notify.IconCheckmarkCircle, false)
	return nil
}

func (s *CloudSyncService) authFailed(msg string) error {
	s.setError(msg)
	s.notifier.Notify("Authentication failed: "+msg, notify.IconBug, true)
	return fmt.Errorf("%w: %s", ErrAuthFailed, msg)
}

// Disconnect revokes the backend credentials and clears the local connection.
// Local state is only cleared when the backend confirms the revoke.
func (s *CloudSyncService) Disconnect(ctx context.Context) error {
	settings := s.settings.Get()
	if settings.ConnectedProvider == "" {
		return nil
	}
	if !s.busy.CompareAndSwap(stateIdle, stateDisconnecting) {
		s.logger.Debug("disconnect skipped, another operation is in progress")
		return nil
	}
	defer s.busy.Store(stateIdle)

	s.status.Update(func(st models.SyncStatus) models.SyncStatus {
		st.DisconnectInProgress = true
		st.Error = ""
		return st
	})

	updated, err := s.disconnect(ctx, settings.ConnectedProvider)
	if err != nil {
		s.logger.Warn("disconnect failed", "provider", settings.ConnectedProvider, "error", err)
		s.status.Update(func(st models.SyncStatus) models.SyncStatus {
			st.DisconnectInProgress = false
			st.Error = err.Error()
			return st
		})
		s.notifier.Notify("Disconnecting failed, try again.", notify.IconBug, true)
		return err
	}

	s.publish(updated, func(st models.SyncStatus) models.SyncStatus {
		st.DisconnectInProgress = false
		st.Error = ""
		return st
	})
	s.notifier.Notify("Cloud sync disconnected", notify.IconCheckmark, false)
	return nil
}

func (s *CloudSyncService) disconnect(ctx context.Context, provider models.Provider) (models.SyncSettings, error) {
	if err := s.backend.Disconnect(ctx, provider); err != nil {
		return models.SyncSettings{}, err
	}

	disabled := false
	none := models.Provider("")
	var zero int64
	noFolder := ""
	return s.settings.Apply(ctx, models.SettingsPatch{
		Enabled:           &disabled,
		ConnectedProvider: &none,
		LastSyncDate:      &zero,
		NextSyncDate:      &zero,
		FolderID:          &noFolder,
	})
}
