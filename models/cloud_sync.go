package models

import "time"

type Provider string

const (
	ProviderGoogleDrive Provider = "google-drive"
	ProviderOneDrive    Provider = "onedrive"
	ProviderDropbox     Provider = "dropbox"
)

// Providers lists every supported provider in display order.
var Providers = []Provider{ProviderGoogleDrive, ProviderOneDrive, ProviderDropbox}

func (p Provider) Valid() bool {
	switch p {
	case ProviderGoogleDrive, ProviderOneDrive, ProviderDropbox:
		return true
	}
	return false
}

// DisplayName returns the user-facing name, or the raw identifier for unknown providers.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGoogleDrive:
		return "Google Drive"
	case ProviderOneDrive:
		return "OneDrive"
	case ProviderDropbox:
		return "Dropbox"
	default:
		return string(p)
	}
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// DefaultFolderPath is used when the user has not chosen a destination folder.
const DefaultFolderPath = "Lightningbowl Game-History"

// SyncSettings is persisted as a single JSON document under SettingsStorageKey.
// Timestamps are Unix milliseconds; zero means unset.
type SyncSettings struct {
	Enabled           bool      `json:"enabled"`
	Provider          Provider  `json:"provider"`
	Frequency         Frequency `json:"frequency"`
	LastSyncDate      int64     `json:"lastSyncDate,omitempty"`
	NextSyncDate      int64     `json:"nextSyncDate,omitempty"`
	ConnectedProvider Provider  `json:"connectedProvider,omitempty"`
	FolderPath        string    `json:"folderPath,omitempty"`
	FolderID          string    `json:"folderId,omitempty"`
}

const SettingsStorageKey = "cloud_sync_settings"

func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		Enabled:   false,
		Provider:  ProviderGoogleDrive,
		Frequency: FrequencyWeekly,
	}
}

// IsConfigured reports whether sync is switched on and backed by a completed OAuth connection.
func (s SyncSettings) IsConfigured() bool {
	return s.Enabled && s.ConnectedProvider != ""
}

// Folder returns the destination folder, falling back to DefaultFolderPath.
func (s SyncSettings) Folder() string {
	if s.FolderPath != "" {
		return s.FolderPath
	}
	return DefaultFolderPath
}

// SettingsPatch is a partial update. Nil fields are left untouched;
// a pointer to a zero value clears the field.
type SettingsPatch struct {
	Enabled           *bool      `json:"enabled,omitempty"`
	Provider          *Provider  `json:"provider,omitempty" validate:"omitempty,provider"`
	Frequency         *Frequency `json:"frequency,omitempty" validate:"omitempty,frequency"`
	FolderPath        *string    `json:"folderPath,omitempty" validate:"omitempty,max=255,folderpath"`
	LastSyncDate      *int64     `json:"-"`
	NextSyncDate      *int64     `json:"-"`
	ConnectedProvider *Provider  `json:"-"`
	FolderID          *string    `json:"-"`
}

// Apply returns a copy of s with the patch merged in.
func (p SettingsPatch) Apply(s SyncSettings) SyncSettings {
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.Provider != nil {
		s.Provider = *p.Provider
	}
	if p.Frequency != nil {
		s.Frequency = *p.Frequency
	}
	if p.FolderPath != nil {
		s.FolderPath = *p.FolderPath
	}
	if p.LastSyncDate != nil {
		s.LastSyncDate = *p.LastSyncDate
	}
	if p.NextSyncDate != nil {
		s.NextSyncDate = *p.NextSyncDate
	}
	if p.ConnectedProvider != nil {
		s.ConnectedProvider = *p.ConnectedProvider
	}
	if p.FolderID != nil {
		s.FolderID = *p.FolderID
	}
	return s
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p == SettingsPatch{}
}

// SyncStatus is the in-memory view of the sync subsystem. It is never persisted.
type SyncStatus struct {
	IsAuthenticated      bool       `json:"isAuthenticated"`
	IsConfigured         bool       `json:"isConfigured"`
	SyncInProgress       bool       `json:"syncInProgress"`
	DisconnectInProgress bool       `json:"disconnectInProgress"`
	LastSync             *time.Time `json:"lastSync,omitempty"`
	NextSync             *time.Time `json:"nextSync,omitempty"`
	Error                string     `json:"error,omitempty"`
}

// MillisToTime converts a stored timestamp, returning nil for zero.
func MillisToTime(ms int64) *time.Time {
	if ms == 0 {
		return nil
	}
	t := time.UnixMilli(ms)
	return &t
}
