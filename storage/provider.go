package storage

import (
	"context"
	"errors"
	"fmt"
	"lightningbowl-sync/models"
	"lightningbowl-sync/pkg/ratelimit"
	"net/http"
	"time"
)

// XLSXMimeType is the content type of every uploaded artifact.
const XLSXMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrUnsupportedProvider = errors.New("unsupported provider")

// UploadRequest carries everything a provider needs for one upload.
type UploadRequest struct {
	Content     []byte
	FileName    string
	AccessToken string
	Settings    models.SyncSettings
}

// Uploader is implemented once per cloud provider.
type Uploader interface {
	Provider() models.Provider

	// Upload stores the artifact and returns the provider's folder ID
	// when the provider addresses folders by ID, or "" otherwise.
	Upload(ctx context.Context, req UploadRequest) (string, error)
}

// ProviderError is a failed provider call with a message fit for the user.
type ProviderError struct {
	Provider   models.Provider
	StatusCode int
	RetryAfter string
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FileName returns the artifact name for the given day, e.g. game_data_05.03.2025.xlsx.
func FileName(t time.Time) string {
	return "game_data_" + t.Format("02.01.2006") + ".xlsx"
}

// Registry dispatches uploads to the uploader registered for a provider.
// Each provider gets its own rate limiter.
type Registry struct {
	uploaders map[models.Provider]Uploader
	limiters  map[models.Provider]*ratelimit.Limiter
	now       func() time.Time
}

func NewRegistry(rps float64, uploaders ...Uploader) *Registry {
	r := &Registry{
		uploaders: make(map[models.Provider]Uploader, len(uploaders)),
		limiters:  make(map[models.Provider]*ratelimit.Limiter, len(uploaders)),
		now:       time.Now,
	}
	for _, u := range uploaders {
		r.uploaders[u.Provider()] = u
		r.limiters[u.Provider()] = ratelimit.New(rps, 1)
	}
	return r
}

// Upload sends content to provider using accessToken and the destination from settings.
func (r *Registry) Upload(ctx context.Context, provider models.Provider, content []byte, accessToken string, settings models.SyncSettings) (string, error) {
	uploader, ok := r.uploaders[provider]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}

	limiter := r.limiters[provider]
	if err := limiter.Wait(ctx); err != nil {
		return "", err
	}

	folderID, err := uploader.Upload(ctx, UploadRequest{
		Content:     content,
		FileName:    FileName(r.now()),
		AccessToken: accessToken,
		Settings:    settings,
	})

	var provErr *ProviderError
	if errors.As(err, &provErr) && provErr.StatusCode == http.StatusTooManyRequests {
		limiter.Backoff(provErr.RetryAfter)
	}
	return folderID, err
}
