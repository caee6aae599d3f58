package storage

import (
	"context"
	"errors"
	"lightningbowl-sync/models"
	"lightningbowl-sync/onedrive"
)

// OneDriveProvider PUTs the artifact to a path-addressed Graph endpoint.
type OneDriveProvider struct {
	client *onedrive.Client
}

func NewOneDriveProvider(client *onedrive.Client) *OneDriveProvider {
	return &OneDriveProvider{client: client}
}

func (o *OneDriveProvider) Provider() models.Provider {
	return models.ProviderOneDrive
}

func (o *OneDriveProvider) Upload(ctx context.Context, req UploadRequest) (string, error) {
	err := o.client.Upload(ctx, req.AccessToken, req.Settings.Folder(), req.FileName, XLSXMimeType, req.Content)
	if err == nil {
		return "", nil
	}

	provErr := &ProviderError{
		Provider: models.ProviderOneDrive,
		Message:  "Failed to upload to OneDrive",
		Err:      err,
	}
	var apiErr *onedrive.APIError
	if errors.As(err, &apiErr) {
		provErr.StatusCode = apiErr.StatusCode
		provErr.RetryAfter = apiErr.RetryAfter
		provErr.Message = apiErr.Message
	}
	return "", provErr
}
