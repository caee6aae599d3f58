package storage

import (
	"context"
	"lightningbowl-sync/dropbox"
	"lightningbowl-sync/models"
)

type DropboxProvider struct {
	client *dropbox.Client
}

func NewDropboxProvider(client *dropbox.Client) *DropboxProvider {
	return &DropboxProvider{client: client}
}

func (d *DropboxProvider) Provider() models.Provider {
	return models.ProviderDropbox
}

func (d *DropboxProvider) Upload(ctx context.Context, req UploadRequest) (string, error) {
	if err := d.client.Upload(ctx, req.AccessToken, req.Settings.Folder(), req.FileName, req.Content); err != nil {
		return "", &ProviderError{
			Provider: models.ProviderDropbox,
			Message:  err.Error(),
			Err:      err,
		}
	}
	return "", nil
}
