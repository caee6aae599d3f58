package storage

import (
	"context"
	"errors"
	"lightningbowl-sync/drive"
	"lightningbowl-sync/models"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveProvider uploads into a Google Drive folder resolved by name and cached by ID.
type DriveProvider struct {
	opts []option.ClientOption
}

// NewDriveProvider accepts extra client options, which tests use to redirect the endpoint.
func NewDriveProvider(opts ...option.ClientOption) *DriveProvider {
	return &DriveProvider{opts: opts}
}

func (d *DriveProvider) Provider() models.Provider {
	return models.ProviderGoogleDrive
}

func (d *DriveProvider) Upload(ctx context.Context, req UploadRequest) (string, error) {
	service, err := drive.NewService(ctx, req.AccessToken, d.opts...)
	if err != nil {
		return "", err
	}

	folderID, err := service.UploadToFolder(ctx, req.Settings.Folder(), req.Settings.FolderID, req.FileName, XLSXMimeType, req.Content)
	if err != nil {
		return "", driveError(err)
	}
	return folderID, nil
}

func driveError(err error) error {
	provErr := &ProviderError{
		Provider: models.ProviderGoogleDrive,
		Message:  "Failed to upload to Google Drive",
		Err:      err,
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		provErr.StatusCode = apiErr.Code
		provErr.RetryAfter = apiErr.Header.Get("Retry-After")
		if apiErr.Message != "" {
			provErr.Message = apiErr.Message
		}
	}
	return provErr
}
