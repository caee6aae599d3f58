package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Service is the main coordinator for Drive operations.
// It delegates to the folder and file managers.
type Service struct {
	client        *Client
	folderManager *FolderManager
	fileManager   *FileManager
}

func NewService(ctx context.Context, accessToken string, opts ...option.ClientOption) (*Service, error) {
	client, err := NewClient(ctx, accessToken, opts...)
	if err != nil {
		return nil, err
	}

	return &Service{
		client:        client,
		folderManager: NewFolderManager(client),
		fileManager:   NewFileManager(client),
	}, nil
}

// GetOrCreateFolder resolves a folder name to its ID.
func (s *Service) GetOrCreateFolder(ctx context.Context, name string) (string, error) {
	return s.folderManager.GetOrCreate(ctx, name)
}

// UploadToFolder uploads content into the folder and returns the folder ID it used.
// A cached folderID skips the lookup; if Drive no longer knows that ID the folder
// is resolved by name again and the upload retried once.
func (s *Service) UploadToFolder(ctx context.Context, folderName, folderID, fileName, mimeType string, content []byte) (string, error) {
	cached := folderID != ""
	if !cached {
		id, err := s.folderManager.GetOrCreate(ctx, folderName)
		if err != nil {
			return "", err
		}
		folderID = id
	}

	_, err := s.fileManager.Create(ctx, fileName, folderID, mimeType, bytes.NewReader(content))
	if err != nil && cached && IsNotFound(err) {
		id, lookupErr := s.folderManager.GetOrCreate(ctx, folderName)
		if lookupErr != nil {
			return "", lookupErr
		}
		folderID = id
		_, err = s.fileManager.Create(ctx, fileName, folderID, mimeType, bytes.NewReader(content))
	}
	if err != nil {
		return folderID, fmt.Errorf("upload file: %w", err)
	}

	return folderID, nil
}

// IsNotFound reports whether err is a Drive 404.
func IsNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
