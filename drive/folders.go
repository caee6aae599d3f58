package drive

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
)

const folderMimeType = "application/vnd.google-apps.folder"

// FolderManager handles folder operations in Google Drive
type FolderManager struct {
	client *Client
}

func NewFolderManager(client *Client) *FolderManager {
	return &FolderManager{client: client}
}

// escapeQuery escapes single quotes for use inside a Drive query string literal.
func escapeQuery(value string) string {
	return strings.ReplaceAll(value, "'", `\'`)
}

// FolderQuery builds the exact-name search for a non-trashed folder.
func FolderQuery(name string) string {
	return fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escapeQuery(name), folderMimeType)
}

// GetOrCreate returns the ID of the first folder named name, creating it in the Drive root if none exists.
func (fm *FolderManager) GetOrCreate(ctx context.Context, name string) (string, error) {
	fileList, err := fm.client.Service().Files.List().
		Q(FolderQuery(name)).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("search folder: %w", err)
	}

	if len(fileList.Files) > 0 {
		return fileList.Files[0].Id, nil
	}

	folder, err := fm.client.Service().Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	return folder.Id, nil
}
