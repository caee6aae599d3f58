package drive

import (
	"context"
	"io"

	"google.golang.org/api/drive/v3"
)

// FileManager handles generic file operations in Google Drive
type FileManager struct {
	client *Client
}

func NewFileManager(client *Client) *FileManager {
	return &FileManager{client: client}
}

// Create uploads content as a new file inside parentID.
// Small payloads go out as a single multipart request with the metadata and the body.
func (fm *FileManager) Create(ctx context.Context, name, parentID, mimeType string, content io.Reader) (*drive.File, error) {
	fileMetadata := &drive.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{parentID},
	}

	return fm.client.Service().Files.Create(fileMetadata).
		Media(content).
		Fields("id, name, parents").
		Context(ctx).
		Do()
}
