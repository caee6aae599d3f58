// Package dropbox uploads files with the Dropbox SDK.
package dropbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	sdk "github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"golang.org/x/oauth2"
)

// Client builds a per-token SDK client. URLGenerator and HTTPClient are only set in tests.
type Client struct {
	HTTPClient   *http.Client
	URLGenerator func(hostType, namespace, route string) string
}

func NewClient() *Client {
	return &Client{}
}

// UploadPath joins folder and file into an absolute Dropbox path.
func UploadPath(folderPath, fileName string) string {
	return path.Join("/", folderPath, fileName)
}

// Upload writes content to folderPath/fileName in overwrite mode without autorename.
// The returned error message is the API's error_summary when Dropbox reports one.
func (c *Client) Upload(ctx context.Context, accessToken, folderPath, fileName string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := sdk.Config{
		Token:    accessToken,
		LogLevel: sdk.LogOff,
	}
	if c.HTTPClient != nil {
		// The SDK only attaches the token to a client it builds itself
		base := context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
		cfg.Client = oauth2.NewClient(base, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	}
	if c.URLGenerator != nil {
		cfg.URLGenerator = c.URLGenerator
	}

	arg := files.NewUploadArg(UploadPath(folderPath, fileName))
	arg.Mode = &files.WriteMode{Tagged: sdk.Tagged{Tag: files.WriteModeOverwrite}}
	arg.Autorename = false
	arg.Mute = false

	if _, err := files.New(cfg).Upload(arg, bytes.NewReader(content)); err != nil {
		return &APIError{Message: errorSummary(err), Err: err}
	}
	return nil
}

// APIError wraps an SDK failure with a user-facing message.
type APIError struct {
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func errorSummary(err error) string {
	var uploadErr files.UploadAPIError
	if errors.As(err, &uploadErr) && uploadErr.ErrorSummary != "" {
		return uploadErr.ErrorSummary
	}
	var apiErr sdk.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorSummary != "" {
		return apiErr.ErrorSummary
	}
	if err != nil && err.Error() != "" {
		return fmt.Sprintf("Failed to upload to Dropbox: %v", err)
	}
	return "Failed to upload to Dropbox"
}
