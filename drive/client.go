package drive

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Drive API client for a short-lived access token
// issued by the OAuth backend. The token is never refreshed locally.
type Client struct {
	service     *drive.Service
	tokenSource oauth2.TokenSource
}

// NewClient creates a Drive client authorised with accessToken.
// Extra options are appended after the HTTP client, so tests can point it at another endpoint.
func NewClient(ctx context.Context, accessToken string, opts ...option.ClientOption) (*Client, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	httpClient := oauth2.NewClient(ctx, tokenSource)

	srv, err := drive.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &Client{
		service:     srv,
		tokenSource: tokenSource,
	}, nil
}

// Service returns the underlying Google Drive service for direct API access
func (c *Client) Service() *drive.Service {
	return c.service
}
