package services

import (
	"context"
	"encoding/json"
	"fmt"
	"lightningbowl-sync/models"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// CallbackPath is the app route the OAuth backend redirects back to.
const CallbackPath = "/auth/callback"

// AuthService talks to the OAuth backend. Requests are credentialed through
// the cookie jar, which carries the backend session.
type AuthService struct {
	backendURL string
	appOrigin  string
	client     *http.Client
	logger     *slog.Logger
}

// NewAuthService creates a backend facade. jar may be nil in tests.
func NewAuthService(backendURL, appOrigin string, jar http.CookieJar, logger *slog.Logger) *AuthService {
	return &AuthService{
		backendURL: strings.TrimRight(backendURL, "/"),
		appOrigin:  strings.TrimRight(appOrigin, "/"),
		client: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		logger: logger.With("component", "auth"),
	}
}

// StartURL builds the backend URL that begins the OAuth flow for provider.
// The browser navigates there; no request is made here.
func (as *AuthService) StartURL(provider models.Provider) (string, error) {
	if !provider.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}

	redirect := as.appOrigin + CallbackPath + "?openModal=true"
	return fmt.Sprintf("%s/%s/start?redirect=%s", as.backendURL, provider, url.QueryEscape(redirect)), nil
}

// tokenResponse is the access-token endpoint body
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AccessToken fetches a short-lived provider token. 401 and 404 mean the
// backend holds no credentials for this installation.
func (as *AuthService) AccessToken(ctx context.Context, provider models.Provider) (*oauth2.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, as.endpoint(provider, "access-token"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := as.client.Do(req)
	if err != nil {
		as.logger.Error("access token request failed", "provider", provider, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTokenRetrieval, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotAuthenticated
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		as.logger.Warn("access token request rejected", "provider", provider, "status", resp.StatusCode)
		return nil, ErrTokenRetrieval
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.AccessToken == "" {
		return nil, ErrTokenRetrieval
	}

	token := &oauth2.Token{
		AccessToken: body.AccessToken,
		TokenType:   body.TokenType,
	}
	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}
	if body.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	}
	return token, nil
}

// Disconnect asks the backend to revoke and forget the provider credentials.
func (as *AuthService) Disconnect(ctx context.Context, provider models.Provider) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, as.endpoint(provider, "disconnect"), nil)
	if err != nil {
		return err
	}

	resp, err := as.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnectFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		as.logger.Warn("disconnect rejected", "provider", provider, "status", resp.StatusCode)
		return ErrDisconnectFailed
	}
	return nil
}

func (as *AuthService) endpoint(provider models.Provider, action string) string {
	return as.backendURL + "/" + url.PathEscape(string(provider)) + "/" + action
}
