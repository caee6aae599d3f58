package services

import "errors"

// Common service-level errors
var (
	// Sync errors
	ErrNotConfigured = errors.New("Cloud sync is not configured")

	// Backend errors
	ErrNotAuthenticated    = errors.New("Not authenticated. Please reconnect your cloud provider.")
	ErrTokenRetrieval      = errors.New("Failed to retrieve access token")
	ErrDisconnectFailed    = errors.New("Failed to disconnect from provider")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrAuthFailed          = errors.New("Authentication failed")
)
