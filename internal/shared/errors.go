package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Player errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrNotConnected       = fmt.Errorf("player not connected")
	ErrPremiumRequired    = fmt.Errorf("spotify premium required")
	ErrPlaybackFailed     = fmt.Errorf("playback request failed")
	ErrNoActiveDevice     = fmt.Errorf("no active playback device")

	// Catalog errors
	ErrCatalogNotFound = fmt.Errorf("catalog not found")
	ErrInvalidCatalog  = fmt.Errorf("invalid catalog")
	ErrUnavailable     = fmt.Errorf("song not available")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
