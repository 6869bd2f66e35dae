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

	// Pipeline errors
	ErrMissingInput         = fmt.Errorf("missing required input")
	ErrUserNotFound         = fmt.Errorf("user not found")
	ErrNoUsableLyrics       = fmt.Errorf("no usable lyrics after cleanup")
	ErrClassificationFailed = fmt.Errorf("classification failed")
	ErrPersistenceFailed    = fmt.Errorf("failed to persist mood score")

	// History store errors
	ErrHistoryNotFound = fmt.Errorf("mood history not found")
	ErrEmptyHistory    = fmt.Errorf("mood history is empty")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTrackNotFound      = fmt.Errorf("track not found")
	ErrLyricsNotFound     = fmt.Errorf("lyrics not found")
	ErrNoTrackPlaying     = fmt.Errorf("no track currently playing")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
