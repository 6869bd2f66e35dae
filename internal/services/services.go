package services

import (
	"context"

	"github.com/desertthunder/moodscope/internal/models"
)

// TrackService defines the interface for music providers that can report what
// a listener is currently playing.
type TrackService interface {
	// Authenticate performs OAuth or API key authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// CurrentTrack returns the user's currently playing track.
	// Returns shared.ErrNoTrackPlaying when playback is idle.
	CurrentTrack(ctx context.Context) (*models.Track, error)

	// Name returns the name of the service (e.g., "Spotify").
	Name() string
}
