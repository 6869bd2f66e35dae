// Package services defines the [TrackService] interface for music streaming
// providers and implements it for Spotify.
//
// # TrackService Interface
//
// A provider resolves the user's currently playing track, which is the only
// upstream fact the mood pipeline needs from a streaming service.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication with automatic token
// refresh. The [oauth2.Config] client refreshes expired tokens using the
// refresh token; a bare access token also works for short-lived sessions.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrNoTrackPlaying] : playback is idle or paused on nothing
//   - [shared.ErrAPIRequest] : upstream transport or status failures
package services
