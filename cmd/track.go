package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/moodscope/internal/shared"
	"github.com/urfave/cli/v3"
)

// TrackCurrent shows the currently playing track.
func (r *Runner) TrackCurrent(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, run 'moodscope auth spotify'", shared.ErrServiceUnavailable)
	}

	track, err := r.spotify.CurrentTrack(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNoTrackPlaying) {
			return r.writePlain("Nothing is playing right now.\n")
		}
		return fmt.Errorf("failed to fetch current track: %w", err)
	}

	if useJSON {
		return r.writeJSON(track, pretty)
	}

	r.writePlain("Now playing: %s - %s\n", track.Artist, track.Title)
	if track.Album != "" {
		r.writePlain("Album: %s\n", track.Album)
	}
	r.writePlain("Duration: %s\n", shared.FormatDuration(track.Duration))

	return nil
}

// TrackAnalyze scores the currently playing track's lyrics for a user.
func (r *Runner) TrackAnalyze(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")
	useJSON := cmd.Bool("json")

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, run 'moodscope auth spotify'", shared.ErrServiceUnavailable)
	}

	track, err := r.spotify.CurrentTrack(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch current track: %w", err)
	}

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	r.logger.Info("fetching lyrics", "title", track.Title, "artist", track.Artist)

	raw, err := app.lyrics.FetchLyrics(ctx, track.Title, track.Artist)
	if err != nil {
		return fmt.Errorf("failed to fetch lyrics: %w", err)
	}

	result, err := app.engine.Process(ctx, username, raw)
	if err != nil {
		if errors.Is(err, shared.ErrPersistenceFailed) {
			r.writePlainln("⚠ Score computed but not saved: %v", err)
			return r.writeResult(result, useJSON, true)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	r.writePlain("Track: %s - %s\n", track.Artist, track.Title)
	return r.writeResult(result, useJSON, true)
}
