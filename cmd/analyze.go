package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
	"github.com/desertthunder/moodscope/internal/tasks"
	"github.com/urfave/cli/v3"
)

// AnalyzeLyrics scores a lyrics blob supplied as an argument, a file, or stdin.
func (r *Runner) AnalyzeLyrics(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	raw, err := r.readLyrics(cmd)
	if err != nil {
		return err
	}

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.engine.Process(ctx, username, raw)
	if err != nil {
		if errors.Is(err, shared.ErrPersistenceFailed) {
			r.writePlainln("⚠ Score computed but not saved: %v", err)
			return r.writeResult(result, useJSON, pretty)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	return r.writeResult(result, useJSON, pretty)
}

// AnalyzeTrack fetches lyrics for a titled track and scores them.
func (r *Runner) AnalyzeTrack(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")
	title := cmd.String("title")
	artist := cmd.String("artist")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	r.logger.Info("fetching lyrics", "title", title, "artist", artist)

	raw, err := app.lyrics.FetchLyrics(ctx, title, artist)
	if err != nil {
		return fmt.Errorf("failed to fetch lyrics: %w", err)
	}

	result, err := app.engine.Process(ctx, username, raw)
	if err != nil {
		if errors.Is(err, shared.ErrPersistenceFailed) {
			r.writePlainln("⚠ Score computed but not saved: %v", err)
			return r.writeResult(result, useJSON, pretty)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	r.writePlain("Track: %s - %s\n", artist, title)
	return r.writeResult(result, useJSON, pretty)
}

// AnalyzeBatch scores every track listed in a JSON file.
func (r *Runner) AnalyzeBatch(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")
	tracksFile := cmd.String("file")

	tracks, err := readTracksFile(tracksFile)
	if err != nil {
		return err
	}

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := app.batch.BulkAnalyze(ctx, prog, username, tracks, tasks.BulkAnalyzeOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	<-done

	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	r.writePlainHeader("Batch Analysis")
	r.writePlain("Tracks: %d\n", result.TotalTracks)
	r.writePlain("Scored: %d\n", result.SuccessCount)
	r.writePlain("Failed: %d\n", result.FailedCount)
	r.writePlain("Elapsed: %s\n", result.Elapsed.Round(time.Millisecond))

	for _, res := range result.Results {
		if res.Error != nil {
			r.writePlain("✗ %s - %s: %v\n", res.Track.Artist, res.Track.Title, res.Error)
		}
	}

	return nil
}

func (r *Runner) readLyrics(cmd *cli.Command) (string, error) {
	if path := cmd.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read lyrics file: %w", err)
		}
		return string(data), nil
	}

	if text := cmd.StringArg("text"); text != "" {
		return text, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func (r *Runner) writeResult(result models.MoodResult, useJSON, pretty bool) error {
	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlain("Mood score: %d/10\n", result.MoodScore)
	r.writePlain("Emotion: %s (%.2f)\n", result.Classification.Label, result.Classification.Confidence)
	r.writePlain("Total predictions: %d\n", result.TotalPredictions)
	return nil
}

func readTracksFile(path string) ([]models.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks file: %w", err)
	}

	var tracks []models.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("%w: tracks file is not a JSON array of tracks: %v", shared.ErrInvalidInput, err)
	}

	return tracks, nil
}
