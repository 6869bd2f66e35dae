package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/moodscope/internal/formatter"
	"github.com/desertthunder/moodscope/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryShow lists a user's recorded mood scores.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrMissingArgument)
	}

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	entries, err := app.history.Entries(username)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if useJSON {
		return r.writeJSON(entries, pretty)
	}

	r.writePlain("Mood history for %s (%d entries):\n\n", username, len(entries))
	for i, entry := range entries {
		r.writePlain("%d. %d/10", i+1, entry.Score)
		if entry.Emotion != "" {
			r.writePlain("  %s (%.2f)", entry.Emotion, entry.Confidence)
		}
		r.writePlain("  %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

// HistoryAverage shows a user's average mood and its interpretation.
func (r *Runner) HistoryAverage(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	useJSON := cmd.Bool("json")

	if username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrMissingArgument)
	}

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := app.history.Average(username)
	if err != nil {
		return fmt.Errorf("failed to compute average: %w", err)
	}

	if useJSON {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader(fmt.Sprintf("Mood Summary: %s", username))
	r.writePlain("Average mood: %.2f/10\n", summary.AverageMood)
	r.writePlain("Interpretation: %s\n", summary.Interpretation)
	r.writePlain("Predictions: %d\n", summary.TotalPredictions)

	return nil
}

// HistoryClear deletes a user's mood history.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")

	if username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrMissingArgument)
	}

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.history.Clear(username); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	r.logger.Info("history cleared", "username", username)
	return r.writePlain("✓ Mood history cleared for %s\n", username)
}

// HistoryExport writes a user's mood history to disk in the requested format.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	format := cmd.String("format")
	output := cmd.String("output")

	if username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrMissingArgument)
	}

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	entries, err := app.history.Entries(username)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	summary, err := app.history.Average(username)
	if err != nil {
		return fmt.Errorf("failed to compute average: %w", err)
	}

	export := &formatter.HistoryExport{
		Username: username,
		Summary:  summary,
		Entries:  entries,
	}

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Scores exported to %s\n", result.ScoresFile)
		r.writePlain("✓ Summary exported to %s\n", result.SummaryFile)
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(export, output)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ History exported to %s\n", path)
	case "text", "txt":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ History exported to %s\n", path)
	default:
		return fmt.Errorf("%w: unknown format %q (expected csv, markdown, or text)", shared.ErrInvalidFlag, format)
	}

	return nil
}
