package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
	"github.com/desertthunder/moodscope/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive mood history dashboard.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	if username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrMissingArgument)
	}

	var pending []models.Track
	if tracksFile := cmd.String("tracks"); tracksFile != "" {
		var err error
		if pending, err = readTracksFile(tracksFile); err != nil {
			return err
		}
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := filepath.Join("tmp", "moodscope-tui.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	r.SetLogger(shared.NewLogger(logFile))

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	model := ui.NewModel(ctx, username, app.history, app.batch, pending)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
