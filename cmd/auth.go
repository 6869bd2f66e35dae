package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/moodscope/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthSignup creates a local account.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	password := cmd.String("password")

	if username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrMissingArgument)
	}

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.users.Create(username, password)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	r.logger.Info("account created", "username", user.Username)
	return r.writePlain("✓ Account created for %s\n", user.Username)
}

// AuthLogin verifies account credentials.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	password := cmd.String("password")

	if username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrMissingArgument)
	}

	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.users.Authenticate(username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.writePlain("✓ Logged in as %s\n", user.Username)
	return nil
}
