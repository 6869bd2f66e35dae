package main

import (
	"context"

	"github.com/desertthunder/moodscope/internal/lyrics"
	"github.com/urfave/cli/v3"
)

// CacheStats reports how many lyrics lookups are cached, including negative entries.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	total, found, err := lyrics.NewCache(app.db).Stats()
	if err != nil {
		return err
	}

	r.writePlainHeader("Lyrics Cache")
	r.writePlain("Cached lookups: %d\n", total)
	r.writePlain("With lyrics: %d\n", found)
	r.writePlain("Negative entries: %d\n", total-found)

	return nil
}
