package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/desertthunder/moodscope/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve starts the mood analysis HTTP API.
//
// Registers the mood, auth, and track handlers behind logging, CORS, and
// panic-recovery middleware, then blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	app, err := r.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	host := r.config.Server.Host
	if cmd.String("host") != "" {
		host = cmd.String("host")
	}
	port := r.config.Server.Port
	if cmd.Int("port") != 0 {
		port = cmd.Int("port")
	}

	router := server.NewBasicRouter()
	router.Use(
		server.Logging(r.logger),
		server.CORS(strings.Split(r.config.Server.AllowOrigins, ",")),
		server.Recover(r.logger),
	)

	router.Handler(server.NewMoodHandler(app.engine, app.history))
	router.Handler(server.NewAuthHandler(app.users))
	if r.spotify != nil {
		router.Handler(server.NewTrackHandler(r.spotify, app.lyrics, app.engine))
	} else {
		r.logger.Warn("spotify credentials not configured, track endpoints disabled")
	}

	router.Handle("GET /health", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	notifyCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-notifyCtx.Done():
	}

	r.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
