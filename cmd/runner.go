package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodscope/internal/classifier"
	"github.com/desertthunder/moodscope/internal/lyrics"
	"github.com/desertthunder/moodscope/internal/pipeline"
	"github.com/desertthunder/moodscope/internal/repositories"
	"github.com/desertthunder/moodscope/internal/services"
	"github.com/desertthunder/moodscope/internal/shared"
	"github.com/desertthunder/moodscope/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	spotify    services.TrackService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Spotify    services.TrackService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		spotify:    opts.Spotify,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the Runner's logger, e.g. to redirect logs to a file while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, authCommand, analyzeCommand, historyCommand, trackCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// app bundles the database-backed collaborators a command needs.
type app struct {
	db      *sql.DB
	users   *repositories.UserRepository
	history *repositories.HistoryRepository
	lyrics  *lyrics.Service
	engine  *pipeline.Engine
	batch   *tasks.AnalysisEngine
}

func (a *app) Close() error {
	return a.db.Close()
}

// openApp opens the database and wires the pipeline stack from the Runner's config.
func (r *Runner) openApp() (*app, error) {
	config := r.config

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if config.Database.Path != ":memory:" {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	}

	users := repositories.NewUserRepository(db)
	history := repositories.NewHistoryRepository(db)

	genius := lyrics.NewGeniusClient(
		config.Credentials.Genius.AccessToken,
		config.Credentials.Genius.RateLimit,
		r.httpClient,
	)
	lyricsService := lyrics.NewService(genius, lyrics.NewCache(db), r.logger)

	clf := classifier.NewClient(
		config.Credentials.Classifier.BaseURL,
		config.Credentials.Classifier.Model,
		time.Duration(config.Credentials.Classifier.TimeoutSeconds)*time.Second,
	)

	normalizer := lyrics.NewNormalizer(config.Lyrics.HeaderStripLen)
	engine := pipeline.NewEngine(normalizer, clf, users, history, r.logger)
	batch := tasks.NewAnalysisEngine(lyricsService, engine, r.logger)

	return &app{
		db:      db,
		users:   users,
		history: history,
		lyrics:  lyricsService,
		engine:  engine,
		batch:   batch,
	}, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
