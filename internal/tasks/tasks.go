// package tasks implements batch mood analysis over sets of tracks.
//
// The core abstraction is AnalysisEngine, which fans tracks out over a worker
// pool, fetches lyrics for each, and runs the mood pipeline. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
	"golang.org/x/time/rate"
)

// LyricsFetcher resolves raw lyrics text for a track.
type LyricsFetcher interface {
	FetchLyrics(ctx context.Context, title, artist string) (string, error)
}

// Processor runs the lyrics-to-mood pipeline for one request.
type Processor interface {
	Process(ctx context.Context, username, rawLyrics string) (models.MoodResult, error)
}

// TrackAnalysisResult represents the outcome of analyzing a single track.
type TrackAnalysisResult struct {
	Track  models.Track      // Track that was analyzed
	Result models.MoodResult // Pipeline result (zero value if Error is set)
	Error  error             // Error if the track could not be scored
}

// BulkAnalysisResult contains all data from a batch analysis run.
type BulkAnalysisResult struct {
	TotalTracks  int                   // Total tracks submitted
	SuccessCount int                   // Tracks scored and persisted
	FailedCount  int                   // Tracks that could not be scored
	Results      []TrackAnalysisResult // Individual track results
	Elapsed      time.Duration         // Wall time for the whole batch
}

// BulkAnalyzeOpts contains configuration for batch analysis.
type BulkAnalyzeOpts struct {
	NumWorkers int     // Concurrent workers (default: 3, max: 10)
	RateLimit  float64 // Lyrics fetches per second (default: 5)
}

// AnalysisEngine runs the mood pipeline over many tracks at once.
type AnalysisEngine struct {
	lyrics    LyricsFetcher
	processor Processor
	logger    *log.Logger
}

// NewAnalysisEngine creates a batch analysis engine.
func NewAnalysisEngine(lyrics LyricsFetcher, processor Processor, logger *log.Logger) *AnalysisEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AnalysisEngine{lyrics: lyrics, processor: processor, logger: logger}
}

type analysisJob struct {
	index int
	track models.Track
}

// BulkAnalyze scores every track for the user, distributing lyrics fetches
// over a worker pool with a shared rate limiter.
//
// Per-track failures are recorded in the result, not returned; the only error
// cases are a missing collaborator and context cancellation.
func (e *AnalysisEngine) BulkAnalyze(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	username string,
	tracks []models.Track,
	opts BulkAnalyzeOpts,
) (*BulkAnalysisResult, error) {
	if e.lyrics == nil || e.processor == nil {
		return nil, fmt.Errorf("%w: engine not initialized", shared.ErrServiceUnavailable)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", shared.ErrMissingInput)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	start := time.Now()
	total := len(tracks)
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan analysisJob, total)
	results := make(chan TrackAnalysisResult, total)

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- e.analyzeOne(ctx, prog, limiter, username, job, total)
			}
		}()
	}

	for i, track := range tracks {
		jobs <- analysisJob{index: i + 1, track: track}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	outcome := &BulkAnalysisResult{
		TotalTracks: total,
		Results:     make([]TrackAnalysisResult, 0, total),
	}

	for res := range results {
		if res.Error != nil {
			outcome.FailedCount++
		} else {
			outcome.SuccessCount++
		}
		outcome.Results = append(outcome.Results, res)
	}

	if err := ctx.Err(); err != nil {
		return outcome, fmt.Errorf("batch analysis interrupted: %w", err)
	}

	outcome.Elapsed = time.Since(start)
	e.sendProgress(prog, batchCompleteUpdate(total, outcome.SuccessCount))

	return outcome, nil
}

// analyzeOne fetches lyrics and runs the pipeline for a single track.
func (e *AnalysisEngine) analyzeOne(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	limiter *rate.Limiter,
	username string,
	job analysisJob,
	total int,
) TrackAnalysisResult {
	if err := limiter.Wait(ctx); err != nil {
		return TrackAnalysisResult{Track: job.track, Error: err}
	}

	e.sendProgress(prog, fetchLyricsUpdate(job.index, total, job.track))

	raw, err := e.lyrics.FetchLyrics(ctx, job.track.Title, job.track.Artist)
	if err != nil {
		e.sendProgress(prog, trackFailedUpdate(job.index, total, job.track, err))
		return TrackAnalysisResult{Track: job.track, Error: err}
	}

	result, err := e.processor.Process(ctx, username, raw)
	if err != nil {
		e.sendProgress(prog, trackFailedUpdate(job.index, total, job.track, err))
		return TrackAnalysisResult{Track: job.track, Result: result, Error: err}
	}

	e.logger.Debug("track scored", "user", username, "track", job.track.Title, "score", result.MoodScore)
	e.sendProgress(prog, trackScoredUpdate(job.index, total, job.track, result))

	return TrackAnalysisResult{Track: job.track, Result: result}
}

// sendProgress sends an update without blocking; slow consumers drop updates.
func (e *AnalysisEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
