package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
)

type fakeLyrics struct {
	mu      sync.Mutex
	calls   int
	failFor map[string]error
}

func (f *fakeLyrics) FetchLyrics(ctx context.Context, title, artist string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err, ok := f.failFor[title]; ok {
		return "", err
	}
	return fmt.Sprintf("lyrics for %s", title), nil
}

type fakeProcessor struct {
	mu    sync.Mutex
	count int
	err   error
}

func (p *fakeProcessor) Process(ctx context.Context, username, rawLyrics string) (models.MoodResult, error) {
	if p.err != nil {
		return models.MoodResult{}, p.err
	}

	p.mu.Lock()
	p.count++
	total := p.count
	p.mu.Unlock()

	return models.MoodResult{
		Classification:   models.EmotionResult{Label: "joy", Confidence: 0.85},
		MoodScore:        9,
		TotalPredictions: total,
		Persisted:        true,
	}, nil
}

func sampleTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range n {
		tracks[i] = models.Track{
			ID:     fmt.Sprintf("t%d", i),
			Title:  fmt.Sprintf("Song %d", i),
			Artist: "Some Band",
		}
	}
	return tracks
}

func TestBulkAnalyze(t *testing.T) {
	t.Run("all tracks scored", func(t *testing.T) {
		lyrics := &fakeLyrics{}
		processor := &fakeProcessor{}
		engine := NewAnalysisEngine(lyrics, processor, nil)

		result, err := engine.BulkAnalyze(context.Background(), nil, "alice", sampleTracks(5),
			BulkAnalyzeOpts{NumWorkers: 2, RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkAnalyze failed: %v", err)
		}

		if result.TotalTracks != 5 || result.SuccessCount != 5 || result.FailedCount != 0 {
			t.Errorf("unexpected counts: %+v", result)
		}
		if len(result.Results) != 5 {
			t.Errorf("got %d results, want 5", len(result.Results))
		}
		if lyrics.calls != 5 {
			t.Errorf("lyrics fetched %d times, want 5", lyrics.calls)
		}
	})

	t.Run("partial failures collected", func(t *testing.T) {
		lyrics := &fakeLyrics{failFor: map[string]error{
			"Song 1": shared.ErrLyricsNotFound,
			"Song 3": shared.ErrLyricsNotFound,
		}}
		engine := NewAnalysisEngine(lyrics, &fakeProcessor{}, nil)

		result, err := engine.BulkAnalyze(context.Background(), nil, "alice", sampleTracks(5),
			BulkAnalyzeOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkAnalyze failed: %v", err)
		}

		if result.SuccessCount != 3 || result.FailedCount != 2 {
			t.Errorf("counts = %d success / %d failed, want 3/2", result.SuccessCount, result.FailedCount)
		}

		failed := 0
		for _, res := range result.Results {
			if res.Error != nil {
				failed++
				if !errors.Is(res.Error, shared.ErrLyricsNotFound) {
					t.Errorf("unexpected track error: %v", res.Error)
				}
			}
		}
		if failed != 2 {
			t.Errorf("got %d failed results, want 2", failed)
		}
	})

	t.Run("progress updates emitted", func(t *testing.T) {
		engine := NewAnalysisEngine(&fakeLyrics{}, &fakeProcessor{}, nil)
		prog := make(chan ProgressUpdate, 64)

		_, err := engine.BulkAnalyze(context.Background(), prog, "alice", sampleTracks(3),
			BulkAnalyzeOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkAnalyze failed: %v", err)
		}
		close(prog)

		var sawFetch, sawScored, sawComplete bool
		for update := range prog {
			switch update.Phase {
			case FetchLyrics:
				sawFetch = true
			case Analyze:
				sawScored = true
			case Complete:
				sawComplete = true
			}
		}
		if !sawFetch || !sawScored || !sawComplete {
			t.Errorf("missing phases: fetch=%v scored=%v complete=%v", sawFetch, sawScored, sawComplete)
		}
	})

	t.Run("missing username rejected", func(t *testing.T) {
		engine := NewAnalysisEngine(&fakeLyrics{}, &fakeProcessor{}, nil)

		_, err := engine.BulkAnalyze(context.Background(), nil, "", sampleTracks(1), BulkAnalyzeOpts{})
		if !errors.Is(err, shared.ErrMissingInput) {
			t.Errorf("expected ErrMissingInput, got %v", err)
		}
	})

	t.Run("uninitialized engine rejected", func(t *testing.T) {
		engine := NewAnalysisEngine(nil, nil, nil)

		_, err := engine.BulkAnalyze(context.Background(), nil, "alice", sampleTracks(1), BulkAnalyzeOpts{})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("cancelled context reported", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		engine := NewAnalysisEngine(&fakeLyrics{}, &fakeProcessor{}, nil)

		_, err := engine.BulkAnalyze(ctx, nil, "alice", sampleTracks(3), BulkAnalyzeOpts{RateLimit: 1000})
		if err == nil {
			t.Error("expected an error from cancelled context")
		}
	})

	t.Run("empty track list succeeds", func(t *testing.T) {
		engine := NewAnalysisEngine(&fakeLyrics{}, &fakeProcessor{}, nil)

		result, err := engine.BulkAnalyze(context.Background(), nil, "alice", nil, BulkAnalyzeOpts{})
		if err != nil {
			t.Fatalf("BulkAnalyze failed: %v", err)
		}
		if result.TotalTracks != 0 || len(result.Results) != 0 {
			t.Errorf("unexpected result: %+v", result)
		}
	})
}
