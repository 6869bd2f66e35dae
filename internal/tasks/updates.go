package tasks

import (
	"fmt"

	"github.com/desertthunder/moodscope/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchLyrics Phase = iota
	Analyze
	Complete
)

func (p Phase) String() string {
	switch p {
	case FetchLyrics:
		return "fetch_lyrics"
	case Analyze:
		return "analyze"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func fetchLyricsUpdate(step, total int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLyrics,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching lyrics: %s - %s", step, total, tr.Artist, tr.Title),
	}
}

func trackScoredUpdate(step, total int, tr models.Track, result models.MoodResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Analyze,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s scored %d/10", step, total, tr.Artist, tr.Title, result.MoodScore),
		Data:    result,
	}
}

func trackFailedUpdate(step, total int, tr models.Track, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Analyze,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s: %v", step, total, tr.Artist, tr.Title, err),
	}
}

func batchCompleteUpdate(total, succeeded int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Analyzed %d/%d tracks", succeeded, total),
	}
}
