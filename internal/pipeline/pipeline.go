// Package pipeline composes the lyrics-to-mood flow for one request.
//
// The [Engine] owns error sequencing only: normalize, classify, score, append.
// The classifier and the user directory are injected capabilities so the
// engine can be exercised with deterministic fakes.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodscope/internal/classifier"
	"github.com/desertthunder/moodscope/internal/lyrics"
	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/mood"
	"github.com/desertthunder/moodscope/internal/shared"
)

// UserDirectory resolves user identifiers. The engine only ever asks whether
// a user exists; accounts themselves are owned elsewhere.
type UserDirectory interface {
	Exists(username string) (bool, error)
}

// HistoryStore appends one scoring event and reports the new history length.
type HistoryStore interface {
	Append(username string, score int, emotion string, confidence float64) (int, error)
}

// Engine runs the mood pipeline for one lyrics blob at a time.
type Engine struct {
	normalizer *lyrics.Normalizer
	classifier classifier.Classifier
	directory  UserDirectory
	history    HistoryStore
	logger     *log.Logger
}

// NewEngine wires the pipeline's collaborators together.
func NewEngine(
	normalizer *lyrics.Normalizer,
	clf classifier.Classifier,
	directory UserDirectory,
	history HistoryStore,
	logger *log.Logger,
) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{
		normalizer: normalizer,
		classifier: clf,
		directory:  directory,
		history:    history,
		logger:     logger,
	}
}

// Process turns one raw lyrics blob into a persisted mood score for a user.
//
// Failure policy, in order: missing input and unknown users are rejected
// before any work happens; lyrics that normalize to nothing are rejected
// without touching the classifier; classifier failures surface as
// [shared.ErrClassificationFailed] with no retry. A storage failure after
// scoring returns [shared.ErrPersistenceFailed] together with the computed
// result, with Persisted false, so the caller sees the score but is never
// told it was saved.
func (e *Engine) Process(ctx context.Context, username, rawLyrics string) (models.MoodResult, error) {
	if username == "" || rawLyrics == "" {
		return models.MoodResult{}, fmt.Errorf("%w: username and lyrics are required", shared.ErrMissingInput)
	}

	exists, err := e.directory.Exists(username)
	if err != nil {
		return models.MoodResult{}, fmt.Errorf("failed to resolve user: %w", err)
	}
	if !exists {
		return models.MoodResult{}, fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
	}

	cleaned := e.normalizer.Normalize(rawLyrics)
	if cleaned == "" {
		return models.MoodResult{}, fmt.Errorf("%w: input was pure metadata", shared.ErrNoUsableLyrics)
	}

	result, err := e.classifier.Classify(ctx, cleaned)
	if err != nil {
		if errors.Is(err, shared.ErrClassificationFailed) {
			return models.MoodResult{}, err
		}
		return models.MoodResult{}, fmt.Errorf("%w: %v", shared.ErrClassificationFailed, err)
	}

	score := mood.Score(result)

	e.logger.Debug("scored lyrics",
		"user", username, "label", result.Label, "confidence", result.Confidence, "score", score)

	outcome := models.MoodResult{
		Classification: result,
		MoodScore:      score,
	}

	total, err := e.history.Append(username, score, result.Label, result.Confidence)
	if err != nil {
		e.logger.Error("failed to persist mood score", "user", username, "error", err)
		return outcome, fmt.Errorf("%w: %v", shared.ErrPersistenceFailed, err)
	}

	outcome.TotalPredictions = total
	outcome.Persisted = true
	return outcome, nil
}
