package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/desertthunder/moodscope/internal/services"
	"github.com/desertthunder/moodscope/internal/shared"
)

// LyricsFetcher resolves raw lyrics text for a track.
type LyricsFetcher interface {
	FetchLyrics(ctx context.Context, title, artist string) (string, error)
}

// TrackHandler reports the currently playing track and feeds it through the
// mood pipeline on demand.
type TrackHandler struct {
	tracks    services.TrackService
	lyrics    LyricsFetcher
	processor Processor
}

// NewTrackHandler creates a track handler over a music provider, a lyrics
// source, and the pipeline engine.
func NewTrackHandler(tracks services.TrackService, lyrics LyricsFetcher, processor Processor) *TrackHandler {
	return &TrackHandler{tracks: tracks, lyrics: lyrics, processor: processor}
}

// Routes returns the method-qualified patterns this handler serves.
func (h *TrackHandler) Routes() []string {
	return []string{
		"GET /api/track/current",
		"POST /api/track/analyze",
	}
}

// ServeHTTP dispatches to the endpoint implementations.
func (h *TrackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.analyze(w, r)
		return
	}
	h.current(w, r)
}

func (h *TrackHandler) current(w http.ResponseWriter, r *http.Request) {
	track, err := h.tracks.CurrentTrack(r.Context())
	if err != nil {
		writeError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, track)
}

type analyzeTrackRequest struct {
	Username string `json:"username"`
}

// analyze resolves the currently playing track to raw lyrics and runs the
// pipeline for the requesting user.
func (h *TrackHandler) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, shared.ErrInvalidInput, nil)
		return
	}

	track, err := h.tracks.CurrentTrack(r.Context())
	if err != nil {
		writeError(w, err, nil)
		return
	}

	raw, err := h.lyrics.FetchLyrics(r.Context(), track.Title, track.Artist)
	if err != nil {
		writeError(w, err, map[string]any{"track": track})
		return
	}

	result, err := h.processor.Process(r.Context(), req.Username, raw)
	if err != nil {
		var extra map[string]any
		if result.MoodScore != 0 {
			extra = map[string]any{"result": result, "track": track}
		}
		writeError(w, err, extra)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"track":             track,
		"classification":    result.Classification,
		"mood_score":        result.MoodScore,
		"total_predictions": result.TotalPredictions,
	})
}
