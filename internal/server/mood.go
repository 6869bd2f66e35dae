package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
)

// Processor runs the lyrics-to-mood pipeline for one request.
type Processor interface {
	Process(ctx context.Context, username, rawLyrics string) (models.MoodResult, error)
}

// HistoryStore exposes the per-user history queries the HTTP surface needs.
type HistoryStore interface {
	Entries(username string) ([]models.MoodEntry, error)
	Average(username string) (models.MoodSummary, error)
	Clear(username string) error
}

// MoodHandler serves the mood analysis and history endpoints.
type MoodHandler struct {
	processor Processor
	history   HistoryStore
}

// NewMoodHandler creates a handler over the pipeline engine and history store.
func NewMoodHandler(processor Processor, history HistoryStore) *MoodHandler {
	return &MoodHandler{processor: processor, history: history}
}

// Routes returns the method-qualified patterns this handler serves.
func (h *MoodHandler) Routes() []string {
	return []string{
		"POST /api/mood/analyze",
		"GET /api/mood/history/{username}",
		"DELETE /api/mood/history/{username}",
		"GET /api/mood/average/{username}",
	}
}

// ServeHTTP dispatches to the endpoint implementations.
func (h *MoodHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost:
		h.analyze(w, r)
	case r.Method == http.MethodDelete:
		h.clear(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/mood/average/"):
		h.average(w, r)
	default:
		h.entries(w, r)
	}
}

type analyzeRequest struct {
	Username string `json:"username"`
	Lyrics   string `json:"lyrics"`
}

// analyze runs one lyrics blob through the pipeline. A persistence failure
// still reports the computed score in the error body so the caller never
// mistakes it for a saved result.
func (h *MoodHandler) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, shared.ErrInvalidInput, nil)
		return
	}

	result, err := h.processor.Process(r.Context(), req.Username, req.Lyrics)
	if err != nil {
		var extra map[string]any
		if result.MoodScore != 0 {
			extra = map[string]any{"result": result}
		}
		writeError(w, err, extra)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *MoodHandler) entries(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	entries, err := h.history.Entries(username)
	if err != nil {
		writeError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username":          username,
		"history":           entries,
		"total_predictions": len(entries),
	})
}

func (h *MoodHandler) average(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	summary, err := h.history.Average(username)
	if err != nil {
		writeError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username":            username,
		"average_mood":        summary.AverageMood,
		"mood_interpretation": summary.Interpretation,
		"total_predictions":   summary.TotalPredictions,
	})
}

func (h *MoodHandler) clear(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	if err := h.history.Clear(username); err != nil {
		writeError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "history cleared", "username": username})
}
