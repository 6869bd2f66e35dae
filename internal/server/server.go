package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/desertthunder/moodscope/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, CORS, and panic recovery.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the mood service.
// Implementations handle specific endpoint groups (auth, mood, track).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the method-qualified patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(pattern string, handler http.Handler)      // Handle registers a handler for a method-qualified pattern
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps domain sentinel errors onto HTTP status codes and writes a
// JSON error body. Extra fields are merged into the body, which lets the
// analyze endpoint report a computed score alongside a persistence failure.
func writeError(w http.ResponseWriter, err error, extra map[string]any) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, shared.ErrMissingInput), errors.Is(err, shared.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, shared.ErrUserNotFound),
		errors.Is(err, shared.ErrHistoryNotFound),
		errors.Is(err, shared.ErrNoTrackPlaying),
		errors.Is(err, shared.ErrLyricsNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrNoUsableLyrics), errors.Is(err, shared.ErrEmptyHistory):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, shared.ErrClassificationFailed), errors.Is(err, shared.ErrAPIRequest):
		status = http.StatusBadGateway
	}

	body := map[string]any{"error": err.Error()}
	for k, v := range extra {
		body[k] = v
	}

	writeJSON(w, status, body)
}
