package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
)

type fakeProcessor struct {
	result models.MoodResult
	err    error
}

func (p *fakeProcessor) Process(ctx context.Context, username, rawLyrics string) (models.MoodResult, error) {
	if username == "" || rawLyrics == "" {
		return models.MoodResult{}, shared.ErrMissingInput
	}
	return p.result, p.err
}

type fakeHistoryStore struct {
	entries map[string][]models.MoodEntry
	summary models.MoodSummary
	avgErr  error
}

func (s *fakeHistoryStore) Entries(username string) ([]models.MoodEntry, error) {
	entries, ok := s.entries[username]
	if !ok {
		return nil, shared.ErrHistoryNotFound
	}
	return entries, nil
}

func (s *fakeHistoryStore) Average(username string) (models.MoodSummary, error) {
	if s.avgErr != nil {
		return models.MoodSummary{}, s.avgErr
	}
	if _, ok := s.entries[username]; !ok {
		return models.MoodSummary{}, shared.ErrHistoryNotFound
	}
	return s.summary, nil
}

func (s *fakeHistoryStore) Clear(username string) error {
	if _, ok := s.entries[username]; !ok {
		return shared.ErrHistoryNotFound
	}
	delete(s.entries, username)
	return nil
}

type fakeAccounts struct {
	users map[string]string
}

func (a *fakeAccounts) Create(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, shared.ErrInvalidInput
	}
	if _, ok := a.users[username]; ok {
		return nil, fmt.Errorf("%w: username taken", shared.ErrInvalidInput)
	}
	a.users[username] = password
	return &models.User{Username: username}, nil
}

func (a *fakeAccounts) Authenticate(username, password string) (*models.User, error) {
	if a.users[username] != password {
		return nil, shared.ErrInvalidCredentials
	}
	return &models.User{Username: username}, nil
}

type fakeTrackService struct {
	track *models.Track
	err   error
}

func (s *fakeTrackService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (s *fakeTrackService) CurrentTrack(ctx context.Context) (*models.Track, error) {
	return s.track, s.err
}

func (s *fakeTrackService) Name() string { return "Fake" }

type fakeLyricsFetcher struct {
	text string
	err  error
}

func (f *fakeLyricsFetcher) FetchLyrics(ctx context.Context, title, artist string) (string, error) {
	return f.text, f.err
}

func newTestRouter(handlers ...Handler) *BasicRouter {
	router := NewBasicRouter()
	for _, h := range handlers {
		router.Handler(h)
	}
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMoodHandlerAnalyze(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		processor := &fakeProcessor{result: models.MoodResult{
			Classification:   models.EmotionResult{Label: "joy", Confidence: 0.85},
			MoodScore:        9,
			TotalPredictions: 3,
			Persisted:        true,
		}}
		router := newTestRouter(NewMoodHandler(processor, &fakeHistoryStore{}))

		rec := doRequest(t, router, http.MethodPost, "/api/mood/analyze",
			`{"username":"alice","lyrics":"sunshine everywhere"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}

		var result models.MoodResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.MoodScore != 9 || result.TotalPredictions != 3 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("missing input rejected", func(t *testing.T) {
		router := newTestRouter(NewMoodHandler(&fakeProcessor{}, &fakeHistoryStore{}))

		rec := doRequest(t, router, http.MethodPost, "/api/mood/analyze", `{"username":"alice"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		router := newTestRouter(NewMoodHandler(&fakeProcessor{}, &fakeHistoryStore{}))

		rec := doRequest(t, router, http.MethodPost, "/api/mood/analyze", `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("persistence failure reports score", func(t *testing.T) {
		processor := &fakeProcessor{
			result: models.MoodResult{
				Classification: models.EmotionResult{Label: "joy", Confidence: 0.85},
				MoodScore:      9,
			},
			err: shared.ErrPersistenceFailed,
		}
		router := newTestRouter(NewMoodHandler(processor, &fakeHistoryStore{}))

		rec := doRequest(t, router, http.MethodPost, "/api/mood/analyze",
			`{"username":"alice","lyrics":"sunshine"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}

		var body struct {
			Error  string           `json:"error"`
			Result models.MoodResult `json:"result"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Result.MoodScore != 9 {
			t.Errorf("result score = %d, want 9", body.Result.MoodScore)
		}
		if body.Result.Persisted {
			t.Error("result must not claim persistence")
		}
	})

	t.Run("classifier failure maps to bad gateway", func(t *testing.T) {
		processor := &fakeProcessor{err: shared.ErrClassificationFailed}
		router := newTestRouter(NewMoodHandler(processor, &fakeHistoryStore{}))

		rec := doRequest(t, router, http.MethodPost, "/api/mood/analyze",
			`{"username":"alice","lyrics":"sunshine"}`)
		if rec.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", rec.Code)
		}
	})
}

func TestMoodHandlerHistory(t *testing.T) {
	store := &fakeHistoryStore{
		entries: map[string][]models.MoodEntry{
			"alice": {{Score: 9, Emotion: "joy", Confidence: 0.85}},
		},
		summary: models.MoodSummary{AverageMood: 5.0, Interpretation: "Neutral", TotalPredictions: 3},
	}
	router := newTestRouter(NewMoodHandler(&fakeProcessor{}, store))

	t.Run("get history", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/mood/history/alice", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body struct {
			Username string             `json:"username"`
			History  []models.MoodEntry `json:"history"`
			Total    int                `json:"total_predictions"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Username != "alice" || body.Total != 1 {
			t.Errorf("unexpected body: %+v", body)
		}
	})

	t.Run("unknown user not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/mood/history/nobody", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("average payload shape", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/mood/average/alice", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		for _, key := range []string{"username", "average_mood", "mood_interpretation", "total_predictions"} {
			if _, ok := body[key]; !ok {
				t.Errorf("missing %q in %v", key, body)
			}
		}
		if body["username"] != "alice" {
			t.Errorf("username = %v, want alice", body["username"])
		}
	})

	t.Run("empty history unprocessable", func(t *testing.T) {
		empty := &fakeHistoryStore{
			entries: map[string][]models.MoodEntry{"carol": {}},
			avgErr:  shared.ErrEmptyHistory,
		}
		r := newTestRouter(NewMoodHandler(&fakeProcessor{}, empty))

		rec := doRequest(t, r, http.MethodGet, "/api/mood/average/carol", "")
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("clear then not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/mood/history/alice", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		rec = doRequest(t, router, http.MethodDelete, "/api/mood/history/alice", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestAuthHandler(t *testing.T) {
	accounts := &fakeAccounts{users: map[string]string{}}
	router := newTestRouter(NewAuthHandler(accounts))

	t.Run("signup", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/auth/signup",
			`{"username":"alice","password":"hunter2"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
		}
	})

	t.Run("duplicate signup rejected", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/auth/signup",
			`{"username":"alice","password":"other"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("login", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/auth/login",
			`{"username":"alice","password":"hunter2"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/auth/login",
			`{"username":"alice","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestTrackHandler(t *testing.T) {
	track := &models.Track{ID: "t1", Title: "Sunshine", Artist: "Some Band", Playing: true}

	t.Run("current track", func(t *testing.T) {
		router := newTestRouter(NewTrackHandler(
			&fakeTrackService{track: track}, &fakeLyricsFetcher{}, &fakeProcessor{}))

		rec := doRequest(t, router, http.MethodGet, "/api/track/current", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got models.Track
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if got.Title != "Sunshine" {
			t.Errorf("Title = %q, want Sunshine", got.Title)
		}
	})

	t.Run("nothing playing", func(t *testing.T) {
		router := newTestRouter(NewTrackHandler(
			&fakeTrackService{err: shared.ErrNoTrackPlaying}, &fakeLyricsFetcher{}, &fakeProcessor{}))

		rec := doRequest(t, router, http.MethodGet, "/api/track/current", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("analyze current track", func(t *testing.T) {
		processor := &fakeProcessor{result: models.MoodResult{
			Classification:   models.EmotionResult{Label: "joy", Confidence: 0.9},
			MoodScore:        9,
			TotalPredictions: 1,
			Persisted:        true,
		}}
		router := newTestRouter(NewTrackHandler(
			&fakeTrackService{track: track},
			&fakeLyricsFetcher{text: "walking on sunshine"},
			processor,
		))

		rec := doRequest(t, router, http.MethodPost, "/api/track/analyze", `{"username":"alice"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body["mood_score"] != float64(9) {
			t.Errorf("mood_score = %v, want 9", body["mood_score"])
		}
		if _, ok := body["track"]; !ok {
			t.Error("missing track in response")
		}
	})

	t.Run("lyrics not found", func(t *testing.T) {
		router := newTestRouter(NewTrackHandler(
			&fakeTrackService{track: track},
			&fakeLyricsFetcher{err: shared.ErrLyricsNotFound},
			&fakeProcessor{},
		))

		rec := doRequest(t, router, http.MethodPost, "/api/track/analyze", `{"username":"alice"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("cors preflight", func(t *testing.T) {
		router := NewBasicRouter()
		router.Use(CORS([]string{"http://localhost:3000"}))
		router.Handle("GET /ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("allow origin = %q", got)
		}
	})

	t.Run("cors preflight on method-qualified route", func(t *testing.T) {
		// OPTIONS never matches a method-qualified pattern, so the CORS
		// middleware has to answer the preflight before the mux can 405 it.
		router := newTestRouter(NewMoodHandler(&fakeProcessor{}, &fakeHistoryStore{}))
		router.Use(CORS([]string{"http://localhost:3000"}))

		req := httptest.NewRequest(http.MethodOptions, "/api/mood/analyze", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("allow origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodDelete) {
			t.Errorf("allow methods = %q, want DELETE included", got)
		}
	})

	t.Run("disallowed origin gets no header", func(t *testing.T) {
		router := NewBasicRouter()
		router.Use(CORS([]string{"http://localhost:3000"}))
		router.Handle("GET /ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://evil.test")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("allow origin = %q, want empty", got)
		}
	})

	t.Run("recover converts panic to 500", func(t *testing.T) {
		router := NewBasicRouter()
		router.Use(Recover(shared.NewLogger(nil)))
		router.Handle("GET /boom", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("kaboom")
		}))

		rec := doRequest(t, router, http.MethodGet, "/boom", "")
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		router := newTestRouter(NewMoodHandler(&fakeProcessor{}, &fakeHistoryStore{}))

		rec := doRequest(t, router, http.MethodGet, "/api/mood/analyze", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
	})
}
