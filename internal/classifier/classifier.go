// Package classifier provides the client for the external emotion
// classification service.
//
// The service is an HTTP wrapper around a pretrained text model. It exposes a
// single classify endpoint taking cleaned lyrics text and returning an emotion
// label with a confidence in [0, 1]. The model load on the service side is
// slow, so the client performs a one-time warmup probe before the first
// classification.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
)

const defaultBaseURL = "http://localhost:8000"

// Classifier turns cleaned lyrics text into an emotion classification.
//
// Implementations wrap [shared.ErrClassificationFailed] on any failure so
// callers can detect the category without inspecting transport details.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.EmotionResult, error)
}

// Client is an HTTP [Classifier] backed by the emotion model service.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client

	warmupMu sync.Mutex
	warmed   bool
}

type classifyRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type classifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// NewClient creates a classifier client. An empty baseURL falls back to the
// local development service; timeout zero defaults to 30 seconds, covering
// cold model loads on the service side.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Classify sends cleaned text to the model service and returns its emotion
// classification. The first call triggers a warmup probe; warmup is retried on
// later calls until it succeeds once.
func (c *Client) Classify(ctx context.Context, text string) (models.EmotionResult, error) {
	if err := c.ensureWarm(ctx); err != nil {
		return models.EmotionResult{}, fmt.Errorf("%w: %v", shared.ErrClassificationFailed, err)
	}

	body, err := json.Marshal(classifyRequest{Text: text, Model: c.model})
	if err != nil {
		return models.EmotionResult{}, fmt.Errorf("%w: marshal request: %v", shared.ErrClassificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return models.EmotionResult{}, fmt.Errorf("%w: build request: %v", shared.ErrClassificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.EmotionResult{}, fmt.Errorf("%w: %v", shared.ErrClassificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.EmotionResult{}, fmt.Errorf("%w: unexpected status %d", shared.ErrClassificationFailed, resp.StatusCode)
	}

	var parsed classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.EmotionResult{}, fmt.Errorf("%w: decode response: %v", shared.ErrClassificationFailed, err)
	}
	if parsed.Error != "" {
		return models.EmotionResult{}, fmt.Errorf("%w: %s", shared.ErrClassificationFailed, parsed.Error)
	}
	if parsed.Label == "" {
		return models.EmotionResult{}, fmt.Errorf("%w: empty label in response", shared.ErrClassificationFailed)
	}

	return models.EmotionResult{Label: parsed.Label, Confidence: parsed.Confidence}, nil
}

// ensureWarm probes the service health endpoint before the first real
// request, so the model load on the service side happens exactly once.
func (c *Client) ensureWarm(ctx context.Context) error {
	c.warmupMu.Lock()
	defer c.warmupMu.Unlock()

	if c.warmed {
		return nil
	}
	if err := c.warmup(ctx); err != nil {
		return err
	}
	c.warmed = true
	return nil
}

func (c *Client) warmup(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build warmup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("classifier service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("classifier service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
