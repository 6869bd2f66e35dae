package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/desertthunder/moodscope/internal/shared"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	geniusAPIURL = "https://api.genius.com"
)

// Provider fetches raw lyrics text for a track.
//
// Implementations return [shared.ErrLyricsNotFound] when no lyrics exist for
// the track; any other error is a transport or provider failure.
type Provider interface {
	FetchLyrics(ctx context.Context, title, artist string) (string, error)
}

// GeniusClient implements [Provider] against the Genius search API plus a
// scrape of the song page, since Genius exposes no lyrics endpoint.
//
// Requests are rate limited; Genius throttles aggressive scrapers.
type GeniusClient struct {
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	apiURL      string
}

// NewGeniusClient creates a Genius-backed lyrics provider.
//
// requestsPerSecond bounds outbound traffic (default 5). The client defaults
// to a 10 second timeout when none is supplied.
func NewGeniusClient(accessToken string, requestsPerSecond float64, client *http.Client) *GeniusClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5.0
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &GeniusClient{
		accessToken: accessToken,
		httpClient:  client,
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		apiURL:      geniusAPIURL,
	}
}

type geniusSearch struct {
	Response struct {
		Hits []struct {
			Result struct {
				URL string `json:"url"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// FetchLyrics searches Genius for the track and scrapes the lyrics from the
// top hit's song page.
func (c *GeniusClient) FetchLyrics(ctx context.Context, title, artist string) (string, error) {
	if c.accessToken == "" {
		return "", fmt.Errorf("%w: missing Genius access token", shared.ErrMissingCredentials)
	}

	songURL, err := c.search(ctx, CleanTitle(title), artist)
	if err != nil {
		return "", err
	}

	return c.scrape(ctx, songURL)
}

// search resolves a track to its Genius song page URL.
func (c *GeniusClient) search(ctx context.Context, title, artist string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{"q": {artist + " " + title}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: genius search status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var search geniusSearch
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}

	if len(search.Response.Hits) == 0 {
		return "", fmt.Errorf("%w: %s - %s", shared.ErrLyricsNotFound, artist, title)
	}

	return search.Response.Hits[0].Result.URL, nil
}

// scrape downloads the song page and extracts the lyrics containers.
func (c *GeniusClient) scrape(ctx context.Context, songURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, songURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "moodscope/0.1 (+https://github.com/desertthunder/moodscope)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: genius page status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse song page: %w", err)
	}

	text := extractLyrics(doc)
	if text == "" {
		return "", fmt.Errorf("%w: no lyrics container on page", shared.ErrLyricsNotFound)
	}

	return text, nil
}

// extractLyrics collects text from every div marked data-lyrics-container.
func extractLyrics(doc *html.Node) string {
	var sb strings.Builder

	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			for _, a := range n.Attr {
				if a.Key == "data-lyrics-container" && a.Val == "true" {
					collectText(n, &sb)
					sb.WriteString("\n")
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}

	find(doc)
	return strings.TrimSpace(sb.String())
}

// collectText walks a node tree appending text, treating <br> as a newline.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	if n.Type == html.ElementNode && n.Data == "br" {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

var (
	titleParensRe = regexp.MustCompile(`\s*[\(\[].*?[\)\]]\s*`)
	titleSuffixRe = regexp.MustCompile(
		`(?i)\s*-\s*(remaster|live|demo|remix|deluxe|bonus|edit|version|` +
			`mix|single|acoustic|instrumental|radio|extended|original).*`)
)

// CleanTitle strips release-variant decorations that break provider search,
// e.g. "Song (Remastered 2011)" or "Song - Live at Wembley".
func CleanTitle(title string) string {
	title = titleParensRe.ReplaceAllString(title, " ")
	title = titleSuffixRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
