package server

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/desertthunder/moodscope/internal/shared"
	"golang.org/x/oauth2"
)

// OAuthResult carries the outcome of one authorization flow: either a token
// or the error that ended it.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error {
	return o.err
}

// OAuthHandler serves the one-shot OAuth2 callback used when linking a
// Spotify account from the CLI. It owns the CSRF state token for the flow:
// the caller sends the user to [OAuthHandler.AuthURL] and receives the
// outcome on [OAuthHandler.Result].
type OAuthHandler struct {
	config  *oauth2.Config
	state   string
	results chan OAuthResult
	handled atomic.Bool
	once    sync.Once
}

// NewOAuthHandler creates a callback handler with a freshly generated state token.
func NewOAuthHandler(config *oauth2.Config) (*OAuthHandler, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	return &OAuthHandler{
		config:  config,
		state:   state,
		results: make(chan OAuthResult, 1),
	}, nil
}

// AuthURL returns the provider authorization URL carrying this flow's state token.
func (h *OAuthHandler) AuthURL() string {
	return h.config.AuthCodeURL(h.state, oauth2.AccessTypeOffline)
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"GET /callback"}
}

// ServeHTTP handles the provider's redirect back to us. The first request
// settles the flow; any later request is rejected.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.handled.CompareAndSwap(false, true) {
		http.Error(w, "callback already processed", http.StatusBadRequest)
		return
	}

	token, err := h.exchange(r)
	if err != nil {
		h.settle(OAuthResult{err: err})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.settle(OAuthResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, linkedPage)
}

// exchange validates the callback query and trades the authorization code
// for tokens.
func (h *OAuthHandler) exchange(r *http.Request) (*oauth2.Token, error) {
	query := r.URL.Query()

	if query.Get("state") != h.state {
		return nil, fmt.Errorf("%w: state mismatch", shared.ErrAuthFailed)
	}

	code := query.Get("code")
	if code == "" {
		return nil, fmt.Errorf("%w: %s - %s",
			shared.ErrAuthFailed, query.Get("error"), query.Get("error_description"))
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)
	}

	return token, nil
}

// settle delivers the flow's outcome exactly once and closes the channel.
func (h *OAuthHandler) settle(result OAuthResult) {
	h.once.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// Result returns the channel that receives the flow's single outcome.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.results
}

const linkedPage = `<!DOCTYPE html>
<html>
<head>
    <title>Spotify Linked</title>
    <style>
        body { font-family: sans-serif; display: flex; align-items: center;
               justify-content: center; height: 100vh; margin: 0; }
        main { text-align: center; }
        h1 { color: #1DB954; }
    </style>
</head>
<body>
    <main>
        <h1>Spotify linked</h1>
        <p>You can close this window and return to the terminal.</p>
    </main>
</body>
</html>
`
