package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
)

// Accounts is the slice of the account directory the auth endpoints need.
type Accounts interface {
	Create(username, password string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
}

// AuthHandler serves the signup and login glue around the account directory.
type AuthHandler struct {
	accounts Accounts
}

// NewAuthHandler creates an auth handler over the account directory.
func NewAuthHandler(accounts Accounts) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Routes returns the method-qualified patterns this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{
		"POST /api/auth/signup",
		"POST /api/auth/login",
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeHTTP dispatches signup and login requests.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, shared.ErrInvalidInput, nil)
		return
	}

	if strings.HasSuffix(r.URL.Path, "/signup") {
		h.signup(w, req)
		return
	}
	h.login(w, req)
}

func (h *AuthHandler) signup(w http.ResponseWriter, req credentialsRequest) {
	user, err := h.accounts.Create(req.Username, req.Password)
	if err != nil {
		writeError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "signup successful",
		"username": user.Username,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, req credentialsRequest) {
	user, err := h.accounts.Authenticate(req.Username, req.Password)
	if err != nil {
		writeError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "login successful",
		"username": user.Username,
	})
}
