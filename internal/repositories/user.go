package repositories

import (
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
)

// UserRepository implements the account directory over the users table.
//
// Passwords are stored as salted SHA-256 digests in "salt$hex" form, never as
// plaintext.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create registers a new account. The username must be unused.
func (r *UserRepository) Create(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}

	user := &models.User{
		ID:             shared.GenerateID(),
		Username:       username,
		PasswordDigest: digestPassword(password, shared.GenerateID()),
		CreatedAt:      time.Now(),
	}

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	_, err := r.db.Exec(
		"INSERT INTO users (id, username, password_digest, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Username, user.PasswordDigest, user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("%w: username %q is taken", shared.ErrInvalidInput, username)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// Authenticate verifies a username and password pair. Returns
// [shared.ErrInvalidCredentials] on unknown users and wrong passwords alike,
// so callers cannot probe which usernames exist.
func (r *UserRepository) Authenticate(username, password string) (*models.User, error) {
	user, err := r.get(username)
	if err == sql.ErrNoRows {
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	salt, _, ok := strings.Cut(user.PasswordDigest, "$")
	if !ok {
		return nil, shared.ErrInvalidCredentials
	}

	expected := digestPassword(password, salt)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(user.PasswordDigest)) != 1 {
		return nil, shared.ErrInvalidCredentials
	}

	return user, nil
}

// Exists reports whether a username resolves in the directory.
func (r *UserRepository) Exists(username string) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM users WHERE username = ?", username).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query user: %w", err)
	}
	return true, nil
}

func (r *UserRepository) get(username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(
		"SELECT id, username, password_digest, created_at FROM users WHERE username = ?", username,
	).Scan(&user.ID, &user.Username, &user.PasswordDigest, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// digestPassword produces a "salt$hex" digest for storage and comparison.
func digestPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return salt + "$" + hex.EncodeToString(sum[:])
}
