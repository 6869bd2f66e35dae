package models

import (
	"fmt"
	"time"
)

// EmotionResult is the categorical output of the external text classifier.
//
// The label vocabulary is open-ended (joy, sadness, anger, fear, disgust,
// surprise, neutral, love, excitement, happiness, ...); confidence is in [0,1].
type EmotionResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// MoodResult is the payload returned for one successful pipeline run.
type MoodResult struct {
	Classification   EmotionResult `json:"classification"`
	MoodScore        int           `json:"mood_score"`
	TotalPredictions int           `json:"total_predictions"`
	Persisted        bool          `json:"persisted"`
}

// MoodEntry is one stored scoring event in a user's mood history.
type MoodEntry struct {
	Score      int       `json:"mood_score"`
	Emotion    string    `json:"emotion"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// MoodSummary describes a user's averaged mood history.
type MoodSummary struct {
	AverageMood      float64 `json:"average_mood"`
	Interpretation   string  `json:"mood_interpretation"`
	TotalPredictions int     `json:"total_predictions"`
}

// Track represents a currently-playing track from a music service.
type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration int    `json:"duration"` // Duration in seconds
	Playing  bool   `json:"playing"`
}

// User is an account directory entry.
//
// The pipeline only ever asks whether a username resolves; credentials exist
// for the signup/login glue and are stored as digests, never plaintext.
type User struct {
	ID             string
	Username       string
	PasswordDigest string
	CreatedAt      time.Time
}

// Validate checks required user fields before persistence.
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if u.PasswordDigest == "" {
		return fmt.Errorf("password digest is required")
	}
	return nil
}
