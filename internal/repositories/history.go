package repositories

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/mood"
	"github.com/desertthunder/moodscope/internal/shared"
)

// HistoryRepository persists per-user mood score sequences.
//
// Scores are append-only: nothing removes individual entries, only [Clear]
// wipes a user's whole record. Appends for the same user are serialized; the
// read-count step and the insert run inside one transaction under the user's
// lock so concurrent appends are additive, never last-writer-wins.
type HistoryRepository struct {
	db    *sql.DB
	locks *keyedMutex
}

// NewHistoryRepository creates a new [HistoryRepository] with the given database connection.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db, locks: newKeyedMutex()}
}

// Append records one scoring event for a user and returns the new history
// length. The history record is created on first append.
func (r *HistoryRepository) Append(username string, score int, emotion string, confidence float64) (int, error) {
	lock := r.locks.get(username)
	lock.Lock()
	defer lock.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT OR IGNORE INTO mood_histories (username) VALUES (?)", username); err != nil {
		return 0, fmt.Errorf("failed to ensure history record: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO mood_scores (id, username, score, emotion, confidence) VALUES (?, ?, ?, ?, ?)",
		shared.GenerateID(), username, score, emotion, confidence,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert score: %w", err)
	}

	var total int
	if err := tx.QueryRow("SELECT COUNT(*) FROM mood_scores WHERE username = ?", username).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit append: %w", err)
	}

	return total, nil
}

// Get returns a user's mood scores in insertion order. Returns
// [shared.ErrHistoryNotFound] if no history record exists for the user.
func (r *HistoryRepository) Get(username string) ([]int, error) {
	if err := r.exists(username); err != nil {
		return nil, err
	}

	rows, err := r.db.Query("SELECT score FROM mood_scores WHERE username = ? ORDER BY rowid ASC", username)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	scores := []int{}
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return scores, nil
}

// Entries returns a user's full scoring events in insertion order, including
// the emotion and confidence that produced each score.
func (r *HistoryRepository) Entries(username string) ([]models.MoodEntry, error) {
	if err := r.exists(username); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		"SELECT score, emotion, confidence, created_at FROM mood_scores WHERE username = ? ORDER BY rowid ASC",
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		var (
			entry      models.MoodEntry
			emotion    sql.NullString
			confidence sql.NullFloat64
		)
		if err := rows.Scan(&entry.Score, &emotion, &confidence, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry.Emotion = emotion.String
		entry.Confidence = confidence.Float64
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Clear deletes a user's entire history record and its scores. Returns
// [shared.ErrHistoryNotFound] if none existed; repeating a clear reports the
// absence rather than failing fatally.
func (r *HistoryRepository) Clear(username string) error {
	lock := r.locks.get(username)
	lock.Lock()
	defer lock.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM mood_scores WHERE username = ?", username); err != nil {
		return fmt.Errorf("failed to delete scores: %w", err)
	}

	result, err := tx.Exec("DELETE FROM mood_histories WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("failed to delete history record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrHistoryNotFound, username)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}

	return nil
}

// Average summarizes a user's history as a mean score rounded to two decimals
// plus its interpretation band. Returns [shared.ErrHistoryNotFound] if no
// record exists and [shared.ErrEmptyHistory] if the record holds no scores.
func (r *HistoryRepository) Average(username string) (models.MoodSummary, error) {
	if err := r.exists(username); err != nil {
		return models.MoodSummary{}, err
	}

	var (
		total int
		sum   sql.NullFloat64
	)
	err := r.db.QueryRow(
		"SELECT COUNT(*), SUM(score) FROM mood_scores WHERE username = ?", username,
	).Scan(&total, &sum)
	if err != nil {
		return models.MoodSummary{}, fmt.Errorf("failed to aggregate scores: %w", err)
	}

	if total == 0 {
		return models.MoodSummary{}, fmt.Errorf("%w: %s", shared.ErrEmptyHistory, username)
	}

	mean := math.Round(sum.Float64/float64(total)*100) / 100

	return models.MoodSummary{
		AverageMood:      mean,
		Interpretation:   mood.Interpret(mean),
		TotalPredictions: total,
	}, nil
}

// exists reports ErrHistoryNotFound unless a history record exists.
func (r *HistoryRepository) exists(username string) error {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM mood_histories WHERE username = ?", username).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", shared.ErrHistoryNotFound, username)
	}
	if err != nil {
		return fmt.Errorf("failed to query history record: %w", err)
	}
	return nil
}
