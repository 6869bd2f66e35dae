package lyrics

import (
	"database/sql"
	"fmt"
)

// Cache persists fetched lyrics, including negative lookups, so repeated plays
// of the same track never refetch.
//
// Rows live in the lyrics_cache table created by the shared migrations.
type Cache struct {
	db *sql.DB
}

// CacheEntry is one cached lookup result.
type CacheEntry struct {
	Lyrics string
	Source string
	Found  bool
}

// NewCache creates a lyrics cache over an already-migrated database.
func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

// Get returns the cached entry for a track key, reporting whether one exists.
func (c *Cache) Get(key string) (*CacheEntry, bool) {
	var (
		text   sql.NullString
		source sql.NullString
		found  int
	)

	err := c.db.QueryRow(
		"SELECT lyrics, source, found FROM lyrics_cache WHERE track_key = ?", key,
	).Scan(&text, &source, &found)
	if err != nil {
		return nil, false
	}

	return &CacheEntry{
		Lyrics: text.String,
		Source: source.String,
		Found:  found == 1,
	}, true
}

// Set stores a lookup result, replacing any prior entry for the key.
func (c *Cache) Set(key, text, source string, found bool) error {
	foundInt := 0
	if found {
		foundInt = 1
	}

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO lyrics_cache (track_key, lyrics, source, found) VALUES (?, ?, ?, ?)`,
		key, text, source, foundInt,
	)
	if err != nil {
		return fmt.Errorf("failed to write lyrics cache: %w", err)
	}
	return nil
}

// Stats reports total cached lookups and how many actually carry lyrics.
func (c *Cache) Stats() (total int, found int, err error) {
	err = c.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(found), 0) FROM lyrics_cache").Scan(&total, &found)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read lyrics cache stats: %w", err)
	}
	return total, found, nil
}
