package repositories

import (
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/desertthunder/moodscope/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestHistoryRepositoryAppend(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t))

	t.Run("first append creates history", func(t *testing.T) {
		total, err := repo.Append("alice", 8, "joy", 0.85)
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if total != 1 {
			t.Errorf("total = %d, want 1", total)
		}
	})

	t.Run("subsequent appends grow the count", func(t *testing.T) {
		for i, score := range []int{2, 5} {
			total, err := repo.Append("alice", score, "neutral", 0.7)
			if err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			if want := i + 2; total != want {
				t.Errorf("total = %d, want %d", total, want)
			}
		}
	})

	t.Run("users do not share histories", func(t *testing.T) {
		total, err := repo.Append("bob", 3, "anger", 0.9)
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if total != 1 {
			t.Errorf("total = %d, want 1", total)
		}
	})
}

func TestHistoryRepositoryGet(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t))

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := repo.Get("nobody")
		if !errors.Is(err, shared.ErrHistoryNotFound) {
			t.Errorf("expected ErrHistoryNotFound, got %v", err)
		}
	})

	t.Run("returns scores in insertion order", func(t *testing.T) {
		for _, score := range []int{9, 1, 5} {
			if _, err := repo.Append("alice", score, "", 0); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		scores, err := repo.Get("alice")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		want := []int{9, 1, 5}
		if len(scores) != len(want) {
			t.Fatalf("got %d scores, want %d", len(scores), len(want))
		}
		for i := range want {
			if scores[i] != want[i] {
				t.Errorf("scores[%d] = %d, want %d", i, scores[i], want[i])
			}
		}
	})
}

func TestHistoryRepositoryEntries(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t))

	if _, err := repo.Append("alice", 9, "joy", 0.85); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := repo.Entries("alice")
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	entry := entries[0]
	if entry.Score != 9 || entry.Emotion != "joy" || entry.Confidence != 0.85 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
}

func TestHistoryRepositoryClear(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t))

	if _, err := repo.Append("alice", 7, "excitement", 0.9); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	t.Run("clear removes the record", func(t *testing.T) {
		if err := repo.Clear("alice"); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		if _, err := repo.Get("alice"); !errors.Is(err, shared.ErrHistoryNotFound) {
			t.Errorf("expected ErrHistoryNotFound after clear, got %v", err)
		}
	})

	t.Run("repeated clear reports not found", func(t *testing.T) {
		if err := repo.Clear("alice"); !errors.Is(err, shared.ErrHistoryNotFound) {
			t.Errorf("expected ErrHistoryNotFound, got %v", err)
		}
	})

	t.Run("append after clear starts fresh", func(t *testing.T) {
		total, err := repo.Append("alice", 4, "fear", 0.7)
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if total != 1 {
			t.Errorf("total = %d, want 1", total)
		}
	})
}

func TestHistoryRepositoryAverage(t *testing.T) {
	db := newTestDB(t)
	repo := NewHistoryRepository(db)

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := repo.Average("nobody")
		if !errors.Is(err, shared.ErrHistoryNotFound) {
			t.Errorf("expected ErrHistoryNotFound, got %v", err)
		}
	})

	t.Run("mixed scores average to neutral", func(t *testing.T) {
		for _, score := range []int{9, 1, 5} {
			if _, err := repo.Append("alice", score, "", 0); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		summary, err := repo.Average("alice")
		if err != nil {
			t.Fatalf("Average failed: %v", err)
		}
		if summary.AverageMood != 5.0 {
			t.Errorf("AverageMood = %v, want 5.0", summary.AverageMood)
		}
		if summary.Interpretation != "Neutral" {
			t.Errorf("Interpretation = %q, want Neutral", summary.Interpretation)
		}
		if summary.TotalPredictions != 3 {
			t.Errorf("TotalPredictions = %d, want 3", summary.TotalPredictions)
		}
	})

	t.Run("mean rounds to two decimals", func(t *testing.T) {
		for _, score := range []int{2, 3, 3} {
			if _, err := repo.Append("bob", score, "", 0); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		summary, err := repo.Average("bob")
		if err != nil {
			t.Fatalf("Average failed: %v", err)
		}
		if summary.AverageMood != 2.67 {
			t.Errorf("AverageMood = %v, want 2.67", summary.AverageMood)
		}
		if summary.Interpretation != "Negative" {
			t.Errorf("Interpretation = %q, want Negative", summary.Interpretation)
		}
	})

	t.Run("existing but empty history reports empty", func(t *testing.T) {
		if _, err := db.Exec("INSERT INTO mood_histories (username) VALUES ('carol')"); err != nil {
			t.Fatalf("failed to seed history record: %v", err)
		}

		_, err := repo.Average("carol")
		if !errors.Is(err, shared.ErrEmptyHistory) {
			t.Errorf("expected ErrEmptyHistory, got %v", err)
		}

		scores, err := repo.Get("carol")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(scores) != 0 {
			t.Errorf("got %d scores, want 0", len(scores))
		}
	})
}

func TestHistoryRepositoryConcurrentAppends(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t))

	const appends = 25

	var wg sync.WaitGroup
	totals := make([]int, appends)
	errs := make([]error, appends)

	for i := range appends {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			totals[i], errs[i] = repo.Append("alice", 5, "neutral", 0.7)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	seen := make(map[int]bool, appends)
	for _, total := range totals {
		if seen[total] {
			t.Errorf("duplicate total %d: an append was lost", total)
		}
		seen[total] = true
	}

	scores, err := repo.Get("alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(scores) != appends {
		t.Errorf("got %d scores, want %d", len(scores), appends)
	}
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	t.Run("create and authenticate", func(t *testing.T) {
		user, err := repo.Create("alice", "hunter2")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if user.PasswordDigest == "hunter2" {
			t.Fatal("password stored as plaintext")
		}

		got, err := repo.Authenticate("alice", "hunter2")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.Username != "alice" {
			t.Errorf("Username = %q, want alice", got.Username)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := repo.Authenticate("alice", "wrong")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user rejected identically", func(t *testing.T) {
		_, err := repo.Authenticate("mallory", "hunter2")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := repo.Create("alice", "other")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("blank credentials rejected", func(t *testing.T) {
		_, err := repo.Create("", "pw")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.Exists("alice")
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if !ok {
			t.Error("expected alice to exist")
		}

		ok, err = repo.Exists("nobody")
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if ok {
			t.Error("expected nobody to be absent")
		}
	})
}
