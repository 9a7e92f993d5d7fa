package testsupport

import (
	"context"
	"testing"
	"time"

	"shelfpace/internal/book"
	"shelfpace/internal/config"
)

// MustOpenStore opens a book.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *book.Store {
	t.Helper()

	store, err := book.Open(cfg)
	if err != nil {
		t.Fatalf("book.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// AddBook inserts the provided book and fails the test on error.
func AddBook(t testing.TB, store *book.Store, b *book.Book) *book.Book {
	t.Helper()

	if err := store.AddBook(context.Background(), b); err != nil {
		t.Fatalf("store.AddBook: %v", err)
	}
	return b
}

// ActiveBook builds an in-progress book fixture.
func ActiveBook(title string, duration, speed, percent float64, started time.Time) *book.Book {
	return &book.Book{
		Title:           title,
		Duration:        duration,
		ReadingSpeed:    speed,
		PercentComplete: percent,
		StartedAt:       started,
	}
}

// FinishedBook builds a completed book fixture spanning readDays.
func FinishedBook(title string, duration, speed float64, started time.Time, readDays float64) *book.Book {
	finished := started.Add(time.Duration(readDays * float64(24*time.Hour)))
	return &book.Book{
		Title:           title,
		Duration:        duration,
		ReadingSpeed:    speed,
		PercentComplete: 100,
		StartedAt:       started,
		FinishedAt:      &finished,
	}
}
