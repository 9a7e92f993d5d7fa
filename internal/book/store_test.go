package book_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shelfpace/internal/book"
	"shelfpace/internal/testsupport"
)

func TestAddAndGetBook(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	started := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	b := testsupport.ActiveBook("Project Hail Mary", 16.2, 1.8, 12.5, started)
	if err := store.AddBook(ctx, b); err != nil {
		t.Fatalf("AddBook: %v", err)
	}
	if b.ID == "" {
		t.Fatal("expected generated book ID")
	}

	fetched, err := store.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}
	if fetched.Title != "Project Hail Mary" || fetched.ReadingSpeed != 1.8 {
		t.Fatalf("unexpected book %+v", fetched)
	}
	if !fetched.StartedAt.Equal(started) {
		t.Fatalf("StartedAt = %v, want %v", fetched.StartedAt, started)
	}
	if fetched.FinishedAt != nil {
		t.Fatal("expected nil FinishedAt for active book")
	}
}

func TestAddBookValidation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	started := time.Now().UTC()

	cases := []struct {
		name string
		book *book.Book
	}{
		{"empty title", testsupport.ActiveBook("  ", 10, 1, 0, started)},
		{"zero duration", testsupport.ActiveBook("B", 0, 1, 0, started)},
		{"negative speed", testsupport.ActiveBook("B", 10, -1, 0, started)},
		{"percent above 100", testsupport.ActiveBook("B", 10, 1, 101, started)},
		{"missing start", testsupport.ActiveBook("B", 10, 1, 0, time.Time{})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := store.AddBook(ctx, tc.book); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSetProgressMaintainsFinishInvariant(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	now := time.Date(2026, time.April, 2, 20, 0, 0, 0, time.UTC)

	b := testsupport.AddBook(t, store, testsupport.ActiveBook("B", 8, 1, 10, now.Add(-72*time.Hour)))

	updated, err := store.SetProgress(ctx, b.ID, 100, now)
	if err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	if updated.FinishedAt == nil || !updated.FinishedAt.Equal(now) {
		t.Fatalf("expected FinishedAt %v, got %v", now, updated.FinishedAt)
	}

	reopened, err := store.SetProgress(ctx, b.ID, 80, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("SetProgress back below 100: %v", err)
	}
	if reopened.FinishedAt != nil {
		t.Fatal("expected FinishedAt cleared when percent drops below 100")
	}

	if _, err := store.SetProgress(ctx, b.ID, 140, now); err == nil {
		t.Fatal("expected error for percent above 100")
	}
}

func TestListBooksOrdersByStartDescending(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	testsupport.AddBook(t, store, testsupport.ActiveBook("older", 5, 1, 0, base))
	testsupport.AddBook(t, store, testsupport.ActiveBook("newer", 5, 1, 0, base.Add(48*time.Hour)))

	books, err := store.ListBooks(ctx)
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if len(books) != 2 || books[0].Title != "newer" || books[1].Title != "older" {
		t.Fatalf("unexpected order: %+v", books)
	}
}

func TestDeleteBookNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.DeleteBook(context.Background(), "missing")
	if !errors.Is(err, book.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByPlexRatingKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	b := testsupport.ActiveBook("Linked", 10, 1, 0, time.Now().UTC())
	b.PlexRatingKey = "rk-1"
	testsupport.AddBook(t, store, b)

	found, err := store.FindByPlexRatingKey(ctx, "rk-1")
	if err != nil {
		t.Fatalf("FindByPlexRatingKey: %v", err)
	}
	if found == nil || found.ID != b.ID {
		t.Fatalf("expected linked book, got %+v", found)
	}

	missing, err := store.FindByPlexRatingKey(ctx, "rk-2")
	if err != nil {
		t.Fatalf("FindByPlexRatingKey missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown key, got %+v", missing)
	}
}

func TestGoalsRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.SetGoal(ctx, 2026, 24); err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	if err := store.SetGoal(ctx, 2026, 30); err != nil {
		t.Fatalf("SetGoal upsert: %v", err)
	}
	if err := store.SetGoal(ctx, 2025, 12); err != nil {
		t.Fatalf("SetGoal second year: %v", err)
	}

	target, err := store.GoalForYear(ctx, 2026)
	if err != nil {
		t.Fatalf("GoalForYear: %v", err)
	}
	if target != 30 {
		t.Fatalf("GoalForYear = %d, want 30", target)
	}

	goals, err := store.Goals(ctx)
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(goals) != 2 || goals[2025] != 12 {
		t.Fatalf("unexpected goals %v", goals)
	}

	if _, err := store.GoalForYear(ctx, 1999); !errors.Is(err, book.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.SetGoal(ctx, 2026, 0); err == nil {
		t.Fatal("expected error for non-positive target")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	profile, err := store.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile empty: %v", err)
	}
	if profile.Birthday != nil || profile.LifeExpectancy != 0 {
		t.Fatalf("expected zero profile, got %+v", profile)
	}

	birthday := time.Date(1986, time.September, 20, 0, 0, 0, 0, time.UTC)
	if err := store.SaveBirthday(ctx, birthday); err != nil {
		t.Fatalf("SaveBirthday: %v", err)
	}
	if err := store.SaveLifeExpectancy(ctx, 85); err != nil {
		t.Fatalf("SaveLifeExpectancy: %v", err)
	}

	profile, err = store.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if profile.Birthday == nil || !profile.Birthday.Equal(birthday) {
		t.Fatalf("Birthday = %v, want %v", profile.Birthday, birthday)
	}
	if profile.LifeExpectancy != 85 {
		t.Fatalf("LifeExpectancy = %v, want 85", profile.LifeExpectancy)
	}

	if err := store.SetSetting(ctx, book.SettingBirthday, "not-a-date"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if _, err := store.LoadProfile(ctx); err == nil {
		t.Fatal("expected error for malformed birthday")
	}
}
