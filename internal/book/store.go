package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"shelfpace/internal/config"
)

// Store manages book, goal, and setting persistence backed by SQLite. A file
// lock on the data directory serializes access across concurrent CLI
// invocations.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the shelf database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "shelfpace.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !acquired {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "shelfpace.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database and releases the data directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
	return dbErr
}

// Path returns the on-disk location of the database.
func (s *Store) Path() string {
	return s.path
}

// AddBook validates and inserts a new book. A missing ID is assigned.
func (s *Store) AddBook(ctx context.Context, b *Book) error {
	if b == nil {
		return errors.New("nil book")
	}
	if strings.TrimSpace(b.ID) == "" {
		b.ID = uuid.NewString()
	}
	if err := validateBook(b); err != nil {
		return err
	}

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO books (
            id, title, author, duration_hours, reading_speed, percent_complete,
            started_at, finished_at, plex_rating_key, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.Title,
		b.Author,
		b.Duration,
		b.ReadingSpeed,
		b.PercentComplete,
		formatTime(b.StartedAt),
		nullableTime(b.FinishedAt),
		b.PlexRatingKey,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetBook fetches a single book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*Book, error) {
	row := s.db.QueryRowContext(ctx, selectBookSQL+" WHERE id = ?", id)
	return scanBook(row)
}

// FindByPlexRatingKey fetches the book linked to a remote library album, or
// nil when no book carries the key.
func (s *Store) FindByPlexRatingKey(ctx context.Context, ratingKey string) (*Book, error) {
	if strings.TrimSpace(ratingKey) == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, selectBookSQL+" WHERE plex_rating_key = ?", ratingKey)
	b, err := scanBook(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

// ListBooks returns every tracked book ordered by start date descending.
func (s *Store) ListBooks(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, selectBookSQL+" ORDER BY started_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

// SetProgress updates a book's percent complete, maintaining the invariant
// that finished_at is set exactly when the book reaches 100 percent. The
// caller supplies the reference time used as the finish timestamp.
func (s *Store) SetProgress(ctx context.Context, id string, percent float64, now time.Time) (*Book, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("percent complete must be within [0, 100], got %v", percent)
	}

	b, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	b.PercentComplete = percent
	if percent >= 100 {
		finished := now
		b.FinishedAt = &finished
	} else {
		b.FinishedAt = nil
	}
	if err := s.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// FinishBook marks a book complete at the provided timestamp.
func (s *Store) FinishBook(ctx context.Context, id string, finishedAt time.Time) (*Book, error) {
	return s.SetProgress(ctx, id, 100, finishedAt)
}

// UpdateBook persists every mutable field of the provided book.
func (s *Store) UpdateBook(ctx context.Context, b *Book) error {
	if b == nil {
		return errors.New("nil book")
	}
	if err := validateBook(b); err != nil {
		return err
	}

	b.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE books SET
            title = ?, author = ?, duration_hours = ?, reading_speed = ?,
            percent_complete = ?, started_at = ?, finished_at = ?,
            plex_rating_key = ?, updated_at = ?
        WHERE id = ?`,
		b.Title,
		b.Author,
		b.Duration,
		b.ReadingSpeed,
		b.PercentComplete,
		formatTime(b.StartedAt),
		nullableTime(b.FinishedAt),
		b.PlexRatingKey,
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("book %s: %w", b.ID, ErrNotFound)
	}
	return nil
}

// DeleteBook removes a book by ID.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	return nil
}

// SetGoal upserts the annual target for a year.
func (s *Store) SetGoal(ctx context.Context, year, target int) error {
	if year <= 0 {
		return fmt.Errorf("invalid goal year %d", year)
	}
	if target <= 0 {
		return fmt.Errorf("goal target must be positive, got %d", target)
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO annual_goals (year, target) VALUES (?, ?)
         ON CONFLICT(year) DO UPDATE SET target = excluded.target`,
		year, target,
	)
	if err != nil {
		return fmt.Errorf("set goal: %w", err)
	}
	return nil
}

// GoalForYear returns the configured target for a year, or ErrNotFound.
func (s *Store) GoalForYear(ctx context.Context, year int) (int, error) {
	var target int
	err := s.db.QueryRowContext(ctx, "SELECT target FROM annual_goals WHERE year = ?", year).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("goal for %d: %w", year, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("query goal: %w", err)
	}
	return target, nil
}

// Goals returns every configured annual goal keyed by year.
func (s *Store) Goals(ctx context.Context) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT year, target FROM annual_goals")
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := make(map[int]int)
	for rows.Next() {
		var year, target int
		if err := rows.Scan(&year, &target); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals[year] = target
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

// Setting reads a raw setting value, or ErrNotFound when unset.
func (s *Store) Setting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("query setting: %w", err)
	}
	return value, nil
}

// SetSetting upserts a raw setting value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("setting key must not be empty")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

const selectBookSQL = `SELECT id, title, author, duration_hours, reading_speed,
    percent_complete, started_at, finished_at, plex_rating_key, created_at, updated_at
    FROM books`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*Book, error) {
	var (
		b          Book
		startedAt  string
		finishedAt sql.NullString
		createdAt  string
		updatedAt  string
	)
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Duration,
		&b.ReadingSpeed,
		&b.PercentComplete,
		&startedAt,
		&finishedAt,
		&b.PlexRatingKey,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan book: %w", err)
	}

	if b.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt.Valid && strings.TrimSpace(finishedAt.String) != "" {
		parsed, err := parseTime(finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		b.FinishedAt = &parsed
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &b, nil
}

func validateBook(b *Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("book title must not be empty")
	}
	if b.Duration <= 0 {
		return fmt.Errorf("book duration must be positive, got %v", b.Duration)
	}
	if b.ReadingSpeed <= 0 {
		return fmt.Errorf("reading speed must be positive, got %v", b.ReadingSpeed)
	}
	if b.PercentComplete < 0 || b.PercentComplete > 100 {
		return fmt.Errorf("percent complete must be within [0, 100], got %v", b.PercentComplete)
	}
	if b.StartedAt.IsZero() {
		return errors.New("book start date must be set")
	}
	if b.FinishedAt != nil && b.PercentComplete < 100 {
		return errors.New("finish date requires 100 percent complete")
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
