package plex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shelfpace/internal/book"
	"shelfpace/internal/logging"
)

// ProgressReporter pushes local listening progress back to the server.
type ProgressReporter interface {
	ReportProgress(ctx context.Context, ratingKey string, positionMillis, durationMillis int64) error
}

// Syncer merges the remote album library into the local shelf. Albums already
// linked to a book refresh that book's metadata; unknown albums become new
// unstarted books.
type Syncer struct {
	store        *book.Store
	source       LibrarySource
	reporter     ProgressReporter
	logger       *slog.Logger
	pushProgress bool
	defaultSpeed float64
}

// SyncResult summarizes one sync pass.
type SyncResult struct {
	Imported int
	Updated  int
	Pushed   int
}

// NewSyncer wires a sync service. reporter may be nil to disable pushes.
func NewSyncer(store *book.Store, source LibrarySource, reporter ProgressReporter, logger *slog.Logger, defaultSpeed float64) *Syncer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if defaultSpeed <= 0 {
		defaultSpeed = 1.0
	}
	return &Syncer{
		store:        store,
		source:       source,
		reporter:     reporter,
		logger:       logging.WithComponent(logger, "plex"),
		pushProgress: reporter != nil,
		defaultSpeed: defaultSpeed,
	}
}

// Sync pulls the album list, merges it into the store, and optionally pushes
// percent-complete upstream. The reference time stamps newly imported books.
func (s *Syncer) Sync(ctx context.Context, now time.Time) (SyncResult, error) {
	albums, err := s.source.Albums(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("list albums: %w", err)
	}
	s.logger.Info("fetched remote albums", slog.Int("albums", len(albums)))

	var result SyncResult
	for _, album := range albums {
		if album.Hours() <= 0 {
			s.logger.Warn("skipping album without duration",
				slog.String("rating_key", album.RatingKey),
				slog.String("title", album.Title))
			continue
		}

		existing, err := s.store.FindByPlexRatingKey(ctx, album.RatingKey)
		if err != nil {
			return result, fmt.Errorf("look up album %s: %w", album.RatingKey, err)
		}

		if existing == nil {
			imported := book.Book{
				Title:         album.Title,
				Author:        album.Author,
				Duration:      album.Hours(),
				ReadingSpeed:  s.defaultSpeed,
				StartedAt:     now,
				PlexRatingKey: album.RatingKey,
			}
			if err := s.store.AddBook(ctx, &imported); err != nil {
				return result, fmt.Errorf("import album %s: %w", album.RatingKey, err)
			}
			result.Imported++
			s.logger.Info("imported album",
				slog.String(logging.FieldBookID, imported.ID),
				slog.String("title", imported.Title))
			continue
		}

		if s.refreshMetadata(existing, album) {
			if err := s.store.UpdateBook(ctx, existing); err != nil {
				return result, fmt.Errorf("update book %s: %w", existing.ID, err)
			}
			result.Updated++
			s.logger.Info("refreshed album metadata",
				slog.String(logging.FieldBookID, existing.ID),
				slog.String("title", existing.Title))
		}

		if s.pushProgress && existing.PercentComplete > 0 {
			position := int64(existing.PercentComplete / 100 * float64(album.DurationMillis))
			if err := s.reporter.ReportProgress(ctx, album.RatingKey, position, album.DurationMillis); err != nil {
				s.logger.Warn("push progress failed",
					slog.String(logging.FieldBookID, existing.ID),
					slog.String("error", err.Error()))
				continue
			}
			result.Pushed++
		}
	}

	return result, nil
}

// refreshMetadata applies remote title/author/duration changes to a linked
// book, reporting whether anything changed. Local progress always wins.
func (s *Syncer) refreshMetadata(b *book.Book, album Album) bool {
	changed := false
	if title := strings.TrimSpace(album.Title); title != "" && b.Title != title {
		b.Title = title
		changed = true
	}
	if author := strings.TrimSpace(album.Author); author != "" && b.Author != author {
		b.Author = author
		changed = true
	}
	if hours := album.Hours(); hours > 0 && b.Duration != hours {
		b.Duration = hours
		changed = true
	}
	return changed
}
