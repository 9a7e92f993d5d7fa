package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"shelfpace/internal/book"
	"shelfpace/internal/config"
	"shelfpace/internal/goals"
	"shelfpace/internal/logging"
	"shelfpace/internal/pace"
	"shelfpace/internal/stats"
)

// Server exposes read-only derived statistics over HTTP.
type Server struct {
	store  *book.Store
	token  string
	logger *slog.Logger
	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewServer constructs the stats API server.
func NewServer(store *book.Store, cfg *config.Config, logger *slog.Logger) *Server {
	token := ""
	if cfg != nil {
		token = cfg.Paths.APIToken
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		store:  store,
		token:  token,
		logger: logging.WithComponent(logger, "api"),
		now:    time.Now,
	}
}

// Handler builds the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requireToken)

	r.Get("/api/books", s.handleListBooks)
	r.Get("/api/books/{id}/pace", s.handleBookPace)
	r.Get("/api/goals/{year}", s.handleGoal)
	r.Get("/api/stats/years", s.handleYears)
	r.Get("/api/stats/lifetime", s.handleLifetime)
	return r
}

// Serve runs the HTTP server until the context is canceled.
func (s *Server) Serve(ctx context.Context, bind string) error {
	server := &http.Server{
		Addr:              bind,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	s.logger.Info("stats API listening", slog.String("bind", bind))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.ListBooks(r.Context())
	if err != nil {
		s.internalError(w, "list books", err)
		return
	}
	views := make([]bookView, 0, len(books))
	for _, b := range books {
		views = append(views, bookView{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			DurationHours:   b.Duration,
			ReadingSpeed:    b.ReadingSpeed,
			PercentComplete: b.PercentComplete,
			StartedAt:       b.StartedAt,
			FinishedAt:      b.FinishedAt,
			Finished:        b.Finished(),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleBookPace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, err := s.store.GetBook(r.Context(), id)
	if errors.Is(err, book.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "book "+id+" not found")
		return
	}
	if err != nil {
		s.internalError(w, "get book", err)
		return
	}

	snap := pace.Compute(*b, s.now())
	writeJSON(w, http.StatusOK, paceView{
		BookID:             b.ID,
		ElapsedDays:        snap.ElapsedDays,
		TrueHoursCompleted: snap.TrueHoursCompleted,
		TrueHoursPerDay:    snap.TrueHoursPerDay,
		OnPace:             snap.OnPace(),
		ETA:                snap.ETA,
		MinutesNeededToday: snap.MinutesNeededToday,
		Buffer:             snap.Buffer,
		MinutesPerPercent:  snap.MinutesPerPercent,
		PercentPerTrueHour: snap.PercentPerTrueHour,
	})
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "year must be an integer")
		return
	}

	goal, err := s.store.GoalForYear(r.Context(), year)
	if errors.Is(err, book.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no goal configured for "+strconv.Itoa(year))
		return
	}
	if err != nil {
		s.internalError(w, "load goal", err)
		return
	}

	books, err := s.store.ListBooks(r.Context())
	if err != nil {
		s.internalError(w, "list books", err)
		return
	}

	progress := goals.Compute(books, goal, year, s.now())
	writeJSON(w, http.StatusOK, goalView{
		Year:              progress.Year,
		Goal:              progress.Goal,
		CompletedCount:    progress.CompletedCount,
		ExpectedCount:     progress.ExpectedCount,
		Delta:             progress.Delta,
		DeltaDisplay:      goals.DisplayDelta(progress.Delta),
		TargetHoursPerDay: progress.TargetHoursPerDay,
		ProjectedBooks:    progress.ProjectedBooks,
		ProjectedHours:    progress.ProjectedHours,
		IdleDays:          progress.IdleDays,
	})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.ListBooks(r.Context())
	if err != nil {
		s.internalError(w, "list books", err)
		return
	}

	yearStats := stats.ByYear(books, s.now())
	views := make([]yearView, 0, len(yearStats))
	for _, ys := range yearStats {
		views = append(views, yearView{
			Year:            ys.Year,
			BookCount:       ys.BookCount,
			TotalHours:      ys.TotalHours,
			HoursPerBook:    ys.HoursPerBook,
			HoursPerDay:     ys.HoursPerDay,
			MaxBooks:        ys.MaxBooks,
			MaxHours:        ys.MaxHours,
			MaxHoursPerBook: ys.MaxHoursPerBook,
			MaxHoursPerDay:  ys.MaxHoursPerDay,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleLifetime(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.ListBooks(r.Context())
	if err != nil {
		s.internalError(w, "list books", err)
		return
	}
	profile, err := s.store.LoadProfile(r.Context())
	if err != nil {
		s.internalError(w, "load profile", err)
		return
	}

	now := s.now()
	lifetime := stats.ComputeLifetime(books, now)
	projection := stats.ComputeProjection(profile, lifetime, now)
	writeJSON(w, http.StatusOK, lifetimeView{
		YearsTracked:        lifetime.YearsTracked,
		TotalBooks:          lifetime.TotalBooks,
		TotalHours:          lifetime.TotalHours,
		AverageBooksPerYear: lifetime.AverageBooksPerYear,
		AverageHoursPerDay:  lifetime.AverageHoursPerDay,
		AverageDaysPerBook:  lifetime.AverageDaysPerBook,
		AverageHoursPerBook: lifetime.AverageHoursPerBook,
		ProjectedBooksLeft:  projection.ProjectedBooks,
		YearsLeft:           projection.YearsLeft,
	})
}

func (s *Server) internalError(w http.ResponseWriter, action string, err error) {
	s.logger.Error(action+" failed", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "INTERNAL", action+" failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	var e errorResponse
	e.Error.Code = code
	e.Error.Message = msg
	writeJSON(w, status, e)
}
