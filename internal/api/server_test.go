package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shelfpace/internal/testsupport"
)

var apiRefTime = time.Date(2026, time.June, 15, 18, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, token string) (*Server, *httptest.Server) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	cfg.Paths.APIToken = token
	store := testsupport.MustOpenStore(t, cfg)

	server := NewServer(store, cfg, nil)
	server.now = func() time.Time { return apiRefTime }

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return server, ts
}

func getJSON(t *testing.T, ts *httptest.Server, path, token string, out any) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

func TestListBooksEndpoint(t *testing.T) {
	server, ts := newTestServer(t, "")
	testsupport.AddBook(t, server.store, testsupport.ActiveBook("Active", 10, 2, 5, apiRefTime.Add(-3*time.Hour)))
	testsupport.AddBook(t, server.store, testsupport.FinishedBook("Done", 8, 1, apiRefTime.Add(-10*24*time.Hour), 4))

	var books []bookView
	resp := getJSON(t, ts, "/api/books", "", &books)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	var finished int
	for _, b := range books {
		if b.Finished {
			finished++
		}
	}
	if finished != 1 {
		t.Fatalf("expected 1 finished book, got %d", finished)
	}
}

func TestBookPaceEndpoint(t *testing.T) {
	server, ts := newTestServer(t, "")
	b := testsupport.AddBook(t, server.store, testsupport.ActiveBook("Active", 10, 2, 5, apiRefTime.Add(-3*time.Hour)))

	var view paceView
	resp := getJSON(t, ts, "/api/books/"+b.ID+"/pace", "", &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if view.TrueHoursPerDay != 0.25 {
		t.Fatalf("TrueHoursPerDay = %v, want 0.25", view.TrueHoursPerDay)
	}
	if view.MinutesNeededToday != 45 {
		t.Fatalf("MinutesNeededToday = %d, want 45", view.MinutesNeededToday)
	}
	if view.OnPace {
		t.Fatal("expected behind pace")
	}

	if resp := getJSON(t, ts, "/api/books/unknown/pace", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown book, got %d", resp.StatusCode)
	}
}

func TestGoalEndpoint(t *testing.T) {
	server, ts := newTestServer(t, "")
	ctx := context.Background()
	if err := server.store.SetGoal(ctx, apiRefTime.Year(), 24); err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	started := time.Date(apiRefTime.Year(), time.February, 1, 0, 0, 0, 0, time.UTC)
	testsupport.AddBook(t, server.store, testsupport.FinishedBook("Done", 10, 1, started, 5))

	var view goalView
	resp := getJSON(t, ts, "/api/goals/2026", "", &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if view.Goal != 24 || view.CompletedCount != 1 {
		t.Fatalf("unexpected goal view %+v", view)
	}
	if view.ExpectedCount <= 0 {
		t.Fatalf("ExpectedCount = %v, want positive mid-year", view.ExpectedCount)
	}
	if view.DeltaDisplay == "" {
		t.Fatal("expected delta display string")
	}

	if resp := getJSON(t, ts, "/api/goals/1999", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unconfigured year, got %d", resp.StatusCode)
	}
	if resp := getJSON(t, ts, "/api/goals/latest", "", nil); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer year, got %d", resp.StatusCode)
	}
}

func TestStatsEndpoints(t *testing.T) {
	server, ts := newTestServer(t, "")
	started := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	testsupport.AddBook(t, server.store, testsupport.FinishedBook("A", 10, 1, started, 10))
	testsupport.AddBook(t, server.store, testsupport.FinishedBook("B", 20, 2, started.Add(30*24*time.Hour), 20))

	var years []yearView
	if resp := getJSON(t, ts, "/api/stats/years", "", &years); resp.StatusCode != http.StatusOK {
		t.Fatalf("years status = %d", resp.StatusCode)
	}
	if len(years) != 1 || years[0].Year != 2025 || years[0].BookCount != 2 {
		t.Fatalf("unexpected years %+v", years)
	}

	var lifetime lifetimeView
	if resp := getJSON(t, ts, "/api/stats/lifetime", "", &lifetime); resp.StatusCode != http.StatusOK {
		t.Fatalf("lifetime status = %d", resp.StatusCode)
	}
	if lifetime.TotalBooks != 2 || lifetime.TotalHours != 30 {
		t.Fatalf("unexpected lifetime %+v", lifetime)
	}
	if lifetime.ProjectedBooksLeft != 0 {
		t.Fatalf("expected zero projection without birthday, got %d", lifetime.ProjectedBooksLeft)
	}
}

func TestBearerTokenGate(t *testing.T) {
	_, ts := newTestServer(t, "secret")

	if resp := getJSON(t, ts, "/api/books", "", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
	if resp := getJSON(t, ts, "/api/books", "wrong", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", resp.StatusCode)
	}
	var books []bookView
	if resp := getJSON(t, ts, "/api/books", "secret", &books); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", resp.StatusCode)
	}
}
