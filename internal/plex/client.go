package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"shelfpace/internal/config"
)

// LibrarySource supplies the remote album collection the sync layer merges
// from. It isolates callers from the HTTP client's lifecycle.
type LibrarySource interface {
	Albums(ctx context.Context) ([]Album, error)
}

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client implements LibrarySource against a Plex-style HTTP API. Requests are
// throttled so a large sync does not hammer a small home server.
type Client struct {
	baseURL    string
	token      string
	sectionKey string
	httpClient HTTPDoer
	limiter    *rate.Limiter
}

// NewClient constructs a client from application config. A nil httpClient
// falls back to a default with a request timeout.
func NewClient(cfg config.Plex, httpClient HTTPDoer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		token:      cfg.Token,
		sectionKey: cfg.SectionKey,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
	}
}

// Albums lists the audiobook albums in the configured library section.
func (c *Client) Albums(ctx context.Context) ([]Album, error) {
	if strings.TrimSpace(c.sectionKey) == "" {
		return nil, fmt.Errorf("plex section key is not configured")
	}

	path := fmt.Sprintf("/library/sections/%s/all", url.PathEscape(c.sectionKey))
	query := url.Values{"type": {"9"}} // 9 = album

	var resp mediaContainerResponse
	if err := c.doJSONRequest(ctx, path, query, &resp); err != nil {
		return nil, err
	}

	albums := make([]Album, 0, len(resp.MediaContainer.Metadata))
	for _, meta := range resp.MediaContainer.Metadata {
		if meta.Type != "" && meta.Type != "album" {
			continue
		}
		if strings.TrimSpace(meta.RatingKey) == "" {
			continue
		}
		albums = append(albums, Album{
			RatingKey:      meta.RatingKey,
			Title:          NormalizeTitle(meta.Title),
			Author:         NormalizeTitle(meta.ParentTitle),
			DurationMillis: meta.Duration,
		})
	}
	return albums, nil
}

// ReportProgress posts the listening position for an album to the timeline
// endpoint so other clients resume at the same spot.
func (c *Client) ReportProgress(ctx context.Context, ratingKey string, positionMillis, durationMillis int64) error {
	if strings.TrimSpace(ratingKey) == "" {
		return fmt.Errorf("rating key is required")
	}
	if positionMillis < 0 {
		positionMillis = 0
	}

	query := url.Values{
		"ratingKey": {ratingKey},
		"key":       {"/library/metadata/" + ratingKey},
		"state":     {"stopped"},
		"time":      {strconv.FormatInt(positionMillis, 10)},
		"duration":  {strconv.FormatInt(durationMillis, 10)},
	}
	return c.doJSONRequest(ctx, "/:/timeline", query, nil)
}

func (c *Client) doJSONRequest(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for request slot: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request %s: unexpected status %s", path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// NormalizeTitle tidies shouty or all-lowercase metadata while leaving
// mixed-case titles untouched.
func NormalizeTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return trimmed
	}

	hasUpper := false
	hasLower := false
	for _, r := range trimmed {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if hasUpper && hasLower {
		return trimmed
	}
	return cases.Title(language.Und).String(strings.ToLower(trimmed))
}
