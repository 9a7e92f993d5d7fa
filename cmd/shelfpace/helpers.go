package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"shelfpace/internal/book"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// paint wraps text in an ANSI color when colorize is on.
func paint(text, color string, colorize bool) string {
	if !colorize || color == "" {
		return text
	}
	return color + text + ansiReset
}

func paceColor(onPace bool) string {
	if onPace {
		return ansiGreen
	}
	return ansiRed
}

// resolveBook matches arg against book IDs first, then titles. ID prefixes
// and case-insensitive title substrings are accepted when unambiguous.
func resolveBook(ctx context.Context, store *book.Store, arg string) (*book.Book, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("book id or title is required")
	}

	if b, err := store.GetBook(ctx, arg); err == nil {
		return b, nil
	}

	books, err := store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	var matches []book.Book
	for _, b := range books {
		if strings.HasPrefix(b.ID, arg) {
			matches = append(matches, b)
		}
	}
	if len(matches) == 0 {
		needle := strings.ToLower(arg)
		for _, b := range books {
			if strings.Contains(strings.ToLower(b.Title), needle) {
				matches = append(matches, b)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no book matches %q", arg)
	case 1:
		b := matches[0]
		return &b, nil
	default:
		titles := make([]string, 0, len(matches))
		for _, b := range matches {
			titles = append(titles, b.Title)
		}
		return nil, fmt.Errorf("%q matches multiple books: %s", arg, strings.Join(titles, ", "))
	}
}

// parseHours accepts a narrated length as decimal hours ("11.78"), a Go
// duration ("11h47m"), or clock notation ("11:47").
func parseHours(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("duration is required")
	}

	if hours, err := strconv.ParseFloat(value, 64); err == nil {
		return hours, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d.Hours(), nil
	}
	if h, m, ok := strings.Cut(value, ":"); ok {
		hours, errH := strconv.Atoi(h)
		minutes, errM := strconv.Atoi(m)
		if errH == nil && errM == nil && hours >= 0 && minutes >= 0 && minutes < 60 {
			return float64(hours) + float64(minutes)/60, nil
		}
	}
	return 0, fmt.Errorf("cannot parse duration %q (use decimal hours, 11h47m, or 11:47)", value)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q (use YYYY-MM-DD)", value)
	}
	return t.UTC(), nil
}

func finishedLabel(b book.Book) string {
	if b.FinishedAt == nil {
		return ""
	}
	return humanize.Time(*b.FinishedAt)
}

func formatPercent(percent float64) string {
	return strconv.FormatFloat(percent, 'f', -1, 64) + "%"
}
