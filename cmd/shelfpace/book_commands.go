package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"shelfpace/internal/book"
	"shelfpace/internal/timeutil"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var author string
	var duration string
	var speed float64
	var started string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Start tracking a new audiobook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := parseHours(duration)
			if err != nil {
				return err
			}

			startedAt := time.Now().UTC()
			if strings.TrimSpace(started) != "" {
				startedAt, err = parseDate(started)
				if err != nil {
					return err
				}
			}

			b := &book.Book{
				Title:        strings.TrimSpace(args[0]),
				Author:       strings.TrimSpace(author),
				Duration:     hours,
				ReadingSpeed: speed,
				StartedAt:    startedAt,
			}

			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				if err := store.AddBook(ctx, b); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s at %sx) with id %s\n",
					b.Title, timeutil.FormatDuration(b.Duration), timeutil.FormatReadingSpeed(b.ReadingSpeed), b.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Book author")
	cmd.Flags().StringVarP(&duration, "duration", "d", "", "Narrated length (decimal hours, 11h47m, or 11:47)")
	cmd.Flags().Float64VarP(&speed, "speed", "s", 1.0, "Playback speed multiplier")
	cmd.Flags().StringVar(&started, "started", "", "Start date (YYYY-MM-DD, defaults to now)")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked audiobooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				books, err := store.ListBooks(ctx)
				if err != nil {
					return err
				}
				if len(books) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No books tracked. Start one with `shelfpace add`.")
					return nil
				}
				if !all {
					books = activeOnly(books)
				}
				if len(books) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No active books (use --all to include finished books).")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderBookTable(books))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include finished books")
	return cmd
}

func activeOnly(books []book.Book) []book.Book {
	active := make([]book.Book, 0, len(books))
	for _, b := range books {
		if !b.Finished() {
			active = append(active, b)
		}
	}
	return active
}

func renderBookTable(books []book.Book) string {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		status := formatPercent(b.PercentComplete)
		if b.Finished() {
			status = "finished " + finishedLabel(b)
		}
		rows = append(rows, []string{
			shortID(b.ID),
			b.Title,
			b.Author,
			timeutil.FormatDuration(b.Duration),
			timeutil.FormatReadingSpeed(b.ReadingSpeed) + "x",
			status,
			b.StartedAt.Local().Format("2006-01-02"),
		})
	}
	headers := []string{"ID", "Title", "Author", "Length", "Speed", "Progress", "Started"}
	aligns := []text.Align{text.AlignLeft, text.AlignLeft, text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignLeft, text.AlignLeft}
	return renderTable(headers, rows, aligns)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newProgressCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress BOOK PERCENT",
		Short: "Record listening progress for a book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			percent, err := strconv.ParseFloat(strings.TrimSuffix(args[1], "%"), 64)
			if err != nil {
				return fmt.Errorf("cannot parse percent %q", args[1])
			}

			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				b, err := resolveBook(ctx, store, args[0])
				if err != nil {
					return err
				}
				updated, err := store.SetProgress(ctx, b.ID, percent, time.Now().UTC())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if updated.Finished() {
					fmt.Fprintf(out, "Finished %q. Congratulations!\n", updated.Title)
					return nil
				}
				fmt.Fprintf(out, "%q is now at %s (%s listened)\n",
					updated.Title, formatPercent(updated.PercentComplete),
					timeutil.FormatHoursMinutes(updated.TrueHoursCompleted()))
				return nil
			})
		},
	}
	return cmd
}

func newFinishCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finish BOOK",
		Short: "Mark a book as finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				b, err := resolveBook(ctx, store, args[0])
				if err != nil {
					return err
				}
				updated, err := store.FinishBook(ctx, b.ID, time.Now().UTC())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Finished %q (%s at %sx)\n",
					updated.Title, timeutil.FormatDuration(updated.Duration), timeutil.FormatReadingSpeed(updated.ReadingSpeed))
				return nil
			})
		},
	}
	return cmd
}
