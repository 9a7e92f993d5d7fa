package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shelfpace/internal/book"
	"shelfpace/internal/pace"
	"shelfpace/internal/timeutil"
)

func newPaceCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pace [BOOK]",
		Short: "Show reading pace for active books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				now := time.Now().UTC()

				if len(args) == 1 {
					b, err := resolveBook(ctx, store, args[0])
					if err != nil {
						return err
					}
					writePaceReport(out, *b, pace.Compute(*b, now), colorize)
					return nil
				}

				books, err := store.ListBooks(ctx)
				if err != nil {
					return err
				}
				active := activeOnly(books)
				if len(active) == 0 {
					fmt.Fprintln(out, "No active books.")
					return nil
				}
				for i, b := range active {
					if i > 0 {
						fmt.Fprintln(out)
					}
					writePaceReport(out, b, pace.Compute(b, now), colorize)
				}
				return nil
			})
		},
	}
	return cmd
}

func writePaceReport(out io.Writer, b book.Book, snap pace.Snapshot, colorize bool) {
	title := fmt.Sprintf("%s (%s at %sx)", b.Title, timeutil.FormatDuration(b.Duration), timeutil.FormatReadingSpeed(b.ReadingSpeed))
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("-", len(title)))

	fmt.Fprintf(out, "  Progress:   %s (%s listened over %.1f days)\n",
		formatPercent(b.PercentComplete), timeutil.FormatHoursMinutes(snap.TrueHoursCompleted), snap.ElapsedDays)

	paceText := fmt.Sprintf("%.2f hrs/day", snap.TrueHoursPerDay)
	fmt.Fprintf(out, "  Pace:       %s\n", paint(paceText, paceColor(snap.OnPace()), colorize))

	if snap.Buffer != "" {
		fmt.Fprintf(out, "  Buffer:     %s\n", paint(snap.Buffer, ansiGreen, colorize))
	} else if snap.MinutesNeededToday > 0 {
		needed := fmt.Sprintf("%d min needed today", snap.MinutesNeededToday)
		fmt.Fprintf(out, "  Catch up:   %s\n", paint(needed, ansiRed, colorize))
	}

	if snap.ETA != nil {
		fmt.Fprintf(out, "  ETA:        %s\n", snap.ETA.Local().Format("Mon, Jan 2"))
	}
	fmt.Fprintf(out, "  Density:    %s per 1%%, %.1f%% per listening hour\n",
		timeutil.FormatHoursMinutes(snap.MinutesPerPercent/60), snap.PercentPerTrueHour)
}
