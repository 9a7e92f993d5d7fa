package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"shelfpace/internal/book"
	"shelfpace/internal/stats"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var lifetime bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Reading history by year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				books, err := store.ListBooks(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				now := time.Now().UTC()

				years := stats.ByYear(books, now)
				if len(years) == 0 {
					fmt.Fprintln(out, "No finished books yet.")
					return nil
				}
				fmt.Fprintln(out, renderYearTable(stats.LatestFirst(years)))

				if lifetime {
					fmt.Fprintln(out)
					writeLifetime(cmd, stats.ComputeLifetime(books, now))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&lifetime, "lifetime", false, "Include lifetime totals")
	return cmd
}

// renderYearTable marks per-metric record years with a trailing asterisk.
func renderYearTable(years []stats.YearStat) string {
	rows := make([][]string, 0, len(years))
	for _, y := range years {
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			record(strconv.Itoa(y.BookCount), y.MaxBooks),
			record(fmt.Sprintf("%.1f", y.TotalHours), y.MaxHours),
			record(fmt.Sprintf("%.1f", y.HoursPerBook), y.MaxHoursPerBook),
			record(fmt.Sprintf("%.2f", y.HoursPerDay), y.MaxHoursPerDay),
		})
	}
	headers := []string{"Year", "Books", "Hours", "Hrs/Book", "Hrs/Day"}
	aligns := []text.Align{text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignRight, text.AlignRight}
	return renderTable(headers, rows, aligns)
}

func record(value string, best bool) string {
	if best {
		return value + " *"
	}
	return value
}

func writeLifetime(cmd *cobra.Command, lt stats.Lifetime) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Lifetime (%.1f years tracked)\n", lt.YearsTracked)
	fmt.Fprintf(out, "  Books:      %d (%.1f per year)\n", lt.TotalBooks, lt.AverageBooksPerYear)
	fmt.Fprintf(out, "  Hours:      %.1f (%.1f per book)\n", lt.TotalHours, lt.AverageHoursPerBook)
	fmt.Fprintf(out, "  Pace:       %.2f true hrs/day, %.1f days per book\n", lt.AverageHoursPerDay, lt.AverageDaysPerBook)
}
