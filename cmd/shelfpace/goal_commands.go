package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"shelfpace/internal/book"
	"shelfpace/internal/goals"
)

func newGoalCommand(ctx *commandContext) *cobra.Command {
	goalCmd := &cobra.Command{
		Use:   "goal",
		Short: "Annual reading goal",
	}

	goalCmd.AddCommand(newGoalSetCommand(ctx))
	goalCmd.AddCommand(newGoalStatusCommand(ctx))

	return goalCmd
}

func newGoalSetCommand(ctx *commandContext) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "set TARGET",
		Short: "Set the books-per-year target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.Atoi(args[0])
			if err != nil || target <= 0 {
				return fmt.Errorf("target must be a positive book count, got %q", args[0])
			}
			if year == 0 {
				year = time.Now().Year()
			}

			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				if err := store.SetGoal(ctx, year, target); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Goal for %d set to %d books\n", year, target)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Goal year (defaults to the current year)")
	return cmd
}

func newGoalStatusCommand(ctx *commandContext) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progress against the annual goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if year == 0 {
				year = now.Year()
			}

			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				goal, err := store.GoalForYear(ctx, year)
				if errors.Is(err, book.ErrNotFound) {
					return fmt.Errorf("no goal configured for %d (set one with `shelfpace goal set`)", year)
				}
				if err != nil {
					return err
				}
				books, err := store.ListBooks(ctx)
				if err != nil {
					return err
				}

				progress := goals.Compute(books, goal, year, now)
				writeGoalStatus(cmd, progress)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Goal year (defaults to the current year)")
	return cmd
}

func writeGoalStatus(cmd *cobra.Command, p goals.Progress) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "%d goal: %d of %d books\n", p.Year, p.CompletedCount, p.Goal)

	deltaColor := ansiGreen
	label := "ahead of schedule"
	if !p.Ahead() {
		deltaColor = ansiRed
		label = "behind schedule"
	}
	delta := fmt.Sprintf("%s books %s", goals.DisplayDelta(math.Abs(p.Delta)), label)
	fmt.Fprintf(out, "  Schedule:   %s (expected %.1f by today)\n", paint(delta, deltaColor, colorize), p.ExpectedCount)

	if p.TargetHoursPerDay > 0 {
		fmt.Fprintf(out, "  To hit it:  %.2f hrs/day for the rest of the year\n", p.TargetHoursPerDay)
	}
	fmt.Fprintf(out, "  Projection: %.1f books (%.0f hrs) at the current rate\n", p.ProjectedBooks, p.ProjectedHours)
	if p.IdleDays > 0 {
		fmt.Fprintf(out, "  Idle days:  %.1f between books this year\n", p.IdleDays)
	}
}
