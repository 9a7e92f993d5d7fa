package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shelfpace/internal/book"
	"shelfpace/internal/stats"
)

func newProjectionCommand(ctx *commandContext) *cobra.Command {
	var birthday string
	var lifeExpectancy float64

	cmd := &cobra.Command{
		Use:   "projection",
		Short: "Project how many more books you will finish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(ctx context.Context, store *book.Store) error {
				if strings.TrimSpace(birthday) != "" {
					day, err := parseDate(birthday)
					if err != nil {
						return err
					}
					if err := store.SaveBirthday(ctx, day); err != nil {
						return err
					}
				}
				if lifeExpectancy > 0 {
					if err := store.SaveLifeExpectancy(ctx, lifeExpectancy); err != nil {
						return err
					}
				}

				profile, err := store.LoadProfile(ctx)
				if err != nil {
					return err
				}
				if profile.Birthday == nil {
					return fmt.Errorf("no birthday configured; run `shelfpace projection --birthday YYYY-MM-DD`")
				}

				books, err := store.ListBooks(ctx)
				if err != nil {
					return err
				}

				now := time.Now().UTC()
				lifetime := stats.ComputeLifetime(books, now)
				projection := stats.ComputeProjection(profile, lifetime, now)

				expectancy := profile.LifeExpectancy
				if expectancy <= 0 {
					expectancy = stats.DefaultLifeExpectancy
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Age %.1f, %.1f reading years left (life expectancy %.0f)\n",
					projection.AgeYears, projection.YearsLeft, expectancy)
				fmt.Fprintf(out, "At %.1f books per year: about %d more books\n",
					lifetime.AverageBooksPerYear, projection.ProjectedBooks)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&birthday, "birthday", "", "Set and save your birthday (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&lifeExpectancy, "life-expectancy", 0, "Set and save life expectancy in years")
	return cmd
}
