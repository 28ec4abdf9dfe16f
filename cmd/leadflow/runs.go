package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"leadflow-engine/internal/store"
)

var errNoHistory = errors.New("export.sqlite_path is not set; no run history is kept")

func newRunsCmd(g *globalFlags) *cobra.Command {
	var (
		limit int
		prune time.Duration
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs from the SQLite history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.load()
			if err != nil {
				return err
			}
			path := a.dbPath()
			if path == "" {
				return errNoHistory
			}
			ctx := cmd.Context()
			db, err := store.Open(ctx, path)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if prune > 0 {
				n, err := db.CleanupOldRuns(ctx, time.Now().Add(-prune))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "pruned %d runs older than %s\n", n, prune)
			}

			runs, err := db.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %-11s  %-14s  kept=%-4d batches=%d/%d  %s\n",
					r.ID, r.Kind, humanize.Time(r.StartedAt), r.Kept,
					r.Batches-r.FailedBatches, r.Batches, strings.Join(r.Cities, ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to list")
	cmd.Flags().DurationVar(&prune, "prune", 0, "first delete runs older than this")

	cmd.AddCommand(newRunShowCmd(g))
	return cmd
}

func newRunShowCmd(g *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the top investor leads of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.load()
			if err != nil {
				return err
			}
			path := a.dbPath()
			if path == "" {
				return errNoHistory
			}
			db, err := store.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer db.Close()

			leads, err := db.TopInvestors(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(leads) == 0 {
				fmt.Fprintf(out, "No investor leads stored for run %s.\n", args[0])
				return nil
			}
			for i, l := range leads {
				fmt.Fprintf(out, "%2d. %-24s %3d  %s (%s)\n", i+1, l.Name, l.QualityScore, l.Title, l.TargetCity)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of leads to print")
	return cmd
}
