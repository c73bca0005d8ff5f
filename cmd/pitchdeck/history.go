package main

import (
	"fmt"
	"os"
	"time"

	"pitchdeck-scraper/internal/scrape/types"
	"pitchdeck-scraper/internal/store"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	historyLimit     int
	historyOperation string
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to show")
	historyCmd.Flags().StringVar(&historyOperation, "operation", "", "only show companies or pitches runs")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--limit N] [--operation companies|pitches]",
	Short: "Lists archived scrape runs.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		if db == nil {
			return &types.ConfigurationError{Field: "store.path", Reason: "run archive is disabled"}
		}
		defer db.Close()

		runs, err := store.ListRuns(cmd.Context(), db.Pool, store.ListRunsOpts{
			Operation: historyOperation,
			Limit:     historyLimit,
		})
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Operation", "Finished", "Duration", "Records", "Output"})
		for _, r := range runs {
			t.AppendRow(table.Row{
				r.ID,
				r.Operation,
				r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
				r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
				r.RecordCount,
				r.OutputPath,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
