package main

import (
	"fmt"
	"log/slog"
	"time"

	"pitchdeck-scraper/internal/scrape"

	"github.com/spf13/cobra"
)

func runScrape(cmd *cobra.Command, args []string) error {
	op, err := scrape.ParseOperation(args[0])
	if err != nil {
		return err
	}

	deps, cleanup, err := buildDeps(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, p := range op.Pipelines() {
		slog.Info(fmt.Sprintf("[scrape:%s] fetching index page", p), "base_url", cfg.HTTP.BaseURL)
	}

	start := time.Now()
	runs, err := scrape.RunOperation(cmd.Context(), deps, op)
	if err != nil {
		slog.Error(fmt.Sprintf("[scrape:%s] aborted", op), "err", err)
		return err
	}

	for _, r := range runs {
		slog.Info(fmt.Sprintf("[scrape:%s] done", r.Operation),
			"records", r.RecordCount, "output", r.OutputPath, "run_id", r.ID)
	}
	slog.Info("[scrape] finished", "operation", op, "dur", time.Since(start).Round(time.Millisecond))
	return nil
}
