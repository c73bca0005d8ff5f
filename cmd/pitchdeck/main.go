package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pitchdeck-scraper/internal/scrape/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(types.ExitCode(err))
	}
}
