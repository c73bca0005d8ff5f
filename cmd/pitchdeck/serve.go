package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"pitchdeck-scraper/internal/cache"
	"pitchdeck-scraper/internal/config"
	"pitchdeck-scraper/internal/domain"
	"pitchdeck-scraper/internal/events"
	"pitchdeck-scraper/internal/httpapi"
	"pitchdeck-scraper/internal/scheduler"
	"pitchdeck-scraper/internal/scrape"
	"pitchdeck-scraper/internal/scrape/types"
	"pitchdeck-scraper/internal/store"

	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveEvery  time.Duration
	serveCron   string
	serveOp     string
	serveRetain time.Duration
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().DurationVar(&serveEvery, "every", 0, "run --operation on this interval (overrides server.every, 0 disables)")
	serveCmd.Flags().StringVar(&serveCron, "cron", "", "run --operation on a cron spec such as \"0 */6 * * *\" (overrides server.cron and --every)")
	serveCmd.Flags().StringVar(&serveOp, "operation", "all", "operation the scheduler runs")
	serveCmd.Flags().DurationVar(&serveRetain, "retain", 90*24*time.Hour, "delete archived runs older than this (0 keeps everything)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--addr host:port] [--every 1h]",
	Short: "Serves the HTTP API for triggering scrapes and browsing archived runs.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	every := cfg.Server.Every
	if cmd.Flags().Changed("every") {
		every = serveEvery
	}
	spec := cfg.Server.Cron
	if serveCron != "" {
		spec = serveCron
	}
	schedOp, err := scrape.ParseOperation(serveOp)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)
	loadCfg := func() (config.Config, error) {
		c, vr, err := config.Resolve(cfgPath)
		if err != nil {
			return c, err
		}
		return c, vr.Err()
	}

	hub := events.NewHub()

	var mem *cache.Memory
	if cfg.Cache.MemoryEntries > 0 {
		mem = cache.NewMemory(cfg.Cache.MemoryEntries, cfg.Cache.TTL)
	}

	runFn := func(ctx context.Context, c config.Config, op scrape.Operation, obs types.Observer) ([]domain.Run, error) {
		fetcher, closeCache := newFetcher(ctx, c, mem)
		defer closeCache()
		deps := scrape.Deps{Cfg: c, Fetcher: fetcher, Observer: obs}
		if db != nil {
			deps.DB = db.Pool
		}
		return scrape.RunOperation(ctx, deps, op)
	}
	runner := httpapi.NewRunner(ctx, &cfgVal, hub, runFn)

	apiDeps := httpapi.Deps{
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: cfgPath,
		LoadCfg:     loadCfg,
		Runner:      runner,
	}
	if db != nil {
		apiDeps.DB = db.Pool
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &types.ConfigurationError{Field: "server.addr", Reason: err.Error()}
	}
	srv := &http.Server{
		Handler:           httpapi.NewRouter(apiDeps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	scheduled := func(context.Context) error { return runner.RunSync(schedOp) }
	switch {
	case spec != "":
		if err := scheduler.Cron(ctx, spec, "scheduler:"+string(schedOp), scheduled); err != nil {
			return &types.ConfigurationError{Field: "server.cron", Reason: err.Error()}
		}
		slog.Info("[scheduler] enabled", "operation", schedOp, "cron", spec)
	case every > 0:
		slog.Info("[scheduler] enabled", "operation", schedOp, "every", every)
		go scheduler.Every(ctx, every, "scheduler:"+string(schedOp), scheduled)
	}
	if db != nil && serveRetain > 0 {
		go scheduler.Every(ctx, 24*time.Hour, "store:cleanup", func(ctx context.Context) error {
			n, err := store.CleanupOldRuns(ctx, db.Pool, serveRetain)
			if n > 0 {
				slog.Info("[store] cleaned up old runs", "deleted", n)
			}
			return err
		})
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info(fmt.Sprintf("pitchdeck listening on http://%s", ln.Addr()), "store", cfg.Store.Path)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	runner.Close()
	return nil
}
