package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"pitchdeck-scraper/internal/cache"
	"pitchdeck-scraper/internal/config"
	"pitchdeck-scraper/internal/scrape"
	"pitchdeck-scraper/internal/scrape/types"
	"pitchdeck-scraper/internal/store"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// newLogger returns a tint console logger; color is on only when w is a
// terminal.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    !color,
	}))
}

// openStore opens the run archive, or returns nil when store.path is empty.
func openStore(cfg config.Config) (*store.DB, error) {
	if cfg.Store.Path == "" {
		return nil, nil
	}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, &types.FileError{Op: "open store", Path: cfg.Store.Path, Err: err}
	}
	return db, nil
}

// newFetcher builds the fetcher for cfg, attaching the Redis page cache when
// one is configured and reachable, else mem when given. The returned func
// releases the cache.
func newFetcher(ctx context.Context, cfg config.Config, mem *cache.Memory) (*scrape.Fetcher, func()) {
	if cfg.Cache.RedisAddr == "" {
		if mem != nil {
			return scrape.NewFetcherFromConfig(cfg, scrape.WithCache(mem)), func() {}
		}
		return scrape.NewFetcherFromConfig(cfg), func() {}
	}

	rc := cache.NewRedis(cache.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
		TTL:      cfg.Cache.TTL,
	})
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pctx); err != nil {
		slog.Warn("[cache] redis unreachable, falling back", "addr", cfg.Cache.RedisAddr, "err", err)
		_ = rc.Close()
		cfg.Cache.RedisAddr = ""
		return newFetcher(ctx, cfg, mem)
	}
	slog.Info("[cache] page cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	return scrape.NewFetcherFromConfig(cfg, scrape.WithCache(rc)), func() { _ = rc.Close() }
}

func buildDeps(ctx context.Context, cfg config.Config) (scrape.Deps, func(), error) {
	db, err := openStore(cfg)
	if err != nil {
		return scrape.Deps{}, nil, err
	}
	fetcher, closeCache := newFetcher(ctx, cfg, nil)

	deps := scrape.Deps{
		Cfg:      cfg,
		Fetcher:  fetcher,
		Observer: scrape.LogObserver{},
	}
	if db != nil {
		deps.DB = db.Pool
	}
	return deps, func() {
		closeCache()
		_ = db.Close()
	}, nil
}
