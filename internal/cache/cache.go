package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

// Redis caches page bodies in Redis. Errors are logged and treated as a miss
// so a down cache never fails a scrape.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedis(opts Options) *Redis {
	if opts.Prefix == "" {
		opts.Prefix = "pitchdeck:page:"
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		ttl:    opts.TTL,
		prefix: opts.Prefix,
	}
}

func (c *Redis) Key(url string) string {
	h := sha256.Sum256([]byte(url))
	return c.prefix + hex.EncodeToString(h[:])
}

func (c *Redis) Get(ctx context.Context, url string) ([]byte, bool) {
	b, err := c.client.Get(ctx, c.Key(url)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("[cache] get failed", "url", url, "err", err)
		}
		return nil, false
	}
	return b, true
}

func (c *Redis) Set(ctx context.Context, url string, body []byte) {
	if err := c.client.Set(ctx, c.Key(url), body, c.ttl).Err(); err != nil {
		slog.Warn("[cache] set failed", "url", url, "err", err)
	}
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Close() error { return c.client.Close() }
