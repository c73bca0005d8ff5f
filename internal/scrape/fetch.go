package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"pitchdeck-scraper/internal/scrape/types"
	"pitchdeck-scraper/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/singleflight"
)

const acceptEncoding = "gzip, deflate, br, zstd"

// PageCache stores fetched page bodies keyed by absolute URL.
type PageCache interface {
	Get(ctx context.Context, url string) ([]byte, bool)
	Set(ctx context.Context, url string, body []byte)
}

type FetcherConfig struct {
	BaseURL      string
	Timeout      time.Duration
	UserAgent    string
	StrictStatus bool
	DumpDir      string
}

type Fetcher struct {
	cfg    FetcherConfig
	client *resty.Client
	cache  PageCache
	flight singleflight.Group
	seq    atomic.Int64
}

type FetcherOption func(*Fetcher)

func WithCache(c PageCache) FetcherOption {
	return func(f *Fetcher) { f.cache = c }
}

// WithHTTPClient swaps the underlying transport client.
func WithHTTPClient(hc *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = resty.NewWithClient(hc)
	}
}

func NewFetcher(cfg FetcherConfig, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{cfg: cfg, client: resty.New()}
	for _, o := range opts {
		o(f)
	}

	f.client.
		SetHeader("Accept-Encoding", acceptEncoding).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	if cfg.UserAgent != "" {
		f.client.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Timeout > 0 {
		f.client.SetTimeout(cfg.Timeout)
	}
	if cfg.DumpDir != "" {
		if err := os.MkdirAll(cfg.DumpDir, 0o755); err != nil {
			slog.Warn("[fetch] dump dir unavailable, dumps disabled", "dir", cfg.DumpDir, "err", err)
			f.cfg.DumpDir = ""
		}
	}
	return f
}

func (f *Fetcher) BaseURL() string { return f.cfg.BaseURL }

// Fetch GETs base+path and parses the body as HTML.
func (f *Fetcher) Fetch(ctx context.Context, path string) (*goquery.Document, error) {
	url := util.JoinURL(f.cfg.BaseURL, path)

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &types.TransportError{URL: url, Err: fmt.Errorf("parse html: %w", err)}
	}
	return doc, nil
}

// get collapses concurrent requests for the same URL into one.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	v, err, _ := f.flight.Do(url, func() (any, error) {
		return f.load(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (f *Fetcher) load(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if b, ok := f.cache.Get(ctx, url); ok {
			slog.Debug("[fetch] cache hit", "url", url)
			return b, nil
		}
	}

	res, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, &types.TransportError{URL: url, Err: err}
	}
	raw := res.RawBody()
	defer raw.Close()

	status := res.StatusCode()
	ok := status >= 200 && status < 300

	var body []byte
	if ok || !f.cfg.StrictStatus {
		body, err = readBody(res.Header().Get("Content-Encoding"), raw)
		if err != nil {
			return nil, &types.TransportError{URL: url, Status: status, Err: err}
		}
	}
	f.dump(res, body)

	if !ok {
		if f.cfg.StrictStatus {
			return nil, &types.TransportError{URL: url, Status: status}
		}
		slog.Warn("[fetch] non-2xx response parsed anyway", "url", url, "status", status)
		return body, nil
	}

	if f.cache != nil {
		f.cache.Set(ctx, url, body)
	}
	return body, nil
}

// readBody decodes a response body according to its Content-Encoding.
func readBody(encoding string, r io.Reader) ([]byte, error) {
	var reader io.Reader
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		reader = r
	case "gzip":
		gz, gerr := gzip.NewReader(r)
		if gerr != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", gerr)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		zr, zerr := zlib.NewReader(r)
		if zerr != nil {
			return nil, fmt.Errorf("failed to create deflate reader: %w", zerr)
		}
		defer zr.Close()
		reader = zr
	case "br":
		reader = brotli.NewReader(r)
	case "zstd":
		zd, zerr := zstd.NewReader(r)
		if zerr != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", zerr)
		}
		defer zd.Close()
		reader = zd
	default:
		return nil, fmt.Errorf("unsupported content-encoding %q", encoding)
	}

	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// dump writes the request/response pair to the dump directory, if set.
func (f *Fetcher) dump(res *resty.Response, body []byte) {
	if f.cfg.DumpDir == "" {
		return
	}
	n := f.seq.Add(1)
	name := fmt.Sprintf("%04d_%s.txt", n, strings.Trim(unsafeName.ReplaceAllString(res.Request.URL, "_"), "_"))

	var out strings.Builder
	fmt.Fprintf(&out, "---- REQUEST ----\n\n%s %s\n\n%s\n\n", res.Request.Method, res.Request.URL, formatHeaders(res.Request.Header))
	fmt.Fprintf(&out, "---- RESPONSE ----\n\n%d %s\n\n%s\n\n%s", res.StatusCode(), res.Time(), formatHeaders(res.Header()), body)

	if err := os.WriteFile(filepath.Join(f.cfg.DumpDir, name), []byte(out.String()), 0o600); err != nil {
		slog.Warn("[fetch] failed to write dump file", "name", name, "err", err)
	}
}

func formatHeaders(headers http.Header) string {
	var out strings.Builder
	for k, vals := range headers {
		for _, v := range vals {
			fmt.Fprintf(&out, "%s: %s\n", k, v)
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}
