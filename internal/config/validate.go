package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"pitchdeck-scraper/internal/scrape/types"
	"pitchdeck-scraper/internal/scrape/util"

	"github.com/robfig/cron/v3"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err returns nil when OK, otherwise a ConfigurationError naming the first
// failing key and listing every failure.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	field, _, _ := strings.Cut(v.Errors[0], " ")
	return &types.ConfigurationError{
		Field:  field,
		Reason: strings.Join(v.Errors, "; "),
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// NormalizeAndValidate returns a trimmed copy of cfg and the problems found.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	t := strings.TrimSpace
	out.HTTP.BaseURL = t(out.HTTP.BaseURL)
	out.HTTP.UserAgent = t(out.HTTP.UserAgent)
	out.HTTP.DumpDir = t(out.HTTP.DumpDir)
	out.Pipelines.LinksSelector = t(out.Pipelines.LinksSelector)
	out.Pipelines.Companies.IndexPath = t(out.Pipelines.Companies.IndexPath)
	out.Pipelines.Companies.Output = t(out.Pipelines.Companies.Output)
	out.Pipelines.Pitches.IndexPath = t(out.Pipelines.Pitches.IndexPath)
	out.Pipelines.Pitches.Output = t(out.Pipelines.Pitches.Output)
	out.Cache.RedisAddr = t(out.Cache.RedisAddr)
	out.Store.Path = t(out.Store.Path)
	out.Log.Level = strings.ToLower(t(out.Log.Level))
	if out.Log.Level == "" {
		out.Log.Level = "info"
	}

	// ---- Validation rules ----

	if !util.ValidBaseURL(out.HTTP.BaseURL) {
		res.addErr("http.base_url must be an absolute http(s) URL without a trailing slash, got %q", out.HTTP.BaseURL)
	}
	if out.HTTP.Timeout < 0 {
		res.addErr("http.timeout must be >= 0")
	} else if out.HTTP.Timeout == 0 {
		res.addWarn("http.timeout is 0; requests will never time out.")
	}
	if !out.HTTP.StrictStatus {
		res.addWarn("http.strict_status is false; error pages will be parsed as content.")
	}
	if out.Pipelines.LinksSelector == "" {
		res.addErr("pipelines.links_selector is required")
	}

	checkPath := func(key, p string) {
		if !strings.HasPrefix(p, "/") {
			res.addErr("%s must start with '/', got %q", key, p)
		}
	}
	checkSel := func(key, s string) {
		if t(s) == "" {
			res.addErr("%s is required", key)
		}
	}

	c := out.Pipelines.Companies
	checkPath("pipelines.companies.index_path", c.IndexPath)
	checkSel("pipelines.companies.output", c.Output)
	checkSel("pipelines.companies.selectors.name", c.Selectors.Name)
	checkSel("pipelines.companies.selectors.description", c.Selectors.Description)
	checkSel("pipelines.companies.selectors.logo", c.Selectors.Logo)

	p := out.Pipelines.Pitches
	checkPath("pipelines.pitches.index_path", p.IndexPath)
	checkSel("pipelines.pitches.output", p.Output)
	checkSel("pipelines.pitches.selectors.name", p.Selectors.Name)
	checkSel("pipelines.pitches.selectors.hashtags", p.Selectors.Hashtags)

	if c.Output != "" && filepath.Clean(c.Output) == filepath.Clean(p.Output) {
		res.addErr("pipelines.pitches.output must differ from pipelines.companies.output (%q)", c.Output)
	}

	if (out.Cache.RedisAddr != "" || out.Cache.MemoryEntries > 0) && out.Cache.TTL <= 0 {
		res.addErr("cache.ttl must be > 0 when a page cache is enabled")
	}
	if out.Cache.MemoryEntries < 0 {
		res.addErr("cache.memory_entries must be >= 0")
	}
	if out.Store.Path == "" {
		res.addWarn("store.path is empty; run history will not be recorded.")
	}
	if !logLevels[out.Log.Level] {
		res.addErr("log.level must be one of debug, info, warn, error, got %q", out.Log.Level)
	}
	if out.Server.Every < 0 {
		res.addErr("server.every must be >= 0")
	}
	out.Server.Cron = t(out.Server.Cron)
	if out.Server.Cron != "" {
		if _, err := cron.ParseStandard(out.Server.Cron); err != nil {
			res.addErr("server.cron is not a valid cron spec: %v", err)
		} else if out.Server.Every > 0 {
			res.addWarn("server.cron and server.every are both set; server.cron wins.")
		}
	}

	return out, res
}
