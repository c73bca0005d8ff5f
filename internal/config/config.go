package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL       = "http://pitchdeck.business"
	DefaultLinksSelector = "td > a"
	DefaultUserAgent     = "pitchdeck-scraper/1.0 (+local)"
)

type CompanySelectors struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Logo        string `yaml:"logo" json:"logo"`
}

type PitchSelectors struct {
	Name     string `yaml:"name" json:"name"`
	Hashtags string `yaml:"hashtags" json:"hashtags"`
}

type CompaniesPipeline struct {
	IndexPath string           `yaml:"index_path" json:"index_path"`
	Output    string           `yaml:"output" json:"output"`
	Selectors CompanySelectors `yaml:"selectors" json:"selectors"`
}

type PitchesPipeline struct {
	IndexPath string         `yaml:"index_path" json:"index_path"`
	Output    string         `yaml:"output" json:"output"`
	Selectors PitchSelectors `yaml:"selectors" json:"selectors"`
}

type Config struct {
	HTTP struct {
		BaseURL      string        `yaml:"base_url" json:"base_url"`
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		UserAgent    string        `yaml:"user_agent" json:"user_agent"`
		StrictStatus bool          `yaml:"strict_status" json:"strict_status"`
		DumpDir      string        `yaml:"dump_dir" json:"dump_dir"`
	} `yaml:"http" json:"http"`

	Pipelines struct {
		LinksSelector string            `yaml:"links_selector" json:"links_selector"`
		Companies     CompaniesPipeline `yaml:"companies" json:"companies"`
		Pitches       PitchesPipeline   `yaml:"pitches" json:"pitches"`
	} `yaml:"pipelines" json:"pipelines"`

	Cache struct {
		RedisAddr     string        `yaml:"redis_addr" json:"redis_addr"`
		Password      string        `yaml:"password" json:"-"`
		DB            int           `yaml:"db" json:"db"`
		TTL           time.Duration `yaml:"ttl" json:"ttl"`
		MemoryEntries int           `yaml:"memory_entries" json:"memory_entries"` // used when redis_addr is empty; 0 disables
	} `yaml:"cache" json:"cache"`

	Store struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"store" json:"store"`

	Log struct {
		Level string `yaml:"level" json:"level"`
	} `yaml:"log" json:"log"`

	Server struct {
		Addr  string        `yaml:"addr" json:"addr"`
		Every time.Duration `yaml:"every" json:"every"`
		Cron  string        `yaml:"cron" json:"cron"` // standard 5-field spec, used instead of every
	} `yaml:"server" json:"server"`
}

// Default returns the configuration the scraper runs with when no file is
// present: the live site, the two hardcoded index pages and the original
// output file names.
func Default() Config {
	var cfg Config

	cfg.HTTP.BaseURL = DefaultBaseURL
	cfg.HTTP.Timeout = 30 * time.Second
	cfg.HTTP.UserAgent = DefaultUserAgent
	cfg.HTTP.StrictStatus = true

	cfg.Pipelines.LinksSelector = DefaultLinksSelector
	cfg.Pipelines.Companies = CompaniesPipeline{
		IndexPath: "/pitch_cards/mindfulness",
		Output:    "companies.json",
		Selectors: CompanySelectors{
			Name:        ".company_name",
			Description: ".investor_notes",
			Logo:        ".company_logo > img",
		},
	}
	cfg.Pipelines.Pitches = PitchesPipeline{
		IndexPath: "/company_cards/netflix",
		Output:    "pitches.json",
		Selectors: PitchSelectors{
			Name:     ".pitch_name > a",
			Hashtags: "li > a",
		},
	}

	cfg.Cache.TTL = time.Hour
	cfg.Store.Path = "pitchdeck.db"
	cfg.Log.Level = "info"
	cfg.Server.Addr = "127.0.0.1:38471"

	return cfg
}

// Load reads path on top of Default(). Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Resolve loads path, merges the local overlay and PITCHDECK_* environment
// overrides, then normalizes and validates the result. A missing file is not
// an error: defaults are used instead.
func Resolve(path string) (Config, Validation, error) {
	cfg, err := Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, Validation{}, err
	}
	if err := OverlayLocal(&cfg, LocalPath(path)); err != nil {
		return cfg, Validation{}, err
	}
	OverlayEnv(&cfg, os.LookupEnv)

	out, vr := NormalizeAndValidate(cfg)
	return out, vr, nil
}
