// config/overlay.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// LocalPath maps "dir/config.yml" to "dir/config.local.yml".
func LocalPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return filepath.Join(dir, fmt.Sprintf("%s.local%s", strings.TrimSuffix(base, ext), ext))
}

// OverlayLocal merges non-zero values from the local file over cfg.
// Zero values (false, 0, "") in the local file cannot reset a field.
func OverlayLocal(cfg *Config, localPath string) error {
	b, err := os.ReadFile(localPath)
	if err != nil {
		// Missing local file is the common case
		return nil
	}

	var override Config
	if err := yaml.Unmarshal(b, &override); err != nil {
		return fmt.Errorf("parse %s: %w", localPath, err)
	}
	if err := mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
		return err
	}
	slog.Info("merging config with local overrides", "local", localPath)
	return nil
}

// OverlayEnv applies PITCHDECK_* variables. lookup is os.LookupEnv outside
// tests.
func OverlayEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("PITCHDECK_BASE_URL"); ok {
		cfg.HTTP.BaseURL = v
	}
	if v, ok := lookup("PITCHDECK_STRICT_STATUS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.HTTP.StrictStatus = b
		}
	}
	if v, ok := lookup("PITCHDECK_DUMP_DIR"); ok {
		cfg.HTTP.DumpDir = v
	}
	if v, ok := lookup("PITCHDECK_REDIS_ADDR"); ok {
		cfg.Cache.RedisAddr = v
	}
	if v, ok := lookup("PITCHDECK_REDIS_PASSWORD"); ok {
		cfg.Cache.Password = v
	}
	if v, ok := lookup("PITCHDECK_STORE_PATH"); ok {
		cfg.Store.Path = v
	}
	if v, ok := lookup("PITCHDECK_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
}
