package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveAtomic validates cfg and writes it via a temp file, keeping the previous
// version as path.bak.
func SaveAtomic(path string, cfg Config) error {
	out, vr := NormalizeAndValidate(cfg)
	if err := vr.Err(); err != nil {
		return err
	}

	b, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
