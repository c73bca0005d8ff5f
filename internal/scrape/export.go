package scrape

import (
	"encoding/json"
	"os"
	"path/filepath"

	"pitchdeck-scraper/internal/scrape/types"

	"github.com/gofrs/flock"
)

// Export writes records to path as one compact JSON array. The file is
// replaced atomically under an advisory lock on path+".lock", which is
// removed again afterwards; on any failure the previous file, if any, is left
// as it was.
func Export[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return &types.SerializationError{Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &types.FileError{Op: "mkdir", Path: dir, Err: err}
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return &types.FileError{Op: "lock", Path: path, Err: err}
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return &types.FileError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return &types.FileError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &types.FileError{Op: "sync", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &types.FileError{Op: "close", Path: tmpName, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &types.FileError{Op: "chmod", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &types.FileError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
