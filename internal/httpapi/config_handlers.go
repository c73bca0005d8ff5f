package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"

	"pitchdeck-scraper/internal/config"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	writeJSON(w, cur)
}

// Put validates and persists a config. Only fields whose value differs from
// the running config are written over the file contents, so values that came
// from the local overlay or the environment stay out of the file. The Redis
// password is never sent to clients and is kept from the file.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var incoming config.Config
	if err := dec.Decode(&incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if dec.More() {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "trailing data")
		return
	}

	onDisk, err := config.Load(h.UserCfgPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		WriteError(w, r, http.StatusInternalServerError, "load_failed", err.Error())
		return
	}
	merged, err := mergeChanged(onDisk, h.CfgVal.Load().(config.Config), body)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	merged.Cache.Password = onDisk.Cache.Password

	normalized, vr := config.NormalizeAndValidate(merged)
	if !vr.OK() {
		WriteJSON(w, http.StatusBadRequest, vr)
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	saved, err := h.LoadCfg()
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", "saved but reload failed: "+err.Error())
		return
	}
	h.CfgVal.Store(saved)
	writeJSON(w, saved)
}

// mergeChanged applies the leaves of body that differ from running on top of
// onDisk.
func mergeChanged(onDisk, running config.Config, body []byte) (config.Config, error) {
	dst, err := toTree(onDisk)
	if err != nil {
		return onDisk, err
	}
	cur, err := toTree(running)
	if err != nil {
		return onDisk, err
	}
	in, err := decodeTree(body)
	if err != nil {
		return onDisk, err
	}
	overlayChanged(dst, in, cur)

	b, err := json.Marshal(dst)
	if err != nil {
		return onDisk, err
	}
	var out config.Config
	err = json.Unmarshal(b, &out)
	return out, err
}

func toTree(cfg config.Config) (map[string]any, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return decodeTree(b)
}

func decodeTree(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	err := dec.Decode(&m)
	return m, err
}

func overlayChanged(dst, in, cur map[string]any) {
	for k, v := range in {
		if sub, ok := v.(map[string]any); ok {
			d, _ := dst[k].(map[string]any)
			if d == nil {
				d = map[string]any{}
			}
			c, _ := cur[k].(map[string]any)
			overlayChanged(d, sub, c)
			dst[k] = d
			continue
		}
		if reflect.DeepEqual(v, cur[k]) {
			continue
		}
		dst[k] = v
	}
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, _ := filepath.Abs(h.UserCfgPath)
	writeJSON(w, map[string]any{"path": abs})
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	_, vr := config.NormalizeAndValidate(cur)
	writeJSON(w, vr)
}
