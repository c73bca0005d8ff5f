package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"pitchdeck-scraper/internal/store"
)

type RunsHandler struct {
	DB *sql.DB
}

func (h RunsHandler) available(w http.ResponseWriter, r *http.Request) bool {
	if h.DB == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "store_disabled", "run archive is disabled (store.path is empty)")
		return false
	}
	return true
}

func (h RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	runs, err := store.ListRuns(r.Context(), h.DB, store.ListRunsOpts{
		Operation: q.Get("operation"),
		Limit:     limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, runs)
}

func (h RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	run, err := store.GetRun(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "run not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, run)
}

func (h RunsHandler) Records(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}
	id, ok := pathID(r)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if _, err := store.GetRun(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, r, http.StatusNotFound, "not_found", "run not found")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	recs, err := store.ListRecords(r.Context(), h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, recs)
}
