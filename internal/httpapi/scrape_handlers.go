package httpapi

import (
	"errors"
	"net/http"

	"pitchdeck-scraper/internal/scrape"

	"github.com/gorilla/mux"
)

type ScrapeHandler struct {
	Runner *Runner
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Runner.Status())
}

func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	op, err := scrape.ParseOperation(mux.Vars(r)["operation"])
	if err != nil {
		WriteScrapeError(w, r, err)
		return
	}

	if err := h.Runner.Start(op, RequestIDFrom(r.Context())); err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			WriteError(w, r, http.StatusConflict, "already_running", err.Error())
			return
		}
		if errors.Is(err, ErrShuttingDown) {
			WriteError(w, r, http.StatusServiceUnavailable, "shutting_down", err.Error())
			return
		}
		WriteScrapeError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true, "operation": op})
}
