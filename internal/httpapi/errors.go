package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"pitchdeck-scraper/internal/scrape/types"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// WriteScrapeError maps a scrape error kind to a status and code.
func WriteScrapeError(w http.ResponseWriter, r *http.Request, err error) {
	var cfgErr *types.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		WriteError(w, r, http.StatusBadRequest, "configuration", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
