package httpapi

import (
	"net/http"

	"pitchdeck-scraper/internal/events"
)

type HealthHandler struct {
	Hub *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":          true,
		"sse_clients": h.Hub.Clients(),
	})
}
