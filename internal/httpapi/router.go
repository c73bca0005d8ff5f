package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every API route behind the request-id, recover and access
// log middleware.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestID, Recover, AccessLog)

	hh := HealthHandler{Hub: d.Hub}
	r.HandleFunc("/health", hh.Health).Methods(http.MethodGet)

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	r.HandleFunc("/config", ch.Get).Methods(http.MethodGet)
	r.HandleFunc("/config", ch.Put).Methods(http.MethodPut)
	r.HandleFunc("/config/path", ch.Path).Methods(http.MethodGet)
	r.HandleFunc("/config/validate", ch.Validate).Methods(http.MethodGet)

	// Archived runs
	rh := RunsHandler{DB: d.DB}
	r.HandleFunc("/runs", rh.List).Methods(http.MethodGet)
	r.HandleFunc("/runs/{id:[0-9]+}", rh.Get).Methods(http.MethodGet)
	r.HandleFunc("/runs/{id:[0-9]+}/records", rh.Records).Methods(http.MethodGet)

	// Scrape
	sch := ScrapeHandler{Runner: d.Runner}
	r.HandleFunc("/scrape/status", sch.Status).Methods(http.MethodGet)
	r.HandleFunc("/scrape/{operation}", sch.Run).Methods(http.MethodPost)

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	r.HandleFunc("/events", eh.ServeSSE).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusNotFound, "not_found", "no route for "+req.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return Cors(r)
}
