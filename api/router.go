package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP routes. An empty metricsPath disables /metrics.
func NewRouter(h *Handler, metricsPath string) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, Instrument, Recover)

	r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/activity-levels", h.ActivityLevels).Methods(http.MethodGet)
	r.HandleFunc("/gender-options", h.GenderOptions).Methods(http.MethodGet)
	r.HandleFunc("/example-request", h.ExampleRequest).Methods(http.MethodGet)
	r.HandleFunc("/calculate", h.Calculate).Methods(http.MethodPost)

	if metricsPath != "" {
		r.Handle(metricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	r.NotFoundHandler = RequestID(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusNotFound, ErrorResponse{Message: "Not found"})
	}))
	r.MethodNotAllowedHandler = RequestID(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, http.StatusMethodNotAllowed, ErrorResponse{Message: "Method not allowed"})
	}))

	return r
}
