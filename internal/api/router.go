// v1
// internal/api/router.go
package api

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/nrg-champ/envstation/internal/observability"
)

// NewRouter wires the public routes behind an access log. Unknown paths get
// a plain-text 404.
func NewRouter(h *Handlers, met *observability.Metrics) http.Handler {
	r := mux.NewRouter()

	r.Handle("/", met.WrapHandler("dashboard", http.HandlerFunc(h.Dashboard))).Methods("GET")
	r.Handle("/api", met.WrapHandler("api", http.HandlerFunc(h.API))).Methods("GET")
	r.Handle("/healthz", met.WrapHandler("healthz", http.HandlerFunc(h.Health))).Methods("GET")
	r.Handle("/metrics", met.Handler()).Methods("GET")
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	return handlers.LoggingHandler(os.Stdout, r)
}
