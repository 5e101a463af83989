package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/spboyer/cgpa/internal/webapi"
)

// registerRoutes sets up the API routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) {
	webapi.RegisterRoutes(mux, cfg.Policies, webapi.Options{
		DefaultPolicy:  cfg.DefaultPolicy,
		AllowOverMarks: cfg.AllowOverMarks,
		Logger:         cfg.Logger,
	})
	mux.HandleFunc("/", handleNotFound)
}

// handleNotFound returns a JSON 404 for anything outside the API.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(webapi.ErrorResponse{Error: "no route for " + r.URL.Path, Code: http.StatusNotFound}) //nolint:errcheck
}
