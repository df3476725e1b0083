// Package web provides the HTTP API server for plotmark.
package web

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkessler/plotmark/internal/bulkimport"
	"github.com/mkessler/plotmark/internal/logging"
	"github.com/mkessler/plotmark/internal/places"
	"github.com/mkessler/plotmark/internal/property"
	"github.com/mkessler/plotmark/internal/shape"
)

// Server is the API HTTP server.
type Server struct {
	propRepo  *property.Repository
	shapeRepo *shape.Repository
	importer  *bulkimport.Importer
	resolver  *places.Resolver
	mux       *http.ServeMux
}

// NewServer creates an API server over the given database. resolver may be
// nil, in which case nearby lookups return empty lists.
func NewServer(db *sql.DB, resolver *places.Resolver) *Server {
	propRepo := property.NewRepository(db)

	s := &Server{
		propRepo:  propRepo,
		shapeRepo: shape.NewRepository(db),
		importer:  bulkimport.NewImporter(propRepo),
		resolver:  resolver,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/properties", s.handleProperties)
	s.mux.HandleFunc("/api/properties/", s.handleProperties)
	s.mux.HandleFunc("/api/import", s.handleImport)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server with request logging.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting API server on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, logging.RequestLogger(s))
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}
