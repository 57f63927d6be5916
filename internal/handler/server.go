// Package handler implements the HTTP surface of the itinerary endpoint.
// The API is deliberately tiny: one document, read and replaced whole.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HaruLab/travel-planning/internal/domain"
)

// DocumentStore is the persistence the handlers depend on. Defining the
// interface here (in the consumer package) lets handler tests inject a
// failing store without touching the filesystem.
type DocumentStore interface {
	Read() (domain.Document, error)
	Write(doc domain.Document) error
}

// Server holds the handler dependencies. Methods are split across files
// (itinerary.go, health.go) but all operate on this struct.
type Server struct {
	docs DocumentStore
	log  *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(docs DocumentStore, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{docs: docs, log: log}
}

// Register mounts all routes on r. Middleware is applied by the caller
// (main.go), keeping this package free of wiring concerns.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/api/itinerary", s.GetItinerary)
	r.Post("/api/itinerary", s.PostItinerary)
}

// writeJSON sends v with the given status. Encoding problems are logged,
// not surfaced: headers are already gone by then.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encode failed", "error", err)
	}
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
}
