package handler

import (
	"encoding/json"
	"net/http"

	"github.com/HaruLab/travel-planning/internal/domain"
)

// GetItinerary handles GET /api/itinerary.
// It returns the persisted document, or "{}" when nothing has ever been
// saved — a successful response clients interpret as "no data yet".
// Read or parse failures of the backing file map to HTTP 500.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	doc, err := s.docs.Read()
	if err != nil {
		s.log.Error("itinerary read failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "error reading data file"})
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// PostItinerary handles POST /api/itinerary.
// The request body replaces the backing file in full — no merge, no partial
// update. A malformed body is the caller's fault (400); a write failure is
// ours (500).
func (s *Server) PostItinerary(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body"})
		return
	}

	if err := s.docs.Write(doc); err != nil {
		s.log.Error("itinerary write failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "error writing data file"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
