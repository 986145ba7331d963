package api

import (
	"net/http"
	"strings"

	"seqapi/internal/sequence"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.HandleFunc("GET /{$}", s.handleRoot)

	// One GET and one POST route per sequence, same handler
	for _, rec := range sequence.All() {
		h := s.handleSequence(rec)
		s.router.HandleFunc("GET /"+rec.Name, h)
		s.router.HandleFunc("POST /"+rec.Name, h)
	}

	s.router.HandleFunc("GET /sequences", s.handleListSequences)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /metrics", s.handleMetrics)

	// Anything else, including unsupported methods on sequence paths
	s.router.HandleFunc("/", s.handleNotFound)
}

// usageMessage describes how to call the sequence endpoints
func usageMessage() string {
	paths := make([]string, 0, len(sequence.Names()))
	for _, name := range sequence.Names() {
		paths = append(paths, "/"+name)
	}
	return "Use GET ?n=10 or POST { n } on " + strings.Join(paths, ", ")
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, MessageResponse{Message: usageMessage()}, http.StatusOK)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFound(w, "not found")
}
