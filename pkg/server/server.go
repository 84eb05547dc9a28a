package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/tools"
)

// Server exposes the toolset over HTTP.
type Server struct {
	registry *tools.Registry
	http     *http.Server
	logger   *logging.Logger
}

// New creates an HTTP server for the toolset on the given port.
func New(registry *tools.Registry, port int, logger *logging.Logger) *Server {
	s := &Server{
		registry: registry,
		logger:   logger,
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/tools", s.handleListTools).Methods("GET")
	r.HandleFunc("/tools/{name}", s.handleCallTool).Methods("POST")

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}
	return s
}

// ListenAndServe runs the server until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"tools":  len(s.registry.Descriptors()),
	})
}

// handleListTools handles GET /tools.
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tools": s.registry.Descriptors(),
	})
}

// callRequest is the body of POST /tools/{name}.
type callRequest struct {
	Arguments json.RawMessage `json:"arguments"`
}

// handleCallTool handles POST /tools/{name}.
func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req callRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error": "invalid request body: " + err.Error(),
			})
			return
		}
	}

	if _, ok := s.registry.Get(name); !ok {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("unknown tool: %s", name),
		})
		return
	}

	result, err := s.registry.Execute(r.Context(), name, req.Arguments)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
