package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *DashServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/issues", s.handleCreateIssue)
	mux.HandleFunc("GET /v1/issues", s.handleListIssues)
	mux.HandleFunc("GET /v1/issues/{id}", s.handleGetIssue)
	mux.HandleFunc("PATCH /v1/issues/{id}", s.handleUpdateIssue)
	mux.HandleFunc("POST /v1/issues/{id}/close", s.handleCloseIssue)
	mux.HandleFunc("DELETE /v1/issues/{id}", s.handleDeleteIssue)
	mux.HandleFunc("POST /v1/issues/{id}/labels", s.handleAddLabel)
	mux.HandleFunc("DELETE /v1/issues/{id}/labels/{label}", s.handleRemoveLabel)
	mux.HandleFunc("POST /v1/search", s.handleSearch)
	mux.HandleFunc("POST /v1/issues/filter", s.handleFilterRecords)
	mux.HandleFunc("GET /v1/stats", s.handleGetStats)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, LoggingMiddleware(mux))
}

// handleHealth handles GET /v1/health.
func (s *DashServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
