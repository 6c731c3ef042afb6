package server

import (
	"net/http"

	"github.com/bobmcallan/statement-report/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// Report generation accepts uploads only.
	for path, handler := range map[string]RouteHandler{
		"/api/reports":          s.app.ReportHandler.ServeHTTP,
		"/api/reports/workbook": s.app.ReportHandler.HandleWorkbook,
		"/api/reports/batch":    s.app.BatchHandler.ServeHTTP,
	} {
		mux.HandleFunc(path, PostOnly(handler))
	}

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, http.StatusNotFound, "no such endpoint: "+r.URL.Path)
}
