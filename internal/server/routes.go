package server

import (
	"net/http"
	"strings"
	"time"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)

	// Analysis
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/analyses", s.handleAnalysisList)
	mux.HandleFunc("/api/analyses/", s.routeAnalyses)
	mux.HandleFunc("/api/scenarios", s.handleScenarios)

	// Portfolio intake
	mux.HandleFunc("/api/portfolio/parse", s.handlePortfolioParse)

	// Risk tolerance questionnaire
	mux.HandleFunc("/api/risk-profile/questions", s.handleRiskQuestions)
	mux.HandleFunc("/api/risk-profile", s.handleRiskProfile)
}

// routeAnalyses dispatches /api/analyses/{id} and /api/analyses/{id}/report.
func (s *Server) routeAnalyses(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/analyses/")
	if rest == "" {
		s.handleAnalysisList(w, r)
		return
	}

	if strings.HasSuffix(rest, "/report") {
		id := PathParam(r, "/api/analyses/", "/report")
		s.handleAnalysisReport(w, r, id)
		return
	}

	if strings.Contains(rest, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	s.handleAnalysisGet(w, r, rest)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"environment":       s.app.Config.Environment,
		"uptime_seconds":    int(time.Since(s.app.StartupTime).Seconds()),
		"generator_enabled": s.app.Generator != nil,
	})
}
