package server

import (
	"errors"
	"net/http"

	"github.com/alokagarwal565/scenario-advisor/internal/models"
	"github.com/alokagarwal565/scenario-advisor/internal/services/intake"
	"github.com/alokagarwal565/scenario-advisor/internal/services/report"
	"github.com/alokagarwal565/scenario-advisor/internal/services/riskprofile"
	"github.com/alokagarwal565/scenario-advisor/internal/storage/badger"
)

// handleAnalyze handles POST /api/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnalysisRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := s.app.AnalysisService.Analyze(r.Context(), req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleAnalysisList handles GET /api/analyses.
func (s *Server) handleAnalysisList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	results, err := s.app.Storage.AnalysisStore().ListAnalyses(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(results),
		"analyses": results,
	})
}

// handleAnalysisGet handles GET and DELETE /api/analyses/{id}.
func (s *Server) handleAnalysisGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodDelete) {
		return
	}

	store := s.app.Storage.AnalysisStore()

	if r.Method == http.MethodDelete {
		if err := store.DeleteAnalysis(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})
		return
	}

	result, err := store.GetAnalysis(r.Context(), id)
	if err != nil {
		if errors.Is(err, badger.ErrAnalysisNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleAnalysisReport handles GET /api/analyses/{id}/report, returning
// the plain-text report.
func (s *Server) handleAnalysisReport(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	result, err := s.app.Storage.AnalysisStore().GetAnalysis(r.Context(), id)
	if err != nil {
		if errors.Is(err, badger.ErrAnalysisNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.Format(result)))
}

// handleScenarios handles GET /api/scenarios.
func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": s.app.AnalysisService.PredefinedScenarios(),
	})
}

// handlePortfolioParse handles POST /api/portfolio/parse.
func (s *Server) handlePortfolioParse(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Input string `json:"input"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Input == "" {
		WriteError(w, http.StatusBadRequest, "input is required")
		return
	}

	holdings, invalid := intake.Parse(req.Input)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"holdings":        holdings,
		"invalid_entries": invalid,
	})
}

// handleRiskQuestions handles GET /api/risk-profile/questions.
func (s *Server) handleRiskQuestions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"questions": riskprofile.Questions(),
	})
}

// handleRiskProfile handles POST /api/risk-profile.
func (s *Server) handleRiskProfile(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := riskprofile.Evaluate(req.Answers)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}
