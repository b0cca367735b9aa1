// Package analysis orchestrates the scenario analysis pipeline:
// composition, impact classification, risk scoring and narrative.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alokagarwal565/scenario-advisor/internal/common"
	"github.com/alokagarwal565/scenario-advisor/internal/interfaces"
	"github.com/alokagarwal565/scenario-advisor/internal/models"
	"github.com/alokagarwal565/scenario-advisor/internal/services/composition"
	"github.com/alokagarwal565/scenario-advisor/internal/services/impact"
	"github.com/alokagarwal565/scenario-advisor/internal/services/narrative"
	"github.com/alokagarwal565/scenario-advisor/internal/services/risk"
)

// predefinedScenarios is the curated catalog of Indian-market scenarios
// offered to UIs. Free-text scenarios are equally valid input.
var predefinedScenarios = []string{
	"RBI increases repo rate by 0.5%",
	"Oil prices surge by 20% due to geopolitical tensions",
	"US Federal Reserve cuts interest rates by 0.25%",
	"Major IT company announces poor quarterly results",
	"Government announces new infrastructure spending of ₹10 lakh crores",
	"Global recession fears increase due to banking crisis",
	"New technology disrupts traditional banking sector",
	"Inflation rises to 7% affecting consumer spending",
	"Monsoon failure affects agricultural output",
	"Foreign institutional investors withdraw ₹50,000 crores",
	"Crude oil prices fall below $60 per barrel",
	"New government policy favors renewable energy sector",
	"Currency volatility: Rupee weakens to ₹85 per USD",
	"Corporate earnings growth slows to 5% across sectors",
	"Trade war escalation affects export-oriented companies",
}

// Service runs the full analysis pipeline and persists results.
type Service struct {
	composer *narrative.Composer
	store    interfaces.AnalysisStore
	logger   *common.Logger
}

var _ interfaces.AnalysisService = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithStore enables persistence of completed analyses.
func WithStore(store interfaces.AnalysisStore) Option {
	return func(s *Service) { s.store = store }
}

// WithLogger sets the service logger.
func WithLogger(logger *common.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates the analysis service. The composer is required;
// the store is optional and, when absent, results are not persisted.
func NewService(composer *narrative.Composer, opts ...Option) *Service {
	s := &Service{
		composer: composer,
		logger:   common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs one full pipeline pass over the request. Invalid input
// is the only error path; narrative failures degrade to the fallback.
func (s *Service) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	scenario := strings.TrimSpace(req.Scenario)
	if scenario == "" {
		return nil, fmt.Errorf("scenario description is required")
	}
	req.Scenario = scenario

	if err := req.Portfolio.Validate(); err != nil {
		return nil, fmt.Errorf("invalid portfolio: %w", err)
	}
	req.Portfolio.Normalize()

	start := time.Now()

	comp := composition.Analyze(&req.Portfolio)
	table := impact.ClassifySectorImpact(req.Scenario)
	scenarioType := impact.ClassifyScenarioType(req.Scenario)
	impactProfile := impact.Calculate(comp, table, scenarioType)
	assessment := risk.Score(comp, impactProfile)

	composed := s.composer.Compose(ctx, req, comp, impactProfile, assessment)

	result := &models.AnalysisResult{
		ID:                   uuid.New().String(),
		Scenario:             req.Scenario,
		Narrative:            composed.Narrative,
		Insights:             composed.Insights,
		Recommendations:      composed.Recommendations,
		RiskAssessment:       assessment.Level,
		RiskDetails:          assessment,
		PortfolioImpact:      impactProfile,
		PortfolioComposition: comp,
		Source:               composed.Source,
		GeneratedAt:          time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SaveAnalysis(ctx, result); err != nil {
			// Persistence is best effort; the caller still gets the result.
			s.logger.Warn().Err(err).Str("analysis_id", result.ID).Msg("Failed to persist analysis result")
		}
	}

	s.logger.Info().
		Str("analysis_id", result.ID).
		Str("scenario_type", string(scenarioType)).
		Str("risk_level", string(assessment.Level)).
		Str("source", string(composed.Source)).
		Dur("elapsed", time.Since(start)).
		Msg("Scenario analysis complete")

	return result, nil
}

// PredefinedScenarios returns a copy of the scenario catalog.
func (s *Service) PredefinedScenarios() []string {
	out := make([]string, len(predefinedScenarios))
	copy(out, predefinedScenarios)
	return out
}
