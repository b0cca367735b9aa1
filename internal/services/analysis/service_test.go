package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alokagarwal565/scenario-advisor/internal/common"
	"github.com/alokagarwal565/scenario-advisor/internal/models"
	"github.com/alokagarwal565/scenario-advisor/internal/services/narrative"
)

type timeoutGenerator struct {
	calls int
}

func (g *timeoutGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return "", common.MarkTransient(errors.New("deadline exceeded"))
}

type memoryStore struct {
	saved []*models.AnalysisResult
}

func (m *memoryStore) SaveAnalysis(_ context.Context, r *models.AnalysisResult) error {
	m.saved = append(m.saved, r)
	return nil
}

func (m *memoryStore) GetAnalysis(_ context.Context, id string) (*models.AnalysisResult, error) {
	for _, r := range m.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memoryStore) ListAnalyses(_ context.Context) ([]*models.AnalysisResult, error) {
	return m.saved, nil
}

func (m *memoryStore) DeleteAnalysis(_ context.Context, _ string) error { return nil }

func newTestService(gen *timeoutGenerator, store *memoryStore) *Service {
	retry := common.RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, ExponentialBase: 2.0, MaxDelay: 5 * time.Millisecond}

	var composer *narrative.Composer
	if gen != nil {
		composer = narrative.NewComposer(gen, narrative.WithRetryConfig(retry))
	} else {
		composer = narrative.NewComposer(nil)
	}

	opts := []Option{}
	if store != nil {
		opts = append(opts, WithStore(store))
	}
	return NewService(composer, opts...)
}

func bankingRequest() models.AnalysisRequest {
	return models.AnalysisRequest{
		Scenario: "RBI increases repo rate by 0.5%",
		Portfolio: models.Portfolio{Holdings: []models.Holding{
			{CompanyName: "HDFC Bank", Symbol: "HDFCBANK.NS", Quantity: 10, CurrentPrice: 1500, Sector: "Financial Services"},
		}},
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	store := &memoryStore{}
	svc := newTestService(nil, store)

	result, err := svc.Analyze(context.Background(), bankingRequest())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.ID == "" {
		t.Error("result has no ID")
	}
	if result.RiskAssessment != models.RiskCritical {
		t.Errorf("RiskAssessment = %v, want CRITICAL", result.RiskAssessment)
	}
	if result.RiskDetails.Score != 86 {
		t.Errorf("Score = %v, want 86", result.RiskDetails.Score)
	}
	if result.PortfolioImpact.TotalImpactScore != -0.9 {
		t.Errorf("TotalImpactScore = %v, want -0.9", result.PortfolioImpact.TotalImpactScore)
	}
	if result.PortfolioImpact.ScenarioType != models.ScenarioRegulatory {
		t.Errorf("ScenarioType = %v, want REGULATORY", result.PortfolioImpact.ScenarioType)
	}
	if len(store.saved) != 1 {
		t.Errorf("saved %d results, want 1", len(store.saved))
	}
}

// A generator that times out on every attempt must never surface an
// error: the analysis completes on the fallback path within the retry
// budget.
func TestAnalyzeSurvivesGeneratorTimeouts(t *testing.T) {
	gen := &timeoutGenerator{}
	svc := newTestService(gen, nil)

	start := time.Now()
	result, err := svc.Analyze(context.Background(), bankingRequest())
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Analyze() error = %v, want nil", err)
	}
	if result.Source != models.NarrativeSourceFallback {
		t.Errorf("Source = %v, want fallback", result.Source)
	}
	if gen.calls != 3 {
		t.Errorf("generator calls = %d, want 3 (initial + 2 retries)", gen.calls)
	}
	if elapsed > 2*time.Second {
		t.Errorf("analysis took %v, retry budget not bounded", elapsed)
	}
	if len(result.Insights) < 3 || len(result.Recommendations) < 3 {
		t.Errorf("fallback lists too short: %d / %d", len(result.Insights), len(result.Recommendations))
	}
}

func TestAnalyzeRejectsInvalidInput(t *testing.T) {
	svc := newTestService(nil, nil)

	tests := []struct {
		name string
		req  models.AnalysisRequest
	}{
		{"empty scenario", models.AnalysisRequest{
			Portfolio: models.Portfolio{Holdings: []models.Holding{{Symbol: "X", Quantity: 1, CurrentPrice: 1}}},
		}},
		{"blank scenario", models.AnalysisRequest{
			Scenario:  "   ",
			Portfolio: models.Portfolio{Holdings: []models.Holding{{Symbol: "X", Quantity: 1, CurrentPrice: 1}}},
		}},
		{"no holdings", models.AnalysisRequest{Scenario: "anything"}},
		{"negative quantity", models.AnalysisRequest{
			Scenario:  "anything",
			Portfolio: models.Portfolio{Holdings: []models.Holding{{Symbol: "X", Quantity: -1, CurrentPrice: 1}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Analyze(context.Background(), tt.req); err == nil {
				t.Error("Analyze() error = nil, want validation error")
			}
		})
	}
}

func TestAnalyzeZeroValuePortfolio(t *testing.T) {
	svc := newTestService(nil, nil)

	req := models.AnalysisRequest{
		Scenario: "Oil prices surge by 20%",
		Portfolio: models.Portfolio{Holdings: []models.Holding{
			{Symbol: "TCS.NS", Quantity: 0, CurrentPrice: 3500, Sector: "Information Technology"},
			{Symbol: "ONGC.NS", Quantity: 0, CurrentPrice: 250, Sector: "Energy"},
		}},
	}

	result, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.PortfolioComposition.DiversificationLevel != models.WellDiversified {
		t.Errorf("DiversificationLevel = %v, want WELL_DIVERSIFIED", result.PortfolioComposition.DiversificationLevel)
	}
}

func TestPredefinedScenariosCatalog(t *testing.T) {
	svc := newTestService(nil, nil)

	scenarios := svc.PredefinedScenarios()
	if len(scenarios) != 15 {
		t.Fatalf("catalog has %d scenarios, want 15", len(scenarios))
	}

	// Caller mutations must not leak into the catalog.
	scenarios[0] = "mutated"
	if svc.PredefinedScenarios()[0] == "mutated" {
		t.Error("catalog is not copied")
	}
}
