package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alokagarwal565/scenario-advisor/internal/common"
	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// fakeGenerator scripts Generate responses for composer tests.
type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testRequest() models.AnalysisRequest {
	return models.AnalysisRequest{
		Scenario:            "RBI increases repo rate by 0.5%",
		RiskProfileCategory: "Balanced",
	}
}

func testProfiles() (models.CompositionProfile, models.ImpactProfile, models.RiskAssessment) {
	comp := models.CompositionProfile{
		TotalValue:           100000,
		NumHoldings:          2,
		NumSectors:           2,
		SectorPercentages:    map[string]float64{"Financial Services": 70, "Energy": 30},
		MaxSectorExposure:    70,
		DominantSector:       "Financial Services",
		HHI:                  0.58,
		DiversificationLevel: models.HighConcentration,
	}
	impact := models.ImpactProfile{
		TotalImpactScore:   -0.63,
		ImpactSeverity:     models.SeverityHigh,
		PrimaryRiskSectors: []string{"Financial Services"},
		ScenarioType:       models.ScenarioRegulatory,
	}
	risk := models.RiskAssessment{
		Level:      models.RiskCritical,
		Score:      86,
		Confidence: models.ConfidenceLow,
	}
	return comp, impact, risk
}

func quickRetry() common.RetryConfig {
	return common.RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, ExponentialBase: 2.0, MaxDelay: 5 * time.Millisecond}
}

func TestComposeParsesGeneratorResponse(t *testing.T) {
	gen := &fakeGenerator{response: `[OVERVIEW]
Rates up, banks down.

[KEY INSIGHTS]
- Banking exposure dominates the downside
- Energy partially offsets the move
- Diversification is thin

[ACTIONABLE RECOMMENDATIONS]
- Trim Financial Services
- Add defensive sectors
- Hold cash for re-entry
`}
	c := NewComposer(gen, WithRetryConfig(quickRetry()))
	comp, impact, risk := testProfiles()

	result := c.Compose(context.Background(), testRequest(), comp, impact, risk)

	if result.Source != models.NarrativeSourceAI {
		t.Errorf("Source = %v, want ai", result.Source)
	}
	if result.Narrative != "Rates up, banks down." {
		t.Errorf("Narrative = %q", result.Narrative)
	}
	if len(result.Insights) != 3 || len(result.Recommendations) != 3 {
		t.Errorf("lists = %d insights / %d recommendations, want 3/3",
			len(result.Insights), len(result.Recommendations))
	}
}

func TestComposeFallbackOnPermanentError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("api key invalid")}
	c := NewComposer(gen, WithRetryConfig(quickRetry()))
	comp, impact, risk := testProfiles()

	result := c.Compose(context.Background(), testRequest(), comp, impact, risk)

	if result.Source != models.NarrativeSourceFallback {
		t.Fatalf("Source = %v, want fallback", result.Source)
	}
	if gen.calls != 1 {
		t.Errorf("permanent error retried: %d calls", gen.calls)
	}
	if !strings.Contains(result.Narrative, "RBI increases repo rate") {
		t.Errorf("fallback narrative should name the scenario: %q", result.Narrative)
	}
	if len(result.Insights) < 3 || len(result.Recommendations) < 3 {
		t.Errorf("fallback lists too short: %d / %d", len(result.Insights), len(result.Recommendations))
	}
}

func TestComposeRetriesTransientThenFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: common.MarkTransient(errors.New("request timed out"))}
	c := NewComposer(gen, WithRetryConfig(quickRetry()))
	comp, impact, risk := testProfiles()

	result := c.Compose(context.Background(), testRequest(), comp, impact, risk)

	if result.Source != models.NarrativeSourceFallback {
		t.Errorf("Source = %v, want fallback", result.Source)
	}
	if gen.calls != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", gen.calls)
	}
}

func TestComposeFallbackOnBlankResponse(t *testing.T) {
	gen := &fakeGenerator{response: "   \n  "}
	c := NewComposer(gen, WithRetryConfig(quickRetry()))
	comp, impact, risk := testProfiles()

	result := c.Compose(context.Background(), testRequest(), comp, impact, risk)

	if result.Source != models.NarrativeSourceFallback {
		t.Errorf("Source = %v, want fallback", result.Source)
	}
}

func TestComposeKeepsListsWhenOverviewMissing(t *testing.T) {
	gen := &fakeGenerator{response: `[KEY INSIGHTS]
- Banking exposure dominates the downside
- Energy partially offsets the move
- Diversification is thin

[ACTIONABLE RECOMMENDATIONS]
- Trim Financial Services
- Add defensive sectors
`}
	c := NewComposer(gen, WithRetryConfig(quickRetry()))
	comp, impact, risk := testProfiles()

	result := c.Compose(context.Background(), testRequest(), comp, impact, risk)

	if result.Source != models.NarrativeSourceAI {
		t.Fatalf("Source = %v, want ai", result.Source)
	}
	if len(result.Insights) < 3 || result.Insights[0] != "Banking exposure dominates the downside" {
		t.Errorf("parsed insights must survive a missing overview: %v", result.Insights)
	}
	if result.Recommendations[0] != "Trim Financial Services" {
		t.Errorf("parsed recommendations must survive a missing overview: %v", result.Recommendations)
	}
	if result.Narrative == "" || !strings.Contains(result.Narrative, "RBI increases repo rate") {
		t.Errorf("substituted narrative should name the scenario: %q", result.Narrative)
	}
}

func TestComposeFallbackWhenMarkedResponseIsEmpty(t *testing.T) {
	gen := &fakeGenerator{response: "[OVERVIEW]\n\n[KEY INSIGHTS]\n\n[ACTIONABLE RECOMMENDATIONS]\n"}
	c := NewComposer(gen, WithRetryConfig(quickRetry()))
	comp, impact, risk := testProfiles()

	result := c.Compose(context.Background(), testRequest(), comp, impact, risk)

	if result.Source != models.NarrativeSourceFallback {
		t.Errorf("Source = %v, want fallback", result.Source)
	}
}

func TestComposeNilGeneratorUsesFallback(t *testing.T) {
	c := NewComposer(nil)
	comp, impact, risk := testProfiles()

	result := c.Compose(context.Background(), testRequest(), comp, impact, risk)

	if result.Source != models.NarrativeSourceFallback {
		t.Errorf("Source = %v, want fallback", result.Source)
	}
	if result.Narrative == "" {
		t.Error("fallback narrative is empty")
	}
}

func TestComposeSupplementsShortLists(t *testing.T) {
	gen := &fakeGenerator{response: `[OVERVIEW]
Short on insights.

[KEY INSIGHTS]
- Only one insight

[ACTIONABLE RECOMMENDATIONS]
- Only one recommendation
`}
	c := NewComposer(gen, WithRetryConfig(quickRetry()))
	comp, impact, risk := testProfiles()

	result := c.Compose(context.Background(), testRequest(), comp, impact, risk)

	if len(result.Insights) < 3 {
		t.Errorf("Insights = %v, want at least 3 after supplementation", result.Insights)
	}
	if result.Insights[0] != "Only one insight" {
		t.Errorf("parsed insight must come first: %q", result.Insights[0])
	}
	if len(result.Recommendations) < 3 {
		t.Errorf("Recommendations = %v, want at least 3", result.Recommendations)
	}
}

func TestComposeCapsLongLists(t *testing.T) {
	var b strings.Builder
	b.WriteString("[OVERVIEW]\nPlenty to say.\n\n[KEY INSIGHTS]\n")
	for i := 0; i < 10; i++ {
		b.WriteString("- Insight number ")
		b.WriteByte(byte('a' + i))
		b.WriteString("\n")
	}
	b.WriteString("\n[ACTIONABLE RECOMMENDATIONS]\n- Do the one thing\n")

	gen := &fakeGenerator{response: b.String()}
	c := NewComposer(gen, WithRetryConfig(quickRetry()), WithListCaps(4, 4))
	comp, impact, risk := testProfiles()

	result := c.Compose(context.Background(), testRequest(), comp, impact, risk)

	if len(result.Insights) != 4 {
		t.Errorf("Insights = %d entries, want capped at 4", len(result.Insights))
	}
}

func TestDerivedListsAlwaysMeetFloor(t *testing.T) {
	comp := models.CompositionProfile{NumSectors: 10, NumHoldings: 20}
	impact := models.ImpactProfile{ImpactSeverity: models.SeverityMinimal}
	risk := models.RiskAssessment{Level: models.RiskMinimal, Confidence: models.ConfidenceHigh}

	if n := len(derivedInsights(comp, impact, risk)); n < 3 {
		t.Errorf("derivedInsights = %d entries, want at least 3", n)
	}
	if n := len(derivedRecommendations(models.AnalysisRequest{}, comp, impact, risk)); n < 3 {
		t.Errorf("derivedRecommendations = %d entries, want at least 3", n)
	}
}
