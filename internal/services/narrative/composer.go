package narrative

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alokagarwal565/scenario-advisor/internal/common"
	"github.com/alokagarwal565/scenario-advisor/internal/interfaces"
	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// Floor for insight and recommendation lists; derived items fill any
// gap the generator leaves.
const minListItems = 3

// Composition is the narrative output: an overview paragraph plus
// bounded insight and recommendation lists, tagged with its source.
type Composition struct {
	Narrative       string
	Insights        []string
	Recommendations []string
	Source          models.NarrativeSource
}

// Composer turns a computed analysis into prose. When a text generator
// is configured it drives generation with retries and parses the
// response; otherwise, or on failure, it falls back to a deterministic
// narrative built from the computed figures alone.
type Composer struct {
	generator          interfaces.TextGenerator
	retry              common.RetryConfig
	maxInsights        int
	maxRecommendations int
	logger             *common.Logger
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithRetryConfig overrides the default retry policy.
func WithRetryConfig(cfg common.RetryConfig) ComposerOption {
	return func(c *Composer) { c.retry = cfg }
}

// WithListCaps sets the maximum number of insights and recommendations.
func WithListCaps(maxInsights, maxRecommendations int) ComposerOption {
	return func(c *Composer) {
		if maxInsights > 0 {
			c.maxInsights = maxInsights
		}
		if maxRecommendations > 0 {
			c.maxRecommendations = maxRecommendations
		}
	}
}

// WithLogger sets the composer logger.
func WithLogger(logger *common.Logger) ComposerOption {
	return func(c *Composer) { c.logger = logger }
}

// NewComposer creates a Composer. A nil generator is valid and routes
// every composition through the fallback path.
func NewComposer(generator interfaces.TextGenerator, opts ...ComposerOption) *Composer {
	c := &Composer{
		generator:          generator,
		retry:              common.DefaultRetryConfig(),
		maxInsights:        6,
		maxRecommendations: 6,
		logger:             common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose produces the narrative for a scored analysis. It never
// returns an error: any generation failure degrades to the fallback
// narrative so the quantitative result always ships with prose.
func (c *Composer) Compose(
	ctx context.Context,
	req models.AnalysisRequest,
	comp models.CompositionProfile,
	impact models.ImpactProfile,
	risk models.RiskAssessment,
) Composition {
	if c.generator == nil {
		return c.fallback(req, comp, impact, risk, "no text generator configured")
	}

	prompt := c.buildPrompt(req, comp, impact, risk)

	text, err := common.Retry(ctx, c.retry, c.logger, func(ctx context.Context) (string, error) {
		return c.generator.Generate(ctx, prompt)
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("scenario", req.Scenario).Msg("Narrative generation failed, using fallback")
		return c.fallback(req, comp, impact, risk, err.Error())
	}
	if strings.TrimSpace(text) == "" {
		c.logger.Warn().Str("scenario", req.Scenario).Msg("Narrative generation returned empty response, using fallback")
		return c.fallback(req, comp, impact, risk, "generator returned an empty response")
	}

	parsed := Parse(text)
	if parsed.Overview == "" && len(parsed.Insights) == 0 && len(parsed.Recommendations) == 0 {
		return c.fallback(req, comp, impact, risk, "generator response had no usable content")
	}

	// A marked response can skip the overview section while still
	// carrying usable lists. Keep whatever parsed and substitute only
	// the missing narrative.
	narrative := parsed.Overview
	if narrative == "" {
		c.logger.Warn().Str("scenario", req.Scenario).Msg("Generator response had no overview section, substituting local narrative")
		narrative = c.localNarrative(req, impact, risk, "the generated response had no overview section")
	}

	return Composition{
		Narrative:       narrative,
		Insights:        c.supplement(parsed.Insights, derivedInsights(comp, impact, risk), c.maxInsights),
		Recommendations: c.supplement(parsed.Recommendations, derivedRecommendations(req, comp, impact, risk), c.maxRecommendations),
		Source:          models.NarrativeSourceAI,
	}
}

func (c *Composer) buildPrompt(
	req models.AnalysisRequest,
	comp models.CompositionProfile,
	impact models.ImpactProfile,
	risk models.RiskAssessment,
) string {
	var b strings.Builder

	b.WriteString("You are a financial advisor analyzing how a market scenario affects an investor's portfolio.\n\n")
	fmt.Fprintf(&b, "Scenario: %s\n", req.Scenario)
	fmt.Fprintf(&b, "Scenario type: %s\n\n", impact.ScenarioType)

	b.WriteString("Portfolio composition:\n")
	fmt.Fprintf(&b, "- Total value: %.2f across %d holdings in %d sectors\n",
		comp.TotalValue, comp.NumHoldings, comp.NumSectors)
	fmt.Fprintf(&b, "- Diversification: %s (HHI %.3f, largest sector %s at %.1f%%)\n",
		comp.DiversificationLevel, comp.HHI, comp.DominantSector, comp.MaxSectorExposure)

	sectors := make([]string, 0, len(comp.SectorPercentages))
	for sector := range comp.SectorPercentages {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)
	for _, sector := range sectors {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", sector, comp.SectorPercentages[sector])
	}

	b.WriteString("\nComputed scenario impact:\n")
	fmt.Fprintf(&b, "- Weighted impact score: %.3f (severity %s)\n", impact.TotalImpactScore, impact.ImpactSeverity)
	for _, si := range impact.AffectedSectors {
		fmt.Fprintf(&b, "- %s: multiplier %+.2f on %.1f%% of the portfolio\n", si.Sector, si.Multiplier, si.WeightPct)
	}
	if len(impact.PrimaryRiskSectors) > 0 {
		fmt.Fprintf(&b, "- Primary risk sectors: %s\n", strings.Join(impact.PrimaryRiskSectors, ", "))
	}

	fmt.Fprintf(&b, "\nOverall risk assessment: %s (score %.0f/100, confidence %s)\n",
		risk.Level, risk.Score, risk.Confidence)

	if req.RiskProfileCategory != "" {
		fmt.Fprintf(&b, "Investor risk profile: %s\n", req.RiskProfileCategory)
	}

	b.WriteString(`
Write your analysis using exactly these section markers:

[OVERVIEW]
Two or three sentences summarizing how this scenario affects this specific portfolio. Plain language, no jargon.

[KEY INSIGHTS]
3 to 6 bullet points with the most important portfolio-specific observations.

[ACTIONABLE RECOMMENDATIONS]
3 to 6 bullet points with concrete steps the investor can take.

Ground every statement in the figures above. Do not invent prices or predictions.
`)

	return b.String()
}

// fallback builds a deterministic composition from the computed figures
// when generation is unavailable. The reason names the failure so the
// reader knows the prose is local.
func (c *Composer) fallback(
	req models.AnalysisRequest,
	comp models.CompositionProfile,
	impact models.ImpactProfile,
	risk models.RiskAssessment,
	reason string,
) Composition {
	return Composition{
		Narrative:       c.localNarrative(req, impact, risk, reason),
		Insights:        c.supplement(nil, derivedInsights(comp, impact, risk), c.maxInsights),
		Recommendations: c.supplement(nil, derivedRecommendations(req, comp, impact, risk), c.maxRecommendations),
		Source:          models.NarrativeSourceFallback,
	}
}

// localNarrative states the scenario and the computed figures together
// with the reason no generated overview is shown.
func (c *Composer) localNarrative(
	req models.AnalysisRequest,
	impact models.ImpactProfile,
	risk models.RiskAssessment,
	reason string,
) string {
	return fmt.Sprintf(
		"Automated narrative generation was unavailable for this scenario (%s). "+
			"The assessment below was computed locally from the portfolio's sector weights. "+
			"For the scenario %q the estimated impact severity is %s with an overall risk level of %s (score %.0f/100).",
		reason, req.Scenario, impact.ImpactSeverity, risk.Level, risk.Score)
}

// supplement tops up parsed items with derived ones until the minimum
// floor is met, then caps the list. Parsed items are never discarded in
// favor of derived ones.
func (c *Composer) supplement(parsed, derived []string, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool)

	for _, item := range parsed {
		if len(out) >= limit {
			break
		}
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}

	floor := minListItems
	if floor > limit {
		floor = limit
	}
	for _, item := range derived {
		if len(out) >= floor {
			break
		}
		key := strings.ToLower(strings.TrimSpace(item))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}

	return out
}

// derivedInsights produces rule-based observations from the computed
// profiles. At least three are always available.
func derivedInsights(comp models.CompositionProfile, impact models.ImpactProfile, risk models.RiskAssessment) []string {
	var insights []string

	if comp.MaxSectorExposure > 30 {
		insights = append(insights, fmt.Sprintf(
			"%s makes up %.1f%% of the portfolio, so a shock to that sector has an outsized effect on the whole",
			comp.DominantSector, comp.MaxSectorExposure))
	}
	if comp.NumSectors > 0 && comp.NumSectors < 5 {
		insights = append(insights, fmt.Sprintf(
			"Holdings span only %d sectors, leaving little cushion against sector-wide moves", comp.NumSectors))
	}
	if len(impact.PrimaryRiskSectors) > 0 {
		insights = append(insights, fmt.Sprintf(
			"The sectors most exposed to this scenario are %s", strings.Join(impact.PrimaryRiskSectors, ", ")))
	}

	insights = append(insights,
		fmt.Sprintf("The estimated scenario impact severity is %s with a weighted impact score of %.2f",
			impact.ImpactSeverity, impact.TotalImpactScore),
		fmt.Sprintf("Portfolio diversification is classified as %s across %d sectors",
			comp.DiversificationLevel, comp.NumSectors),
		fmt.Sprintf("Overall risk for this scenario is assessed as %s with %s confidence",
			risk.Level, risk.Confidence))

	return insights
}

// derivedRecommendations produces rule-based next steps. At least three
// are always available.
func derivedRecommendations(req models.AnalysisRequest, comp models.CompositionProfile, impact models.ImpactProfile, risk models.RiskAssessment) []string {
	var recs []string

	if risk.Level == models.RiskCritical || risk.Level == models.RiskHigh {
		recs = append(recs, fmt.Sprintf(
			"Consider trimming exposure to %s to bring its weight below 30%% of the portfolio", comp.DominantSector))
	}
	if comp.NumSectors > 0 && comp.NumSectors < 5 {
		recs = append(recs, "Add holdings in unrelated sectors to reduce concentration risk")
	}
	if len(impact.PrimaryRiskSectors) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Watch news and indicators affecting %s while this scenario remains plausible",
			strings.Join(impact.PrimaryRiskSectors, ", ")))
	}

	tolerance := "your"
	if req.RiskProfileCategory != "" {
		tolerance = fmt.Sprintf("your %s", strings.ToLower(req.RiskProfileCategory))
	}
	recs = append(recs,
		fmt.Sprintf("Review the current asset allocation against %s risk tolerance", tolerance),
		"Monitor the economic indicators this scenario depends on before making changes",
		"Consult a qualified financial advisor before acting on scenario-driven rebalancing")

	return recs
}
