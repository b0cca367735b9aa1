// Package report renders analysis results as plain-text reports.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

const reportTitle = "PORTFOLIO RISK & SCENARIO ANALYSIS REPORT"

// Format renders a single analysis result as a plain-text report
// suitable for download or archival.
func Format(result *models.AnalysisResult) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString(reportTitle + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated on: %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Analysis ID: %s\n\n", result.ID)

	fmt.Fprintf(&b, "Scenario: %s\n\n", result.Scenario)

	writeRiskSection(&b, result.RiskDetails)
	writeCompositionSection(&b, result.PortfolioComposition)
	writeImpactSection(&b, result.PortfolioImpact)
	writeNarrativeSection(&b, result)

	b.WriteString(rule + "\n")
	b.WriteString("This report is for informational purposes only and does not\n")
	b.WriteString("constitute financial advice.\n")

	return b.String()
}

func writeRiskSection(b *strings.Builder, risk models.RiskAssessment) {
	writeHeading(b, "RISK ASSESSMENT")
	fmt.Fprintf(b, "Overall Risk Level: %s\n", risk.Level)
	fmt.Fprintf(b, "Risk Score: %.0f/100 (confidence: %s)\n", risk.Score, risk.Confidence)
	fmt.Fprintf(b, "  Concentration Risk:   %.0f\n", risk.ConcentrationRisk)
	fmt.Fprintf(b, "  Impact Risk:          %.0f\n", risk.ImpactRisk)
	fmt.Fprintf(b, "  Diversification Risk: %.0f\n", risk.DiversificationRisk)
	if len(risk.PrimaryFactors) > 0 {
		b.WriteString("Primary Risk Factors:\n")
		for _, factor := range risk.PrimaryFactors {
			fmt.Fprintf(b, "• %s\n", factor)
		}
	}
	b.WriteString("\n")
}

func writeCompositionSection(b *strings.Builder, comp models.CompositionProfile) {
	writeHeading(b, "PORTFOLIO COMPOSITION")
	fmt.Fprintf(b, "Total Portfolio Value: ₹%.2f\n", comp.TotalValue)
	fmt.Fprintf(b, "Holdings: %d across %d sectors\n", comp.NumHoldings, comp.NumSectors)
	fmt.Fprintf(b, "Diversification: %s (HHI %.3f)\n", comp.DiversificationLevel, comp.HHI)
	b.WriteString("Sector Allocation:\n")

	sectors := make([]string, 0, len(comp.SectorPercentages))
	for sector := range comp.SectorPercentages {
		sectors = append(sectors, sector)
	}
	sort.Slice(sectors, func(i, j int) bool {
		pi, pj := comp.SectorPercentages[sectors[i]], comp.SectorPercentages[sectors[j]]
		if pi != pj {
			return pi > pj
		}
		return sectors[i] < sectors[j]
	})
	for _, sector := range sectors {
		fmt.Fprintf(b, "• %s: %.1f%% (₹%.2f)\n",
			sector, comp.SectorPercentages[sector], comp.SectorAllocation[sector])
	}
	b.WriteString("\n")
}

func writeImpactSection(b *strings.Builder, impact models.ImpactProfile) {
	writeHeading(b, "SCENARIO IMPACT")
	fmt.Fprintf(b, "Scenario Type: %s\n", impact.ScenarioType)
	fmt.Fprintf(b, "Impact Severity: %s (weighted impact %.3f)\n", impact.ImpactSeverity, impact.TotalImpactScore)
	if len(impact.AffectedSectors) > 0 {
		b.WriteString("Affected Sectors:\n")
		for _, si := range impact.AffectedSectors {
			fmt.Fprintf(b, "• %s: multiplier %+.2f on %.1f%% of the portfolio (%s)\n",
				si.Sector, si.Multiplier, si.WeightPct, si.RiskLevel)
		}
	}
	if len(impact.PrimaryRiskSectors) > 0 {
		fmt.Fprintf(b, "Primary Risk Sectors: %s\n", strings.Join(impact.PrimaryRiskSectors, ", "))
	}
	b.WriteString("\n")
}

func writeNarrativeSection(b *strings.Builder, result *models.AnalysisResult) {
	writeHeading(b, "ANALYSIS NARRATIVE")
	if result.Source == models.NarrativeSourceFallback {
		b.WriteString("(generated locally; AI narrative was unavailable)\n\n")
	}
	b.WriteString(result.Narrative + "\n\n")

	if len(result.Insights) > 0 {
		b.WriteString("Key Insights:\n")
		for _, insight := range result.Insights {
			fmt.Fprintf(b, "• %s\n", insight)
		}
		b.WriteString("\n")
	}
	if len(result.Recommendations) > 0 {
		b.WriteString("Recommendations:\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(b, "• %s\n", rec)
		}
		b.WriteString("\n")
	}
}

func writeHeading(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", len(title)) + "\n")
}
