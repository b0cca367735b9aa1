// Package risk combines composition and impact metrics into a single
// classified, explainable risk score.
package risk

import (
	"fmt"
	"math"

	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// Sub-score weighting: concentration and impact dominate.
const (
	concentrationWeight   = 0.4
	impactWeight          = 0.4
	diversificationWeight = 0.2
)

// Score produces a RiskAssessment from the composition and impact
// profiles. The risk tolerance category is informational only; it never
// alters the numeric score.
func Score(composition models.CompositionProfile, impact models.ImpactProfile) models.RiskAssessment {
	assessment := models.RiskAssessment{
		ConcentrationRisk:   concentrationRisk(composition),
		ImpactRisk:          impactRisk(impact),
		DiversificationRisk: diversificationRisk(composition),
	}

	assessment.Score = concentrationWeight*assessment.ConcentrationRisk +
		impactWeight*assessment.ImpactRisk +
		diversificationWeight*assessment.DiversificationRisk
	assessment.Level = classifyLevel(assessment.Score)
	assessment.PrimaryFactors = primaryFactors(composition, impact)
	assessment.Confidence = confidence(composition, impact)

	return assessment
}

func concentrationRisk(c models.CompositionProfile) float64 {
	switch {
	case c.MaxSectorExposure > 50 || c.HHI > 0.25:
		return 90
	case c.MaxSectorExposure > 30 || c.HHI > 0.15:
		return 70
	case c.MaxSectorExposure > 20 || c.HHI > 0.08:
		return 50
	default:
		return 20
	}
}

func impactRisk(i models.ImpactProfile) float64 {
	magnitude := math.Abs(i.TotalImpactScore)
	primary := len(i.PrimaryRiskSectors)
	switch {
	case magnitude > 0.5 || primary > 2:
		return 85
	case magnitude > 0.3 || primary > 1:
		return 65
	case magnitude > 0.1:
		return 45
	default:
		return 20
	}
}

func diversificationRisk(c models.CompositionProfile) float64 {
	switch {
	case c.NumSectors < 3 || c.NumHoldings < 5:
		return 80
	case c.NumSectors < 5 || c.NumHoldings < 8:
		return 60
	case c.NumSectors < 7 || c.NumHoldings < 10:
		return 40
	default:
		return 20
	}
}

// classifyLevel applies strict greater-than band boundaries: a score of
// exactly 20 falls through to MINIMAL.
func classifyLevel(score float64) models.RiskLevel {
	switch {
	case score > 75:
		return models.RiskCritical
	case score > 60:
		return models.RiskHigh
	case score > 40:
		return models.RiskMedium
	case score > 20:
		return models.RiskLow
	default:
		return models.RiskMinimal
	}
}

// primaryFactors lists the conditions driving the score, in a fixed
// order; only triggered conditions appear.
func primaryFactors(c models.CompositionProfile, i models.ImpactProfile) []string {
	var factors []string

	if c.MaxSectorExposure > 30 {
		factors = append(factors, fmt.Sprintf("High concentration in %s (%.1f%% of portfolio)", c.DominantSector, c.MaxSectorExposure))
	}
	if c.NumSectors < 5 {
		factors = append(factors, fmt.Sprintf("Limited sector diversification (%d sectors)", c.NumSectors))
	}
	if math.Abs(i.TotalImpactScore) > 0.3 {
		factors = append(factors, fmt.Sprintf("Significant scenario impact exposure (weighted impact %.2f)", i.TotalImpactScore))
	}
	if len(i.PrimaryRiskSectors) > 1 {
		factors = append(factors, fmt.Sprintf("Multiple sectors at primary risk (%d)", len(i.PrimaryRiskSectors)))
	}

	return factors
}

func confidence(c models.CompositionProfile, i models.ImpactProfile) models.Confidence {
	if c.NumHoldings > 10 && c.NumSectors > 5 && i.ScenarioType != models.ScenarioCustom {
		return models.ConfidenceHigh
	}
	if c.NumHoldings > 5 && c.NumSectors > 3 {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}
