package impact

import (
	"math"
	"sort"

	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// Calculate combines a portfolio's sector weights with a multiplier
// table into an ImpactProfile. Every portfolio sector contributes to
// the total; sectors absent from the table are neutral.
func Calculate(composition models.CompositionProfile, table models.ImpactMultiplierTable, scenarioType models.ScenarioType) models.ImpactProfile {
	profile := models.ImpactProfile{
		SectorImpacts: make(map[string]models.SectorImpact, len(composition.SectorPercentages)),
		ScenarioType:  scenarioType,
	}

	// Iterate sectors in name order so the pre-sort candidate order is
	// deterministic and ties in the final ordering are stable.
	sectors := make([]string, 0, len(composition.SectorPercentages))
	for sector := range composition.SectorPercentages {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	affected := make([]models.SectorImpact, 0, len(sectors))
	for _, sector := range sectors {
		weightPct := composition.SectorPercentages[sector]
		multiplier := table[sector]

		impact := models.SectorImpact{
			Sector:         sector,
			WeightPct:      weightPct,
			Multiplier:     multiplier,
			WeightedImpact: (weightPct / 100) * multiplier,
			RiskLevel:      multiplierRiskLevel(multiplier),
		}
		profile.SectorImpacts[sector] = impact
		profile.TotalImpactScore += impact.WeightedImpact

		if multiplier != 0 {
			affected = append(affected, impact)
		}
	}

	sort.SliceStable(affected, func(i, j int) bool {
		return affected[i].WeightPct*math.Abs(affected[i].Multiplier) >
			affected[j].WeightPct*math.Abs(affected[j].Multiplier)
	})
	profile.AffectedSectors = affected

	for _, impact := range affected {
		if impact.WeightPct > 10 && math.Abs(impact.Multiplier) > 0.5 {
			profile.PrimaryRiskSectors = append(profile.PrimaryRiskSectors, impact.Sector)
		}
	}

	profile.ImpactSeverity = impactSeverity(profile.TotalImpactScore)

	return profile
}

// multiplierRiskLevel bands a multiplier magnitude.
func multiplierRiskLevel(multiplier float64) models.Severity {
	abs := math.Abs(multiplier)
	switch {
	case abs > 0.7:
		return models.SeverityHigh
	case abs > 0.4:
		return models.SeverityMedium
	case abs > 0.2:
		return models.SeverityLow
	default:
		return models.SeverityMinimal
	}
}

// impactSeverity bands the total weighted impact magnitude.
func impactSeverity(totalImpact float64) models.Severity {
	abs := math.Abs(totalImpact)
	switch {
	case abs > 0.5:
		return models.SeverityHigh
	case abs > 0.3:
		return models.SeverityMedium
	case abs > 0.1:
		return models.SeverityLow
	default:
		return models.SeverityMinimal
	}
}
