// Package composition analyzes the structural makeup of a portfolio:
// sector allocation, concentration and diversification.
package composition

import (
	"sort"

	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// Analyze computes a CompositionProfile from the portfolio's holdings.
// A zero-value portfolio yields all-zero percentages and the
// WELL_DIVERSIFIED default instead of dividing by zero.
func Analyze(portfolio *models.Portfolio) models.CompositionProfile {
	allocation := make(map[string]float64)
	for _, h := range portfolio.Holdings {
		sector := h.Sector
		if sector == "" {
			sector = models.SectorUnknown
		}
		allocation[sector] += h.TotalValue
	}

	profile := models.CompositionProfile{
		TotalValue:        portfolio.TotalValue,
		NumHoldings:       len(portfolio.Holdings),
		NumSectors:        len(allocation),
		SectorAllocation:  allocation,
		SectorPercentages: make(map[string]float64, len(allocation)),
	}

	if portfolio.TotalValue <= 0 {
		// Degenerate case: every percentage-derived metric is defined as zero.
		for sector := range allocation {
			profile.SectorPercentages[sector] = 0
		}
		profile.DiversificationLevel = models.WellDiversified
		return profile
	}

	// Iterate sectors in name order so ties resolve deterministically.
	sectors := make([]string, 0, len(allocation))
	for sector := range allocation {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	percentages := make([]float64, 0, len(allocation))
	for _, sector := range sectors {
		pct := 100 * allocation[sector] / portfolio.TotalValue
		profile.SectorPercentages[sector] = pct
		percentages = append(percentages, pct)

		if pct > profile.MaxSectorExposure {
			profile.MaxSectorExposure = pct
			profile.DominantSector = sector
		}

		frac := pct / 100
		profile.HHI += frac * frac
	}

	// Concentration score: the three largest sector percentages.
	sort.Sort(sort.Reverse(sort.Float64Slice(percentages)))
	for i, pct := range percentages {
		if i >= 3 {
			break
		}
		profile.ConcentrationScore += pct
	}

	profile.DiversificationLevel = classifyDiversification(profile.HHI, profile.MaxSectorExposure)

	return profile
}

// classifyDiversification applies the ordered threshold table;
// the first matching band wins.
func classifyDiversification(hhi, maxExposure float64) models.DiversificationLevel {
	switch {
	case hhi > 0.25 || maxExposure > 50:
		return models.HighConcentration
	case hhi > 0.15 || maxExposure > 30:
		return models.ModerateConcentration
	case hhi > 0.08 || maxExposure > 20:
		return models.ModerateDiversification
	default:
		return models.WellDiversified
	}
}
