// Package impact classifies scenario text into sector impact
// multipliers and computes the weighted effect on a portfolio.
package impact

import (
	"strings"

	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// impactRule pairs a keyword group with its hand-curated multiplier
// table. Rules are evaluated in declaration order; the first rule with
// any keyword present in the lower-cased scenario text wins.
type impactRule struct {
	name     string
	keywords []string
	table    models.ImpactMultiplierTable
}

// impactRules is the ordered keyword-group table. The ordering and
// keyword sets are part of the engine's contract: identical input
// always selects the identical multiplier table.
var impactRules = []impactRule{
	{
		name:     "it_tech",
		keywords: []string{"it sector", "it company", "it companies", "information technology", "software", "tech"},
		table: models.ImpactMultiplierTable{
			"Information Technology": -0.8,
			"Telecommunications":     -0.3,
			"Financial Services":     -0.2,
		},
	},
	{
		name:     "banking_rates",
		keywords: []string{"repo rate", "interest rate", "rate hike", "rbi", "monetary policy", "bank", "lending"},
		table: models.ImpactMultiplierTable{
			"Financial Services":     -0.9,
			"Real Estate":            -0.7,
			"Automobile":             -0.5,
			"Infrastructure":         -0.4,
			"Information Technology": -0.3,
			"Consumer Goods":         -0.2,
		},
	},
	{
		name:     "oil_energy",
		keywords: []string{"oil", "crude", "opec", "petrol", "fuel", "energy price"},
		table: models.ImpactMultiplierTable{
			"Airlines":   -0.8,
			"Energy":     0.6,
			"Automobile": -0.5,
			"Logistics":  -0.4,
			"Chemicals":  -0.3,
			"Paints":     -0.4,
		},
	},
	{
		name:     "real_estate",
		keywords: []string{"real estate", "property", "housing", "rera", "construction"},
		table: models.ImpactMultiplierTable{
			"Real Estate":        -0.8,
			"Financial Services": -0.4,
			"Infrastructure":     -0.3,
			"Metals":             -0.3,
			"Consumer Goods":     -0.2,
		},
	},
	{
		name:     "pharma_health",
		keywords: []string{"pharma", "healthcare", "drug", "fda", "medicine", "hospital"},
		table: models.ImpactMultiplierTable{
			"Pharmaceuticals": -0.7,
			"Healthcare":      -0.6,
			"Chemicals":       -0.2,
		},
	},
	{
		name:     "regulatory_policy",
		keywords: []string{"regulation", "regulatory", "policy", "government", "budget", "tax", "sebi", "tariff"},
		table: models.ImpactMultiplierTable{
			"Telecommunications":     -0.5,
			"Financial Services":     -0.4,
			"Energy":                 -0.3,
			"Pharmaceuticals":        -0.3,
			"Information Technology": -0.2,
		},
	},
	{
		name:     "global_macro",
		keywords: []string{"recession", "inflation", "gdp", "global", "federal reserve", "trade war", "currency", "rupee", "fii"},
		table: models.ImpactMultiplierTable{
			"Information Technology": -0.6,
			"Metals":                 -0.6,
			"Financial Services":     -0.5,
			"Automobile":             -0.4,
			"Energy":                 -0.4,
			"Consumer Goods":         -0.3,
			"Pharmaceuticals":        -0.2,
		},
	},
}

// ClassifySectorImpact maps free scenario text to a sector impact
// multiplier table. An empty table is a valid result meaning neutral
// impact everywhere.
func ClassifySectorImpact(scenario string) models.ImpactMultiplierTable {
	text := strings.ToLower(scenario)

	for _, rule := range impactRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				// Copy so callers cannot mutate the rule table.
				table := make(models.ImpactMultiplierTable, len(rule.table))
				for sector, mult := range rule.table {
					table[sector] = mult
				}
				return table
			}
		}
	}

	return models.ImpactMultiplierTable{}
}

// typeRule pairs a keyword group with a scenario type.
type typeRule struct {
	scenarioType models.ScenarioType
	keywords     []string
}

var typeRules = []typeRule{
	{models.ScenarioCompanySpecific, []string{"quarterly results", "earnings", "announces", "ceo", "merger", "acquisition", "stock split"}},
	{models.ScenarioSectorWide, []string{"sector", "industry"}},
	{models.ScenarioRegulatory, []string{"rbi", "sebi", "regulation", "regulatory", "policy", "government", "budget", "tax"}},
	{models.ScenarioMacroEconomic, []string{"inflation", "recession", "gdp", "interest rate", "repo rate", "federal reserve", "currency", "global", "trade war"}},
}

// ClassifyScenarioType categorizes the scenario's scope, defaulting to
// CUSTOM when no keyword group matches.
func ClassifyScenarioType(scenario string) models.ScenarioType {
	text := strings.ToLower(scenario)

	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.scenarioType
			}
		}
	}

	return models.ScenarioCustom
}
