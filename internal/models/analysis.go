package models

import (
	"time"
)

// DiversificationLevel classifies how concentrated a portfolio is.
type DiversificationLevel string

const (
	HighConcentration       DiversificationLevel = "HIGH_CONCENTRATION"
	ModerateConcentration   DiversificationLevel = "MODERATE_CONCENTRATION"
	ModerateDiversification DiversificationLevel = "MODERATE_DIVERSIFICATION"
	WellDiversified         DiversificationLevel = "WELL_DIVERSIFIED"
)

// CompositionProfile captures the structural composition of a portfolio.
// Derived per analysis request; never persisted on its own.
type CompositionProfile struct {
	TotalValue           float64              `json:"total_value"`
	NumHoldings          int                  `json:"num_holdings"`
	NumSectors           int                  `json:"num_sectors"`
	SectorAllocation     map[string]float64   `json:"sector_allocation"`
	SectorPercentages    map[string]float64   `json:"sector_percentages"`
	MaxSectorExposure    float64              `json:"max_sector_exposure"`
	DominantSector       string               `json:"dominant_sector"`
	ConcentrationScore   float64              `json:"concentration_score"` // sum of the 3 largest sector percentages
	HHI                  float64              `json:"hhi"`                 // normalized Herfindahl-Hirschman index in [0,1]
	DiversificationLevel DiversificationLevel `json:"diversification_level"`
}

// ScenarioType categorizes the scope of a described market event.
type ScenarioType string

const (
	ScenarioCompanySpecific ScenarioType = "COMPANY_SPECIFIC"
	ScenarioSectorWide      ScenarioType = "SECTOR_WIDE"
	ScenarioRegulatory      ScenarioType = "REGULATORY"
	ScenarioMacroEconomic   ScenarioType = "MACRO_ECONOMIC"
	ScenarioCustom          ScenarioType = "CUSTOM"
)

// ImpactMultiplierTable maps sector names to signed impact multipliers
// in [-1, 1]. Absent sectors are neutral (0).
type ImpactMultiplierTable map[string]float64

// Severity bands a magnitude into HIGH / MEDIUM / LOW / MINIMAL.
type Severity string

const (
	SeverityHigh    Severity = "HIGH"
	SeverityMedium  Severity = "MEDIUM"
	SeverityLow     Severity = "LOW"
	SeverityMinimal Severity = "MINIMAL"
)

// SectorImpact is the per-sector detail of a scenario's effect.
type SectorImpact struct {
	Sector         string   `json:"sector"`
	WeightPct      float64  `json:"weight_pct"`
	Multiplier     float64  `json:"multiplier"`
	WeightedImpact float64  `json:"weighted_impact"`
	RiskLevel      Severity `json:"risk_level"`
}

// ImpactProfile is the quantitative effect of a scenario on a portfolio.
type ImpactProfile struct {
	TotalImpactScore   float64                 `json:"total_impact_score"`
	SectorImpacts      map[string]SectorImpact `json:"sector_impacts"`
	AffectedSectors    []SectorImpact          `json:"affected_sectors"`     // desc by weight × |multiplier|
	PrimaryRiskSectors []string                `json:"primary_risk_sectors"` // weight > 10% and |multiplier| > 0.5
	ImpactSeverity     Severity                `json:"impact_severity"`
	ScenarioType       ScenarioType            `json:"scenario_type"`
}

// RiskLevel is the overall risk classification of an assessment.
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
	RiskMinimal  RiskLevel = "MINIMAL"
)

// Confidence rates how much portfolio breadth backs an assessment.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// RiskAssessment combines concentration, impact and diversification
// sub-scores into a single classified risk score.
type RiskAssessment struct {
	Level               RiskLevel  `json:"level"`
	Score               float64    `json:"score"` // [0,100]
	ConcentrationRisk   float64    `json:"concentration_risk"`
	ImpactRisk          float64    `json:"impact_risk"`
	DiversificationRisk float64    `json:"diversification_risk"`
	PrimaryFactors      []string   `json:"primary_factors"`
	Confidence          Confidence `json:"confidence"`
}

// NarrativeSource tags whether the narrative came from the text
// generator or the deterministic fallback path.
type NarrativeSource string

const (
	NarrativeSourceAI       NarrativeSource = "ai"
	NarrativeSourceFallback NarrativeSource = "fallback"
)

// AnalysisRequest is the engine's input: the scenario, a portfolio
// snapshot, and the caller's risk tolerance category (informational).
type AnalysisRequest struct {
	Scenario            string    `json:"scenario"`
	Portfolio           Portfolio `json:"portfolio"`
	RiskProfileCategory string    `json:"risk_profile_category,omitempty"`
}

// AnalysisResult is the complete output of a scenario analysis,
// suitable for direct persistence and re-serving to a UI.
type AnalysisResult struct {
	ID                   string             `json:"id"`
	Scenario             string             `json:"scenario"`
	Narrative            string             `json:"narrative"`
	Insights             []string           `json:"insights"`
	Recommendations      []string           `json:"recommendations"`
	RiskAssessment       RiskLevel          `json:"risk_assessment"`
	RiskDetails          RiskAssessment     `json:"risk_details"`
	PortfolioImpact      ImpactProfile      `json:"portfolio_impact"`
	PortfolioComposition CompositionProfile `json:"portfolio_composition"`
	Source               NarrativeSource    `json:"source"`
	GeneratedAt          time.Time          `json:"generated_at"`
}
