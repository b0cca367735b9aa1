package models

// RiskQuestion is one questionnaire entry for risk tolerance profiling.
// Options and Weights are parallel; picking option i scores Weights[i].
type RiskQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Weights  []int    `json:"weights"`
}

// RiskProfile is the outcome of the risk tolerance questionnaire.
type RiskProfile struct {
	Category        string   `json:"category"` // Conservative, Balanced, Aggressive
	Score           float64  `json:"score"`    // percentage of the maximum score
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// ParsedHolding is a holding extracted from free-text portfolio input.
// Prices and sectors are enriched by the caller, not the parser.
type ParsedHolding struct {
	CompanyName   string `json:"company_name"`
	Symbol        string `json:"symbol"`
	Quantity      int    `json:"quantity"`
	Sector        string `json:"sector,omitempty"`
	OriginalEntry string `json:"original_entry"`
}
