// Package models defines data structures for the scenario advisor
package models

import (
	"errors"
	"fmt"
)

// SectorUnknown is the bucket for holdings without a resolved sector.
const SectorUnknown = "Unknown"

// ErrNoHoldings indicates an empty portfolio was submitted for analysis.
var ErrNoHoldings = errors.New("portfolio has no holdings")

// InvalidHoldingError reports a holding that fails input validation.
type InvalidHoldingError struct {
	Symbol string
	Reason string
}

func (e *InvalidHoldingError) Error() string {
	return fmt.Sprintf("invalid holding %s: %s", e.Symbol, e.Reason)
}

// Holding represents a single stock position within a portfolio.
type Holding struct {
	CompanyName  string  `json:"company_name"`
	Symbol       string  `json:"symbol"`
	Quantity     int     `json:"quantity"`
	CurrentPrice float64 `json:"current_price"`
	TotalValue   float64 `json:"total_value"`
	Sector       string  `json:"sector"`
}

// Normalize fills derived fields: total value from quantity and price,
// and the Unknown sector bucket for missing sectors.
func (h *Holding) Normalize() {
	h.TotalValue = float64(h.Quantity) * h.CurrentPrice
	if h.Sector == "" {
		h.Sector = SectorUnknown
	}
}

// Validate checks the holding's required fields. Zero quantity is legal
// (a degenerate position); negative quantity or price is not.
func (h *Holding) Validate() error {
	if h.Quantity < 0 {
		return &InvalidHoldingError{Symbol: h.Symbol, Reason: "negative quantity"}
	}
	if h.CurrentPrice < 0 {
		return &InvalidHoldingError{Symbol: h.Symbol, Reason: "negative price"}
	}
	return nil
}

// Portfolio is a snapshot of holdings submitted for scenario analysis.
// TotalValue is always the sum of the holdings' values.
type Portfolio struct {
	TotalValue float64   `json:"total_value"`
	Holdings   []Holding `json:"holdings"`
}

// Normalize recomputes every holding's value and the portfolio total.
func (p *Portfolio) Normalize() {
	total := 0.0
	for i := range p.Holdings {
		p.Holdings[i].Normalize()
		total += p.Holdings[i].TotalValue
	}
	p.TotalValue = total
}

// Validate checks the portfolio can be analyzed.
func (p *Portfolio) Validate() error {
	if len(p.Holdings) == 0 {
		return ErrNoHoldings
	}
	for i := range p.Holdings {
		if err := p.Holdings[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
