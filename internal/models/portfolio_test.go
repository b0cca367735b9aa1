package models

import (
	"errors"
	"testing"
)

func TestHoldingNormalize(t *testing.T) {
	h := Holding{CompanyName: "TCS", Symbol: "TCS.NS", Quantity: 10, CurrentPrice: 3500}
	h.Normalize()

	if h.TotalValue != 35000 {
		t.Errorf("TotalValue = %v, want 35000", h.TotalValue)
	}
	if h.Sector != SectorUnknown {
		t.Errorf("Sector = %q, want %q", h.Sector, SectorUnknown)
	}
}

func TestHoldingValidate(t *testing.T) {
	tests := []struct {
		name    string
		holding Holding
		wantErr bool
	}{
		{"valid", Holding{Symbol: "TCS.NS", Quantity: 10, CurrentPrice: 3500}, false},
		{"zero quantity is legal", Holding{Symbol: "TCS.NS", Quantity: 0, CurrentPrice: 3500}, false},
		{"zero price is legal", Holding{Symbol: "TCS.NS", Quantity: 10, CurrentPrice: 0}, false},
		{"negative quantity", Holding{Symbol: "TCS.NS", Quantity: -1, CurrentPrice: 3500}, true},
		{"negative price", Holding{Symbol: "TCS.NS", Quantity: 10, CurrentPrice: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.holding.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var invalid *InvalidHoldingError
				if !errors.As(err, &invalid) {
					t.Errorf("error type = %T, want *InvalidHoldingError", err)
				}
			}
		})
	}
}

func TestPortfolioValidateEmpty(t *testing.T) {
	p := Portfolio{}
	if err := p.Validate(); !errors.Is(err, ErrNoHoldings) {
		t.Errorf("Validate() = %v, want ErrNoHoldings", err)
	}
}

func TestPortfolioNormalizeTotals(t *testing.T) {
	p := Portfolio{Holdings: []Holding{
		{Quantity: 10, CurrentPrice: 100, Sector: "Energy"},
		{Quantity: 5, CurrentPrice: 200},
	}}
	p.Normalize()

	if p.TotalValue != 2000 {
		t.Errorf("TotalValue = %v, want 2000", p.TotalValue)
	}
	if p.Holdings[1].Sector != SectorUnknown {
		t.Errorf("missing sector not bucketed: %q", p.Holdings[1].Sector)
	}
}
