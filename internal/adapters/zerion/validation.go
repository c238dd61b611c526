package zerion

import (
	"fmt"
	"math"
)

// Responses pass through these gates before any normalization. A payload
// that decodes but carries the wrong resource shape is rejected here so
// malformed upstream data never reaches the portfolio pipeline.

func validatePositionsResponse(endpoint string, resp *PositionsResponse) error {
	if resp.Data == nil {
		return &ValidationError{Endpoint: endpoint, Detail: "missing data array"}
	}
	for i, pos := range resp.Data {
		if pos.Type != "positions" {
			return &ValidationError{
				Endpoint: endpoint,
				Detail:   fmt.Sprintf("data[%d]: unexpected resource type %q", i, pos.Type),
			}
		}
		if pos.ID == "" {
			return &ValidationError{Endpoint: endpoint, Detail: fmt.Sprintf("data[%d]: missing id", i)}
		}
		if pos.Attributes.FungibleInfo.Symbol == "" {
			return &ValidationError{Endpoint: endpoint, Detail: fmt.Sprintf("data[%d]: missing token symbol", i)}
		}
		if pos.Attributes.Value != nil && !isFinite(*pos.Attributes.Value) {
			return &ValidationError{Endpoint: endpoint, Detail: fmt.Sprintf("data[%d]: non-finite value", i)}
		}
	}
	return nil
}

func validatePortfolioResponse(endpoint string, resp *PortfolioResponse) error {
	if resp.Data.Type == "" {
		return &ValidationError{Endpoint: endpoint, Detail: "missing resource type"}
	}
	if !isFinite(resp.Data.Attributes.Total.Positions) {
		return &ValidationError{Endpoint: endpoint, Detail: "non-finite total"}
	}
	if resp.Data.Attributes.Total.Positions < 0 {
		return &ValidationError{Endpoint: endpoint, Detail: "negative total"}
	}
	return nil
}

func validatePnLResponse(endpoint string, resp *PnLResponse) error {
	if resp.Data.Type == "" {
		return &ValidationError{Endpoint: endpoint, Detail: "missing resource type"}
	}
	if resp.Data.ID == "" {
		return &ValidationError{Endpoint: endpoint, Detail: "missing resource id"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
