package services

import (
	"sort"

	"github.com/folio-service/folio_service/internal/adapters/zerion"
	"github.com/folio-service/folio_service/internal/domain/entities"
)

// DefaultTopN is the number of positions kept before the remainder is
// folded into the "Others" aggregate.
const DefaultTopN = 6

// NormalizePositions converts raw upstream positions into display
// positions sized relative to the portfolio total. Positions that are
// hidden, trash, or unpriced are dropped. A zero total yields an empty
// list regardless of input.
func NormalizePositions(resp *zerion.PositionsResponse, totalValue float64) []entities.Position {
	if totalValue == 0 {
		return []entities.Position{}
	}

	out := make([]entities.Position, 0, len(resp.Data))
	for _, pos := range resp.Data {
		attrs := pos.Attributes
		if !attrs.Flags.Displayable || attrs.Flags.IsTrash || attrs.Value == nil {
			continue
		}
		out = append(out, entities.Position{
			Symbol:     attrs.FungibleInfo.Symbol,
			Name:       attrs.FungibleInfo.Name,
			Value:      *attrs.Value,
			Percentage: (*attrs.Value / totalValue) * 100,
			Icon:       attrs.FungibleInfo.IconURL(),
			Verified:   attrs.FungibleInfo.Flags.Verified,
		})
	}

	// Stable so equal values keep their upstream order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})

	return out
}

// GroupPositions splits a ranked position list into the top-N positions
// plus a synthetic "Others" aggregate summing the rest. Others is nil
// when the list already fits within the cutoff.
func GroupPositions(positions []entities.Position, topN int) entities.GroupedPositions {
	if topN <= 0 {
		topN = DefaultTopN
	}

	if len(positions) <= topN {
		return entities.GroupedPositions{TopPositions: positions}
	}

	top := positions[:topN]
	remaining := positions[topN:]

	var othersValue, othersPercentage float64
	for _, pos := range remaining {
		othersValue += pos.Value
		othersPercentage += pos.Percentage
	}

	return entities.GroupedPositions{
		TopPositions: top,
		Others: &entities.Position{
			Symbol:     entities.OthersSymbol,
			Name:       entities.OthersName,
			Value:      othersValue,
			Percentage: othersPercentage,
			Verified:   true,
		},
	}
}

// NormalizePnL converts absolute realized and unrealized gain figures
// into percentages of the portfolio total. Missing or non-numeric
// figures read as zero, and a zero total yields zero percentages.
func NormalizePnL(resp *zerion.PnLResponse, totalValue float64) (realizedPercent, unrealizedPercent float64) {
	if totalValue == 0 {
		return 0, 0
	}

	realized := resp.Data.NumberAttr("realized_gain")
	unrealized := resp.Data.NumberAttr("unrealized_gain")

	return (realized / totalValue) * 100, (unrealized / totalValue) * 100
}
