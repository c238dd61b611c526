package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-service/folio_service/internal/adapters/zerion"
	"github.com/folio-service/folio_service/internal/domain/entities"
)

func rawPosition(symbol, name string, value *float64, displayable, trash, verified bool) zerion.Position {
	return zerion.Position{
		Type: "positions",
		ID:   symbol,
		Attributes: zerion.PositionAttributes{
			Name:         "Asset",
			PositionType: "wallet",
			Value:        value,
			FungibleInfo: zerion.FungibleInfo{
				Name:   name,
				Symbol: symbol,
				Flags:  zerion.FungibleFlags{Verified: verified},
			},
			Flags: zerion.PositionFlags{Displayable: displayable, IsTrash: trash},
		},
	}
}

func fval(v float64) *float64 { return &v }

func TestNormalizePositionsFiltersAndRanks(t *testing.T) {
	resp := &zerion.PositionsResponse{Data: []zerion.Position{
		rawPosition("USDC", "USD Coin", fval(300), true, false, true),
		rawPosition("HIDDEN", "Hidden", fval(999), false, false, true),
		rawPosition("TRASH", "Trash Token", fval(999), true, true, false),
		rawPosition("NOPRICE", "Unpriced", nil, true, false, false),
		rawPosition("ETH", "Ethereum", fval(600), true, false, true),
		rawPosition("DAI", "Dai", fval(100), true, false, true),
	}}

	positions := NormalizePositions(resp, 1000)
	require.Len(t, positions, 3)

	assert.Equal(t, []string{"ETH", "USDC", "DAI"}, []string{
		positions[0].Symbol, positions[1].Symbol, positions[2].Symbol,
	})
	assert.Equal(t, 60.0, positions[0].Percentage)
	assert.Equal(t, 30.0, positions[1].Percentage)
	assert.Equal(t, 10.0, positions[2].Percentage)
}

func TestNormalizePositionsPercentagesSumToHundred(t *testing.T) {
	resp := &zerion.PositionsResponse{Data: []zerion.Position{
		rawPosition("A", "A", fval(123.45), true, false, true),
		rawPosition("B", "B", fval(67.89), true, false, true),
		rawPosition("C", "C", fval(0.66), true, false, true),
	}}
	total := 123.45 + 67.89 + 0.66

	positions := NormalizePositions(resp, total)
	require.Len(t, positions, 3)

	var sum float64
	for i, pos := range positions {
		sum += pos.Percentage
		if i > 0 {
			assert.GreaterOrEqual(t, positions[i-1].Value, pos.Value)
		}
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
}

func TestNormalizePositionsZeroTotal(t *testing.T) {
	resp := &zerion.PositionsResponse{Data: []zerion.Position{
		rawPosition("ETH", "Ethereum", fval(600), true, false, true),
		rawPosition("USDC", "USD Coin", fval(300), true, false, true),
	}}

	positions := NormalizePositions(resp, 0)
	assert.Empty(t, positions)
}

func TestNormalizePositionsStableTieOrder(t *testing.T) {
	resp := &zerion.PositionsResponse{Data: []zerion.Position{
		rawPosition("FIRST", "First", fval(100), true, false, true),
		rawPosition("SECOND", "Second", fval(100), true, false, true),
		rawPosition("THIRD", "Third", fval(100), true, false, true),
	}}

	positions := NormalizePositions(resp, 300)
	require.Len(t, positions, 3)
	assert.Equal(t, "FIRST", positions[0].Symbol)
	assert.Equal(t, "SECOND", positions[1].Symbol)
	assert.Equal(t, "THIRD", positions[2].Symbol)
}

func makePositions(n int) []entities.Position {
	out := make([]entities.Position, n)
	for i := range out {
		out[i] = entities.Position{
			Symbol:     string(rune('A' + i)),
			Value:      float64(100 * (n - i)),
			Percentage: 100.0 / float64(n),
		}
	}
	return out
}

func TestGroupPositionsWithinCutoff(t *testing.T) {
	positions := makePositions(6)
	grouped := GroupPositions(positions, 6)

	assert.Len(t, grouped.TopPositions, 6)
	assert.Nil(t, grouped.Others)
}

func TestGroupPositionsBeyondCutoff(t *testing.T) {
	positions := makePositions(9)
	grouped := GroupPositions(positions, 6)

	require.Len(t, grouped.TopPositions, 6)
	require.NotNil(t, grouped.Others)

	assert.Equal(t, entities.OthersSymbol, grouped.Others.Symbol)
	assert.Equal(t, entities.OthersName, grouped.Others.Name)
	assert.Empty(t, grouped.Others.Icon)
	assert.True(t, grouped.Others.Verified)

	var wantValue, wantPercentage float64
	for _, pos := range positions[6:] {
		wantValue += pos.Value
		wantPercentage += pos.Percentage
	}
	assert.InDelta(t, wantValue, grouped.Others.Value, 1e-9)
	assert.InDelta(t, wantPercentage, grouped.Others.Percentage, 1e-9)
}

func TestGroupPositionsDefaultCutoff(t *testing.T) {
	grouped := GroupPositions(makePositions(8), 0)
	assert.Len(t, grouped.TopPositions, DefaultTopN)
	assert.NotNil(t, grouped.Others)
}

func TestNormalizePnL(t *testing.T) {
	resp := &zerion.PnLResponse{Data: zerion.PnLData{
		Type: "wallet_pnl",
		ID:   "0xabc",
		Attributes: map[string]interface{}{
			"realized_gain":   50.0,
			"unrealized_gain": -20.0,
		},
	}}

	realized, unrealized := NormalizePnL(resp, 1000)
	assert.Equal(t, 5.0, realized)
	assert.Equal(t, -2.0, unrealized)
}

func TestNormalizePnLZeroTotal(t *testing.T) {
	resp := &zerion.PnLResponse{Data: zerion.PnLData{
		Type:       "wallet_pnl",
		ID:         "0xabc",
		Attributes: map[string]interface{}{"realized_gain": 50.0},
	}}

	realized, unrealized := NormalizePnL(resp, 0)
	assert.Zero(t, realized)
	assert.Zero(t, unrealized)
}

func TestNormalizePnLNonNumericGains(t *testing.T) {
	resp := &zerion.PnLResponse{Data: zerion.PnLData{
		Type: "wallet_pnl",
		ID:   "0xabc",
		Attributes: map[string]interface{}{
			"realized_gain":   "not-a-number",
			"unrealized_gain": nil,
		},
	}}

	realized, unrealized := NormalizePnL(resp, 1000)
	assert.Zero(t, realized)
	assert.Zero(t, unrealized)
}
