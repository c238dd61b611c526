package entities

// Sentinel identity of the synthetic entry that aggregates all positions
// beyond the top-N cutoff.
const (
	OthersSymbol = "OTHERS"
	OthersName   = "Others"
)

// Position is a single holding within a wallet's portfolio, normalized to
// its share of the total portfolio value.
type Position struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Icon       string  `json:"icon"`
	Verified   bool    `json:"verified"`
}

// GroupedPositions is the display grouping of a ranked position list:
// the top-N positions plus an optional synthetic "Others" aggregate.
// Others is nil when the source list fits within the cutoff.
type GroupedPositions struct {
	TopPositions []Position `json:"top_positions"`
	Others       *Position  `json:"others,omitempty"`
}

// PortfolioData is the complete visualization model for one wallet,
// built fresh per fetch cycle and immutable once constructed.
type PortfolioData struct {
	Positions             []Position `json:"positions"`
	TopPositions          []Position `json:"top_positions"`
	Others                *Position  `json:"others,omitempty"`
	TotalValue            float64    `json:"total_value"`
	RealizedGainPercent   float64    `json:"realized_gain_percent"`
	UnrealizedGainPercent float64    `json:"unrealized_gain_percent"`
}

// ChartPositions returns the positions to render, in display order:
// the top positions followed by the "Others" aggregate when present.
func (p *PortfolioData) ChartPositions() []Position {
	if p.Others == nil {
		return p.TopPositions
	}
	out := make([]Position, 0, len(p.TopPositions)+1)
	out = append(out, p.TopPositions...)
	out = append(out, *p.Others)
	return out
}

// ChartSegment is one angular slice of the donut chart. Angles are in
// degrees; segments produced from one position list are contiguous and
// non-overlapping.
type ChartSegment struct {
	Position   Position `json:"position"`
	StartAngle float64  `json:"start_angle"`
	EndAngle   float64  `json:"end_angle"`
	Color      string   `json:"color"`
}

// CachedImage is a rendered vector document stored per wallet address.
type CachedImage struct {
	Address     string `json:"address"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}
