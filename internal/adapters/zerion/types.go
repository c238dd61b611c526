package zerion

// Links holds the JSON:API self link of a response
type Links struct {
	Self string `json:"self"`
}

// Quantity represents a token quantity in its various encodings
type Quantity struct {
	Int      string  `json:"int"`
	Decimals int     `json:"decimals"`
	Float    float64 `json:"float"`
	Numeric  string  `json:"numeric"`
}

// Icon holds a token icon URL
type Icon struct {
	URL string `json:"url"`
}

// Implementation describes a token deployment on one chain
type Implementation struct {
	ChainID  string  `json:"chain_id"`
	Address  *string `json:"address"`
	Decimals int     `json:"decimals"`
}

// FungibleFlags holds token-level flags
type FungibleFlags struct {
	Verified bool `json:"verified"`
}

// FungibleInfo describes the token backing a position
type FungibleInfo struct {
	Name            string           `json:"name"`
	Symbol          string           `json:"symbol"`
	Icon            *Icon            `json:"icon"`
	Flags           FungibleFlags    `json:"flags"`
	Implementations []Implementation `json:"implementations"`
}

// IconURL returns the token icon URL, or "" when the token has no icon
func (f FungibleInfo) IconURL() string {
	if f.Icon == nil {
		return ""
	}
	return f.Icon.URL
}

// PositionFlags holds position-level display flags
type PositionFlags struct {
	Displayable bool `json:"displayable"`
	IsTrash     bool `json:"is_trash"`
}

// PositionAttributes holds the attributes of a wallet position.
// Value is nil when the upstream has no price for the token.
type PositionAttributes struct {
	Parent         *string       `json:"parent"`
	Protocol       *string       `json:"protocol"`
	Name           string        `json:"name"`
	PositionType   string        `json:"position_type"`
	Quantity       Quantity      `json:"quantity"`
	Value          *float64      `json:"value"`
	Price          float64       `json:"price"`
	FungibleInfo   FungibleInfo  `json:"fungible_info"`
	Flags          PositionFlags `json:"flags"`
	UpdatedAt      string        `json:"updated_at"`
	UpdatedAtBlock int64         `json:"updated_at_block"`
}

// Position is one JSON:API position resource
type Position struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Attributes PositionAttributes `json:"attributes"`
}

// PositionsResponse is the response of the wallet positions endpoint
type PositionsResponse struct {
	Links Links      `json:"links"`
	Data  []Position `json:"data"`
}

// DistributionByType breaks total value down by position type
type DistributionByType struct {
	Wallet    float64 `json:"wallet"`
	Deposited float64 `json:"deposited"`
	Borrowed  float64 `json:"borrowed"`
	Locked    float64 `json:"locked"`
	Staked    float64 `json:"staked"`
}

// PortfolioTotal holds the aggregate position value of a wallet
type PortfolioTotal struct {
	Positions float64 `json:"positions"`
}

// PortfolioChanges holds 1-day value change figures
type PortfolioChanges struct {
	Absolute1D float64 `json:"absolute_1d"`
	Percent1D  float64 `json:"percent_1d"`
}

// PortfolioAttributes holds the attributes of the portfolio resource
type PortfolioAttributes struct {
	PositionsDistributionByType  DistributionByType `json:"positions_distribution_by_type"`
	PositionsDistributionByChain map[string]float64 `json:"positions_distribution_by_chain"`
	Total                        PortfolioTotal     `json:"total"`
	Changes                      PortfolioChanges   `json:"changes"`
}

// PortfolioData is the JSON:API portfolio resource
type PortfolioData struct {
	Type       string              `json:"type"`
	ID         string              `json:"id"`
	Attributes PortfolioAttributes `json:"attributes"`
}

// PortfolioResponse is the response of the wallet portfolio endpoint
type PortfolioResponse struct {
	Links Links         `json:"links"`
	Data  PortfolioData `json:"data"`
}

// PnLData is the JSON:API PnL resource. The upstream attribute set varies
// between wallet kinds, so attributes stay untyped and are read through
// NumberAttr.
type PnLData struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id"`
	Attributes map[string]interface{} `json:"attributes"`
}

// NumberAttr returns the named attribute as a float64, or 0 when the
// attribute is absent or not numeric.
func (d PnLData) NumberAttr(key string) float64 {
	v, ok := d.Attributes[key]
	if !ok {
		return 0
	}
	n, ok := v.(float64)
	if !ok {
		return 0
	}
	return n
}

// PnLResponse is the response of the wallet PnL endpoint
type PnLResponse struct {
	Links Links   `json:"links"`
	Data  PnLData `json:"data"`
}
