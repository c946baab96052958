package business

import "time"

// StatValue is one aggregate figure and where it came from.
type StatValue struct {
	Value     float64   `json:"value"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenStatistics are the token-level aggregates shown on the statistics page.
type TokenStatistics struct {
	TotalSupply       StatValue `json:"total_supply"`
	CirculatingSupply StatValue `json:"circulating_supply"`
	Holders           StatValue `json:"holders"`
	Stakers           StatValue `json:"stakers"`
	TotalStaked       StatValue `json:"total_staked"`
}

// TokenInfo describes the ERC-20 token as read from chain.
type TokenInfo struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"total_supply"`
	ChainID     int64  `json:"chain_id"`
}
