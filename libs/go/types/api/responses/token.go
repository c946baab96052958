package responses

// TokenResponse describes the OPUS token as read from chain
type TokenResponse struct {
	Object      string `json:"object"`
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"total_supply"`
	ChainID     int64  `json:"chain_id"`
	AddTokenURI string `json:"add_token_uri"`
}

// StatValueResponse is one aggregate and the source that produced it
type StatValueResponse struct {
	Value     float64 `json:"value"`
	Display   string  `json:"display"`
	Source    string  `json:"source"`
	UpdatedAt int64   `json:"updated_at"`
}

// StatisticsResponse holds the token statistics page figures
type StatisticsResponse struct {
	Object            string            `json:"object"`
	TotalSupply       StatValueResponse `json:"total_supply"`
	CirculatingSupply StatValueResponse `json:"circulating_supply"`
	Holders           StatValueResponse `json:"holders"`
	Stakers           StatValueResponse `json:"stakers"`
	TotalStaked       StatValueResponse `json:"total_staked"`
}
