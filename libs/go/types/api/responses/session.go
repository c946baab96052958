package responses

// BalancesResponse holds decimal token balances
type BalancesResponse struct {
	Wallet    string `json:"wallet"`
	Staked    string `json:"staked"`
	Locked    string `json:"locked"`
	Total     string `json:"total"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

// SessionResponse is a wallet session with its current balances
type SessionResponse struct {
	ID          string           `json:"id"`
	Object      string           `json:"object"`
	Account     string           `json:"account"`
	Provider    string           `json:"provider"`
	Status      string           `json:"status"`
	ConnectedAt int64            `json:"connected_at"`
	Balances    BalancesResponse `json:"balances"`
	Summary     []string         `json:"summary"`
	LockSource  string           `json:"lock_source"`
	Locks       []LockResponse   `json:"locks"`
}
