package business

import "time"

// BalanceSnapshot holds the connected account's balances as decimal token
// strings. It is replaced wholesale on refresh.
type BalanceSnapshot struct {
	Wallet    string    `json:"wallet"`
	Staked    string    `json:"staked"`
	Locked    string    `json:"locked"`
	Total     string    `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ZeroBalances is the snapshot of a freshly connected session.
func ZeroBalances() BalanceSnapshot {
	return BalanceSnapshot{Wallet: "0", Staked: "0", Locked: "0", Total: "0"}
}
