package business

import "time"

// Session statuses.
const (
	SessionStatusConnected    = "connected"
	SessionStatusDisconnected = "disconnected"
)

// SessionSnapshot is a point-in-time view of a wallet session.
type SessionSnapshot struct {
	ID          string          `json:"id"`
	Account     string          `json:"account"`
	Provider    string          `json:"provider"`
	Status      string          `json:"status"`
	ConnectedAt time.Time       `json:"connected_at"`
	Balances    BalanceSnapshot `json:"balances"`
	Summary     []string        `json:"summary"`
	LockSource  string          `json:"lock_source"`
	Locks       []Lock          `json:"locks"`
}
