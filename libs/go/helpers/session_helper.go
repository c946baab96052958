package helpers

import (
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

// ToSessionResponse converts a session snapshot to API response
func ToSessionResponse(s business.SessionSnapshot) responses.SessionResponse {
	var connectedAt, updatedAt int64
	if !s.ConnectedAt.IsZero() {
		connectedAt = s.ConnectedAt.Unix()
	}
	if !s.Balances.UpdatedAt.IsZero() {
		updatedAt = s.Balances.UpdatedAt.Unix()
	}
	summary := s.Summary
	if summary == nil {
		summary = []string{}
	}
	return responses.SessionResponse{
		ID:          s.ID,
		Object:      "session",
		Account:     s.Account,
		Provider:    s.Provider,
		Status:      s.Status,
		ConnectedAt: connectedAt,
		Balances: responses.BalancesResponse{
			Wallet:    s.Balances.Wallet,
			Staked:    s.Balances.Staked,
			Locked:    s.Balances.Locked,
			Total:     s.Balances.Total,
			UpdatedAt: updatedAt,
		},
		Summary:    summary,
		LockSource: s.LockSource,
		Locks:      ToLockResponses(s.Locks),
	}
}
