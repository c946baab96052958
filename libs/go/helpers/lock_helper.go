package helpers

import (
	"encoding/hex"

	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

// ToLockResponse converts a lock to API response
func ToLockResponse(l business.Lock) responses.LockResponse {
	resp := responses.LockResponse{
		Amount:     FormatWei(l.Amount),
		AmountWei:  "0",
		StartTime:  l.StartTime,
		EndTime:    l.EndTime,
		LockPeriod: l.LockPeriod,
		Source:     l.Source,
	}
	if l.ID != nil {
		resp.ID = l.ID.String()
	}
	if l.Amount != nil {
		resp.AmountWei = l.Amount.String()
	}
	if l.RewardDebt != nil {
		resp.RewardDebt = l.RewardDebt.String()
	}
	return resp
}

// ToLockResponses converts locks to API responses, never returning nil.
func ToLockResponses(locks []business.Lock) []responses.LockResponse {
	out := make([]responses.LockResponse, 0, len(locks))
	for _, l := range locks {
		out = append(out, ToLockResponse(l))
	}
	return out
}

// ToLockProbeResponse converts a probe result to API response
func ToLockProbeResponse(account string, r business.ProbeResult) responses.LockProbeResponse {
	attempts := make([]responses.ProbeAttemptResponse, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		attempts = append(attempts, responses.ProbeAttemptResponse{Method: a.Method, Outcome: a.Outcome, Error: a.Error})
	}
	resp := responses.LockProbeResponse{
		Object:      "lock_probe",
		Account:     account,
		Method:      r.Method,
		Locks:       ToLockResponses(r.Locks),
		TotalLocked: FormatWei(business.SumLockAmounts(r.Locks)),
		Attempts:    attempts,
	}
	if len(r.Raw) > 0 {
		resp.Raw = "0x" + hex.EncodeToString(r.Raw)
	}
	return resp
}

// ToLockScanResponse converts a scan result to API response
func ToLockScanResponse(account string, r business.ScanResult) responses.LockScanResponse {
	return responses.LockScanResponse{
		Object:      "lock_scan",
		Account:     account,
		Locks:       ToLockResponses(r.Locks),
		TotalLocked: FormatWei(business.SumLockAmounts(r.Locks)),
		Reads:       r.Reads,
		Errors:      r.Errors,
		LastIndex:   r.LastIndex,
		StoppedBy:   r.StoppedBy,
	}
}

// ToIndexedLocksResponse converts an event-indexed lock set to API response
func ToIndexedLocksResponse(s business.IndexedLocks) responses.IndexedLocksResponse {
	return responses.IndexedLocksResponse{
		Object:      "indexed_locks",
		Account:     s.Account,
		FromBlock:   s.FromBlock,
		NextBlock:   s.NextBlock,
		Locks:       ToLockResponses(s.Locks),
		TotalLocked: FormatWei(business.SumLockAmounts(s.Locks)),
	}
}

// ToCapabilitiesResponse converts detected capabilities to API response
func ToCapabilitiesResponse(c business.Capabilities) responses.CapabilitiesResponse {
	return responses.CapabilitiesResponse{
		Object:     "capabilities",
		Contract:   c.Contract,
		CodeSize:   c.CodeSize,
		Present:    c.Present,
		Preferred:  c.Preferred,
		Proxy:      c.Proxy,
		DetectedAt: c.DetectedAt.Unix(),
	}
}
