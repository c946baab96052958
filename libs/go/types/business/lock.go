package business

import (
	"math/big"
	"time"
)

// Lock is a time-bound staked position as reported by the staking contract.
// The shape is reconstructed from whichever accessor answered, so fields the
// accessor did not expose are left at their zero value.
type Lock struct {
	ID         *big.Int `json:"id"`
	Amount     *big.Int `json:"amount"`
	StartTime  uint64   `json:"start_time"`
	EndTime    uint64   `json:"end_time"`
	RewardDebt *big.Int `json:"reward_debt,omitempty"`
	LockPeriod uint64   `json:"lock_period,omitempty"`
	// Source names the accessor or scan that produced the record.
	Source string `json:"source"`
}

// IsEmpty reports whether the lock carries no stake.
func (l Lock) IsEmpty() bool {
	return l.Amount == nil || l.Amount.Sign() == 0
}

// SumLockAmounts totals the amounts of the given locks.
func SumLockAmounts(locks []Lock) *big.Int {
	total := new(big.Int)
	for _, l := range locks {
		if l.Amount != nil {
			total.Add(total, l.Amount)
		}
	}
	return total
}

// ProbeAttempt records the outcome of one candidate in a probing waterfall.
type ProbeAttempt struct {
	Method  string `json:"method"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// Probe outcomes.
const (
	ProbeOutcomeFound       = "found"
	ProbeOutcomeEmpty       = "empty"
	ProbeOutcomeUnavailable = "unavailable"
	ProbeOutcomeSkipped     = "skipped"
)

// ProbeResult is the accepted answer of a lock probing waterfall. Raw is set
// only when the last-resort raw eth_call answered; it is left undecoded.
type ProbeResult struct {
	Method   string         `json:"method"`
	Locks    []Lock         `json:"locks"`
	Raw      []byte         `json:"raw,omitempty"`
	Attempts []ProbeAttempt `json:"attempts"`
}

// Scan stop reasons.
const (
	ScanStoppedCeiling   = "ceiling"
	ScanStoppedEmptyRun  = "empty_run"
	ScanStoppedCancelled = "cancelled"
)

// ScanResult is the outcome of a sequential mapping-index scan.
type ScanResult struct {
	Locks     []Lock `json:"locks"`
	Reads     int    `json:"reads"`
	Errors    int    `json:"errors"`
	LastIndex uint64 `json:"last_index"`
	StoppedBy string `json:"stopped_by"`
}

// ScanConfig bounds a mapping-index scan: indices StartIndex..Ceiling-1 are
// read until EmptyRunLimit consecutive empty or failing reads are seen.
type ScanConfig struct {
	StartIndex    uint64 `json:"start_index"`
	Ceiling       uint64 `json:"ceiling"`
	EmptyRunLimit int    `json:"empty_run_limit"`
}

// Capabilities lists which lock accessors the deployed staking bytecode
// dispatches on.
type Capabilities struct {
	Contract  string          `json:"contract"`
	CodeSize  int             `json:"code_size"`
	Present   map[string]bool `json:"present"`
	Preferred string          `json:"preferred,omitempty"`
	// Proxy is set when the code looks like a delegating proxy, in which
	// case absent selectors prove nothing.
	Proxy      bool      `json:"proxy"`
	DetectedAt time.Time `json:"detected_at"`
}

// IndexedLocks is a per-account lock set rebuilt from staking events.
// NextBlock is the first block not yet indexed.
type IndexedLocks struct {
	Account   string `json:"account"`
	FromBlock uint64 `json:"from_block"`
	NextBlock uint64 `json:"next_block"`
	Locks     []Lock `json:"locks"`
}
