package responses

// LockResponse is a lock with amounts rendered both as base units and as
// decimal tokens
type LockResponse struct {
	ID         string `json:"id,omitempty"`
	Amount     string `json:"amount"`
	AmountWei  string `json:"amount_wei"`
	StartTime  uint64 `json:"start_time,omitempty"`
	EndTime    uint64 `json:"end_time,omitempty"`
	LockPeriod uint64 `json:"lock_period,omitempty"`
	RewardDebt string `json:"reward_debt,omitempty"`
	Source     string `json:"source"`
}

// ProbeAttemptResponse is one waterfall candidate outcome
type ProbeAttemptResponse struct {
	Method  string `json:"method"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// LockProbeResponse is the result of the lock accessor waterfall
type LockProbeResponse struct {
	Object      string                 `json:"object"`
	Account     string                 `json:"account"`
	Method      string                 `json:"method"`
	Locks       []LockResponse         `json:"locks"`
	TotalLocked string                 `json:"total_locked"`
	Raw         string                 `json:"raw,omitempty"`
	Attempts    []ProbeAttemptResponse `json:"attempts"`
}

// LockScanResponse is the result of a mapping index scan
type LockScanResponse struct {
	Object      string         `json:"object"`
	Account     string         `json:"account"`
	Locks       []LockResponse `json:"locks"`
	TotalLocked string         `json:"total_locked"`
	Reads       int            `json:"reads"`
	Errors      int            `json:"errors"`
	LastIndex   uint64         `json:"last_index"`
	StoppedBy   string         `json:"stopped_by"`
	SessionID   string         `json:"session_id,omitempty"`
}

// IndexedLocksResponse is the lock set rebuilt from staking events
type IndexedLocksResponse struct {
	Object      string         `json:"object"`
	Account     string         `json:"account"`
	FromBlock   uint64         `json:"from_block"`
	NextBlock   uint64         `json:"next_block"`
	Locks       []LockResponse `json:"locks"`
	TotalLocked string         `json:"total_locked"`
}

// CapabilitiesResponse lists the lock accessors present in the staking code
type CapabilitiesResponse struct {
	Object     string          `json:"object"`
	Contract   string          `json:"contract"`
	CodeSize   int             `json:"code_size"`
	Present    map[string]bool `json:"present"`
	Preferred  string          `json:"preferred,omitempty"`
	Proxy      bool            `json:"proxy"`
	DetectedAt int64           `json:"detected_at"`
}
