package requests

// ScanLocksRequest runs the lock index scanner for an address. Preset
// ("quick" or "deep") supplies the bounds; explicit Ceiling and
// EmptyRunLimit override it. With SessionID set, the scan result becomes
// that session's lock source.
type ScanLocksRequest struct {
	Address       string `json:"address" binding:"required"`
	Preset        string `json:"preset,omitempty"`
	StartIndex    uint64 `json:"start_index,omitempty"`
	Ceiling       uint64 `json:"ceiling,omitempty"`
	EmptyRunLimit int    `json:"empty_run_limit,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
}
