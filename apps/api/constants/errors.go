package constants

// Error messages used throughout the API handlers
const (
	// Not found errors
	SessionNotFound = "session not found"
	PageNotFound    = "page not found"
	NoLockData      = "no data found"

	// Client errors
	InvalidAddress      = "invalid address"
	InvalidSessionID    = "invalid session ID format"
	InvalidRequestBody  = "invalid request body"
	InvalidScanConfig   = "invalid scan config"
	NoWallet            = "no wallet"
	UserRejected        = "user rejected request"
	RPCUnavailable      = "RPC endpoint unreachable"
	RequestTimedOut     = "request timed out"
	InternalServerError = "internal server error"
	FeatureUnavailable  = "not configured"

	// Wallet capability errors
	WatchAssetUnsupported = "wallet cannot watch assets"
)
