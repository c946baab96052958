package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"

	// Token
	TokenSymbol   = "OPUS"
	TokenName     = "Opus"
	TokenDecimals = 18

	// PulseChain mainnet
	DefaultChainID = 369

	// UserAgent identifies outbound requests to upstream APIs
	UserAgent = "opus-api"

	// Cache backends
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	// Scan presets
	ScanPresetQuick = "quick"
	ScanPresetDeep  = "deep"
)
