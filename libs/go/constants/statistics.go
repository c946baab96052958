package constants

// Fallback token statistics, in whole OPUS units or counts. Served when the
// explorer, the subgraph and the on-chain estimate all fail.
const (
	FallbackTotalSupply       = 1_000_000_000
	FallbackCirculatingSupply = 750_000_000
	FallbackHolders           = 12_480
	FallbackStakers           = 3_370
	FallbackTotalStaked       = 250_000_000
)

// Statistic sources, in waterfall order.
const (
	StatSourceAPI      = "api"
	StatSourceSubgraph = "subgraph"
	StatSourceEstimate = "estimate"
	StatSourceFallback = "fallback"
)

// Statistic names.
const (
	StatTotalSupply       = "total_supply"
	StatCirculatingSupply = "circulating_supply"
	StatHolders           = "holders"
	StatStakers           = "stakers"
	StatTotalStaked       = "total_staked"
)
