package types

import "time"

const (
	DefaultRPC          = "https://api.mainnet-beta.solana.com"
	DefaultCommitment   = "confirmed"
	DefaultTokenListURL = "https://cdn.jsdelivr.net/gh/solana-labs/token-list@main/src/tokens/solana.tokenlist.json"
	DefaultOutputDir    = "output"

	DefaultTokenCacheTTL    = 300 * time.Second
	DefaultPoolCacheTTL     = 300 * time.Second
	DefaultMetadataCacheTTL = 600 * time.Second

	DefaultRateLimitCount  = 10
	DefaultRateLimitWindow = time.Second
)

const (
	TokenListSourceList    = "list"
	TokenListSourceRaydium = "raydium"
	TokenListSourceNone    = "none"
)
