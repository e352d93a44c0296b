package types

import "time"

type (
	Config struct {
		RPC          string `yaml:"rpc"`
		Commitment   string `yaml:"commitment"`
		TokenList    string `yaml:"token_list"`     // list, raydium or none
		TokenListURL string `yaml:"token_list_url"` // list source only
		OutputDir    string `yaml:"output_dir"`

		TokenCacheTTL    time.Duration `yaml:"token_cache_ttl"`
		MetadataCacheTTL time.Duration `yaml:"metadata_cache_ttl"`
		PoolCacheTTL     time.Duration `yaml:"pool_cache_ttl"`

		RateLimitCount  int           `yaml:"rate_limit_count"`
		RateLimitWindow time.Duration `yaml:"rate_limit_window"`
	}
)

// WithDefaults returns a copy of c with every zero field set to its default.
func (c Config) WithDefaults() Config {
	if c.RPC == "" {
		c.RPC = DefaultRPC
	}
	if c.Commitment == "" {
		c.Commitment = DefaultCommitment
	}
	if c.TokenList == "" {
		c.TokenList = TokenListSourceList
	}
	if c.TokenListURL == "" {
		c.TokenListURL = DefaultTokenListURL
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.TokenCacheTTL <= 0 {
		c.TokenCacheTTL = DefaultTokenCacheTTL
	}
	if c.MetadataCacheTTL <= 0 {
		c.MetadataCacheTTL = DefaultMetadataCacheTTL
	}
	if c.PoolCacheTTL <= 0 {
		c.PoolCacheTTL = DefaultPoolCacheTTL
	}
	if c.RateLimitCount <= 0 {
		c.RateLimitCount = DefaultRateLimitCount
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = DefaultRateLimitWindow
	}
	return c
}
