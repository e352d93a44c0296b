package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceRatio_JSON(t *testing.T) {
	data, err := json.Marshal(PriceRatio{BaseToQuote: 2, QuoteToBase: 0.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"baseToQuote":2,"quoteToBase":0.5}`, string(data))

	data, err = json.Marshal(PriceRatio{BaseToQuote: math.Inf(1), QuoteToBase: 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"baseToQuote":"+Inf","quoteToBase":0}`, string(data))

	var p PriceRatio
	require.NoError(t, json.Unmarshal([]byte(`{"baseToQuote":"NaN","quoteToBase":"-Inf"}`), &p))
	assert.True(t, math.IsNaN(p.BaseToQuote))
	assert.True(t, math.IsInf(p.QuoteToBase, -1))
}

func TestPoolInfo_JSON(t *testing.T) {
	supply := "18446744073709551615"
	info := PoolInfo{
		BaseToken:  TokenInfo{Address: "base", Symbol: "SOL", Decimals: 9, Supply: &supply},
		QuoteToken: TokenInfo{Symbol: "USDC", Decimals: 6},
		OpenTime:   "0",
		LpSupply:   "18446744073709551615",
	}

	data, err := json.Marshal(info)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "18446744073709551615", raw["lpSupply"], "u64 values travel as strings")
	assert.NotContains(t, raw, "liquidity")
	assert.NotContains(t, raw, "price")
	assert.Equal(t, "18446744073709551615", raw["baseToken"].(map[string]interface{})["supply"])
	assert.NotContains(t, raw["quoteToken"], "address")

	info.Price = &PriceRatio{BaseToQuote: 1, QuoteToBase: 1}
	info.Liquidity = &PoolLiquidity{BaseTokenAmount: "1", QuoteTokenAmount: "1"}
	data, err = json.Marshal(info)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":{"baseToQuote":1,"quoteToBase":1}`)
	assert.Contains(t, string(data), `"liquidity":{`)
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{RPC: "http://localhost:8899", RateLimitCount: 3}.WithDefaults()
	assert.Equal(t, "http://localhost:8899", cfg.RPC)
	assert.Equal(t, 3, cfg.RateLimitCount)
	assert.Equal(t, DefaultRateLimitWindow, cfg.RateLimitWindow)
	assert.Equal(t, DefaultTokenCacheTTL, cfg.TokenCacheTTL)
	assert.Equal(t, DefaultMetadataCacheTTL, cfg.MetadataCacheTTL)
	assert.Equal(t, DefaultPoolCacheTTL, cfg.PoolCacheTTL)
	assert.Equal(t, TokenListSourceList, cfg.TokenList)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
}
