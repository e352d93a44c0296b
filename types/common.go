package types

import (
	"encoding/json"
	"math"
	"strconv"
)

type (
	TokenMetadata struct {
		Name        string `json:"name"`
		Symbol      string `json:"symbol"`
		URI         string `json:"uri"`
		Description string `json:"description"`
	}

	TokenInfo struct {
		Address         string         `json:"address,omitempty"`
		Symbol          string         `json:"symbol"`
		Decimals        uint8          `json:"decimals"`
		Metadata        *TokenMetadata `json:"metadata,omitempty"`
		Supply          *string        `json:"supply,omitempty"`
		MintAuthority   *string        `json:"mintAuthority,omitempty"`
		FreezeAuthority *string        `json:"freezeAuthority,omitempty"`
		LogoURI         string         `json:"logoURI,omitempty"`
	}

	PoolLiquidity struct {
		BaseTokenAmount    string `json:"baseTokenAmount"`
		QuoteTokenAmount   string `json:"quoteTokenAmount"`
		BaseTokenDecimals  uint8  `json:"baseTokenDecimals"`
		QuoteTokenDecimals uint8  `json:"quoteTokenDecimals"`
	}

	// PriceRatio may hold NaN or ±Inf when a pool leg is empty.
	PriceRatio struct {
		BaseToQuote float64 `json:"baseToQuote"`
		QuoteToBase float64 `json:"quoteToBase"`
	}

	PoolInfo struct {
		BaseToken         TokenInfo      `json:"baseToken"`
		QuoteToken        TokenInfo      `json:"quoteToken"`
		BaseTokenAddress  string         `json:"baseTokenAddress"`
		QuoteTokenAddress string         `json:"quoteTokenAddress"`
		LpTokenAddress    string         `json:"lpTokenAddress"`
		BaseVault         string         `json:"baseVault"`
		QuoteVault        string         `json:"quoteVault"`
		Authority         string         `json:"authority"`
		Nonce             uint8          `json:"nonce"`
		OpenTime          string         `json:"openTime"`
		LpSupply          string         `json:"lpSupply"`
		ContractABI       string         `json:"contractABI"`
		Liquidity         *PoolLiquidity `json:"liquidity,omitempty"`
		Price             *PriceRatio    `json:"price,omitempty"`
	}

	PoolTokenPair struct {
		BaseToken  TokenInfo `json:"baseToken"`
		QuoteToken TokenInfo `json:"quoteToken"`
	}

	ExtendedInfoOptions struct {
		WithLiquidity bool
		WithPrice     bool
	}

	TokenListEntry struct {
		Address  string   `json:"address"`
		Symbol   string   `json:"symbol"`
		Name     string   `json:"name"`
		Decimals uint8    `json:"decimals"`
		LogoURI  string   `json:"logoURI,omitempty"`
		Tags     []string `json:"tags,omitempty"`
	}
)

func (p PriceRatio) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		BaseToQuote json.RawMessage `json:"baseToQuote"`
		QuoteToBase json.RawMessage `json:"quoteToBase"`
	}{
		BaseToQuote: marshalFloat(p.BaseToQuote),
		QuoteToBase: marshalFloat(p.QuoteToBase),
	})
}

func (p *PriceRatio) UnmarshalJSON(data []byte) error {
	var raw struct {
		BaseToQuote json.RawMessage `json:"baseToQuote"`
		QuoteToBase json.RawMessage `json:"quoteToBase"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var err error
	if p.BaseToQuote, err = unmarshalFloat(raw.BaseToQuote); err != nil {
		return err
	}
	p.QuoteToBase, err = unmarshalFloat(raw.QuoteToBase)
	return err
}

// encoding/json refuses non-finite floats, so they travel as strings.
func marshalFloat(f float64) json.RawMessage {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.RawMessage(strconv.Quote(strconv.FormatFloat(f, 'g', -1, 64)))
	}
	return json.RawMessage(strconv.FormatFloat(f, 'g', -1, 64))
}

func unmarshalFloat(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return 0, err
		}
		return strconv.ParseFloat(s, 64)
	}
	return strconv.ParseFloat(string(raw), 64)
}
