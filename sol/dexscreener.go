package sol

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/meme-bots/go-inspect/sol/common"
	"github.com/meme-bots/go-inspect/types"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	DexScreenerAPI = "https://api.dexscreener.com"

	// DexScreenerTTL bounds how long a resolved pair URL is reused.
	DexScreenerTTL = 5 * time.Minute
)

type (
	DexScreenerToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	}

	DexScreenerPair struct {
		ChainID     string           `json:"chainId"`
		DexID       string           `json:"dexId"`
		PairAddress string           `json:"pairAddress"`
		BaseToken   DexScreenerToken `json:"baseToken"`
		QuoteToken  DexScreenerToken `json:"quoteToken"`
		PriceNative string           `json:"priceNative"`
	}

	QueryDexScreenerResponse struct {
		Pairs []DexScreenerPair `json:"pairs"`
	}

	// InputResolver turns user input (an address or an explorer or DEX URL) into
	// an address. Only DexScreener pair URLs need a network round trip since
	// DexScreener lowercases pair addresses.
	InputResolver struct {
		baseURL    string
		httpClient *http.Client
		cached     *cache.Cache[[]byte]
		logger     *zap.Logger
	}
)

var (
	tokenInputPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([1-9A-HJ-NP-Za-km-z]{32,44})$`),
		regexp.MustCompile(`^https://birdeye\.so/token/([1-9A-HJ-NP-Za-km-z]{32,44})(\?.*)?$`),
		regexp.MustCompile(`^https://pump\.fun/(?:coin/)?([1-9A-HJ-NP-Za-km-z]{32,44})$`),
		regexp.MustCompile(`^https://solscan\.io/token/([1-9A-HJ-NP-Za-km-z]{32,44})(\?.*)?$`),
	}

	poolInputPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([1-9A-HJ-NP-Za-km-z]{32,44})$`),
		regexp.MustCompile(`^https://solscan\.io/account/([1-9A-HJ-NP-Za-km-z]{32,44})(\?.*)?$`),
	}

	// DexScreener URLs carry lowercased addresses, which need not be base58.
	dexScreenerPattern = regexp.MustCompile(`^https://dexscreener\.com/solana/([0-9A-Za-z]{32,44})(\?.*)?$`)
)

func NewInputResolver(baseURL string, cached *cache.Cache[[]byte], logger *zap.Logger) *InputResolver {
	if baseURL == "" {
		baseURL = DexScreenerAPI
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InputResolver{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		cached:     cached,
		logger:     logger,
	}
}

// TokenAddress extracts a mint from a bare address or a token page URL.
func TokenAddress(input string) (string, error) {
	return matchAddress(strings.TrimSpace(input), tokenInputPatterns)
}

// ResolvePoolAddress extracts a pool address from input. DexScreener pair
// URLs are looked up to recover the address's original case.
func (r *InputResolver) ResolvePoolAddress(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)

	if m := dexScreenerPattern.FindStringSubmatch(input); len(m) > 1 {
		if common.IsValidAddress(m[1]) && m[1] != strings.ToLower(m[1]) {
			return m[1], nil
		}
		pair, err := r.QueryPair(ctx, m[1])
		if err != nil {
			return "", err
		}
		return pair.PairAddress, nil
	}

	return matchAddress(input, poolInputPatterns)
}

// QueryPair finds the Solana pair DexScreener lists under id.
func (r *InputResolver) QueryPair(ctx context.Context, id string) (*DexScreenerPair, error) {
	key := "QueryDexScreener:" + strings.ToLower(id)

	if r.cached != nil {
		if data, err := r.cached.Get(ctx, key); err == nil {
			var pair DexScreenerPair
			if err := json.Unmarshal(data, &pair); err == nil {
				return &pair, nil
			}
		}
	}

	endpoint := fmt.Sprintf("%s/latest/dex/search/?q=%s", r.baseURL, url.QueryEscape(id))
	body, err := httpGet(ctx, r.httpClient, endpoint)
	if err != nil {
		return nil, fmt.Errorf("query dexscreener: %w", err)
	}

	var resp QueryDexScreenerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("query dexscreener: %w", err)
	}

	pair, ok := lo.Find(resp.Pairs, func(p DexScreenerPair) bool {
		return p.ChainID == "solana" && strings.EqualFold(p.PairAddress, id) && common.IsValidAddress(p.PairAddress)
	})
	if !ok {
		return nil, fmt.Errorf("%w: dexscreener pair %s", types.ErrNotFound, id)
	}

	if r.cached != nil {
		if data, err := json.Marshal(pair); err == nil {
			if err := r.cached.Set(ctx, key, data, store.WithExpiration(DexScreenerTTL), store.WithCost(int64(len(data)))); err != nil {
				r.logger.Debug("dexscreener pair not cached", zap.Error(err))
			}
		}
	}
	return &pair, nil
}

func matchAddress(input string, patterns []*regexp.Regexp) (string, error) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(input)
		if len(m) > 1 && common.IsValidAddress(m[1]) {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", types.ErrInvalidAddress, input)
}
