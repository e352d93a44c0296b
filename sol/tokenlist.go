package sol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	RaydiumApiV3 = "https://api-v3.raydium.io"

	TokenListTTL = 10 * time.Minute

	defaultHTTPTimeout = 30 * time.Second
)

type (
	// TokenListRegistry resolves mints against a downloaded token list. The
	// raw list is kept in a byte cache and its address index in memory.
	TokenListRegistry struct {
		url        string
		httpClient *http.Client
		cached     *cache.Cache[[]byte]
		index      *utils.TimedCache[map[string]types.TokenListEntry]
		logger     *zap.Logger
	}

	// RaydiumMintRegistry asks the Raydium API about one mint at a time.
	RaydiumMintRegistry struct {
		baseURL    string
		httpClient *http.Client
	}

	NoopRegistry struct{}

	MintInfo struct {
		ChainId    int         `json:"chainId"`
		Address    string      `json:"address"`
		ProgramId  string      `json:"programId"`
		LogoURI    string      `json:"logoURI"`
		Symbol     string      `json:"symbol"`
		Name       string      `json:"name"`
		Decimals   int         `json:"decimals"`
		Tags       []string    `json:"tags"`
		Extensions interface{} `json:"extensions"`
	}
)

var (
	_ types.TokenRegistry = (*TokenListRegistry)(nil)
	_ types.TokenRegistry = (*RaydiumMintRegistry)(nil)
	_ types.TokenRegistry = NoopRegistry{}
)

func NewTokenListRegistry(listURL string, cached *cache.Cache[[]byte], logger *zap.Logger) *TokenListRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenListRegistry{
		url:        listURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		cached:     cached,
		index:      utils.NewTimedCache[map[string]types.TokenListEntry](TokenListTTL),
		logger:     logger,
	}
}

func (r *TokenListRegistry) Lookup(ctx context.Context, mint string) (*types.TokenListEntry, error) {
	index, err := r.Index(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := index[mint]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &entry, nil
}

// Index returns the token list keyed by mint address. It is rebuilt at most
// once per TokenListTTL.
func (r *TokenListRegistry) Index(ctx context.Context) (map[string]types.TokenListEntry, error) {
	if index, ok := r.index.Get(r.url); ok {
		return index, nil
	}

	tokens, err := r.FetchTokenList(ctx)
	if err != nil {
		return nil, err
	}
	index := lo.KeyBy(tokens, func(t types.TokenListEntry) string {
		return t.Address
	})
	r.index.Set(r.url, index)
	return index, nil
}

// FetchTokenList returns the token list, from cache when possible.
func (r *TokenListRegistry) FetchTokenList(ctx context.Context) ([]types.TokenListEntry, error) {
	key := "TokenList:" + r.url

	if r.cached != nil {
		data, err := r.cached.Get(ctx, key)
		if err == nil {
			tokens, err := ParseTokenList(data)
			if err == nil {
				return tokens, nil
			}
			r.logger.Warn("cached token list unreadable", zap.Error(err))
		}
	}

	data, err := httpGet(ctx, r.httpClient, r.url)
	if err != nil {
		return nil, fmt.Errorf("fetch token list: %w", err)
	}
	tokens, err := ParseTokenList(data)
	if err != nil {
		return nil, fmt.Errorf("parse token list: %w", err)
	}

	if r.cached != nil {
		err = r.cached.Set(ctx, key, data,
			store.WithExpiration(TokenListTTL),
			store.WithCost(int64(len(data))),
		)
		if err != nil {
			r.logger.Debug("token list not cached", zap.Error(err))
		}
	}
	return tokens, nil
}

// ParseTokenList accepts both {"tokens": [...]} documents and bare arrays.
func ParseTokenList(data []byte) ([]types.TokenListEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tokens []types.TokenListEntry
		if err := json.Unmarshal(trimmed, &tokens); err != nil {
			return nil, err
		}
		return tokens, nil
	}

	var list struct {
		Name   string                 `json:"name"`
		Tokens []types.TokenListEntry `json:"tokens"`
	}
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, err
	}
	return list.Tokens, nil
}

func NewRaydiumMintRegistry(baseURL string) *RaydiumMintRegistry {
	if baseURL == "" {
		baseURL = RaydiumApiV3
	}
	return &RaydiumMintRegistry{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (r *RaydiumMintRegistry) Lookup(ctx context.Context, mint string) (*types.TokenListEntry, error) {
	info, err := r.GetTokenMintInfo(ctx, mint)
	if err != nil {
		return nil, err
	}
	return &types.TokenListEntry{
		Address:  info.Address,
		Symbol:   info.Symbol,
		Name:     info.Name,
		Decimals: uint8(info.Decimals),
		LogoURI:  info.LogoURI,
		Tags:     info.Tags,
	}, nil
}

func (r *RaydiumMintRegistry) GetTokenMintInfo(ctx context.Context, mint string) (*MintInfo, error) {
	endpoint := fmt.Sprintf("%s/mint/ids?mints=%s", r.baseURL, url.QueryEscape(mint))

	body, err := httpGet(ctx, r.httpClient, endpoint)
	if err != nil {
		return nil, err
	}

	var response struct {
		Id      string      `json:"id"`
		Success bool        `json:"success"`
		Data    []*MintInfo `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	if len(response.Data) == 0 || response.Data[0] == nil {
		return nil, types.ErrNotFound
	}
	return response.Data[0], nil
}

func (NoopRegistry) Lookup(context.Context, string) (*types.TokenListEntry, error) {
	return nil, types.ErrNotFound
}

func httpGet(ctx context.Context, client *http.Client, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", endpoint, resp.StatusCode)
	}
	return body, nil
}
