package sol

import (
	"context"
	"fmt"
	"regexp"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/meme-bots/go-inspect/sol/common"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Budget for cached HTTP payloads; the canonical token list is a few MB.
const httpCacheCost = 64 << 20

var addressPattern = regexp.MustCompile("^[1-9A-HJ-NP-Za-km-z]{32,44}$")

type Solana struct {
	cfg       *types.Config
	client    *rpc.Client
	limiter   *utils.RateLimiter
	transport types.Transport
	registry  types.TokenRegistry
	inputs    *InputResolver
	tokens    *TokenResolver
	pools     *PoolResolver
	metrics   *Metrics
	logger    *zap.Logger
}

var _ types.Inspector = (*Solana)(nil)

// NewSolana wires one RPC client, one rate limiter and the resolvers that
// share them. reg may be nil when metrics are not exported.
func NewSolana(
	cfg *types.Config,
	logger *zap.Logger,
	reg prometheus.Registerer,
) (*Solana, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := cfg.WithDefaults()

	cached, err := utils.NewCache(httpCacheCost)
	if err != nil {
		return nil, err
	}
	registry, err := newRegistry(&c, cached, logger)
	if err != nil {
		return nil, err
	}

	metrics := NewMetrics(reg)
	client := rpc.New(c.RPC)
	limiter := utils.NewRateLimiter(c.RateLimitCount, c.RateLimitWindow)
	transport := NewRPCTransport(client, limiter, rpc.CommitmentType(c.Commitment), metrics, logger.Named("rpc"))

	inputs := NewInputResolver(DexScreenerAPI, cached, logger.Named("input"))
	return newSolana(&c, client, limiter, transport, registry, inputs, metrics, logger), nil
}

func newSolana(
	cfg *types.Config,
	client *rpc.Client,
	limiter *utils.RateLimiter,
	transport types.Transport,
	registry types.TokenRegistry,
	inputs *InputResolver,
	metrics *Metrics,
	logger *zap.Logger,
) *Solana {
	tokens := NewTokenResolver(transport, registry, logger.Named("token"),
		WithTokenCache(utils.NewTimedCache[*types.TokenInfo](cfg.TokenCacheTTL)),
		WithMetadataCache(utils.NewTimedCache[*types.TokenMetadata](cfg.MetadataCacheTTL)),
		WithTokenMetrics(metrics),
	)
	pools := NewPoolResolver(transport, tokens, logger.Named("pool"),
		WithPoolCache(utils.NewTimedCache[*types.PoolInfo](cfg.PoolCacheTTL)),
		WithPoolMetrics(metrics),
	)
	return &Solana{
		cfg:       cfg,
		client:    client,
		limiter:   limiter,
		transport: transport,
		registry:  registry,
		tokens:    tokens,
		pools:     pools,
		inputs:    inputs,
		metrics:   metrics,
		logger:    logger,
	}
}

func newRegistry(cfg *types.Config, cached *cache.Cache[[]byte], logger *zap.Logger) (types.TokenRegistry, error) {
	switch cfg.TokenList {
	case types.TokenListSourceList:
		return NewTokenListRegistry(cfg.TokenListURL, cached, logger.Named("tokenlist")), nil
	case types.TokenListSourceRaydium:
		return NewRaydiumMintRegistry(RaydiumApiV3), nil
	case types.TokenListSourceNone:
		return NoopRegistry{}, nil
	}
	return nil, fmt.Errorf("unknown token list source %q", cfg.TokenList)
}

func (s *Solana) Close() error {
	s.tokens.ClearCache()
	s.pools.ClearCache()
	return nil
}

func (s *Solana) Metrics() *Metrics {
	return s.metrics
}

func (s *Solana) GetTokenInfo(ctx context.Context, address string) (*types.TokenInfo, error) {
	return s.tokens.GetTokenInfo(ctx, address)
}

func (s *Solana) GetTokenMetadata(ctx context.Context, address string) (*types.TokenMetadata, error) {
	return s.tokens.GetTokenMetadata(ctx, address)
}

func (s *Solana) GetPoolInfo(ctx context.Context, address string) (*types.PoolInfo, error) {
	return s.pools.GetPoolInfo(ctx, address)
}

func (s *Solana) GetPoolTokenPair(ctx context.Context, address string) (*types.PoolTokenPair, error) {
	return s.pools.GetPoolTokenPair(ctx, address)
}

func (s *Solana) GetPoolLiquidity(ctx context.Context, address string) (*types.PoolLiquidity, error) {
	return s.pools.GetPoolLiquidity(ctx, address)
}

func (s *Solana) GetPriceRatio(ctx context.Context, address string) (*types.PriceRatio, error) {
	return s.pools.GetPriceRatio(ctx, address)
}

func (s *Solana) GetPoolWithExtendedInfo(
	ctx context.Context,
	address string,
	opts types.ExtendedInfoOptions,
) (*types.PoolInfo, error) {
	return s.pools.GetPoolWithExtendedInfo(ctx, address, opts)
}

func (s *Solana) GetContractABI() string {
	return s.pools.GetContractABI()
}

func (s *Solana) CheckAddress(text string) bool {
	if !addressPattern.MatchString(text) {
		return false
	}
	return common.IsValidAddress(text)
}

func (s *Solana) ResolveTokenAddress(input string) (string, error) {
	return TokenAddress(input)
}

func (s *Solana) ResolvePoolAddress(ctx context.Context, input string) (string, error) {
	return s.inputs.ResolvePoolAddress(ctx, input)
}

func (s *Solana) DeriveMetadataAddress(mint string) (string, uint8, error) {
	pk, err := common.ParseAddress(mint)
	if err != nil {
		return "", 0, err
	}
	address, bump, err := common.DeriveMetadataAddress(pk)
	if err != nil {
		return "", 0, err
	}
	return address.String(), bump, nil
}
