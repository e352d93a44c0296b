package sol

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/meme-bots/go-inspect/sol/common"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
	"go.uber.org/zap"
)

const (
	DefaultTokenDecimals    = 9
	DefaultTokenDescription = "Token information unavailable"
)

type (
	// TokenResolver turns a mint address into TokenInfo, trying the cache,
	// the token registry and the chain in that order.
	TokenResolver struct {
		transport types.Transport
		registry  types.TokenRegistry
		tokens    *utils.TimedCache[*types.TokenInfo]
		metadata  *utils.TimedCache[*types.TokenMetadata]
		metrics   *Metrics
		logger    *zap.Logger
	}

	TokenResolverOption func(*TokenResolver)
)

func WithTokenCache(c *utils.TimedCache[*types.TokenInfo]) TokenResolverOption {
	return func(r *TokenResolver) { r.tokens = c }
}

func WithMetadataCache(c *utils.TimedCache[*types.TokenMetadata]) TokenResolverOption {
	return func(r *TokenResolver) { r.metadata = c }
}

func WithTokenMetrics(m *Metrics) TokenResolverOption {
	return func(r *TokenResolver) { r.metrics = m }
}

// NewTokenResolver builds a resolver. A nil registry skips the token list step.
func NewTokenResolver(
	transport types.Transport,
	registry types.TokenRegistry,
	logger *zap.Logger,
	opts ...TokenResolverOption,
) *TokenResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = NoopRegistry{}
	}
	r := &TokenResolver{
		transport: transport,
		registry:  registry,
		tokens:    utils.NewTimedCache[*types.TokenInfo](types.DefaultTokenCacheTTL),
		metadata:  utils.NewTimedCache[*types.TokenMetadata](types.DefaultMetadataCacheTTL),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultTokenInfo is returned when a mint cannot be resolved at all.
func DefaultTokenInfo(address string) *types.TokenInfo {
	return &types.TokenInfo{
		Address:  address,
		Symbol:   common.PlaceholderSymbol,
		Decimals: DefaultTokenDecimals,
		Metadata: &types.TokenMetadata{
			Name:        fmt.Sprintf("%s (%s...)", common.PlaceholderName, utils.ShortAddress(address, 8)),
			Symbol:      common.PlaceholderSymbol,
			Description: DefaultTokenDescription,
		},
	}
}

// GetTokenInfo fails only for a malformed address. Any other failure
// degrades to DefaultTokenInfo.
func (r *TokenResolver) GetTokenInfo(ctx context.Context, address string) (*types.TokenInfo, error) {
	if !common.IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidAddress, address)
	}

	if info, ok := r.tokens.Get(address); ok {
		r.metrics.observeCache("token", true)
		return copyTokenInfo(info), nil
	}
	r.metrics.observeCache("token", false)

	if info := r.fromRegistry(ctx, address); info != nil {
		r.tokens.Set(address, info)
		return copyTokenInfo(info), nil
	}

	info, err := r.fromChain(ctx, address)
	if err != nil {
		r.logger.Warn("token resolution failed, using placeholder",
			zap.String("mint", address), zap.Error(err))
		r.metrics.observeFallback("token")
		return DefaultTokenInfo(address), nil
	}

	r.tokens.Set(address, info)
	return copyTokenInfo(info), nil
}

// GetTokenMetadata returns (nil, nil) when the mint has no metadata account.
func (r *TokenResolver) GetTokenMetadata(ctx context.Context, address string) (*types.TokenMetadata, error) {
	mint, err := common.ParseAddress(address)
	if err != nil {
		return nil, err
	}

	if meta, ok := r.metadata.Get(address); ok {
		r.metrics.observeCache("metadata", true)
		return copyMetadata(meta), nil
	}
	r.metrics.observeCache("metadata", false)

	metaAddress, _, err := common.DeriveMetadataAddress(mint)
	if err != nil {
		return nil, err
	}

	account, err := r.transport.FetchAccountInfo(ctx, metaAddress.String())
	if err != nil {
		return nil, asTransportError(err)
	}
	if account == nil || account.Owner != common.TokenMetadataProgramID.String() {
		r.metadata.Set(address, nil)
		return nil, nil
	}

	meta, err := common.ParseMetadata(account.Data)
	if err != nil {
		r.logger.Debug("metadata account unreadable",
			zap.String("mint", address), zap.String("account", metaAddress.String()), zap.Error(err))
		meta = common.PlaceholderMetadata()
	}
	r.metadata.Set(address, &meta)
	return copyMetadata(&meta), nil
}

// ClearCache drops every cached token and metadata entry.
func (r *TokenResolver) ClearCache() {
	r.tokens.Clear()
	r.metadata.Clear()
}

func (r *TokenResolver) fromRegistry(ctx context.Context, address string) *types.TokenInfo {
	entry, err := r.registry.Lookup(ctx, address)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			r.logger.Debug("mint not in token list", zap.String("mint", address))
		} else {
			r.logger.Warn("token list lookup failed", zap.String("mint", address), zap.Error(err))
		}
		return nil
	}

	return &types.TokenInfo{
		Address:  address,
		Symbol:   entry.Symbol,
		Decimals: entry.Decimals,
		LogoURI:  entry.LogoURI,
		Metadata: &types.TokenMetadata{
			Name:        entry.Name,
			Symbol:      entry.Symbol,
			URI:         entry.LogoURI,
			Description: entry.LogoURI,
		},
	}
}

func (r *TokenResolver) fromChain(ctx context.Context, address string) (*types.TokenInfo, error) {
	var (
		mint    *types.MintInfo
		mintErr error
		meta    *types.TokenMetadata
		metaErr error
		sub     utils.Subprocesses
	)

	sub.Go(func() {
		mint, mintErr = r.transport.FetchMint(ctx, address)
	})
	sub.Go(func() {
		meta, metaErr = r.GetTokenMetadata(ctx, address)
	})
	sub.Wait()

	if mintErr != nil {
		return nil, mintErr
	}
	if metaErr != nil {
		r.logger.Debug("metadata lookup failed", zap.String("mint", address), zap.Error(metaErr))
	}
	if meta == nil {
		placeholder := common.PlaceholderMetadata()
		meta = &placeholder
	}

	supply := strconv.FormatUint(mint.Supply, 10)
	return &types.TokenInfo{
		Address:         address,
		Symbol:          meta.Symbol,
		Decimals:        mint.Decimals,
		Metadata:        meta,
		Supply:          &supply,
		MintAuthority:   mint.MintAuthority,
		FreezeAuthority: mint.FreezeAuthority,
	}, nil
}

// copyTokenInfo deep-copies info so callers never share cached state.
func copyTokenInfo(info *types.TokenInfo) *types.TokenInfo {
	c := *info
	c.Metadata = copyMetadata(info.Metadata)
	c.Supply = clonePtr(info.Supply)
	c.MintAuthority = clonePtr(info.MintAuthority)
	c.FreezeAuthority = clonePtr(info.FreezeAuthority)
	return &c
}

func copyMetadata(meta *types.TokenMetadata) *types.TokenMetadata {
	return clonePtr(meta)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func asTransportError(err error) error {
	if errors.Is(err, types.ErrTransport) || errors.Is(err, types.ErrInvalidAddress) {
		return err
	}
	return fmt.Errorf("%w: %w", types.ErrTransport, err)
}
