package sol

import (
	"context"
	"fmt"
	"strconv"

	"github.com/meme-bots/go-inspect/sol/common"
	"github.com/meme-bots/go-inspect/sol/raydium"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
	"go.uber.org/zap"
)

type (
	// TokenSource resolves the token legs of a pool.
	TokenSource interface {
		GetTokenInfo(ctx context.Context, address string) (*types.TokenInfo, error)
	}

	PoolResolver struct {
		transport types.Transport
		tokens    TokenSource
		pools     *utils.TimedCache[*types.PoolInfo]
		metrics   *Metrics
		logger    *zap.Logger
	}

	PoolResolverOption func(*PoolResolver)
)

func WithPoolCache(c *utils.TimedCache[*types.PoolInfo]) PoolResolverOption {
	return func(r *PoolResolver) { r.pools = c }
}

func WithPoolMetrics(m *Metrics) PoolResolverOption {
	return func(r *PoolResolver) { r.metrics = m }
}

func NewPoolResolver(
	transport types.Transport,
	tokens TokenSource,
	logger *zap.Logger,
	opts ...PoolResolverOption,
) *PoolResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &PoolResolver{
		transport: transport,
		tokens:    tokens,
		pools:     utils.NewTimedCache[*types.PoolInfo](types.DefaultPoolCacheTTL),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PoolResolver) GetPoolInfo(ctx context.Context, address string) (*types.PoolInfo, error) {
	if !common.IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidAddress, address)
	}

	if info, ok := r.pools.Get(address); ok {
		r.metrics.observeCache("pool", true)
		return copyPoolInfo(info), nil
	}
	r.metrics.observeCache("pool", false)

	account, err := r.transport.FetchAccountInfo(ctx, address)
	if err != nil {
		return nil, asTransportError(err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrPoolNotFound, address)
	}
	if err := raydium.CheckOwner(account.Owner); err != nil {
		return nil, err
	}

	state, err := raydium.DecodePoolState(account.Data)
	if err != nil {
		return nil, err
	}

	var (
		base, quote *types.TokenInfo
		sub         utils.Subprocesses
	)
	sub.Go(func() {
		base = r.resolveLeg(ctx, state.BaseMint.String())
	})
	sub.Go(func() {
		quote = r.resolveLeg(ctx, state.QuoteMint.String())
	})
	sub.Wait()

	info := &types.PoolInfo{
		BaseToken:         *base,
		QuoteToken:        *quote,
		BaseTokenAddress:  state.BaseMint.String(),
		QuoteTokenAddress: state.QuoteMint.String(),
		LpTokenAddress:    state.LpMint.String(),
		BaseVault:         state.BaseVault.String(),
		QuoteVault:        state.QuoteVault.String(),
		Authority:         state.Authority.String(),
		Nonce:             state.Nonce,
		OpenTime:          strconv.FormatUint(state.OpenTime, 10),
		LpSupply:          strconv.FormatUint(state.LpSupply, 10),
		ContractABI:       raydium.ContractABIJSON(),
	}

	r.pools.Set(address, info)
	return copyPoolInfo(info), nil
}

func (r *PoolResolver) GetPoolTokenPair(ctx context.Context, address string) (*types.PoolTokenPair, error) {
	info, err := r.GetPoolInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	return &types.PoolTokenPair{
		BaseToken:  info.BaseToken,
		QuoteToken: info.QuoteToken,
	}, nil
}

// GetPoolLiquidity reads the vault balances live; it is never cached. The
// decimals come from the vault balances, not from the resolved tokens.
func (r *PoolResolver) GetPoolLiquidity(ctx context.Context, address string) (*types.PoolLiquidity, error) {
	info, err := r.GetPoolInfo(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrLiquidityUnavailable, err)
	}

	var (
		base, quote       *types.TokenAmount
		baseErr, quoteErr error
		sub               utils.Subprocesses
	)
	sub.Go(func() {
		base, baseErr = r.transport.FetchTokenAccountBalance(ctx, info.BaseVault)
	})
	sub.Go(func() {
		quote, quoteErr = r.transport.FetchTokenAccountBalance(ctx, info.QuoteVault)
	})
	sub.Wait()

	if baseErr != nil {
		return nil, fmt.Errorf("%w: base vault %s: %w", types.ErrLiquidityUnavailable, info.BaseVault, baseErr)
	}
	if quoteErr != nil {
		return nil, fmt.Errorf("%w: quote vault %s: %w", types.ErrLiquidityUnavailable, info.QuoteVault, quoteErr)
	}

	return &types.PoolLiquidity{
		BaseTokenAmount:    base.Amount,
		QuoteTokenAmount:   quote.Amount,
		BaseTokenDecimals:  base.Decimals,
		QuoteTokenDecimals: quote.Decimals,
	}, nil
}

// GetPriceRatio derives both directions of the pool price from live
// liquidity. An empty leg yields NaN or ±Inf rather than an error.
func (r *PoolResolver) GetPriceRatio(ctx context.Context, address string) (*types.PriceRatio, error) {
	liquidity, err := r.GetPoolLiquidity(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrPriceUnavailable, err)
	}
	return PriceFromLiquidity(liquidity)
}

func (r *PoolResolver) GetPoolWithExtendedInfo(
	ctx context.Context,
	address string,
	opts types.ExtendedInfoOptions,
) (*types.PoolInfo, error) {
	info, err := r.GetPoolInfo(ctx, address)
	if err != nil {
		return nil, err
	}

	if opts.WithLiquidity {
		liquidity, err := r.GetPoolLiquidity(ctx, address)
		if err != nil {
			r.logger.Warn("pool liquidity unavailable", zap.String("pool", address), zap.Error(err))
		} else {
			info.Liquidity = liquidity
		}
	}

	if opts.WithPrice {
		var (
			price *types.PriceRatio
			err   error
		)
		if info.Liquidity != nil {
			price, err = PriceFromLiquidity(info.Liquidity)
		} else {
			price, err = r.GetPriceRatio(ctx, address)
		}
		if err != nil {
			r.logger.Warn("pool price unavailable", zap.String("pool", address), zap.Error(err))
		} else {
			info.Price = price
		}
	}

	return info, nil
}

func (r *PoolResolver) GetContractABI() string {
	return raydium.ContractABIJSON()
}

func (r *PoolResolver) ClearCache() {
	r.pools.Clear()
}

// PriceFromLiquidity converts raw vault amounts to UI units and divides.
func PriceFromLiquidity(l *types.PoolLiquidity) (*types.PriceRatio, error) {
	base, err := utils.UiAmount(l.BaseTokenAmount, l.BaseTokenDecimals)
	if err != nil {
		return nil, fmt.Errorf("%w: base amount: %w", types.ErrPriceUnavailable, err)
	}
	quote, err := utils.UiAmount(l.QuoteTokenAmount, l.QuoteTokenDecimals)
	if err != nil {
		return nil, fmt.Errorf("%w: quote amount: %w", types.ErrPriceUnavailable, err)
	}

	baseToQuote, quoteToBase := utils.CalculatePriceRatio(base, quote)
	return &types.PriceRatio{
		BaseToQuote: baseToQuote,
		QuoteToBase: quoteToBase,
	}, nil
}

func (r *PoolResolver) resolveLeg(ctx context.Context, mint string) *types.TokenInfo {
	info, err := r.tokens.GetTokenInfo(ctx, mint)
	if err != nil || info == nil {
		r.logger.Warn("pool leg unresolved, using placeholder", zap.String("mint", mint), zap.Error(err))
		r.metrics.observeFallback("pool_leg")
		return DefaultTokenInfo(mint)
	}
	return info
}

func copyPoolInfo(info *types.PoolInfo) *types.PoolInfo {
	c := *info
	c.Liquidity = nil
	c.Price = nil
	return &c
}
