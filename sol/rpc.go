package sol

import (
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/meme-bots/go-inspect/sol/common"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
	"go.uber.org/zap"
)

// MintSize is the length of an SPL token mint account without extensions.
const MintSize = 82

// RPCTransport implements types.Transport on a solana-go RPC client. Every
// call first takes a slot from the shared rate limiter.
type RPCTransport struct {
	client     *rpc.Client
	limiter    *utils.RateLimiter
	commitment rpc.CommitmentType
	metrics    *Metrics
	logger     *zap.Logger
}

var _ types.Transport = (*RPCTransport)(nil)

func NewRPCTransport(
	client *rpc.Client,
	limiter *utils.RateLimiter,
	commitment rpc.CommitmentType,
	metrics *Metrics,
	logger *zap.Logger,
) *RPCTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return &RPCTransport{
		client:     client,
		limiter:    limiter,
		commitment: commitment,
		metrics:    metrics,
		logger:     logger,
	}
}

func (t *RPCTransport) acquire(ctx context.Context) error {
	if t.limiter == nil {
		return nil
	}
	if err := t.limiter.Acquire(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", types.ErrTransport, err)
	}
	return nil
}

func (t *RPCTransport) FetchAccountInfo(ctx context.Context, address string) (*types.AccountInfo, error) {
	pk, err := common.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	if err := t.acquire(ctx); err != nil {
		return nil, err
	}

	out, err := t.client.GetAccountInfoWithOpts(ctx, pk, &rpc.GetAccountInfoOpts{
		Commitment: t.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		t.metrics.observeRPC("getAccountInfo", nil)
		return nil, nil
	}
	t.metrics.observeRPC("getAccountInfo", err)
	if err != nil {
		t.logger.Debug("getAccountInfo failed", zap.String("address", address), zap.Error(err))
		return nil, fmt.Errorf("%w: getAccountInfo %s: %w", types.ErrTransport, address, err)
	}
	if out == nil || out.Value == nil || out.Value.Data == nil {
		return nil, nil
	}

	return &types.AccountInfo{
		Data:  out.Value.Data.GetBinary(),
		Owner: out.Value.Owner.String(),
	}, nil
}

func (t *RPCTransport) FetchMint(ctx context.Context, address string) (*types.MintInfo, error) {
	account, err := t.FetchAccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: mint %s", types.ErrAccountNotFound, address)
	}
	if err := CheckMintOwner(account.Owner); err != nil {
		return nil, fmt.Errorf("%w: mint %s", err, address)
	}
	return DecodeMint(account.Data)
}

// CheckMintOwner fails with ErrDecode unless owner is one of the SPL token
// programs.
func CheckMintOwner(owner string) error {
	switch owner {
	case solana.TokenProgramID.String(), solana.Token2022ProgramID.String():
		return nil
	}
	return fmt.Errorf("%w: owner %s is not a token program", types.ErrDecode, owner)
}

func (t *RPCTransport) FetchTokenAccountBalance(ctx context.Context, address string) (*types.TokenAmount, error) {
	pk, err := common.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	if err := t.acquire(ctx); err != nil {
		return nil, err
	}

	out, err := t.client.GetTokenAccountBalance(ctx, pk, t.commitment)
	t.metrics.observeRPC("getTokenAccountBalance", err)
	if err != nil {
		return nil, fmt.Errorf("%w: getTokenAccountBalance %s: %w", types.ErrTransport, address, err)
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("%w: token account %s", types.ErrAccountNotFound, address)
	}

	return &types.TokenAmount{
		Amount:   out.Value.Amount,
		Decimals: out.Value.Decimals,
	}, nil
}

// DecodeMint decodes the leading SPL mint layout of data.
func DecodeMint(data []byte) (*types.MintInfo, error) {
	if len(data) < MintSize {
		return nil, fmt.Errorf("%w: mint needs %d bytes, have %d", types.ErrDecode, MintSize, len(data))
	}

	var mint token.Mint
	if err := mint.UnmarshalWithDecoder(bin.NewBinDecoder(data[:MintSize])); err != nil {
		return nil, fmt.Errorf("%w: mint: %w", types.ErrDecode, err)
	}

	info := &types.MintInfo{
		Decimals: mint.Decimals,
		Supply:   mint.Supply,
	}
	if mint.MintAuthority != nil {
		s := mint.MintAuthority.String()
		info.MintAuthority = &s
	}
	if mint.FreezeAuthority != nil {
		s := mint.FreezeAuthority.String()
		info.FreezeAuthority = &s
	}
	return info, nil
}
