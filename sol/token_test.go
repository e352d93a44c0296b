package sol

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inspect/sol/common"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usdc = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	bonk = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

func TestTokenResolver_OnChain(t *testing.T) {
	transport := newFakeTransport()
	transport.mints[usdc] = &types.MintInfo{
		Decimals:      6,
		Supply:        9_000_000_000_000_000,
		MintAuthority: strPtr("BJE5MMbqXjVwjAF7oxwPYXnTXDyspzZyt4vwenNw5ruG"),
	}
	transport.addMetadata(t, usdc, "USD Coin", "USDC", "https://example.com/usdc.json")

	r := NewTokenResolver(transport, nil, nil)
	info, err := r.GetTokenInfo(context.Background(), usdc)
	require.NoError(t, err)

	assert.Equal(t, usdc, info.Address)
	assert.Equal(t, "USDC", info.Symbol)
	assert.Equal(t, uint8(6), info.Decimals)
	require.NotNil(t, info.Supply)
	assert.Equal(t, "9000000000000000", *info.Supply)
	assert.Equal(t, "BJE5MMbqXjVwjAF7oxwPYXnTXDyspzZyt4vwenNw5ruG", *info.MintAuthority)
	assert.Nil(t, info.FreezeAuthority)
	require.NotNil(t, info.Metadata)
	assert.Equal(t, "USD Coin", info.Metadata.Name)
}

func TestTokenResolver_CacheBeforeNetwork(t *testing.T) {
	transport := newFakeTransport()
	transport.mints[usdc] = &types.MintInfo{Decimals: 6}

	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	r := NewTokenResolver(transport, nil, nil,
		WithTokenCache(utils.NewTimedCacheWithClock[*types.TokenInfo](300*time.Second, clock)),
		WithMetadataCache(utils.NewTimedCacheWithClock[*types.TokenMetadata](600*time.Second, clock)),
	)

	_, err := r.GetTokenInfo(context.Background(), usdc)
	require.NoError(t, err)
	_, err = r.GetTokenInfo(context.Background(), usdc)
	require.NoError(t, err)
	assert.Equal(t, 1, transport.Calls("mint"))

	now = now.Add(301 * time.Second)
	_, err = r.GetTokenInfo(context.Background(), usdc)
	require.NoError(t, err)
	assert.Equal(t, 2, transport.Calls("mint"))
}

func TestTokenResolver_RegistryFirst(t *testing.T) {
	transport := newFakeTransport()
	registry := &fakeRegistry{entries: map[string]types.TokenListEntry{
		bonk: {Address: bonk, Symbol: "Bonk", Name: "Bonk", Decimals: 5, LogoURI: "https://example.com/bonk.png"},
	}}

	r := NewTokenResolver(transport, registry, nil)
	info, err := r.GetTokenInfo(context.Background(), bonk)
	require.NoError(t, err)

	assert.Equal(t, "Bonk", info.Symbol)
	assert.Equal(t, uint8(5), info.Decimals)
	assert.Equal(t, "https://example.com/bonk.png", info.LogoURI)
	assert.Equal(t, "Bonk", info.Metadata.Name)
	assert.Nil(t, info.Supply)
	assert.Equal(t, 0, transport.Calls("mint"), "a registry hit needs no chain access")
}

func TestTokenResolver_RegistryErrorFallsThrough(t *testing.T) {
	transport := newFakeTransport()
	transport.mints[usdc] = &types.MintInfo{Decimals: 6}
	registry := &fakeRegistry{err: errors.New("list unavailable")}

	r := NewTokenResolver(transport, registry, nil)
	info, err := r.GetTokenInfo(context.Background(), usdc)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), info.Decimals)
}

func TestTokenResolver_NoMetadata(t *testing.T) {
	transport := newFakeTransport()
	transport.mints[bonk] = &types.MintInfo{Decimals: 5, Supply: 1}

	r := NewTokenResolver(transport, nil, nil)

	meta, err := r.GetTokenMetadata(context.Background(), bonk)
	require.NoError(t, err)
	assert.Nil(t, meta, "a missing metadata account is not an error")

	info, err := r.GetTokenInfo(context.Background(), bonk)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), info.Decimals)
	assert.Equal(t, common.PlaceholderSymbol, info.Symbol)
	assert.Equal(t, common.PlaceholderMetadata(), *info.Metadata)
}

func TestTokenResolver_MetadataWrongOwner(t *testing.T) {
	transport := newFakeTransport()
	address, _, err := common.DeriveMetadataAddress(solana.MPK(usdc))
	require.NoError(t, err)
	transport.accounts[address.String()] = &types.AccountInfo{
		Data:  encodeMetadataAccount(t, usdc, "Fake", "FAKE", ""),
		Owner: solana.SystemProgramID.String(),
	}

	r := NewTokenResolver(transport, nil, nil)
	meta, err := r.GetTokenMetadata(context.Background(), usdc)
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestTokenResolver_UndecodableMetadata(t *testing.T) {
	transport := newFakeTransport()
	address, _, err := common.DeriveMetadataAddress(solana.MPK(usdc))
	require.NoError(t, err)
	transport.accounts[address.String()] = &types.AccountInfo{
		Data:  []byte{4, 1, 2, 3},
		Owner: common.TokenMetadataProgramID.String(),
	}

	r := NewTokenResolver(transport, nil, nil)
	meta, err := r.GetTokenMetadata(context.Background(), usdc)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, common.PlaceholderMetadata(), *meta)
}

func TestTokenResolver_MetadataTransportError(t *testing.T) {
	transport := newFakeTransport()
	address, _, err := common.DeriveMetadataAddress(solana.MPK(usdc))
	require.NoError(t, err)
	transport.accountErr[address.String()] = errors.New("connection reset")

	r := NewTokenResolver(transport, nil, nil)
	_, err = r.GetTokenMetadata(context.Background(), usdc)
	assert.ErrorIs(t, err, types.ErrTransport)
}

func TestTokenResolver_FallbackNotCached(t *testing.T) {
	transport := newFakeTransport()
	transport.mintErr[bonk] = errors.New("rpc down")

	r := NewTokenResolver(transport, nil, nil)
	info, err := r.GetTokenInfo(context.Background(), bonk)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenInfo(bonk), info)
	assert.Equal(t, "Unknown Token (DezXAZ8z...)", info.Metadata.Name)
	assert.Equal(t, uint8(9), info.Decimals)

	delete(transport.mintErr, bonk)
	transport.mints[bonk] = &types.MintInfo{Decimals: 5}
	info, err = r.GetTokenInfo(context.Background(), bonk)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), info.Decimals, "placeholder results are not cached")
}

func TestTokenResolver_InvalidAddress(t *testing.T) {
	transport := newFakeTransport()
	r := NewTokenResolver(transport, nil, nil)

	_, err := r.GetTokenInfo(context.Background(), "not-a-mint")
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
	_, err = r.GetTokenMetadata(context.Background(), "not-a-mint")
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
	assert.Equal(t, 0, transport.Calls("account"))
}

func TestTokenResolver_ReturnsCopies(t *testing.T) {
	transport := newFakeTransport()
	transport.mints[usdc] = &types.MintInfo{Decimals: 6}
	transport.addMetadata(t, usdc, "USD Coin", "USDC", "")
	r := NewTokenResolver(transport, nil, nil)

	first, err := r.GetTokenInfo(context.Background(), usdc)
	require.NoError(t, err)
	require.NotNil(t, first.Metadata)
	require.NotNil(t, first.Supply)
	first.Symbol = "MUTATED"
	first.Metadata.Name = "MUTATED"
	*first.Supply = "999"

	second, err := r.GetTokenInfo(context.Background(), usdc)
	require.NoError(t, err)
	assert.NotEqual(t, "MUTATED", second.Symbol)
	assert.Equal(t, "USD Coin", second.Metadata.Name)
	assert.Equal(t, "0", *second.Supply)

	meta, err := r.GetTokenMetadata(context.Background(), usdc)
	require.NoError(t, err)
	meta.Symbol = "MUTATED"

	meta, err = r.GetTokenMetadata(context.Background(), usdc)
	require.NoError(t, err)
	assert.Equal(t, "USDC", meta.Symbol)
}
