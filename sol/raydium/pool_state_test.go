package raydium

import (
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inspect/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePoolState() *PoolState {
	return &PoolState{
		Version:       4,
		IsInitialized: 1,
		Nonce:         254,
		AmmID:         solana.NewWallet().PublicKey(),
		BaseMint:      solana.SolMint,
		QuoteMint:     solana.MPK("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
		LpMint:        solana.NewWallet().PublicKey(),
		BaseVault:     solana.NewWallet().PublicKey(),
		QuoteVault:    solana.NewWallet().PublicKey(),
		Authority:     solana.MPK("5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1"),
		OpenTime:      1_700_000_000,
		LpSupply:      18_446_744_073_709_551_615,
		BaseReserve:   10,
		QuoteReserve:  20,
		State:         6,
		PoolOpenTime:  1_700_000_001,
	}
}

func TestPoolState_RoundTrip(t *testing.T) {
	want := samplePoolState()

	data, err := EncodePoolState(want)
	require.NoError(t, err)
	require.Len(t, data, PoolStateSize)

	got, err := DecodePoolState(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodePoolState_IgnoresTrailingBytes(t *testing.T) {
	want := samplePoolState()
	data, err := EncodePoolState(want)
	require.NoError(t, err)

	got, err := DecodePoolState(append(data, make([]byte, 403)...))
	require.NoError(t, err)
	assert.Equal(t, want.LpSupply, got.LpSupply)
	assert.Equal(t, want.Authority, got.Authority)
}

func TestDecodePoolState_Short(t *testing.T) {
	data, err := EncodePoolState(samplePoolState())
	require.NoError(t, err)

	for _, n := range []int{0, 1, 3 + 32, PoolStateSize - 1} {
		_, err := DecodePoolState(data[:n])
		assert.ErrorIs(t, err, types.ErrDecode, "length %d", n)
	}
}

func TestCheckOwner(t *testing.T) {
	assert.NoError(t, CheckOwner(ProgramID.String()))
	assert.ErrorIs(t, CheckOwner(solana.TokenProgramID.String()), types.ErrNotAValidPool)
	assert.ErrorIs(t, CheckOwner(""), types.ErrNotAValidPool)
}

func TestContractABIJSON(t *testing.T) {
	var abi ABI
	require.NoError(t, json.Unmarshal([]byte(ContractABIJSON()), &abi))

	assert.Equal(t, ProgramID.String(), abi.ProgramID)
	require.Len(t, abi.Accounts, 1)
	assert.Equal(t, PoolStateSize, abi.Accounts[0].Size)
	assert.Len(t, abi.Accounts[0].Fields, 27)

	names := make([]string, 0, len(abi.Instructions))
	for _, ix := range abi.Instructions {
		names = append(names, ix.Name)
	}
	assert.Contains(t, names, "swapBaseIn")
	assert.Equal(t, ContractABIJSON(), ContractABIJSON())
}
