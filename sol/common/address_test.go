package common

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inspect/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidAddress(t *testing.T) {
	valid := []string{
		"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		"So11111111111111111111111111111111111111112",
		"11111111111111111111111111111111",
		"675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8",
	}
	for _, s := range valid {
		assert.True(t, IsValidAddress(s), s)
	}

	invalid := []string{
		"",
		"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1vv",
		"0PjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", // 0 is not base58
		"not an address",
	}
	for _, s := range invalid {
		assert.False(t, IsValidAddress(s), s)
	}
}

func TestParseAddress(t *testing.T) {
	pk, err := ParseAddress(USDCMint.String())
	require.NoError(t, err)
	assert.Equal(t, USDCMint, pk)

	_, err = ParseAddress("bad")
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestDeriveMetadataAddress(t *testing.T) {
	a, bumpA, err := DeriveMetadataAddress(USDCMint)
	require.NoError(t, err)
	b, bumpB, err := DeriveMetadataAddress(USDCMint)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, bumpA, bumpB)
	assert.False(t, IsOnCurve(a), "program-derived addresses are off the curve")

	recreated, err := solana.CreateProgramAddress(
		[][]byte{[]byte(MetadataSeed), TokenMetadataProgramID.Bytes(), USDCMint.Bytes(), {bumpA}},
		TokenMetadataProgramID,
	)
	require.NoError(t, err)
	assert.Equal(t, a, recreated)

	other, _, err := DeriveMetadataAddress(solana.SolMint)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestIsOnCurve(t *testing.T) {
	assert.True(t, IsOnCurve(solana.NewWallet().PublicKey()))
}
