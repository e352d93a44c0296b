package common

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DeriveMetadataAddress returns the token-metadata account of mint and its bump.
func DeriveMetadataAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	address, bump, err := solana.FindProgramAddress(
		[][]byte{
			[]byte(MetadataSeed),
			TokenMetadataProgramID.Bytes(),
			mint.Bytes(),
		},
		TokenMetadataProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive metadata address for %s: %w", mint, err)
	}
	return address, bump, nil
}
