package common

import "github.com/gagliardetto/solana-go"

const (
	PublicKeyLength = 32

	MetadataSeed = "metadata"
)

var (
	TokenMetadataProgramID = solana.MPK("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	USDCMint = solana.MPK("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)
