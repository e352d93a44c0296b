package raydium

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inspect/types"
	"github.com/near/borsh-go"
)

var (
	ProgramID = solana.MPK("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
)

// PoolStateSize is the encoded length of PoolState.
const PoolStateSize = 3 + 7*32 + 8*8 + 2 + 7*8

type (
	PoolState struct {
		Version       uint8
		IsInitialized uint8
		Nonce         uint8

		AmmID      solana.PublicKey
		BaseMint   solana.PublicKey
		QuoteMint  solana.PublicKey
		LpMint     solana.PublicKey
		BaseVault  solana.PublicKey
		QuoteVault solana.PublicKey
		Authority  solana.PublicKey

		OpenTime uint64
		LpSupply uint64

		// Fields below are not consumed by the resolver.
		BaseReserve        uint64
		QuoteReserve       uint64
		TargetBaseReserve  uint64
		TargetQuoteReserve uint64
		BaseDepositLimit   uint64
		QuoteDepositLimit  uint64

		State     uint8
		ResetFlag uint8

		MinBaseAPY            uint64
		MaxBaseAPY            uint64
		MinQuoteAPY           uint64
		MaxQuoteAPY           uint64
		TotalDepositsPending  uint64
		TotalWithdrawsPending uint64
		PoolOpenTime          uint64
	}
)

// CheckOwner fails with ErrNotAValidPool unless owner is the AMM program.
func CheckOwner(owner string) error {
	if owner != ProgramID.String() {
		return fmt.Errorf("%w: owner %s, expected %s", types.ErrNotAValidPool, owner, ProgramID)
	}
	return nil
}

func DecodePoolState(data []byte) (*PoolState, error) {
	if len(data) < PoolStateSize {
		return nil, fmt.Errorf("%w: pool state needs %d bytes, have %d", types.ErrDecode, PoolStateSize, len(data))
	}

	var p PoolState
	if err := borsh.Deserialize(&p, data[:PoolStateSize]); err != nil {
		return nil, fmt.Errorf("%w: pool state: %w", types.ErrDecode, err)
	}
	return &p, nil
}

func EncodePoolState(p *PoolState) ([]byte, error) {
	return borsh.Serialize(*p)
}
