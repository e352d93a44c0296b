package common

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inspect/types"
	"github.com/mr-tron/base58"
)

// IsValidAddress reports whether s is base58 for exactly 32 bytes.
func IsValidAddress(s string) bool {
	if s == "" {
		return false
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == PublicKeyLength
}

func ParseAddress(s string) (solana.PublicKey, error) {
	if !IsValidAddress(s) {
		return solana.PublicKey{}, fmt.Errorf("%w: %q", types.ErrInvalidAddress, s)
	}
	return solana.PublicKeyFromBase58(s)
}

// IsOnCurve reports whether pk is a point on ed25519. Program-derived
// addresses never are.
func IsOnCurve(pk solana.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}
