package utils

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// UiAmount converts a raw integer token amount to its decimal value.
func UiAmount(raw string, decimals uint8) (decimal.Decimal, error) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid token amount %q", raw)
	}
	return decimal.NewFromBigInt(amount, 0-int32(decimals)), nil
}

// CalculatePriceRatio returns quote/base and base/quote. A zero leg follows
// IEEE-754 division: x/0 is ±Inf and 0/0 is NaN.
func CalculatePriceRatio(baseAmount, quoteAmount decimal.Decimal) (baseToQuote, quoteToBase float64) {
	base := baseAmount.InexactFloat64()
	quote := quoteAmount.InexactFloat64()
	return quote / base, base / quote
}
