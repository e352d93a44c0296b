package types

import "errors"

var (
	ErrInvalidAddress = errors.New("invalid address")

	ErrAccountNotFound = errors.New("account not found")

	ErrPoolNotFound = errors.New("pool not found")

	// ErrNotAValidPool is returned when the pool account is not owned by the AMM program.
	ErrNotAValidPool = errors.New("not a valid pool")

	ErrDecode = errors.New("decode error")

	ErrLiquidityUnavailable = errors.New("liquidity unavailable")

	ErrPriceUnavailable = errors.New("price unavailable")

	ErrTransport = errors.New("transport error")

	ErrNotFound = errors.New("not found")
)
