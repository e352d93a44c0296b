package types

import "context"

type (
	AccountInfo struct {
		Data  []byte
		Owner string
	}

	MintInfo struct {
		Decimals        uint8
		Supply          uint64
		MintAuthority   *string
		FreezeAuthority *string
	}

	TokenAmount struct {
		Amount   string
		Decimals uint8
	}

	// Transport is the chain access the resolvers need. FetchAccountInfo
	// returns (nil, nil) when the account does not exist.
	Transport interface {
		FetchAccountInfo(ctx context.Context, address string) (*AccountInfo, error)
		FetchMint(ctx context.Context, address string) (*MintInfo, error)
		FetchTokenAccountBalance(ctx context.Context, address string) (*TokenAmount, error)
	}

	// TokenRegistry looks a mint up in an off-chain token list. Lookup
	// returns ErrNotFound when the registry does not know the mint.
	TokenRegistry interface {
		Lookup(ctx context.Context, mint string) (*TokenListEntry, error)
	}
)

// Inspector is the consumer surface of a chain backend.
type Inspector interface {
	GetTokenInfo(ctx context.Context, address string) (*TokenInfo, error)
	GetTokenMetadata(ctx context.Context, address string) (*TokenMetadata, error)
	GetPoolInfo(ctx context.Context, address string) (*PoolInfo, error)
	GetPoolTokenPair(ctx context.Context, address string) (*PoolTokenPair, error)
	GetPoolLiquidity(ctx context.Context, address string) (*PoolLiquidity, error)
	GetPriceRatio(ctx context.Context, address string) (*PriceRatio, error)
	GetPoolWithExtendedInfo(ctx context.Context, address string, opts ExtendedInfoOptions) (*PoolInfo, error)
	GetContractABI() string
	CheckAddress(text string) bool
	ResolveTokenAddress(input string) (string, error)
	ResolvePoolAddress(ctx context.Context, input string) (string, error)
	DeriveMetadataAddress(mint string) (string, uint8, error)
	Close() error
}
