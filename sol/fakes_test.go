package sol

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inspect/sol/common"
	"github.com/meme-bots/go-inspect/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTransport struct {
	mu sync.Mutex

	accounts   map[string]*types.AccountInfo
	mints      map[string]*types.MintInfo
	balances   map[string]*types.TokenAmount
	accountErr map[string]error
	mintErr    map[string]error
	balanceErr map[string]error

	calls map[string]int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		accounts:   map[string]*types.AccountInfo{},
		mints:      map[string]*types.MintInfo{},
		balances:   map[string]*types.TokenAmount{},
		accountErr: map[string]error{},
		mintErr:    map[string]error{},
		balanceErr: map[string]error{},
		calls:      map[string]int{},
	}
}

func (f *fakeTransport) record(method, address string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method+":"+address]++
	f.calls[method]++
}

func (f *fakeTransport) Calls(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeTransport) FetchAccountInfo(_ context.Context, address string) (*types.AccountInfo, error) {
	f.record("account", address)
	if err := f.accountErr[address]; err != nil {
		return nil, err
	}
	return f.accounts[address], nil
}

func (f *fakeTransport) FetchMint(_ context.Context, address string) (*types.MintInfo, error) {
	f.record("mint", address)
	if err := f.mintErr[address]; err != nil {
		return nil, err
	}
	mint, ok := f.mints[address]
	if !ok {
		return nil, fmt.Errorf("%w: mint %s", types.ErrAccountNotFound, address)
	}
	return mint, nil
}

func (f *fakeTransport) FetchTokenAccountBalance(_ context.Context, address string) (*types.TokenAmount, error) {
	f.record("balance", address)
	if err := f.balanceErr[address]; err != nil {
		return nil, err
	}
	amount, ok := f.balances[address]
	if !ok {
		return nil, fmt.Errorf("%w: token account %s", types.ErrAccountNotFound, address)
	}
	return amount, nil
}

// addMetadata stores a metadata account for mint at its derived address.
func (f *fakeTransport) addMetadata(t *testing.T, mint, name, symbol, uri string) {
	t.Helper()
	address, _, err := common.DeriveMetadataAddress(solana.MPK(mint))
	require.NoError(t, err)
	f.accounts[address.String()] = &types.AccountInfo{
		Data:  encodeMetadataAccount(t, mint, name, symbol, uri),
		Owner: common.TokenMetadataProgramID.String(),
	}
}

func encodeMetadataAccount(t *testing.T, mint, name, symbol, uri string) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	require.NoError(t, enc.WriteByte(4))
	require.NoError(t, enc.WriteBytes(make([]byte, 32), false))
	require.NoError(t, enc.WriteBytes(solana.MPK(mint).Bytes(), false))
	for _, field := range []struct {
		s     string
		width int
	}{{name, 32}, {symbol, 10}, {uri, 200}} {
		padded := field.s + strings.Repeat("\x00", field.width-len(field.s))
		require.NoError(t, enc.WriteUint32(uint32(len(padded)), bin.LE))
		require.NoError(t, enc.WriteBytes([]byte(padded), false))
	}
	return buf.Bytes()
}

type fakeRegistry struct {
	entries map[string]types.TokenListEntry
	err     error
	calls   int
	mu      sync.Mutex
}

func (r *fakeRegistry) Lookup(_ context.Context, mint string) (*types.TokenListEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	entry, ok := r.entries[mint]
	if !ok {
		return nil, types.ErrNotFound
	}
	return &entry, nil
}

func strPtr(s string) *string { return &s }

func zapNop() *zap.Logger { return zap.NewNop() }
