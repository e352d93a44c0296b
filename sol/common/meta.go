package common

import (
	"fmt"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/meme-bots/go-inspect/types"
	"github.com/meme-bots/go-inspect/utils"
)

const (
	// key(1) + update authority(32) + mint(32)
	metadataHeaderSize = 1 + 32 + 32

	PlaceholderName        = "Unknown Token"
	PlaceholderSymbol      = "UNKNOWN"
	PlaceholderDescription = "Metadata decoding failed"
)

func PlaceholderMetadata() types.TokenMetadata {
	return types.TokenMetadata{
		Name:        PlaceholderName,
		Symbol:      PlaceholderSymbol,
		URI:         "",
		Description: PlaceholderDescription,
	}
}

// DecodeMetadata decodes a token-metadata account. It never fails: a buffer
// that does not fit the layout yields PlaceholderMetadata.
func DecodeMetadata(data []byte) types.TokenMetadata {
	meta, err := ParseMetadata(data)
	if err != nil {
		return PlaceholderMetadata()
	}
	return meta
}

// ParseMetadata is DecodeMetadata with the structural error exposed.
func ParseMetadata(data []byte) (types.TokenMetadata, error) {
	dec := bin.NewBorshDecoder(data)
	if dec.Remaining() < metadataHeaderSize {
		return types.TokenMetadata{}, fmt.Errorf("%w: metadata header needs %d bytes, have %d",
			types.ErrDecode, metadataHeaderSize, dec.Remaining())
	}
	if err := dec.SkipBytes(metadataHeaderSize); err != nil {
		return types.TokenMetadata{}, fmt.Errorf("%w: %w", types.ErrDecode, err)
	}

	name, err := readString(dec, "name")
	if err != nil {
		return types.TokenMetadata{}, err
	}
	symbol, err := readString(dec, "symbol")
	if err != nil {
		return types.TokenMetadata{}, err
	}
	uri, err := readString(dec, "uri")
	if err != nil {
		return types.TokenMetadata{}, err
	}

	return types.TokenMetadata{
		Name:        name,
		Symbol:      symbol,
		URI:         uri,
		Description: uri,
	}, nil
}

func readString(dec *bin.Decoder, field string) (string, error) {
	if dec.Remaining() < 4 {
		return "", fmt.Errorf("%w: %s length prefix truncated", types.ErrDecode, field)
	}
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return "", fmt.Errorf("%w: %s length: %w", types.ErrDecode, field, err)
	}
	if uint64(n) > uint64(dec.Remaining()) {
		return "", fmt.Errorf("%w: %s declares %d bytes, %d remain", types.ErrDecode, field, n, dec.Remaining())
	}
	raw, err := dec.ReadNBytes(int(n))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", types.ErrDecode, field, err)
	}
	return utils.TrimSpace(strings.ToValidUTF8(string(raw), "")), nil
}
