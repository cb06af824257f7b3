package keys

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// EncodeBech32 encodes 8-bit data with the given human readable prefix.
// The BIP-173 length limit is not applied: forward-secure keys and witnesses exceed it.
func EncodeBech32(prefix string, data []byte) (string, error) {
	converted, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert bits: %w", err)
	}
	encoded, err := bech32.Encode(prefix, converted)
	if err != nil {
		return "", fmt.Errorf("bech32 encode: %w", err)
	}
	return encoded, nil
}

// DecodeBech32 decodes a bech32 string of any length into its prefix and 8-bit data.
// Surrounding whitespace is ignored. All failures wrap ErrEncoding.
func DecodeBech32(value string) (string, []byte, error) {
	prefix, data, err := bech32.DecodeNoLimit(strings.TrimSpace(value))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return prefix, converted, nil
}
