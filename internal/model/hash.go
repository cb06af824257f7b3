// Package model defines the chain-level values witnesses and leadership credentials are bound to.
package model

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HashSize is the size in bytes of every content hash on the chain.
const HashSize = blake2b.Size256

// Hash is a Blake2b-256 content hash.
type Hash [HashSize]byte

// HashBytes computes the Blake2b-256 hash of data.
func HashBytes(data ...[]byte) Hash {
	h, _ := blake2b.New256(nil)
	for _, d := range data {
		_, _ = h.Write(d)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// ParseHash decodes a hash from its 64 character hex form.
func ParseHash(value string) (Hash, error) {
	value = strings.TrimSpace(value)
	if len(value) != hex.EncodedLen(HashSize) {
		return Hash{}, fmt.Errorf("hash must be %d hex characters, got %d", hex.EncodedLen(HashSize), len(value))
	}
	var h Hash
	if _, err := hex.Decode(h[:], []byte(value)); err != nil {
		return Hash{}, fmt.Errorf("decode hash: %w", err)
	}
	return h, nil
}

// NewHash copies a hash out of raw bytes.
func NewHash(data []byte) (Hash, error) {
	if len(data) != HashSize {
		return Hash{}, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(data))
	}
	var h Hash
	copy(h[:], data)
	return h, nil
}

// Bytes returns a copy of the hash bytes.
func (h Hash) Bytes() []byte {
	out := make([]byte, HashSize)
	copy(out, h[:])
	return out
}

// String returns the hex form.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether every byte of the hash is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// HeaderHash identifies a block. The hash of block0 identifies the chain instance.
type HeaderHash Hash

// ParseHeaderHash decodes a block hash from hex.
func ParseHeaderHash(value string) (HeaderHash, error) {
	h, err := ParseHash(value)
	return HeaderHash(h), err
}

func (h HeaderHash) Bytes() []byte  { return Hash(h).Bytes() }
func (h HeaderHash) String() string { return Hash(h).String() }

// UnmarshalFlag implements flags.Unmarshaler.
func (h *HeaderHash) UnmarshalFlag(value string) error {
	parsed, err := ParseHeaderHash(value)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// TransactionID identifies a transaction by the hash of its signed content.
type TransactionID Hash

// ParseTransactionID decodes a transaction id from hex.
func ParseTransactionID(value string) (TransactionID, error) {
	h, err := ParseHash(value)
	return TransactionID(h), err
}

func (t TransactionID) Bytes() []byte  { return Hash(t).Bytes() }
func (t TransactionID) String() string { return Hash(t).String() }

// UnmarshalFlag implements flags.Unmarshaler.
func (t *TransactionID) UnmarshalFlag(value string) error {
	parsed, err := ParseTransactionID(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NodeID identifies a Genesis-Praos node.
type NodeID Hash

// ParseNodeID decodes a node id from hex.
func ParseNodeID(value string) (NodeID, error) {
	h, err := ParseHash(value)
	return NodeID(h), err
}

func (n NodeID) Bytes() []byte  { return Hash(n).Bytes() }
func (n NodeID) String() string { return Hash(n).String() }

// MarshalText encodes the node id as hex.
func (n NodeID) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}
