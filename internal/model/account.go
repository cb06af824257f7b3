package model

import (
	"encoding/binary"
	"fmt"
)

// SpendingCounter is the per-account sequence number an account witness commits to.
// It is supplied by the caller; freshness is enforced by the ledger.
type SpendingCounter uint32

// SpendingCounterSize is the serialized size of a SpendingCounter.
const SpendingCounterSize = 4

// Bytes returns the big-endian encoding.
func (c SpendingCounter) Bytes() []byte {
	out := make([]byte, SpendingCounterSize)
	binary.BigEndian.PutUint32(out, uint32(c))
	return out
}

// Next returns the counter value expected after one more debit.
func (c SpendingCounter) Next() (SpendingCounter, error) {
	if c == ^SpendingCounter(0) {
		return 0, fmt.Errorf("spending counter %d overflow", c)
	}
	return c + 1, nil
}

// SpendingCounterFromBytes decodes a big-endian counter.
func SpendingCounterFromBytes(data []byte) (SpendingCounter, error) {
	if len(data) != SpendingCounterSize {
		return 0, fmt.Errorf("spending counter must be %d bytes, got %d", SpendingCounterSize, len(data))
	}
	return SpendingCounter(binary.BigEndian.Uint32(data)), nil
}
