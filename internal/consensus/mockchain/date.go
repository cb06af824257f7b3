// Package mockchain is a minimal chain implementing the consensus boundary for BFT and
// Genesis-Praos. It is used to exercise leadership credentials end to end.
package mockchain

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/chainauth/internal/consensus"
)

// Date is an epoch and a slot within it.
type Date struct {
	epoch uint32
	slot  uint32
}

var _ consensus.BlockDate = Date{}

func NewDate(epoch, slot uint32) Date {
	return Date{epoch: epoch, slot: slot}
}

// ParseDate parses "epoch.slot".
func ParseDate(value string) (Date, error) {
	epoch, slot, ok := strings.Cut(strings.TrimSpace(value), ".")
	if !ok {
		return Date{}, fmt.Errorf("date %q must be epoch.slot", value)
	}
	e, err := strconv.ParseUint(epoch, 10, 32)
	if err != nil {
		return Date{}, fmt.Errorf("date %q: epoch: %w", value, err)
	}
	s, err := strconv.ParseUint(slot, 10, 32)
	if err != nil {
		return Date{}, fmt.Errorf("date %q: slot: %w", value, err)
	}
	return NewDate(uint32(e), uint32(s)), nil
}

func dateOf(d consensus.BlockDate) Date {
	return NewDate(d.Epoch(), d.Slot())
}

func (d Date) Epoch() uint32 { return d.epoch }
func (d Date) Slot() uint32  { return d.slot }

func (d Date) String() string {
	return fmt.Sprintf("%d.%d", d.epoch, d.slot)
}

// Next returns the following slot.
func (d Date) Next(slotsPerEpoch uint32) Date {
	if d.slot+1 >= slotsPerEpoch {
		return NewDate(d.epoch+1, 0)
	}
	return NewDate(d.epoch, d.slot+1)
}

// After reports whether d is a later slot than other.
func (d Date) After(other Date) bool {
	if d.epoch != other.epoch {
		return d.epoch > other.epoch
	}
	return d.slot > other.slot
}

// Absolute returns the number of slots since the start of the chain.
func (d Date) Absolute(slotsPerEpoch uint32) uint64 {
	return uint64(d.epoch)*uint64(slotsPerEpoch) + uint64(d.slot)
}

func (d Date) bytes() []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint32(out[:4], d.epoch)
	binary.BigEndian.PutUint32(out[4:], d.slot)
	return out
}
