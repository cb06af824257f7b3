package clock

import (
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/chainauth/pkg/safe"
)

// SlotTime is a slot position on the chain timeline.
type SlotTime struct {
	Epoch uint32
	Slot  uint32
}

func (t SlotTime) String() string {
	return fmt.Sprintf("%d.%d", t.Epoch, t.Slot)
}

// SlotClock maps wall time to slots starting at the genesis time.
type SlotClock struct {
	genesis       time.Time
	slotDuration  time.Duration
	slotsPerEpoch uint32
}

func NewSlotClock(genesis time.Time, slotDuration time.Duration, slotsPerEpoch uint32) (*SlotClock, error) {
	if slotDuration <= 0 {
		return nil, errors.New("slot duration must be positive")
	}
	if slotsPerEpoch == 0 {
		return nil, errors.New("slots per epoch must be positive")
	}
	return &SlotClock{
		genesis:       genesis,
		slotDuration:  slotDuration,
		slotsPerEpoch: slotsPerEpoch,
	}, nil
}

func (c *SlotClock) SlotsPerEpoch() uint32 { return c.slotsPerEpoch }

// At returns the slot containing now. Times before genesis fall in slot 0.0.
func (c *SlotClock) At(now time.Time) (SlotTime, error) {
	if now.Before(c.genesis) {
		return SlotTime{}, nil
	}
	return c.slot(uint64(now.Sub(c.genesis) / c.slotDuration))
}

// Next returns the first slot starting after now and how long until it starts. Before
// genesis that is slot 0.0. A slot starting exactly at now has already begun, so repeated
// calls at a slot boundary move on instead of returning it again.
func (c *SlotClock) Next(now time.Time) (SlotTime, time.Duration, error) {
	if now.Before(c.genesis) {
		return SlotTime{}, c.genesis.Sub(now), nil
	}
	index := uint64(now.Sub(c.genesis)/c.slotDuration) + 1
	slot, err := c.slot(index)
	if err != nil {
		return SlotTime{}, 0, err
	}
	start := c.genesis.Add(time.Duration(index) * c.slotDuration)
	return slot, start.Sub(now), nil
}

func (c *SlotClock) slot(index uint64) (SlotTime, error) {
	epoch, err := safe.Uint32(index / uint64(c.slotsPerEpoch))
	if err != nil {
		return SlotTime{}, fmt.Errorf("epoch of slot %d: %w", index, err)
	}
	return SlotTime{
		Epoch: epoch,
		Slot:  uint32(index % uint64(c.slotsPerEpoch)),
	}, nil
}
