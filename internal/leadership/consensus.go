package leadership

import (
	"fmt"
	"strings"
)

// Consensus names a block leadership algorithm.
type Consensus uint8

const (
	BFT Consensus = iota + 1
	GenesisPraos
)

// ParseConsensus accepts "bft" and "genesis" (or "genesis-praos").
func ParseConsensus(value string) (Consensus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "bft":
		return BFT, nil
	case "genesis", "genesis-praos":
		return GenesisPraos, nil
	default:
		return 0, fmt.Errorf("unknown consensus %q", value)
	}
}

func (c Consensus) String() string {
	switch c {
	case BFT:
		return "bft"
	case GenesisPraos:
		return "genesis-praos"
	default:
		return fmt.Sprintf("consensus(%d)", uint8(c))
	}
}

// UnmarshalFlag implements flags.Unmarshaler.
func (c *Consensus) UnmarshalFlag(value string) error {
	parsed, err := ParseConsensus(value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
