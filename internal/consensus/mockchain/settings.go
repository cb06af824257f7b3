package mockchain

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/model"
)

// DefaultMaxMessagesPerBlock bounds block size when no update changed it.
const DefaultMaxMessagesPerBlock = 255

// Settings are the chain parameters at a tip.
type Settings struct {
	tip         consensus.ID
	tipDate     *Date
	chainLength uint32
	maxMessages int
}

var _ consensus.Settings = (*Settings)(nil)

// GenesisSettings returns the settings of an empty chain.
func GenesisSettings(genesis model.HeaderHash) *Settings {
	return &Settings{
		tip:         model.Hash(genesis),
		maxMessages: DefaultMaxMessagesPerBlock,
	}
}

func (s *Settings) Tip() consensus.ID        { return s.tip }
func (s *Settings) ChainLength() uint32      { return s.chainLength }
func (s *Settings) MaxMessagesPerBlock() int { return s.maxMessages }

// TipDate returns the date of the tip block. It is false for an empty chain.
func (s *Settings) TipDate() (Date, bool) {
	if s.tipDate == nil {
		return Date{}, false
	}
	return *s.tipDate, true
}

// Advance returns the settings with b as the new tip.
func (s *Settings) Advance(b consensus.Block) *Settings {
	next := *s
	next.tip = b.ID()
	date := dateOf(b.Header().Date())
	next.tipDate = &date
	next.chainLength = b.Header().ChainLength()
	return &next
}

// SettingsUpdate changes the block size limit.
type SettingsUpdate struct {
	MaxMessagesPerBlock int
}

var _ consensus.Update = SettingsUpdate{}

func (u SettingsUpdate) Apply(settings consensus.Settings) (consensus.Settings, error) {
	current, ok := settings.(*Settings)
	if !ok {
		return nil, fmt.Errorf("settings %T are not mockchain settings", settings)
	}
	if u.MaxMessagesPerBlock <= 0 {
		return nil, errors.New("max messages per block must be positive")
	}
	next := *current
	next.maxMessages = u.MaxMessagesPerBlock
	return &next, nil
}

// Announcement is the gossip a node sends about itself.
type Announcement struct {
	Node    model.NodeID
	Address string
}

var _ consensus.Gossip = Announcement{}

func (a Announcement) ID() consensus.ID { return model.Hash(a.Node) }

func (a Announcement) Bytes() []byte {
	return append(a.Node.Bytes(), a.Address...)
}
