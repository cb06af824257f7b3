package mockchain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/model"
)

var (
	ErrNotOnTip        = errors.New("block does not extend the tip")
	ErrSlotNotAfterTip = errors.New("block date is not after the tip")
)

// Chain is a single-fork chain: every appended block must extend the tip, be dated
// after it and pass header verification.
type Chain struct {
	mu        sync.RWMutex
	settings  *Settings
	ledger    consensus.Ledger
	blocks    map[consensus.ID]consensus.Block
	selection func(consensus.Settings) consensus.LeaderSelection
}

// NewChain starts an empty chain. selection is usually the LeaderSelection method of a
// BlockConfig.
func NewChain(genesis model.HeaderHash, selection func(consensus.Settings) consensus.LeaderSelection) *Chain {
	return &Chain{
		settings:  GenesisSettings(genesis),
		ledger:    NewLedger(genesis),
		blocks:    map[consensus.ID]consensus.Block{},
		selection: selection,
	}
}

// Tip returns the settings and ledger blocks are currently made against.
func (c *Chain) Tip() (consensus.Settings, consensus.Ledger) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings, c.ledger
}

func (c *Chain) Append(b consensus.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b.Header().ParentID() != c.settings.Tip() {
		return fmt.Errorf("%w: parent %s, tip %s", ErrNotOnTip, b.Header().ParentID(), c.settings.Tip())
	}
	if last, ok := c.settings.TipDate(); ok {
		if date := dateOf(b.Header().Date()); !date.After(last) {
			return fmt.Errorf("%w: block %s, tip %s", ErrSlotNotAfterTip, date, last)
		}
	}
	if err := c.selection(c.settings).VerifyHeader(b.Header()); err != nil {
		return fmt.Errorf("verify header %s: %w", b.ID(), err)
	}
	ledger, err := c.ledger.Apply(b.Messages())
	if err != nil {
		return fmt.Errorf("apply block %s: %w", b.ID(), err)
	}
	c.ledger = ledger
	c.settings = c.settings.Advance(b)
	c.blocks[b.ID()] = b
	return nil
}

func (c *Chain) Block(id consensus.ID) (consensus.Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.blocks[id]
	return b, ok
}

// Mempool holds messages waiting for a block, in arrival order. Messages that made it
// into a block are remembered and never queued again.
type Mempool struct {
	mu        sync.Mutex
	pending   []consensus.Message
	queued    map[consensus.ID]struct{}
	committed map[consensus.ID]struct{}
}

func NewMempool() *Mempool {
	return &Mempool{
		queued:    map[consensus.ID]struct{}{},
		committed: map[consensus.ID]struct{}{},
	}
}

// Add queues m unless it is already queued or committed.
func (p *Mempool) Add(m consensus.Message) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.queued[m.ID()]; ok {
		return false
	}
	if _, ok := p.committed[m.ID()]; ok {
		return false
	}
	p.queued[m.ID()] = struct{}{}
	p.pending = append(p.pending, m)
	return true
}

// Pending returns up to limit of the oldest messages without removing them.
func (p *Mempool) Pending(limit int) []consensus.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := min(limit, len(p.pending))
	if n <= 0 {
		return nil
	}
	return append([]consensus.Message(nil), p.pending[:n]...)
}

// Remove drops messages that made it into a block and marks them committed.
func (p *Mempool) Remove(messages []consensus.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range messages {
		p.committed[m.ID()] = struct{}{}
	}
	p.drop(messages)
}

// Reject drops messages the ledger refused. They may be submitted again later.
func (p *Mempool) Reject(messages []consensus.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drop(messages)
}

func (p *Mempool) drop(messages []consensus.Message) {
	gone := make(map[consensus.ID]struct{}, len(messages))
	for _, m := range messages {
		gone[m.ID()] = struct{}{}
		delete(p.queued, m.ID())
	}
	kept := p.pending[:0]
	for _, m := range p.pending {
		if _, ok := gone[m.ID()]; !ok {
			kept = append(kept, m)
		}
	}
	clear(p.pending[len(kept):])
	p.pending = kept
}

func (p *Mempool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
