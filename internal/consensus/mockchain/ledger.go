package mockchain

import (
	"errors"
	"fmt"
	"maps"

	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/goodnatureofminers/chainauth/internal/witness"
)

var (
	ErrDuplicateMessage     = errors.New("message already applied")
	ErrInvalidWitness       = errors.New("invalid witness")
	ErrStaleSpendingCounter = errors.New("unexpected spending counter")
	ErrForeignMessage       = errors.New("message is not a mockchain message")
)

// Ledger records applied messages and account spending counters. Apply never changes
// the receiver.
type Ledger struct {
	genesis  model.HeaderHash
	applied  map[model.Hash]struct{}
	counters map[string]model.SpendingCounter
}

var _ consensus.Ledger = (*Ledger)(nil)

// NewLedger returns the empty ledger of the chain identified by genesis.
func NewLedger(genesis model.HeaderHash) *Ledger {
	return &Ledger{
		genesis:  genesis,
		applied:  map[model.Hash]struct{}{},
		counters: map[string]model.SpendingCounter{},
	}
}

func (l *Ledger) Genesis() model.HeaderHash { return l.genesis }

// SpendingCounter returns the counter the next account witness of owner must carry.
func (l *Ledger) SpendingCounter(owner keys.PublicKey[keys.Ed25519]) model.SpendingCounter {
	return l.counters[string(owner.Bytes())]
}

// Apply validates messages in order and returns the resulting ledger.
func (l *Ledger) Apply(messages []consensus.Message) (consensus.Ledger, error) {
	next := &Ledger{
		genesis:  l.genesis,
		applied:  maps.Clone(l.applied),
		counters: maps.Clone(l.counters),
	}
	for i, m := range messages {
		msg, ok := m.(*Message)
		if !ok {
			return nil, fmt.Errorf("message %d: %w", i, ErrForeignMessage)
		}
		if _, seen := next.applied[msg.id]; seen {
			return nil, fmt.Errorf("message %s: %w", msg.id, ErrDuplicateMessage)
		}
		if msg.tx != nil {
			if err := next.applyTransaction(msg.tx); err != nil {
				return nil, fmt.Errorf("transaction %s: %w", msg.tx.id, err)
			}
		}
		next.applied[msg.id] = struct{}{}
	}
	return next, nil
}

func (l *Ledger) applyTransaction(tx *Transaction) error {
	for i, in := range tx.inputs {
		if !witness.Verify(in.Witness, l.genesis, tx.id, in.Owner) {
			return fmt.Errorf("input %d: %w", i, ErrInvalidWitness)
		}
		account, ok := in.Witness.(*witness.Account)
		if !ok {
			continue
		}
		owner := string(in.Owner.Bytes())
		expected := l.counters[owner]
		if account.SpendingCounter() != expected {
			return fmt.Errorf("input %d: %w: have %d, want %d", i, ErrStaleSpendingCounter, account.SpendingCounter(), expected)
		}
		next, err := expected.Next()
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		l.counters[owner] = next
	}
	return nil
}
