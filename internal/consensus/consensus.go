// Package consensus declares the seam between a concrete chain and the leadership
// credentials that produce its blocks. All values crossing it are immutable and may be
// shared between goroutines.
package consensus

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/chainauth/internal/leadership"
)

var (
	// ErrNotLeader is returned when a block is made or verified for a slot its signer
	// was not elected for.
	ErrNotLeader = errors.New("not the slot leader")
	// ErrInvalidProof is returned by VerifyHeader when the leadership proof does not check.
	ErrInvalidProof = errors.New("invalid leadership proof")
	// ErrWrongCredential is returned when a credential of another consensus is supplied.
	ErrWrongCredential = errors.New("credential does not match consensus")
)

// ID identifies a block, message or transaction. Implementations must be comparable.
type ID interface {
	Bytes() []byte
	String() string
}

// BlockDate is a slot position on the chain.
type BlockDate interface {
	fmt.Stringer
	Epoch() uint32
	Slot() uint32
}

type Header interface {
	ID() ID
	ParentID() ID
	Date() BlockDate
	ChainLength() uint32
}

type Block interface {
	ID() ID
	Header() Header
	Messages() []Message
}

type Message interface {
	ID() ID
	// Transaction returns the transaction carried by the message, if any.
	Transaction() (Transaction, bool)
}

type Transaction interface {
	ID() ID
}

// Ledger is the state blocks are applied to. Apply returns a new Ledger.
type Ledger interface {
	Apply(messages []Message) (Ledger, error)
}

// Settings are the chain parameters in force at the tip.
type Settings interface {
	Tip() ID
	ChainLength() uint32
	MaxMessagesPerBlock() int
}

// LeaderSelection decides and checks who may produce the block of a slot.
type LeaderSelection interface {
	IsLeader(credential leadership.Credential, date BlockDate) (bool, error)
	VerifyHeader(header Header) error
}

// Update changes Settings.
type Update interface {
	Apply(settings Settings) (Settings, error)
}

// Gossip is what a node announces about itself to its peers.
type Gossip interface {
	ID() ID
	Bytes() []byte
}

// BlockConfig ties a chain's blocks and leader selection to the credential type K that
// signs them.
type BlockConfig[K leadership.Credential] interface {
	Consensus() leadership.Consensus
	MakeBlock(key K, settings Settings, ledger Ledger, date BlockDate, messages []Message) (Block, error)
	LeaderSelection(settings Settings) LeaderSelection
}

// CredentialFor narrows a credential to the type a BlockConfig signs with.
func CredentialFor[K leadership.Credential](config BlockConfig[K], credential leadership.Credential) (K, error) {
	var zero K
	if credential == nil {
		return zero, fmt.Errorf("%w: no %s credential", ErrWrongCredential, config.Consensus())
	}
	key, ok := credential.(K)
	if !ok || credential.Consensus() != config.Consensus() {
		return zero, fmt.Errorf("%w: have %s, need %s", ErrWrongCredential, credential.Consensus(), config.Consensus())
	}
	return key, nil
}
