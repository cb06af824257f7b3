package mockchain

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/leadership"
)

// BFT assigns slots to a fixed list of leaders in round robin.
type BFT struct {
	leaders       []keys.PublicKey[keys.Ed25519]
	slotsPerEpoch uint32
}

var (
	_ consensus.BlockConfig[*leadership.BftLeader] = (*BFT)(nil)
	_ consensus.LeaderSelection                    = (*BFT)(nil)
)

func NewBFT(leaders []keys.PublicKey[keys.Ed25519], slotsPerEpoch uint32) (*BFT, error) {
	if len(leaders) == 0 {
		return nil, errors.New("bft needs at least one leader")
	}
	if slotsPerEpoch == 0 {
		return nil, errors.New("slots per epoch must be positive")
	}
	for i, leader := range leaders {
		if leader.IsZero() {
			return nil, fmt.Errorf("bft leader %d is not set", i)
		}
	}
	return &BFT{
		leaders:       append([]keys.PublicKey[keys.Ed25519](nil), leaders...),
		slotsPerEpoch: slotsPerEpoch,
	}, nil
}

func (c *BFT) Consensus() leadership.Consensus { return leadership.BFT }

// LeaderAt returns the leader scheduled for date.
func (c *BFT) LeaderAt(date consensus.BlockDate) keys.PublicKey[keys.Ed25519] {
	slot := dateOf(date).Absolute(c.slotsPerEpoch)
	return c.leaders[slot%uint64(len(c.leaders))]
}

func (c *BFT) MakeBlock(
	key *leadership.BftLeader,
	settings consensus.Settings,
	ledger consensus.Ledger,
	date consensus.BlockDate,
	messages []consensus.Message,
) (consensus.Block, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: no bft credential", consensus.ErrWrongCredential)
	}
	if err := c.checkDate(date); err != nil {
		return nil, err
	}
	leader := key.Public()
	if !c.LeaderAt(date).Equal(leader) {
		return nil, fmt.Errorf("%w: %s at %s", consensus.ErrNotLeader, leader, date)
	}

	header, err := prepareHeader(settings, ledger, date, messages)
	if err != nil {
		return nil, err
	}
	proof := BftProof{Leader: leader}
	proof.Signature, err = keys.Sign(key.SigKey, append(header.unsigned(), proof.signedPart()...))
	if err != nil {
		return nil, fmt.Errorf("sign header: %w", err)
	}
	header.bft = &proof
	return newBlock(header, messages), nil
}

// LeaderSelection returns c: the BFT schedule does not depend on the tip.
func (c *BFT) LeaderSelection(consensus.Settings) consensus.LeaderSelection {
	return c
}

func (c *BFT) IsLeader(credential leadership.Credential, date consensus.BlockDate) (bool, error) {
	leader, ok := credential.(*leadership.BftLeader)
	if !ok {
		return false, consensus.ErrWrongCredential
	}
	if err := c.checkDate(date); err != nil {
		return false, err
	}
	return c.LeaderAt(date).Equal(leader.Public()), nil
}

func (c *BFT) VerifyHeader(h consensus.Header) error {
	header, err := headerOf(h)
	if err != nil {
		return err
	}
	proof, ok := header.BftProof()
	if !ok {
		return fmt.Errorf("%w: header has no bft proof", consensus.ErrInvalidProof)
	}
	if err := c.checkDate(header.date); err != nil {
		return err
	}
	if !c.LeaderAt(header.date).Equal(proof.Leader) {
		return fmt.Errorf("%w: %s at %s", consensus.ErrNotLeader, proof.Leader, header.date)
	}
	if !keys.Verify(proof.Leader, append(header.unsigned(), proof.signedPart()...), proof.Signature) {
		return fmt.Errorf("%w: bad signature", consensus.ErrInvalidProof)
	}
	return nil
}

func (c *BFT) checkDate(date consensus.BlockDate) error {
	if date.Slot() >= c.slotsPerEpoch {
		return fmt.Errorf("slot %d is outside an epoch of %d slots", date.Slot(), c.slotsPerEpoch)
	}
	return nil
}
