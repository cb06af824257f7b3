package mockchain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/leadership"
	"github.com/goodnatureofminers/chainauth/internal/model"
)

// Praos elects slot leaders by VRF among registered pools of equal stake.
// Blocks are signed with the KES key evolved to the epoch of the slot.
type Praos struct {
	nonce         model.Hash
	slotsPerEpoch uint32
	threshold     uint64
	pools         map[model.NodeID]leadership.GenesisPraosPublic
}

var (
	_ consensus.BlockConfig[*leadership.GenesisLeader] = (*Praos)(nil)
	_ consensus.LeaderSelection                        = (*Praos)(nil)
)

// NewPraos builds the configuration. activeSlotCoeff is the probability that a slot has
// at least one leader and must be in (0, 1].
func NewPraos(
	nonce model.HeaderHash,
	slotsPerEpoch uint32,
	activeSlotCoeff float64,
	pools map[model.NodeID]leadership.GenesisPraosPublic,
) (*Praos, error) {
	if slotsPerEpoch == 0 {
		return nil, errors.New("slots per epoch must be positive")
	}
	if !(activeSlotCoeff > 0 && activeSlotCoeff <= 1) {
		return nil, fmt.Errorf("active slot coefficient %v must be in (0, 1]", activeSlotCoeff)
	}
	if len(pools) == 0 {
		return nil, errors.New("praos needs at least one pool")
	}
	registered := make(map[model.NodeID]leadership.GenesisPraosPublic, len(pools))
	for id, pool := range pools {
		if pool.SigKey.IsZero() || pool.VRFKey.IsZero() {
			return nil, fmt.Errorf("pool %s has no keys", id)
		}
		registered[id] = pool
	}

	// Every pool holds 1/n of the stake: phi = 1 - (1 - f)^(1/n).
	phi := 1 - math.Pow(1-activeSlotCoeff, 1/float64(len(pools)))
	threshold := uint64(math.MaxUint64)
	if limit := phi * math.Exp2(64); limit < math.Exp2(64) {
		threshold = uint64(limit)
	}

	return &Praos{
		nonce:         model.Hash(nonce),
		slotsPerEpoch: slotsPerEpoch,
		threshold:     threshold,
		pools:         registered,
	}, nil
}

func (c *Praos) Consensus() leadership.Consensus { return leadership.GenesisPraos }

func (c *Praos) MakeBlock(
	key *leadership.GenesisLeader,
	settings consensus.Settings,
	ledger consensus.Ledger,
	date consensus.BlockDate,
	messages []consensus.Message,
) (consensus.Block, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: no genesis credential", consensus.ErrWrongCredential)
	}
	vrfProof, elected, err := c.evaluate(key, date)
	if err != nil {
		return nil, err
	}
	if !elected {
		return nil, fmt.Errorf("%w: node %s at %s", consensus.ErrNotLeader, key.NodeID, date)
	}

	sigKey, err := keys.EvolveKES(key.SigKey, c.kesPeriod(date))
	if err != nil {
		return nil, fmt.Errorf("evolve kes key to %s: %w", date, err)
	}
	header, err := prepareHeader(settings, ledger, date, messages)
	if err != nil {
		return nil, err
	}
	proof := PraosProof{NodeID: key.NodeID, VRFProof: vrfProof}
	proof.Signature, err = keys.Sign(sigKey, append(header.unsigned(), proof.signedPart()...))
	if err != nil {
		return nil, fmt.Errorf("sign header: %w", err)
	}
	header.praos = &proof
	return newBlock(header, messages), nil
}

// LeaderSelection returns c: the mock chain keeps one nonce for every epoch.
func (c *Praos) LeaderSelection(consensus.Settings) consensus.LeaderSelection {
	return c
}

func (c *Praos) IsLeader(credential leadership.Credential, date consensus.BlockDate) (bool, error) {
	leader, ok := credential.(*leadership.GenesisLeader)
	if !ok {
		return false, consensus.ErrWrongCredential
	}
	_, elected, err := c.evaluate(leader, date)
	return elected, err
}

func (c *Praos) VerifyHeader(h consensus.Header) error {
	header, err := headerOf(h)
	if err != nil {
		return err
	}
	proof, ok := header.PraosProof()
	if !ok {
		return fmt.Errorf("%w: header has no praos proof", consensus.ErrInvalidProof)
	}
	if err := c.checkDate(header.date); err != nil {
		return err
	}
	pool, ok := c.pools[proof.NodeID]
	if !ok {
		return fmt.Errorf("%w: unknown node %s", consensus.ErrInvalidProof, proof.NodeID)
	}
	output, ok := keys.VerifyVRF(pool.VRFKey, c.vrfInput(header.date), proof.VRFProof)
	if !ok {
		return fmt.Errorf("%w: bad vrf proof", consensus.ErrInvalidProof)
	}
	if !c.eligible(output) {
		return fmt.Errorf("%w: node %s at %s", consensus.ErrNotLeader, proof.NodeID, header.date)
	}
	if period := keys.KESSignaturePeriod(proof.Signature); period != c.kesPeriod(header.date) {
		return fmt.Errorf("%w: signed at kes period %d, slot is in %d", consensus.ErrInvalidProof, period, c.kesPeriod(header.date))
	}
	if !keys.Verify(pool.SigKey, append(header.unsigned(), proof.signedPart()...), proof.Signature) {
		return fmt.Errorf("%w: bad signature", consensus.ErrInvalidProof)
	}
	return nil
}

func (c *Praos) evaluate(key *leadership.GenesisLeader, date consensus.BlockDate) (keys.VRFProof, bool, error) {
	if err := c.checkDate(date); err != nil {
		return keys.VRFProof{}, false, err
	}
	pool, ok := c.pools[key.NodeID]
	if !ok {
		return keys.VRFProof{}, false, nil
	}
	public := key.Public()
	if !pool.SigKey.Equal(public.SigKey) || !pool.VRFKey.Equal(public.VRFKey) {
		return keys.VRFProof{}, false, fmt.Errorf("%w: keys of node %s differ from its registration", consensus.ErrWrongCredential, key.NodeID)
	}
	output, proof, err := keys.EvaluateVRF(key.VRFKey, c.vrfInput(date))
	if err != nil {
		return keys.VRFProof{}, false, fmt.Errorf("evaluate vrf: %w", err)
	}
	return proof, c.eligible(output), nil
}

func (c *Praos) eligible(output keys.VRFOutput) bool {
	return binary.BigEndian.Uint64(output[:8]) < c.threshold || c.threshold == math.MaxUint64
}

func (c *Praos) vrfInput(date consensus.BlockDate) []byte {
	return append(c.nonce.Bytes(), dateOf(date).bytes()...)
}

// kesPeriod maps a slot to the KES period it is signed in: one period per epoch.
func (c *Praos) kesPeriod(date consensus.BlockDate) uint32 {
	return date.Epoch()
}

func (c *Praos) checkDate(date consensus.BlockDate) error {
	if date.Slot() >= c.slotsPerEpoch {
		return fmt.Errorf("slot %d is outside an epoch of %d slots", date.Slot(), c.slotsPerEpoch)
	}
	return nil
}
