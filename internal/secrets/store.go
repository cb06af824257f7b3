package secrets

import (
	"github.com/goodnatureofminers/chainauth/internal/leadership"
)

// Store holds the node credentials. It is never modified after Load and is safe for
// concurrent use.
type Store struct {
	bft     *leadership.BftLeader
	genesis *leadership.GenesisLeader
}

// Load builds a Store from a decoded record. A nil record yields an empty store.
func Load(record *Record) *Store {
	s := &Store{}
	if record == nil {
		return s
	}
	if record.Bft != nil {
		bft := *record.Bft
		s.bft = &bft
	}
	if record.Genesis != nil {
		genesis := *record.Genesis
		s.genesis = &genesis
	}
	return s
}

// BftLeader returns the BFT credential, if the node has one.
func (s *Store) BftLeader() (*leadership.BftLeader, bool) {
	if s.bft == nil {
		return nil, false
	}
	bft := *s.bft
	return &bft, true
}

// GenesisLeader returns the Genesis-Praos credential, if the node has one.
func (s *Store) GenesisLeader() (*leadership.GenesisLeader, bool) {
	if s.genesis == nil {
		return nil, false
	}
	genesis := *s.genesis
	return &genesis, true
}

// Credential returns the credential for the given consensus.
func (s *Store) Credential(consensus leadership.Consensus) (leadership.Credential, bool) {
	switch consensus {
	case leadership.BFT:
		if leader, ok := s.BftLeader(); ok {
			return leader, true
		}
	case leadership.GenesisPraos:
		if leader, ok := s.GenesisLeader(); ok {
			return leader, true
		}
	}
	return nil, false
}

// Public projects the store onto its verification keys.
func (s *Store) Public() leadership.NodePublic {
	var public leadership.NodePublic
	if s.bft != nil {
		pk := s.bft.Public()
		public.BftPublicKey = &pk
	}
	if s.genesis != nil {
		keys := s.genesis.Public()
		public.Genesis = &leadership.GenesisNodePublic{
			NodeID: s.genesis.NodeID,
			SigKey: keys.SigKey,
			VRFKey: keys.VRFKey,
		}
	}
	return public
}
