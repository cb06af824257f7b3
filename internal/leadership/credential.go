// Package leadership defines the credentials that authorize a node to produce blocks
// and their public counterparts.
package leadership

import (
	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/model"
)

// Credential is the secret material for one consensus algorithm.
// It is implemented by *BftLeader and *GenesisLeader only.
type Credential interface {
	Consensus() Consensus
	credential()
}

var (
	_ Credential = (*BftLeader)(nil)
	_ Credential = (*GenesisLeader)(nil)
)

// BftLeader signs blocks in its slots of the BFT round robin.
type BftLeader struct {
	SigKey keys.SecretKey[keys.Ed25519]
}

func (l *BftLeader) Consensus() Consensus { return BFT }

// Public returns the key the leader schedule identifies this node by.
func (l *BftLeader) Public() keys.PublicKey[keys.Ed25519] {
	return l.SigKey.ToPublic()
}

func (l *BftLeader) credential() {}

// GenesisLeader proves slot eligibility with its VRF key and signs blocks with its
// key-evolving signature key.
type GenesisLeader struct {
	NodeID model.NodeID
	SigKey keys.SecretKey[keys.SumEd25519_12]
	VRFKey keys.SecretKey[keys.Curve25519_2HashDH]
}

func (l *GenesisLeader) Consensus() Consensus { return GenesisPraos }

// Public returns the verification keys of the leader.
func (l *GenesisLeader) Public() GenesisPraosPublic {
	return GenesisPraosPublic{
		SigKey: l.SigKey.ToPublic(),
		VRFKey: l.VRFKey.ToPublic(),
	}
}

func (l *GenesisLeader) credential() {}
