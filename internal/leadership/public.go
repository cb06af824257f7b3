package leadership

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/goodnatureofminers/chainauth/pkg/safe"
	"gopkg.in/yaml.v3"
)

// GenesisPraosPublic holds the verification keys of a Genesis-Praos leader.
type GenesisPraosPublic struct {
	SigKey keys.PublicKey[keys.SumEd25519_12]      `json:"sig_key"`
	VRFKey keys.PublicKey[keys.Curve25519_2HashDH] `json:"vrf_key"`
}

// UnmarshalYAML decodes both keys from their bech32 text.
func (p *GenesisPraosPublic) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		SigKey string `yaml:"sig_key"`
		VRFKey string `yaml:"vrf_key"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	sigKey, err := keys.PublicKeyFromBech32[keys.SumEd25519_12](raw.SigKey)
	if err != nil {
		return fmt.Errorf("sig_key: %w", err)
	}
	vrfKey, err := keys.PublicKeyFromBech32[keys.Curve25519_2HashDH](raw.VRFKey)
	if err != nil {
		return fmt.Errorf("vrf_key: %w", err)
	}
	*p = GenesisPraosPublic{SigKey: sigKey, VRFKey: vrfKey}
	return nil
}

// MarshalYAML encodes both keys as bech32 text.
func (p GenesisPraosPublic) MarshalYAML() (interface{}, error) {
	return map[string]string{
		"sig_key": p.SigKey.Bech32(),
		"vrf_key": p.VRFKey.Bech32(),
	}, nil
}

// OwnerKey is the key of a stake pool owner.
type OwnerKey struct {
	Key keys.PublicKey[keys.Ed25519]
}

func (o *OwnerKey) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	key, err := keys.PublicKeyFromBech32[keys.Ed25519](text)
	if err != nil {
		return fmt.Errorf("owner key: %w", err)
	}
	o.Key = key
	return nil
}

func (o OwnerKey) MarshalYAML() (interface{}, error) {
	return o.Key.Bech32(), nil
}

// Serial is an unsigned 128 bit stake pool serial number.
type Serial struct {
	Hi, Lo uint64
}

// ParseSerial decodes a decimal serial.
func ParseSerial(value string) (Serial, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
	if !ok || n.Sign() < 0 || n.BitLen() > 128 {
		return Serial{}, fmt.Errorf("serial %q is not an unsigned 128 bit integer", value)
	}
	lo := new(big.Int).And(n, new(big.Int).SetUint64(^uint64(0)))
	return Serial{Hi: new(big.Int).Rsh(n, 64).Uint64(), Lo: lo.Uint64()}, nil
}

// Bytes returns the 16 byte big-endian encoding.
func (s Serial) Bytes() []byte {
	out := make([]byte, 16)
	binary.BigEndian.PutUint64(out[:8], s.Hi)
	binary.BigEndian.PutUint64(out[8:], s.Lo)
	return out
}

func (s Serial) String() string {
	return new(big.Int).SetBytes(s.Bytes()).String()
}

func (s *Serial) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: serial must be a scalar", value.Line)
	}
	parsed, err := ParseSerial(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = parsed
	return nil
}

func (s Serial) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s.String()}, nil
}

// PoolID identifies a stake pool by the hash of its registration.
type PoolID model.Hash

func (id PoolID) String() string { return model.Hash(id).String() }

// StakePoolInfo is the registration certificate of a stake pool.
type StakePoolInfo struct {
	Serial     Serial             `yaml:"serial"`
	Owners     []OwnerKey         `yaml:"owners"`
	InitialKey GenesisPraosPublic `yaml:"initial_key"`
}

// MarshalBinary returns serial ‖ owner count ‖ owners ‖ KES key ‖ VRF key.
func (i StakePoolInfo) MarshalBinary() ([]byte, error) {
	if len(i.Owners) == 0 {
		return nil, errors.New("stake pool has no owner")
	}
	count, err := safe.Uint8(len(i.Owners))
	if err != nil {
		return nil, fmt.Errorf("owners: %w", err)
	}
	if i.InitialKey.SigKey.IsZero() || i.InitialKey.VRFKey.IsZero() {
		return nil, errors.New("stake pool initial key is not set")
	}

	out := append(i.Serial.Bytes(), count)
	for idx, owner := range i.Owners {
		if owner.Key.IsZero() {
			return nil, fmt.Errorf("owner %d is not set", idx)
		}
		out = append(out, owner.Key.Bytes()...)
	}
	out = append(out, i.InitialKey.SigKey.Bytes()...)
	return append(out, i.InitialKey.VRFKey.Bytes()...), nil
}

// ID hashes the binary registration.
func (i StakePoolInfo) ID() (PoolID, error) {
	data, err := i.MarshalBinary()
	if err != nil {
		return PoolID{}, err
	}
	return PoolID(model.HashBytes(data)), nil
}

// NodePublic is everything about a node's credentials that is safe to show.
type NodePublic struct {
	BftPublicKey *keys.PublicKey[keys.Ed25519] `json:"bft_public_key,omitempty"`
	Genesis      *GenesisNodePublic            `json:"genesis,omitempty"`
}

// GenesisNodePublic is the public part of a GenesisLeader.
type GenesisNodePublic struct {
	NodeID model.NodeID                            `json:"node_id"`
	SigKey keys.PublicKey[keys.SumEd25519_12]      `json:"sig_key"`
	VRFKey keys.PublicKey[keys.Curve25519_2HashDH] `json:"vrf_key"`
}
