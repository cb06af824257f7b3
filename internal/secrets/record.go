// Package secrets loads the node secrets file and exposes it as leadership credentials.
package secrets

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/leadership"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"gopkg.in/yaml.v3"
)

// Field names as they appear in the secrets file.
const (
	FieldBftSigningKey = "bft.signing_key"
	FieldGenesisNodeID = "genesis.node_id"
	FieldGenesisSigKey = "genesis.sig_key"
	FieldGenesisVRFKey = "genesis.vrf_key"
)

// FieldError reports which field of the secrets file failed to decode.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }

// LoadError reports a secrets source that could not be read or decoded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load secrets from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Record is a decoded secrets file. Absent blocks are nil.
type Record struct {
	Bft     *leadership.BftLeader
	Genesis *leadership.GenesisLeader
}

type fileRecord struct {
	Bft *struct {
		SigningKey string `yaml:"signing_key"`
	} `yaml:"bft"`
	Genesis *struct {
		NodeID string `yaml:"node_id"`
		SigKey string `yaml:"sig_key"`
		VRFKey string `yaml:"vrf_key"`
	} `yaml:"genesis"`
}

// Decode reads a YAML secrets record from r. Unknown fields are rejected and an empty
// document is a valid record with no credential. source names r in errors.
func Decode(r io.Reader, source string) (*Record, error) {
	var raw fileRecord
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, &LoadError{Source: source, Err: err}
	}

	record := &Record{}
	if raw.Bft != nil {
		sigKey, err := keys.SecretKeyFromBech32[keys.Ed25519](raw.Bft.SigningKey)
		if err != nil {
			return nil, loadFieldError(source, FieldBftSigningKey, err)
		}
		record.Bft = &leadership.BftLeader{SigKey: sigKey}
	}
	if raw.Genesis != nil {
		nodeID, err := model.ParseNodeID(raw.Genesis.NodeID)
		if err != nil {
			return nil, loadFieldError(source, FieldGenesisNodeID, err)
		}
		sigKey, err := keys.SecretKeyFromBech32[keys.SumEd25519_12](raw.Genesis.SigKey)
		if err != nil {
			return nil, loadFieldError(source, FieldGenesisSigKey, err)
		}
		vrfKey, err := keys.SecretKeyFromBech32[keys.Curve25519_2HashDH](raw.Genesis.VRFKey)
		if err != nil {
			return nil, loadFieldError(source, FieldGenesisVRFKey, err)
		}
		record.Genesis = &leadership.GenesisLeader{NodeID: nodeID, SigKey: sigKey, VRFKey: vrfKey}
	}
	return record, nil
}

func loadFieldError(source, field string, err error) error {
	return &LoadError{Source: source, Err: &FieldError{Field: field, Err: err}}
}

// LoadFile decodes the secrets file at path.
func LoadFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	return Decode(f, path)
}
