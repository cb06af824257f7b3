package secrets

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSecrets struct {
	bft    keys.SecretKey[keys.Ed25519]
	nodeID model.NodeID
	kes    keys.SecretKey[keys.SumEd25519_12]
	vrf    keys.SecretKey[keys.Curve25519_2HashDH]
}

func newTestSecrets(t *testing.T) testSecrets {
	t.Helper()
	seed := func(b byte) []byte { return bytes.Repeat([]byte{b}, keys.SeedSize) }

	bft, err := keys.SecretKeyFromSeed[keys.Ed25519](seed(1))
	require.NoError(t, err)
	kes, err := keys.SecretKeyFromSeed[keys.SumEd25519_12](seed(2))
	require.NoError(t, err)
	vrf, err := keys.SecretKeyFromSeed[keys.Curve25519_2HashDH](seed(3))
	require.NoError(t, err)
	return testSecrets{
		bft:    bft,
		nodeID: model.NodeID(model.HashBytes([]byte("node"))),
		kes:    kes,
		vrf:    vrf,
	}
}

func (s testSecrets) bftYAML() string {
	return fmt.Sprintf("bft:\n  signing_key: %s\n", s.bft.Bech32())
}

func (s testSecrets) genesisYAML(nodeID, sigKey, vrfKey string) string {
	return fmt.Sprintf("genesis:\n  node_id: %s\n  sig_key: %s\n  vrf_key: %s\n", nodeID, sigKey, vrfKey)
}

func TestDecode(t *testing.T) {
	s := newTestSecrets(t)
	genesis := s.genesisYAML(s.nodeID.String(), s.kes.Bech32(), s.vrf.Bech32())

	tests := []struct {
		name        string
		doc         string
		wantBft     bool
		wantGenesis bool
		wantLoadErr bool
		wantField   string
		wantErr     error
	}{
		{name: "empty document", doc: ""},
		{name: "empty mapping", doc: "{}"},
		{name: "bft only", doc: s.bftYAML(), wantBft: true},
		{name: "genesis only", doc: genesis, wantGenesis: true},
		{name: "both", doc: s.bftYAML() + genesis, wantBft: true, wantGenesis: true},
		{
			name:        "bft key with bad checksum",
			doc:         "bft:\n  signing_key: " + s.bft.Bech32()[:30] + "\n",
			wantLoadErr: true,
			wantField:   FieldBftSigningKey,
			wantErr:     keys.ErrEncoding,
		},
		{
			name:        "bft key of the wrong algorithm",
			doc:         "bft:\n  signing_key: " + s.vrf.Bech32() + "\n",
			wantLoadErr: true,
			wantField:   FieldBftSigningKey,
			wantErr:     keys.ErrAlgorithmMismatch,
		},
		{
			name:        "bft block without key",
			doc:         "bft: {}\n",
			wantLoadErr: true,
			wantField:   FieldBftSigningKey,
			wantErr:     keys.ErrEncoding,
		},
		{
			name:        "bad node id",
			doc:         s.genesisYAML("abcd", s.kes.Bech32(), s.vrf.Bech32()),
			wantLoadErr: true,
			wantField:   FieldGenesisNodeID,
		},
		{
			name:        "ed25519 key as kes key",
			doc:         s.genesisYAML(s.nodeID.String(), s.bft.Bech32(), s.vrf.Bech32()),
			wantLoadErr: true,
			wantField:   FieldGenesisSigKey,
			wantErr:     keys.ErrAlgorithmMismatch,
		},
		{
			name:        "vrf public key as vrf secret",
			doc:         s.genesisYAML(s.nodeID.String(), s.kes.Bech32(), s.vrf.ToPublic().Bech32()),
			wantLoadErr: true,
			wantField:   FieldGenesisVRFKey,
			wantErr:     keys.ErrAlgorithmMismatch,
		},
		{name: "unknown field", doc: "praos: {}\n", wantLoadErr: true},
		{name: "not yaml", doc: "bft: [\n", wantLoadErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := Decode(strings.NewReader(tt.doc), "test.yaml")
			if tt.wantLoadErr {
				require.Error(t, err)
				assert.Nil(t, record)

				var loadErr *LoadError
				require.True(t, errors.As(err, &loadErr))
				assert.Equal(t, "test.yaml", loadErr.Source)
				if tt.wantField != "" {
					var fieldErr *FieldError
					require.True(t, errors.As(err, &fieldErr))
					assert.Equal(t, tt.wantField, fieldErr.Field)
					assert.Contains(t, err.Error(), tt.wantField)
				}
				if tt.wantErr != nil {
					require.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBft, record.Bft != nil)
			assert.Equal(t, tt.wantGenesis, record.Genesis != nil)
		})
	}
}

func TestDecode_ErrorsNeverContainSecrets(t *testing.T) {
	s := newTestSecrets(t)
	kes := s.kes.Bech32()
	// A KES secret where a VRF secret belongs.
	doc := s.genesisYAML(s.nodeID.String(), kes, kes)

	_, err := Decode(strings.NewReader(doc), "node.yaml")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), kes[len("kes25519-12-sk1"):len("kes25519-12-sk1")+16])
}
