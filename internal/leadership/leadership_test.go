package leadership

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func seed(b byte) []byte {
	return bytes.Repeat([]byte{b}, keys.SeedSize)
}

func genesisLeader(t *testing.T) *GenesisLeader {
	t.Helper()
	sigKey, err := keys.SecretKeyFromSeed[keys.SumEd25519_12](seed(1))
	require.NoError(t, err)
	vrfKey, err := keys.SecretKeyFromSeed[keys.Curve25519_2HashDH](seed(2))
	require.NoError(t, err)
	return &GenesisLeader{
		NodeID: model.NodeID(model.HashBytes([]byte("node"))),
		SigKey: sigKey,
		VRFKey: vrfKey,
	}
}

func TestParseConsensus(t *testing.T) {
	tests := []struct {
		value   string
		want    Consensus
		wantErr bool
	}{
		{value: "bft", want: BFT},
		{value: "BFT", want: BFT},
		{value: "genesis", want: GenesisPraos},
		{value: "genesis-praos", want: GenesisPraos},
		{value: "pow", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var c Consensus
			err := c.UnmarshalFlag(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestCredentials(t *testing.T) {
	bftKey, err := keys.SecretKeyFromSeed[keys.Ed25519](seed(3))
	require.NoError(t, err)
	bft := &BftLeader{SigKey: bftKey}
	genesis := genesisLeader(t)

	for _, c := range []Credential{bft, genesis} {
		switch leader := c.(type) {
		case *BftLeader:
			assert.Equal(t, BFT, leader.Consensus())
			assert.True(t, leader.Public().Equal(bftKey.ToPublic()))
		case *GenesisLeader:
			assert.Equal(t, GenesisPraos, leader.Consensus())
			public := leader.Public()
			assert.True(t, public.SigKey.Equal(genesis.SigKey.ToPublic()))
			assert.True(t, public.VRFKey.Equal(genesis.VRFKey.ToPublic()))
		}
	}

	out := fmt.Sprintf("%+v %v", bft, genesis)
	assert.NotContains(t, out, bftKey.Bech32()[len("ed25519_sk1"):])
	assert.Contains(t, out, "redacted")
}

func TestStakePoolInfo(t *testing.T) {
	leader := genesisLeader(t)
	owner, err := keys.SecretKeyFromSeed[keys.Ed25519](seed(4))
	require.NoError(t, err)
	public := leader.Public()

	doc := fmt.Sprintf(`
serial: 340282366920938463463374607431768211455
owners:
  - %s
initial_key:
  sig_key: %s
  vrf_key: %s
`, owner.ToPublic().Bech32(), public.SigKey.Bech32(), public.VRFKey.Bech32())

	var info StakePoolInfo
	require.NoError(t, yaml.Unmarshal([]byte(doc), &info))
	assert.Equal(t, Serial{Hi: ^uint64(0), Lo: ^uint64(0)}, info.Serial)
	require.Len(t, info.Owners, 1)
	assert.True(t, info.Owners[0].Key.Equal(owner.ToPublic()))
	assert.True(t, info.InitialKey.SigKey.Equal(public.SigKey))

	raw, err := info.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, raw, 16+1+32+32+32)

	id, err := info.ID()
	require.NoError(t, err)
	again, err := info.ID()
	require.NoError(t, err)
	assert.Equal(t, id, again)

	info.Serial = Serial{Lo: 1}
	other, err := info.ID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	encoded, err := yaml.Marshal(info)
	require.NoError(t, err)
	var decoded StakePoolInfo
	require.NoError(t, yaml.Unmarshal(encoded, &decoded))
	assert.Equal(t, info.Serial, decoded.Serial)
	assert.True(t, decoded.InitialKey.VRFKey.Equal(public.VRFKey))
}

func TestStakePoolInfo_Errors(t *testing.T) {
	public := genesisLeader(t).Public()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "negative serial", doc: "serial: -1"},
		{name: "serial overflow", doc: "serial: 340282366920938463463374607431768211456"},
		{name: "owner is a secret key", doc: "owners: [ed25519_sk1qqqqqq]"},
		{name: "vrf key in kes slot", doc: fmt.Sprintf("initial_key:\n  sig_key: %s\n  vrf_key: %s", public.VRFKey.Bech32(), public.VRFKey.Bech32())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var info StakePoolInfo
			require.Error(t, yaml.Unmarshal([]byte(tt.doc), &info))
		})
	}

	_, err := StakePoolInfo{InitialKey: public}.ID()
	require.Error(t, err, "no owners")
	_, err = StakePoolInfo{Owners: []OwnerKey{{}}, InitialKey: public}.ID()
	require.Error(t, err, "zero owner")
}

func TestNodePublicJSON(t *testing.T) {
	leader := genesisLeader(t)
	public := leader.Public()
	node := NodePublic{
		Genesis: &GenesisNodePublic{NodeID: leader.NodeID, SigKey: public.SigKey, VRFKey: public.VRFKey},
	}

	data, err := json.Marshal(node)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bft_public_key")
	assert.Contains(t, string(data), leader.NodeID.String())
	assert.Contains(t, string(data), public.SigKey.Bech32())
	assert.NotContains(t, string(data), "_sk1")
}
