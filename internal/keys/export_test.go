package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndDerivePublic(t *testing.T) {
	ed, err := SecretKeyFromSeed[Ed25519](seed(11))
	require.NoError(t, err)
	kes, err := SecretKeyFromSeed[SumEd25519_12](seed(11))
	require.NoError(t, err)
	vrf, err := SecretKeyFromSeed[Curve25519_2HashDH](seed(11))
	require.NoError(t, err)

	tests := []struct {
		name       string
		algorithm  string
		wantSecret string
		wantPublic string
	}{
		{name: "ed25519", algorithm: "ed25519", wantSecret: ed.Bech32(), wantPublic: ed.ToPublic().Bech32()},
		{name: "kes", algorithm: "SUMED25519_12", wantSecret: kes.Bech32(), wantPublic: kes.ToPublic().Bech32()},
		{name: "vrf", algorithm: "curve25519_2hashdh", wantSecret: vrf.Bech32(), wantPublic: vrf.ToPublic().Bech32()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alg, ok := AlgorithmByName(tt.algorithm)
			require.True(t, ok)

			secret, err := GenerateBech32(alg, seed(11))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSecret, secret)

			public, err := PublicBech32(secret + "\n")
			require.NoError(t, err)
			assert.Equal(t, tt.wantPublic, public)
		})
	}
}

func TestPublicBech32_Errors(t *testing.T) {
	_, ok := AlgorithmByName("rsa")
	assert.False(t, ok)

	alg, _ := AlgorithmByName("ed25519")
	_, err := GenerateBech32(alg, []byte{1})
	require.Error(t, err)

	ed, err := SecretKeyFromSeed[Ed25519](seed(12))
	require.NoError(t, err)
	_, err = PublicBech32(ed.ToPublic().Bech32())
	require.ErrorIs(t, err, ErrUnknownPrefix)

	_, err = PublicBech32("not bech32")
	require.ErrorIs(t, err, ErrEncoding)

	short, err := EncodeBech32(Ed25519{}.SecretPrefix(), []byte{1, 2})
	require.NoError(t, err)
	_, err = PublicBech32(short)
	require.ErrorIs(t, err, ErrInvalidKeySize)
}
