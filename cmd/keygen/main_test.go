package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeygen(t *testing.T) {
	seedHex := strings.Repeat("07", keys.SeedSize)
	ed, err := keys.SecretKeyFromSeed[keys.Ed25519](bytes.Repeat([]byte{7}, keys.SeedSize))
	require.NoError(t, err)
	vrf, err := keys.SecretKeyFromSeed[keys.Curve25519_2HashDH](bytes.Repeat([]byte{7}, keys.SeedSize))
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr bool
	}{
		{
			name: "generate ed25519 from seed",
			args: []string{"generate", "--seed", seedHex},
			want: ed.Bech32(),
		},
		{
			name: "generate vrf from seed",
			args: []string{"generate", "--type", "curve25519_2hashdh", "--seed", seedHex},
			want: vrf.Bech32(),
		},
		{
			name:  "derive public from stdin",
			args:  []string{"to-public"},
			stdin: ed.Bech32() + "\n",
			want:  ed.ToPublic().Bech32(),
		},
		{
			name:    "reject short seed",
			args:    []string{"generate", "--seed", "0102"},
			wantErr: true,
		},
		{
			name:    "reject unknown type",
			args:    []string{"generate", "--type", "rsa"},
			wantErr: true,
		},
		{
			name:    "reject public key input",
			args:    []string{"to-public"},
			stdin:   ed.ToPublic().Bech32(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			parser, err := newParser(bytes.NewReader(bytes.Repeat([]byte{1}, keys.SeedSize)), strings.NewReader(tt.stdin), &stdout)
			require.NoError(t, err)

			_, err = parser.ParseArgs(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, stdout.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", stdout.String())
		})
	}
}

func TestKeygen_RandomSeed(t *testing.T) {
	var stdout bytes.Buffer
	random := bytes.NewReader(bytes.Repeat([]byte{9}, keys.SeedSize))
	parser, err := newParser(random, strings.NewReader(""), &stdout)
	require.NoError(t, err)

	_, err = parser.ParseArgs([]string{"generate", "--type", "sumed25519_12"})
	require.NoError(t, err)

	secret := strings.TrimSpace(stdout.String())
	sk, err := keys.SecretKeyFromBech32[keys.SumEd25519_12](secret)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), keys.KESPeriod(sk))
}
