package keys

import (
	"fmt"
	"strings"
)

// AlgorithmByName finds an algorithm by its name, ignoring case.
func AlgorithmByName(name string) (Algorithm, bool) {
	for _, a := range allAlgorithms() {
		if strings.EqualFold(a.Name(), name) {
			return a, true
		}
	}
	return nil, false
}

// GenerateBech32 derives a secret key of alg from seed and returns its bech32 text.
func GenerateBech32(alg Algorithm, seed []byte) (string, error) {
	if len(seed) != SeedSize {
		return "", fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	return EncodeBech32(alg.SecretPrefix(), alg.generate(seed))
}

// PublicBech32 returns the bech32 public key of a bech32 secret key of any algorithm.
func PublicBech32(secret string) (string, error) {
	prefix, data, err := DecodeBech32(secret)
	if err != nil {
		return "", err
	}
	alg, ok := algorithmBySecretPrefix(prefix)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPrefix, prefix)
	}
	if len(data) != alg.secretSize() {
		return "", fmt.Errorf("%w: %s secret key must be %d bytes, got %d",
			ErrInvalidKeySize, alg.Name(), alg.secretSize(), len(data))
	}
	if err := alg.checkSecret(data); err != nil {
		return "", err
	}
	return EncodeBech32(alg.PublicPrefix(), alg.toPublic(data))
}
