// Package keys holds the typed key material used to authorize transactions and blocks.
//
// Keys are parameterized by an algorithm marker. The set of markers is closed: only
// Ed25519, SumEd25519_12 and Curve25519_2HashDH satisfy Algorithm, and only the first
// two satisfy SigningAlgorithm, so a VRF key cannot be used where a signing key is
// expected.
package keys

import "errors"

var (
	// ErrEncoding is returned when a bech32 string is malformed or its checksum is wrong.
	ErrEncoding = errors.New("invalid bech32 encoding")
	// ErrAlgorithmMismatch is returned when a key of another algorithm is supplied.
	ErrAlgorithmMismatch = errors.New("key algorithm mismatch")
	// ErrUnknownPrefix is returned when a bech32 prefix does not name any key type.
	ErrUnknownPrefix = errors.New("unknown key prefix")
	// ErrInvalidKeySize is returned when decoded key bytes have the wrong length.
	ErrInvalidKeySize = errors.New("invalid key size")
	// ErrInvalidKey is returned when key bytes have the right length but are not a valid key.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidSignatureSize is returned when decoded signature bytes have the wrong length.
	ErrInvalidSignatureSize = errors.New("invalid signature size")
	// ErrKeyExhausted is returned when a key-evolving key has no period left.
	ErrKeyExhausted = errors.New("key evolution exhausted")
)

// SeedSize is the size of the seed every key is generated from.
const SeedSize = 32

// Algorithm is implemented by the algorithm markers of this package.
type Algorithm interface {
	Name() string
	// SecretPrefix is the bech32 human readable prefix of secret keys.
	SecretPrefix() string
	// PublicPrefix is the bech32 human readable prefix of public keys.
	PublicPrefix() string

	secretSize() int
	publicSize() int
	generate(seed []byte) []byte
	toPublic(secret []byte) []byte
	checkSecret(secret []byte) error
	checkPublic(public []byte) error
}

// SigningAlgorithm is an Algorithm whose secret keys produce signatures.
type SigningAlgorithm interface {
	Algorithm
	signatureSize() int
	sign(secret, message []byte) ([]byte, error)
	verify(public, message, signature []byte) bool
}

var (
	_ SigningAlgorithm = Ed25519{}
	_ SigningAlgorithm = SumEd25519_12{}
	_ Algorithm        = Curve25519_2HashDH{}
)

func algorithmOf[A Algorithm]() A {
	var a A
	return a
}

// algorithmBySecretPrefix and algorithmByPublicPrefix let decoders tell a key of the
// wrong algorithm apart from an unknown prefix.
func algorithmBySecretPrefix(prefix string) (Algorithm, bool) {
	for _, a := range allAlgorithms() {
		if a.SecretPrefix() == prefix {
			return a, true
		}
	}
	return nil, false
}

func algorithmByPublicPrefix(prefix string) (Algorithm, bool) {
	for _, a := range allAlgorithms() {
		if a.PublicPrefix() == prefix {
			return a, true
		}
	}
	return nil, false
}

func allAlgorithms() []Algorithm {
	return []Algorithm{Ed25519{}, SumEd25519_12{}, Curve25519_2HashDH{}}
}
