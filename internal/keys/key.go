package keys

import (
	"bytes"
	"crypto/subtle"
	"fmt"
	"io"
)

// SecretKey is a secret key of algorithm A. Its bytes never appear in formatted output.
type SecretKey[A Algorithm] struct {
	raw []byte
}

// GenerateSecretKey creates a secret key from SeedSize bytes read from rand.
func GenerateSecretKey[A Algorithm](rand io.Reader) (SecretKey[A], error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return SecretKey[A]{}, fmt.Errorf("read seed: %w", err)
	}
	return SecretKeyFromSeed[A](seed)
}

// SecretKeyFromSeed deterministically derives a secret key from a SeedSize seed.
func SecretKeyFromSeed[A Algorithm](seed []byte) (SecretKey[A], error) {
	if len(seed) != SeedSize {
		return SecretKey[A]{}, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	return SecretKey[A]{raw: algorithmOf[A]().generate(seed)}, nil
}

// SecretKeyFromBytes validates and copies raw secret key bytes.
func SecretKeyFromBytes[A Algorithm](data []byte) (SecretKey[A], error) {
	alg := algorithmOf[A]()
	if len(data) != alg.secretSize() {
		return SecretKey[A]{}, fmt.Errorf("%w: %s secret key must be %d bytes, got %d",
			ErrInvalidKeySize, alg.Name(), alg.secretSize(), len(data))
	}
	if err := alg.checkSecret(data); err != nil {
		return SecretKey[A]{}, err
	}
	return SecretKey[A]{raw: bytes.Clone(data)}, nil
}

// SecretKeyFromBech32 decodes a secret key from its bech32 text.
// A well-formed key of another algorithm fails with ErrAlgorithmMismatch.
func SecretKeyFromBech32[A Algorithm](value string) (SecretKey[A], error) {
	alg := algorithmOf[A]()
	prefix, data, err := DecodeBech32(value)
	if err != nil {
		return SecretKey[A]{}, err
	}
	if prefix != alg.SecretPrefix() {
		if other, ok := algorithmBySecretPrefix(prefix); ok {
			return SecretKey[A]{}, fmt.Errorf("%w: expected %s secret key, got %s",
				ErrAlgorithmMismatch, alg.Name(), other.Name())
		}
		if other, ok := algorithmByPublicPrefix(prefix); ok {
			return SecretKey[A]{}, fmt.Errorf("%w: expected %s secret key, got %s public key",
				ErrAlgorithmMismatch, alg.Name(), other.Name())
		}
		return SecretKey[A]{}, fmt.Errorf("%w: %q", ErrUnknownPrefix, prefix)
	}
	return SecretKeyFromBytes[A](data)
}

// Bech32 returns the bech32 text of the key. Only key export tooling should call it.
func (k SecretKey[A]) Bech32() string {
	encoded, err := EncodeBech32(algorithmOf[A]().SecretPrefix(), k.raw)
	if err != nil {
		panic(fmt.Sprintf("keys: encode secret key: %v", err))
	}
	return encoded
}

// ToPublic derives the public key.
func (k SecretKey[A]) ToPublic() PublicKey[A] {
	return PublicKey[A]{raw: algorithmOf[A]().toPublic(k.raw)}
}

// IsZero reports whether the key was never initialized.
func (k SecretKey[A]) IsZero() bool {
	return len(k.raw) == 0
}

// Equal compares two secret keys in constant time.
func (k SecretKey[A]) Equal(other SecretKey[A]) bool {
	return subtle.ConstantTimeCompare(k.raw, other.raw) == 1
}

func (k SecretKey[A]) String() string {
	return "SecretKey<" + algorithmOf[A]().Name() + ">(redacted)"
}

func (k SecretKey[A]) GoString() string {
	return k.String()
}

// Format implements fmt.Formatter so no verb can print the key bytes.
func (k SecretKey[A]) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, k.String())
}

// PublicKey is a public key of algorithm A.
type PublicKey[A Algorithm] struct {
	raw []byte
}

// PublicKeyFromBytes validates and copies raw public key bytes.
func PublicKeyFromBytes[A Algorithm](data []byte) (PublicKey[A], error) {
	alg := algorithmOf[A]()
	if len(data) != alg.publicSize() {
		return PublicKey[A]{}, fmt.Errorf("%w: %s public key must be %d bytes, got %d",
			ErrInvalidKeySize, alg.Name(), alg.publicSize(), len(data))
	}
	if err := alg.checkPublic(data); err != nil {
		return PublicKey[A]{}, err
	}
	return PublicKey[A]{raw: bytes.Clone(data)}, nil
}

// PublicKeyFromBech32 decodes a public key from its bech32 text.
func PublicKeyFromBech32[A Algorithm](value string) (PublicKey[A], error) {
	alg := algorithmOf[A]()
	prefix, data, err := DecodeBech32(value)
	if err != nil {
		return PublicKey[A]{}, err
	}
	if prefix != alg.PublicPrefix() {
		if other, ok := algorithmByPublicPrefix(prefix); ok {
			return PublicKey[A]{}, fmt.Errorf("%w: expected %s public key, got %s",
				ErrAlgorithmMismatch, alg.Name(), other.Name())
		}
		if other, ok := algorithmBySecretPrefix(prefix); ok {
			return PublicKey[A]{}, fmt.Errorf("%w: expected %s public key, got %s secret key",
				ErrAlgorithmMismatch, alg.Name(), other.Name())
		}
		return PublicKey[A]{}, fmt.Errorf("%w: %q", ErrUnknownPrefix, prefix)
	}
	return PublicKeyFromBytes[A](data)
}

// Bytes returns a copy of the key bytes.
func (k PublicKey[A]) Bytes() []byte {
	return bytes.Clone(k.raw)
}

// Bech32 returns the bech32 text of the key.
func (k PublicKey[A]) Bech32() string {
	encoded, err := EncodeBech32(algorithmOf[A]().PublicPrefix(), k.raw)
	if err != nil {
		panic(fmt.Sprintf("keys: encode public key: %v", err))
	}
	return encoded
}

func (k PublicKey[A]) String() string {
	return k.Bech32()
}

func (k PublicKey[A]) IsZero() bool {
	return len(k.raw) == 0
}

func (k PublicKey[A]) Equal(other PublicKey[A]) bool {
	return bytes.Equal(k.raw, other.raw)
}

// MarshalText encodes the key as bech32.
func (k PublicKey[A]) MarshalText() ([]byte, error) {
	return []byte(k.Bech32()), nil
}

// UnmarshalText decodes a bech32 public key.
func (k *PublicKey[A]) UnmarshalText(text []byte) error {
	decoded, err := PublicKeyFromBech32[A](string(text))
	if err != nil {
		return err
	}
	*k = decoded
	return nil
}

// Signature is a signature made by a secret key of algorithm A.
type Signature[A SigningAlgorithm] struct {
	raw []byte
}

// SignatureFromBytes validates the length and copies raw signature bytes.
func SignatureFromBytes[A SigningAlgorithm](data []byte) (Signature[A], error) {
	alg := algorithmOf[A]()
	if len(data) != alg.signatureSize() {
		return Signature[A]{}, fmt.Errorf("%w: %s signature must be %d bytes, got %d",
			ErrInvalidSignatureSize, alg.Name(), alg.signatureSize(), len(data))
	}
	return Signature[A]{raw: bytes.Clone(data)}, nil
}

// SignatureSize returns the encoded size of signatures of algorithm A.
func SignatureSize[A SigningAlgorithm]() int {
	return algorithmOf[A]().signatureSize()
}

func (s Signature[A]) Bytes() []byte {
	return bytes.Clone(s.raw)
}

func (s Signature[A]) Equal(other Signature[A]) bool {
	return bytes.Equal(s.raw, other.raw)
}

func (s Signature[A]) IsZero() bool {
	return len(s.raw) == 0
}

// Sign signs message with sk.
func Sign[A SigningAlgorithm](sk SecretKey[A], message []byte) (Signature[A], error) {
	if sk.IsZero() {
		return Signature[A]{}, fmt.Errorf("%w: empty %s secret key", ErrInvalidKey, algorithmOf[A]().Name())
	}
	sig, err := algorithmOf[A]().sign(sk.raw, message)
	if err != nil {
		return Signature[A]{}, err
	}
	return Signature[A]{raw: sig}, nil
}

// Verify reports whether sig is a valid signature of message by pk.
func Verify[A SigningAlgorithm](pk PublicKey[A], message []byte, sig Signature[A]) bool {
	alg := algorithmOf[A]()
	if len(pk.raw) != alg.publicSize() || len(sig.raw) != alg.signatureSize() {
		return false
	}
	return alg.verify(pk.raw, message, sig.raw)
}
