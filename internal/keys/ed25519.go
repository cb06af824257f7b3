package keys

import (
	"bytes"
	"crypto/ed25519"
)

// Ed25519 is the plain signature algorithm used by UTxO and account witnesses and by
// BFT block signing. Secret keys are stored as their 32 byte seed.
type Ed25519 struct{}

func (Ed25519) Name() string         { return "Ed25519" }
func (Ed25519) SecretPrefix() string { return "ed25519_sk" }
func (Ed25519) PublicPrefix() string { return "ed25519_pk" }

func (Ed25519) secretSize() int    { return ed25519.SeedSize }
func (Ed25519) publicSize() int    { return ed25519.PublicKeySize }
func (Ed25519) signatureSize() int { return ed25519.SignatureSize }

func (Ed25519) generate(seed []byte) []byte {
	return bytes.Clone(seed)
}

func (Ed25519) toPublic(secret []byte) []byte {
	return bytes.Clone(ed25519.NewKeyFromSeed(secret).Public().(ed25519.PublicKey))
}

func (Ed25519) checkSecret([]byte) error { return nil }
func (Ed25519) checkPublic([]byte) error { return nil }

func (Ed25519) sign(secret, message []byte) ([]byte, error) {
	return ed25519.Sign(ed25519.NewKeyFromSeed(secret), message), nil
}

func (Ed25519) verify(public, message, signature []byte) bool {
	return ed25519.Verify(public, message, signature)
}
