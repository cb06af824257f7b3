// Package witness builds, verifies and encodes the signatures that authorize spending a
// transaction input. Every signed message commits to the genesis hash so a witness
// cannot be replayed on another chain.
package witness

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/model"
)

// Prefix is the bech32 human readable part of encoded witnesses.
const Prefix = "witness"

var (
	// ErrUnsupportedKind is returned for witness types that are recognized but cannot be built or decoded.
	ErrUnsupportedKind = errors.New("unsupported witness type")
	// ErrMissingSpendingCounter is returned when an account witness is requested without a counter.
	ErrMissingSpendingCounter = errors.New("spending counter is required for account witness")
	// ErrInvalidKind is returned when a witness type name or tag is not known.
	ErrInvalidKind = errors.New("invalid witness type")
	// ErrInvalidEncoding is returned when witness bytes or text are malformed.
	ErrInvalidEncoding = errors.New("invalid witness encoding")
)

// Witness is a signed authorization for one transaction input.
// It is implemented by *Utxo and *Account only.
type Witness interface {
	Kind() Kind
	Signature() keys.Signature[keys.Ed25519]
	MarshalBinary() ([]byte, error)

	message(genesis model.HeaderHash, txid model.TransactionID) []byte
}

// Utxo is the witness of an input spending an unspent output.
type Utxo struct {
	signature keys.Signature[keys.Ed25519]
}

func (w *Utxo) Kind() Kind { return KindUtxo }

func (w *Utxo) Signature() keys.Signature[keys.Ed25519] { return w.signature }

// MarshalBinary returns tag ‖ signature.
func (w *Utxo) MarshalBinary() ([]byte, error) {
	if w.signature.IsZero() {
		return nil, fmt.Errorf("%w: empty signature", ErrInvalidEncoding)
	}
	out := make([]byte, 0, utxoSize())
	out = append(out, byte(KindUtxo))
	return append(out, w.signature.Bytes()...), nil
}

func (w *Utxo) message(genesis model.HeaderHash, txid model.TransactionID) []byte {
	return utxoMessage(genesis, txid)
}

// Account is the witness of an input debiting an account at a given spending counter.
type Account struct {
	counter   model.SpendingCounter
	signature keys.Signature[keys.Ed25519]
}

func (w *Account) Kind() Kind { return KindAccount }

func (w *Account) Signature() keys.Signature[keys.Ed25519] { return w.signature }

// SpendingCounter returns the counter the signature commits to.
func (w *Account) SpendingCounter() model.SpendingCounter { return w.counter }

// MarshalBinary returns tag ‖ counter ‖ signature.
func (w *Account) MarshalBinary() ([]byte, error) {
	if w.signature.IsZero() {
		return nil, fmt.Errorf("%w: empty signature", ErrInvalidEncoding)
	}
	out := make([]byte, 0, accountSize())
	out = append(out, byte(KindAccount))
	out = append(out, w.counter.Bytes()...)
	return append(out, w.signature.Bytes()...), nil
}

func (w *Account) message(genesis model.HeaderHash, txid model.TransactionID) []byte {
	return accountMessage(genesis, txid, w.counter)
}

func utxoMessage(genesis model.HeaderHash, txid model.TransactionID) []byte {
	msg := make([]byte, 0, 2*model.HashSize)
	msg = append(msg, genesis[:]...)
	return append(msg, txid[:]...)
}

func accountMessage(genesis model.HeaderHash, txid model.TransactionID, counter model.SpendingCounter) []byte {
	return append(utxoMessage(genesis, txid), counter.Bytes()...)
}

func utxoSize() int {
	return 1 + keys.SignatureSize[keys.Ed25519]()
}

func accountSize() int {
	return 1 + model.SpendingCounterSize + keys.SignatureSize[keys.Ed25519]()
}

// Verify reports whether w authorizes txid on the chain identified by genesis for the
// owner of pk.
func Verify(w Witness, genesis model.HeaderHash, txid model.TransactionID, pk keys.PublicKey[keys.Ed25519]) bool {
	if isNil(w) {
		return false
	}
	return keys.Verify(pk, w.message(genesis, txid), w.Signature())
}

// isNil also catches typed nil pointers stored in the interface.
func isNil(w Witness) bool {
	switch v := w.(type) {
	case nil:
		return true
	case *Utxo:
		return v == nil
	case *Account:
		return v == nil
	}
	return false
}

// FromBytes decodes the binary form produced by MarshalBinary.
func FromBytes(data []byte) (Witness, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidEncoding)
	}
	switch kind := Kind(data[0]); kind {
	case KindLegacyUtxo:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	case KindUtxo:
		if len(data) != utxoSize() {
			return nil, fmt.Errorf("%w: utxo witness must be %d bytes, got %d", ErrInvalidEncoding, utxoSize(), len(data))
		}
		sig, err := keys.SignatureFromBytes[keys.Ed25519](data[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
		}
		return &Utxo{signature: sig}, nil
	case KindAccount:
		if len(data) != accountSize() {
			return nil, fmt.Errorf("%w: account witness must be %d bytes, got %d", ErrInvalidEncoding, accountSize(), len(data))
		}
		counter, err := model.SpendingCounterFromBytes(data[1 : 1+model.SpendingCounterSize])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
		}
		sig, err := keys.SignatureFromBytes[keys.Ed25519](data[1+model.SpendingCounterSize:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
		}
		return &Account{counter: counter, signature: sig}, nil
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrInvalidKind, uint8(kind))
	}
}

// Encode returns the bech32 transport text of w.
func Encode(w Witness) (string, error) {
	if isNil(w) {
		return "", fmt.Errorf("%w: nil witness", ErrInvalidEncoding)
	}
	data, err := w.MarshalBinary()
	if err != nil {
		return "", err
	}
	return keys.EncodeBech32(Prefix, data)
}

// Decode parses the bech32 transport text of a witness.
func Decode(value string) (Witness, error) {
	prefix, data, err := keys.DecodeBech32(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	if prefix != Prefix {
		return nil, fmt.Errorf("%w: unexpected prefix %q", ErrInvalidEncoding, prefix)
	}
	return FromBytes(data)
}
