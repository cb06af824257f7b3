package witness

import (
	"fmt"
	"strings"

	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/model"
)

// Request holds the inputs of one witness construction.
// SecretKey is the bech32 text of an Ed25519 secret key. SpendingCounter is
// required for KindAccount and ignored otherwise.
type Request struct {
	Kind            Kind
	GenesisHash     model.HeaderHash
	TransactionID   model.TransactionID
	SecretKey       string
	SpendingCounter *model.SpendingCounter
}

// Build signs the request. The kind and the counter are checked before the key is decoded.
func Build(req Request) (Witness, error) {
	switch req.Kind {
	case KindLegacyUtxo:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, req.Kind)
	case KindAccount:
		if req.SpendingCounter == nil {
			return nil, ErrMissingSpendingCounter
		}
	case KindUtxo:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, req.Kind)
	}

	sk, err := keys.SecretKeyFromBech32[keys.Ed25519](strings.TrimRight(req.SecretKey, " \t\r\n"))
	if err != nil {
		return nil, fmt.Errorf("secret key: %w", err)
	}

	if req.Kind == KindAccount {
		return NewAccount(req.GenesisHash, req.TransactionID, *req.SpendingCounter, sk)
	}
	return NewUtxo(req.GenesisHash, req.TransactionID, sk)
}

// NewUtxo signs genesis ‖ txid.
func NewUtxo(genesis model.HeaderHash, txid model.TransactionID, sk keys.SecretKey[keys.Ed25519]) (*Utxo, error) {
	sig, err := keys.Sign(sk, utxoMessage(genesis, txid))
	if err != nil {
		return nil, fmt.Errorf("sign utxo witness: %w", err)
	}
	return &Utxo{signature: sig}, nil
}

// NewAccount signs genesis ‖ txid ‖ counter.
func NewAccount(
	genesis model.HeaderHash,
	txid model.TransactionID,
	counter model.SpendingCounter,
	sk keys.SecretKey[keys.Ed25519],
) (*Account, error) {
	sig, err := keys.Sign(sk, accountMessage(genesis, txid, counter))
	if err != nil {
		return nil, fmt.Errorf("sign account witness: %w", err)
	}
	return &Account{counter: counter, signature: sig}, nil
}
