package mockchain

import (
	"bytes"

	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/goodnatureofminers/chainauth/internal/witness"
)

// Input is a transaction input together with the witness that authorizes it.
type Input struct {
	Owner   keys.PublicKey[keys.Ed25519]
	Witness witness.Witness
}

// Transaction moves value; the mock chain only checks its witnesses.
type Transaction struct {
	id     model.TransactionID
	inputs []Input
}

var _ consensus.Transaction = (*Transaction)(nil)

// NewTransaction identifies the transaction by the hash of payload. Witnesses sign that id.
func NewTransaction(payload []byte, inputs []Input) *Transaction {
	return &Transaction{
		id:     TransactionID(payload),
		inputs: append([]Input(nil), inputs...),
	}
}

// TransactionID returns the id a transaction with this payload will have.
func TransactionID(payload []byte) model.TransactionID {
	return model.TransactionID(model.HashBytes(payload))
}

func (t *Transaction) ID() consensus.ID { return model.Hash(t.id) }

func (t *Transaction) TransactionID() model.TransactionID { return t.id }

func (t *Transaction) Inputs() []Input { return append([]Input(nil), t.inputs...) }

// Message is a block fragment: either an opaque payload or a transaction.
type Message struct {
	id      model.Hash
	payload []byte
	tx      *Transaction
}

var _ consensus.Message = (*Message)(nil)

func NewMessage(payload []byte) *Message {
	return &Message{
		id:      model.HashBytes([]byte{0}, payload),
		payload: bytes.Clone(payload),
	}
}

func NewTransactionMessage(tx *Transaction) *Message {
	return &Message{
		id: model.HashBytes([]byte{1}, tx.id[:]),
		tx: tx,
	}
}

func (m *Message) ID() consensus.ID { return m.id }

func (m *Message) Payload() []byte { return bytes.Clone(m.payload) }

func (m *Message) Transaction() (consensus.Transaction, bool) {
	if m.tx == nil {
		return nil, false
	}
	return m.tx, true
}
