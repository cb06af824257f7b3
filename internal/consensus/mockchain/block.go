package mockchain

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/goodnatureofminers/chainauth/pkg/safe"
)

var ErrBlockFull = errors.New("too many messages for one block")

// BftProof is the leadership proof of a BFT block.
type BftProof struct {
	Leader    keys.PublicKey[keys.Ed25519]
	Signature keys.Signature[keys.Ed25519]
}

// PraosProof is the leadership proof of a Genesis-Praos block.
type PraosProof struct {
	NodeID    model.NodeID
	VRFProof  keys.VRFProof
	Signature keys.Signature[keys.SumEd25519_12]
}

// Header is a sealed block header.
type Header struct {
	id          model.Hash
	parent      consensus.ID
	date        Date
	chainLength uint32
	content     model.Hash
	bft         *BftProof
	praos       *PraosProof
}

var _ consensus.Header = (*Header)(nil)

func (h *Header) ID() consensus.ID               { return h.id }
func (h *Header) ParentID() consensus.ID         { return h.parent }
func (h *Header) Date() consensus.BlockDate      { return h.date }
func (h *Header) ChainLength() uint32            { return h.chainLength }
func (h *Header) ContentHash() model.Hash        { return h.content }
func (h *Header) BftProof() (BftProof, bool)     { return proofOf(h.bft) }
func (h *Header) PraosProof() (PraosProof, bool) { return proofOf(h.praos) }

func proofOf[P any](p *P) (P, bool) {
	if p == nil {
		var zero P
		return zero, false
	}
	return *p, true
}

// unsigned is the part of the header every leadership proof signs.
func (h *Header) unsigned() []byte {
	out := append([]byte(nil), h.parent.Bytes()...)
	out = append(out, h.date.bytes()...)
	out = binary.BigEndian.AppendUint32(out, h.chainLength)
	return append(out, h.content[:]...)
}

func (p BftProof) signedPart() []byte {
	return p.Leader.Bytes()
}

func (p PraosProof) signedPart() []byte {
	return append(p.NodeID.Bytes(), p.VRFProof[:]...)
}

func (h *Header) seal() {
	data := h.unsigned()
	switch {
	case h.bft != nil:
		data = append(data, h.bft.signedPart()...)
		data = append(data, h.bft.Signature.Bytes()...)
	case h.praos != nil:
		data = append(data, h.praos.signedPart()...)
		data = append(data, h.praos.Signature.Bytes()...)
	}
	h.id = model.HashBytes(data)
}

// Block is a header and the messages it commits to.
type Block struct {
	header   *Header
	messages []consensus.Message
}

var _ consensus.Block = (*Block)(nil)

func (b *Block) ID() consensus.ID              { return b.header.id }
func (b *Block) Header() consensus.Header      { return b.header }
func (b *Block) Messages() []consensus.Message { return append([]consensus.Message(nil), b.messages...) }

// prepareHeader validates the block content against the tip and returns the unsealed header.
func prepareHeader(
	settings consensus.Settings,
	ledger consensus.Ledger,
	date consensus.BlockDate,
	messages []consensus.Message,
) (*Header, error) {
	if len(messages) > settings.MaxMessagesPerBlock() {
		return nil, fmt.Errorf("%w: %d > %d", ErrBlockFull, len(messages), settings.MaxMessagesPerBlock())
	}
	if _, err := ledger.Apply(messages); err != nil {
		return nil, fmt.Errorf("apply messages: %w", err)
	}
	length, err := safe.Uint32(uint64(settings.ChainLength()) + 1)
	if err != nil {
		return nil, fmt.Errorf("chain length: %w", err)
	}
	return &Header{
		parent:      settings.Tip(),
		date:        dateOf(date),
		chainLength: length,
		content:     contentHash(messages),
	}, nil
}

func contentHash(messages []consensus.Message) model.Hash {
	parts := make([][]byte, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.ID().Bytes())
	}
	return model.HashBytes(parts...)
}

func newBlock(header *Header, messages []consensus.Message) *Block {
	header.seal()
	return &Block{
		header:   header,
		messages: append([]consensus.Message(nil), messages...),
	}
}

func headerOf(h consensus.Header) (*Header, error) {
	header, ok := h.(*Header)
	if !ok {
		return nil, fmt.Errorf("%w: header %T is not a mockchain header", consensus.ErrInvalidProof, h)
	}
	return header, nil
}
