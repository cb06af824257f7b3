package keys

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// SumEd25519_12 is a forward-secure key-evolving signature scheme built as a binary
// sum composition of Ed25519 keys, depth 12, giving 4096 periods. Evolving a key
// forgets the seeds of past periods.
type SumEd25519_12 struct{}

// KESDepth is the tree depth of SumEd25519_12.
const KESDepth = 12

var sumEd25519_12 = kesScheme{depth: KESDepth}

func (SumEd25519_12) Name() string         { return "SumEd25519_12" }
func (SumEd25519_12) SecretPrefix() string { return "kes25519-12-sk" }
func (SumEd25519_12) PublicPrefix() string { return "kes25519-12-pk" }

func (SumEd25519_12) secretSize() int    { return sumEd25519_12.secretSize() }
func (SumEd25519_12) publicSize() int    { return kesNodeSize }
func (SumEd25519_12) signatureSize() int { return sumEd25519_12.signatureSize() }

func (SumEd25519_12) generate(seed []byte) []byte    { return sumEd25519_12.generate(seed) }
func (SumEd25519_12) toPublic(secret []byte) []byte  { return sumEd25519_12.publicKey(secret) }
func (SumEd25519_12) checkSecret(secret []byte) error { return sumEd25519_12.checkSecret(secret) }
func (SumEd25519_12) checkPublic([]byte) error        { return nil }

func (SumEd25519_12) sign(secret, message []byte) ([]byte, error) {
	return sumEd25519_12.sign(secret, message), nil
}

func (SumEd25519_12) verify(public, message, signature []byte) bool {
	return sumEd25519_12.verify(public, message, signature)
}

// KESPeriod returns the period sk currently signs for.
func KESPeriod(sk SecretKey[SumEd25519_12]) uint32 {
	if len(sk.raw) < kesPeriodSize {
		return 0
	}
	return binary.BigEndian.Uint32(sk.raw)
}

// KESPeriods returns the number of periods a SumEd25519_12 key lives for.
func KESPeriods() uint32 {
	return sumEd25519_12.periods()
}

// UpdateKES returns sk evolved to the next period. sk itself is left unchanged.
func UpdateKES(sk SecretKey[SumEd25519_12]) (SecretKey[SumEd25519_12], error) {
	if sk.IsZero() {
		return SecretKey[SumEd25519_12]{}, fmt.Errorf("%w: empty SumEd25519_12 secret key", ErrInvalidKey)
	}
	next, err := sumEd25519_12.update(sk.raw)
	if err != nil {
		return SecretKey[SumEd25519_12]{}, err
	}
	return SecretKey[SumEd25519_12]{raw: next}, nil
}

// EvolveKES returns sk evolved to period. Keys cannot go back in time.
func EvolveKES(sk SecretKey[SumEd25519_12], period uint32) (SecretKey[SumEd25519_12], error) {
	current := KESPeriod(sk)
	if period < current {
		return SecretKey[SumEd25519_12]{}, fmt.Errorf("%w: key is at period %d, requested %d", ErrKeyExhausted, current, period)
	}
	if period >= KESPeriods() {
		return SecretKey[SumEd25519_12]{}, fmt.Errorf("%w: period %d is past the last of %d", ErrKeyExhausted, period, KESPeriods())
	}
	for current < period {
		next, err := UpdateKES(sk)
		if err != nil {
			return SecretKey[SumEd25519_12]{}, err
		}
		sk = next
		current++
	}
	return sk, nil
}

// KESSignaturePeriod returns the period a SumEd25519_12 signature was made at.
func KESSignaturePeriod(sig Signature[SumEd25519_12]) uint32 {
	if len(sig.raw) < kesPeriodSize {
		return 0
	}
	return binary.BigEndian.Uint32(sig.raw)
}

const (
	kesPeriodSize = 4
	kesNodeSize   = blake2b.Size256
	kesLevelSize  = 3 * kesNodeSize
)

// kesScheme implements the sum composition for any depth.
//
// Secret layout: period(u32 BE) | leaf seed | depth x (right seed | left pk | right pk),
// levels ordered from the root down. A right seed is zeroed once its subtree is in use.
//
// Signature layout: period(u32 BE) | ed25519 signature | leaf pk | depth x sibling pk,
// siblings ordered from the leaf up.
type kesScheme struct {
	depth int
}

type kesLevel struct {
	seed  [kesNodeSize]byte
	left  [kesNodeSize]byte
	right [kesNodeSize]byte
}

func (s kesScheme) periods() uint32 {
	return 1 << uint(s.depth)
}

func (s kesScheme) secretSize() int {
	return kesPeriodSize + ed25519.SeedSize + s.depth*kesLevelSize
}

func (s kesScheme) signatureSize() int {
	return kesPeriodSize + ed25519.SignatureSize + ed25519.PublicKeySize + s.depth*kesNodeSize
}

func (s kesScheme) generate(seed []byte) []byte {
	var root [kesNodeSize]byte
	copy(root[:], seed)
	_, leaf, levels := kesGenerate(s.depth, root)
	return s.encode(0, leaf, levels)
}

func (s kesScheme) checkSecret(secret []byte) error {
	if period := binary.BigEndian.Uint32(secret); period >= s.periods() {
		return fmt.Errorf("%w: period %d out of range", ErrInvalidKey, period)
	}
	return nil
}

func (s kesScheme) publicKey(secret []byte) []byte {
	_, leaf, levels := s.decode(secret)
	if s.depth == 0 {
		return ed25519Public(leaf)
	}
	root := kesHashPair(levels[0].left, levels[0].right)
	return root[:]
}

func (s kesScheme) sign(secret, message []byte) []byte {
	period, leaf, levels := s.decode(secret)
	key := ed25519.NewKeyFromSeed(leaf[:])

	out := make([]byte, 0, s.signatureSize())
	out = binary.BigEndian.AppendUint32(out, period)
	out = append(out, ed25519.Sign(key, message)...)
	out = append(out, key.Public().(ed25519.PublicKey)...)
	for j := s.depth - 1; j >= 0; j-- {
		if s.bit(period, j) == 0 {
			out = append(out, levels[j].right[:]...)
		} else {
			out = append(out, levels[j].left[:]...)
		}
	}
	return out
}

func (s kesScheme) verify(public, message, signature []byte) bool {
	if len(signature) != s.signatureSize() || len(public) != kesNodeSize {
		return false
	}
	period := binary.BigEndian.Uint32(signature)
	if period >= s.periods() {
		return false
	}
	rest := signature[kesPeriodSize:]
	sig, rest := rest[:ed25519.SignatureSize], rest[ed25519.SignatureSize:]
	leafKey, siblings := rest[:ed25519.PublicKeySize], rest[ed25519.PublicKeySize:]
	if !ed25519.Verify(leafKey, message, sig) {
		return false
	}

	var node [kesNodeSize]byte
	copy(node[:], leafKey)
	for i, j := 0, s.depth-1; j >= 0; i, j = i+1, j-1 {
		var sibling [kesNodeSize]byte
		copy(sibling[:], siblings[i*kesNodeSize:(i+1)*kesNodeSize])
		if s.bit(period, j) == 0 {
			node = kesHashPair(node, sibling)
		} else {
			node = kesHashPair(sibling, node)
		}
	}
	return bytes.Equal(node[:], public)
}

func (s kesScheme) update(secret []byte) ([]byte, error) {
	period, leaf, levels := s.decode(secret)
	next := period + 1
	if next >= s.periods() {
		return nil, fmt.Errorf("%w: period %d is the last of %d", ErrKeyExhausted, period, s.periods())
	}

	// The deepest level whose bit flips from left to right switches to its right subtree;
	// every level below it restarts at its leftmost leaf.
	j := s.depth - 1
	for s.bit(period, j) == 1 {
		j--
	}
	_, leaf, sub := kesGenerate(s.depth-1-j, levels[j].seed)
	levels[j].seed = [kesNodeSize]byte{}
	copy(levels[j+1:], sub)

	return s.encode(next, leaf, levels), nil
}

// bit returns the branch taken at level j (0 is the root) for period.
func (s kesScheme) bit(period uint32, level int) uint32 {
	return (period >> uint(s.depth-1-level)) & 1
}

func (s kesScheme) encode(period uint32, leaf [kesNodeSize]byte, levels []kesLevel) []byte {
	out := make([]byte, 0, s.secretSize())
	out = binary.BigEndian.AppendUint32(out, period)
	out = append(out, leaf[:]...)
	for _, l := range levels {
		out = append(out, l.seed[:]...)
		out = append(out, l.left[:]...)
		out = append(out, l.right[:]...)
	}
	return out
}

func (s kesScheme) decode(secret []byte) (uint32, [kesNodeSize]byte, []kesLevel) {
	period := binary.BigEndian.Uint32(secret)
	var leaf [kesNodeSize]byte
	copy(leaf[:], secret[kesPeriodSize:])

	levels := make([]kesLevel, s.depth)
	rest := secret[kesPeriodSize+ed25519.SeedSize:]
	for i := range levels {
		chunk := rest[i*kesLevelSize : (i+1)*kesLevelSize]
		copy(levels[i].seed[:], chunk[:kesNodeSize])
		copy(levels[i].left[:], chunk[kesNodeSize:2*kesNodeSize])
		copy(levels[i].right[:], chunk[2*kesNodeSize:])
	}
	return period, leaf, levels
}

// kesGenerate builds the leftmost path of a subtree: its root public key, the seed of
// its first leaf and the level records from its root down.
func kesGenerate(depth int, seed [kesNodeSize]byte) ([kesNodeSize]byte, [kesNodeSize]byte, []kesLevel) {
	if depth == 0 {
		var pk [kesNodeSize]byte
		copy(pk[:], ed25519Public(seed))
		return pk, seed, nil
	}
	leftSeed, rightSeed := kesSplit(seed)
	left, leaf, sub := kesGenerate(depth-1, leftSeed)
	right := kesPublic(depth-1, rightSeed)
	levels := append([]kesLevel{{seed: rightSeed, left: left, right: right}}, sub...)
	return kesHashPair(left, right), leaf, levels
}

func kesPublic(depth int, seed [kesNodeSize]byte) [kesNodeSize]byte {
	if depth == 0 {
		var pk [kesNodeSize]byte
		copy(pk[:], ed25519Public(seed))
		return pk
	}
	left, right := kesSplit(seed)
	return kesHashPair(kesPublic(depth-1, left), kesPublic(depth-1, right))
}

func kesSplit(seed [kesNodeSize]byte) (left, right [kesNodeSize]byte) {
	left = blake2b.Sum256(append([]byte{1}, seed[:]...))
	right = blake2b.Sum256(append([]byte{2}, seed[:]...))
	return left, right
}

func kesHashPair(left, right [kesNodeSize]byte) [kesNodeSize]byte {
	return blake2b.Sum256(append(left[:], right[:]...))
}

func ed25519Public(seed [kesNodeSize]byte) []byte {
	return ed25519.NewKeyFromSeed(seed[:]).Public().(ed25519.PublicKey)
}
