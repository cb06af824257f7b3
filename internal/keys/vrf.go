package keys

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/blake2b"
)

// Curve25519_2HashDH is the verifiable random function used for Genesis-Praos slot
// leadership. Output is H2(input, x·H1(input)); the proof is a Chaum-Pedersen
// equality-of-discrete-logs proof that the same x is behind the public key.
//
// It is not a SigningAlgorithm.
type Curve25519_2HashDH struct{}

const (
	vrfScalarSize = 32
	vrfPointSize  = 32
	// VRFProofSize is the size of an encoded VRF proof: point | challenge | response.
	VRFProofSize = vrfPointSize + 2*vrfScalarSize
	// VRFOutputSize is the size of a VRF output.
	VRFOutputSize = blake2b.Size256
)

var (
	vrfHashToPointTag = []byte("chainauth-vrf-h1")
	vrfOutputTag      = []byte("chainauth-vrf-h2")
	vrfNonceTag       = []byte("chainauth-vrf-nonce")
	vrfChallengeTag   = []byte("chainauth-vrf-challenge")
)

var errHashToPoint = errors.New("vrf: no curve point found for input")

func (Curve25519_2HashDH) Name() string         { return "Curve25519_2HashDH" }
func (Curve25519_2HashDH) SecretPrefix() string { return "vrf_sk" }
func (Curve25519_2HashDH) PublicPrefix() string { return "vrf_pk" }

func (Curve25519_2HashDH) secretSize() int { return vrfScalarSize }
func (Curve25519_2HashDH) publicSize() int { return vrfPointSize }

func (Curve25519_2HashDH) generate(seed []byte) []byte {
	wide := blake2b.Sum512(seed)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(fmt.Sprintf("keys: vrf scalar: %v", err))
	}
	return s.Bytes()
}

func (Curve25519_2HashDH) toPublic(secret []byte) []byte {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(secret)
	if err != nil {
		panic(fmt.Sprintf("keys: vrf scalar: %v", err))
	}
	return new(edwards25519.Point).ScalarBaseMult(s).Bytes()
}

func (Curve25519_2HashDH) checkSecret(secret []byte) error {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(secret)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if s.Equal(edwards25519.NewScalar()) == 1 {
		return fmt.Errorf("%w: zero vrf scalar", ErrInvalidKey)
	}
	return nil
}

func (Curve25519_2HashDH) checkPublic(public []byte) error {
	if _, err := new(edwards25519.Point).SetBytes(public); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return nil
}

// VRFOutput is the pseudorandom value a VRF evaluation yields.
type VRFOutput [VRFOutputSize]byte

// VRFProof proves a VRFOutput was computed with the secret key behind a public key.
type VRFProof [VRFProofSize]byte

// VRFProofFromBytes copies an encoded proof.
func VRFProofFromBytes(data []byte) (VRFProof, error) {
	var p VRFProof
	if len(data) != VRFProofSize {
		return p, fmt.Errorf("vrf proof must be %d bytes, got %d", VRFProofSize, len(data))
	}
	copy(p[:], data)
	return p, nil
}

// EvaluateVRF computes the VRF output for input together with its proof.
// Evaluation is deterministic.
func EvaluateVRF(sk SecretKey[Curve25519_2HashDH], input []byte) (VRFOutput, VRFProof, error) {
	x, err := edwards25519.NewScalar().SetCanonicalBytes(sk.raw)
	if err != nil {
		return VRFOutput{}, VRFProof{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	u, err := vrfHashToPoint(input)
	if err != nil {
		return VRFOutput{}, VRFProof{}, err
	}
	pub := new(edwards25519.Point).ScalarBaseMult(x)
	v := new(edwards25519.Point).ScalarMult(x, u)

	r, err := vrfHashToScalar(vrfNonceTag, sk.raw, input)
	if err != nil {
		return VRFOutput{}, VRFProof{}, err
	}
	a1 := new(edwards25519.Point).ScalarBaseMult(r)
	a2 := new(edwards25519.Point).ScalarMult(r, u)
	c, err := vrfHashToScalar(vrfChallengeTag, pub.Bytes(), u.Bytes(), v.Bytes(), a1.Bytes(), a2.Bytes())
	if err != nil {
		return VRFOutput{}, VRFProof{}, err
	}
	s := edwards25519.NewScalar().MultiplyAdd(c, x, r)

	var proof VRFProof
	copy(proof[:vrfPointSize], v.Bytes())
	copy(proof[vrfPointSize:vrfPointSize+vrfScalarSize], c.Bytes())
	copy(proof[vrfPointSize+vrfScalarSize:], s.Bytes())
	return vrfOutput(input, v), proof, nil
}

// VerifyVRF checks proof for input against pk and returns the proven output.
func VerifyVRF(pk PublicKey[Curve25519_2HashDH], input []byte, proof VRFProof) (VRFOutput, bool) {
	pub, err := new(edwards25519.Point).SetBytes(pk.raw)
	if err != nil {
		return VRFOutput{}, false
	}
	v, err := new(edwards25519.Point).SetBytes(proof[:vrfPointSize])
	if err != nil {
		return VRFOutput{}, false
	}
	c, err := edwards25519.NewScalar().SetCanonicalBytes(proof[vrfPointSize : vrfPointSize+vrfScalarSize])
	if err != nil {
		return VRFOutput{}, false
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(proof[vrfPointSize+vrfScalarSize:])
	if err != nil {
		return VRFOutput{}, false
	}
	u, err := vrfHashToPoint(input)
	if err != nil {
		return VRFOutput{}, false
	}

	// a1 = s·B - c·pub, a2 = s·u - c·v
	negC := edwards25519.NewScalar().Negate(c)
	a1 := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(negC, pub, s)
	a2 := new(edwards25519.Point).Add(
		new(edwards25519.Point).ScalarMult(s, u),
		new(edwards25519.Point).ScalarMult(negC, v),
	)
	expected, err := vrfHashToScalar(vrfChallengeTag, pub.Bytes(), u.Bytes(), v.Bytes(), a1.Bytes(), a2.Bytes())
	if err != nil || expected.Equal(c) != 1 {
		return VRFOutput{}, false
	}
	return vrfOutput(input, v), true
}

// vrfHashToPoint maps input to a prime-order point by try-and-increment.
func vrfHashToPoint(input []byte) (*edwards25519.Point, error) {
	identity := edwards25519.NewIdentityPoint()
	for ctr := 0; ctr < 256; ctr++ {
		h, _ := blake2b.New256(nil)
		_, _ = h.Write(vrfHashToPointTag)
		_, _ = h.Write(input)
		_, _ = h.Write([]byte{byte(ctr)})
		p, err := new(edwards25519.Point).SetBytes(h.Sum(nil))
		if err != nil {
			continue
		}
		p.MultByCofactor(p)
		if p.Equal(identity) == 1 {
			continue
		}
		return p, nil
	}
	return nil, errHashToPoint
}

func vrfHashToScalar(tag []byte, parts ...[]byte) (*edwards25519.Scalar, error) {
	h, _ := blake2b.New512(nil)
	_, _ = h.Write(tag)
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
}

func vrfOutput(input []byte, v *edwards25519.Point) VRFOutput {
	h, _ := blake2b.New256(nil)
	_, _ = h.Write(vrfOutputTag)
	_, _ = h.Write(input)
	_, _ = h.Write(v.Bytes())
	var out VRFOutput
	copy(out[:], h.Sum(nil))
	return out
}
