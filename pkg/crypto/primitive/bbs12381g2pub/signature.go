/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"errors"
	"fmt"
	"io"

	ml "github.com/IBM/mathlib"
)

// Signature defines BLS signature.
type Signature struct {
	A *ml.G1
	E *ml.Zr
	S *ml.Zr
}

// NewSignature signs messages with privKey. The generators of pubKey must cover every message.
func NewSignature(messages []*SignatureMessage, privKey *PrivateKey, pubKey *PublicKeyWithGenerators,
	rng io.Reader) (*Signature, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyMessageList
	}

	if len(messages) > pubKey.messagesCount {
		return nil, fmt.Errorf("%w: %d messages, %d generators", ErrGeneratorMismatch,
			len(messages), pubKey.messagesCount)
	}

	s, err := randomFr(rng)
	if err != nil {
		return nil, err
	}

	b := computeB(s, messages, pubKey)

	for {
		e, err := randomFr(rng)
		if err != nil {
			return nil, err
		}

		exp := curve.ModAdd(privKey.FR, e, curve.GroupOrder)
		if frIsZero(exp) {
			continue
		}

		exp.InvModP(curve.GroupOrder)

		return &Signature{
			A: b.Mul(exp),
			E: e,
			S: s,
		}, nil
	}
}

// ParseSignature parses a Signature from bytes.
func ParseSignature(sigBytes []byte) (*Signature, error) {
	if len(sigBytes) != signatureLen {
		return nil, fmt.Errorf("%w: invalid size of signature", ErrMalformedSignature)
	}

	if sigBytes[0] != SchemeID {
		return nil, fmt.Errorf("%w: unknown scheme id 0x%02x", ErrMalformedSignature, sigBytes[0])
	}

	offset := 1

	a, err := parseG1Compressed(sigBytes[offset : offset+g1CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("%w: deserialize G1 compressed signature: %w", ErrMalformedSignature, err)
	}

	offset += g1CompressedSize

	e, err := parseFr(sigBytes[offset : offset+frCompressedSize])
	if err != nil {
		return nil, fmt.Errorf("%w: deserialize e: %w", ErrMalformedSignature, err)
	}

	offset += frCompressedSize

	s, err := parseFr(sigBytes[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: deserialize s: %w", ErrMalformedSignature, err)
	}

	return &Signature{
		A: a,
		E: e,
		S: s,
	}, nil
}

// ToBytes converts signature to bytes using compression of G1 point and E, S FR points.
func (s *Signature) ToBytes() ([]byte, error) {
	bytes := make([]byte, 0, signatureLen)

	bytes = append(bytes, SchemeID)
	bytes = append(bytes, s.A.Compressed()...)
	bytes = append(bytes, frToBytes(s.E)...)
	bytes = append(bytes, frToBytes(s.S)...)

	return bytes, nil
}

// Verify is used for signature verification. It returns false with a nil error when the signature does not
// match the messages, and an error only for inputs that cannot be checked at all.
func (s *Signature) Verify(messages []*SignatureMessage, pubKey *PublicKeyWithGenerators) (bool, error) {
	if s.A == nil || s.A.IsInfinity() {
		return false, fmt.Errorf("%w: A is the identity element", ErrMalformedSignature)
	}

	if len(messages) == 0 {
		return false, ErrEmptyMessageList
	}

	if len(messages) > pubKey.messagesCount {
		return false, fmt.Errorf("%w: %d messages, %d generators", ErrMessageCountMismatch,
			len(messages), pubKey.messagesCount)
	}

	p1 := s.A

	q1 := curve.GenG2.Mul(s.E)
	q1.Add(pubKey.w)

	p2 := computeB(s.S, messages, pubKey)

	if !compareTwoPairings(p1, q1, p2, curve.GenG2) {
		logger.Debugf("signature pairing check failed for %d messages", len(messages))

		return false, nil
	}

	return true, nil
}

// computeB returns g1 + s*h0 + sum(m_i*h_i).
func computeB(s *ml.Zr, messages []*SignatureMessage, key *PublicKeyWithGenerators) *ml.G1 {
	const basesOffset = 2

	cb := newCommitmentBuilder(len(messages) + basesOffset)

	cb.add(curve.GenG1, curve.NewZrFromInt(1))
	cb.add(key.h0, s)

	for i := 0; i < len(messages); i++ {
		cb.add(key.h[i], messages[i].FR)
	}

	return cb.build()
}

type commitmentBuilder struct {
	bases   []*ml.G1
	scalars []*ml.Zr
}

func newCommitmentBuilder(expectedSize int) *commitmentBuilder {
	return &commitmentBuilder{
		bases:   make([]*ml.G1, 0, expectedSize),
		scalars: make([]*ml.Zr, 0, expectedSize),
	}
}

func (cb *commitmentBuilder) add(base *ml.G1, scalar *ml.Zr) {
	cb.bases = append(cb.bases, base)
	cb.scalars = append(cb.scalars, scalar)
}

func (cb *commitmentBuilder) build() *ml.G1 {
	return sumOfG1Products(cb.bases, cb.scalars)
}

// sumOfG1Products never mutates the bases; Mul allocates a fresh point.
func sumOfG1Products(bases []*ml.G1, scalars []*ml.Zr) *ml.G1 {
	var res *ml.G1

	for i := 0; i < len(bases); i++ {
		g := bases[i].Mul(scalars[i])
		if res == nil {
			res = g
		} else {
			res.Add(g)
		}
	}

	return res
}

// compareTwoPairings checks e(p1, q1) == e(p2, q2). The pairing engine converts its arguments to affine form in
// place, so it only ever sees copies; q2 is usually the shared curve generator.
func compareTwoPairings(p1 *ml.G1, q1 *ml.G2,
	p2 *ml.G1, q2 *ml.G2) bool {
	p2Neg := p2.Mul(frNeg(curve.NewZrFromInt(1)))

	p := curve.Pairing2(q1.Copy(), p1.Copy(), q2.Copy(), p2Neg)
	p = curve.FExp(p)

	return p.IsUnity()
}

func parseG1Compressed(bytes []byte) (*ml.G1, error) {
	if len(bytes) != g1CompressedSize {
		return nil, errors.New("invalid size of G1 point")
	}

	if bytes[0]&infinityFlag != 0 {
		return nil, errors.New("point is the identity element")
	}

	p, err := curve.NewG1FromCompressed(bytes)
	if err != nil {
		return nil, err
	}

	if p.IsInfinity() {
		return nil, errors.New("point is the identity element")
	}

	return p, nil
}
