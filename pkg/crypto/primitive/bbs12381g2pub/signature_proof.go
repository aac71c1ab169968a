/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"fmt"

	ml "github.com/IBM/mathlib"
)

// number of G1 points in a proof: A', Ā, d and the two Schnorr commitments.
const proofG1PointsCount = 5

const (
	// responses of the first statement: -e and r2.
	proofVC1ResponsesCount = 2
	// responses of the second statement besides the hidden messages: r3 and -s'.
	proofVC2BaseResponsesCount = 2
)

// PoKOfSignatureProof defines BLS signature proof.
// It is the actual proof that is sent from prover to verifier.
type PoKOfSignatureProof struct {
	aPrime *ml.G1
	aBar   *ml.G1
	d      *ml.G1

	challenge *ml.Zr

	proofVC1 *ProofG1
	proofVC2 *ProofG1
}

// ParseSignatureProof parses a signature proof that hides hiddenCount messages.
func ParseSignatureProof(sigProofBytes []byte, hiddenCount int) (*PoKOfSignatureProof, error) {
	if hiddenCount < 0 {
		return nil, fmt.Errorf("%w: negative hidden messages count", ErrMalformedProof)
	}

	responsesCount := proofVC1ResponsesCount + proofVC2BaseResponsesCount + hiddenCount
	expectedLen := proofG1PointsCount*g1CompressedSize + frCompressedSize + responsesCount*frCompressedSize

	if len(sigProofBytes) != expectedLen {
		return nil, fmt.Errorf("%w: invalid size of signature proof: expected %d, got %d", ErrMalformedProof,
			expectedLen, len(sigProofBytes))
	}

	points := make([]*ml.G1, proofG1PointsCount)

	for i := range points {
		p, err := parseG1Compressed(sigProofBytes[i*g1CompressedSize : (i+1)*g1CompressedSize])
		if err != nil {
			return nil, fmt.Errorf("%w: deserialize G1 point %d: %w", ErrMalformedProof, i, err)
		}

		points[i] = p
	}

	offset := proofG1PointsCount * g1CompressedSize

	scalars := make([]*ml.Zr, 1+responsesCount)

	for i := range scalars {
		z, err := parseFr(sigProofBytes[offset : offset+frCompressedSize])
		if err != nil {
			return nil, fmt.Errorf("%w: deserialize scalar %d: %w", ErrMalformedProof, i, err)
		}

		scalars[i] = z
		offset += frCompressedSize
	}

	return &PoKOfSignatureProof{
		aPrime:    points[0],
		aBar:      points[1],
		d:         points[2],
		challenge: scalars[0],
		proofVC1:  NewProofG1(points[3], scalars[1:1+proofVC1ResponsesCount]),
		proofVC2:  NewProofG1(points[4], scalars[1+proofVC1ResponsesCount:]),
	}, nil
}

// ToBytes converts PoKOfSignatureProof to bytes.
func (sp *PoKOfSignatureProof) ToBytes() []byte {
	bytes := make([]byte, 0, sp.lenInBytes())

	bytes = append(bytes, sp.aPrime.Compressed()...)
	bytes = append(bytes, sp.aBar.Compressed()...)
	bytes = append(bytes, sp.d.Compressed()...)
	bytes = append(bytes, sp.proofVC1.commitment.Compressed()...)
	bytes = append(bytes, sp.proofVC2.commitment.Compressed()...)
	bytes = append(bytes, frToBytes(sp.challenge)...)

	for _, z := range sp.proofVC1.responses {
		bytes = append(bytes, frToBytes(z)...)
	}

	for _, z := range sp.proofVC2.responses {
		bytes = append(bytes, frToBytes(z)...)
	}

	return bytes
}

func (sp *PoKOfSignatureProof) lenInBytes() int {
	return proofG1PointsCount*g1CompressedSize +
		(1+len(sp.proofVC1.responses)+len(sp.proofVC2.responses))*frCompressedSize
}

// Verify checks the proof against the disclosed messages (keyed by position), the signer's generators and
// the nonce. It reports the first failing check at debug level.
func (sp *PoKOfSignatureProof) Verify(revealedMessages map[int]*SignatureMessage,
	pubKey *PublicKeyWithGenerators, nonce *ProofNonce) bool {
	hiddenCount := pubKey.messagesCount - len(revealedMessages)

	if len(sp.proofVC1.responses) != proofVC1ResponsesCount ||
		len(sp.proofVC2.responses) != proofVC2BaseResponsesCount+hiddenCount {
		logger.Debugf("proof responses do not match %d hidden messages", hiddenCount)

		return false
	}

	if sp.aPrime.IsInfinity() {
		logger.Debugf("proof A' is the identity element")

		return false
	}

	challenge := ComputeChallenge(proofTranscript(pubKey, sp.aPrime, sp.aBar, sp.d,
		sp.proofVC1.commitment, sp.proofVC2.commitment, revealedMessages, nonce))

	if !frEqual(challenge, sp.challenge) {
		logger.Debugf("proof challenge mismatch")

		return false
	}

	if !sp.verifyVC1Proof(pubKey) {
		logger.Debugf("proof of the first statement failed")

		return false
	}

	if !sp.verifyVC2Proof(revealedMessages, pubKey) {
		logger.Debugf("proof of the second statement failed")

		return false
	}

	if !compareTwoPairings(sp.aPrime, pubKey.w, sp.aBar, curve.GenG2) {
		logger.Debugf("proof pairing check failed")

		return false
	}

	return true
}

func (sp *PoKOfSignatureProof) verifyVC1Proof(pubKey *PublicKeyWithGenerators) bool {
	bases := []*ml.G1{sp.aPrime, pubKey.h0}

	aBarD := sp.aBar.Copy()
	aBarD.Sub(sp.d)

	return sp.proofVC1.Verify(bases, aBarD, sp.challenge)
}

func (sp *PoKOfSignatureProof) verifyVC2Proof(revealedMessages map[int]*SignatureMessage,
	pubKey *PublicKeyWithGenerators) bool {
	messagesCount := pubKey.messagesCount
	revealedBasesCount := len(revealedMessages) + 1

	revealedCB := newCommitmentBuilder(revealedBasesCount)
	revealedCB.add(curve.GenG1, curve.NewZrFromInt(1))

	bases := make([]*ml.G1, 0, proofVC2BaseResponsesCount+messagesCount-len(revealedMessages))
	bases = append(bases, sp.d, pubKey.h0)

	for i := 0; i < messagesCount; i++ {
		if m, ok := revealedMessages[i]; ok {
			revealedCB.add(pubKey.h[i], m.FR)

			continue
		}

		bases = append(bases, pubKey.h[i])
	}

	return sp.proofVC2.Verify(bases, revealedCB.build(), sp.challenge)
}

// ProofG1 is a proof of knowledge of a signature and hidden messages.
type ProofG1 struct {
	commitment *ml.G1
	responses  []*ml.Zr
}

// NewProofG1 creates a new ProofG1.
func NewProofG1(commitment *ml.G1, responses []*ml.Zr) *ProofG1 {
	return &ProofG1{
		commitment: commitment,
		responses:  responses,
	}
}

// Verify checks sum(responses_j*bases_j) - challenge*commitment against the prover's commitment.
func (pg1 *ProofG1) Verify(bases []*ml.G1, commitment *ml.G1, challenge *ml.Zr) bool {
	if len(bases) != len(pg1.responses) {
		return false
	}

	contribution := sumOfG1Products(bases, pg1.responses)
	contribution.Sub(commitment.Mul(challenge))

	return contribution.Equals(pg1.commitment)
}
