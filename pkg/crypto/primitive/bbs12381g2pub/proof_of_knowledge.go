/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"fmt"
	"io"

	ml "github.com/IBM/mathlib"
)

// PoKOfSignature is Proof of Knowledge of a Signature that is used by the prover to construct PoKOfSignatureProof.
type PoKOfSignature struct {
	aPrime *ml.G1
	aBar   *ml.G1
	d      *ml.G1

	pokVC1   *ProverCommittedG1
	secrets1 []*ml.Zr

	pokVC2   *ProverCommittedG1
	secrets2 []*ml.Zr

	revealedMessages map[int]*SignatureMessage
	pubKey           *PublicKeyWithGenerators
}

// NewPoKOfSignature creates a new PoKOfSignature.
// pubKey must carry exactly one generator per message and revealedIndexes must be distinct positions.
func NewPoKOfSignature(signature *Signature, messages []*SignatureMessage, revealedIndexes []int,
	pubKey *PublicKeyWithGenerators, rng io.Reader) (*PoKOfSignature, error) {
	if len(messages) != pubKey.messagesCount {
		return nil, fmt.Errorf("%w: %d messages, %d generators", ErrMessageCountMismatch,
			len(messages), pubKey.messagesCount)
	}

	revealed, err := sortedRevealedIndexes(revealedIndexes, len(messages))
	if err != nil {
		return nil, err
	}

	ok, err := signature.Verify(messages, pubKey)
	if err != nil {
		return nil, fmt.Errorf("verify input signature: %w", err)
	}

	if !ok {
		return nil, ErrIncompatibleSignature
	}

	r1, err := randomNonZeroFr(rng)
	if err != nil {
		return nil, err
	}

	r2, err := randomFr(rng)
	if err != nil {
		return nil, err
	}

	r3 := r1.Copy()
	r3.InvModP(curve.GroupOrder)

	b := computeB(signature.S, messages, pubKey)
	bR1 := b.Mul(r1)

	aPrime := signature.A.Mul(r1)

	// aBar = r1*B - e*A'
	aBar := bR1.Copy()
	aBar.Sub(aPrime.Mul(signature.E))

	// d = r1*B - r2*h0
	d := bR1.Copy()
	d.Sub(pubKey.h0.Mul(r2))

	// s' = s - r2*r3
	sPrime := curve.ModSub(signature.S, curve.ModMul(r2, r3, curve.GroupOrder), curve.GroupOrder)

	pokVC1, secrets1, err := newVC1Signature(aPrime, pubKey.h0, signature.E, r2, rng)
	if err != nil {
		return nil, err
	}

	revealedMessages := make(map[int]*SignatureMessage, len(revealed))
	for _, ind := range revealed {
		revealedMessages[ind] = messages[ind]
	}

	pokVC2, secrets2, err := newVC2Signature(d, r3, pubKey, sPrime, messages, revealedMessages, rng)
	if err != nil {
		return nil, err
	}

	return &PoKOfSignature{
		aPrime:           aPrime,
		aBar:             aBar,
		d:                d,
		pokVC1:           pokVC1,
		secrets1:         secrets1,
		pokVC2:           pokVC2,
		secrets2:         secrets2,
		revealedMessages: revealedMessages,
		pubKey:           pubKey,
	}, nil
}

// newVC1Signature commits to aBar - d = (-e)*A' + r2*h0.
func newVC1Signature(aPrime, h0 *ml.G1, e, r2 *ml.Zr, rng io.Reader) (*ProverCommittedG1, []*ml.Zr, error) {
	committing1 := NewProverCommittingG1(rng)
	secrets1 := make([]*ml.Zr, 2)

	committing1.Commit(aPrime)
	secrets1[0] = frNeg(e)

	committing1.Commit(h0)
	secrets1[1] = r2

	pokVC1, err := committing1.Finish()
	if err != nil {
		return nil, nil, err
	}

	return pokVC1, secrets1, nil
}

// newVC2Signature commits to g1 + sum(revealed m_i*h_i) = r3*d + (-s')*h0 + sum(hidden (-m_i)*h_i).
func newVC2Signature(d *ml.G1, r3 *ml.Zr, pubKey *PublicKeyWithGenerators, sPrime *ml.Zr,
	messages []*SignatureMessage, revealedMessages map[int]*SignatureMessage,
	rng io.Reader) (*ProverCommittedG1, []*ml.Zr, error) {
	messagesCount := len(messages)
	committing2 := NewProverCommittingG1(rng)
	baseSecretsCount := 2
	secrets2 := make([]*ml.Zr, 0, baseSecretsCount+messagesCount)

	committing2.Commit(d)
	secrets2 = append(secrets2, r3)

	committing2.Commit(pubKey.h0)
	secrets2 = append(secrets2, frNeg(sPrime))

	for i := 0; i < messagesCount; i++ {
		if _, ok := revealedMessages[i]; ok {
			continue
		}

		committing2.Commit(pubKey.h[i])
		secrets2 = append(secrets2, frNeg(messages[i].FR))
	}

	pokVC2, err := committing2.Finish()
	if err != nil {
		return nil, nil, err
	}

	return pokVC2, secrets2, nil
}

// challengeBytes returns the Fiat-Shamir transcript of this proof bound to nonce.
func (pos *PoKOfSignature) challengeBytes(nonce *ProofNonce) []byte {
	return proofTranscript(pos.pubKey, pos.aPrime, pos.aBar, pos.d, pos.pokVC1.commitment,
		pos.pokVC2.commitment, pos.revealedMessages, nonce)
}

// GenerateProof generates PoKOfSignatureProof proof from PoKOfSignature signature.
func (pos *PoKOfSignature) GenerateProof(challengeHash *ml.Zr) *PoKOfSignatureProof {
	return &PoKOfSignatureProof{
		aPrime:    pos.aPrime,
		aBar:      pos.aBar,
		d:         pos.d,
		challenge: challengeHash,
		proofVC1:  pos.pokVC1.GenerateProof(challengeHash, pos.secrets1),
		proofVC2:  pos.pokVC2.GenerateProof(challengeHash, pos.secrets2),
	}
}

// ProverCommittedG1 helps to generate a ProofG1.
type ProverCommittedG1 struct {
	bases           []*ml.G1
	blindingFactors []*ml.Zr
	commitment      *ml.G1
}

// GenerateProof generates proof ProofG1 for all secrets.
func (g *ProverCommittedG1) GenerateProof(challenge *ml.Zr, secrets []*ml.Zr) *ProofG1 {
	responses := make([]*ml.Zr, len(g.bases))

	for i := range g.blindingFactors {
		c := curve.ModMul(challenge, secrets[i], curve.GroupOrder)
		responses[i] = curve.ModAdd(g.blindingFactors[i], c, curve.GroupOrder)
	}

	return &ProofG1{
		commitment: g.commitment,
		responses:  responses,
	}
}

// ProverCommittingG1 is a proof of knowledge of messages in a vector commitment.
type ProverCommittingG1 struct {
	bases []*ml.G1
	rng   io.Reader
}

// NewProverCommittingG1 creates a new ProverCommittingG1 drawing blinding factors from rng.
func NewProverCommittingG1(rng io.Reader) *ProverCommittingG1 {
	return &ProverCommittingG1{
		bases: make([]*ml.G1, 0),
		rng:   rng,
	}
}

// Commit appends a base point.
func (pc *ProverCommittingG1) Commit(base *ml.G1) {
	pc.bases = append(pc.bases, base)
}

// Finish draws a blinding factor for every committed base and computes the commitment.
func (pc *ProverCommittingG1) Finish() (*ProverCommittedG1, error) {
	blindingFactors := make([]*ml.Zr, len(pc.bases))

	for i := range blindingFactors {
		r, err := randomFr(pc.rng)
		if err != nil {
			return nil, err
		}

		blindingFactors[i] = r
	}

	return &ProverCommittedG1{
		bases:           pc.bases,
		blindingFactors: blindingFactors,
		commitment:      sumOfG1Products(pc.bases, blindingFactors),
	}, nil
}
