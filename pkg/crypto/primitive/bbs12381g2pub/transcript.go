/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"encoding/binary"
	"sort"

	ml "github.com/IBM/mathlib"
)

// challengeTranscript accumulates the Fiat-Shamir input of a proof. Prover and verifier must append the same
// values in the same order.
type challengeTranscript struct {
	buf []byte
}

func newChallengeTranscript() *challengeTranscript {
	return &challengeTranscript{
		buf: []byte{SchemeID},
	}
}

func (t *challengeTranscript) appendG1(p *ml.G1) {
	t.buf = append(t.buf, p.Compressed()...)
}

// appendG2 compresses a copy since the public key point may be shared between goroutines.
func (t *challengeTranscript) appendG2(p *ml.G2) {
	t.buf = append(t.buf, p.Copy().Compressed()...)
}

func (t *challengeTranscript) appendFr(z *ml.Zr) {
	t.buf = append(t.buf, frToBytes(z)...)
}

func (t *challengeTranscript) appendUint32(v int) {
	t.buf = binary.BigEndian.AppendUint32(t.buf, uint32(v))
}

func (t *challengeTranscript) bytes() []byte {
	return t.buf
}

// proofTranscript binds the public key, the message count, the proof commitments, the disclosed messages
// (in ascending index order) and the nonce.
func proofTranscript(pubKey *PublicKeyWithGenerators, aPrime, aBar, d, t1, t2 *ml.G1,
	revealedMessages map[int]*SignatureMessage, nonce *ProofNonce) []byte {
	t := newChallengeTranscript()

	t.appendG2(pubKey.w)
	t.appendUint32(pubKey.messagesCount)
	t.appendG1(aPrime)
	t.appendG1(aBar)
	t.appendG1(d)
	t.appendG1(t1)
	t.appendG1(t2)

	indexes := make([]int, 0, len(revealedMessages))
	for idx := range revealedMessages {
		indexes = append(indexes, idx)
	}

	sort.Ints(indexes)

	t.appendUint32(len(indexes))

	for _, idx := range indexes {
		t.appendUint32(idx)
		t.appendFr(revealedMessages[idx].FR)
	}

	t.appendFr(nonce.fr)

	return t.bytes()
}

// ComputeChallenge maps a proof transcript to the Fiat-Shamir challenge scalar.
func ComputeChallenge(transcript []byte) *ml.Zr {
	return hashToFr(transcript, challengeDST)
}
