/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	bbs "github.com/Project-Plato/jsonld-signatures-bbs/pkg/crypto/primitive/bbs12381g2pub"
)

type proofFixture struct {
	bls         *bbs.BBSG2Pub
	messages    [][]byte
	sigBytes    []byte
	pubKeyBytes []byte
}

func newProofFixture(t *testing.T, messages [][]byte) *proofFixture {
	t.Helper()

	pubKey, privKey, err := generateKeyPairRandom()
	require.NoError(t, err)

	pubKeyBytes, err := pubKey.Marshal()
	require.NoError(t, err)

	bls := bbs.New()

	sigBytes, err := bls.SignWithKey(messages, privKey)
	require.NoError(t, err)

	return &proofFixture{
		bls:         bls,
		messages:    messages,
		sigBytes:    sigBytes,
		pubKeyBytes: pubKeyBytes,
	}
}

func (f *proofFixture) revealed(indexes []int) [][]byte {
	revealed := make([][]byte, len(indexes))
	for i, idx := range indexes {
		revealed[i] = f.messages[idx]
	}

	return revealed
}

func TestBlsG2Pub_DeriveProof_AllSubsets(t *testing.T) {
	f := newProofFixture(t, default5messages())
	nonce := []byte("nonce")

	for mask := 0; mask < 1<<len(f.messages); mask++ {
		var revealedIndexes []int

		for i := range f.messages {
			if mask&(1<<i) != 0 {
				revealedIndexes = append(revealedIndexes, i)
			}
		}

		proof, err := f.bls.DeriveProof(f.messages, f.sigBytes, nonce, f.pubKeyBytes, revealedIndexes)
		require.NoError(t, err, "reveal set %v", revealedIndexes)
		require.Equal(t, bbs.SchemeID, proof[0])

		valid, err := f.bls.VerifyProof(f.revealed(revealedIndexes), revealedIndexes, proof, nonce, f.pubKeyBytes)
		require.NoError(t, err, "reveal set %v", revealedIndexes)
		require.True(t, valid, "reveal set %v", revealedIndexes)
	}
}

func TestBlsG2Pub_DeriveProof(t *testing.T) {
	f := newProofFixture(t, default5messages())
	nonce := []byte("nonce")
	revealedIndexes := []int{3, 1}

	proof, err := f.bls.DeriveProof(f.messages, f.sigBytes, nonce, f.pubKeyBytes, revealedIndexes)
	require.NoError(t, err)
	require.Equal(t, []int{3, 1}, revealedIndexes, "caller's indexes must not be reordered")

	// scheme id, payload, 5 points, challenge, 2 + (2 + 3 hidden) responses.
	require.Len(t, proof, 1+3+5*48+32+(2+2+3)*32)

	t.Run("indexes in any order, paired with their messages", func(t *testing.T) {
		valid, err := f.bls.VerifyProof(f.revealed(revealedIndexes), revealedIndexes, proof, nonce, f.pubKeyBytes)
		require.NoError(t, err)
		require.True(t, valid)

		valid, err = f.bls.VerifyProof(f.revealed([]int{1, 3}), []int{1, 3}, proof, nonce, f.pubKeyBytes)
		require.NoError(t, err)
		require.True(t, valid)
	})

	t.Run("changed nonce", func(t *testing.T) {
		valid, err := f.bls.VerifyProof(f.revealed(revealedIndexes), revealedIndexes, proof, []byte("other"),
			f.pubKeyBytes)
		require.NoError(t, err)
		require.False(t, valid)
	})

	t.Run("wrong revealed value", func(t *testing.T) {
		revealed := f.revealed(revealedIndexes)
		revealed[0] = []byte("year: 1999")

		valid, err := f.bls.VerifyProof(revealed, revealedIndexes, proof, nonce, f.pubKeyBytes)
		require.NoError(t, err)
		require.False(t, valid)
	})

	t.Run("messages attached to swapped indexes", func(t *testing.T) {
		valid, err := f.bls.VerifyProof(f.revealed([]int{1, 3}), []int{3, 1}, proof, nonce, f.pubKeyBytes)
		require.NoError(t, err)
		require.False(t, valid)
	})

	t.Run("different reveal set than the proof", func(t *testing.T) {
		valid, err := f.bls.VerifyProof(f.revealed([]int{1}), []int{1}, proof, nonce, f.pubKeyBytes)
		require.NoError(t, err)
		require.False(t, valid)

		valid, err = f.bls.VerifyProof(f.revealed([]int{0, 1, 3}), []int{0, 1, 3}, proof, nonce, f.pubKeyBytes)
		require.NoError(t, err)
		require.False(t, valid)
	})

	t.Run("other public key", func(t *testing.T) {
		otherPubKey, _, err := generateKeyPairRandom()
		require.NoError(t, err)

		otherPubKeyBytes, err := otherPubKey.Marshal()
		require.NoError(t, err)

		valid, err := f.bls.VerifyProof(f.revealed(revealedIndexes), revealedIndexes, proof, nonce, otherPubKeyBytes)
		require.NoError(t, err)
		require.False(t, valid)
	})

	t.Run("malformed reveal set", func(t *testing.T) {
		_, err := f.bls.VerifyProof(f.revealed([]int{1}), []int{1, 3}, proof, nonce, f.pubKeyBytes)
		require.True(t, errors.Is(err, bbs.ErrInvalidRevealSet))

		_, err = f.bls.VerifyProof([][]byte{f.messages[1], f.messages[1]}, []int{1, 1}, proof, nonce, f.pubKeyBytes)
		require.True(t, errors.Is(err, bbs.ErrInvalidRevealSet))

		_, err = f.bls.VerifyProof([][]byte{f.messages[1]}, []int{5}, proof, nonce, f.pubKeyBytes)
		require.True(t, errors.Is(err, bbs.ErrInvalidRevealSet))
	})

	t.Run("malformed proof", func(t *testing.T) {
		revealed := f.revealed(revealedIndexes)

		_, err := f.bls.VerifyProof(revealed, revealedIndexes, nil, nonce, f.pubKeyBytes)
		require.True(t, errors.Is(err, bbs.ErrMalformedProof))

		_, err = f.bls.VerifyProof(revealed, revealedIndexes, proof[:len(proof)-1], nonce, f.pubKeyBytes)
		require.True(t, errors.Is(err, bbs.ErrMalformedProof))

		_, err = f.bls.VerifyProof(revealed, revealedIndexes, append(proof, 0), nonce, f.pubKeyBytes)
		require.True(t, errors.Is(err, bbs.ErrMalformedProof))

		unknownScheme := append([]byte{}, proof...)
		unknownScheme[0] = 0x02

		_, err = f.bls.VerifyProof(revealed, revealedIndexes, unknownScheme, nonce, f.pubKeyBytes)
		require.True(t, errors.Is(err, bbs.ErrMalformedProof))

		identityAPrime := append([]byte{}, proof...)
		identityAPrime[4] = 0xc0

		for i := 5; i < 4+48; i++ {
			identityAPrime[i] = 0
		}

		_, err = f.bls.VerifyProof(revealed, revealedIndexes, identityAPrime, nonce, f.pubKeyBytes)
		require.True(t, errors.Is(err, bbs.ErrMalformedProof))
	})

	t.Run("malformed public key", func(t *testing.T) {
		_, err := f.bls.VerifyProof(f.revealed(revealedIndexes), revealedIndexes, proof, nonce, []byte("invalid"))
		require.True(t, errors.Is(err, bbs.ErrMalformedKey))
	})

	t.Run("byte flips never verify", func(t *testing.T) {
		revealed := f.revealed(revealedIndexes)

		for i := range proof {
			flipped := flipBit(proof, i*8)

			valid, err := f.bls.VerifyProof(revealed, revealedIndexes, flipped, nonce, f.pubKeyBytes)
			require.False(t, valid, "proof byte %d", i)

			if err != nil {
				require.True(t, errors.Is(err, bbs.ErrMalformedProof) || errors.Is(err, bbs.ErrInvalidRevealSet),
					"proof byte %d: %v", i, err)
			}
		}
	})
}

func TestBlsG2Pub_DeriveProof_Randomized(t *testing.T) {
	f := newProofFixture(t, default5messages())
	nonce := []byte("nonce")
	revealedIndexes := []int{0, 2}

	proof1, err := f.bls.DeriveProof(f.messages, f.sigBytes, nonce, f.pubKeyBytes, revealedIndexes)
	require.NoError(t, err)

	proof2, err := f.bls.DeriveProof(f.messages, f.sigBytes, nonce, f.pubKeyBytes, revealedIndexes)
	require.NoError(t, err)

	require.NotEqual(t, proof1, proof2)

	for _, proof := range [][]byte{proof1, proof2} {
		valid, err := f.bls.VerifyProof(f.revealed(revealedIndexes), revealedIndexes, proof, nonce, f.pubKeyBytes)
		require.NoError(t, err)
		require.True(t, valid)
	}
}

func TestBlsG2Pub_DeriveProof_Errors(t *testing.T) {
	f := newProofFixture(t, default5messages())
	nonce := []byte("nonce")

	t.Run("reveal set out of range", func(t *testing.T) {
		proof, err := f.bls.DeriveProof(f.messages, f.sigBytes, nonce, f.pubKeyBytes, []int{5})
		require.True(t, errors.Is(err, bbs.ErrInvalidRevealSet))
		require.Nil(t, proof)

		_, err = f.bls.DeriveProof(f.messages, f.sigBytes, nonce, f.pubKeyBytes, []int{-1})
		require.True(t, errors.Is(err, bbs.ErrInvalidRevealSet))
	})

	t.Run("duplicated index", func(t *testing.T) {
		_, err := f.bls.DeriveProof(f.messages, f.sigBytes, nonce, f.pubKeyBytes, []int{1, 1})
		require.True(t, errors.Is(err, bbs.ErrInvalidRevealSet))
	})

	t.Run("signature over other messages", func(t *testing.T) {
		messages := cloneMessages(f.messages)
		messages[4] = []byte("grade: F")

		proof, err := f.bls.DeriveProof(messages, f.sigBytes, nonce, f.pubKeyBytes, []int{0})
		require.True(t, errors.Is(err, bbs.ErrIncompatibleSignature))
		require.Nil(t, proof)
	})

	t.Run("signature from another key", func(t *testing.T) {
		other := newProofFixture(t, f.messages)

		_, err := f.bls.DeriveProof(f.messages, other.sigBytes, nonce, f.pubKeyBytes, []int{0})
		require.True(t, errors.Is(err, bbs.ErrIncompatibleSignature))
	})

	t.Run("malformed inputs", func(t *testing.T) {
		_, err := f.bls.DeriveProof(nil, f.sigBytes, nonce, f.pubKeyBytes, nil)
		require.True(t, errors.Is(err, bbs.ErrEmptyMessageList))

		_, err = f.bls.DeriveProof(f.messages, f.sigBytes[1:], nonce, f.pubKeyBytes, nil)
		require.True(t, errors.Is(err, bbs.ErrMalformedSignature))

		_, err = f.bls.DeriveProof(f.messages, f.sigBytes, nonce, f.pubKeyBytes[1:], nil)
		require.True(t, errors.Is(err, bbs.ErrMalformedKey))
	})
}

func TestCredentialScenario(t *testing.T) {
	messages := [][]byte{
		[]byte("name: Alice"),
		[]byte("degree: BSc"),
		[]byte("issuer: Example University"),
	}

	f := newProofFixture(t, messages)

	valid, err := f.bls.Verify(messages, f.sigBytes, f.pubKeyBytes)
	require.NoError(t, err)
	require.True(t, valid)

	proof, err := f.bls.DeriveProof(messages, f.sigBytes, []byte("session-1"), f.pubKeyBytes, []int{2})
	require.NoError(t, err)

	revealed := [][]byte{[]byte("issuer: Example University")}

	valid, err = f.bls.VerifyProof(revealed, []int{2}, proof, []byte("session-1"), f.pubKeyBytes)
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = f.bls.VerifyProof(revealed, []int{2}, proof, []byte("session-2"), f.pubKeyBytes)
	require.NoError(t, err)
	require.False(t, valid)
}
