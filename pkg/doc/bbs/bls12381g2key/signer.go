/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bls12381g2key

import (
	"errors"

	"github.com/Project-Plato/jsonld-signatures-bbs/pkg/doc/bbs"
)

// Signer signs message lists with the key pair's private key.
type Signer struct {
	privateKey []byte
	scheme     bbs.BBS
}

// Signer returns a Signer; it fails for public-only key pairs.
func (kp *KeyPair) Signer() (*Signer, error) {
	if !kp.HasPrivateKey() {
		return nil, errors.New("key pair has no private key")
	}

	return &Signer{
		privateKey: kp.privateKey,
		scheme:     kp.scheme,
	}, nil
}

// Sign signs the ordered messages.
func (s *Signer) Sign(messages [][]byte) ([]byte, error) {
	return s.scheme.Sign(messages, s.privateKey)
}

// Verifier checks signatures and derived proofs against the key pair's public key.
type Verifier struct {
	publicKey []byte
	scheme    bbs.BBS
}

// Verifier returns a Verifier for the public key.
func (kp *KeyPair) Verifier() *Verifier {
	return &Verifier{
		publicKey: kp.publicKey,
		scheme:    kp.scheme,
	}
}

// Verify checks a signature over the ordered messages.
func (v *Verifier) Verify(messages [][]byte, signature []byte) (bool, error) {
	return v.scheme.Verify(messages, signature, v.publicKey)
}

// DeriveProof derives a selective disclosure proof from a signature issued under the key pair.
func (v *Verifier) DeriveProof(messages [][]byte, signature, nonce []byte, revealedIndexes []int) ([]byte, error) {
	return v.scheme.DeriveProof(messages, signature, nonce, v.publicKey, revealedIndexes)
}

// VerifyProof checks a derived proof against the disclosed messages.
func (v *Verifier) VerifyProof(revealedMessages [][]byte, revealedIndexes []int, proof, nonce []byte) (bool, error) {
	return v.scheme.VerifyProof(revealedMessages, revealedIndexes, proof, nonce, v.publicKey)
}
