/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs defines the BBS+ signature scheme contract used by key pair documents and signature suites.
package bbs

// BBS defines BBS+ signature scheme (https://eprint.iacr.org/2016/663.pdf, section 4.3).
type BBS interface {
	// Sign signs the ordered messages with a marshalled private key.
	Sign(messages [][]byte, privKeyBytes []byte) ([]byte, error)

	// Verify will verify each signature against a public key
	// returns:
	// 		true if the signature is valid for the messages, false otherwise
	// 		error if any input is malformed
	Verify(messages [][]byte, signature, pubKey []byte) (bool, error)

	// DeriveProof derives a selective disclosure proof revealing the messages at revealedIndexes.
	DeriveProof(messages [][]byte, signature, nonce, pubKey []byte, revealedIndexes []int) ([]byte, error)

	// VerifyProof verifies a derived proof, where revealedMessages[i] is disclosed at revealedIndexes[i].
	VerifyProof(revealedMessages [][]byte, revealedIndexes []int, proof, nonce, pubKey []byte) (bool, error)
}
