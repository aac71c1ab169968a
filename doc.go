/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jsonldsignaturesbbs provides BBS+ signatures over BLS12-381 with selective disclosure proofs.
//
// Packages for end developer usage
//
// pkg/crypto/primitive/bbs12381g2pub: key generation, signing, verification, proof derivation and
// proof verification over ordered message lists.
//
// pkg/doc/bbs: the BBS engine interface consumed by linked data signature suites.
//
// pkg/doc/bbs/bls12381g2key: the Bls12381G2Key2020 key pair document with did:key fingerprints.
//
// Basic workflow
//
//	1) Generate or import a key pair.
//	2) Sign the canonicalized statements of a document as an ordered message list.
//	3) Derive a proof that reveals a subset of the statements, bound to a verifier nonce.
//	4) Verify the proof with the disclosed statements, their indexes and the public key.
package jsonldsignaturesbbs
