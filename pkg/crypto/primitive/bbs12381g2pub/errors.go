/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import "errors"

// Errors returned by the signature engine. They are wrapped with context, so compare them with errors.Is.
var (
	// ErrInvalidSeed is returned when a key generation seed is present but is not exactly 32 bytes long.
	ErrInvalidSeed = errors.New("invalid size of seed")
	// ErrMalformedKey is returned for undecodable, non-canonical or identity keys.
	ErrMalformedKey = errors.New("malformed key")
	// ErrEmptyMessageList is returned when signing or verifying zero messages.
	ErrEmptyMessageList = errors.New("messages are not defined")
	// ErrGeneratorMismatch is returned when more messages are given than the key has generators for.
	ErrGeneratorMismatch = errors.New("not enough message generators")
	// ErrMalformedSignature is returned for signature encodings that cannot be decoded.
	ErrMalformedSignature = errors.New("malformed signature")
	// ErrMessageCountMismatch is returned when the message count does not fit the key generators.
	ErrMessageCountMismatch = errors.New("message count mismatch")
	// ErrInvalidRevealSet is returned for out of range or duplicated revealed indexes.
	ErrInvalidRevealSet = errors.New("invalid revealed indexes")
	// ErrIncompatibleSignature is returned when deriving a proof from a signature that does not verify.
	ErrIncompatibleSignature = errors.New("signature does not match messages and public key")
	// ErrMalformedProof is returned for proof encodings that cannot be decoded.
	ErrMalformedProof = errors.New("malformed proof")
	// ErrRandomness is returned when the randomness source fails.
	ErrRandomness = errors.New("randomness source failure")
)
