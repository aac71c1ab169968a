/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs12381g2pub contains BBS+ signing primitives and keys.
//
// Signatures cover an ordered list of messages and are issued under a public key in G2 of BLS12-381
// (BBS+ as defined in https://eprint.iacr.org/2016/663.pdf, section 4.3). A holder of a signature can
// derive zero-knowledge proofs that disclose any subset of the signed messages and keep the rest hidden.
package bbs12381g2pub

import (
	"context"
	"fmt"
	"sort"

	ml "github.com/IBM/mathlib"
	"github.com/hyperledger/aries-framework-go/component/log"
)

// SchemeID prefixes every signature and proof produced by this package.
const SchemeID byte = 0x01

const (
	csID = "BBS_BLS12381G1_XMD:BLAKE2B-512_SSWU_RO_"

	messageDST   = csID + "MAP_MSG_TO_SCALAR_AS_HASH_"
	challengeDST = csID + "H2S_CHALLENGE_"
	nonceDST     = csID + "H2S_NONCE_"
	// generators are hashed to G1 with the SHA-256 suite of RFC 9380.
	generatorDST = "BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_SIG_GENERATOR_DST_"
)

// nolint:gochecknoglobals
var curve = ml.Curves[ml.BLS12_381_BBS]

// nolint:gochecknoglobals
var logger = log.New("aries-framework/bbs")

var (
	// nolint:gochecknoglobals
	// Number of bytes in G1 X coordinate.
	g1CompressedSize = curve.CompressedG1ByteSize

	// nolint:gochecknoglobals
	// Default BLS 12-381 public key length in G2 field.
	g2CompressedSize = curve.CompressedG2ByteSize

	// nolint:gochecknoglobals
	// Signature length: scheme id, A, e and s.
	signatureLen = 1 + g1CompressedSize + 2*frCompressedSize
)

// BBSG2Pub defines BBS+ signature scheme where public key is a point in the field of G2.
// BBS+ signature scheme (as defined in https://eprint.iacr.org/2016/663.pdf, section 4.3).
// It holds no mutable state and is safe for concurrent use.
type BBSG2Pub struct {
	opts *options
}

// New creates a new BBSG2Pub.
func New(opts ...Opt) *BBSG2Pub {
	return &BBSG2Pub{
		opts: newOptions(opts...),
	}
}

// GenerateKeyPair generates BBS+ PublicKey and PrivateKey pair using the configured hash and randomness.
func (bbs *BBSG2Pub) GenerateKeyPair(seed []byte) (*PublicKey, *PrivateKey, error) {
	return generateKeyPair(bbs.opts.keyHash, seed, bbs.opts.randReader)
}

// Verify makes BLS BBS12-381 signature verification.
// The boolean reports whether the signature matches; an error means the inputs could not be checked.
func (bbs *BBSG2Pub) Verify(messages [][]byte, sigBytes, pubKeyBytes []byte) (bool, error) {
	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return false, fmt.Errorf("parse signature: %w", err)
	}

	pubKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return false, fmt.Errorf("parse public key: %w", err)
	}

	if len(messages) == 0 {
		return false, ErrEmptyMessageList
	}

	publicKeyWithGenerators, err := pubKey.ToPublicKeyWithGenerators(len(messages))
	if err != nil {
		return false, fmt.Errorf("build generators from public key: %w", err)
	}

	return signature.Verify(ParseSignatureMessages(messages), publicKeyWithGenerators)
}

// Sign signs the one or more messages using private key in compressed form.
func (bbs *BBSG2Pub) Sign(messages [][]byte, privKeyBytes []byte) ([]byte, error) {
	privKey, err := UnmarshalPrivateKey(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w", err)
	}

	return bbs.SignWithKey(messages, privKey)
}

// SignWithKey signs the one or more messages using BBS+ key pair.
func (bbs *BBSG2Pub) SignWithKey(messages [][]byte, privKey *PrivateKey) ([]byte, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyMessageList
	}

	pubKeyWithGenerators, err := privKey.PublicKey().ToPublicKeyWithGenerators(len(messages))
	if err != nil {
		return nil, fmt.Errorf("build generators from public key: %w", err)
	}

	signature, err := NewSignature(ParseSignatureMessages(messages), privKey, pubKeyWithGenerators,
		bbs.opts.randReader)
	if err != nil {
		return nil, fmt.Errorf("create signature: %w", err)
	}

	return signature.ToBytes()
}

// DeriveProof derives a proof of BBS+ signature with some messages disclosed.
// revealedIndexes may be empty (nothing disclosed) or cover every message; it is not modified.
func (bbs *BBSG2Pub) DeriveProof(messages [][]byte, sigBytes, nonce, pubKeyBytes []byte,
	revealedIndexes []int) ([]byte, error) {
	if len(messages) == 0 {
		return nil, ErrEmptyMessageList
	}

	if len(messages) > maxMessagesCount {
		return nil, fmt.Errorf("%w: %d messages exceed the proof limit of %d", ErrMessageCountMismatch,
			len(messages), maxMessagesCount)
	}

	revealed, err := sortedRevealedIndexes(revealedIndexes, len(messages))
	if err != nil {
		return nil, err
	}

	pubKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	publicKeyWithGenerators, err := pubKey.ToPublicKeyWithGenerators(len(messages))
	if err != nil {
		return nil, fmt.Errorf("build generators from public key: %w", err)
	}

	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return nil, fmt.Errorf("parse signature: %w", err)
	}

	pokSignature, err := NewPoKOfSignature(signature, ParseSignatureMessages(messages), revealed,
		publicKeyWithGenerators, bbs.opts.randReader)
	if err != nil {
		return nil, fmt.Errorf("init proof of knowledge signature: %w", err)
	}

	challenge := ComputeChallenge(pokSignature.challengeBytes(ParseProofNonce(nonce)))

	proof := pokSignature.GenerateProof(challenge)

	payloadBytes, err := newPoKPayload(len(messages), revealed).toBytes()
	if err != nil {
		return nil, fmt.Errorf("derive proof: payload to bytes: %w", err)
	}

	signatureProofBytes := make([]byte, 0, 1+len(payloadBytes)+proof.lenInBytes())
	signatureProofBytes = append(signatureProofBytes, SchemeID)
	signatureProofBytes = append(signatureProofBytes, payloadBytes...)
	signatureProofBytes = append(signatureProofBytes, proof.ToBytes()...)

	return signatureProofBytes, nil
}

// VerifyProof verifies BBS+ signature proof for one ore more revealed messages.
// revealedMessages[i] is the message disclosed at position revealedIndexes[i]. The boolean reports whether
// the proof is valid; an error means the inputs are malformed.
func (bbs *BBSG2Pub) VerifyProof(revealedMessages [][]byte, revealedIndexes []int,
	proof, nonce, pubKeyBytes []byte) (bool, error) {
	if len(revealedMessages) != len(revealedIndexes) {
		return false, fmt.Errorf("%w: %d messages for %d indexes", ErrInvalidRevealSet,
			len(revealedMessages), len(revealedIndexes))
	}

	if len(proof) == 0 || proof[0] != SchemeID {
		return false, fmt.Errorf("%w: unknown scheme id", ErrMalformedProof)
	}

	payload, err := parsePoKPayload(proof[1:])
	if err != nil {
		return false, fmt.Errorf("%w: parse signature proof: %w", ErrMalformedProof, err)
	}

	signatureProof, err := ParseSignatureProof(proof[1+payload.lenInBytes():],
		payload.messagesCount-len(payload.revealed))
	if err != nil {
		return false, fmt.Errorf("parse signature proof: %w", err)
	}

	pubKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return false, fmt.Errorf("parse public key: %w", err)
	}

	// indexes are matched against the messages by position, so sort them as pairs.
	order := make([]int, len(revealedIndexes))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return revealedIndexes[order[i]] < revealedIndexes[order[j]]
	})

	sortedIndexes := make([]int, len(order))
	for i, o := range order {
		sortedIndexes[i] = revealedIndexes[o]
	}

	if _, err = sortedRevealedIndexes(sortedIndexes, payload.messagesCount); err != nil {
		return false, err
	}

	if !equalIndexes(sortedIndexes, payload.revealed) {
		logger.Debugf("revealed indexes %v do not match the proof indexes %v", sortedIndexes, payload.revealed)

		return false, nil
	}

	publicKeyWithGenerators, err := pubKey.ToPublicKeyWithGenerators(payload.messagesCount)
	if err != nil {
		return false, fmt.Errorf("build generators from public key: %w", err)
	}

	revealed := make(map[int]*SignatureMessage, len(order))
	for _, o := range order {
		revealed[revealedIndexes[o]] = ParseSignatureMessage(revealedMessages[o])
	}

	return signatureProof.Verify(revealed, publicKeyWithGenerators, ParseProofNonce(nonce)), nil
}

// VerifyBatch verifies every signature item independently. Result i is the verdict for items[i].
// A malformed item fails the whole batch with an error naming its position.
func (bbs *BBSG2Pub) VerifyBatch(ctx context.Context, items []SignatureItem) ([]bool, error) {
	return verifyBatch(ctx, bbs.opts.batchLimit, len(items), func(i int) (bool, error) {
		return bbs.Verify(items[i].Messages, items[i].Signature, items[i].PublicKey)
	})
}

// VerifyProofBatch verifies every proof item independently. Result i is the verdict for items[i].
// A malformed item fails the whole batch with an error naming its position.
func (bbs *BBSG2Pub) VerifyProofBatch(ctx context.Context, items []ProofItem) ([]bool, error) {
	return verifyBatch(ctx, bbs.opts.batchLimit, len(items), func(i int) (bool, error) {
		return bbs.VerifyProof(items[i].RevealedMessages, items[i].RevealedIndexes, items[i].Proof,
			items[i].Nonce, items[i].PublicKey)
	})
}

// sortedRevealedIndexes returns a sorted copy of indexes after checking that each one addresses one of
// messagesCount messages at most once.
func sortedRevealedIndexes(indexes []int, messagesCount int) ([]int, error) {
	sorted := make([]int, len(indexes))
	copy(sorted, indexes)
	sort.Ints(sorted)

	for i, idx := range sorted {
		if idx < 0 || idx >= messagesCount {
			return nil, fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidRevealSet, idx, messagesCount)
		}

		if i > 0 && sorted[i-1] == idx {
			return nil, fmt.Errorf("%w: duplicated index %d", ErrInvalidRevealSet, idx)
		}
	}

	return sorted, nil
}

func equalIndexes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// ProofNonce is a nonce for Proof of Knowledge proof.
type ProofNonce struct {
	fr *ml.Zr
}

// ParseProofNonce creates a new ProofNonce from bytes.
func ParseProofNonce(proofNonceBytes []byte) *ProofNonce {
	return &ProofNonce{
		hashToFr(proofNonceBytes, nonceDST),
	}
}

// ToBytes converts ProofNonce into bytes.
func (pn *ProofNonce) ToBytes() []byte {
	return frToBytes(pn.fr)
}
