/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"encoding/binary"
	"errors"
	"fmt"

	ml "github.com/IBM/mathlib"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// blindingGeneratorLabel is appended to the public key to derive h0. Message generators use a 4-byte index,
// so the two input families never collide.
const blindingGeneratorLabel = "h0"

// PublicKeyWithGenerators extends PublicKey with a blinding generator h0, a commitment to the secret key w,
// and a generator for each message h.
type PublicKeyWithGenerators struct {
	h0 *ml.G1
	h  []*ml.G1

	w *ml.G2

	messagesCount int
}

// ToPublicKeyWithGenerators creates PublicKeyWithGenerators from the PublicKey.
// Generators depend only on the public key and the message position, so the first n generators are the same
// for every messagesCount >= n.
func (pk *PublicKey) ToPublicKeyWithGenerators(messagesCount int) (*PublicKeyWithGenerators, error) {
	if messagesCount < 0 {
		return nil, errors.New("negative messages count")
	}

	seed := pk.PointG2.Copy().Compressed()

	h0, err := hashToG1(generatorInput(seed, []byte(blindingGeneratorLabel)))
	if err != nil {
		return nil, fmt.Errorf("create blinding generator: %w", err)
	}

	h := make([]*ml.G1, messagesCount)

	for i := range h {
		h[i], err = hashToG1(generatorInput(seed, uint32ToBytes(uint32(i+1))))
		if err != nil {
			return nil, fmt.Errorf("create generator %d: %w", i, err)
		}
	}

	return &PublicKeyWithGenerators{
		h0:            h0,
		h:             h,
		w:             pk.PointG2,
		messagesCount: messagesCount,
	}, nil
}

// MessagesCount returns the number of message generators.
func (pwg *PublicKeyWithGenerators) MessagesCount() int {
	return pwg.messagesCount
}

func generatorInput(seed, suffix []byte) []byte {
	data := make([]byte, 0, len(seed)+len(suffix))
	data = append(data, seed...)

	return append(data, suffix...)
}

func hashToG1(data []byte) (*ml.G1, error) {
	p, err := bls12381.HashToG1(data, []byte(generatorDST))
	if err != nil {
		return nil, err
	}

	compressed := p.Bytes()

	return curve.NewG1FromCompressed(compressed[:])
}

func uint32ToBytes(value uint32) []byte {
	bytes := make([]byte, 4)

	binary.BigEndian.PutUint32(bytes, value)

	return bytes
}
