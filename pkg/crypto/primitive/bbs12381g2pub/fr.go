/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"bytes"
	"errors"
	"fmt"
	"hash"
	"io"
	"math/big"

	ml "github.com/IBM/mathlib"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/blake2b"

	"github.com/Project-Plato/jsonld-signatures-bbs/internal/third_party/hash2field"
)

const (
	// frCompressedSize is the size of a canonical scalar encoding.
	frCompressedSize = 32
	// expandLen is the number of uniform bytes reduced into one scalar: ceil((ceil(log2(r)) + k) / 8), k = 128.
	expandLen = 48
)

// nolint:gochecknoglobals
var frModulus = fr.Modulus()

func newBlake2b512() hash.Hash {
	// We pass a null key so error is impossible here.
	h, _ := blake2b.New512(nil) //nolint:errcheck

	return h
}

// hashToFr maps arbitrary bytes to a scalar under the given domain separation tag.
func hashToFr(msg []byte, dst string) *ml.Zr {
	// DST constants are well below 255 bytes and expandLen fits a single hash output, so no error is possible.
	okm, _ := hash2field.ExpandMsgXMD(newBlake2b512, msg, []byte(dst), expandLen) //nolint:errcheck

	return frFromOKM(okm)
}

// frFromOKM reduces a big-endian integer of any width modulo the group order.
func frFromOKM(okm []byte) *ml.Zr {
	v := new(big.Int).SetBytes(okm)
	v.Mod(v, frModulus)

	return curve.NewZrFromBytes(v.FillBytes(make([]byte, frCompressedSize)))
}

// parseFr reads a canonical 32-byte big-endian scalar.
func parseFr(data []byte) (*ml.Zr, error) {
	if len(data) != frCompressedSize {
		return nil, errors.New("invalid size of scalar")
	}

	if new(big.Int).SetBytes(data).Cmp(frModulus) >= 0 {
		return nil, errors.New("scalar is not reduced modulo the group order")
	}

	return curve.NewZrFromBytes(data), nil
}

// frToBytes returns the canonical 32-byte encoding of a scalar.
func frToBytes(z *ml.Zr) []byte {
	v := new(big.Int).SetBytes(z.Bytes())
	v.Mod(v, frModulus)

	return v.FillBytes(make([]byte, frCompressedSize))
}

func frEqual(a, b *ml.Zr) bool {
	return bytes.Equal(frToBytes(a), frToBytes(b))
}

func frIsZero(z *ml.Zr) bool {
	return frEqual(z, curve.NewZrFromInt(0))
}

func frNeg(z *ml.Zr) *ml.Zr {
	return curve.ModSub(curve.NewZrFromInt(0), z, curve.GroupOrder)
}

// randomFr draws a uniformly distributed scalar from rng.
func randomFr(rng io.Reader) (*ml.Zr, error) {
	buf := make([]byte, expandLen)

	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomness, err)
	}

	return frFromOKM(buf), nil
}

// randomNonZeroFr draws scalars from rng until a non-zero one comes up.
func randomNonZeroFr(rng io.Reader) (*ml.Zr, error) {
	for {
		z, err := randomFr(rng)
		if err != nil {
			return nil, err
		}

		if !frIsZero(z) {
			return z, nil
		}
	}
}
