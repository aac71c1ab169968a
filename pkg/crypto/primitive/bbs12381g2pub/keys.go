/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"crypto/rand"
	"fmt"
	"hash"
	"io"

	ml "github.com/IBM/mathlib"
	"golang.org/x/crypto/hkdf"
)

const (
	seedSize        = frCompressedSize
	generateKeySalt = "BBS-SIG-KEYGEN-SALT-"

	// compressed point encodings carry the point-at-infinity flag in the third most significant bit.
	infinityFlag = 0x40
)

// PublicKey defines BLS Public Key.
type PublicKey struct {
	PointG2 *ml.G2
}

// PrivateKey defines BLS Private Key.
type PrivateKey struct {
	FR *ml.Zr
}

// UnmarshalPrivateKey unmarshals PrivateKey.
func UnmarshalPrivateKey(privKeyBytes []byte) (*PrivateKey, error) {
	if len(privKeyBytes) != frCompressedSize {
		return nil, fmt.Errorf("%w: invalid size of private key", ErrMalformedKey)
	}

	x, err := parseFr(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: deserialize private key: %w", ErrMalformedKey, err)
	}

	if frIsZero(x) {
		return nil, fmt.Errorf("%w: private key is zero", ErrMalformedKey)
	}

	return &PrivateKey{
		FR: x,
	}, nil
}

// Marshal marshals PrivateKey.
func (k *PrivateKey) Marshal() ([]byte, error) {
	return frToBytes(k.FR), nil
}

// PublicKey returns a Public Key as G2 point generated from the Private Key.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{
		PointG2: curve.GenG2.Mul(k.FR),
	}
}

// UnmarshalPublicKey parses a PublicKey from bytes.
func UnmarshalPublicKey(pubKeyBytes []byte) (*PublicKey, error) {
	if len(pubKeyBytes) != g2CompressedSize {
		return nil, fmt.Errorf("%w: invalid size of public key", ErrMalformedKey)
	}

	if pubKeyBytes[0]&infinityFlag != 0 {
		return nil, fmt.Errorf("%w: public key is the identity element", ErrMalformedKey)
	}

	pointG2, err := curve.NewG2FromCompressed(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: deserialize public key: %w", ErrMalformedKey, err)
	}

	return &PublicKey{
		PointG2: pointG2,
	}, nil
}

// Marshal marshals PublicKey.
func (pk *PublicKey) Marshal() ([]byte, error) {
	return pk.PointG2.Compressed(), nil
}

// GenerateKeyPair generates BBS+ PublicKey and PrivateKey pair.
// A nil seed draws 32 bytes from crypto/rand, any other seed must be exactly 32 bytes long.
func GenerateKeyPair(h func() hash.Hash, seed []byte) (*PublicKey, *PrivateKey, error) {
	return generateKeyPair(h, seed, rand.Reader)
}

func generateKeyPair(h func() hash.Hash, seed []byte, rng io.Reader) (*PublicKey, *PrivateKey, error) {
	if seed != nil && len(seed) != seedSize {
		return nil, nil, ErrInvalidSeed
	}

	okm, err := generateOKM(seed, h, rng)
	if err != nil {
		return nil, nil, err
	}

	privKey, err := privateKeyFromOKM(okm)
	if err != nil {
		return nil, nil, err
	}

	return privKey.PublicKey(), privKey, nil
}

func privateKeyFromOKM(okm []byte) (*PrivateKey, error) {
	x := frFromOKM(okm)
	if frIsZero(x) {
		return nil, fmt.Errorf("%w: derived private key is zero", ErrInvalidSeed)
	}

	return &PrivateKey{FR: x}, nil
}

func generateOKM(seed []byte, h func() hash.Hash, rng io.Reader) ([]byte, error) {
	salt := []byte(generateKeySalt)
	info := make([]byte, 2)

	// ikm = seed || I2OSP(0, 1)
	ikm := make([]byte, seedSize+1)

	if seed != nil {
		copy(ikm, seed)
	} else if _, err := io.ReadFull(rng, ikm[:seedSize]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomness, err)
	}

	return newHKDF(h, ikm, salt, info, expandLen)
}

func newHKDF(h func() hash.Hash, ikm, salt, info []byte, length int) ([]byte, error) {
	reader := hkdf.New(h, ikm, salt, info)
	result := make([]byte, length)

	_, err := io.ReadFull(reader, result)
	if err != nil {
		return nil, err
	}

	return result, nil
}
