/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub_test

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"

	bbs "github.com/Project-Plato/jsonld-signatures-bbs/pkg/crypto/primitive/bbs12381g2pub"
)

func TestGenerateKeyPair(t *testing.T) {
	h := sha256.New

	seed := make([]byte, 32)

	pubKey, privKey, err := bbs.GenerateKeyPair(h, seed)
	require.NoError(t, err)
	require.NotNil(t, pubKey)
	require.NotNil(t, privKey)

	privKeyBytes, err := privKey.Marshal()
	require.NoError(t, err)
	require.Equal(t, "0806146199a02d68c6f1fce17531e5c9c8c8a5cf1c2907334467e0bcc3bca204",
		hex.EncodeToString(privKeyBytes))

	// use random seed
	pubKey, privKey, err = bbs.GenerateKeyPair(h, nil)
	require.NoError(t, err)
	require.NotNil(t, pubKey)
	require.NotNil(t, privKey)

	// invalid size of seed
	pubKey, privKey, err = bbs.GenerateKeyPair(h, make([]byte, 31))
	require.Error(t, err)
	require.EqualError(t, err, "invalid size of seed")
	require.Nil(t, pubKey)
	require.Nil(t, privKey)

	// an empty seed is not a request for randomness.
	_, _, err = bbs.GenerateKeyPair(h, []byte{})
	require.True(t, errors.Is(err, bbs.ErrInvalidSeed))
}

func TestGenerateKeyPairDeterministic(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}

	pubKey1, privKey1, err := bbs.GenerateKeyPair(sha256.New, seed)
	require.NoError(t, err)

	pubKey2, privKey2, err := bbs.GenerateKeyPair(sha256.New, seed)
	require.NoError(t, err)

	requireSameKeys(t, pubKey1, privKey1, pubKey2, privKey2)

	privKeyBytes, err := privKey1.Marshal()
	require.NoError(t, err)
	require.Equal(t, "6b27ccd926ca0e307d3105fe28cc5f824e909d918c2365283c374b98dbc28c85",
		hex.EncodeToString(privKeyBytes))

	t.Run("engine uses configured randomness for nil seed", func(t *testing.T) {
		engine := bbs.New(bbs.WithRandReader(bytes.NewReader(seed)))

		pubKey3, privKey3, err := engine.GenerateKeyPair(nil)
		require.NoError(t, err)

		requireSameKeys(t, pubKey1, privKey1, pubKey3, privKey3)
	})

	t.Run("engine uses configured hash", func(t *testing.T) {
		engine := bbs.New(bbs.WithKeyHash(sha256.New))

		pubKey3, privKey3, err := engine.GenerateKeyPair(seed)
		require.NoError(t, err)

		requireSameKeys(t, pubKey1, privKey1, pubKey3, privKey3)
	})

	t.Run("randomness failure", func(t *testing.T) {
		engine := bbs.New(bbs.WithRandReader(bytes.NewReader(nil)))

		_, _, err := engine.GenerateKeyPair(nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, bbs.ErrRandomness))
	})
}

func TestPrivateKey_Marshal(t *testing.T) {
	_, privKey, err := generateKeyPairRandom()
	require.NoError(t, err)

	privKeyBytes, err := privKey.Marshal()
	require.NoError(t, err)
	require.Len(t, privKeyBytes, 32)

	privKeyUnmarshalled, err := bbs.UnmarshalPrivateKey(privKeyBytes)
	require.NoError(t, err)
	require.NotNil(t, privKeyUnmarshalled)

	privKeyBytes2, err := privKeyUnmarshalled.Marshal()
	require.NoError(t, err)
	require.Equal(t, privKeyBytes, privKeyBytes2)
}

func TestUnmarshalPrivateKey_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		err   string
	}{
		{
			name:  "invalid size",
			input: make([]byte, 31),
			err:   "malformed key: invalid size of private key",
		},
		{
			name:  "zero",
			input: make([]byte, 32),
			err:   "malformed key: private key is zero",
		},
		{
			name:  "not reduced",
			input: bytes.Repeat([]byte{0xff}, 32),
			err:   "malformed key: deserialize private key: scalar is not reduced modulo the group order",
		},
	}

	for _, test := range tests {
		tc := test
		t.Run(tc.name, func(t *testing.T) {
			privKey, err := bbs.UnmarshalPrivateKey(tc.input)
			require.EqualError(t, err, tc.err)
			require.True(t, errors.Is(err, bbs.ErrMalformedKey))
			require.Nil(t, privKey)
		})
	}
}

func TestPrivateKey_PublicKey(t *testing.T) {
	pubKey, privKey, err := generateKeyPairRandom()
	require.NoError(t, err)

	pubKeyBytes, err := pubKey.Marshal()
	require.NoError(t, err)

	derivedBytes, err := privKey.PublicKey().Marshal()
	require.NoError(t, err)

	require.Equal(t, pubKeyBytes, derivedBytes)
}

func TestPublicKey_Marshal(t *testing.T) {
	pubKey, _, err := generateKeyPairRandom()
	require.NoError(t, err)

	pubKeyBytes, err := pubKey.Marshal()
	require.NoError(t, err)
	require.Len(t, pubKeyBytes, 96)

	pubKeyUnmarshalled, err := bbs.UnmarshalPublicKey(pubKeyBytes)
	require.NoError(t, err)
	require.NotNil(t, pubKeyUnmarshalled)

	pubKeyBytes2, err := pubKeyUnmarshalled.Marshal()
	require.NoError(t, err)
	require.Equal(t, pubKeyBytes, pubKeyBytes2)
}

func TestUnmarshalPublicKey_Errors(t *testing.T) {
	pubKey, err := bbs.UnmarshalPublicKey([]byte("invalid"))
	require.EqualError(t, err, "malformed key: invalid size of public key")
	require.Nil(t, pubKey)

	identity := make([]byte, 96)
	identity[0] = 0xc0

	pubKey, err = bbs.UnmarshalPublicKey(identity)
	require.EqualError(t, err, "malformed key: public key is the identity element")
	require.Nil(t, pubKey)

	notOnCurve := bytes.Repeat([]byte{0x9a}, 96)

	pubKey, err = bbs.UnmarshalPublicKey(notOnCurve)
	require.Error(t, err)
	require.True(t, errors.Is(err, bbs.ErrMalformedKey))
	require.Contains(t, err.Error(), "deserialize public key")
	require.Nil(t, pubKey)
}

func TestParseMattrKeys(t *testing.T) {
	privKeyB58 := "5D6Pa8dSwApdnfg7EZR8WnGfvLDCZPZGsZ5Y1ELL9VDj"
	privKeyBytes := base58.Decode(privKeyB58)

	pubKeyB58 := "oqpWYKaZD9M1Kbe94BVXpr8WTdFBNZyKv48cziTiQUeuhm7sBhCABMyYG4kcMrseC68YTFFgyhiNeBKjzdKk9MiRWuLv5H4FFujQsQK2KTAtzU8qTBiZqBHMmnLF4PL7Ytu" //nolint:lll
	pubKeyBytes := base58.Decode(pubKeyB58)

	privKey, err := bbs.UnmarshalPrivateKey(privKeyBytes)
	require.NoError(t, err)

	derivedPubKeyBytes, err := privKey.PublicKey().Marshal()
	require.NoError(t, err)
	require.Equal(t, pubKeyBytes, derivedPubKeyBytes)

	messagesBytes := [][]byte{[]byte("message1"), []byte("message2")}
	signatureBytes, err := bbs.New().Sign(messagesBytes, privKeyBytes)
	require.NoError(t, err)

	valid, err := bbs.New().Verify(messagesBytes, signatureBytes, pubKeyBytes)
	require.NoError(t, err)
	require.True(t, valid)
}

func generateKeyPairRandom() (*bbs.PublicKey, *bbs.PrivateKey, error) {
	seed := make([]byte, 32)

	_, err := rand.Read(seed)
	if err != nil {
		panic(err)
	}

	return bbs.GenerateKeyPair(sha256.New, seed)
}

func requireSameKeys(t *testing.T, pubKey1 *bbs.PublicKey, privKey1 *bbs.PrivateKey,
	pubKey2 *bbs.PublicKey, privKey2 *bbs.PrivateKey) {
	t.Helper()

	pub1, err := pubKey1.Marshal()
	require.NoError(t, err)

	pub2, err := pubKey2.Marshal()
	require.NoError(t, err)

	priv1, err := privKey1.Marshal()
	require.NoError(t, err)

	priv2, err := privKey2.Marshal()
	require.NoError(t, err)

	require.Equal(t, pub1, pub2)
	require.Equal(t, priv1, priv2)
}
