/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fingerprint builds and parses did:key identifiers for BLS12-381 public keys.
package fingerprint

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/multiformats/go-multibase"
)

const (
	// BLS12381g2PubKeyMultiCodec for BLS12-381 G2 public key in multicodec table.
	// source: https://github.com/multiformats/multicodec/blob/master/table.csv.
	BLS12381g2PubKeyMultiCodec = 0xeb
	// BLS12381g1g2PubKeyMultiCodec for BLS12-381 G1G2 public key in multicodec table.
	BLS12381g1g2PubKeyMultiCodec = 0xee

	bls12381G2PublicKeyLen = 96
	g1CompressedSize       = 48

	// a uint64 code never needs more than 9 varint bytes in the multicodec table.
	maxMulticodecBytes = 9
)

var errUnknownEncoding = errors.New("unknown key encoding")

// CreateDIDKey returns the did:key DID of a BLS12-381 G2 public key and the id of its verification method
// (https://w3c-ccg.github.io/did-method-key/#format).
func CreateDIDKey(pubKey []byte) (string, string) {
	fp := KeyFingerprint(BLS12381g2PubKeyMultiCodec, pubKey)
	didKey := didKeyPrefix + fp

	return didKey, didKey + "#" + fp
}

// KeyFingerprint prefixes the raw key with its varint multicodec code and encodes the result as base58btc
// multibase. The key bytes are not validated.
func KeyFingerprint(code uint64, pubKey []byte) string {
	buf := binary.AppendUvarint(make([]byte, 0, binary.MaxVarintLen64+len(pubKey)), code)
	buf = append(buf, pubKey...)

	// base58btc is always a supported encoding.
	fp, _ := multibase.Encode(multibase.Base58BTC, buf) //nolint:errcheck

	return fp
}

// PubKeyFromFingerprint returns the raw key and multicodec code of a fingerprint.
// For G1G2 keys only the G2 part is returned.
func PubKeyFromFingerprint(fp string) ([]byte, uint64, error) {
	enc, data, err := multibase.Decode(fp)
	if err != nil || enc != multibase.Base58BTC {
		return nil, 0, errUnknownEncoding
	}

	code, n := binary.Uvarint(data)

	switch {
	case n == 0:
		return nil, 0, errUnknownEncoding
	case n < 0, n > maxMulticodecBytes:
		return nil, 0, errors.New("code exceeds maximum size")
	}

	key := data[n:]

	if code != BLS12381g1g2PubKeyMultiCodec {
		return key, code, nil
	}

	if len(key) != g1CompressedSize+bls12381G2PublicKeyLen {
		return nil, 0, errors.New("invalid bbs+ public key")
	}

	return key[g1CompressedSize:], code, nil
}

// PubKeyFromDIDKey returns the BLS12-381 G2 public key of a did:key DID or key id.
func PubKeyFromDIDKey(didKey string) ([]byte, error) {
	fp, err := MethodIDFromDIDKey(didKey)
	if err != nil {
		return nil, fmt.Errorf("pubKeyFromDIDKey: %w", err)
	}

	pubKey, code, err := PubKeyFromFingerprint(fp)
	if err != nil {
		return nil, fmt.Errorf("pubKeyFromDIDKey: %w", err)
	}

	if code != BLS12381g2PubKeyMultiCodec && code != BLS12381g1g2PubKeyMultiCodec {
		return nil, fmt.Errorf("pubKeyFromDIDKey: unsupported key multicodec code [0x%x]", code)
	}

	if len(pubKey) != bls12381G2PublicKeyLen {
		return nil, errors.New("pubKeyFromDIDKey: invalid size of BLS12-381 G2 public key")
	}

	return pubKey, nil
}
