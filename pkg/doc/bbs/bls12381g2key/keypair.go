/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bls12381g2key implements the Bls12381G2Key2020 key pair document used by BBS+ signature suites.
package bls12381g2key

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcutil/base58"

	"github.com/Project-Plato/jsonld-signatures-bbs/pkg/crypto/primitive/bbs12381g2pub"
	"github.com/Project-Plato/jsonld-signatures-bbs/pkg/doc/bbs"
	"github.com/Project-Plato/jsonld-signatures-bbs/pkg/doc/util/fingerprint"
)

// KeyType is the linked data type of the key pair.
const KeyType = "Bls12381G2Key2020"

// KeyPair is a BLS12-381 G2 key pair document. PrivateKeyBase58 is empty for public-only key pairs.
type KeyPair struct {
	ID               string `json:"id,omitempty"`
	Type             string `json:"type"`
	Controller       string `json:"controller,omitempty"`
	PublicKeyBase58  string `json:"publicKeyBase58"`
	PrivateKeyBase58 string `json:"privateKeyBase58,omitempty"`

	publicKey  []byte
	privateKey []byte
	scheme     bbs.BBS
}

type options struct {
	id         string
	controller string
	seed       []byte
	randReader io.Reader
	scheme     bbs.BBS
}

// Opt configures key pair creation.
type Opt func(opts *options)

// WithID sets the key id.
func WithID(id string) Opt {
	return func(opts *options) {
		opts.id = id
	}
}

// WithController sets the controller of the key.
func WithController(controller string) Opt {
	return func(opts *options) {
		opts.controller = controller
	}
}

// WithSeed derives the key pair from a 32-byte seed instead of fresh randomness.
func WithSeed(seed []byte) Opt {
	return func(opts *options) {
		opts.seed = seed
	}
}

// WithRandReader sets the randomness source of seedless key generation.
func WithRandReader(r io.Reader) Opt {
	return func(opts *options) {
		opts.randReader = r
	}
}

// WithScheme sets the BBS+ implementation used by Signer and Verifier. Defaults to bbs12381g2pub.
func WithScheme(scheme bbs.BBS) Opt {
	return func(opts *options) {
		opts.scheme = scheme
	}
}

func newOptions(opts ...Opt) *options {
	o := &options{}

	for _, opt := range opts {
		opt(o)
	}

	if o.scheme == nil {
		o.scheme = bbs12381g2pub.New()
	}

	return o
}

// Generate creates a new key pair.
func Generate(opts ...Opt) (*KeyPair, error) {
	o := newOptions(opts...)

	var engineOpts []bbs12381g2pub.Opt

	if o.randReader != nil {
		engineOpts = append(engineOpts, bbs12381g2pub.WithRandReader(o.randReader))
	}

	pubKey, privKey, err := bbs12381g2pub.New(engineOpts...).GenerateKeyPair(o.seed)
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}

	pubKeyBytes, err := pubKey.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}

	privKeyBytes, err := privKey.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal private key: %w", err)
	}

	kp := &KeyPair{
		ID:               o.id,
		Type:             KeyType,
		Controller:       o.controller,
		PublicKeyBase58:  base58.Encode(pubKeyBytes),
		PrivateKeyBase58: base58.Encode(privKeyBytes),
		publicKey:        pubKeyBytes,
		privateKey:       privKeyBytes,
		scheme:           o.scheme,
	}

	if kp.Controller != "" && kp.ID == "" {
		kp.ID = kp.Controller + "#" + kp.Fingerprint()
	}

	return kp, nil
}

// FromJSON parses and validates a key pair document.
func FromJSON(data []byte, opts ...Opt) (*KeyPair, error) {
	kp := &KeyPair{}

	if err := json.Unmarshal(data, kp); err != nil {
		return nil, fmt.Errorf("unmarshal key pair: %w", err)
	}

	if err := kp.init(newOptions(opts...)); err != nil {
		return nil, err
	}

	return kp, nil
}

// FromFingerprint creates a public-only key pair from a did:key fingerprint.
func FromFingerprint(fp string, opts ...Opt) (*KeyPair, error) {
	pubKeyBytes, code, err := fingerprint.PubKeyFromFingerprint(fp)
	if err != nil {
		return nil, fmt.Errorf("parse fingerprint: %w", err)
	}

	if code != fingerprint.BLS12381g2PubKeyMultiCodec {
		return nil, fmt.Errorf("unsupported key multicodec code [0x%x]", code)
	}

	controller, keyID := fingerprint.CreateDIDKey(pubKeyBytes)

	return newPublicKeyPair(keyID, controller, pubKeyBytes, newOptions(opts...))
}

// FromDIDKey creates a public-only key pair from a did:key DID or one of its key ids.
// A BLS12-381 G1G2 did:key yields its G2 key; the DID stays the controller.
func FromDIDKey(didKey string, opts ...Opt) (*KeyPair, error) {
	pubKeyBytes, err := fingerprint.PubKeyFromDIDKey(didKey)
	if err != nil {
		return nil, fmt.Errorf("parse did:key: %w", err)
	}

	fp, err := fingerprint.MethodIDFromDIDKey(didKey)
	if err != nil {
		return nil, fmt.Errorf("parse did:key: %w", err)
	}

	controller := "did:key:" + fp

	return newPublicKeyPair(controller+"#"+fp, controller, pubKeyBytes, newOptions(opts...))
}

func newPublicKeyPair(id, controller string, pubKeyBytes []byte, o *options) (*KeyPair, error) {
	kp := &KeyPair{
		ID:              id,
		Type:            KeyType,
		Controller:      controller,
		PublicKeyBase58: base58.Encode(pubKeyBytes),
	}

	if err := kp.init(o); err != nil {
		return nil, err
	}

	return kp, nil
}

func (kp *KeyPair) init(o *options) error {
	if kp.Type != KeyType {
		return fmt.Errorf("unsupported key type %q", kp.Type)
	}

	pubKeyBytes := base58.Decode(kp.PublicKeyBase58)

	pubKey, err := bbs12381g2pub.UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}

	pubKeyBytes, err = pubKey.Marshal()
	if err != nil {
		return fmt.Errorf("marshal public key: %w", err)
	}

	kp.publicKey = pubKeyBytes
	kp.scheme = o.scheme

	if kp.PrivateKeyBase58 == "" {
		return nil
	}

	privKeyBytes := base58.Decode(kp.PrivateKeyBase58)

	privKey, err := bbs12381g2pub.UnmarshalPrivateKey(privKeyBytes)
	if err != nil {
		return fmt.Errorf("parse private key: %w", err)
	}

	derived, err := privKey.PublicKey().Marshal()
	if err != nil {
		return fmt.Errorf("marshal public key: %w", err)
	}

	if !bytes.Equal(derived, pubKeyBytes) {
		return errors.New("private key does not match public key")
	}

	kp.privateKey = privKeyBytes

	return nil
}

// JSON returns the key pair document. The private key is included only when exportPrivate is set.
func (kp *KeyPair) JSON(exportPrivate bool) ([]byte, error) {
	if exportPrivate {
		return json.Marshal(kp)
	}

	return json.Marshal(kp.PublicOnly())
}

// PublicOnly returns a copy of the key pair without the private key.
func (kp *KeyPair) PublicOnly() *KeyPair {
	return &KeyPair{
		ID:              kp.ID,
		Type:            kp.Type,
		Controller:      kp.Controller,
		PublicKeyBase58: kp.PublicKeyBase58,
		publicKey:       kp.publicKey,
		scheme:          kp.scheme,
	}
}

// HasPrivateKey reports whether the key pair can sign.
func (kp *KeyPair) HasPrivateKey() bool {
	return len(kp.privateKey) > 0
}

// PublicKey returns the 96-byte compressed public key.
func (kp *KeyPair) PublicKey() []byte {
	return kp.publicKey
}

// Fingerprint returns the did:key fingerprint of the public key.
func (kp *KeyPair) Fingerprint() string {
	return fingerprint.KeyFingerprint(fingerprint.BLS12381g2PubKeyMultiCodec, kp.publicKey)
}

// DIDKey returns the did:key DID of the public key and the id of its verification method.
func (kp *KeyPair) DIDKey() (string, string) {
	return fingerprint.CreateDIDKey(kp.publicKey)
}

// VerifyFingerprint checks that fp is the fingerprint of this key pair's public key.
func (kp *KeyPair) VerifyFingerprint(fp string) error {
	pubKeyBytes, code, err := fingerprint.PubKeyFromFingerprint(fp)
	if err != nil {
		return fmt.Errorf("parse fingerprint: %w", err)
	}

	if code != fingerprint.BLS12381g2PubKeyMultiCodec {
		return fmt.Errorf("fingerprint multicodec code [0x%x] is not a BLS12-381 G2 key", code)
	}

	if !bytes.Equal(pubKeyBytes, kp.publicKey) {
		return errors.New("fingerprint does not match public key")
	}

	return nil
}
