/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"crypto/rand"
	"crypto/sha256"
	"hash"
	"io"
	"runtime"
)

type options struct {
	randReader io.Reader
	keyHash    func() hash.Hash
	batchLimit int
}

// Opt configures a BBSG2Pub instance.
type Opt func(opts *options)

// WithRandReader sets the randomness source used for signing, proof derivation and seedless key generation.
// Defaults to crypto/rand.Reader.
func WithRandReader(r io.Reader) Opt {
	return func(opts *options) {
		opts.randReader = r
	}
}

// WithKeyHash sets the hash used by the HKDF key derivation. Defaults to SHA-256.
func WithKeyHash(h func() hash.Hash) Opt {
	return func(opts *options) {
		opts.keyHash = h
	}
}

// WithBatchLimit caps the number of items verified concurrently by VerifyBatch and VerifyProofBatch.
// Values below 1 are ignored. Defaults to runtime.NumCPU().
func WithBatchLimit(limit int) Opt {
	return func(opts *options) {
		if limit > 0 {
			opts.batchLimit = limit
		}
	}
}

func newOptions(opts ...Opt) *options {
	o := &options{
		randReader: rand.Reader,
		keyHash:    sha256.New,
		batchLimit: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
