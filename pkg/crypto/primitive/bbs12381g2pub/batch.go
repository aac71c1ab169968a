/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SignatureItem is one signature check of a batch.
type SignatureItem struct {
	Messages  [][]byte
	Signature []byte
	PublicKey []byte
}

// ProofItem is one proof check of a batch.
type ProofItem struct {
	RevealedMessages [][]byte
	RevealedIndexes  []int
	Proof            []byte
	Nonce            []byte
	PublicKey        []byte
}

// verifyBatch runs verify for every index in [0, count) with at most limit checks in flight.
func verifyBatch(ctx context.Context, limit, count int, verify func(i int) (bool, error)) ([]bool, error) {
	results := make([]bool, count)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i := 0; i < count; i++ {
		i := i

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			ok, err := verify(i)
			if err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}

			results[i] = ok

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
