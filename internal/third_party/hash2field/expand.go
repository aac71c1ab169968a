/*
SPDX-License-Identifier: Apache-2.0
(https://github.com/kilic/bls12-381/blob/master/LICENSE)

Taken from https://github.com/kilic/bls12-381/blob/master/hash_to_field.go
(rev a288617c07f1bd60613c43dbde211b4a911e4791)

Changes:
1) pass hash function as input for expandMsgXMD() - i.e. don't stick on SHA-256 only.
2) exported, with bounds checks on the domain and output lengths.
*/

// Package hash2field implements expand_message_xmd from the hash-to-curve draft over any hash.Hash.
package hash2field

import (
	"errors"
	"hash"
)

const (
	maxDomainLen = 255
	maxBlocks    = 255
	maxOutLen    = 65535
)

// ExpandMsgXMD expands msg into outLen uniformly random bytes bound to the domain separation tag.
func ExpandMsgXMD(f func() hash.Hash, msg, domain []byte, outLen int) ([]byte, error) {
	h := f()

	if len(domain) > maxDomainLen {
		return nil, errors.New("invalid domain length")
	}

	if outLen <= 0 || outLen > maxOutLen {
		return nil, errors.New("invalid output length")
	}

	ell := (outLen + h.Size() - 1) / h.Size()
	if ell > maxBlocks {
		return nil, errors.New("output length too large for hash function")
	}

	domainLen := uint8(len(domain))

	// DST_prime = DST || I2OSP(len(DST), 1)
	// b_0 = H(Z_pad || msg || l_i_b_str || I2OSP(0, 1) || DST_prime)
	_, _ = h.Write(make([]byte, h.BlockSize()))
	_, _ = h.Write(msg)
	_, _ = h.Write([]byte{uint8(outLen >> 8), uint8(outLen)})
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(domain)
	_, _ = h.Write([]byte{domainLen})
	b0 := h.Sum(nil)

	// b_1 = H(b_0 || I2OSP(1, 1) || DST_prime)
	h.Reset()
	_, _ = h.Write(b0)
	_, _ = h.Write([]byte{1})
	_, _ = h.Write(domain)
	_, _ = h.Write([]byte{domainLen})
	bi := h.Sum(nil)

	out := make([]byte, 0, ell*h.Size())
	out = append(out, bi...)

	tmp := make([]byte, h.Size())

	for i := 2; i <= ell; i++ {
		// b_i = H(strxor(b_0, b_(i - 1)) || I2OSP(i, 1) || DST_prime)
		for j := range tmp {
			tmp[j] = b0[j] ^ bi[j]
		}

		h.Reset()
		_, _ = h.Write(tmp)
		_, _ = h.Write([]byte{uint8(i)})
		_, _ = h.Write(domain)
		_, _ = h.Write([]byte{domainLen})
		bi = h.Sum(nil)

		out = append(out, bi...)
	}

	return out[:outLen], nil
}
