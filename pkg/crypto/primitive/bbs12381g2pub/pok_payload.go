/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"encoding/binary"
	"errors"
	"math"
)

// maxMessagesCount is the largest message count a proof payload can describe.
const maxMessagesCount = math.MaxUint16

// poKPayload prefixes a proof with the signed message count and the revealed positions.
type poKPayload struct {
	messagesCount int
	revealed      []int
}

func newPoKPayload(messagesCount int, revealed []int) *poKPayload {
	return &poKPayload{
		messagesCount: messagesCount,
		revealed:      revealed,
	}
}

// nolint:gomnd
func parsePoKPayload(bytes []byte) (*poKPayload, error) {
	if len(bytes) < 2 {
		return nil, errors.New("invalid size of PoK payload")
	}

	messagesCount := int(binary.BigEndian.Uint16(bytes))
	if messagesCount == 0 {
		return nil, errors.New("PoK payload has no messages")
	}

	offset := lenInBytes(messagesCount)

	if len(bytes) < offset {
		return nil, errors.New("invalid size of PoK payload")
	}

	revealed := bitvectorToIndexes(bytes[2:offset])

	if len(revealed) > 0 && revealed[len(revealed)-1] >= messagesCount {
		return nil, errors.New("PoK payload reveals a message out of range")
	}

	return &poKPayload{
		messagesCount: messagesCount,
		revealed:      revealed,
	}, nil
}

// nolint:gomnd
func (p *poKPayload) toBytes() ([]byte, error) {
	if p.messagesCount <= 0 || p.messagesCount > maxMessagesCount {
		return nil, errors.New("invalid messages count of PoK payload")
	}

	bytes := make([]byte, p.lenInBytes())

	binary.BigEndian.PutUint16(bytes, uint16(p.messagesCount))

	bitvector := bytes[2:]

	for _, r := range p.revealed {
		if r < 0 || r >= p.messagesCount {
			return nil, errors.New("invalid size of PoK payload")
		}

		bitvector[r/8] |= 1 << (r % 8)
	}

	return bytes, nil
}

func (p *poKPayload) lenInBytes() int {
	return lenInBytes(p.messagesCount)
}

func lenInBytes(messagesCount int) int {
	return 2 + (messagesCount+7)/8 //nolint:gomnd
}

// bitvectorToIndexes lists the set bits in ascending order, bit i%8 of byte i/8 standing for index i.
func bitvectorToIndexes(data []byte) []int {
	revealedIndexes := make([]int, 0)

	for i, v := range data {
		for bit := 0; bit < 8; bit++ {
			if v&(1<<bit) != 0 {
				revealedIndexes = append(revealedIndexes, i*8+bit)
			}
		}
	}

	return revealedIndexes
}
