/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	ml "github.com/IBM/mathlib"
)

// SignatureMessage defines a message to be used for a signature check.
type SignatureMessage struct {
	FR *ml.Zr
}

// ParseSignatureMessage parses SignatureMessage from bytes.
func ParseSignatureMessage(message []byte) *SignatureMessage {
	return &SignatureMessage{
		FR: hashToFr(message, messageDST),
	}
}

// ParseSignatureMessages parses every message of the list in order.
func ParseSignatureMessages(messages [][]byte) []*SignatureMessage {
	messagesFr := make([]*SignatureMessage, len(messages))

	for i, msg := range messages {
		messagesFr[i] = ParseSignatureMessage(msg)
	}

	return messagesFr
}

// EncodeMessage maps a statement string to its message scalar.
func EncodeMessage(statement string) *ml.Zr {
	return ParseSignatureMessage([]byte(statement)).FR
}
