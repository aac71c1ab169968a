/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fingerprint

import (
	"fmt"
	"strings"
)

const didKeyPrefix = "did:key:"

// MethodIDFromDIDKey returns the fingerprint of a did:key DID. A key id fragment is dropped, so
// did:key:<fp>#<fp> gives the same result as did:key:<fp>.
func MethodIDFromDIDKey(didKey string) (string, error) {
	msID, found := strings.CutPrefix(didKey, didKeyPrefix)
	if !found || msID == "" {
		return "", fmt.Errorf("invalid did:key identifier: %s", didKey)
	}

	msID, _, _ = strings.Cut(msID, "#")

	// did:key fingerprints are base58btc multibase values.
	if !strings.HasPrefix(msID, "z") {
		return "", fmt.Errorf("not a valid did:key identifier (not a base58btc multicodec): %s", didKey)
	}

	return msID, nil
}
