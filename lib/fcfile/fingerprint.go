// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fcfile

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/fccase/lib/model"
)

// Hash is a 32-byte BLAKE3 digest of a model's canonical encoding.
type Hash [32]byte

// modelDomainKey is the BLAKE3 key for model fingerprints: the ASCII
// domain name zero-padded to 32 bytes. Changing it invalidates every
// recorded fingerprint.
var modelDomainKey = [32]byte{
	'f', 'c', 'c', 'a', 's', 'e', '.', 'm', 'o', 'd', 'e', 'l',
}

// Fingerprint returns the keyed hash of data. Callers wanting a
// compression- and whitespace-independent identity pass the output
// of Model.Encode(false), or use FingerprintModel.
func Fingerprint(data []byte) Hash {
	// NewKeyed only fails on a key of the wrong length.
	hasher, err := blake3.NewKeyed(modelDomainKey[:])
	if err != nil {
		panic("fcfile: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// FingerprintModel fingerprints the canonical encoding of m.
func FingerprintModel(m *model.Model) (Hash, error) {
	data, err := m.Encode(false)
	if err != nil {
		return Hash{}, fmt.Errorf("encoding model for fingerprint: %w", err)
	}
	return Fingerprint(data), nil
}

// String returns the hex encoding used in logs and CLI output.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// Short returns the "fc-" prefix and the first 12 hex characters.
func (h Hash) Short() string { return "fc-" + hex.EncodeToString(h[:6]) }

// ParseHash parses a 64-character hex string.
func ParseHash(text string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return hash, fmt.Errorf("parsing fingerprint: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("fingerprint is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}
