// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

//go:embed sample.fc
var sampleDocument []byte

// Sample entity ids, for assertions.
const (
	// SampleTetraID and SampleQuadID are the two element ids.
	SampleTetraID = 10
	SampleQuadID  = 20
	// SampleOrphanNodeID is the node no element uses.
	SampleOrphanNodeID = 9
	// SampleNodes and SampleElements are the mesh sizes.
	SampleNodes    = 6
	SampleElements = 2
)

// SampleDocument returns a fresh copy of the sample case file.
func SampleDocument() []byte {
	return slices.Clone(sampleDocument)
}

// WriteSample writes the sample case file into a temporary directory
// and returns its path.
func WriteSample(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, sampleDocument, 0o644); err != nil {
		t.Fatalf("writing sample: %v", err)
	}
	return path
}
