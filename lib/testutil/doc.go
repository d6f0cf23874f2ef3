// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared fixtures for tests across the
// case packages.
//
// [SampleDocument] returns a small case file that touches every
// top-level member: two blocks over a TETRA4 and a QUAD4, an
// unreferenced node, a material tabulated against element ids, loads,
// restraints, an initial set on "all", a contact constraint with extra
// members, node and side sets, a receiver, and one member no package
// models. [WriteSample] puts it on disk for file and CLI tests.
//
// This package has no dependencies on the other case packages, so any
// of them can use it from their own tests.
package testutil
