// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package iddict provides [Dictionary], an insertion-ordered collection
// of records keyed by a positive integer identifier, and [Remap], the
// old-to-new identifier table produced when a collection is renumbered.
//
// The case format links entities by integer identifiers: elements
// name their block, blocks name their material and property table.
// Every collection therefore needs the same three services: store a
// record under its own id unless that id is missing or taken, in which
// case assign max+1; move records to new ids and drop the ones a remap
// does not mention ([Dictionary.Reindex]); and renumber densely to
// 1..N ([Dictionary.Compress]), returning the remap so the caller can
// rewrite references held elsewhere.
//
// Iteration order is insertion order everywhere. Compress assigns new
// ids in that order, so the remaps it returns are deterministic for a
// given file.
//
// Key exports:
//
//   - [Identified] -- the constraint on stored records
//   - [Dictionary], [New] -- the collection
//   - [Remap], [NewRemap], [DenseRemap] -- ordered id tables
//   - [DecodeRecords], [EncodeRecords] -- JSON list helpers
package iddict
