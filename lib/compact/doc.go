// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compact renumbers a model's linked collections to dense
// 1..N ranges and prunes entities no element reaches.
//
// A case file links entities by integer id: elements name nodes and a
// block, blocks name a material and a property table, and material
// dependencies may tabulate values against element or node ids.
// Editing a model leaves gaps and orphans behind. [Compactor.Compact]
// walks the collections in dependency order (nodes, blocks, property
// tables, materials, loads and restraints, elements, then
// dependencies), building each remap from the collections already
// settled.
//
// Compaction is all or nothing. Every map is planned and every
// reference checked against it before the first mutation, so a
// dangling reference surfaces as a *fcerr.DanglingReferenceError with
// the model exactly as it was. Coordinate systems are not renumbered,
// and the apply_to sets of conditions, constraints, sets, and
// receivers are left as they are.
//
// A second compaction of a compacted model is the identity:
// [Result.Changed] reports false.
package compact
