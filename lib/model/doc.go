// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package model is the outer layer of a case file: one typed record
// per top-level member, with [Decode] and [Model.Encode] converting
// whole documents.
//
// Collections that other records refer to by id (blocks, materials,
// property tables, coordinate systems, loads, restraints, node and
// side sets) are [iddict.Dictionary] values so they can be renumbered.
// Collections nothing refers to (initial sets, constraints, receivers)
// are plain slices in file order.
//
// Fields that may hold either a packed array or a literal such as
// "all" (apply_to, per-axis data) decode through
// [binarray.DecodeFlexible]. The header and settings are kept
// verbatim, and so are members the package does not model, both at
// the top level and inside blocks, constraints, and property tables.
// Encode writes members in a fixed order followed by the unmodelled
// ones in input order; empty collections are left out.
//
// Key exports:
//
//   - [Model], [New], [Decode] -- the document
//   - [Block], [CoordinateSystem], [PropertyTable], [Constraint],
//     [Set], [Receiver] -- structural records
//   - [Load], [Restraint], [InitialSet], [Axis] -- conditions
//   - [Stats] -- entity counts for reporting
package model
