// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dependency models how a material constant varies: a single
// constant or formula, or a table whose columns tabulate the value
// against axes such as coordinates, time, temperature, or entity
// identifiers.
//
// On the wire a dependency is two sibling members whose JSON shapes
// must agree: a kind code and a data string (the scalar form), or a
// list of kind codes and a parallel list of data strings (the table
// form). [IntOrList] and [StringOrList] carry those raw shapes through
// encoding/json; [Decode] checks the shapes against each other and
// returns a [Dependency].
//
// Two table kinds are special: [TabularElementID] and [TabularNodeID]
// tabulate entity identifiers, not physical quantities. Renumbering the
// mesh invalidates them, so the compactor rewrites them through
// [Dependency.RemapIDs] after planning with [Dependency.ReferencedIDs].
//
// Key exports:
//
//   - [Kind] -- the axis-kind enumeration, tolerant of unknown codes
//   - [IntOrList], [StringOrList] -- scalar-or-list JSON members
//   - [Dependency], [Column] -- the decoded forms
//   - [Decode], [Dependency.Encode] -- conversion to and from raw members
package dependency
