// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package material decodes and encodes material records.
//
// A material carries its properties in groups (elasticity, thermal,
// plasticity, ...), each a record member named by the group. On the
// wire a group is a list of entries, one per property type, each entry
// holding parallel lists of constants, constant codes, and the two
// halves of every constant's [dependency.Dependency]. [Decode] flattens
// those lists into one [Property] per constant; [Material.Encode]
// gathers properties sharing a type back into one entry, in order of
// first appearance, and recounts const_dep_size.
//
// Type and constant codes stay integers in memory. [TypeName] and
// [ConstantName] resolve the known ones; unknown groups and codes
// round-trip untouched.
package material
