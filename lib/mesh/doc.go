// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mesh holds a model's nodes and elements and converts them to
// and from the packed arrays of the case format's "mesh" member.
//
// Nodes are stored as parallel dense arrays (ids and coordinates),
// since meshes routinely carry millions of them and nothing but the
// compactor ever renumbers them. Elements are partitioned by type, one
// [iddict.Dictionary] per [elemtype.Type], while every lookup, insert,
// and renumbering treats the partitions as a single collection keyed
// by element id: [Mesh.Add] assigns new ids past the global maximum,
// and [Mesh.Compress] renumbers across all partitions at once.
//
// On the wire, elements are five parallel arrays (id, block, order,
// parent id, type code) plus one concatenated node-id array. Each
// element's slice of the node array has the length its type declares;
// [Decode] resolves type codes in the catalog and walks prefix-sum
// offsets to cut the slices, rejecting any length disagreement as a
// *fcerr.MalformedMeshError. [Mesh.Encode] iterates partitions in
// creation order and elements in insertion order, which reproduces the
// input layout for any file whose elements are grouped by type.
//
// The packed arrays are independent, so Decode base64-decodes them
// concurrently with an errgroup before any cross-array checks run.
package mesh
