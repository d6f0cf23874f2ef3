// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package geometry computes summary measures of a mesh: the bounding
// box of its nodes, the area of its two-dimensional elements, and the
// volume of its solids.
//
// Area is taken over each facet loop as the vector area
// |Σ p_i × p_(i+1)| / 2, which is exact for planar loops of any node
// count, mid-side nodes included. Volume sums the tetrahedral
// decomposition of each solid type; quadratic solids carry no
// decomposition and are reported as skipped.
package geometry
