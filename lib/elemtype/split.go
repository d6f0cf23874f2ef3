// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package elemtype

// SplitEdge chains an ordered polyline of local node indices into
// consecutive 2-node segments, returned flattened: [p0 p1 p1 p2 ...].
// Fewer than two points yield nil.
func SplitEdge(polyline []int) []int {
	if len(polyline) < 2 {
		return nil
	}
	segments := make([]int, 0, 2*(len(polyline)-1))
	for i := 0; i+1 < len(polyline); i++ {
		segments = append(segments, polyline[i], polyline[i+1])
	}
	return segments
}

// SplitFacet triangulates a closed loop of local node indices into
// 3-node triangles, returned flattened.
//
// A triangle is returned unchanged and a loop of fewer than three
// points yields nil. Longer loops are cut into ears rotating through
// the loop, (p[2i], p[2i+1], p[2i+2]) wrapping at the end; the
// vertices at even positions then form the inner loop, which is split
// again while it still has more than three vertices. A quadratic
// triangle [0 3 1 4 2 5] therefore yields its three corner triangles
// [0 3 1 1 4 2 2 5 0]. An odd loop leaves its closing side uncut, so
// its inner loop is always split, a 3-vertex one included: a pentagon
// yields [0 1 2 2 3 4 0 2 4].
func SplitFacet(loop []int) []int {
	n := len(loop)
	switch {
	case n < 3:
		return nil
	case n == 3:
		return []int{loop[0], loop[1], loop[2]}
	}
	var triangles []int
	for i := 0; i < n/2; i++ {
		triangles = append(triangles, loop[2*i], loop[2*i+1], loop[(2*i+2)%n])
	}
	inner := make([]int, 0, (n+1)/2)
	for i := 0; i < n; i += 2 {
		inner = append(inner, loop[i])
	}
	if len(inner) > 3 || n%2 == 1 {
		triangles = append(triangles, SplitFacet(inner)...)
	}
	return triangles
}

// SplitPolyhedron returns a tetrahedral connectivity list flattened.
// Solid tables are already stored as tetrahedra, so the decomposition
// is the identity on 4-tuples.
func SplitPolyhedron(tetras [][]int) []int {
	var flat []int
	for _, tetra := range tetras {
		flat = append(flat, tetra...)
	}
	return flat
}
