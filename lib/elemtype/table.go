// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package elemtype

// topology is the connectivity shared by a family of element types
// that differ only in code and name (solid/shell and structural
// variants of the same shape).
type topology struct {
	dimension int
	order     int
	nodes     int
	edges     [][]int
	facets    [][]int
	tetras    [][]int
}

var (
	none  = topology{}
	point = topology{order: 1, nodes: 1}

	line2 = topology{dimension: 1, order: 1, nodes: 2, edges: [][]int{{0, 1}}}
	line3 = topology{dimension: 1, order: 2, nodes: 3, edges: [][]int{{0, 2, 1}}}

	tri3 = topology{
		dimension: 2, order: 1, nodes: 3,
		edges:  [][]int{{0, 1, 2, 0}},
		facets: [][]int{{0, 1, 2}},
	}
	tri6 = topology{
		dimension: 2, order: 2, nodes: 6,
		edges:  [][]int{{0, 3, 1, 4, 2, 5, 0}},
		facets: [][]int{{0, 3, 1, 4, 2, 5}},
	}
	quad4 = topology{
		dimension: 2, order: 1, nodes: 4,
		edges:  [][]int{{0, 1, 2, 3, 0}},
		facets: [][]int{{0, 1, 2, 3}},
	}
	quad8 = topology{
		dimension: 2, order: 2, nodes: 8,
		edges:  [][]int{{0, 4, 1, 5, 2, 6, 3, 7, 0}},
		facets: [][]int{{0, 4, 1, 5, 2, 6, 3, 7}},
	}

	tetra4 = topology{
		dimension: 3, order: 1, nodes: 4,
		edges:  [][]int{{0, 1, 2, 0}, {0, 3}, {1, 3}, {2, 3}},
		facets: [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}},
		tetras: [][]int{{0, 1, 2, 3}},
	}
	tetra10 = topology{
		dimension: 3, order: 2, nodes: 10,
		edges:  [][]int{{0, 4, 1, 5, 2, 6, 0}, {0, 7, 3}, {1, 8, 3}, {2, 9, 3}},
		facets: [][]int{{0, 6, 2, 5, 1, 4}, {0, 4, 1, 8, 3, 7}, {1, 5, 2, 9, 3, 8}, {2, 6, 0, 7, 3, 9}},
	}
	hex8 = topology{
		dimension: 3, order: 1, nodes: 8,
		edges: [][]int{
			{0, 1, 2, 3, 0}, {4, 5, 6, 7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
		facets: [][]int{
			{3, 2, 1, 0}, {4, 5, 6, 7}, {1, 2, 6, 5},
			{0, 1, 5, 4}, {0, 4, 7, 3}, {2, 3, 7, 6},
		},
		tetras: [][]int{{1, 3, 4, 6}, {3, 1, 4, 0}, {1, 3, 6, 2}, {4, 1, 6, 5}, {3, 4, 6, 7}},
	}
	hex20 = topology{
		dimension: 3, order: 2, nodes: 20,
		edges: [][]int{
			{0, 8, 1, 9, 2, 10, 3, 11, 0}, {4, 12, 5, 13, 6, 14, 7, 15, 4},
			{0, 16, 4}, {1, 17, 5}, {2, 18, 6}, {3, 19, 7},
		},
		facets: [][]int{
			{3, 10, 2, 9, 1, 8, 0, 11}, {4, 12, 5, 13, 6, 14, 7, 15},
			{1, 9, 2, 18, 6, 13, 5, 17}, {0, 8, 1, 17, 5, 12, 4, 16},
			{0, 16, 4, 15, 7, 19, 3, 11}, {2, 10, 3, 19, 7, 14, 6, 18},
		},
	}
	wedge6 = topology{
		dimension: 3, order: 1, nodes: 6,
		edges:  [][]int{{0, 1, 2, 0}, {3, 4, 5, 3}, {0, 3}, {1, 4}, {2, 5}},
		facets: [][]int{{0, 1, 2}, {5, 4, 3}, {0, 2, 5, 3}, {0, 3, 4, 1}, {1, 4, 5, 2}},
		tetras: [][]int{{0, 5, 4, 3}, {0, 4, 2, 1}, {0, 2, 4, 5}},
	}
	// Corners 0-5; mid-side nodes 6-8 on the bottom triangle, 9-11 on
	// the top, 12-14 on the vertical edges.
	wedge15 = topology{
		dimension: 3, order: 2, nodes: 15,
		edges: [][]int{
			{0, 6, 1, 7, 2, 8, 0}, {3, 9, 4, 10, 5, 11, 3},
			{0, 12, 3}, {1, 13, 4}, {2, 14, 5},
		},
		facets: [][]int{
			{0, 6, 1, 7, 2, 8}, {5, 10, 4, 9, 3, 11},
			{0, 8, 2, 14, 5, 11, 3, 12}, {0, 12, 3, 9, 4, 13, 1, 6},
			{1, 13, 4, 10, 5, 14, 2, 7},
		},
	}
	pyr5 = topology{
		dimension: 3, order: 1, nodes: 5,
		edges:  [][]int{{0, 1, 2, 3, 0}, {0, 4}, {1, 4}, {2, 4}, {3, 4}},
		facets: [][]int{{3, 2, 1, 0}, {0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4}},
		tetras: [][]int{{1, 3, 4, 0}, {3, 4, 1, 2}},
	}
	pyr13 = topology{
		dimension: 3, order: 2, nodes: 13,
		edges: [][]int{
			{0, 5, 1, 6, 2, 7, 3, 8, 0},
			{0, 9, 4}, {1, 10, 4}, {2, 11, 4}, {3, 12, 4},
		},
		facets: [][]int{
			{3, 7, 2, 6, 1, 5, 0, 8},
			{0, 5, 1, 10, 4, 9}, {1, 6, 2, 11, 4, 10},
			{2, 7, 3, 12, 4, 11}, {3, 8, 0, 9, 4, 12},
		},
	}
)

func entry(name string, code int, shape topology) Type {
	return Type{
		Name:      name,
		Code:      code,
		Dimension: shape.dimension,
		Order:     shape.order,
		Nodes:     shape.nodes,
		Edges:     shape.edges,
		Facets:    shape.facets,
		Tetras:    shape.tetras,
	}
}

// builtinTypes returns the format's element table in file order.
func builtinTypes() []Type {
	return []Type{
		entry("NONE", 0, none),
		entry("LUMPMASS3D", 38, point),
		entry("LUMPMASS6D", 40, point),
		entry("LUMPMASS2D", 82, point),
		entry("POINT3D", 99, point),
		entry("POINT2D", 100, point),
		entry("POINT6D", 101, point),
		entry("LUMPMASS2DR", 105, point),

		entry("BEAM26", 36, line2),
		entry("BEAM36", 37, line3),
		entry("SPRING3D", 39, line2),
		entry("SPRING6D", 41, line2),
		entry("BEAM27", 89, line2),
		entry("BEAM37", 90, line3),
		entry("BAR2", 107, line2),
		entry("BAR3", 108, line3),
		entry("CABLE2", 109, line2),
		entry("CABLE3", 110, line3),

		entry("TRI3", 10, tri3),
		entry("TRI6", 11, tri6),
		entry("QUAD4", 12, quad4),
		entry("QUAD8", 13, quad8),
		entry("MITC3", 29, tri3),
		entry("MITC6", 30, tri6),
		entry("MITC4", 31, quad4),
		entry("MITC8", 32, quad8),

		entry("TETRA4", 1, tetra4),
		entry("TETRA10", 2, tetra10),
		entry("HEX8", 3, hex8),
		entry("HEX20", 4, hex20),
		entry("TETRA4S", 15, tetra4),
		entry("TETRA10S", 16, tetra10),
		entry("HEX8S", 17, hex8),
		entry("HEX20S", 18, hex20),
		entry("WEDGE6", 6, wedge6),
		entry("WEDGE15", 7, wedge15),
		entry("WEDGE6S", 20, wedge6),
		entry("WEDGE15S", 21, wedge15),
		entry("PYR5", 8, pyr5),
		entry("PYR13", 9, pyr13),
		entry("PYR5S", 22, pyr5),
		entry("PYR13S", 23, pyr13),

		entry("TRI3S", 24, tri3),
		entry("TRI6S", 25, tri6),
		entry("QUAD4S", 26, quad4),
		entry("QUAD8S", 27, quad8),
		entry("SPRING2D", 83, line2),
		entry("SHELL3S", 84, tri3),
		entry("SHELL4S", 85, quad4),
		entry("SHELL6S", 86, tri6),
		entry("SHELL8S", 87, quad8),
		entry("BEAM26S", 95, line2),
		entry("BEAM36S", 96, line3),
		entry("BEAM27S", 97, line2),
		entry("BEAM37S", 98, line3),
	}
}
