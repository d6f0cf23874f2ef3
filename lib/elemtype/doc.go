// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package elemtype is the catalog of finite-element topologies the case
// format knows: points and lumped masses, beams and bars, triangles and
// quadrilaterals, tetrahedra, hexahedra, wedges, and pyramids, in
// linear and quadratic variants.
//
// Each [Type] records its format code, name, topological dimension,
// polynomial order, and node count, plus its connectivity in local node
// indices: edge polylines (which pass through mid-side nodes), facet
// loops, and a tetrahedral decomposition where one exists. From those,
// the catalog derives a flat [Type.Structure] per dimension level once,
// at construction:
//
//   - level 0: the node indices themselves
//   - level 1: 2-node segments, from [SplitEdge] over every edge polyline
//   - level 2: 3-node triangles, from [SplitFacet] over every facet loop
//   - level 3: 4-node tetrahedra, from [SplitPolyhedron]
//
// A type of dimension d fills levels 0 through d only.
//
// The catalog is an immutable value. [Default] builds the format's
// table on first use and returns the same *[Catalog] on every call;
// consumers take a *Catalog as a parameter rather than reaching for
// the package-level default, so tests can supply their own tables via
// [New].
//
// Key exports:
//
//   - [Type] -- one catalog entry
//   - [Catalog], [New], [Default] -- lookup by code and by name
//   - [SplitEdge], [SplitFacet], [SplitPolyhedron] -- the decompositions
package elemtype
