// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/bureau-foundation/fccase/lib/fcerr"
	"github.com/bureau-foundation/fccase/lib/mesh"
)

// Bounds returns the axis-aligned box around every node of m, and
// false when m has no nodes.
func Bounds(m *mesh.Mesh) (r3.Box, bool) {
	if m.NodeCount() == 0 {
		return r3.Box{}, false
	}
	inf := math.Inf(1)
	box := r3.Box{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
	for _, xyz := range m.Nodes() {
		box.Min = r3.Vec{X: min(box.Min.X, xyz[0]), Y: min(box.Min.Y, xyz[1]), Z: min(box.Min.Z, xyz[2])}
		box.Max = r3.Vec{X: max(box.Max.X, xyz[0]), Y: max(box.Max.Y, xyz[1]), Z: max(box.Max.Z, xyz[2])}
	}
	return box, true
}

// SurfaceArea sums ElementArea over the two-dimensional elements of m.
func SurfaceArea(m *mesh.Mesh) (float64, error) {
	total := 0.0
	for element := range m.All() {
		if element.Type().Dimension != 2 {
			continue
		}
		area, err := ElementArea(m, element)
		if err != nil {
			return 0, err
		}
		total += area
	}
	return total, nil
}

// ElementArea returns the summed vector area of element's facet loops.
// For a shell this is its area; for a solid, its boundary area.
func ElementArea(m *mesh.Mesh, element *mesh.Element) (float64, error) {
	total := 0.0
	for _, loop := range element.Type().Facets {
		points, err := resolve(m, element, loop)
		if err != nil {
			return 0, err
		}
		total += loopArea(points)
	}
	return total, nil
}

// Volume sums the tetrahedral decompositions of the solids of m, and
// counts the solids whose type has none.
func Volume(m *mesh.Mesh) (volume float64, skipped int, err error) {
	for element := range m.All() {
		elementType := element.Type()
		if elementType.Dimension != 3 {
			continue
		}
		if len(elementType.Tetras) == 0 {
			skipped++
			continue
		}
		for _, tetra := range elementType.Tetras {
			points, err := resolve(m, element, tetra)
			if err != nil {
				return 0, 0, err
			}
			volume += tetraVolume(points)
		}
	}
	return volume, skipped, nil
}

// resolve returns the coordinates of the element nodes at the local
// indices.
func resolve(m *mesh.Mesh, element *mesh.Element, local []int) ([]r3.Vec, error) {
	points := make([]r3.Vec, len(local))
	for i, index := range local {
		node := element.Nodes[index]
		xyz, ok := m.Node(node)
		if !ok {
			return nil, &fcerr.DanglingReferenceError{
				Source: "element", SourceID: element.ID, Field: "nodes", Target: "node", TargetID: node,
			}
		}
		points[i] = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}
	return points, nil
}

func loopArea(points []r3.Vec) float64 {
	var sum r3.Vec
	for i, point := range points {
		sum = r3.Add(sum, r3.Cross(point, points[(i+1)%len(points)]))
	}
	return r3.Norm(sum) / 2
}

func tetraVolume(points []r3.Vec) float64 {
	a := r3.Sub(points[1], points[0])
	b := r3.Sub(points[2], points[0])
	c := r3.Sub(points[3], points[0])
	return math.Abs(r3.Dot(a, r3.Cross(b, c))) / 6
}
