// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package elemtype

import (
	"errors"
	"slices"
	"testing"

	"github.com/bureau-foundation/fccase/lib/fcerr"
)

func TestSplitFacet(t *testing.T) {
	tests := []struct {
		name string
		loop []int
		want []int
	}{
		{"empty", nil, nil},
		{"segment", []int{0, 1}, nil},
		{"triangle", []int{0, 1, 2}, []int{0, 1, 2}},
		{"quadratic triangle", []int{0, 3, 1, 4, 2, 5}, []int{0, 3, 1, 1, 4, 2, 2, 5, 0}},
		{"quad", []int{0, 1, 2, 3}, []int{0, 1, 2, 2, 3, 0}},
		{
			"quadratic quad",
			[]int{0, 4, 1, 5, 2, 6, 3, 7},
			[]int{0, 4, 1, 1, 5, 2, 2, 6, 3, 3, 7, 0, 0, 1, 2, 2, 3, 0},
		},
		{"pentagon", []int{0, 1, 2, 3, 4}, []int{0, 1, 2, 2, 3, 4, 0, 2, 4}},
		{
			"heptagon",
			[]int{0, 1, 2, 3, 4, 5, 6},
			[]int{0, 1, 2, 2, 3, 4, 4, 5, 6, 0, 2, 4, 4, 6, 0},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := SplitFacet(test.loop)
			if !slices.Equal(got, test.want) {
				t.Errorf("SplitFacet(%v) = %v, want %v", test.loop, got, test.want)
			}
		})
	}
}

func TestSplitEdge(t *testing.T) {
	if got := SplitEdge([]int{0, 1}); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("SplitEdge([0 1]) = %v, want [0 1]", got)
	}
	if got := SplitEdge([]int{0, 2, 1}); !slices.Equal(got, []int{0, 2, 2, 1}) {
		t.Errorf("SplitEdge([0 2 1]) = %v, want [0 2 2 1]", got)
	}
	if got := SplitEdge([]int{4}); got != nil {
		t.Errorf("SplitEdge([4]) = %v, want nil", got)
	}
}

func TestSplitPolyhedron(t *testing.T) {
	got := SplitPolyhedron([][]int{{0, 1, 2, 3}, {1, 2, 3, 4}})
	if !slices.Equal(got, []int{0, 1, 2, 3, 1, 2, 3, 4}) {
		t.Errorf("SplitPolyhedron = %v", got)
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := Default()
	if catalog != Default() {
		t.Error("Default() returned different catalogs")
	}
	if catalog.Len() != 55 {
		t.Errorf("Len() = %d, want 55", catalog.Len())
	}

	byCode, err := catalog.ByCode(3)
	if err != nil {
		t.Fatalf("ByCode(3): %v", err)
	}
	byName, err := catalog.ByName("HEX8")
	if err != nil {
		t.Fatalf("ByName(HEX8): %v", err)
	}
	if byCode != byName {
		t.Error("ByCode(3) and ByName(HEX8) resolve to different entries")
	}
	if byCode.Nodes != 8 || byCode.Dimension != 3 || byCode.Order != 1 {
		t.Errorf("HEX8 = %d nodes, dim %d, order %d", byCode.Nodes, byCode.Dimension, byCode.Order)
	}

	first := true
	for entry := range catalog.All() {
		if first && entry.Name != "NONE" {
			t.Errorf("first entry = %s, want NONE", entry.Name)
		}
		first = false
	}
}

func TestUnknownTypes(t *testing.T) {
	catalog := Default()
	var unknown *fcerr.UnknownElementTypeError

	_, err := catalog.ByCode(5)
	if !errors.As(err, &unknown) || unknown.Code != 5 || unknown.ByName {
		t.Errorf("ByCode(5) error = %v, want unknown code 5", err)
	}
	_, err = catalog.ByName("HEX27")
	if !errors.As(err, &unknown) || unknown.Name != "HEX27" || !unknown.ByName {
		t.Errorf("ByName(HEX27) error = %v, want unknown name HEX27", err)
	}
}

func TestStructureLevels(t *testing.T) {
	catalog := Default()
	for entry := range catalog.All() {
		for level := range entry.Structure {
			if level > entry.Dimension && len(entry.Structure[level]) != 0 {
				t.Errorf("%s (dim %d) fills level %d", entry.Name, entry.Dimension, level)
			}
			if len(entry.Structure[level])%(level+1) != 0 {
				t.Errorf("%s level %d has %d indices, not a multiple of %d",
					entry.Name, level, len(entry.Structure[level]), level+1)
			}
			for _, index := range entry.Structure[level] {
				if index < 0 || index >= entry.Nodes {
					t.Errorf("%s level %d uses local node %d of %d", entry.Name, level, index, entry.Nodes)
				}
			}
		}
		if len(entry.Structure[0]) != entry.Nodes {
			t.Errorf("%s level 0 has %d points, want %d", entry.Name, len(entry.Structure[0]), entry.Nodes)
		}
	}
}

func TestDerivedStructures(t *testing.T) {
	catalog := Default()

	tri6, err := catalog.ByName("TRI6")
	if err != nil {
		t.Fatalf("ByName(TRI6): %v", err)
	}
	if !slices.Equal(tri6.Structure[2], []int{0, 3, 1, 1, 4, 2, 2, 5, 0}) {
		t.Errorf("TRI6 triangles = %v", tri6.Structure[2])
	}
	if got := len(tri6.Tuples(1)); got != 6 {
		t.Errorf("TRI6 has %d edge segments, want 6", got)
	}

	hex8, err := catalog.ByName("HEX8")
	if err != nil {
		t.Fatalf("ByName(HEX8): %v", err)
	}
	if got := len(hex8.Tuples(1)); got != 12 {
		t.Errorf("HEX8 has %d edge segments, want 12", got)
	}
	if got := len(hex8.Tuples(2)); got != 12 {
		t.Errorf("HEX8 has %d triangles, want 12", got)
	}
	if got := len(hex8.Tuples(3)); got != 5 {
		t.Errorf("HEX8 has %d tetrahedra, want 5", got)
	}

	bar, err := catalog.ByName("BAR3")
	if err != nil {
		t.Fatalf("ByName(BAR3): %v", err)
	}
	if len(bar.Structure[2]) != 0 || len(bar.Structure[3]) != 0 {
		t.Errorf("BAR3 fills levels above its dimension: %v", bar.Structure)
	}
}

func TestCorrectedSolids(t *testing.T) {
	catalog := Default()

	wedge6, err := catalog.ByCode(6)
	if err != nil {
		t.Fatalf("ByCode(6): %v", err)
	}
	if wedge6.Nodes != 6 {
		t.Errorf("WEDGE6 nodes = %d, want 6", wedge6.Nodes)
	}

	hex20, err := catalog.ByName("HEX20")
	if err != nil {
		t.Fatalf("ByName(HEX20): %v", err)
	}
	for i, want := range [][]int{{0, 16, 4}, {1, 17, 5}, {2, 18, 6}, {3, 19, 7}} {
		if got := hex20.Edges[2+i]; !slices.Equal(got, want) {
			t.Errorf("HEX20 vertical edge %d = %v, want %v", i, got, want)
		}
	}

	wedge15, err := catalog.ByName("WEDGE15")
	if err != nil {
		t.Fatalf("ByName(WEDGE15): %v", err)
	}
	if len(wedge15.Facets) != 5 || len(wedge15.Edges) != 5 {
		t.Errorf("WEDGE15 has %d facets and %d edges, want 5 and 5", len(wedge15.Facets), len(wedge15.Edges))
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	tests := []struct {
		name  string
		types []Type
	}{
		{"duplicate code", []Type{
			{Name: "A", Code: 1, Dimension: 0, Nodes: 1},
			{Name: "B", Code: 1, Dimension: 0, Nodes: 1},
		}},
		{"duplicate name", []Type{
			{Name: "A", Code: 1, Dimension: 0, Nodes: 1},
			{Name: "A", Code: 2, Dimension: 0, Nodes: 1},
		}},
		{"index out of range", []Type{
			{Name: "A", Code: 1, Dimension: 1, Nodes: 2, Edges: [][]int{{0, 2}}},
		}},
		{"bad tetra", []Type{
			{Name: "A", Code: 1, Dimension: 3, Nodes: 4, Tetras: [][]int{{0, 1, 2}}},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.types); err == nil {
				t.Error("New succeeded, want error")
			}
		})
	}
}
