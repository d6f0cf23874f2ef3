// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package elemtype

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/bureau-foundation/fccase/lib/fcerr"
)

// Type is one element topology. Connectivity is in local node indices
// (0 to Nodes-1). Entries are shared by every element of the type and
// must not be modified.
type Type struct {
	Name      string
	Code      int
	Dimension int
	Order     int
	Nodes     int

	// Edges are polylines through the nodes of each edge, mid-side
	// nodes included. Closed outlines repeat their first node.
	Edges [][]int
	// Facets are closed loops around each face, without repetition.
	Facets [][]int
	// Tetras is a decomposition of a solid into tetrahedra.
	Tetras [][]int

	// Structure is the flattened decomposition per dimension level:
	// tuples of level+1 local indices.
	Structure [4][]int
}

// Tuples returns the structure at level as tuples of level+1 indices,
// sharing storage with t.
func (t *Type) Tuples(level int) [][]int {
	if level < 0 || level >= len(t.Structure) {
		return nil
	}
	flat := t.Structure[level]
	arity := level + 1
	tuples := make([][]int, 0, len(flat)/arity)
	for start := 0; start+arity <= len(flat); start += arity {
		tuples = append(tuples, flat[start:start+arity:start+arity])
	}
	return tuples
}

func (t *Type) String() string { return t.Name }

// derive fills Structure from the connectivity.
func (t *Type) derive() {
	t.Structure = [4][]int{}
	points := make([]int, t.Nodes)
	for i := range points {
		points[i] = i
	}
	t.Structure[0] = points
	if t.Dimension > 0 {
		for _, edge := range t.Edges {
			t.Structure[1] = append(t.Structure[1], SplitEdge(edge)...)
		}
	}
	if t.Dimension > 1 {
		for _, facet := range t.Facets {
			t.Structure[2] = append(t.Structure[2], SplitFacet(facet)...)
		}
	}
	if t.Dimension > 2 {
		t.Structure[3] = SplitPolyhedron(t.Tetras)
	}
}

func (t *Type) validate() error {
	if t.Dimension < 0 || t.Dimension > 3 {
		return fmt.Errorf("element type %s: dimension %d out of range", t.Name, t.Dimension)
	}
	check := func(what string, tuples [][]int) error {
		for i, tuple := range tuples {
			for _, index := range tuple {
				if index < 0 || index >= t.Nodes {
					return fmt.Errorf("element type %s: %s %d uses local node %d, type has %d nodes",
						t.Name, what, i, index, t.Nodes)
				}
			}
		}
		return nil
	}
	if err := check("edge", t.Edges); err != nil {
		return err
	}
	if err := check("facet", t.Facets); err != nil {
		return err
	}
	for i, tetra := range t.Tetras {
		if len(tetra) != 4 {
			return fmt.Errorf("element type %s: tetra %d has %d nodes", t.Name, i, len(tetra))
		}
	}
	return check("tetra", t.Tetras)
}

// Catalog resolves element types by code and by name. A Catalog is
// immutable after [New] and safe for concurrent use.
type Catalog struct {
	types  []*Type
	byCode map[int]*Type
	byName map[string]*Type
}

// New builds a catalog from types, deriving each entry's structure.
// Codes and names must be unique and connectivity must stay within
// each type's node count.
func New(types []Type) (*Catalog, error) {
	catalog := &Catalog{
		byCode: make(map[int]*Type, len(types)),
		byName: make(map[string]*Type, len(types)),
	}
	for i := range types {
		entry := types[i]
		if err := entry.validate(); err != nil {
			return nil, err
		}
		if _, exists := catalog.byCode[entry.Code]; exists {
			return nil, fmt.Errorf("element type %s: duplicate code %d", entry.Name, entry.Code)
		}
		if _, exists := catalog.byName[entry.Name]; exists {
			return nil, fmt.Errorf("element type %s: duplicate name", entry.Name)
		}
		entry.derive()
		catalog.types = append(catalog.types, &entry)
		catalog.byCode[entry.Code] = &entry
		catalog.byName[entry.Name] = &entry
	}
	return catalog, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	catalog, err := New(builtinTypes())
	if err != nil {
		panic("elemtype: builtin table is inconsistent: " + err.Error())
	}
	return catalog
})

// Default returns the catalog of the format's element types, built on
// first call.
func Default() *Catalog { return defaultCatalog() }

// ByCode returns the type with the given format code.
func (c *Catalog) ByCode(code int) (*Type, error) {
	if entry, ok := c.byCode[code]; ok {
		return entry, nil
	}
	return nil, &fcerr.UnknownElementTypeError{Code: code}
}

// ByName returns the type with the given name.
func (c *Catalog) ByName(name string) (*Type, error) {
	if entry, ok := c.byName[name]; ok {
		return entry, nil
	}
	return nil, &fcerr.UnknownElementTypeError{Name: name, ByName: true}
}

// All yields every type in table order.
func (c *Catalog) All() iter.Seq[*Type] {
	return slices.Values(c.types)
}

// Len returns the number of types.
func (c *Catalog) Len() int { return len(c.types) }
