// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mesh

import (
	"fmt"
	"iter"
	"slices"

	"github.com/bureau-foundation/fccase/lib/elemtype"
	"github.com/bureau-foundation/fccase/lib/fcerr"
	"github.com/bureau-foundation/fccase/lib/iddict"
)

// Mesh is the node and element store of a model.
type Mesh struct {
	catalog *elemtype.Catalog

	nodeIDs   []int
	coords    [][3]float64
	nodeIndex map[int]int
	nodeMax   int

	partitions []partition
	byType     map[*elemtype.Type]int
}

type partition struct {
	elementType *elemtype.Type
	elements    *iddict.Dictionary[*Element]
}

// New returns an empty mesh resolving element types in catalog.
func New(catalog *elemtype.Catalog) *Mesh {
	return &Mesh{
		catalog:   catalog,
		nodeIndex: make(map[int]int),
		byType:    make(map[*elemtype.Type]int),
	}
}

// Catalog returns the element type catalog the mesh was built with.
func (m *Mesh) Catalog() *elemtype.Catalog { return m.catalog }

// AddNode stores a node under id when id is positive and free, and
// under the next id past the maximum otherwise. Returns the id used.
func (m *Mesh) AddNode(id int, xyz [3]float64) int {
	if _, taken := m.nodeIndex[id]; id < 1 || taken {
		id = m.nodeMax + 1
	}
	m.nodeIndex[id] = len(m.nodeIDs)
	m.nodeIDs = append(m.nodeIDs, id)
	m.coords = append(m.coords, xyz)
	m.nodeMax = max(m.nodeMax, id)
	return id
}

// Node returns the coordinates of node id.
func (m *Mesh) Node(id int) ([3]float64, bool) {
	index, ok := m.nodeIndex[id]
	if !ok {
		return [3]float64{}, false
	}
	return m.coords[index], true
}

// HasNode reports whether node id exists.
func (m *Mesh) HasNode(id int) bool {
	_, ok := m.nodeIndex[id]
	return ok
}

// NodeCount returns the number of nodes.
func (m *Mesh) NodeCount() int { return len(m.nodeIDs) }

// NodeIDs returns the node ids in storage order.
func (m *Mesh) NodeIDs() []int { return slices.Clone(m.nodeIDs) }

// Nodes yields (id, coordinates) in storage order.
func (m *Mesh) Nodes() iter.Seq2[int, [3]float64] {
	return func(yield func(int, [3]float64) bool) {
		for i, id := range m.nodeIDs {
			if !yield(id, m.coords[i]) {
				return
			}
		}
	}
}

// RenumberNodes keeps the nodes remap mentions, in remap order, under
// their new ids, and drops the rest. Element node lists are not
// touched. A remap sending two nodes to one id is a
// *fcerr.ValidationError and leaves the mesh unchanged.
func (m *Mesh) RenumberNodes(remap *iddict.Remap) error {
	ids := make([]int, 0, remap.Len())
	coords := make([][3]float64, 0, remap.Len())
	index := make(map[int]int, remap.Len())
	for old, new := range remap.All() {
		position, ok := m.nodeIndex[old]
		if !ok {
			continue
		}
		if new < 1 {
			return &fcerr.ValidationError{Entity: "node", ID: old, Message: fmt.Sprintf("remap assigns invalid id %d", new)}
		}
		if _, taken := index[new]; taken {
			return &fcerr.ValidationError{Entity: "node", ID: old, Message: fmt.Sprintf("remap assigns id %d twice", new)}
		}
		index[new] = len(ids)
		ids = append(ids, new)
		coords = append(coords, m.coords[position])
	}
	m.nodeIDs, m.coords, m.nodeIndex = ids, coords, index
	m.nodeMax = 0
	for _, id := range ids {
		m.nodeMax = max(m.nodeMax, id)
	}
	return nil
}

func (m *Mesh) partitionFor(elementType *elemtype.Type) *iddict.Dictionary[*Element] {
	if index, ok := m.byType[elementType]; ok {
		return m.partitions[index].elements
	}
	elements := iddict.New[*Element]("element")
	m.byType[elementType] = len(m.partitions)
	m.partitions = append(m.partitions, partition{elementType: elementType, elements: elements})
	return elements
}

// Add stores element in the partition of its type. The id is kept when
// positive and unused in every partition; otherwise the element gets
// the global maximum plus one. Returns the id used.
func (m *Mesh) Add(element *Element) (int, error) {
	if err := element.validate(); err != nil {
		return 0, err
	}
	id := element.ID
	if id < 1 || m.Contains(id) {
		id = m.MaxID() + 1
	}
	m.partitionFor(element.elementType).Set(id, element)
	return id, nil
}

// Get returns the element with id from whichever partition holds it.
func (m *Mesh) Get(id int) (*Element, bool) {
	for _, part := range m.partitions {
		if element, ok := part.elements.Get(id); ok {
			return element, true
		}
	}
	return nil, false
}

// Contains reports whether any partition holds id.
func (m *Mesh) Contains(id int) bool {
	_, ok := m.Get(id)
	return ok
}

// Len returns the number of elements across all partitions.
func (m *Mesh) Len() int {
	total := 0
	for _, part := range m.partitions {
		total += part.elements.Len()
	}
	return total
}

// MaxID returns the largest element id across all partitions.
func (m *Mesh) MaxID() int {
	maxID := 0
	for _, part := range m.partitions {
		maxID = max(maxID, part.elements.MaxID())
	}
	return maxID
}

// All yields every element, partition by partition in creation order.
func (m *Mesh) All() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, part := range m.partitions {
			for element := range part.elements.All() {
				if !yield(element) {
					return
				}
			}
		}
	}
}

// Partition returns the elements of the named type.
func (m *Mesh) Partition(name string) (*iddict.Dictionary[*Element], bool) {
	for _, part := range m.partitions {
		if part.elementType.Name == name {
			return part.elements, true
		}
	}
	return nil, false
}

// Types yields the element types present, in partition creation order.
func (m *Mesh) Types() iter.Seq[*elemtype.Type] {
	return func(yield func(*elemtype.Type) bool) {
		for _, part := range m.partitions {
			if !yield(part.elementType) {
				return
			}
		}
	}
}

// NodesList returns every element's node ids concatenated in
// iteration order.
func (m *Mesh) NodesList() []int {
	var nodes []int
	for element := range m.All() {
		nodes = append(nodes, element.Nodes...)
	}
	return nodes
}

// Offsets returns the prefix sums of element node counts in iteration
// order: element i's nodes are NodesList()[Offsets()[i]:Offsets()[i+1]].
func (m *Mesh) Offsets() []int {
	offsets := make([]int, 1, m.Len()+1)
	for element := range m.All() {
		offsets = append(offsets, offsets[len(offsets)-1]+len(element.Nodes))
	}
	return offsets
}

// Reindex renumbers elements in every partition through remap, dropping
// elements it does not mention. The remap must be injective over the
// elements present, across partitions; otherwise a
// *fcerr.ValidationError is returned and nothing changes.
func (m *Mesh) Reindex(remap *iddict.Remap) error {
	claimed := make(map[int]int, remap.Len())
	for old, new := range remap.All() {
		if !m.Contains(old) {
			continue
		}
		if previous, taken := claimed[new]; taken || new < 1 {
			return &fcerr.ValidationError{
				Entity:  "element",
				ID:      old,
				Message: fmt.Sprintf("remap assigns id %d, invalid or already given to %d", new, previous),
			}
		}
		claimed[new] = old
	}
	for _, part := range m.partitions {
		if err := part.elements.Reindex(remap); err != nil {
			return err
		}
	}
	return nil
}

// Compress renumbers all elements densely to 1..N in iteration order
// and returns the single remap applied to every partition.
func (m *Mesh) Compress() *iddict.Remap {
	ids := make([]int, 0, m.Len())
	for element := range m.All() {
		ids = append(ids, element.ID)
	}
	remap := iddict.DenseRemap(ids)
	if err := m.Reindex(remap); err != nil {
		panic("mesh: dense remap rejected: " + err.Error())
	}
	return remap
}
