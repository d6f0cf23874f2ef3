// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mesh

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/fccase/lib/binarray"
	"github.com/bureau-foundation/fccase/lib/elemtype"
	"github.com/bureau-foundation/fccase/lib/fcerr"
)

// Raw is the "mesh" member of a case file. Every string is a packed
// array: int32 unless noted.
type Raw struct {
	NodeIDs    string `json:"nids"`
	Nodes      string `json:"nodes"` // float64, x y z per node
	NodesCount *int   `json:"nodes_count,omitempty"`

	ElemBlocks    string `json:"elem_blocks"`
	ElemOrders    string `json:"elem_orders"`
	ElemParentIDs string `json:"elem_parent_ids"`
	ElemTypes     string `json:"elem_types"` // int8 type codes
	ElemIDs       string `json:"elemids"`
	Elems         string `json:"elems"` // concatenated node ids
	ElemsCount    *int   `json:"elems_count,omitempty"`
}

// packed holds the decoded arrays of a Raw.
type packed struct {
	nodeIDs   []int32
	coords    []float64
	blocks    []int32
	orders    []int32
	parentIDs []int32
	types     []int8
	ids       []int32
	nodes     []int32
}

func decodeArrays(raw Raw) (packed, error) {
	var arrays packed
	var group errgroup.Group
	int32Field := func(field, text string, into *[]int32) {
		group.Go(func() error {
			values, err := binarray.DecodeInt32(text)
			if err != nil {
				return fcerr.WithField(err, field)
			}
			*into = values
			return nil
		})
	}
	int32Field("nids", raw.NodeIDs, &arrays.nodeIDs)
	int32Field("elem_blocks", raw.ElemBlocks, &arrays.blocks)
	int32Field("elem_orders", raw.ElemOrders, &arrays.orders)
	int32Field("elem_parent_ids", raw.ElemParentIDs, &arrays.parentIDs)
	int32Field("elemids", raw.ElemIDs, &arrays.ids)
	int32Field("elems", raw.Elems, &arrays.nodes)
	group.Go(func() error {
		values, err := binarray.DecodeFloat64(raw.Nodes)
		if err != nil {
			return fcerr.WithField(err, "nodes")
		}
		arrays.coords = values
		return nil
	})
	group.Go(func() error {
		values, err := binarray.DecodeInt8(raw.ElemTypes)
		if err != nil {
			return fcerr.WithField(err, "elem_types")
		}
		arrays.types = values
		return nil
	})
	if err := group.Wait(); err != nil {
		return packed{}, fmt.Errorf("decoding mesh: %w", err)
	}
	return arrays, nil
}

// Decode builds a mesh from its packed arrays. Element node slices are
// cut by prefix sums over the node counts of each element's type. The
// orders and parent ids arrays may be empty, meaning each type's own
// order and no parent.
func Decode(raw Raw, catalog *elemtype.Catalog) (*Mesh, error) {
	arrays, err := decodeArrays(raw)
	if err != nil {
		return nil, err
	}
	m := New(catalog)

	if len(arrays.coords) != 3*len(arrays.nodeIDs) {
		return nil, fcerr.MalformedMesh("%d coordinates for %d nodes, want %d",
			len(arrays.coords), len(arrays.nodeIDs), 3*len(arrays.nodeIDs))
	}
	if raw.NodesCount != nil && *raw.NodesCount != len(arrays.nodeIDs) {
		return nil, fcerr.MalformedMesh("nodes_count is %d but nids holds %d ids", *raw.NodesCount, len(arrays.nodeIDs))
	}
	m.nodeIDs = make([]int, len(arrays.nodeIDs))
	m.coords = make([][3]float64, len(arrays.nodeIDs))
	for i, id := range arrays.nodeIDs {
		if id < 1 {
			return nil, fcerr.MalformedMesh("node %d at position %d: ids must be positive", id, i)
		}
		if _, repeated := m.nodeIndex[int(id)]; repeated {
			return nil, fcerr.MalformedMesh("node id %d repeated", id)
		}
		m.nodeIndex[int(id)] = i
		m.nodeIDs[i] = int(id)
		m.coords[i] = [3]float64{arrays.coords[3*i], arrays.coords[3*i+1], arrays.coords[3*i+2]}
		m.nodeMax = max(m.nodeMax, int(id))
	}

	count := len(arrays.ids)
	if raw.ElemsCount != nil && *raw.ElemsCount != count {
		return nil, fcerr.MalformedMesh("elems_count is %d but elemids holds %d ids", *raw.ElemsCount, count)
	}
	for _, parallel := range []struct {
		field  string
		length int
		option bool
	}{
		{"elem_blocks", len(arrays.blocks), false},
		{"elem_types", len(arrays.types), false},
		{"elem_orders", len(arrays.orders), true},
		{"elem_parent_ids", len(arrays.parentIDs), true},
	} {
		if parallel.length == count || (parallel.option && parallel.length == 0) {
			continue
		}
		return nil, fcerr.MalformedMesh("%s holds %d entries for %d elements", parallel.field, parallel.length, count)
	}

	types := make([]*elemtype.Type, count)
	offsets := make([]int, count+1)
	for i, code := range arrays.types {
		elementType, err := catalog.ByCode(int(code))
		if err != nil {
			return nil, fmt.Errorf("decoding mesh: element %d: %w", arrays.ids[i], err)
		}
		types[i] = elementType
		offsets[i+1] = offsets[i] + elementType.Nodes
	}
	if offsets[count] != len(arrays.nodes) {
		return nil, fcerr.MalformedMesh("element types need %d node ids, elems holds %d", offsets[count], len(arrays.nodes))
	}

	for i, id := range arrays.ids {
		if id < 1 {
			return nil, fcerr.MalformedMesh("element %d at position %d: ids must be positive", id, i)
		}
		if m.Contains(int(id)) {
			return nil, fcerr.MalformedMesh("element id %d repeated", id)
		}
		nodes := make([]int, offsets[i+1]-offsets[i])
		for j := range nodes {
			nodes[j] = int(arrays.nodes[offsets[i]+j])
		}
		element := &Element{
			ID:          int(id),
			Block:       int(arrays.blocks[i]),
			Order:       types[i].Order,
			Nodes:       nodes,
			elementType: types[i],
		}
		if len(arrays.orders) > 0 {
			element.Order = int(arrays.orders[i])
		}
		if len(arrays.parentIDs) > 0 {
			element.ParentID = int(arrays.parentIDs[i])
		}
		m.partitionFor(types[i]).Set(element.ID, element)
	}
	return m, nil
}

// Encode packs the mesh back into its arrays.
func (m *Mesh) Encode() Raw {
	nodeIDs := make([]int32, len(m.nodeIDs))
	coords := make([]float64, 0, 3*len(m.coords))
	for i, id := range m.nodeIDs {
		nodeIDs[i] = int32(id)
		coords = append(coords, m.coords[i][0], m.coords[i][1], m.coords[i][2])
	}

	count := m.Len()
	ids := make([]int32, 0, count)
	blocks := make([]int32, 0, count)
	orders := make([]int32, 0, count)
	parentIDs := make([]int32, 0, count)
	types := make([]int8, 0, count)
	var nodes []int32
	for element := range m.All() {
		ids = append(ids, int32(element.ID))
		blocks = append(blocks, int32(element.Block))
		orders = append(orders, int32(element.Order))
		parentIDs = append(parentIDs, int32(element.ParentID))
		types = append(types, int8(element.elementType.Code))
		for _, node := range element.Nodes {
			nodes = append(nodes, int32(node))
		}
	}

	nodesCount := len(nodeIDs)
	return Raw{
		NodeIDs:       binarray.EncodeInt32(nodeIDs),
		Nodes:         binarray.EncodeFloat64(coords),
		NodesCount:    &nodesCount,
		ElemBlocks:    binarray.EncodeInt32(blocks),
		ElemOrders:    binarray.EncodeInt32(orders),
		ElemParentIDs: binarray.EncodeInt32(parentIDs),
		ElemTypes:     binarray.EncodeInt8(types),
		ElemIDs:       binarray.EncodeInt32(ids),
		Elems:         binarray.EncodeInt32(nodes),
		ElemsCount:    &count,
	}
}
