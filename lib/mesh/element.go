// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mesh

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/fccase/lib/elemtype"
	"github.com/bureau-foundation/fccase/lib/fcerr"
)

// Element is one finite element. Its type is fixed at construction
// and decides the partition it lives in.
type Element struct {
	ID int
	// Block is the owning block's id.
	Block int
	// ParentID is the coarse element this one was refined from, or 0.
	ParentID int
	// Order is 1 for linear and 2 for quadratic elements.
	Order int
	// Nodes are node ids, len(Nodes) == Type().Nodes.
	Nodes []int

	elementType *elemtype.Type
}

// NewElement returns an element of elementType. The node count must
// match the type.
func NewElement(elementType *elemtype.Type, id, block int, nodes []int) (*Element, error) {
	element := &Element{
		ID:          id,
		Block:       block,
		Nodes:       nodes,
		elementType: elementType,
	}
	if err := element.validate(); err != nil {
		return nil, err
	}
	element.Order = elementType.Order
	return element, nil
}

func (e *Element) Key() int { return e.ID }

func (e *Element) SetKey(id int) { e.ID = id }

// Type returns the element's catalog entry.
func (e *Element) Type() *elemtype.Type { return e.elementType }

// Clone returns a deep copy sharing only the immutable type.
func (e *Element) Clone() *Element {
	clone := *e
	clone.Nodes = slices.Clone(e.Nodes)
	return &clone
}

func (e *Element) validate() error {
	if e.elementType == nil {
		return &fcerr.ValidationError{Entity: "element", ID: e.ID, Field: "type", Message: "missing element type"}
	}
	if len(e.Nodes) != e.elementType.Nodes {
		return &fcerr.ValidationError{
			Entity:  "element",
			ID:      e.ID,
			Field:   "nodes",
			Message: fmt.Sprintf("%s needs %d nodes, got %d", e.elementType.Name, e.elementType.Nodes, len(e.Nodes)),
		}
	}
	return nil
}
