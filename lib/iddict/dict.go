// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package iddict

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/bureau-foundation/fccase/lib/fcerr"
)

// Identified is a record that carries its own identifier, read by Key
// and written by SetKey. Pointer types satisfy it naturally: the
// dictionary rewrites the id in place when it assigns or renumbers.
type Identified interface {
	Key() int
	SetKey(id int)
}

// Dictionary is an insertion-ordered collection of records keyed by
// id. The zero value is an empty dictionary ready to use.
type Dictionary[T Identified] struct {
	entity string
	order  []int
	items  map[int]T
	maxID  int
}

// New returns an empty dictionary. entity names the record kind in
// errors ("block", "material").
func New[T Identified](entity string) *Dictionary[T] {
	return &Dictionary[T]{entity: entity, items: make(map[int]T)}
}

// Add stores item under its own id when that id is positive and free,
// and under MaxID()+1 otherwise. The item's id is rewritten to match.
// Returns the id used.
func (d *Dictionary[T]) Add(item T) int {
	id := item.Key()
	if id < 1 || d.Contains(id) {
		id = d.maxID + 1
	}
	d.Set(id, item)
	return id
}

// Set stores item under id, replacing any record already there while
// keeping its position.
func (d *Dictionary[T]) Set(id int, item T) {
	if d.items == nil {
		d.items = make(map[int]T)
	}
	item.SetKey(id)
	if _, exists := d.items[id]; !exists {
		d.order = append(d.order, id)
	}
	d.items[id] = item
	if id > d.maxID {
		d.maxID = id
	}
}

// Get returns the record with id.
func (d *Dictionary[T]) Get(id int) (T, bool) {
	item, ok := d.items[id]
	return item, ok
}

// Contains reports whether id is present.
func (d *Dictionary[T]) Contains(id int) bool {
	_, ok := d.items[id]
	return ok
}

// Len returns the number of records.
func (d *Dictionary[T]) Len() int { return len(d.order) }

// MaxID returns the largest id assigned since the last Reindex. It
// does not shrink on Delete, so ids are not reused until the
// dictionary is renumbered.
func (d *Dictionary[T]) MaxID() int { return d.maxID }

// Keys returns the ids in insertion order.
func (d *Dictionary[T]) Keys() []int { return slices.Clone(d.order) }

// All yields the records in insertion order.
func (d *Dictionary[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, id := range d.order {
			if !yield(d.items[id]) {
				return
			}
		}
	}
}

// Delete removes the record with id, reporting whether it was present.
func (d *Dictionary[T]) Delete(id int) bool {
	if _, ok := d.items[id]; !ok {
		return false
	}
	delete(d.items, id)
	d.order = slices.DeleteFunc(d.order, func(key int) bool { return key == id })
	return true
}

// Reindex moves each record whose id appears in remap to its new id,
// in remap order, and drops every record remap does not mention.
// MaxID becomes the largest surviving id, or 0.
//
// Two present records mapping to the same new id, or a new id below 1,
// is a *fcerr.ValidationError; the dictionary is left unchanged.
func (d *Dictionary[T]) Reindex(remap *Remap) error {
	claimed := make(map[int]int, remap.Len())
	for old, new := range remap.All() {
		if !d.Contains(old) {
			continue
		}
		if new < 1 {
			return &fcerr.ValidationError{
				Entity:  d.entityName(),
				ID:      old,
				Message: fmt.Sprintf("remap assigns invalid id %d", new),
			}
		}
		if previous, taken := claimed[new]; taken {
			return &fcerr.ValidationError{
				Entity:  d.entityName(),
				ID:      old,
				Message: fmt.Sprintf("remap assigns id %d already assigned to %d", new, previous),
			}
		}
		claimed[new] = old
	}

	order := make([]int, 0, len(claimed))
	items := make(map[int]T, len(claimed))
	maxID := 0
	for old, new := range remap.All() {
		item, ok := d.items[old]
		if !ok {
			continue
		}
		item.SetKey(new)
		order = append(order, new)
		items[new] = item
		maxID = max(maxID, new)
	}
	d.order, d.items, d.maxID = order, items, maxID
	return nil
}

// Compress renumbers the records densely to 1..N in insertion order
// and returns the remap applied.
func (d *Dictionary[T]) Compress() *Remap {
	remap := DenseRemap(d.order)
	if err := d.Reindex(remap); err != nil {
		// A dense remap over present keys is injective and positive.
		panic("iddict: dense remap rejected: " + err.Error())
	}
	return remap
}

func (d *Dictionary[T]) entityName() string {
	if d.entity == "" {
		return "record"
	}
	return d.entity
}

// DecodeRecords decodes a JSON record list into d. Records with a
// positive id are stored under it; a repeated id is a
// *fcerr.ValidationError. Records without an id are assigned one.
func DecodeRecords[T Identified](d *Dictionary[T], records []json.RawMessage, decode func(json.RawMessage) (T, error)) error {
	for i, record := range records {
		item, err := decode(record)
		if err != nil {
			return fmt.Errorf("decoding %s record %d: %w", d.entityName(), i, err)
		}
		id := item.Key()
		if id < 1 {
			d.Add(item)
			continue
		}
		if d.Contains(id) {
			return &fcerr.ValidationError{Entity: d.entityName(), ID: id, Field: "id", Message: "duplicate id"}
		}
		d.Set(id, item)
	}
	return nil
}

// EncodeRecords encodes every record of d, in order.
func EncodeRecords[T Identified, R any](d *Dictionary[T], encode func(T) (R, error)) ([]R, error) {
	records := make([]R, 0, d.Len())
	for item := range d.All() {
		record, err := encode(item)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %d: %w", d.entityName(), item.Key(), err)
		}
		records = append(records, record)
	}
	return records, nil
}
