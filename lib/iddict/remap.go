// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package iddict

import "iter"

// Remap is an ordered old-to-new identifier table. The zero value is
// an empty remap ready to use. A nil *Remap is empty for reads.
type Remap struct {
	order []int
	table map[int]int
}

// NewRemap returns an empty remap.
func NewRemap() *Remap {
	return &Remap{table: make(map[int]int)}
}

// DenseRemap maps ids, in the given order, to 1..N. Repeated ids keep
// their first position.
func DenseRemap(ids []int) *Remap {
	remap := &Remap{order: make([]int, 0, len(ids)), table: make(map[int]int, len(ids))}
	for _, id := range ids {
		if _, exists := remap.table[id]; exists {
			continue
		}
		remap.Set(id, len(remap.order)+1)
	}
	return remap
}

// Set maps old to new. Overwriting an existing entry keeps its
// position.
func (r *Remap) Set(old, new int) {
	if r.table == nil {
		r.table = make(map[int]int)
	}
	if _, exists := r.table[old]; !exists {
		r.order = append(r.order, old)
	}
	r.table[old] = new
}

// Lookup returns the new id for old.
func (r *Remap) Lookup(old int) (int, bool) {
	if r == nil {
		return 0, false
	}
	new, ok := r.table[old]
	return new, ok
}

// Len returns the number of entries.
func (r *Remap) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// All yields (old, new) pairs in insertion order.
func (r *Remap) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		if r == nil {
			return
		}
		for _, old := range r.order {
			if !yield(old, r.table[old]) {
				return
			}
		}
	}
}

// IsIdentity reports whether every entry maps an id to itself.
func (r *Remap) IsIdentity() bool {
	for old, new := range r.All() {
		if old != new {
			return false
		}
	}
	return true
}
