// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"fmt"
	"math"
	"slices"

	"github.com/bureau-foundation/fccase/lib/binarray"
	"github.com/bureau-foundation/fccase/lib/fcerr"
)

// Column is one axis of a dependency table.
type Column struct {
	Kind  Kind
	Value binarray.Value
}

// Dependency is either scalar (one kind and one value, typically a
// constant or a formula) or a table of columns. The zero value is the
// scalar constant with an empty value.
type Dependency struct {
	table   bool
	kind    Kind
	value   binarray.Value
	columns []Column
}

// Scalar returns a scalar dependency.
func Scalar(kind Kind, value binarray.Value) Dependency {
	return Dependency{kind: kind, value: value}
}

// Table returns a table dependency over columns. Array columns must
// have equal row counts.
func Table(columns ...Column) (Dependency, error) {
	dependency := Dependency{table: true, columns: columns}
	if err := dependency.checkColumns(); err != nil {
		return Dependency{}, err
	}
	return dependency, nil
}

// Decode builds a dependency from its two raw members. Both must be
// lists (a table, zipped pairwise) or both scalars. Every data string
// is decoded flexibly as float64.
func Decode(kinds IntOrList, data StringOrList) (Dependency, error) {
	switch {
	case kinds.IsList && data.IsList:
		if len(kinds.List) != len(data.List) {
			return Dependency{}, &fcerr.ValidationError{
				Entity:  "dependency",
				Message: fmt.Sprintf("%d kinds but %d data columns", len(kinds.List), len(data.List)),
			}
		}
		columns := make([]Column, len(kinds.List))
		for i, code := range kinds.List {
			value, err := binarray.DecodeFlexible(data.List[i], binarray.Float64)
			if err != nil {
				return Dependency{}, fmt.Errorf("decoding dependency column %d: %w", i, err)
			}
			columns[i] = Column{Kind: Kind(code), Value: value}
		}
		return Table(columns...)
	case !kinds.IsList && !data.IsList:
		value, err := binarray.DecodeFlexible(data.Scalar, binarray.Float64)
		if err != nil {
			return Dependency{}, fmt.Errorf("decoding dependency value: %w", err)
		}
		return Scalar(Kind(kinds.Scalar), value), nil
	default:
		return Dependency{}, &fcerr.ValidationError{
			Entity:  "dependency",
			Message: "kind and data members mix list and scalar shapes",
		}
	}
}

func (d Dependency) checkColumns() error {
	rows := -1
	for i, column := range d.columns {
		if !column.Value.IsArray() {
			continue
		}
		if rows < 0 {
			rows = column.Value.Len()
			continue
		}
		if column.Value.Len() != rows {
			return &fcerr.ValidationError{
				Entity:  "dependency",
				Message: fmt.Sprintf("column %d (%s) has %d rows, want %d", i, column.Kind, column.Value.Len(), rows),
			}
		}
	}
	return nil
}

// Encode returns the raw members, in the same shape Decode accepted.
func (d Dependency) Encode() (IntOrList, StringOrList) {
	if !d.table {
		return IntScalar(int(d.kind)), StringScalar(d.value.EncodeFlexible())
	}
	kinds := make([]int, len(d.columns))
	data := make([]string, len(d.columns))
	for i, column := range d.columns {
		kinds[i] = int(column.Kind)
		data[i] = column.Value.EncodeFlexible()
	}
	return IntList(kinds...), StringList(data...)
}

// IsTable reports whether d is the table form.
func (d Dependency) IsTable() bool { return d.table }

// Kind returns the kind of a scalar dependency. Table dependencies
// report [Constant]; their kinds are per column.
func (d Dependency) Kind() Kind {
	if d.table {
		return Constant
	}
	return d.kind
}

// Value returns the value of a scalar dependency.
func (d Dependency) Value() binarray.Value { return d.value }

// Columns returns the table columns, shared with d.
func (d Dependency) Columns() []Column { return d.columns }

// Len returns the table's row count: the length of the first column,
// or 0 for a scalar dependency or an empty table.
func (d Dependency) Len() int {
	if !d.table || len(d.columns) == 0 {
		return 0
	}
	return d.columns[0].Value.Len()
}

// ReferencedIDs returns the distinct identifiers held by columns of
// kind, in first-seen order. A sample that is not a whole number in
// int32 range is a *fcerr.ValidationError.
func (d Dependency) ReferencedIDs(kind Kind) ([]int, error) {
	var ids []int
	seen := make(map[int]struct{})
	for _, column := range d.columns {
		if column.Kind != kind || !column.Value.IsArray() {
			continue
		}
		for _, number := range column.Value.Numbers() {
			id, err := identifier(kind, number)
			if err != nil {
				return nil, err
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// RemapIDs rewrites every array column of kind through lookup. A miss
// returns a *fcerr.DanglingReferenceError naming the missing id, and a
// sample that is not an identifier a *fcerr.ValidationError; either
// leaves d unchanged. Scalar dependencies and other kinds are
// untouched.
func (d *Dependency) RemapIDs(kind Kind, lookup func(old int) (int, bool)) error {
	if !d.table {
		return nil
	}
	rewritten := slices.Clone(d.columns)
	changed := false
	for i, column := range d.columns {
		if column.Kind != kind || !column.Value.IsArray() {
			continue
		}
		mapped, err := column.Value.MapNumbers(func(number float64) (float64, error) {
			old, err := identifier(kind, number)
			if err != nil {
				return 0, err
			}
			replacement, ok := lookup(old)
			if !ok {
				return 0, &fcerr.DanglingReferenceError{
					Source:   "dependency",
					Field:    kind.String(),
					Target:   identifierTarget(kind),
					TargetID: old,
				}
			}
			return float64(replacement), nil
		})
		if err != nil {
			return err
		}
		rewritten[i].Value = mapped
		changed = true
	}
	if changed {
		d.columns = rewritten
	}
	return nil
}

// identifier converts one identifier sample. Ids are stored as float64
// in the table but must be whole int32 values.
func identifier(kind Kind, number float64) (int, error) {
	if number != math.Trunc(number) || math.Abs(number) > math.MaxInt32 {
		return 0, &fcerr.ValidationError{
			Entity:  "dependency",
			Field:   kind.String(),
			Message: fmt.Sprintf("%v is not a whole %s id", number, identifierTarget(kind)),
		}
	}
	return int(number), nil
}

func identifierTarget(kind Kind) string {
	switch kind {
	case TabularElementID:
		return "element"
	case TabularNodeID:
		return "node"
	default:
		return kind.String()
	}
}
