// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binarray

import (
	"fmt"
	"slices"
)

// ValueKind is the variant of a [Value].
type ValueKind uint8

const (
	// KindEmpty is a member that was the empty string.
	KindEmpty ValueKind = iota
	// KindArray is a packed numeric array.
	KindArray
	// KindFormula is a literal: a sentinel token such as "all" or a
	// symbolic expression.
	KindFormula
)

// String returns the variant name.
func (k ValueKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindArray:
		return "array"
	case KindFormula:
		return "formula"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Value is the decoded form of a flexible member: Empty, Array, or
// Formula. The variant is fixed at construction.
//
// Array values are stored widened to float64 together with the element
// type they were decoded from, so encoding reproduces the original
// width. An array also has a shape: by default one column per row;
// [Value.Resize] reshapes it against a declared row count.
type Value struct {
	kind        ValueKind
	elementType ElementType
	numbers     []float64
	columns     int
	formula     string
}

// Empty returns the empty value for elementType.
func Empty(elementType ElementType) Value {
	return Value{kind: KindEmpty, elementType: elementType}
}

// ArrayOf returns an array value over numbers with one column. The
// slice is retained, not copied.
func ArrayOf(elementType ElementType, numbers []float64) Value {
	return Value{kind: KindArray, elementType: elementType, numbers: numbers, columns: 1}
}

// Formula returns a literal value. The empty string yields an empty
// value rather than an empty formula, since the two encode identically.
func Formula(text string) Value {
	if text == "" {
		return Value{kind: KindEmpty}
	}
	return Value{kind: KindFormula, formula: text}
}

// DecodeFlexible classifies and decodes a flexible member. The empty
// string is Empty; canonical base64 (see [IsFlexibleBinary]) is an
// Array of elementType; anything else is a Formula holding the text
// verbatim.
//
// Short identifiers such as "time" are canonical base64 too. When the
// decoded byte count is not a whole number of elements the text cannot
// be an array of elementType, and it is kept as a Formula instead of
// failing.
func DecodeFlexible(text string, elementType ElementType) (Value, error) {
	if text == "" {
		return Empty(elementType), nil
	}
	if !IsFlexibleBinary(text) {
		return Value{kind: KindFormula, elementType: elementType, formula: text}, nil
	}
	if width := elementType.Width(); width > 0 && base64DecodedLen(text)%width != 0 {
		return Value{kind: KindFormula, elementType: elementType, formula: text}, nil
	}
	numbers, err := Decode(text, elementType)
	if err != nil {
		return Value{}, err
	}
	return ArrayOf(elementType, numbers), nil
}

// base64DecodedLen returns the byte length of canonical padded base64.
func base64DecodedLen(text string) int {
	padding := 0
	for i := len(text) - 1; i >= 0 && text[i] == '='; i-- {
		padding++
	}
	return len(text)/4*3 - padding
}

// EncodeFlexible is the inverse of [DecodeFlexible].
func (v Value) EncodeFlexible() string {
	switch v.kind {
	case KindArray:
		return Encode(v.numbers, v.elementType)
	case KindFormula:
		return v.formula
	default:
		return ""
	}
}

// Kind returns the variant.
func (v Value) Kind() ValueKind { return v.kind }

// IsEmpty reports whether v is the Empty variant.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// IsArray reports whether v is the Array variant.
func (v Value) IsArray() bool { return v.kind == KindArray }

// IsFormula reports whether v is the Formula variant.
func (v Value) IsFormula() bool { return v.kind == KindFormula }

// ElementType returns the element type the value encodes as.
func (v Value) ElementType() ElementType { return v.elementType }

// Numbers returns the flat array contents, or nil for non-arrays. The
// slice is shared with v.
func (v Value) Numbers() []float64 {
	if v.kind != KindArray {
		return nil
	}
	return v.numbers
}

// Ints returns the array contents converted to int, or nil for
// non-arrays.
func (v Value) Ints() []int {
	if v.kind != KindArray {
		return nil
	}
	ints := make([]int, len(v.numbers))
	for i, number := range v.numbers {
		ints[i] = int(number)
	}
	return ints
}

// Text returns the literal text of a Formula, or "" otherwise.
func (v Value) Text() string {
	if v.kind != KindFormula {
		return ""
	}
	return v.formula
}

// Columns returns the number of elements per row of an array value.
func (v Value) Columns() int {
	if v.kind != KindArray {
		return 0
	}
	return v.columns
}

// Len returns the row count of an array value and 0 for other
// variants.
func (v Value) Len() int {
	if v.kind != KindArray || v.columns == 0 {
		return 0
	}
	return len(v.numbers) / v.columns
}

// Row returns row i of an array value, sharing storage with v.
func (v Value) Row(i int) []float64 {
	start := i * v.columns
	return v.numbers[start : start+v.columns]
}

// Resize reshapes an array into rows rows, deriving the column count.
// It only applies when v is a non-empty array, rows is positive, and
// the element count divides evenly; otherwise the shape is unchanged
// and Resize reports false.
func (v *Value) Resize(rows int) bool {
	if v.kind != KindArray || rows <= 0 || len(v.numbers) == 0 || len(v.numbers)%rows != 0 {
		return false
	}
	v.columns = len(v.numbers) / rows
	return true
}

// MapNumbers returns a copy of an array value with every element
// replaced by mapping(element). The first mapping error aborts and is
// returned. Non-array values are returned unchanged.
func (v Value) MapNumbers(mapping func(float64) (float64, error)) (Value, error) {
	if v.kind != KindArray {
		return v, nil
	}
	mapped := v
	mapped.numbers = make([]float64, len(v.numbers))
	for i, number := range v.numbers {
		replacement, err := mapping(number)
		if err != nil {
			return Value{}, err
		}
		mapped.numbers[i] = replacement
	}
	return mapped, nil
}

// Equal reports whether two values have the same variant, contents,
// and shape. Element type is ignored for Empty and Formula values,
// which encode identically regardless of it.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindArray:
		return v.elementType == other.elementType &&
			v.columns == other.columns &&
			slices.Equal(v.numbers, other.numbers)
	case KindFormula:
		return v.formula == other.formula
	default:
		return true
	}
}

// String returns a short description for logs and test failures.
func (v Value) String() string {
	switch v.kind {
	case KindArray:
		return fmt.Sprintf("array<%s>[%dx%d]", v.elementType, v.Len(), v.columns)
	case KindFormula:
		return fmt.Sprintf("formula(%q)", v.formula)
	default:
		return "empty"
	}
}
