// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binarray

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bureau-foundation/fccase/lib/fcerr"
)

// ElementType identifies the fixed-width element encoding of a packed
// array. The zero value is invalid.
type ElementType uint8

const (
	// Int8 is a signed 8-bit integer (element type codes).
	Int8 ElementType = iota + 1
	// Int32 is a signed 32-bit little-endian integer (identifiers,
	// node lists, apply sets).
	Int32
	// Int64 is a signed 64-bit little-endian integer.
	Int64
	// Float64 is an IEEE 754 double, little-endian (coordinates,
	// physical quantities, dependency tables).
	Float64
)

// Width returns the element size in bytes.
func (t ElementType) Width() int {
	switch t {
	case Int8:
		return 1
	case Int32:
		return 4
	case Int64, Float64:
		return 8
	default:
		return 0
	}
}

// String returns the element type name.
func (t ElementType) String() string {
	switch t {
	case Int8:
		return "int8"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// sentinelAll is the literal token meaning "applies to every entity".
// It is rejected by name, before any base64 inspection, so that lenient
// decoders elsewhere in a toolchain can never disagree about it.
const sentinelAll = "all"

// rawBytes decodes text as standard base64 and checks that the result
// is a whole number of elements.
func rawBytes(text string, width int) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, &fcerr.FormatError{Width: width, Err: err}
	}
	if width > 0 && len(raw)%width != 0 {
		return nil, &fcerr.FormatError{Width: width, Length: len(raw)}
	}
	return raw, nil
}

// DecodeInt32 decodes a base64 string of little-endian int32 values.
// The empty string decodes to an empty, non-nil slice.
func DecodeInt32(text string) ([]int32, error) {
	if text == "" {
		return []int32{}, nil
	}
	raw, err := rawBytes(text, 4)
	if err != nil {
		return nil, err
	}
	values := make([]int32, len(raw)/4)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return values, nil
}

// EncodeInt32 is the inverse of [DecodeInt32].
func EncodeInt32(values []int32) string {
	if len(values) == 0 {
		return ""
	}
	raw := make([]byte, len(values)*4)
	for i, value := range values {
		binary.LittleEndian.PutUint32(raw[i*4:], uint32(value))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeInt8 decodes a base64 string of int8 values.
func DecodeInt8(text string) ([]int8, error) {
	if text == "" {
		return []int8{}, nil
	}
	raw, err := rawBytes(text, 1)
	if err != nil {
		return nil, err
	}
	values := make([]int8, len(raw))
	for i, b := range raw {
		values[i] = int8(b)
	}
	return values, nil
}

// EncodeInt8 is the inverse of [DecodeInt8].
func EncodeInt8(values []int8) string {
	if len(values) == 0 {
		return ""
	}
	raw := make([]byte, len(values))
	for i, value := range values {
		raw[i] = byte(value)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeFloat64 decodes a base64 string of little-endian float64 values.
func DecodeFloat64(text string) ([]float64, error) {
	if text == "" {
		return []float64{}, nil
	}
	raw, err := rawBytes(text, 8)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(raw)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return values, nil
}

// EncodeFloat64 is the inverse of [DecodeFloat64].
func EncodeFloat64(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	raw := make([]byte, len(values)*8)
	for i, value := range values {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(value))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode decodes text as an array of elementType, widening every
// element to float64.
func Decode(text string, elementType ElementType) ([]float64, error) {
	width := elementType.Width()
	if width == 0 {
		return nil, fmt.Errorf("decoding array: invalid element type %s", elementType)
	}
	if text == "" {
		return []float64{}, nil
	}
	raw, err := rawBytes(text, width)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(raw)/width)
	for i := range values {
		offset := i * width
		switch elementType {
		case Int8:
			values[i] = float64(int8(raw[offset]))
		case Int32:
			values[i] = float64(int32(binary.LittleEndian.Uint32(raw[offset:])))
		case Int64:
			values[i] = float64(int64(binary.LittleEndian.Uint64(raw[offset:])))
		case Float64:
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[offset:]))
		}
	}
	return values, nil
}

// Encode narrows values to elementType and encodes them. Integer
// element types truncate toward zero; callers storing identifiers pass
// integral values.
func Encode(values []float64, elementType ElementType) string {
	width := elementType.Width()
	if len(values) == 0 || width == 0 {
		return ""
	}
	raw := make([]byte, len(values)*width)
	for i, value := range values {
		offset := i * width
		switch elementType {
		case Int8:
			raw[offset] = byte(int8(value))
		case Int32:
			binary.LittleEndian.PutUint32(raw[offset:], uint32(int32(value)))
		case Int64:
			binary.LittleEndian.PutUint64(raw[offset:], uint64(int64(value)))
		case Float64:
			binary.LittleEndian.PutUint64(raw[offset:], math.Float64bits(value))
		}
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// IsFlexibleBinary reports whether a flexible member holds a packed
// array rather than a literal. The sentinel "all" and the empty string
// are never binary. Anything else is binary only if it is canonical
// standard base64: decoding succeeds and re-encoding the bytes yields
// the exact input, which rejects missing or non-canonical padding and
// stray characters.
func IsFlexibleBinary(text string) bool {
	if text == "" || text == sentinelAll {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return false
	}
	return base64.StdEncoding.EncodeToString(raw) == text
}
