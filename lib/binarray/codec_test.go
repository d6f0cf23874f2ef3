// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binarray

import (
	"errors"
	"slices"
	"testing"

	"github.com/bureau-foundation/fccase/lib/fcerr"
)

func TestDecodeInt32Known(t *testing.T) {
	got, err := DecodeInt32("AgAAAAoAAAABAAAA")
	if err != nil {
		t.Fatalf("DecodeInt32: %v", err)
	}
	want := []int32{2, 10, 1}
	if !slices.Equal(got, want) {
		t.Errorf("DecodeInt32 = %v, want %v", got, want)
	}
}

func TestDecodeFloat64Known(t *testing.T) {
	got, err := DecodeFloat64("AAAAAAAA8D8AAAAAAAAEwA==")
	if err != nil {
		t.Fatalf("DecodeFloat64: %v", err)
	}
	want := []float64{1.0, -2.5}
	if !slices.Equal(got, want) {
		t.Errorf("DecodeFloat64 = %v, want %v", got, want)
	}
}

func TestDecodeInt8Known(t *testing.T) {
	got, err := DecodeInt8("Af8M")
	if err != nil {
		t.Fatalf("DecodeInt8: %v", err)
	}
	want := []int8{1, -1, 12}
	if !slices.Equal(got, want) {
		t.Errorf("DecodeInt8 = %v, want %v", got, want)
	}
}

func TestEmptyStringIsEmptyArray(t *testing.T) {
	ints, err := DecodeInt32("")
	if err != nil {
		t.Fatalf("DecodeInt32(\"\"): %v", err)
	}
	if ints == nil || len(ints) != 0 {
		t.Errorf("DecodeInt32(\"\") = %#v, want empty non-nil slice", ints)
	}
	if got := EncodeInt32(nil); got != "" {
		t.Errorf("EncodeInt32(nil) = %q, want \"\"", got)
	}
	if got := EncodeFloat64([]float64{}); got != "" {
		t.Errorf("EncodeFloat64(empty) = %q, want \"\"", got)
	}
}

func TestTypedRoundTrip(t *testing.T) {
	ints := []int32{-2147483648, -1, 0, 1, 2147483647}
	decodedInts, err := DecodeInt32(EncodeInt32(ints))
	if err != nil {
		t.Fatalf("DecodeInt32: %v", err)
	}
	if !slices.Equal(decodedInts, ints) {
		t.Errorf("int32 round trip = %v, want %v", decodedInts, ints)
	}

	floats := []float64{0, -0.5, 3.141592653589793, 1e300, -1e-300}
	decodedFloats, err := DecodeFloat64(EncodeFloat64(floats))
	if err != nil {
		t.Fatalf("DecodeFloat64: %v", err)
	}
	if !slices.Equal(decodedFloats, floats) {
		t.Errorf("float64 round trip = %v, want %v", decodedFloats, floats)
	}

	codes := []int8{-128, 0, 127}
	decodedCodes, err := DecodeInt8(EncodeInt8(codes))
	if err != nil {
		t.Fatalf("DecodeInt8: %v", err)
	}
	if !slices.Equal(decodedCodes, codes) {
		t.Errorf("int8 round trip = %v, want %v", decodedCodes, codes)
	}
}

func TestWidenedRoundTrip(t *testing.T) {
	for _, elementType := range []ElementType{Int8, Int32, Int64, Float64} {
		values := []float64{1, 2, 3, 100, -7}
		text := Encode(values, elementType)
		got, err := Decode(text, elementType)
		if err != nil {
			t.Fatalf("Decode(%s): %v", elementType, err)
		}
		if !slices.Equal(got, values) {
			t.Errorf("%s round trip = %v, want %v", elementType, got, values)
		}
	}
}

func TestWidenedMatchesTyped(t *testing.T) {
	text := EncodeInt32([]int32{5, 6, 7})
	widened, err := Decode(text, Int32)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !slices.Equal(widened, []float64{5, 6, 7}) {
		t.Errorf("Decode(Int32) = %v, want [5 6 7]", widened)
	}
	if Encode(widened, Int32) != text {
		t.Errorf("Encode(Decode(x)) != x for %q", text)
	}
}

func TestDecodeInvalidBase64(t *testing.T) {
	_, err := DecodeInt32("not base64!")
	var formatErr *fcerr.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("DecodeInt32(invalid) error = %v, want *fcerr.FormatError", err)
	}
	if formatErr.Err == nil {
		t.Error("FormatError should wrap the base64 error")
	}
}

func TestDecodeWrongWidth(t *testing.T) {
	// "QUI=" is two bytes: not a whole int32.
	_, err := DecodeInt32("QUI=")
	var formatErr *fcerr.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("DecodeInt32(2 bytes) error = %v, want *fcerr.FormatError", err)
	}
	if formatErr.Width != 4 || formatErr.Length != 2 {
		t.Errorf("FormatError = %+v, want width 4 length 2", formatErr)
	}

	if _, err := DecodeFloat64("BwAAAA=="); err == nil {
		t.Error("DecodeFloat64 of 4 bytes should fail")
	}
}

func TestIsFlexibleBinary(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"all", false},
		{"", false},
		{"AgAAAAoAAAABAAAA", true},
		{"BwAAAA==", true},
		// Non-canonical padding bits: decodes, but re-encodes as "QUI=".
		{"QUJ=", false},
		// Missing padding.
		{"BwAAAA", false},
		// Embedded newline is skipped by the decoder but is not canonical.
		{"AgAA\nAAoAAAABAAAA", false},
		{"x*2 + sin(t)", false},
		{"TEMP_100", false},
	}
	for _, test := range tests {
		if got := IsFlexibleBinary(test.text); got != test.want {
			t.Errorf("IsFlexibleBinary(%q) = %v, want %v", test.text, got, test.want)
		}
	}
}

func TestElementTypeWidth(t *testing.T) {
	tests := map[ElementType]int{Int8: 1, Int32: 4, Int64: 8, Float64: 8, ElementType(0): 0}
	for elementType, want := range tests {
		if got := elementType.Width(); got != want {
			t.Errorf("%s.Width() = %d, want %d", elementType, got, want)
		}
	}
}
