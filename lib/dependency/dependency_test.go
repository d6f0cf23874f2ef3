// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/fccase/lib/binarray"
	"github.com/bureau-foundation/fccase/lib/fcerr"
)

const (
	elementIDs5and7 = "AAAAAAAAFEAAAAAAAAAcQA==" // float64 [5, 7]
	samples20and30  = "AAAAAACANEAAAAAAAIA+QA==" // float64 [20.5, 30.5]
	samples1to3     = "AAAAAAAA8D8AAAAAAAAAQAAAAAAAAAhA"
)

func TestDecodeScalar(t *testing.T) {
	dependency, err := Decode(IntScalar(0), StringScalar(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dependency.IsTable() {
		t.Fatal("scalar members decoded as a table")
	}
	if dependency.Kind() != Constant || dependency.Len() != 0 {
		t.Errorf("got kind %s len %d, want CONSTANT len 0", dependency.Kind(), dependency.Len())
	}

	formula, err := Decode(IntScalar(int(Formula)), StringScalar("2*T + 1"))
	if err != nil {
		t.Fatalf("Decode(formula): %v", err)
	}
	if !formula.Value().IsFormula() || formula.Value().Text() != "2*T + 1" {
		t.Errorf("formula value = %s", formula.Value())
	}
}

func TestDecodeTable(t *testing.T) {
	dependency, err := Decode(
		IntList(int(TabularElementID), int(TabularTemperature)),
		StringList(elementIDs5and7, samples20and30),
	)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !dependency.IsTable() {
		t.Fatal("list members decoded as a scalar")
	}
	if got := dependency.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	columns := dependency.Columns()
	if len(columns) != 2 || columns[0].Kind != TabularElementID || columns[1].Kind != TabularTemperature {
		t.Fatalf("columns = %v", columns)
	}
	if !slices.Equal(columns[1].Value.Numbers(), []float64{20.5, 30.5}) {
		t.Errorf("temperature column = %v", columns[1].Value.Numbers())
	}
}

func TestDecodeShapeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		kinds IntOrList
		data  StringOrList
	}{
		{"list kinds scalar data", IntList(1), StringScalar(samples1to3)},
		{"scalar kinds list data", IntScalar(1), StringList(samples1to3)},
		{"unequal list lengths", IntList(1, 5), StringList(samples1to3)},
		{"unequal column rows", IntList(1, 5), StringList(samples1to3, samples20and30)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.kinds, test.data)
			var validation *fcerr.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("error = %v, want *fcerr.ValidationError", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		kinds IntOrList
		data  StringOrList
	}{
		{"constant", IntScalar(0), StringScalar("")},
		{"formula", IntScalar(6), StringScalar("sin(t)")},
		{"table", IntList(1, 4), StringList(samples20and30, elementIDs5and7)},
		{"empty table", IntList(), StringList()},
		{"unknown kind", IntList(42), StringList(samples1to3)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dependency, err := Decode(test.kinds, test.data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			kinds, data := dependency.Encode()
			if diff := cmp.Diff(test.kinds, kinds, cmp.Comparer(equalIntOrList)); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.data, data, cmp.Comparer(equalStringOrList)); diff != "" {
				t.Errorf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func equalIntOrList(a, b IntOrList) bool {
	return a.IsList == b.IsList && a.Scalar == b.Scalar && slices.Equal(a.List, b.List)
}

func equalStringOrList(a, b StringOrList) bool {
	return a.IsList == b.IsList && a.Scalar == b.Scalar && slices.Equal(a.List, b.List)
}

func TestRemapIDs(t *testing.T) {
	dependency, err := Decode(
		IntList(int(TabularElementID), int(TabularTemperature)),
		StringList(elementIDs5and7, samples20and30),
	)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, err := dependency.ReferencedIDs(TabularElementID); err != nil || !slices.Equal(got, []int{5, 7}) {
		t.Errorf("ReferencedIDs = %v, %v, want [5 7]", got, err)
	}

	remap := map[int]int{5: 1, 7: 2}
	err = dependency.RemapIDs(TabularElementID, func(old int) (int, bool) {
		replacement, ok := remap[old]
		return replacement, ok
	})
	if err != nil {
		t.Fatalf("RemapIDs: %v", err)
	}
	columns := dependency.Columns()
	if !slices.Equal(columns[0].Value.Ints(), []int{1, 2}) {
		t.Errorf("element column = %v, want [1 2]", columns[0].Value.Ints())
	}
	if !slices.Equal(columns[1].Value.Numbers(), []float64{20.5, 30.5}) {
		t.Errorf("temperature column changed: %v", columns[1].Value.Numbers())
	}
}

func TestRemapIDsMissLeavesTableUnchanged(t *testing.T) {
	dependency, err := Decode(IntList(int(TabularNodeID)), StringList(elementIDs5and7))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	err = dependency.RemapIDs(TabularNodeID, func(old int) (int, bool) {
		return 1, old == 5
	})
	var dangling *fcerr.DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("error = %v, want *fcerr.DanglingReferenceError", err)
	}
	if dangling.Target != "node" || dangling.TargetID != 7 {
		t.Errorf("dangling = %+v, want node 7", dangling)
	}
	if got := dependency.Columns()[0].Value.Ints(); !slices.Equal(got, []int{5, 7}) {
		t.Errorf("column after failed remap = %v, want [5 7]", got)
	}
}

func TestFractionalIDsAreRejected(t *testing.T) {
	dependency, err := Table(Column{Kind: TabularElementID, Value: binarray.ArrayOf(binarray.Float64, []float64{5, 7.5})})
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	var invalid *fcerr.ValidationError
	if _, err := dependency.ReferencedIDs(TabularElementID); !errors.As(err, &invalid) || invalid.Field != "TABULAR_ELEMENT_ID" {
		t.Errorf("ReferencedIDs error = %v, want ValidationError on TABULAR_ELEMENT_ID", err)
	}

	called := 0
	err = dependency.RemapIDs(TabularElementID, func(old int) (int, bool) {
		called++
		return old, true
	})
	if !errors.As(err, &invalid) {
		t.Errorf("RemapIDs error = %v, want ValidationError", err)
	}
	if called != 1 {
		t.Errorf("lookup called %d times, want 1 (stopping at 7.5)", called)
	}
	if got := dependency.Columns()[0].Value.Numbers(); !slices.Equal(got, []float64{5, 7.5}) {
		t.Errorf("column after rejected remap = %v, want [5 7.5]", got)
	}

	if _, err := dependency.ReferencedIDs(TabularNodeID); err != nil {
		t.Errorf("ReferencedIDs on another kind: %v", err)
	}
}

func TestRemapIDsIgnoresScalar(t *testing.T) {
	dependency := Scalar(TabularElementID, binarray.ArrayOf(binarray.Float64, []float64{3}))
	called := false
	err := dependency.RemapIDs(TabularElementID, func(int) (int, bool) {
		called = true
		return 0, false
	})
	if err != nil || called {
		t.Errorf("RemapIDs on scalar: err %v, called %v; want no-op", err, called)
	}
}

func TestKindNames(t *testing.T) {
	if TabularNodeID.String() != "TABULAR_NODE_ID" {
		t.Errorf("TabularNodeID.String() = %q", TabularNodeID.String())
	}
	if Kind(9).Known() || Kind(9).String() != "unknown(9)" {
		t.Errorf("Kind(9) = %q known=%v, want unknown(9)", Kind(9).String(), Kind(9).Known())
	}
	kind, ok := ParseKind("TABULAR_STRAIN")
	if !ok || kind != TabularStrain {
		t.Errorf("ParseKind(TABULAR_STRAIN) = %d, %v", kind, ok)
	}
	if !TabularElementID.IsIdentifier() || TabularModeID.IsIdentifier() {
		t.Error("IsIdentifier should hold only for element and node id kinds")
	}
}

func TestRawMembersJSON(t *testing.T) {
	var record struct {
		Types IntOrList    `json:"const_types"`
		Data  StringOrList `json:"const_dep"`
	}
	input := `{"const_types": [10, 5], "const_dep": ["` + elementIDs5and7 + `", ""]}`
	if err := json.Unmarshal([]byte(input), &record); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !record.Types.IsList || !slices.Equal(record.Types.List, []int{10, 5}) {
		t.Errorf("const_types = %+v", record.Types)
	}
	if !record.Data.IsList || len(record.Data.List) != 2 {
		t.Errorf("const_dep = %+v", record.Data)
	}

	scalar := `{"const_types": 0, "const_dep": ""}`
	if err := json.Unmarshal([]byte(scalar), &record); err != nil {
		t.Fatalf("Unmarshal(scalar): %v", err)
	}
	if record.Types.IsList || record.Data.IsList {
		t.Errorf("scalar members decoded as lists: %+v %+v", record.Types, record.Data)
	}

	encoded, err := json.Marshal(struct {
		Types IntOrList    `json:"t"`
		Data  StringOrList `json:"d"`
	}{IntList(), StringScalar("x")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(encoded) != `{"t":[],"d":"x"}` {
		t.Errorf("Marshal = %s, want {\"t\":[],\"d\":\"x\"}", encoded)
	}
}
