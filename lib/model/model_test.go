// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/fccase/lib/elemtype"
	"github.com/bureau-foundation/fccase/lib/fcerr"
	"github.com/bureau-foundation/fccase/lib/fcjson"
	"github.com/bureau-foundation/fccase/lib/testutil"
)

func decodeSample(t *testing.T) *Model {
	t.Helper()
	m, err := Decode(testutil.SampleDocument(), elemtype.Default())
	if err != nil {
		t.Fatalf("Decode(sample): %v", err)
	}
	return m
}

func TestDecodeSampleStats(t *testing.T) {
	m := decodeSample(t)
	want := Stats{
		Nodes:             testutil.SampleNodes,
		Elements:          testutil.SampleElements,
		ElementsByType:    map[string]int{"TETRA4": 1, "QUAD4": 1},
		Blocks:            2,
		Materials:         2,
		PropertyTables:    1,
		CoordinateSystems: 1,
		Loads:             1,
		Restraints:        1,
		InitialSets:       1,
		Constraints:       1,
		Receivers:         1,
		NodeSets:          1,
		SideSets:          1,
	}
	if diff := cmp.Diff(want, m.Stats()); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeConditions(t *testing.T) {
	m := decodeSample(t)

	load, ok := m.Loads.Get(1)
	if !ok {
		t.Fatal("load 1 missing")
	}
	if name, _ := LoadTypeName(load.Type); name != "FaceDeadStress" {
		t.Errorf("load type = %q, want FaceDeadStress", name)
	}
	if load.ApplyTo.Len() != 1 || !slices.Equal(load.ApplyTo.Row(0), []float64{20, 1}) {
		t.Errorf("load apply_to = %v, want one (element, facet) row [20 1]", load.ApplyTo)
	}
	if len(load.Axes) != 1 || !slices.Equal(load.Axes[0].Data.Numbers(), []float64{1e5}) {
		t.Errorf("load axes = %+v", load.Axes)
	}

	restraint, _ := m.Restraints.Get(1)
	if restraint.CS != 1 || restraint.ApplyTo.Len() != 3 || len(restraint.Axes) != 3 {
		t.Errorf("restraint = cs %d, %d targets, %d axes; want 1, 3, 3",
			restraint.CS, restraint.ApplyTo.Len(), len(restraint.Axes))
	}
	if name, _ := RestraintFlagName(restraint.Axes[0].Flag); name != "Displacement" {
		t.Errorf("restraint flag = %q, want Displacement", name)
	}

	initialSet := m.InitialSets[0]
	if !initialSet.ApplyTo.IsFormula() || initialSet.ApplyTo.Text() != "all" {
		t.Errorf("initial set apply_to = %v, want the formula all", initialSet.ApplyTo)
	}
}

func TestDecodeOptionalApplyToSize(t *testing.T) {
	// apply_to is int32 [1 2 3] in every record; load 1 omits
	// apply_to_size, restraint 1 and the initial set give 0.
	document := `{
		"loads": [{"id": 1, "name": "l", "type": 5, "apply_to": "AQAAAAIAAAADAAAA",
			"data": [], "dependency_type": [], "dep_var_num": [], "dep_var_size": []}],
		"restraints": [{"id": 1, "name": "r", "apply_to": "AQAAAAIAAAADAAAA", "apply_to_size": 0,
			"data": [], "flag": [], "dependency_type": [], "dep_var_num": [], "dep_var_size": []}],
		"initial_sets": [{"id": 1, "type": 0, "apply_to": "AQAAAAIAAAADAAAA", "apply_to_size": 0,
			"data": [], "flag": [], "dependency_type": [], "dep_var_num": [], "dep_var_size": []}]
	}`
	m, err := Decode([]byte(document), elemtype.Default())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	load, _ := m.Loads.Get(1)
	restraint, _ := m.Restraints.Get(1)
	for name, target := range map[string]Target{
		"load":        load.ApplyTo,
		"restraint":   restraint.ApplyTo,
		"initial set": m.InitialSets[0].ApplyTo,
	} {
		if target.Len() != 3 || target.Columns() != 1 || !slices.Equal(target.Numbers(), []float64{1, 2, 3}) {
			t.Errorf("%s apply_to = %v, want three one-id rows", name, target)
		}
	}

	data, err := m.Encode(false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Contains(data, []byte(`"apply_to_size":3`)) {
		t.Errorf("re-encoded apply_to_size is not the row count: %s", data)
	}
}

func TestDecodeStructuralRecords(t *testing.T) {
	m := decodeSample(t)

	constraint := m.ContactConstraints[0]
	if constraint.Master.Dim != 2 || constraint.Master.Size() != 1 {
		t.Errorf("master dim %d size %d, want 2 and 1", constraint.Master.Dim, constraint.Master.Size())
	}
	if constraint.Slave.Dim != 1 || !slices.Equal(constraint.Slave.IDs, []int{5, 3}) {
		t.Errorf("slave = %+v, want ids [5 3] dim 1", constraint.Slave)
	}

	cs, _ := m.CoordinateSystems.Get(1)
	if !slices.Equal(cs.Dir1, []float64{1, 0, 0}) {
		t.Errorf("dir1 = %v, want [1 0 0]", cs.Dir1)
	}

	sideSet, _ := m.SideSets.Get(1)
	if !slices.Equal(sideSet.ApplyTo, []int{20, 0}) {
		t.Errorf("side set = %v, want [20 0]", sideSet.ApplyTo)
	}
	var dofs []int
	if err := json.Unmarshal(m.Receivers[0].Dofs, &dofs); err != nil || !slices.Equal(dofs, []int{1, 2, 3}) {
		t.Errorf("receiver dofs = %s, %v, want [1 2 3]", m.Receivers[0].Dofs, err)
	}
	block, _ := m.Blocks.Get(2)
	if block.MaterialID != 2 || block.PropertyID != 1 {
		t.Errorf("block 2 = %+v", block)
	}
}

func TestEncodeIsStable(t *testing.T) {
	first, err := decodeSample(t).Encode(false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := Decode(first, elemtype.Default())
	if err != nil {
		t.Fatalf("Decode(encoded): %v", err)
	}
	second, err := again.Encode(false)
	if err != nil {
		t.Fatalf("Encode(again): %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("second encode differs from the first:\n%s\n%s", first, second)
	}
}

func TestEncodeMemberOrder(t *testing.T) {
	encoded, err := decodeSample(t).Encode(false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	document, err := fcjson.Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{
		"blocks", "contact_constraints", "coordinate_systems", "header",
		"loads", "materials", "mesh", "receivers", "restraints",
		"initial_sets", "settings", "property_tables", "sets",
		"analysis_notes",
	}
	if diff := cmp.Diff(want, document.Keys()); diff != "" {
		t.Errorf("member order mismatch (-want +got):\n%s", diff)
	}

	var blocks []map[string]json.RawMessage
	if _, err := document.Decode("blocks", &blocks); err != nil {
		t.Fatalf("Decode(blocks): %v", err)
	}
	if string(blocks[1]["comment"]) != `"shell"` {
		t.Errorf("block 2 comment = %s, want preserved", blocks[1]["comment"])
	}
	var notes string
	if _, err := document.Decode("analysis_notes", &notes); err != nil || notes != "kept verbatim" {
		t.Errorf("analysis_notes = %q, %v", notes, err)
	}
}

func TestEncodeOrderIgnoresInputOrder(t *testing.T) {
	document := `{"notes": 1, "settings": {}, "blocks": [{"id": 1, "material_id": 1, "property_id": 0, "cs_id": 0}], "header": {"version": 3}}`
	m, err := Decode([]byte(document), elemtype.Default())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	encoded, err := m.Encode(false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	parsed, err := fcjson.Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([]string{"blocks", "header", "settings", "notes"}, parsed.Keys()); diff != "" {
		t.Errorf("member order mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeIndent(t *testing.T) {
	encoded, err := decodeSample(t).Encode(true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(string(encoded), "{\n    \"blocks\": [") {
		t.Errorf("indented output starts %q", encoded[:min(len(encoded), 40)])
	}
}

func TestEncodeEmptyModel(t *testing.T) {
	encoded, err := New(elemtype.Default()).Encode(false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	document, err := fcjson.Parse(encoded)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := document.Keys(); !slices.Equal(got, []string{"header"}) {
		t.Errorf("empty model members = %v, want only header", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		document string
		check    func(err error) bool
	}{
		{
			name:     "receiver size",
			document: `{"receivers": [{"apply_to": "BQAAAA==", "apply_to_size": 2, "dofs": [], "id": 1, "name": "r", "type": 0}]}`,
			check:    isValidation("receiver", "apply_to"),
		},
		{
			name: "restraint rows",
			document: `{"restraints": [{"id": 4, "name": "r", "apply_to": "AQAAAAIAAAADAAAA", "apply_to_size": 2,
				"data": [], "flag": [], "dependency_type": [], "dep_var_num": [], "dep_var_size": []}]}`,
			check: isValidation("restraint", "apply_to_size"),
		},
		{
			name:     "duplicate block",
			document: `{"blocks": [{"id": 1, "material_id": 1, "property_id": 0, "cs_id": 0}, {"id": 1, "material_id": 2, "property_id": 0, "cs_id": 0}]}`,
			check:    isValidation("block", "id"),
		},
		{
			name:     "bad origin",
			document: `{"coordinate_systems": [{"id": 1, "name": "c", "type": 0, "origin": "QUI=", "dir1": "", "dir2": ""}]}`,
			check: func(err error) bool {
				var format *fcerr.FormatError
				return errors.As(err, &format) && format.Field == "origin"
			},
		},
		{
			name:     "not an object",
			document: `[1, 2, 3]`,
			check:    func(err error) bool { return err != nil },
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode([]byte(test.document), elemtype.Default())
			if !test.check(err) {
				t.Errorf("Decode error = %v", err)
			}
		})
	}
}

func isValidation(entity, field string) func(error) bool {
	return func(err error) bool {
		var validation *fcerr.ValidationError
		return errors.As(err, &validation) && validation.Entity == entity && validation.Field == field
	}
}

func TestHeaderDefaults(t *testing.T) {
	m := New(elemtype.Default())
	var header struct {
		Binary  bool `json:"binary"`
		Version int  `json:"version"`
	}
	if err := json.Unmarshal(m.Header, &header); err != nil {
		t.Fatalf("Unmarshal(header): %v", err)
	}
	if !header.Binary || header.Version != 3 {
		t.Errorf("default header = %+v", header)
	}
	decoded, err := Decode([]byte(`{"blocks": []}`), elemtype.Default())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Header != nil {
		t.Errorf("decoded header = %s, want absent", decoded.Header)
	}
}
