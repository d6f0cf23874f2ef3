// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compact

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/fccase/lib/binarray"
	"github.com/bureau-foundation/fccase/lib/dependency"
	"github.com/bureau-foundation/fccase/lib/elemtype"
	"github.com/bureau-foundation/fccase/lib/fcerr"
	"github.com/bureau-foundation/fccase/lib/material"
	"github.com/bureau-foundation/fccase/lib/mesh"
	"github.com/bureau-foundation/fccase/lib/model"
	"github.com/bureau-foundation/fccase/lib/testutil"
)

func decodeSample(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.Decode(testutil.SampleDocument(), elemtype.Default())
	if err != nil {
		t.Fatalf("Decode(sample): %v", err)
	}
	return m
}

func encode(t *testing.T, m *model.Model) []byte {
	t.Helper()
	data, err := m.Encode(false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func tabulated(t *testing.T, kind dependency.Kind, ids ...float64) material.Property {
	t.Helper()
	samples := make([]float64, len(ids))
	for i := range samples {
		samples[i] = float64(i + 1)
	}
	table, err := dependency.Table(dependency.Column{Kind: kind, Value: binarray.ArrayOf(binarray.Float64, ids)})
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	return material.Property{Value: binarray.ArrayOf(binarray.Float64, samples), Dependency: table}
}

// sparse builds a model with gaps everywhere: nodes 100..500 (500
// unused), one TETRA4 with id 42 in block 7, an unused block 3, an
// unused property table 6, materials 9 and 4 (4 tabulated against
// nodes 300 and 100), and loads 5 and 3.
func sparse(t *testing.T) *model.Model {
	t.Helper()
	m := model.New(elemtype.Default())
	for _, id := range []int{500, 100, 200, 300, 400} {
		m.Mesh.AddNode(id, [3]float64{float64(id), 0, 0})
	}
	tetra, err := elemtype.Default().ByName("TETRA4")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	element, err := mesh.NewElement(tetra, 42, 7, []int{400, 300, 200, 100})
	if err != nil {
		t.Fatalf("NewElement: %v", err)
	}
	if _, err := m.Mesh.Add(element); err != nil {
		t.Fatalf("Add: %v", err)
	}

	m.Blocks.Add(&model.Block{ID: 3, MaterialID: 4})
	m.Blocks.Add(&model.Block{ID: 7, MaterialID: 9, PropertyID: 5})
	m.PropertyTables.Add(&model.PropertyTable{ID: 6, Properties: json.RawMessage("{}")})
	m.PropertyTables.Add(&model.PropertyTable{ID: 5, Properties: json.RawMessage("{}")})

	m.Materials.Add(&material.Material{ID: 9, Name: "plain"})
	graded := &material.Material{ID: 4, Name: "graded"}
	graded.AddProperty(material.Thermal, tabulated(t, dependency.TabularNodeID, 300, 100))
	m.Materials.Add(graded)

	m.Loads.Add(&model.Load{ID: 5, Name: "a", Type: 5, ApplyTo: binarray.Formula("all")})
	m.Loads.Add(&model.Load{ID: 3, Name: "b", Type: 5, ApplyTo: binarray.Formula("all")})
	return m
}

func TestCompactSparse(t *testing.T) {
	m := sparse(t)
	result, err := New(nil).Compact(m)
	if err != nil {
		t.Fatalf("Compact: %v", err)
	}

	if result.DroppedNodes != 1 || result.DroppedBlocks != 1 || result.DroppedPropertyTables != 1 {
		t.Errorf("dropped nodes/blocks/tables = %d/%d/%d, want 1/1/1",
			result.DroppedNodes, result.DroppedBlocks, result.DroppedPropertyTables)
	}
	if got := m.Mesh.NodeIDs(); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("NodeIDs() = %v, want [1 2 3 4]", got)
	}
	if xyz, _ := m.Mesh.Node(3); xyz[0] != 300 {
		t.Errorf("node 3 = %v, want the old node 300", xyz)
	}

	element, ok := m.Mesh.Get(1)
	if !ok {
		t.Fatal("element 1 missing after compaction")
	}
	if !slices.Equal(element.Nodes, []int{4, 3, 2, 1}) || element.Block != 1 {
		t.Errorf("element 1 = nodes %v block %d, want [4 3 2 1] and 1", element.Nodes, element.Block)
	}

	if got := m.Blocks.Keys(); !slices.Equal(got, []int{1}) {
		t.Fatalf("block ids = %v, want [1]", got)
	}
	block, _ := m.Blocks.Get(1)
	if block.PropertyID != 1 || block.MaterialID != 1 {
		t.Errorf("block 1 = property %d material %d, want 1 and 1", block.PropertyID, block.MaterialID)
	}
	if got := m.PropertyTables.Keys(); !slices.Equal(got, []int{1}) {
		t.Errorf("property table ids = %v, want [1]", got)
	}

	// Materials keep insertion order: 9 then 4.
	graded, ok := m.Materials.Get(2)
	if !ok || graded.Name != "graded" {
		t.Fatalf("material 2 = %v, want graded", graded)
	}
	property := graded.Group(material.Thermal).Properties[0]
	if got, err := property.Dependency.ReferencedIDs(dependency.TabularNodeID); err != nil || !slices.Equal(got, []int{3, 1}) {
		t.Errorf("node dependency = %v, %v, want [3 1]", got, err)
	}
	if result.RemappedColumns != 1 {
		t.Errorf("RemappedColumns = %d, want 1", result.RemappedColumns)
	}

	if got := m.Loads.Keys(); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("load ids = %v, want [1 2]", got)
	}
	first, _ := m.Loads.Get(1)
	if first.Name != "a" {
		t.Errorf("load 1 = %q, want a", first.Name)
	}
}

func TestCompactSampleRemapsElementDependency(t *testing.T) {
	m := decodeSample(t)
	result, err := New(nil).Compact(m)
	if err != nil {
		t.Fatalf("Compact: %v", err)
	}
	if got, _ := result.Elements.Lookup(testutil.SampleQuadID); got != 2 {
		t.Errorf("quad remapped to %d, want 2", got)
	}
	if m.Mesh.HasNode(testutil.SampleOrphanNodeID) && m.Mesh.NodeCount() != testutil.SampleNodes-1 {
		t.Errorf("orphan node survived: %v", m.Mesh.NodeIDs())
	}
	graded, _ := m.Materials.Get(2)
	property := graded.Group(material.Thermal).Properties[0]
	if got, err := property.Dependency.ReferencedIDs(dependency.TabularElementID); err != nil || !slices.Equal(got, []int{1, 2}) {
		t.Errorf("element dependency = %v, %v, want [1 2]", got, err)
	}
}

func TestStaleTargetsAreReported(t *testing.T) {
	var logs bytes.Buffer
	compactor := New(slog.New(slog.NewJSONHandler(&logs, nil)))

	// The sample's load, restraint, receiver, node set, side set, and
	// contact constraint name explicit ids; its initial set is "all".
	m := decodeSample(t)
	result, err := compactor.Compact(m)
	if err != nil {
		t.Fatalf("Compact: %v", err)
	}
	if result.StaleTargets != 6 {
		t.Errorf("StaleTargets = %d, want 6", result.StaleTargets)
	}
	if !strings.Contains(logs.String(), `"level":"WARN"`) || !strings.Contains(logs.String(), `"records":6`) {
		t.Errorf("no warning about stale targets in logs:\n%s", logs.String())
	}
	restraint, _ := m.Restraints.Get(1)
	if !slices.Equal(restraint.ApplyTo.Numbers(), []float64{1, 2, 3}) {
		t.Errorf("restraint apply_to = %v, want it kept as written", restraint.ApplyTo)
	}

	logs.Reset()
	again, err := compactor.Compact(m)
	if err != nil {
		t.Fatalf("second Compact: %v", err)
	}
	if again.StaleTargets != 0 || strings.Contains(logs.String(), `"level":"WARN"`) {
		t.Errorf("second compaction reported %d stale targets, logs:\n%s", again.StaleTargets, logs.String())
	}

	sparseResult, err := New(nil).Compact(sparse(t))
	if err != nil {
		t.Fatalf("Compact(sparse): %v", err)
	}
	if sparseResult.StaleTargets != 0 {
		t.Errorf("sparse StaleTargets = %d, want 0 for formula targets", sparseResult.StaleTargets)
	}
}

func TestCompactIsIdempotent(t *testing.T) {
	for name, build := range map[string]func(*testing.T) *model.Model{
		"sample": decodeSample,
		"sparse": sparse,
	} {
		t.Run(name, func(t *testing.T) {
			m := build(t)
			compactor := New(nil)
			if _, err := compactor.Compact(m); err != nil {
				t.Fatalf("first Compact: %v", err)
			}
			before := encode(t, m)
			result, err := compactor.Compact(m)
			if err != nil {
				t.Fatalf("second Compact: %v", err)
			}
			if result.Changed() {
				t.Error("second compaction changed the model")
			}
			if !bytes.Equal(before, encode(t, m)) {
				t.Error("second compaction changed the encoding")
			}
		})
	}
}

func TestRejectedCompactionLeavesModelUntouched(t *testing.T) {
	tests := []struct {
		name   string
		break_ func(t *testing.T, m *model.Model)
		// Exactly one of dangling or invalid is set.
		dangling *fcerr.DanglingReferenceError
		invalid  *fcerr.ValidationError
	}{
		{
			name: "dependency on missing element",
			break_: func(t *testing.T, m *model.Model) {
				plain, _ := m.Materials.Get(9)
				plain.AddProperty(material.Common, tabulated(t, dependency.TabularElementID, 42, 99))
			},
			dangling: &fcerr.DanglingReferenceError{Source: "material", SourceID: 9, Target: "element", TargetID: 99},
		},
		{
			name: "element on missing node",
			break_: func(t *testing.T, m *model.Model) {
				element, _ := m.Mesh.Get(42)
				element.Nodes[0] = 600
			},
			dangling: &fcerr.DanglingReferenceError{Source: "element", SourceID: 42, Target: "node", TargetID: 600},
		},
		{
			name: "block on missing material",
			break_: func(t *testing.T, m *model.Model) {
				block, _ := m.Blocks.Get(7)
				block.MaterialID = 12
			},
			dangling: &fcerr.DanglingReferenceError{Source: "block", SourceID: 7, Target: "material", TargetID: 12},
		},
		{
			name: "block on missing property table",
			break_: func(t *testing.T, m *model.Model) {
				block, _ := m.Blocks.Get(7)
				block.PropertyID = 8
			},
			dangling: &fcerr.DanglingReferenceError{Source: "block", SourceID: 7, Target: "property table", TargetID: 8},
		},
		{
			// 42.6 truncates to the existing element 42 and rounds to
			// the missing 43; neither reading is an id.
			name: "fractional element id in dependency",
			break_: func(t *testing.T, m *model.Model) {
				plain, _ := m.Materials.Get(9)
				plain.AddProperty(material.Common, tabulated(t, dependency.TabularElementID, 42.6))
			},
			invalid: &fcerr.ValidationError{Entity: "dependency", Field: "TABULAR_ELEMENT_ID"},
		},
		{
			name: "fractional node id in dependency",
			break_: func(t *testing.T, m *model.Model) {
				graded, _ := m.Materials.Get(4)
				graded.AddProperty(material.Common, tabulated(t, dependency.TabularNodeID, 100, 299.5))
			},
			invalid: &fcerr.ValidationError{Entity: "dependency", Field: "TABULAR_NODE_ID"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := sparse(t)
			test.break_(t, m)
			before := encode(t, m)

			_, err := New(nil).Compact(m)
			switch {
			case test.dangling != nil:
				var dangling *fcerr.DanglingReferenceError
				if !errors.As(err, &dangling) {
					t.Fatalf("Compact error = %v, want DanglingReferenceError", err)
				}
				want := test.dangling
				if dangling.Source != want.Source || dangling.SourceID != want.SourceID ||
					dangling.Target != want.Target || dangling.TargetID != want.TargetID {
					t.Errorf("error = %+v, want %+v", *dangling, *want)
				}
			case test.invalid != nil:
				var invalid *fcerr.ValidationError
				if !errors.As(err, &invalid) {
					t.Fatalf("Compact error = %v, want ValidationError", err)
				}
				if invalid.Entity != test.invalid.Entity || invalid.Field != test.invalid.Field {
					t.Errorf("error = %+v, want entity %q field %q", *invalid, test.invalid.Entity, test.invalid.Field)
				}
			}
			if !bytes.Equal(before, encode(t, m)) {
				t.Error("rejected compaction changed the model")
			}
		})
	}
}
