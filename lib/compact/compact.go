// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compact

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/bureau-foundation/fccase/lib/dependency"
	"github.com/bureau-foundation/fccase/lib/fcerr"
	"github.com/bureau-foundation/fccase/lib/iddict"
	"github.com/bureau-foundation/fccase/lib/model"
)

// Result holds every remap one compaction applied, and what it pruned.
type Result struct {
	Nodes          *iddict.Remap
	Blocks         *iddict.Remap
	PropertyTables *iddict.Remap
	Materials      *iddict.Remap
	Loads          *iddict.Remap
	Restraints     *iddict.Remap
	Elements       *iddict.Remap

	DroppedNodes          int
	DroppedBlocks         int
	DroppedPropertyTables int
	// RemappedColumns counts the dependency table columns rewritten
	// through the element or node remap.
	RemappedColumns int
	// StaleTargets counts the loads, restraints, initial sets,
	// receivers, sets, and constraints holding explicit ids that were
	// kept as written while node or element ids moved. Zero when the
	// node and element numbering did not change.
	StaleTargets int
}

// Changed reports whether the compaction renumbered or dropped
// anything.
func (r *Result) Changed() bool {
	if r.DroppedNodes+r.DroppedBlocks+r.DroppedPropertyTables > 0 {
		return true
	}
	for _, remap := range []*iddict.Remap{r.Nodes, r.Blocks, r.PropertyTables, r.Materials, r.Loads, r.Restraints, r.Elements} {
		if !remap.IsIdentity() {
			return true
		}
	}
	return false
}

// Compactor renumbers a model's linked collections densely and prunes
// the nodes, blocks, and property tables no element reaches.
type Compactor struct {
	logger *slog.Logger
}

// New returns a Compactor. A nil logger discards.
func New(logger *slog.Logger) *Compactor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Compactor{logger: logger}
}

// plan is a fully validated compaction, ready to apply.
type plan struct {
	result       Result
	dependencies []dependencyRef
}

type dependencyRef struct {
	materialID int
	dependency *dependency.Dependency
}

// Compact runs the pass over m:
//
//  1. nodes referenced by an element, renumbered 1..N in ascending id
//     order; the rest dropped, element node lists rewritten;
//  2. blocks referenced by an element, likewise, element blocks
//     rewritten;
//  3. property tables referenced by a surviving block, likewise, block
//     property ids rewritten (0 stays 0);
//  4. materials renumbered in insertion order, block material ids
//     rewritten;
//  5. loads and restraints renumbered in insertion order; their
//     apply_to, like set members and constraint sides, is kept as
//     written and counted in Result.StaleTargets;
//  6. elements renumbered in iteration order;
//  7. element-id and node-id columns of every material dependency
//     rewritten through the maps of steps 6 and 1.
//
// Every reference is resolved before anything changes. A reference to
// a missing entity returns a *fcerr.DanglingReferenceError, and a
// dependency id sample that is not a whole number a
// *fcerr.ValidationError; either leaves m untouched.
func (c *Compactor) Compact(m *model.Model) (*Result, error) {
	planned, err := c.plan(m)
	if err != nil {
		c.logger.Warn("compaction rejected", "error", err)
		return nil, err
	}
	c.apply(m, planned)

	result := &planned.result
	if result.StaleTargets > 0 {
		c.logger.Warn("condition and set targets keep their old node and element ids",
			"records", result.StaleTargets)
	}
	c.logger.Info("compacted model",
		"nodes", result.Nodes.Len(),
		"dropped_nodes", result.DroppedNodes,
		"elements", result.Elements.Len(),
		"blocks", result.Blocks.Len(),
		"dropped_blocks", result.DroppedBlocks,
		"property_tables", result.PropertyTables.Len(),
		"dropped_property_tables", result.DroppedPropertyTables,
		"materials", result.Materials.Len(),
		"remapped_columns", result.RemappedColumns,
	)
	return result, nil
}

func (c *Compactor) plan(m *model.Model) (*plan, error) {
	planned := &plan{}
	result := &planned.result

	// Steps 1 and 2 read the element references together.
	nodeSet := make(map[int]struct{})
	blockSet := make(map[int]struct{})
	for element := range m.Mesh.All() {
		for _, node := range element.Nodes {
			if !m.Mesh.HasNode(node) {
				return nil, &fcerr.DanglingReferenceError{
					Source: "element", SourceID: element.ID, Field: "nodes", Target: "node", TargetID: node,
				}
			}
			nodeSet[node] = struct{}{}
		}
		if !m.Blocks.Contains(element.Block) {
			return nil, &fcerr.DanglingReferenceError{
				Source: "element", SourceID: element.ID, Field: "block", Target: "block", TargetID: element.Block,
			}
		}
		blockSet[element.Block] = struct{}{}
	}
	result.Nodes = ascendingRemap(nodeSet)
	result.DroppedNodes = m.Mesh.NodeCount() - result.Nodes.Len()
	result.Blocks = ascendingRemap(blockSet)
	result.DroppedBlocks = m.Blocks.Len() - result.Blocks.Len()

	// Steps 3 and 4 read the surviving blocks.
	tableSet := make(map[int]struct{})
	for _, blockID := range sortedKeys(blockSet) {
		block, _ := m.Blocks.Get(blockID)
		if block.PropertyID != 0 {
			if !m.PropertyTables.Contains(block.PropertyID) {
				return nil, &fcerr.DanglingReferenceError{
					Source: "block", SourceID: block.ID, Field: "property_id", Target: "property table", TargetID: block.PropertyID,
				}
			}
			tableSet[block.PropertyID] = struct{}{}
		}
		if !m.Materials.Contains(block.MaterialID) {
			return nil, &fcerr.DanglingReferenceError{
				Source: "block", SourceID: block.ID, Field: "material_id", Target: "material", TargetID: block.MaterialID,
			}
		}
	}
	result.PropertyTables = ascendingRemap(tableSet)
	result.DroppedPropertyTables = m.PropertyTables.Len() - result.PropertyTables.Len()
	result.Materials = iddict.DenseRemap(m.Materials.Keys())

	// Step 5.
	result.Loads = iddict.DenseRemap(m.Loads.Keys())
	result.Restraints = iddict.DenseRemap(m.Restraints.Keys())

	// Step 6.
	elementIDs := make([]int, 0, m.Mesh.Len())
	for element := range m.Mesh.All() {
		elementIDs = append(elementIDs, element.ID)
	}
	result.Elements = iddict.DenseRemap(elementIDs)
	if result.DroppedNodes > 0 || !result.Nodes.IsIdentity() || !result.Elements.IsIdentity() {
		result.StaleTargets = explicitTargets(m)
	}

	// Step 7 is checked here and applied last.
	for item := range m.Materials.All() {
		for dep := range item.Dependencies() {
			if !dep.IsTable() {
				continue
			}
			for _, axis := range []struct {
				kind  dependency.Kind
				remap *iddict.Remap
			}{
				{dependency.TabularElementID, result.Elements},
				{dependency.TabularNodeID, result.Nodes},
			} {
				ids, err := dep.ReferencedIDs(axis.kind)
				if err != nil {
					return nil, fmt.Errorf("material %d: %w", item.ID, err)
				}
				for _, id := range ids {
					if _, ok := axis.remap.Lookup(id); !ok {
						return nil, &fcerr.DanglingReferenceError{
							Source:   "material",
							SourceID: item.ID,
							Field:    axis.kind.String(),
							Target:   targetName(axis.kind),
							TargetID: id,
						}
					}
				}
			}
			planned.dependencies = append(planned.dependencies, dependencyRef{materialID: item.ID, dependency: dep})
		}
	}
	return planned, nil
}

// apply carries out a validated plan. Every lookup it makes was
// checked by plan, so the remap calls cannot fail; an error here means
// the model changed between planning and applying.
func (c *Compactor) apply(m *model.Model, planned *plan) {
	result := &planned.result
	must := func(err error) {
		if err != nil {
			panic("compact: validated plan failed to apply: " + err.Error())
		}
	}

	// 1, 2.
	for element := range m.Mesh.All() {
		for i, node := range element.Nodes {
			element.Nodes[i], _ = result.Nodes.Lookup(node)
		}
		element.Block, _ = result.Blocks.Lookup(element.Block)
	}
	must(m.Mesh.RenumberNodes(result.Nodes))
	must(m.Blocks.Reindex(result.Blocks))

	// 3.
	for block := range m.Blocks.All() {
		if block.PropertyID != 0 {
			block.PropertyID, _ = result.PropertyTables.Lookup(block.PropertyID)
		}
	}
	must(m.PropertyTables.Reindex(result.PropertyTables))

	// 4.
	must(m.Materials.Reindex(result.Materials))
	for block := range m.Blocks.All() {
		block.MaterialID, _ = result.Materials.Lookup(block.MaterialID)
	}

	// 5, 6.
	must(m.Loads.Reindex(result.Loads))
	must(m.Restraints.Reindex(result.Restraints))
	must(m.Mesh.Reindex(result.Elements))

	// 7.
	for _, ref := range planned.dependencies {
		for _, axis := range []struct {
			kind  dependency.Kind
			remap *iddict.Remap
		}{
			{dependency.TabularElementID, result.Elements},
			{dependency.TabularNodeID, result.Nodes},
		} {
			columns := countColumns(*ref.dependency, axis.kind)
			if columns == 0 {
				continue
			}
			must(ref.dependency.RemapIDs(axis.kind, axis.remap.Lookup))
			result.RemappedColumns += columns
			c.logger.Debug("remapped dependency", "material", ref.materialID, "kind", axis.kind.String())
		}
	}
}

// explicitTargets counts the records whose apply_to, set members, or
// constraint sides are id arrays.
func explicitTargets(m *model.Model) int {
	count := 0
	for load := range m.Loads.All() {
		if load.ApplyTo.Len() > 0 {
			count++
		}
	}
	for restraint := range m.Restraints.All() {
		if restraint.ApplyTo.Len() > 0 {
			count++
		}
	}
	for _, initialSet := range m.InitialSets {
		if initialSet.ApplyTo.Len() > 0 {
			count++
		}
	}
	for _, receiver := range m.Receivers {
		if receiver.ApplyTo.Len() > 0 {
			count++
		}
	}
	for _, sets := range []*iddict.Dictionary[*model.Set]{m.NodeSets, m.SideSets} {
		for set := range sets.All() {
			if len(set.ApplyTo) > 0 {
				count++
			}
		}
	}
	for _, constraints := range [][]*model.Constraint{m.ContactConstraints, m.CouplingConstraints, m.PeriodicConstraints} {
		for _, constraint := range constraints {
			if len(constraint.Master.IDs)+len(constraint.Slave.IDs) > 0 {
				count++
			}
		}
	}
	return count
}

func countColumns(dep dependency.Dependency, kind dependency.Kind) int {
	count := 0
	for _, column := range dep.Columns() {
		if column.Kind == kind && column.Value.IsArray() {
			count++
		}
	}
	return count
}

func targetName(kind dependency.Kind) string {
	if kind == dependency.TabularNodeID {
		return "node"
	}
	return "element"
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// ascendingRemap numbers the ids of set 1..N in ascending order.
func ascendingRemap(set map[int]struct{}) *iddict.Remap {
	return iddict.DenseRemap(sortedKeys(set))
}
