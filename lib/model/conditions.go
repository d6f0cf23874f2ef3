// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/fccase/lib/binarray"
	"github.com/bureau-foundation/fccase/lib/dependency"
	"github.com/bureau-foundation/fccase/lib/fcerr"
)

// Axis is one component of a load, restraint, or initial set: its
// samples and what they vary against. Flag is the restraint kind of
// the component and is only written for restraints and initial sets.
type Axis struct {
	Data       binarray.Value
	Dependency dependency.Dependency
	Flag       int
}

// Target is the set of entities a condition applies to: an Int32
// array shaped in rows (one node id, or an element id and facet
// index), a formula such as "all", or empty.
type Target = binarray.Value

// Load is a force, flux, or source condition.
type Load struct {
	ID   int
	Name string
	// Type is the load type code; see LoadTypeName.
	Type    int
	CS      int
	ApplyTo Target
	Axes    []Axis
}

func (l *Load) Key() int { return l.ID }

func (l *Load) SetKey(id int) { l.ID = id }

// Restraint is a prescribed displacement, velocity, temperature, or
// similar condition.
type Restraint struct {
	ID      int
	Name    string
	CS      int
	ApplyTo Target
	Axes    []Axis
}

func (r *Restraint) Key() int { return r.ID }

func (r *Restraint) SetKey(id int) { r.ID = id }

// InitialSet is an initial condition. It has no name.
type InitialSet struct {
	ID      int
	Type    int
	CS      int
	ApplyTo Target
	Axes    []Axis
}

// axesRecord holds the members loads, restraints, and initial sets
// share on the wire.
type axesRecord struct {
	ApplyTo        string                    `json:"apply_to"`
	ApplyToSize    int                       `json:"apply_to_size"`
	Data           []string                  `json:"data"`
	DependencyType []dependency.IntOrList    `json:"dependency_type"`
	DepVarNum      []dependency.StringOrList `json:"dep_var_num"`
	DepVarSize     []int                     `json:"dep_var_size"`
}

type loadRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
	CS   int    `json:"cs,omitempty"`
	axesRecord
}

type restraintRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	CS   int    `json:"cs,omitempty"`
	axesRecord
	Flag []int `json:"flag"`
}

type initialSetRecord struct {
	ID   int `json:"id"`
	Type int `json:"type"`
	CS   int `json:"cs,omitempty"`
	axesRecord
	Flag []int `json:"flag"`
}

// decodeTarget decodes apply_to and shapes it into apply_to_size rows.
// A missing or non-positive apply_to_size keeps one id per row.
func decodeTarget(entity string, id int, text string, size int) (Target, error) {
	target, err := binarray.DecodeFlexible(text, binarray.Int32)
	if err != nil {
		return Target{}, fmt.Errorf("%s %d: %w", entity, id, fcerr.WithField(err, "apply_to"))
	}
	if !target.IsArray() || size < 1 {
		return target, nil
	}
	if !target.Resize(size) {
		return Target{}, &fcerr.ValidationError{
			Entity:  entity,
			ID:      id,
			Field:   "apply_to_size",
			Message: fmt.Sprintf("%d ids do not split into %d rows", len(target.Numbers()), size),
		}
	}
	return target, nil
}

// decodeAxes zips the per-axis lists. flags may be nil for loads.
func (r axesRecord) decodeAxes(entity string, id int, flags []int, withFlags bool) ([]Axis, error) {
	count := len(r.DependencyType)
	if len(r.Data) != count || len(r.DepVarNum) != count || (withFlags && len(flags) != count) {
		return nil, &fcerr.ValidationError{
			Entity: entity,
			ID:     id,
			Message: fmt.Sprintf("per-axis lists disagree: %d data, %d dependency_type, %d dep_var_num, %d flag",
				len(r.Data), count, len(r.DepVarNum), len(flags)),
		}
	}
	axes := make([]Axis, count)
	for i := range axes {
		data, err := binarray.DecodeFlexible(r.Data[i], binarray.Float64)
		if err != nil {
			return nil, fmt.Errorf("%s %d axis %d: %w", entity, id, i, fcerr.WithField(err, "data"))
		}
		dep, err := dependency.Decode(r.DependencyType[i], r.DepVarNum[i])
		if err != nil {
			return nil, fmt.Errorf("%s %d axis %d: %w", entity, id, i, err)
		}
		axes[i] = Axis{Data: data, Dependency: dep}
		if withFlags {
			axes[i].Flag = flags[i]
		}
	}
	return axes, nil
}

// encodeAxes fills the shared members. dep_var_size is the sample
// count when the axis carries dependency data and 0 otherwise.
func encodeAxes(target Target, axes []Axis) (axesRecord, []int) {
	record := axesRecord{
		ApplyTo:        target.EncodeFlexible(),
		Data:           make([]string, 0, len(axes)),
		DependencyType: make([]dependency.IntOrList, 0, len(axes)),
		DepVarNum:      make([]dependency.StringOrList, 0, len(axes)),
		DepVarSize:     make([]int, 0, len(axes)),
	}
	if target.IsArray() {
		record.ApplyToSize = target.Len()
	}
	flags := make([]int, 0, len(axes))
	for _, axis := range axes {
		kinds, data := axis.Dependency.Encode()
		size := 0
		if hasDependencyData(data) {
			size = axis.Data.Len()
		}
		record.Data = append(record.Data, axis.Data.EncodeFlexible())
		record.DependencyType = append(record.DependencyType, kinds)
		record.DepVarNum = append(record.DepVarNum, data)
		record.DepVarSize = append(record.DepVarSize, size)
		flags = append(flags, axis.Flag)
	}
	return record, flags
}

func hasDependencyData(data dependency.StringOrList) bool {
	if data.IsList {
		return len(data.List) > 0
	}
	return data.Scalar != ""
}

func decodeLoad(data json.RawMessage) (*Load, error) {
	var record loadRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	target, err := decodeTarget("load", record.ID, record.ApplyTo, record.ApplyToSize)
	if err != nil {
		return nil, err
	}
	axes, err := record.decodeAxes("load", record.ID, nil, false)
	if err != nil {
		return nil, err
	}
	return &Load{ID: record.ID, Name: record.Name, Type: record.Type, CS: record.CS, ApplyTo: target, Axes: axes}, nil
}

func encodeLoad(load *Load) (loadRecord, error) {
	axes, _ := encodeAxes(load.ApplyTo, load.Axes)
	return loadRecord{ID: load.ID, Name: load.Name, Type: load.Type, CS: load.CS, axesRecord: axes}, nil
}

func decodeRestraint(data json.RawMessage) (*Restraint, error) {
	var record restraintRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	target, err := decodeTarget("restraint", record.ID, record.ApplyTo, record.ApplyToSize)
	if err != nil {
		return nil, err
	}
	axes, err := record.decodeAxes("restraint", record.ID, record.Flag, true)
	if err != nil {
		return nil, err
	}
	return &Restraint{ID: record.ID, Name: record.Name, CS: record.CS, ApplyTo: target, Axes: axes}, nil
}

func encodeRestraint(restraint *Restraint) (restraintRecord, error) {
	axes, flags := encodeAxes(restraint.ApplyTo, restraint.Axes)
	return restraintRecord{ID: restraint.ID, Name: restraint.Name, CS: restraint.CS, axesRecord: axes, Flag: flags}, nil
}

func decodeInitialSet(data json.RawMessage) (*InitialSet, error) {
	var record initialSetRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	target, err := decodeTarget("initial set", record.ID, record.ApplyTo, record.ApplyToSize)
	if err != nil {
		return nil, err
	}
	axes, err := record.decodeAxes("initial set", record.ID, record.Flag, true)
	if err != nil {
		return nil, err
	}
	return &InitialSet{ID: record.ID, Type: record.Type, CS: record.CS, ApplyTo: target, Axes: axes}, nil
}

func encodeInitialSet(initialSet *InitialSet) initialSetRecord {
	axes, flags := encodeAxes(initialSet.ApplyTo, initialSet.Axes)
	return initialSetRecord{ID: initialSet.ID, Type: initialSet.Type, CS: initialSet.CS, axesRecord: axes, Flag: flags}
}
