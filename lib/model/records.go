// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/fccase/lib/binarray"
	"github.com/bureau-foundation/fccase/lib/fcerr"
	"github.com/bureau-foundation/fccase/lib/fcjson"
)

// decodeWithExtra unmarshals data into record and returns the members
// not named in known.
func decodeWithExtra(data []byte, record any, known ...string) (fcjson.Object, error) {
	if err := json.Unmarshal(data, record); err != nil {
		return fcjson.Object{}, err
	}
	object, err := fcjson.Parse(data)
	if err != nil {
		return fcjson.Object{}, err
	}
	return object.Without(known...), nil
}

// encodeWithExtra marshals record and appends the extra members it
// does not set itself.
func encodeWithExtra(record any, extra fcjson.Object) (json.RawMessage, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	if extra.Len() == 0 {
		return data, nil
	}
	object, err := fcjson.Parse(data)
	if err != nil {
		return nil, err
	}
	object.Merge(extra)
	return object.MarshalJSON()
}

func toInts(values []int32) []int {
	ints := make([]int, len(values))
	for i, value := range values {
		ints[i] = int(value)
	}
	return ints
}

func toInt32s(values []int) []int32 {
	narrowed := make([]int32, len(values))
	for i, value := range values {
		narrowed[i] = int32(value)
	}
	return narrowed
}

// Block groups elements under one material, property table, and
// coordinate system. Zero PropertyID or CSID means none.
type Block struct {
	ID         int
	MaterialID int
	PropertyID int
	CSID       int

	extra fcjson.Object
}

func (b *Block) Key() int { return b.ID }

func (b *Block) SetKey(id int) { b.ID = id }

type blockRecord struct {
	ID         int `json:"id"`
	MaterialID int `json:"material_id"`
	PropertyID int `json:"property_id"`
	CSID       int `json:"cs_id,omitempty"`
}

var blockKeys = []string{"id", "material_id", "property_id", "cs_id"}

func decodeBlock(data json.RawMessage) (*Block, error) {
	var record blockRecord
	extra, err := decodeWithExtra(data, &record, blockKeys...)
	if err != nil {
		return nil, err
	}
	return &Block{
		ID:         record.ID,
		MaterialID: record.MaterialID,
		PropertyID: record.PropertyID,
		CSID:       record.CSID,
		extra:      extra,
	}, nil
}

func encodeBlock(block *Block) (json.RawMessage, error) {
	return encodeWithExtra(blockRecord{
		ID:         block.ID,
		MaterialID: block.MaterialID,
		PropertyID: block.PropertyID,
		CSID:       block.CSID,
	}, block.extra)
}

// CoordinateSystem is a local frame: an origin and two direction
// vectors.
type CoordinateSystem struct {
	ID     int
	Name   string
	Type   int
	Origin []float64
	Dir1   []float64
	Dir2   []float64
}

func (c *CoordinateSystem) Key() int { return c.ID }

func (c *CoordinateSystem) SetKey(id int) { c.ID = id }

type coordinateSystemRecord struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Type   int    `json:"type"`
	Origin string `json:"origin"`
	Dir1   string `json:"dir1"`
	Dir2   string `json:"dir2"`
}

func decodeCoordinateSystem(data json.RawMessage) (*CoordinateSystem, error) {
	var record coordinateSystemRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	cs := &CoordinateSystem{ID: record.ID, Name: record.Name, Type: record.Type}
	for _, vector := range []struct {
		field string
		text  string
		into  *[]float64
	}{
		{"origin", record.Origin, &cs.Origin},
		{"dir1", record.Dir1, &cs.Dir1},
		{"dir2", record.Dir2, &cs.Dir2},
	} {
		values, err := binarray.DecodeFloat64(vector.text)
		if err != nil {
			return nil, fmt.Errorf("coordinate system %d: %w", record.ID, fcerr.WithField(err, vector.field))
		}
		*vector.into = values
	}
	return cs, nil
}

func encodeCoordinateSystem(cs *CoordinateSystem) (coordinateSystemRecord, error) {
	return coordinateSystemRecord{
		ID:     cs.ID,
		Name:   cs.Name,
		Type:   cs.Type,
		Origin: binarray.EncodeFloat64(cs.Origin),
		Dir1:   binarray.EncodeFloat64(cs.Dir1),
		Dir2:   binarray.EncodeFloat64(cs.Dir2),
	}, nil
}

// PropertyTable holds section properties (shell thickness, beam
// profile, ...) that blocks refer to. Properties is kept verbatim.
type PropertyTable struct {
	ID         int
	Type       int
	Properties json.RawMessage

	extra fcjson.Object
}

func (p *PropertyTable) Key() int { return p.ID }

func (p *PropertyTable) SetKey(id int) { p.ID = id }

type propertyTableRecord struct {
	ID         int             `json:"id"`
	Type       int             `json:"type"`
	Properties json.RawMessage `json:"properties"`
}

func decodePropertyTable(data json.RawMessage) (*PropertyTable, error) {
	var record propertyTableRecord
	extra, err := decodeWithExtra(data, &record, "id", "type", "properties")
	if err != nil {
		return nil, err
	}
	return &PropertyTable{ID: record.ID, Type: record.Type, Properties: record.Properties, extra: extra}, nil
}

func encodePropertyTable(table *PropertyTable) (json.RawMessage, error) {
	properties := table.Properties
	if properties == nil {
		properties = json.RawMessage("null")
	}
	return encodeWithExtra(propertyTableRecord{ID: table.ID, Type: table.Type, Properties: properties}, table.extra)
}

// Side is one side of a constraint: entity ids in rows of Dim ids. Dim
// 0 means the row shape is unknown.
type Side struct {
	IDs []int
	Dim int
}

// Size returns the number of rows.
func (s Side) Size() int {
	if s.Dim == 0 {
		return 0
	}
	return len(s.IDs) / s.Dim
}

func decodeSide(text string, size int, field string) (Side, error) {
	values, err := binarray.DecodeInt32(text)
	if err != nil {
		return Side{}, fcerr.WithField(err, field)
	}
	side := Side{IDs: toInts(values)}
	if size > 0 {
		side.Dim = len(values) / size
	}
	return side, nil
}

// Constraint ties a master side to a slave side: contact, coupling,
// or periodicity, depending on the collection it is in. Members beyond
// the ones modelled here are kept and written back.
type Constraint struct {
	ID     int
	Name   string
	Type   int
	Master Side
	Slave  Side

	extra fcjson.Object
}

type constraintRecord struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Type       int    `json:"type"`
	Master     string `json:"master"`
	MasterSize int    `json:"master_size"`
	Slave      string `json:"slave"`
	SlaveSize  int    `json:"slave_size"`
}

var constraintKeys = []string{"id", "name", "type", "master", "master_size", "slave", "slave_size"}

func decodeConstraint(data json.RawMessage) (*Constraint, error) {
	var record constraintRecord
	extra, err := decodeWithExtra(data, &record, constraintKeys...)
	if err != nil {
		return nil, err
	}
	master, err := decodeSide(record.Master, record.MasterSize, "master")
	if err != nil {
		return nil, fmt.Errorf("constraint %d: %w", record.ID, err)
	}
	slave, err := decodeSide(record.Slave, record.SlaveSize, "slave")
	if err != nil {
		return nil, fmt.Errorf("constraint %d: %w", record.ID, err)
	}
	return &Constraint{ID: record.ID, Name: record.Name, Type: record.Type, Master: master, Slave: slave, extra: extra}, nil
}

func encodeConstraint(constraint *Constraint) (json.RawMessage, error) {
	return encodeWithExtra(constraintRecord{
		ID:         constraint.ID,
		Name:       constraint.Name,
		Type:       constraint.Type,
		Master:     binarray.EncodeInt32(toInt32s(constraint.Master.IDs)),
		MasterSize: constraint.Master.Size(),
		Slave:      binarray.EncodeInt32(toInt32s(constraint.Slave.IDs)),
		SlaveSize:  constraint.Slave.Size(),
	}, constraint.extra)
}

// Set is a named node set, or a side set of (element id, facet index)
// pairs flattened into ApplyTo.
type Set struct {
	ID      int
	Name    string
	ApplyTo []int
}

func (s *Set) Key() int { return s.ID }

func (s *Set) SetKey(id int) { s.ID = id }

type setRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ApplyTo     string `json:"apply_to"`
	ApplyToSize int    `json:"apply_to_size"`
}

func decodeSet(data json.RawMessage) (*Set, error) {
	var record setRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	values, err := binarray.DecodeInt32(record.ApplyTo)
	if err != nil {
		return nil, fmt.Errorf("set %d: %w", record.ID, fcerr.WithField(err, "apply_to"))
	}
	return &Set{ID: record.ID, Name: record.Name, ApplyTo: toInts(values)}, nil
}

// encodeSet writes a set; perRow is 1 for node sets and 2 for side
// sets.
func encodeSet(set *Set, perRow int) setRecord {
	return setRecord{
		ID:          set.ID,
		Name:        set.Name,
		ApplyTo:     binarray.EncodeInt32(toInt32s(set.ApplyTo)),
		ApplyToSize: len(set.ApplyTo) / perRow,
	}
}

type setsRecord struct {
	NodeSets []json.RawMessage `json:"nodesets,omitempty"`
	SideSets []json.RawMessage `json:"sidesets,omitempty"`
}

// Receiver names result quantities to record on a set of entities.
// Dofs is kept verbatim.
type Receiver struct {
	ID      int
	Name    string
	Type    int
	Dofs    json.RawMessage
	ApplyTo binarray.Value
}

type receiverRecord struct {
	ApplyTo     string          `json:"apply_to"`
	ApplyToSize int             `json:"apply_to_size"`
	Dofs        json.RawMessage `json:"dofs"`
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        int             `json:"type"`
}

func decodeReceiver(data json.RawMessage) (*Receiver, error) {
	var record receiverRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	applyTo, err := binarray.DecodeFlexible(record.ApplyTo, binarray.Int32)
	if err != nil {
		return nil, fmt.Errorf("receiver %d: %w", record.ID, fcerr.WithField(err, "apply_to"))
	}
	if applyTo.IsArray() && applyTo.Len() != record.ApplyToSize {
		return nil, &fcerr.ValidationError{
			Entity:  "receiver",
			ID:      record.ID,
			Field:   "apply_to",
			Message: fmt.Sprintf("%d ids but apply_to_size is %d", applyTo.Len(), record.ApplyToSize),
		}
	}
	return &Receiver{ID: record.ID, Name: record.Name, Type: record.Type, Dofs: record.Dofs, ApplyTo: applyTo}, nil
}

func encodeReceiver(receiver *Receiver) receiverRecord {
	dofs := receiver.Dofs
	if dofs == nil {
		dofs = json.RawMessage("[]")
	}
	return receiverRecord{
		ApplyTo:     receiver.ApplyTo.EncodeFlexible(),
		ApplyToSize: receiver.ApplyTo.Len(),
		Dofs:        dofs,
		ID:          receiver.ID,
		Name:        receiver.Name,
		Type:        receiver.Type,
	}
}
