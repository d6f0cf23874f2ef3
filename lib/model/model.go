// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/fccase/lib/elemtype"
	"github.com/bureau-foundation/fccase/lib/fcjson"
	"github.com/bureau-foundation/fccase/lib/iddict"
	"github.com/bureau-foundation/fccase/lib/material"
	"github.com/bureau-foundation/fccase/lib/mesh"
)

// DefaultHeader is the header of a model built from scratch.
var DefaultHeader = json.RawMessage(`{"binary":true,"description":"Fidesys Case Format",` +
	`"types":{"char":1,"short_int":2,"int":4,"double":8},"version":3}`)

// Model is a decoded case file.
type Model struct {
	// Header and Settings are kept verbatim. A nil value is omitted on
	// output.
	Header   json.RawMessage
	Settings json.RawMessage

	CoordinateSystems *iddict.Dictionary[*CoordinateSystem]
	Mesh              *mesh.Mesh
	Blocks            *iddict.Dictionary[*Block]
	PropertyTables    *iddict.Dictionary[*PropertyTable]
	Materials         *iddict.Dictionary[*material.Material]
	Loads             *iddict.Dictionary[*Load]
	Restraints        *iddict.Dictionary[*Restraint]

	InitialSets         []*InitialSet
	ContactConstraints  []*Constraint
	CouplingConstraints []*Constraint
	PeriodicConstraints []*Constraint
	Receivers           []*Receiver

	NodeSets *iddict.Dictionary[*Set]
	SideSets *iddict.Dictionary[*Set]

	catalog     *elemtype.Catalog
	meshPresent bool
	// extra holds top-level members this package does not model.
	extra fcjson.Object
}

// Top-level member names.
const (
	keyHeader              = "header"
	keySettings            = "settings"
	keyBlocks              = "blocks"
	keyCoordinateSystems   = "coordinate_systems"
	keyContactConstraints  = "contact_constraints"
	keyCouplingConstraints = "coupling_constraints"
	keyPeriodicConstraints = "periodic_constraints"
	keyMesh                = "mesh"
	keyMaterials           = "materials"
	keyRestraints          = "restraints"
	keyInitialSets         = "initial_sets"
	keyLoads               = "loads"
	keyReceivers           = "receivers"
	keyPropertyTables      = "property_tables"
	keySets                = "sets"
)

var modelledKeys = []string{
	keyHeader, keySettings, keyBlocks, keyCoordinateSystems,
	keyContactConstraints, keyCouplingConstraints, keyPeriodicConstraints,
	keyMesh, keyMaterials, keyRestraints, keyInitialSets, keyLoads,
	keyReceivers, keyPropertyTables, keySets,
}

// New returns an empty model with the default header.
func New(catalog *elemtype.Catalog) *Model {
	return &Model{
		Header:            DefaultHeader,
		CoordinateSystems: iddict.New[*CoordinateSystem]("coordinate system"),
		Mesh:              mesh.New(catalog),
		Blocks:            iddict.New[*Block]("block"),
		PropertyTables:    iddict.New[*PropertyTable]("property table"),
		Materials:         iddict.New[*material.Material]("material"),
		Loads:             iddict.New[*Load]("load"),
		Restraints:        iddict.New[*Restraint]("restraint"),
		NodeSets:          iddict.New[*Set]("node set"),
		SideSets:          iddict.New[*Set]("side set"),
		catalog:           catalog,
	}
}

// Catalog returns the element type catalog the model resolves
// against.
func (m *Model) Catalog() *elemtype.Catalog { return m.catalog }

// Decode parses a case document.
func Decode(data []byte, catalog *elemtype.Catalog) (*Model, error) {
	document, err := fcjson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	m := New(catalog)
	m.Header = nil
	if raw, ok := document.Get(keyHeader); ok {
		m.Header = raw
	}
	if raw, ok := document.Get(keySettings); ok {
		m.Settings = raw
	}
	m.extra = document.Without(modelledKeys...)

	if err := decodeDictionary(document, keyBlocks, m.Blocks, decodeBlock); err != nil {
		return nil, err
	}
	if err := decodeDictionary(document, keyCoordinateSystems, m.CoordinateSystems, decodeCoordinateSystem); err != nil {
		return nil, err
	}
	for _, constraints := range []struct {
		key  string
		into *[]*Constraint
	}{
		{keyContactConstraints, &m.ContactConstraints},
		{keyCouplingConstraints, &m.CouplingConstraints},
		{keyPeriodicConstraints, &m.PeriodicConstraints},
	} {
		if err := decodeList(document, constraints.key, constraints.into, decodeConstraint); err != nil {
			return nil, err
		}
	}

	var raw mesh.Raw
	present, err := document.Decode(keyMesh, &raw)
	if err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	if present {
		decoded, err := mesh.Decode(raw, catalog)
		if err != nil {
			return nil, err
		}
		m.Mesh = decoded
		m.meshPresent = true
	}

	if err := decodeDictionary(document, keyMaterials, m.Materials, func(data json.RawMessage) (*material.Material, error) {
		return material.Decode(data)
	}); err != nil {
		return nil, err
	}
	if err := decodeDictionary(document, keyRestraints, m.Restraints, decodeRestraint); err != nil {
		return nil, err
	}
	if err := decodeList(document, keyInitialSets, &m.InitialSets, decodeInitialSet); err != nil {
		return nil, err
	}
	if err := decodeDictionary(document, keyLoads, m.Loads, decodeLoad); err != nil {
		return nil, err
	}
	if err := decodeList(document, keyReceivers, &m.Receivers, decodeReceiver); err != nil {
		return nil, err
	}
	if err := decodeDictionary(document, keyPropertyTables, m.PropertyTables, decodePropertyTable); err != nil {
		return nil, err
	}

	var sets setsRecord
	if _, err := document.Decode(keySets, &sets); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	if err := iddict.DecodeRecords(m.NodeSets, sets.NodeSets, decodeSet); err != nil {
		return nil, fmt.Errorf("decoding nodesets: %w", err)
	}
	if err := iddict.DecodeRecords(m.SideSets, sets.SideSets, decodeSet); err != nil {
		return nil, fmt.Errorf("decoding sidesets: %w", err)
	}
	return m, nil
}

func decodeDictionary[T iddict.Identified](document fcjson.Object, key string, into *iddict.Dictionary[T], decode func(json.RawMessage) (T, error)) error {
	var records []json.RawMessage
	if _, err := document.Decode(key, &records); err != nil {
		return fmt.Errorf("decoding model: %w", err)
	}
	if err := iddict.DecodeRecords(into, records, decode); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func decodeList[T any](document fcjson.Object, key string, into *[]T, decode func(json.RawMessage) (T, error)) error {
	var records []json.RawMessage
	if _, err := document.Decode(key, &records); err != nil {
		return fmt.Errorf("decoding model: %w", err)
	}
	for i, record := range records {
		item, err := decode(record)
		if err != nil {
			return fmt.Errorf("decoding %s record %d: %w", key, i, err)
		}
		*into = append(*into, item)
	}
	return nil
}

// Encode writes the model as a case document. Empty collections are
// left out, as are a nil header or settings and a mesh that is empty
// and was not in the input. Members the model does not recognise
// follow the modelled ones, in input order. indent selects four-space
// indentation.
func (m *Model) Encode(indent bool) ([]byte, error) {
	var document fcjson.Object
	set := func(key string, value any) error {
		if err := document.Set(key, value); err != nil {
			return fmt.Errorf("encoding model: %w", err)
		}
		return nil
	}

	if m.Blocks.Len() > 0 {
		blocks, err := iddict.EncodeRecords(m.Blocks, encodeBlock)
		if err != nil {
			return nil, err
		}
		if err := set(keyBlocks, blocks); err != nil {
			return nil, err
		}
	}
	if err := m.encodeConstraints(&document, keyContactConstraints, m.ContactConstraints); err != nil {
		return nil, err
	}
	if m.CoordinateSystems.Len() > 0 {
		systems, err := iddict.EncodeRecords(m.CoordinateSystems, encodeCoordinateSystem)
		if err != nil {
			return nil, err
		}
		if err := set(keyCoordinateSystems, systems); err != nil {
			return nil, err
		}
	}
	if err := m.encodeConstraints(&document, keyCouplingConstraints, m.CouplingConstraints); err != nil {
		return nil, err
	}
	if err := m.encodeConstraints(&document, keyPeriodicConstraints, m.PeriodicConstraints); err != nil {
		return nil, err
	}
	if m.Header != nil {
		document.SetRaw(keyHeader, m.Header)
	}
	if m.Loads.Len() > 0 {
		loads, err := iddict.EncodeRecords(m.Loads, encodeLoad)
		if err != nil {
			return nil, err
		}
		if err := set(keyLoads, loads); err != nil {
			return nil, err
		}
	}
	if m.Materials.Len() > 0 {
		materials, err := iddict.EncodeRecords(m.Materials, func(item *material.Material) (json.RawMessage, error) {
			return item.Encode()
		})
		if err != nil {
			return nil, err
		}
		if err := set(keyMaterials, materials); err != nil {
			return nil, err
		}
	}
	if m.meshPresent || m.Mesh.NodeCount() > 0 || m.Mesh.Len() > 0 {
		if err := set(keyMesh, m.Mesh.Encode()); err != nil {
			return nil, err
		}
	}
	if len(m.Receivers) > 0 {
		receivers := make([]receiverRecord, len(m.Receivers))
		for i, receiver := range m.Receivers {
			receivers[i] = encodeReceiver(receiver)
		}
		if err := set(keyReceivers, receivers); err != nil {
			return nil, err
		}
	}
	if m.Restraints.Len() > 0 {
		restraints, err := iddict.EncodeRecords(m.Restraints, encodeRestraint)
		if err != nil {
			return nil, err
		}
		if err := set(keyRestraints, restraints); err != nil {
			return nil, err
		}
	}
	if len(m.InitialSets) > 0 {
		initialSets := make([]initialSetRecord, len(m.InitialSets))
		for i, initialSet := range m.InitialSets {
			initialSets[i] = encodeInitialSet(initialSet)
		}
		if err := set(keyInitialSets, initialSets); err != nil {
			return nil, err
		}
	}
	if m.Settings != nil {
		document.SetRaw(keySettings, m.Settings)
	}
	if m.PropertyTables.Len() > 0 {
		tables, err := iddict.EncodeRecords(m.PropertyTables, encodePropertyTable)
		if err != nil {
			return nil, err
		}
		if err := set(keyPropertyTables, tables); err != nil {
			return nil, err
		}
	}
	if m.NodeSets.Len() > 0 || m.SideSets.Len() > 0 {
		var sets struct {
			NodeSets []setRecord `json:"nodesets,omitempty"`
			SideSets []setRecord `json:"sidesets,omitempty"`
		}
		for nodeSet := range m.NodeSets.All() {
			sets.NodeSets = append(sets.NodeSets, encodeSet(nodeSet, 1))
		}
		for sideSet := range m.SideSets.All() {
			sets.SideSets = append(sets.SideSets, encodeSet(sideSet, 2))
		}
		if err := set(keySets, sets); err != nil {
			return nil, err
		}
	}
	document.Merge(m.extra)

	if indent {
		return json.MarshalIndent(document, "", "    ")
	}
	return json.Marshal(document)
}

func (m *Model) encodeConstraints(document *fcjson.Object, key string, constraints []*Constraint) error {
	if len(constraints) == 0 {
		return nil
	}
	records := make([]json.RawMessage, len(constraints))
	for i, constraint := range constraints {
		record, err := encodeConstraint(constraint)
		if err != nil {
			return fmt.Errorf("encoding %s record %d: %w", key, i, err)
		}
		records[i] = record
	}
	return document.Set(key, records)
}

// Stats counts the entities of a model.
type Stats struct {
	Nodes             int            `json:"nodes"`
	Elements          int            `json:"elements"`
	ElementsByType    map[string]int `json:"elements_by_type"`
	Blocks            int            `json:"blocks"`
	Materials         int            `json:"materials"`
	PropertyTables    int            `json:"property_tables"`
	CoordinateSystems int            `json:"coordinate_systems"`
	Loads             int            `json:"loads"`
	Restraints        int            `json:"restraints"`
	InitialSets       int            `json:"initial_sets"`
	Constraints       int            `json:"constraints"`
	Receivers         int            `json:"receivers"`
	NodeSets          int            `json:"node_sets"`
	SideSets          int            `json:"side_sets"`
}

// Stats returns the entity counts of m.
func (m *Model) Stats() Stats {
	stats := Stats{
		Nodes:             m.Mesh.NodeCount(),
		Elements:          m.Mesh.Len(),
		ElementsByType:    make(map[string]int),
		Blocks:            m.Blocks.Len(),
		Materials:         m.Materials.Len(),
		PropertyTables:    m.PropertyTables.Len(),
		CoordinateSystems: m.CoordinateSystems.Len(),
		Loads:             m.Loads.Len(),
		Restraints:        m.Restraints.Len(),
		InitialSets:       len(m.InitialSets),
		Constraints:       len(m.ContactConstraints) + len(m.CouplingConstraints) + len(m.PeriodicConstraints),
		Receivers:         len(m.Receivers),
		NodeSets:          m.NodeSets.Len(),
		SideSets:          m.SideSets.Len(),
	}
	for elementType := range m.Mesh.Types() {
		if partition, ok := m.Mesh.Partition(elementType.Name); ok {
			stats.ElementsByType[elementType.Name] = partition.Len()
		}
	}
	return stats
}
