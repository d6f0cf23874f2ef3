// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package material

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/bureau-foundation/fccase/lib/binarray"
	"github.com/bureau-foundation/fccase/lib/dependency"
	"github.com/bureau-foundation/fccase/lib/fcerr"
	"github.com/bureau-foundation/fccase/lib/fcjson"
)

// Property is one material constant.
type Property struct {
	// Type is the property type code within the group (HOOK,
	// ORTHOTROPIC, ...).
	Type int
	// Constant is the constant code within the group (YOUNG_MODULE,
	// DENSITY, ...).
	Constant int
	// Value holds the constant's samples: one number for a plain
	// constant, one per table row for a tabulated one.
	Value binarray.Value
	// Dependency says what Value varies against.
	Dependency dependency.Dependency
}

// Group is the properties of one named group, in file order.
type Group struct {
	Name       string
	Properties []Property
}

// Material is a material record.
type Material struct {
	ID     int
	Name   string
	Groups []Group

	// extra holds the non-group members other than id and name.
	extra fcjson.Object
}

func (m *Material) Key() int { return m.ID }

func (m *Material) SetKey(id int) { m.ID = id }

// Group returns the named group, or nil.
func (m *Material) Group(name string) *Group {
	for i := range m.Groups {
		if m.Groups[i].Name == name {
			return &m.Groups[i]
		}
	}
	return nil
}

// AddProperty appends property to the named group, creating the group
// at the end when the material lacks it.
func (m *Material) AddProperty(group string, property Property) {
	if existing := m.Group(group); existing != nil {
		existing.Properties = append(existing.Properties, property)
		return
	}
	m.Groups = append(m.Groups, Group{Name: group, Properties: []Property{property}})
}

// Properties yields (group name, property) over every group in order.
func (m *Material) Properties() iter.Seq2[string, Property] {
	return func(yield func(string, Property) bool) {
		for _, group := range m.Groups {
			for _, property := range group.Properties {
				if !yield(group.Name, property) {
					return
				}
			}
		}
	}
}

// Dependencies yields a pointer to every property's dependency, for
// in-place renumbering.
func (m *Material) Dependencies() iter.Seq[*dependency.Dependency] {
	return func(yield func(*dependency.Dependency) bool) {
		for g := range m.Groups {
			properties := m.Groups[g].Properties
			for p := range properties {
				if !yield(&properties[p].Dependency) {
					return
				}
			}
		}
	}
}

// Len returns the number of properties across all groups.
func (m *Material) Len() int {
	total := 0
	for _, group := range m.Groups {
		total += len(group.Properties)
	}
	return total
}

// groupEntry is one element of a group's list on the wire: the
// constants sharing one property type.
type groupEntry struct {
	ConstDep     []dependency.StringOrList `json:"const_dep"`
	ConstDepSize []int                     `json:"const_dep_size"`
	ConstNames   []int                     `json:"const_names"`
	ConstTypes   []dependency.IntOrList    `json:"const_types"`
	Constants    []string                  `json:"constants"`
	Type         int                       `json:"type"`
}

// Decode parses a material record. Every list-valued member is a
// property group; each group entry is flattened into one property per
// constant.
func Decode(data []byte) (*Material, error) {
	object, err := fcjson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decoding material: %w", err)
	}
	material := &Material{}
	if _, err := object.Decode("id", &material.ID); err != nil {
		return nil, fmt.Errorf("decoding material: %w", err)
	}
	if _, err := object.Decode("name", &material.Name); err != nil {
		return nil, fmt.Errorf("decoding material %d: %w", material.ID, err)
	}

	for key, raw := range object.All() {
		if key == "id" || key == "name" {
			continue
		}
		if len(raw) == 0 || raw[0] != '[' {
			material.extra.SetRaw(key, raw)
			continue
		}
		var entries []groupEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decoding material %d group %q: %w", material.ID, key, err)
		}
		group := Group{Name: key}
		for _, entry := range entries {
			properties, err := entry.flatten(material.ID, key)
			if err != nil {
				return nil, err
			}
			group.Properties = append(group.Properties, properties...)
		}
		material.Groups = append(material.Groups, group)
	}
	return material, nil
}

func (e groupEntry) flatten(materialID int, group string) ([]Property, error) {
	count := len(e.Constants)
	if len(e.ConstNames) != count || len(e.ConstTypes) != count || len(e.ConstDep) != count {
		return nil, &fcerr.ValidationError{
			Entity: "material",
			ID:     materialID,
			Field:  group,
			Message: fmt.Sprintf("type %d: %d constants, %d const_names, %d const_types, %d const_dep",
				e.Type, count, len(e.ConstNames), len(e.ConstTypes), len(e.ConstDep)),
		}
	}
	properties := make([]Property, count)
	for i, text := range e.Constants {
		value, err := binarray.DecodeFlexible(text, binarray.Float64)
		if err != nil {
			return nil, fmt.Errorf("decoding material %d group %q constant %d: %w",
				materialID, group, e.ConstNames[i], fcerr.WithField(err, "constants"))
		}
		dep, err := dependency.Decode(e.ConstTypes[i], e.ConstDep[i])
		if err != nil {
			return nil, fmt.Errorf("decoding material %d group %q constant %d: %w",
				materialID, group, e.ConstNames[i], err)
		}
		properties[i] = Property{Type: e.Type, Constant: e.ConstNames[i], Value: value, Dependency: dep}
	}
	return properties, nil
}

// Encode writes the record: id, name, the groups in order, then any
// other members the record was decoded with. Within a group,
// properties sharing a type are gathered into one entry, entries in
// order of first appearance.
func (m *Material) Encode() (json.RawMessage, error) {
	var object fcjson.Object
	if err := object.Set("id", m.ID); err != nil {
		return nil, err
	}
	if err := object.Set("name", m.Name); err != nil {
		return nil, err
	}
	for _, group := range m.Groups {
		if err := object.Set(group.Name, regroup(group.Properties)); err != nil {
			return nil, fmt.Errorf("encoding material %d: %w", m.ID, err)
		}
	}
	object.Merge(m.extra)
	return object.MarshalJSON()
}

func regroup(properties []Property) []groupEntry {
	entries := []groupEntry{}
	index := make(map[int]int)
	for _, property := range properties {
		position, ok := index[property.Type]
		if !ok {
			position = len(entries)
			index[property.Type] = position
			entries = append(entries, groupEntry{
				ConstDep:     []dependency.StringOrList{},
				ConstDepSize: []int{},
				ConstNames:   []int{},
				ConstTypes:   []dependency.IntOrList{},
				Constants:    []string{},
				Type:         property.Type,
			})
		}
		entry := &entries[position]
		kinds, data := property.Dependency.Encode()
		entry.ConstDep = append(entry.ConstDep, data)
		entry.ConstDepSize = append(entry.ConstDepSize, property.Value.Len())
		entry.ConstNames = append(entry.ConstNames, property.Constant)
		entry.ConstTypes = append(entry.ConstTypes, kinds)
		entry.Constants = append(entry.Constants, property.Value.EncodeFlexible())
	}
	return entries
}
