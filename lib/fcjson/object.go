// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fcjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/buger/jsonparser"
)

// Member is one key and its raw JSON value.
type Member struct {
	Key   string
	Value json.RawMessage
}

// Object is an ordered JSON object. The zero value is empty and
// encodes as {}.
type Object struct {
	members []Member
}

// Parse decodes a JSON object, keeping member order. A repeated key
// keeps its first position and its last value.
func Parse(data []byte) (Object, error) {
	var object Object
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Object{}, fmt.Errorf("fcjson: expected an object")
	}
	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		raw := value
		if dataType == jsonparser.String {
			raw = make([]byte, 0, len(value)+2)
			raw = append(raw, '"')
			raw = append(raw, value...)
			raw = append(raw, '"')
		}
		object.SetRaw(string(key), bytes.Clone(raw))
		return nil
	})
	if err != nil {
		return Object{}, fmt.Errorf("fcjson: %w", err)
	}
	return object, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Object) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Object) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, member := range o.members {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(member.Key)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(member.Value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// Len returns the number of members.
func (o Object) Len() int { return len(o.members) }

// Keys returns the member keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, member := range o.members {
		keys[i] = member.Key
	}
	return keys
}

// All yields members in order.
func (o Object) All() iter.Seq2[string, json.RawMessage] {
	return func(yield func(string, json.RawMessage) bool) {
		for _, member := range o.members {
			if !yield(member.Key, member.Value) {
				return
			}
		}
	}
}

// Get returns the raw value of key.
func (o Object) Get(key string) (json.RawMessage, bool) {
	for _, member := range o.members {
		if member.Key == key {
			return member.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Decode unmarshals the value of key into target. It reports false,
// and leaves target alone, when key is absent.
func (o Object) Decode(key string, target any) (bool, error) {
	raw, ok := o.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return true, fmt.Errorf("member %q: %w", key, err)
	}
	return true, nil
}

// SetRaw stores raw under key, in place when key exists and at the end
// otherwise.
func (o *Object) SetRaw(key string, raw json.RawMessage) {
	for i := range o.members {
		if o.members[i].Key == key {
			o.members = slices.Clone(o.members)
			o.members[i].Value = raw
			return
		}
	}
	o.members = append(o.members, Member{Key: key, Value: raw})
}

// Set marshals value and stores it under key.
func (o *Object) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("member %q: %w", key, err)
	}
	o.SetRaw(key, raw)
	return nil
}

// Delete removes key, reporting whether it was present.
func (o *Object) Delete(key string) bool {
	for i, member := range o.members {
		if member.Key == key {
			o.members = slices.Concat(o.members[:i], o.members[i+1:])
			return true
		}
	}
	return false
}

// Without returns a copy of o lacking the given keys.
func (o Object) Without(keys ...string) Object {
	var rest Object
	for _, member := range o.members {
		skip := false
		for _, key := range keys {
			if member.Key == key {
				skip = true
				break
			}
		}
		if !skip {
			rest.members = append(rest.members, member)
		}
	}
	return rest
}

// Merge appends the members of other that o does not already hold.
func (o *Object) Merge(other Object) {
	for _, member := range other.members {
		if !o.Has(member.Key) {
			o.members = append(o.members, member)
		}
	}
}
