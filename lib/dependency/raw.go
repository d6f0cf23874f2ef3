// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dependency

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// IntOrList is a JSON member that is either an integer or a list of
// integers. The zero value is the scalar 0.
type IntOrList struct {
	IsList bool
	Scalar int
	List   []int
}

// IntScalar returns the scalar form.
func IntScalar(value int) IntOrList { return IntOrList{Scalar: value} }

// IntList returns the list form. A nil list marshals as [].
func IntList(values ...int) IntOrList { return IntOrList{IsList: true, List: values} }

func (v IntOrList) MarshalJSON() ([]byte, error) {
	if v.IsList {
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Scalar)
}

func (v *IntOrList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []int
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("decoding integer list: %w", err)
		}
		if list == nil {
			list = []int{}
		}
		*v = IntOrList{IsList: true, List: list}
		return nil
	}
	var scalar int
	if err := json.Unmarshal(trimmed, &scalar); err != nil {
		return fmt.Errorf("decoding integer: %w", err)
	}
	*v = IntOrList{Scalar: scalar}
	return nil
}

// StringOrList is a JSON member that is either a string or a list of
// strings. The zero value is the scalar "".
type StringOrList struct {
	IsList bool
	Scalar string
	List   []string
}

// StringScalar returns the scalar form.
func StringScalar(value string) StringOrList { return StringOrList{Scalar: value} }

// StringList returns the list form. A nil list marshals as [].
func StringList(values ...string) StringOrList {
	return StringOrList{IsList: true, List: values}
}

func (v StringOrList) MarshalJSON() ([]byte, error) {
	if v.IsList {
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Scalar)
}

func (v *StringOrList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("decoding string list: %w", err)
		}
		if list == nil {
			list = []string{}
		}
		*v = StringOrList{IsList: true, List: list}
		return nil
	}
	var scalar string
	if err := json.Unmarshal(trimmed, &scalar); err != nil {
		return fmt.Errorf("decoding string: %w", err)
	}
	*v = StringOrList{Scalar: scalar}
	return nil
}
