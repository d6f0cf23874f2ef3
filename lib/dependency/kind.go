// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dependency

import "fmt"

// Kind is the axis a dependency column tabulates against. The set of
// codes is open: files written by newer tools may carry codes this
// package does not name, and those are kept verbatim.
type Kind int

const (
	Constant           Kind = 0
	TabularX           Kind = 1
	TabularY           Kind = 2
	TabularZ           Kind = 3
	TabularTime        Kind = 4
	TabularTemperature Kind = 5
	Formula            Kind = 6
	TabularFrequency   Kind = 7
	TabularStrain      Kind = 8
	TabularElementID   Kind = 10
	TabularNodeID      Kind = 11
	TabularModeID      Kind = 12
)

var kindNames = map[Kind]string{
	Constant:           "CONSTANT",
	TabularX:           "TABULAR_X",
	TabularY:           "TABULAR_Y",
	TabularZ:           "TABULAR_Z",
	TabularTime:        "TABULAR_TIME",
	TabularTemperature: "TABULAR_TEMPERATURE",
	Formula:            "FORMULA",
	TabularFrequency:   "TABULAR_FREQUENCY",
	TabularStrain:      "TABULAR_STRAIN",
	TabularElementID:   "TABULAR_ELEMENT_ID",
	TabularNodeID:      "TABULAR_NODE_ID",
	TabularModeID:      "TABULAR_MODE_ID",
}

// Known reports whether k is one of the named kinds.
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// IsIdentifier reports whether columns of this kind hold entity
// identifiers.
func (k Kind) IsIdentifier() bool {
	return k == TabularElementID || k == TabularNodeID
}

// String returns the format's name for k, or "unknown(N)".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// ParseKind returns the kind named name, as produced by [Kind.String]
// for known kinds.
func ParseKind(name string) (Kind, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, true
		}
	}
	return 0, false
}
