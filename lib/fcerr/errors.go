// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fcerr

import (
	"errors"
	"fmt"
)

// FormatError reports a packed array that could not be decoded: the
// text is not standard base64, or the decoded byte count is not a
// multiple of the element width.
type FormatError struct {
	// Field names the record member being decoded (e.g., "nids",
	// "apply_to"). Empty when the codec is called directly.
	Field string
	// Width is the declared element width in bytes, or 0 when the
	// failure happened before width mattered.
	Width int
	// Length is the decoded byte count, when known.
	Length int
	// Err is the underlying base64 error, if any.
	Err error
}

func (e *FormatError) Error() string {
	prefix := "format error"
	if e.Field != "" {
		prefix = fmt.Sprintf("format error in %q", e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	return fmt.Sprintf("%s: %d bytes is not a multiple of element width %d", prefix, e.Length, e.Width)
}

func (e *FormatError) Unwrap() error { return e.Err }

// WithField returns a copy of err with Field set, when err is a
// *FormatError without a field. Other errors are returned unchanged.
// Record decoders use this to attach the member name to codec errors.
func WithField(err error, field string) error {
	var formatErr *FormatError
	if errors.As(err, &formatErr) && formatErr.Field == "" {
		annotated := *formatErr
		annotated.Field = field
		return &annotated
	}
	return err
}

// ValidationError reports a record whose members are individually
// well-formed but mutually inconsistent: parallel lists of different
// lengths, a dependency mixing list and scalar shapes, an element whose
// node list does not match its type.
type ValidationError struct {
	// Entity is the record kind ("element", "material", "dependency").
	Entity string
	// ID is the record's identifier, or 0 when not applicable.
	ID int
	// Field is the member at fault, if a single one can be named.
	Field string
	// Message describes the inconsistency.
	Message string
}

func (e *ValidationError) Error() string {
	location := e.Entity
	if e.ID != 0 {
		location = fmt.Sprintf("%s %d", e.Entity, e.ID)
	}
	if e.Field != "" {
		location = fmt.Sprintf("%s field %q", location, e.Field)
	}
	if location == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s: %s", location, e.Message)
}

// UnknownElementTypeError reports a lookup outside the element type
// catalog. Exactly one of Code or Name is meaningful, selected by
// ByName.
type UnknownElementTypeError struct {
	Code   int
	Name   string
	ByName bool
}

func (e *UnknownElementTypeError) Error() string {
	if e.ByName {
		return fmt.Sprintf("unknown element type %q", e.Name)
	}
	return fmt.Sprintf("unknown element type code %d", e.Code)
}

// DanglingReferenceError reports a foreign key that does not resolve
// in its target collection. Compaction returns it before mutating
// anything.
type DanglingReferenceError struct {
	// Source is the referencing entity kind ("element", "block",
	// "material property").
	Source string
	// SourceID is the referencing entity's identifier.
	SourceID int
	// Field is the referencing member ("nodes", "block", "material_id").
	Field string
	// Target is the collection the key should resolve in.
	Target string
	// TargetID is the unresolved key.
	TargetID int
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference: %s %d field %q refers to missing %s %d",
		e.Source, e.SourceID, e.Field, e.Target, e.TargetID)
}

// MalformedMeshError reports packed mesh arrays whose lengths disagree
// with each other or with the element catalog's node counts.
type MalformedMeshError struct {
	Message string
}

func (e *MalformedMeshError) Error() string {
	return "malformed mesh: " + e.Message
}

// MalformedMesh builds a *MalformedMeshError from a format string.
func MalformedMesh(format string, args ...any) error {
	return &MalformedMeshError{Message: fmt.Sprintf(format, args...)}
}
