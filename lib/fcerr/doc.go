// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fcerr defines the structured error kinds shared by the case
// file packages.
//
// Every decode, encode, and compaction failure surfaces as one of five
// types, each carrying enough context (entity kind, entity id, field
// name) to locate the offending record in a model of millions of
// entities. Callers extract them with errors.As:
//
//	var dangling *fcerr.DanglingReferenceError
//	if errors.As(err, &dangling) {
//	    log.Printf("block %d references missing material %d", dangling.SourceID, dangling.TargetID)
//	}
//
// Key exports:
//
//   - [FormatError] -- malformed base64, or a byte length that is not a
//     multiple of the declared element width
//   - [ValidationError] -- inconsistent shapes inside one record
//   - [UnknownElementTypeError] -- a type code or name outside the catalog
//   - [DanglingReferenceError] -- a foreign key with no target
//   - [MalformedMeshError] -- packed mesh arrays that disagree in length
//
// None of these are recoverable for the record in progress. There is no
// partial success: a rejected decode or compaction leaves the caller's
// model as it was.
//
// This package has no dependencies on other fccase packages.
package fcerr
