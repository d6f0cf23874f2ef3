// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binarray converts between the case format's base64 strings
// and fixed-width numeric arrays.
//
// Every numeric array in a case file is stored as a standard base64
// string over raw little-endian elements: 32-bit signed integers for
// identifiers and node lists, 64-bit floats for coordinates and
// physical data, 8-bit integers for compact type codes. The empty
// array is the empty string.
//
// Some members are "flexible": the same string slot holds either a
// packed array or a literal token (notably "all", meaning "applies to
// everything") or a symbolic formula. There is no sibling
// discriminator; the variant is decided by content. [IsFlexibleBinary]
// is that decision: a string is binary only if it is canonical base64,
// i.e. re-encoding the decoded bytes reproduces the input exactly.
// [DecodeFlexible] applies the decision once and returns a [Value]
// tagged union so use sites never re-inspect the string.
//
// Key exports:
//
//   - [ElementType] -- Int8, Int32, Int64, Float64 and their widths
//   - [DecodeInt32], [DecodeInt8], [DecodeFloat64] and the matching
//     Encode functions -- strict typed codecs
//   - [Decode] and [Encode] -- the same over float64 storage, for
//     callers that carry the element type as data
//   - [IsFlexibleBinary], [DecodeFlexible] -- the dual-mode decision
//   - [Value] -- Empty | Array | Formula, with a row/column shape
//
// Integer arrays decoded through the float64 path are exact for every
// value representable in the format's 32-bit identifier space.
//
// This package depends only on [github.com/bureau-foundation/fccase/lib/fcerr].
package binarray
