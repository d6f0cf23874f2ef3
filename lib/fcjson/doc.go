// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fcjson provides [Object], a JSON object that remembers the
// order of its members.
//
// Case files are edited by hand and diffed as text, so records are
// written back with their members in the order they were read. Most
// records have a fixed shape and are plain structs; the exceptions are
// those that keep members the library does not model (unknown
// top-level sections, extra keys on constraints and property tables)
// and materials, whose property groups are members named by the group.
// Those decode into an Object, which walks the input with
// github.com/buger/jsonparser and keeps each member's raw bytes.
package fcjson
