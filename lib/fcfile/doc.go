// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fcfile reads and writes case files on disk.
//
// The document itself is always the JSON envelope of package model.
// On disk it may additionally be wrapped in a zstd or lz4 frame; the
// wrapping is detected from the frame magic on read, and chosen on
// write by [Options] or by the ".zst" / ".lz4" extension. Input is
// passed through a JSONC filter first, so hand-edited files with
// comments or trailing commas load unchanged.
//
// Writes are atomic: the bytes go to a temporary file in the target
// directory, which is renamed over the destination only once it is
// complete.
//
// [Fingerprint] identifies a model by content. It hashes the canonical
// encoding (unindented, uncompressed) with keyed BLAKE3, so two files
// holding the same model share a fingerprint whatever their
// compression or whitespace.
//
// Key exports:
//   - [Store]: logging file access bound to an element type catalog
//   - [Compression], [Detect], [FromExtension]
//   - [Fingerprint], [FingerprintModel], [Hash]
package fcfile
