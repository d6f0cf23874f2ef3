// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fcfile

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the frame wrapped around a document on disk.
type Compression uint8

const (
	// CompressionNone stores the JSON text as is.
	CompressionNone Compression = iota

	// CompressionZstd wraps the document in a zstd frame at the
	// default level. Case files are mostly base64 text and typically
	// shrink 3-4x.
	CompressionZstd

	// CompressionLZ4 wraps the document in an lz4 frame. Faster to
	// decode than zstd, with a lower ratio.
	CompressionLZ4
)

// String returns the configuration name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a configuration name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, zstd or lz4)", name)
	}
}

// Frame magic numbers, as they appear at the start of the file.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect returns the compression of data from its leading magic
// bytes. Anything unrecognised is taken to be plain JSON.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// FromExtension returns the compression implied by path's extension:
// ".zst" or ".zstd" for zstd, ".lz4" for lz4, none otherwise.
func FromExtension(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use, so one
// of each serves the whole process.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("fcfile: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("fcfile: zstd decoder initialization failed: " + err.Error())
	}
}

func compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/3)), nil
	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", compression)
	}
}

// decompress unwraps data according to its magic bytes and reports
// what it found.
func decompress(data []byte) ([]byte, Compression, error) {
	compression := Detect(data)
	switch compression {
	case CompressionZstd:
		plain, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, compression, fmt.Errorf("zstd decompress: %w", err)
		}
		return plain, compression, nil
	case CompressionLZ4:
		plain, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, compression, fmt.Errorf("lz4 decompress: %w", err)
		}
		return plain, compression, nil
	default:
		return data, compression, nil
	}
}
