// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fcfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/fccase/lib/elemtype"
	"github.com/bureau-foundation/fccase/lib/model"
)

// Options control how a model is written.
type Options struct {
	// Compression overrides the compression implied by the path's
	// extension when it is not CompressionNone.
	Compression Compression
	// Indent writes the JSON with four-space indentation.
	Indent bool
}

// Store reads and writes case files, resolving element types in one
// catalog and logging each file it touches.
type Store struct {
	catalog *elemtype.Catalog
	logger  *slog.Logger
}

// NewStore returns a Store. A nil catalog means elemtype.Default() and
// a nil logger discards.
func NewStore(catalog *elemtype.Catalog, logger *slog.Logger) *Store {
	if catalog == nil {
		catalog = elemtype.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{catalog: catalog, logger: logger}
}

// Read loads the case file at path with a discarding Store.
func Read(path string, catalog *elemtype.Catalog) (*model.Model, error) {
	return NewStore(catalog, nil).Read(path)
}

// Write saves m to path with a discarding Store.
func Write(path string, m *model.Model, options Options) error {
	return NewStore(m.Catalog(), nil).Write(path, m, options)
}

// Read loads and decodes the case file at path.
func (s *Store) Read(path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, compression, err := s.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	stats := m.Stats()
	s.logger.Debug("read case file",
		"path", path,
		"bytes", len(data),
		"compression", compression.String(),
		"nodes", stats.Nodes,
		"elements", stats.Elements,
	)
	return m, nil
}

// Decode unwraps any compression frame around data, strips JSONC
// comments and trailing commas, and decodes the model. It also
// reports which compression it found.
func (s *Store) Decode(data []byte) (*model.Model, Compression, error) {
	plain, compression, err := decompress(data)
	if err != nil {
		return nil, compression, err
	}
	m, err := model.Decode(jsonc.ToJSON(plain), s.catalog)
	if err != nil {
		return nil, compression, err
	}
	return m, compression, nil
}

// Write encodes m and replaces path with it atomically. The
// compression is options.Compression, or when that is none, the one
// path's extension implies.
func (s *Store) Write(path string, m *model.Model, options Options) error {
	compression := options.Compression
	if compression == CompressionNone {
		compression = FromExtension(path)
	}

	plain, err := m.Encode(options.Indent)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data, err := compress(plain, compression)
	if err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}
	s.logger.Debug("wrote case file",
		"path", path,
		"bytes", len(data),
		"compression", compression.String(),
	)
	return nil
}

// Fingerprint reads the case file at path and fingerprints the model
// it holds.
func (s *Store) Fingerprint(path string) (Hash, error) {
	m, err := s.Read(path)
	if err != nil {
		return Hash{}, err
	}
	hash, err := FingerprintModel(m)
	if err != nil {
		return Hash{}, fmt.Errorf("%s: %w", path, err)
	}
	return hash, nil
}

// writeAtomic writes data to a temporary file next to path and
// renames it into place. A failure leaves path as it was.
func writeAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	temporaryPath := temporary.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(temporaryPath)
		}
	}()

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing %s: %w", temporaryPath, err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return fmt.Errorf("syncing %s: %w", temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", temporaryPath, err)
	}
	if err := os.Chmod(temporaryPath, 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", temporaryPath, path, err)
	}

	success = true
	return nil
}
