package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/miabis/bundlegen/internal/config"
	"github.com/miabis/bundlegen/pkg/fhirmodels"
)

// ErrIOFailure marks failures writing the assembled document to disk. The
// underlying cause is preserved in the chain.
var ErrIOFailure = errors.New("output write failure")

// Encode writes the bundle as indented JSON. Typed records with fixed field
// order keep the serialization byte-identical for identical inputs.
func Encode(w io.Writer, b *fhirmodels.Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	return nil
}

// CheckWritable verifies the output path can be written before any
// generation work starts. A directory at the path, or an uncreatable parent
// directory, is a configuration error.
func CheckWritable(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: output path %s is a directory", config.ErrInvalidConfiguration, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: output directory %s: %v", config.ErrInvalidConfiguration, dir, err)
		}
	}
	return nil
}

// WriteFile serializes the bundle to path. The document is written in one
// pass only after assembly has fully succeeded; there are no partial writes
// to recover from.
func WriteFile(path string, b *fhirmodels.Bundle) error {
	if err := CheckWritable(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIOFailure, path, err)
	}
	if err := Encode(f, b); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrIOFailure, path, err)
	}
	return nil
}
