package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/miabis/bundlegen/internal/config"
	"github.com/miabis/bundlegen/internal/platform/random"
)

func TestEncode_ProducesValidJSON(t *testing.T) {
	bundle, _ := assemble(t, testConfig(3, 1, 1), 42)

	var buf bytes.Buffer
	if err := Encode(&buf, bundle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("emitted document is not valid JSON: %v", err)
	}
	if doc["resourceType"] != "Bundle" || doc["type"] != "transaction" {
		t.Fatalf("unexpected document envelope: %v %v", doc["resourceType"], doc["type"])
	}
}

func TestEncode_KeepsHTMLUnescaped(t *testing.T) {
	bundle, _ := assemble(t, testConfig(1, 1, 1), 42)

	var buf bytes.Buffer
	if err := Encode(&buf, bundle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte(`\u003c`)) {
		t.Fatal("narrative markup must not be escaped")
	}
	if !bytes.Contains(buf.Bytes(), []byte("<div")) {
		t.Fatal("expected narrative markup in output")
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	bundle, _ := assemble(t, testConfig(2, 1, 1), 42)

	path := filepath.Join(t.TempDir(), "out", "bundle.json")
	if err := WriteFile(path, bundle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, bundle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, buf.Bytes()) {
		t.Fatal("file content does not match encoded bundle")
	}
}

func TestWriteFile_RejectsDirectoryPath(t *testing.T) {
	bundle, _ := assemble(t, testConfig(1, 1, 1), 42)

	err := WriteFile(t.TempDir(), bundle)
	if err == nil {
		t.Fatal("expected error writing to a directory path")
	}
	if !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestWriteFile_ReportsIOFailure(t *testing.T) {
	bundle, _ := assemble(t, testConfig(1, 1, 1), 42)

	// A NUL byte in the file name makes creation fail on every platform.
	err := WriteFile(filepath.Join(t.TempDir(), "bundle\x00.json"), bundle)
	if err == nil {
		t.Fatal("expected error creating the output file")
	}
	if !errors.Is(err, ErrIOFailure) {
		t.Fatalf("expected ErrIOFailure, got %v", err)
	}
}

func TestCheckWritable_RejectsDirectoryPath(t *testing.T) {
	err := CheckWritable(t.TempDir())
	if err == nil {
		t.Fatal("expected error for directory path")
	}
	if !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestCheckWritable_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "bundle.json")
	if err := CheckWritable(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("parent directory was not created: %v", err)
	}
}

func TestWriteFile_FailFastLeavesNoFile(t *testing.T) {
	cfg := testConfig(0, 1, 1)
	path := filepath.Join(t.TempDir(), "bundle.json")

	_, _, err := New(cfg, random.New(42), 42).Assemble()
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("no output file may exist after a failed run")
	}
}
