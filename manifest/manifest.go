// Package manifest writes the provenance record that accompanies each cleaned run.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aarondulong/EH804Project/qaerrors"
)

// Suffix replaces the table extension in manifest file names.
const Suffix = ".manifest.json"

// PathFor returns the manifest path for a table path, e.g. Run1.csv -> Run1.manifest.json.
func PathFor(tablePath string) string {
	return strings.TrimSuffix(tablePath, filepath.Ext(tablePath)) + Suffix
}

// DescribeSource hashes the file at path.
func DescribeSource(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, qaerrors.NewIOError("open source file", err).WithContext("path", path)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Source{}, qaerrors.NewIOError("hash source file", err).WithContext("path", path)
	}
	return Source{
		Path:      path,
		Name:      filepath.Base(path),
		SHA256:    hex.EncodeToString(h.Sum(nil)),
		SizeBytes: n,
	}, nil
}

// Write stores m as indented JSON at path, replacing any existing file.
func Write(path string, m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return qaerrors.NewIOError("create manifest directory", err).WithContext("path", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return qaerrors.NewIOError("create manifest", err).WithContext("path", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return qaerrors.NewIOError("write manifest", err).WithContext("path", path)
	}
	return f.Close()
}

// Read loads a manifest written by Write.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, qaerrors.NewIOError("read manifest", err).WithContext("path", path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, qaerrors.NewFileFormatError("decode manifest", err).WithContext("path", path)
	}
	return &m, nil
}
