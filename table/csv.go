package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Aarondulong/EH804Project/qaerrors"
)

// WriteCSV writes t as comma-separated text to path, replacing any existing file.
func WriteCSV(path string, t *Table) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return qaerrors.NewIOError("open csv output", err).WithContext("path", path)
	}
	defer f.Close()

	if err := EncodeCSV(f, t); err != nil {
		return qaerrors.NewIOError("write csv output", err).WithContext("path", path)
	}
	return f.Close()
}

// EncodeCSV writes the header and rows of t to w.
func EncodeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a table previously written by WriteCSV. The first row is the header.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, qaerrors.NewIOError("open csv table", err).WithContext("path", path)
	}
	defer f.Close()

	t, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// DecodeCSV reads a header row followed by data rows from r.
func DecodeCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, qaerrors.NewFileFormatError("table has no header row", nil)
	}
	if err != nil {
		return nil, qaerrors.NewFileFormatError("read table header", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, qaerrors.NewFileFormatError("read table rows", err)
	}
	return &Table{Columns: header, Rows: rows}, nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return qaerrors.NewIOError("create output directory", err).WithContext("path", dir)
	}
	return nil
}
