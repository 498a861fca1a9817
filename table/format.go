package table

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the on-disk encoding of a table.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatXLSX    Format = "xlsx"
)

// Formats lists the supported output encodings.
func Formats() []Format {
	return []Format{FormatCSV, FormatParquet, FormatXLSX}
}

// ParseFormat accepts a format name case-insensitively. An empty name means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatParquet:
		return FormatParquet, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatParquet:
		return ".parquet"
	case FormatXLSX:
		return ".xlsx"
	default:
		return ".csv"
	}
}

// PathFor swaps a known table extension on path for the one matching f. Paths
// with any other extension are returned unchanged.
func PathFor(path string, f Format) string {
	ext := filepath.Ext(path)
	for _, known := range Formats() {
		if strings.EqualFold(ext, known.Extension()) {
			return strings.TrimSuffix(path, ext) + f.Extension()
		}
	}
	return path
}

// Write encodes t at path using f.
func Write(path string, t *Table, f Format) error {
	switch f {
	case FormatCSV, "":
		return WriteCSV(path, t)
	case FormatParquet:
		return WriteParquet(path, t)
	case FormatXLSX:
		return WriteXLSX(path, t)
	default:
		return fmt.Errorf("write %s: unsupported output format %q", path, f)
	}
}
