package table

import (
	"fmt"
	"os"
	"strings"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/Aarondulong/EH804Project/codebook"
	"github.com/Aarondulong/EH804Project/qaerrors"
)

// parquetSchema builds a CSV-writer schema. Column types follow the codebook;
// columns outside it are stored as UTF8 strings. Every column is OPTIONAL so that
// missing readings become nulls.
func parquetSchema(columns []string) []string {
	md := make([]string, len(columns))
	for i, name := range columns {
		switch codebook.KindOf(name) {
		case codebook.KindInt:
			md[i] = fmt.Sprintf("name=%s, type=INT64, repetitiontype=OPTIONAL", name)
		case codebook.KindFloat:
			md[i] = fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", name)
		default:
			md[i] = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", name)
		}
	}
	return md
}

// EncodeParquet renders t as a SNAPPY-compressed parquet file in memory.
func EncodeParquet(t *Table) ([]byte, error) {
	kinds := make([]codebook.Kind, len(t.Columns))
	for i, name := range t.Columns {
		kinds[i] = codebook.KindOf(name)
	}

	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewCSVWriter(parquetSchema(t.Columns), fw, 4)
	if err != nil {
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for r, row := range t.Rows {
		rec := make([]*string, len(t.Columns))
		for i := range t.Columns {
			if i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v == "" && kinds[i] != codebook.KindString {
				continue
			}
			rec[i] = &v
		}
		if err := pw.WriteString(rec); err != nil {
			_ = pw.WriteStop()
			return nil, fmt.Errorf("write parquet row %d: %w", r+1, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finish parquet: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

// WriteParquet writes t as parquet to path, replacing any existing file. The file
// is only created once the whole table has been encoded.
func WriteParquet(path string, t *Table) error {
	data, err := EncodeParquet(t)
	if err != nil {
		return err
	}
	if err := ensureParent(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return qaerrors.NewIOError("write parquet output", err).WithContext("path", path)
	}
	return nil
}
