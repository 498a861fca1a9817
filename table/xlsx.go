package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Aarondulong/EH804Project/codebook"
	"github.com/Aarondulong/EH804Project/qaerrors"
)

// DefaultSheet is the worksheet name used by WriteXLSX.
const DefaultSheet = "Data"

// WriteXLSX writes t to a single-sheet workbook at path, replacing any existing
// file. Codebook numeric columns are stored as numbers, everything else as text.
func WriteXLSX(path string, t *Table) error {
	if err := ensureParent(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DefaultSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(DefaultSheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	kinds := make([]codebook.Kind, len(t.Columns))
	for i, name := range t.Columns {
		kinds[i] = codebook.KindOf(name)
	}

	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			kind := codebook.KindString
			if i < len(kinds) {
				kind = kinds[i]
			}
			cells[i] = xlsxValue(v, kind)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DefaultSheet, cell, &cells); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", r+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return qaerrors.NewIOError("save xlsx output", err).WithContext("path", path)
	}
	return nil
}

func xlsxValue(v string, kind codebook.Kind) interface{} {
	s := strings.TrimSpace(v)
	switch kind {
	case codebook.KindInt:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case codebook.KindFloat:
		if s == "" {
			return nil
		}
		if x, err := strconv.ParseFloat(s, 64); err == nil {
			return x
		}
	}
	return v
}
