package pipeline

import (
	"strconv"

	"github.com/Aarondulong/EH804Project/codebook"
	"github.com/Aarondulong/EH804Project/ingest"
	"github.com/Aarondulong/EH804Project/qaerrors"
	"github.com/Aarondulong/EH804Project/table"
)

// TaggedTable lays out tagged rows using the codebook source column names,
// followed by one column per channel in the given order.
func TaggedTable(rows []CleanedRecord, channels []ingest.Channel) *table.Table {
	cols := []string{
		codebook.SourceIndex,
		codebook.SourceInstrument,
		codebook.SourceDate,
		codebook.SourceTime,
		codebook.SourceCondition,
		codebook.SourceSession,
		codebook.SourceProximity,
	}
	for _, ch := range channels {
		cols = append(cols, string(ch))
	}

	t := table.New(cols...)
	t.Rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			string(r.InstrumentID),
			string(r.Date),
			r.Time,
			r.Condition,
			r.Session,
			r.Proximity,
		}
		for _, ch := range channels {
			row = append(row, formatFloatPtr(r.Values[ch]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Normalize projects a tagged table onto the family's codebook: columns are
// renamed and ordered per the codebook and everything else is dropped. A codebook
// column whose source is missing from t is a schema error.
func Normalize(t *table.Table, family codebook.Family) (*table.Table, error) {
	cols, err := codebook.ForFamily(family)
	if err != nil {
		return nil, qaerrors.NewSchemaError("normalize table", err)
	}

	sources := make([]string, len(cols))
	for i, c := range cols {
		if t.ColumnIndex(c.Source) < 0 {
			return nil, qaerrors.NewSchemaError("tagged table is missing a codebook source column", nil).
				WithContext("family", string(family)).
				WithContext("column", c.Name).
				WithContext("source", c.Source)
		}
		sources[i] = c.Source
	}

	out, err := t.Select(sources...)
	if err != nil {
		return nil, qaerrors.NewSchemaError("normalize table", err)
	}
	for i, c := range cols {
		out.Columns[i] = c.Name
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
