package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xuri/excelize/v2"

	"github.com/Aarondulong/EH804Project/qaerrors"
)

func sampleTable() *Table {
	t := New("Time_Stamp", "Instrument_ID", "Date", "Time", "PM25")
	t.Append("1", "384", "2025-11-01", "01:00", "4.5")
	t.Append("2", "384", "2025-11-01", "01:01", "")
	return t
}

func TestSelectAndColumn(t *testing.T) {
	tbl := sampleTable()

	sel, err := tbl.Select("PM25", "Time_Stamp")
	require.NoError(t, err)
	assert.Equal(t, []string{"PM25", "Time_Stamp"}, sel.Columns)
	assert.Equal(t, [][]string{{"4.5", "1"}, {"", "2"}}, sel.Rows)

	_, err = tbl.Select("PM25", "PM10", "IAQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PM10, IAQ")

	col, err := tbl.Column("Time")
	require.NoError(t, err)
	assert.Equal(t, []string{"01:00", "01:01"}, col)
	assert.Equal(t, -1, tbl.ColumnIndex("Condition"))
}

func TestCSVRoundTripOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale,data\n", 50)), 0o644))

	tbl := sampleTable()
	require.NoError(t, WriteCSV(path, tbl))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, tbl, got)
}

func TestDecodeCSVEmpty(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, qaerrors.IsFileFormat(err))
}

func TestEncodeParquet(t *testing.T) {
	tbl := sampleTable()
	tbl.Columns = append(tbl.Columns, "Notes")
	tbl.Rows[0] = append(tbl.Rows[0], "ok")

	data, err := EncodeParquet(tbl)
	require.NoError(t, err)
	require.True(t, len(data) > 8)
	assert.Equal(t, "PAR1", string(data[:4]))
	assert.Equal(t, "PAR1", string(data[len(data)-4:]))

	pr, err := reader.NewParquetReader(parquetbuffer.NewBufferFileFromBytes(data), nil, 1)
	require.NoError(t, err)
	defer pr.ReadStop()
	assert.Equal(t, int64(2), pr.GetNumRows())
}

func TestEncodeParquetRejectsBadNumber(t *testing.T) {
	tbl := New("Time_Stamp", "PM25")
	tbl.Append("one", "4.5")

	_, err := EncodeParquet(tbl)
	assert.Error(t, err)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, sampleTable()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Time_Stamp", "Instrument_ID", "Date", "Time", "PM25"}, rows[0])
	assert.Equal(t, "4.5", rows[1][4])

	typ, err := f.GetCellType(DefaultSheet, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
}

func TestFormats(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCSV, "CSV": FormatCSV, "parquet": FormatParquet, "excel": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("json")
	assert.Error(t, err)

	assert.Equal(t, "out/master.parquet", PathFor("out/master.csv", FormatParquet))
	assert.Equal(t, "out/master.xlsx", PathFor("out/master.parquet", FormatXLSX))
	assert.Equal(t, "out/master.txt", PathFor("out/master.txt", FormatXLSX))
}

func TestWriteDispatch(t *testing.T) {
	dir := t.TempDir()
	for _, f := range Formats() {
		path := filepath.Join(dir, "t"+f.Extension())
		require.NoError(t, Write(path, sampleTable(), f))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Error(t, Write(filepath.Join(dir, "t.json"), sampleTable(), Format("json")))
}
