package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aarondulong/EH804Project/codebook"
	"github.com/Aarondulong/EH804Project/metadata"
	"github.com/Aarondulong/EH804Project/qaerrors"
)

const modpmExport = `deviceModel,MOD-PM
deviceID,MOD-PM-00384
deviceSN,00384
timestamp_iso,opc_pm25,pm25_env,opc_pm10,pm10_env,sample_rh,sample_temp,flag,extra
2025-11-01T01:00:05Z,4.5,4.1,9.0,8.2,41.2,18.5,0,x
2025-11-01T01:00:35Z,nan,4.3,,8.4,41.0,18.4,0,y
`

func TestReadParticulateExport(t *testing.T) {
	f, err := Read(strings.NewReader(modpmExport), Particulate)
	require.NoError(t, err)

	assert.Equal(t, DeviceHeader{Model: "MOD-PM", DeviceID: "MOD-PM-00384", Serial: "00384"}, f.Header)
	assert.Equal(t, metadata.InstrumentID("384"), f.Header.InstrumentID())
	assert.Equal(t, []Channel{ChannelPM25, ChannelPM10, ChannelPM25Env, ChannelPM10Env, ChannelRH, ChannelTemp, ChannelFlag}, f.Columns)

	require.Len(t, f.Records, 2)
	first := f.Records[0]
	assert.Equal(t, time.Date(2025, 11, 1, 1, 0, 5, 0, time.UTC), first.Timestamp)
	assert.Equal(t, 5, first.Line)
	require.NotNil(t, first.Value(ChannelPM25))
	assert.InDelta(t, 4.5, *first.Value(ChannelPM25), 1e-9)
	_, hasExtra := first.Values["extra"]
	assert.False(t, hasExtra)

	second := f.Records[1]
	assert.Nil(t, second.Value(ChannelPM25), "nan is a missing reading")
	assert.Nil(t, second.Value(ChannelPM10), "empty cell is a missing reading")
	assert.Equal(t, 6, second.Line)
}

func TestReadIgnoresMalformedPreambleLines(t *testing.T) {
	export := "garbage line without comma\n,\ndeviceSN,00378\r\n" +
		"timestamp_iso,opc_pm25,opc_pm10\n2025-11-01 01:00:00,1,2\n"

	f, err := Read(strings.NewReader(export), Particulate)
	require.NoError(t, err)
	assert.Equal(t, "00378", f.Header.Serial)
	assert.Empty(t, f.Header.Model)
	assert.Equal(t, metadata.InstrumentID("378"), f.Header.InstrumentID())
	assert.Equal(t, []Channel{ChannelPM25, ChannelPM10}, f.Columns)
}

func TestReadFormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		export string
		format Format
	}{
		{"short preamble", "deviceModel,MOD-PM\ndeviceSN,00384", Particulate},
		{"no header row", "deviceModel,MOD-PM\ndeviceID,x\ndeviceSN,00384\n", Particulate},
		{"missing pm10", "a,b\nc,d\ne,f\ntimestamp_iso,opc_pm25\n2025-11-01T01:00:00Z,3\n", Particulate},
		{"missing timestamp", "a,b\nc,d\ne,f\ntime_utc,opc_pm25,opc_pm10\n", Particulate},
		{"gas without iaq", "timestamp,temperature\n2025-11-01T01:00:00Z,20\n", Gas},
		{"gas with split date and time", "date,time,iaq\n2025-11-01,01:00:00,20\n", Gas},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.export), tt.format)
			require.Error(t, err)
			assert.True(t, qaerrors.IsFileFormat(err), "got %v", err)
		})
	}
}

func TestReadUnparseableTimestampIsFatal(t *testing.T) {
	export := "timestamp,iaq\n2025-11-01T01:00:00Z,25\nnot-a-time,30\n"

	_, err := Read(strings.NewReader(export), Gas)
	require.Error(t, err)
	assert.True(t, qaerrors.IsTimestampParse(err))
	assert.Contains(t, err.Error(), "line=3")
}

func TestReadGasExportWithAliases(t *testing.T) {
	export := "\xEF\xBB\xBFDatetime,IAQ_Index,Temp,pressure_hpa\n" +
		"2025-10-25 14:00:15,52.5,21.0,1013\n" +
		"2025-10-25 14:00:45+02:00,abc,21.1,1012\n"

	f, err := Read(strings.NewReader(export), Gas)
	require.NoError(t, err)
	assert.Equal(t, DeviceHeader{}, f.Header)
	assert.Equal(t, []Channel{ChannelIAQ, ChannelGasTemp, ChannelPressure}, f.Columns)
	require.Len(t, f.Records, 2)
	assert.InDelta(t, 52.5, *f.Records[0].Value(ChannelIAQ), 1e-9)
	assert.Nil(t, f.Records[1].Value(ChannelIAQ))
	assert.Equal(t, time.Date(2025, 10, 25, 12, 0, 45, 0, time.UTC), f.Records[1].Timestamp)
}

func TestReadTimestampAliasPrecedence(t *testing.T) {
	export := "time,Datetime,iaq\n01:00:00,2025-11-01 01:00:00,20\n"

	f, err := Read(strings.NewReader(export), Gas)
	require.NoError(t, err)
	require.Len(t, f.Records, 1)
	assert.Equal(t, time.Date(2025, 11, 1, 1, 0, 0, 0, time.UTC), f.Records[0].Timestamp)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CandleTest00384-1101.csv")
	require.NoError(t, os.WriteFile(path, []byte(modpmExport), 0o644))

	f, err := ReadFile(path, Particulate)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.Len(t, f.Records, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"), Particulate)
	require.Error(t, err)
	typ, ok := qaerrors.TypeOf(err)
	require.True(t, ok)
	assert.Equal(t, qaerrors.ErrTypeIO, typ)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 10, 7, 17, 23, 0, 0, time.UTC)
	for _, in := range []string{
		"2025-10-07T17:23:00Z",
		"2025-10-07 17:23:00+00:00",
		"2025-10-07 17:23:00",
		"2025-10-7 17:23:00",
		"2025-10-07T19:23:00+02:00",
		"2025-10-07 17:23",
		"2025/10/07 17:23:00",
		"2025-10-07 17:23:00 UTC",
		"2025-10-07 17:23:00 GMT",
	} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s -> %s", in, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	_, err := ParseTimestamp("17:23")
	assert.Error(t, err)
	_, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestReadRejectsZoneAbbreviations(t *testing.T) {
	for _, zone := range []string{"EST", "CET", "PDT"} {
		t.Run(zone, func(t *testing.T) {
			export := "timestamp,iaq\n2025-10-25 10:00:00 " + zone + ",25\n"

			_, err := Read(strings.NewReader(export), Gas)
			require.Error(t, err)
			assert.True(t, qaerrors.IsTimestampParse(err), "got %v", err)

			_, err = ParseTimestamp("2025-10-25 10:00:00 " + zone)
			assert.Error(t, err)
		})
	}
}

func TestFormatByName(t *testing.T) {
	f, err := FormatByName(" MODPM ")
	require.NoError(t, err)
	assert.Equal(t, codebook.FamilyParticulate, f.Family)
	assert.Equal(t, 3, f.PreambleLines)

	g, err := FormatByName("gas")
	require.NoError(t, err)
	assert.Equal(t, []Channel{ChannelIAQ, ChannelGasTemp, ChannelGasRH, ChannelPressure, ChannelGasOhms}, g.Channels())

	_, err = FormatByName("purpleair")
	assert.Error(t, err)
}
