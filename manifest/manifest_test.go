package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aarondulong/EH804Project/ingest"
	"github.com/Aarondulong/EH804Project/qaerrors"
)

func TestPathFor(t *testing.T) {
	cases := map[string]string{
		"out/Run1.csv":       "out/Run1.manifest.json",
		"Run1.parquet":       "Run1.manifest.json",
		"out/noext":          "out/noext.manifest.json",
		"a.b/Run.final.xlsx": "a.b/Run.final.manifest.json",
	}
	for in, want := range cases {
		if got := PathFor(in); got != want {
			t.Fatalf("PathFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDescribeSource(t *testing.T) {
	data := []byte("timestamp,iaq\n2025-11-01T00:00:00Z,50\n")
	path := filepath.Join(t.TempDir(), "gas.csv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	src, err := DescribeSource(path)
	if err != nil {
		t.Fatalf("DescribeSource error: %v", err)
	}
	sum := sha256.Sum256(data)
	if src.SHA256 != hex.EncodeToString(sum[:]) {
		t.Fatalf("unexpected sha256 %s", src.SHA256)
	}
	if src.SizeBytes != int64(len(data)) || src.Name != "gas.csv" {
		t.Fatalf("unexpected source %+v", src)
	}

	if _, err := DescribeSource(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "Run1.manifest.json")
	m := &Manifest{
		FormatVersion: FormatVersion,
		GeneratedAt:   time.Date(2025, 10, 25, 15, 0, 0, 0, time.UTC),
		Family:        "gas",
		Labels:        Labels{Condition: "Control", Session: "Unknown", Proximity: "Near"},
		Tables:        []TableInfo{{Role: "resampled", Path: "ResampledRun1.csv", Format: "csv", Rows: 4, Columns: []string{"Time_Stamp", "IAQ"}}},
	}
	if err := Write(path, m); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got.FormatVersion != FormatVersion || got.Labels != m.Labels || !got.GeneratedAt.Equal(m.GeneratedAt) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Tables) != 1 || got.Tables[0].Rows != 4 {
		t.Fatalf("unexpected tables %+v", got.Tables)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}
	if _, err := Read(path); !qaerrors.IsFileFormat(err) {
		t.Fatalf("expected file format error, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	v := func(x float64) *float64 { return &x }
	records := []ingest.RawRecord{
		{Values: map[ingest.Channel]*float64{ingest.ChannelPM25: v(2), ingest.ChannelPM10: nil}},
		{Values: map[ingest.Channel]*float64{ingest.ChannelPM25: v(8)}},
		{Values: map[ingest.Channel]*float64{ingest.ChannelPM25: v(5)}},
	}

	stats := Summarize(records, []ingest.Channel{ingest.ChannelPM25, ingest.ChannelPM10})
	if len(stats) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(stats))
	}
	pm25 := stats[0]
	if pm25.Channel != "opc_pm25" || pm25.Present != 3 || pm25.Missing != 0 {
		t.Fatalf("unexpected pm25 stats %+v", pm25)
	}
	if *pm25.Min != 2 || *pm25.Max != 8 || *pm25.Mean != 5 {
		t.Fatalf("unexpected pm25 range min=%v max=%v mean=%v", *pm25.Min, *pm25.Max, *pm25.Mean)
	}
	pm10 := stats[1]
	if pm10.Present != 0 || pm10.Missing != 3 || pm10.Mean != nil {
		t.Fatalf("unexpected pm10 stats %+v", pm10)
	}
}
