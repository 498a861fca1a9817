package pipeline

import (
	"log/slog"
	"time"

	"github.com/Aarondulong/EH804Project/codebook"
	"github.com/Aarondulong/EH804Project/ingest"
	"github.com/Aarondulong/EH804Project/metadata"
	"github.com/Aarondulong/EH804Project/table"
)

// DefaultInterval is the resampling bucket width.
const DefaultInterval = time.Minute

// Options configures one cleaning run over a single export file.
type Options struct {
	InputPath  string
	Family     codebook.Family
	OutputPath string // filtered table; the resampled table is written next to it
	Start      time.Time
	End        time.Time
	Interval   time.Duration

	// InstrumentID overrides the id derived from the export preamble.
	InstrumentID string
	Labels       metadata.Snapshot
	Format       table.Format
	RunID        string // recorded in the run manifest
	Logger       *slog.Logger
}

// Result describes a completed run.
type Result struct {
	InputPath     string                `json:"input_path"`
	FilteredPath  string                `json:"filtered_path"`
	ResampledPath string                `json:"resampled_path"`
	ManifestPath  string                `json:"manifest_path"`
	InstrumentID  metadata.InstrumentID `json:"instrument_id"`
	Labels        Labels                `json:"labels"`
	RawRows       int                   `json:"raw_rows"`
	FilteredRows  int                   `json:"filtered_rows"`
	ResampledRows int                   `json:"resampled_rows"`
}

// Labels are the metadata tags applied to every row of a run.
type Labels struct {
	Condition string `json:"condition"`
	Session   string `json:"session"`
	Proximity string `json:"prox_to_xroad"`
}

// CleanedRecord is one output row, either a filtered raw record or a resampled bucket.
type CleanedRecord struct {
	Index        int
	Timestamp    time.Time
	InstrumentID metadata.InstrumentID
	Date         metadata.DateKey
	Time         string
	Condition    string
	Session      string
	Proximity    string
	Values       map[ingest.Channel]*float64
}
