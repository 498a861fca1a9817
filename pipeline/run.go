package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aarondulong/EH804Project/ingest"
	"github.com/Aarondulong/EH804Project/manifest"
	"github.com/Aarondulong/EH804Project/metadata"
	"github.com/Aarondulong/EH804Project/qaerrors"
	"github.com/Aarondulong/EH804Project/table"
)

// ResampledPrefix is prepended to the output file name of the resampled table.
const ResampledPrefix = "Resampled"

// Run cleans one export file and writes the filtered and resampled tables. Both
// tables are built before either is written. A failed write aborts the run and
// removes the outputs it had already written.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.InputPath) == "" {
		return nil, qaerrors.NewConfigError("input path is required", nil)
	}
	if strings.TrimSpace(opts.OutputPath) == "" {
		return nil, qaerrors.NewConfigError("output path is required", nil)
	}
	if !opts.Start.IsZero() && !opts.End.IsZero() && opts.Start.After(opts.End) {
		return nil, qaerrors.NewConfigError("start is after end", nil).
			WithContext("start", opts.Start.Format(time.RFC3339)).
			WithContext("end", opts.End.Format(time.RFC3339))
	}
	format, err := ingest.FormatFor(opts.Family)
	if err != nil {
		return nil, qaerrors.NewConfigError("select input format", err)
	}
	outFormat := opts.Format
	if outFormat == "" {
		outFormat = table.FormatCSV
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("input", opts.InputPath), slog.String("family", string(opts.Family)))

	file, err := ingest.ReadFile(opts.InputPath, format)
	if err != nil {
		return nil, err
	}
	log.Debug("export read", slog.Int("records", len(file.Records)), slog.Int("channels", len(file.Columns)))
	source, err := manifest.DescribeSource(opts.InputPath)
	if err != nil {
		return nil, err
	}

	filtered := FilterWindow(file.Records, opts.Start, opts.End)
	resampled := Resample(filtered, interval)
	if len(filtered) == 0 {
		log.Warn("no records inside the time window",
			slog.Time("start", opts.Start), slog.Time("end", opts.End))
	}

	id := instrumentID(opts.InstrumentID, file.Header)
	labels := ResolveLabels(resampled, id, opts.Labels)
	log.Debug("labels resolved",
		slog.String("instrument_id", string(id)),
		slog.String("condition", labels.Condition),
		slog.String("session", labels.Session),
		slog.String("prox_to_xroad", labels.Proximity))

	filteredTable, err := Normalize(TaggedTable(Tag(fromRaw(filtered), id, labels), file.Columns), opts.Family)
	if err != nil {
		return nil, fmt.Errorf("normalize filtered table: %w", err)
	}
	resampledTable, err := Normalize(TaggedTable(Tag(resampled, id, labels), file.Columns), opts.Family)
	if err != nil {
		return nil, fmt.Errorf("normalize resampled table: %w", err)
	}

	filteredPath := table.PathFor(opts.OutputPath, outFormat)
	resampledPath := ResampledPath(filteredPath)
	var written artifacts
	if err := table.Write(filteredPath, filteredTable, outFormat); err != nil {
		return nil, fmt.Errorf("write filtered table: %w", err)
	}
	written = append(written, filteredPath)
	if err := table.Write(resampledPath, resampledTable, outFormat); err != nil {
		written.remove(log)
		return nil, fmt.Errorf("write resampled table: %w", err)
	}
	written = append(written, resampledPath)

	manifestPath := manifest.PathFor(filteredPath)
	m := &manifest.Manifest{
		FormatVersion: manifest.FormatVersion,
		GeneratedAt:   time.Now().UTC(),
		RunID:         opts.RunID,
		Source:        source,
		Family:        string(opts.Family),
		Device: manifest.Device{
			Model:        file.Header.Model,
			DeviceID:     file.Header.DeviceID,
			Serial:       file.Header.Serial,
			InstrumentID: string(id),
		},
		Labels:    manifest.Labels(labels),
		Window:    manifest.Window{Start: formatBound(opts.Start), End: formatBound(opts.End)},
		IntervalS: interval.Seconds(),
		Tables: []manifest.TableInfo{
			tableInfo("filtered", filteredPath, outFormat, filteredTable),
			tableInfo("resampled", resampledPath, outFormat, resampledTable),
		},
		Channels: manifest.Summarize(filtered, file.Columns),
		Schema: manifest.SchemaDetails{
			Codebook: string(opts.Family),
			Notes: []string{
				"Time_Stamp is a 1-based row index; Date and Time are UTC.",
				"Resampled rows are means of present readings per bucket; empty buckets are omitted.",
				"Empty numeric cells are missing readings.",
			},
		},
	}
	if err := manifest.Write(manifestPath, m); err != nil {
		written.remove(log)
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	res := &Result{
		InputPath:     opts.InputPath,
		FilteredPath:  filteredPath,
		ResampledPath: resampledPath,
		ManifestPath:  manifestPath,
		InstrumentID:  id,
		Labels:        labels,
		RawRows:       len(file.Records),
		FilteredRows:  filteredTable.Len(),
		ResampledRows: resampledTable.Len(),
	}
	log.Info("run cleaned",
		slog.String("filtered_path", res.FilteredPath),
		slog.String("resampled_path", res.ResampledPath),
		slog.Int("filtered_rows", res.FilteredRows),
		slog.Int("resampled_rows", res.ResampledRows))
	return res, nil
}

// artifacts are the outputs of a run written so far.
type artifacts []string

// remove deletes every written artifact so a failed run leaves nothing behind.
func (a artifacts) remove(log *slog.Logger) {
	for _, path := range a {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn("remove partial output", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
}

// ResampledPath returns the path of the resampled table written next to path.
func ResampledPath(path string) string {
	return filepath.Join(filepath.Dir(path), ResampledPrefix+filepath.Base(path))
}

func tableInfo(role, path string, format table.Format, t *table.Table) manifest.TableInfo {
	return manifest.TableInfo{
		Role:    role,
		Path:    filepath.Base(path),
		Format:  string(format),
		Rows:    t.Len(),
		Columns: t.Columns,
	}
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func instrumentID(override string, header ingest.DeviceHeader) metadata.InstrumentID {
	if id := metadata.NormalizeInstrumentID(override); id != "" {
		return id
	}
	if id := header.InstrumentID(); id != "" {
		return id
	}
	return metadata.Unknown
}
