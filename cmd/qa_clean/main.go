package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aarondulong/EH804Project/codebook"
	"github.com/Aarondulong/EH804Project/config"
	"github.com/Aarondulong/EH804Project/ingest"
	"github.com/Aarondulong/EH804Project/logging"
	"github.com/Aarondulong/EH804Project/metadata"
	"github.com/Aarondulong/EH804Project/pipeline"
	"github.com/Aarondulong/EH804Project/table"
)

func main() {
	var (
		inPath     = flag.String("in", "", "Path to the instrument export CSV")
		family     = flag.String("family", string(codebook.FamilyParticulate), "Instrument family: modpm|gas")
		outPath    = flag.String("out", "", "Filtered output table; the resampled table is written next to it")
		start      = flag.String("start", "", "Window start (inclusive), e.g. 2025-10-25T13:00:00Z")
		end        = flag.String("end", "", "Window end (inclusive)")
		instrument = flag.String("instrument", "", "Instrument id override, e.g. MOD-PM-00384")
		interval   = flag.Duration("interval", 0, "Resample interval (default from QA_PIPELINE_INTERVAL or 1m)")
		format     = flag.String("format", "", "Output format: csv|parquet|xlsx (default from QA_OUTPUT_FORMAT or csv)")
		locations  labelFlag
		treatments labelFlag
		sessions   labelFlag
	)
	flag.Var(&locations, "location", "Instrument location label INSTRUMENT=LABEL (repeatable)")
	flag.Var(&treatments, "treatment", "Treatment label YYYY-MM-DD=LABEL (repeatable)")
	flag.Var(&sessions, "session", "Session label YYYY-MM-DD=LABEL (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --in export.csv --out cleaned.csv [--family modpm|gas] [--start T] [--end T] [--location MOD-PM-00384=Near]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*inPath) == "" || strings.TrimSpace(*outPath) == "" {
		flag.Usage()
		os.Exit(2)
	}

	settings, err := config.Load()
	if err != nil {
		fail(err)
	}
	logger, err := logging.InitializeLogger(settings.Logging)
	if err != nil {
		fail(err)
	}
	defer logging.CloseLogFile()
	logger, runID := logging.WithRunID(logger)

	tables := metadata.New()
	for _, l := range locations {
		if err := tables.SetLocation(l.key, l.label); err != nil {
			fail(err)
		}
	}
	for _, l := range treatments {
		if err := tables.SetTreatment(l.key, l.label); err != nil {
			fail(err)
		}
	}
	for _, l := range sessions {
		if err := tables.SetSessionLabel(l.key, l.label); err != nil {
			fail(err)
		}
	}

	startT, err := parseBound(*start)
	if err != nil {
		fail(fmt.Errorf("--start: %w", err))
	}
	endT, err := parseBound(*end)
	if err != nil {
		fail(fmt.Errorf("--end: %w", err))
	}
	if *format == "" {
		*format = settings.Output.Format
	}
	outFormat, err := table.ParseFormat(*format)
	if err != nil {
		fail(err)
	}
	if *interval == 0 {
		*interval = settings.Pipeline.Interval
	}

	result, err := pipeline.Run(pipeline.Options{
		InputPath:    *inPath,
		Family:       codebook.Family(strings.ToLower(strings.TrimSpace(*family))),
		OutputPath:   *outPath,
		Start:        startT,
		End:          endT,
		Interval:     *interval,
		InstrumentID: *instrument,
		Labels:       tables.Snapshot(),
		Format:       outFormat,
		RunID:        runID,
		Logger:       logger,
	})
	if err != nil {
		fail(err)
	}

	fmt.Printf("qa_clean complete\n")
	fmt.Printf("Instrument:      %s\n", result.InstrumentID)
	fmt.Printf("Condition:       %s\n", result.Labels.Condition)
	fmt.Printf("Session:         %s\n", result.Labels.Session)
	fmt.Printf("Prox_to_xroad:   %s\n", result.Labels.Proximity)
	fmt.Printf("Filtered table:  %s (%d of %d rows)\n", result.FilteredPath, result.FilteredRows, result.RawRows)
	fmt.Printf("Resampled table: %s (%d rows)\n", result.ResampledPath, result.ResampledRows)
	fmt.Printf("Manifest:        %s\n", result.ManifestPath)
}

type labelPair struct {
	key   string
	label string
}

type labelFlag []labelPair

func (f *labelFlag) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(*f))
	for i, p := range *f {
		parts[i] = p.key + "=" + p.label
	}
	return strings.Join(parts, ",")
}

func (f *labelFlag) Set(v string) error {
	key, label, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected KEY=LABEL, got %q", v)
	}
	*f = append(*f, labelPair{key: strings.TrimSpace(key), label: label})
	return nil
}

func parseBound(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return ingest.ParseTimestamp(s)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "qa_clean failed: %v\n", err)
	_ = logging.CloseLogFile()
	os.Exit(1)
}
