package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Aarondulong/EH804Project/config"
	"github.com/Aarondulong/EH804Project/logging"
	"github.com/Aarondulong/EH804Project/pipeline"
)

func main() {
	jsonOut := flag.Bool("json", false, "Emit the experiment result as JSON")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <experiment.yaml>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	exp, err := config.LoadFile(flag.Arg(0))
	if err != nil {
		fail(err)
	}
	logger, err := logging.InitializeLogger(exp.Settings.Logging)
	if err != nil {
		fail(err)
	}
	defer logging.CloseLogFile()
	logger, runID := logging.WithRunID(logger)

	result, err := pipeline.RunExperiment(exp, logger, runID)
	if err != nil {
		fail(err)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fail(fmt.Errorf("json encode: %w", err))
		}
		return
	}

	fmt.Printf("Experiment complete (run %s)\n", runID)
	for _, r := range result.Runs {
		fmt.Printf("- %-6s %-10s %-10s %-10s %5d rows -> %s\n",
			r.InstrumentID, r.Labels.Condition, r.Labels.Session, r.Labels.Proximity, r.ResampledRows, r.ResampledPath)
	}
	for _, j := range result.Joins {
		fmt.Printf("- master %s: %d rows from %d tables (%s)\n", j.OutputPath, j.Rows, j.Inputs, j.Mode)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "experiment failed: %v\n", err)
	_ = logging.CloseLogFile()
	os.Exit(1)
}
