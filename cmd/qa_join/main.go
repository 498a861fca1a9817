package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Aarondulong/EH804Project/config"
	"github.com/Aarondulong/EH804Project/logging"
	"github.com/Aarondulong/EH804Project/table"
)

func main() {
	var (
		outPath = flag.String("out", "", "Master table to write")
		mode    = flag.String("mode", "", "Join mode: strict|permissive (default from QA_OUTPUT_JOIN_MODE or strict)")
		format  = flag.String("format", "", "Output format: csv|parquet|xlsx (default from QA_OUTPUT_FORMAT or csv)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --out master.csv [flags] <cleaned.csv>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*outPath) == "" || flag.NArg() < 1 {
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

	if *mode == "" {
		*mode = settings.Output.JoinMode
	}
	joinMode, err := table.ParseJoinMode(*mode)
	if err != nil {
		fail(err)
	}
	if *format == "" {
		*format = settings.Output.Format
	}
	outFormat, err := table.ParseFormat(*format)
	if err != nil {
		fail(err)
	}

	dest := table.PathFor(*outPath, outFormat)
	joined, err := table.JoinFiles(dest, flag.Args(), joinMode, outFormat)
	if err != nil {
		fail(err)
	}
	logger.Info("master table written", "output", dest, "inputs", flag.NArg(), "rows", joined.Len())

	fmt.Printf("Join complete\n")
	fmt.Printf("Output:  %s\n", dest)
	fmt.Printf("Mode:    %s\n", joinMode)
	fmt.Printf("Inputs:  %d\n", flag.NArg())
	fmt.Printf("Rows:    %d\n", joined.Len())
	fmt.Printf("Columns: %s\n", strings.Join(joined.Columns, ","))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "join failed: %v\n", err)
	_ = logging.CloseLogFile()
	os.Exit(1)
}
