package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Aarondulong/EH804Project/codebook"
)

func main() {
	var (
		format  = flag.String("format", "markdown", "Output format: markdown|csv")
		outPath = flag.String("out", "", "Write to this file instead of stdout")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [--format markdown|csv] [--out codebook.md]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var render func(io.Writer) error
	switch strings.ToLower(*format) {
	case "markdown", "md":
		render = codebook.WriteMarkdown
	case "csv":
		render = codebook.WriteCSV
	default:
		flag.Usage()
		os.Exit(2)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "codebook failed: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	if err := render(w); err != nil {
		fmt.Fprintf(os.Stderr, "codebook failed: %v\n", err)
		os.Exit(1)
	}
}
