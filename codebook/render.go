package codebook

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown renders the codebook of every family as markdown tables.
func WriteMarkdown(w io.Writer) error {
	var b strings.Builder
	b.WriteString("# Codebook\n")
	for _, f := range Families() {
		fmt.Fprintf(&b, "\n## %s\n\n", f)
		b.WriteString("| # | Column | Type | Unit | Description |\n")
		b.WriteString("|---|--------|------|------|-------------|\n")
		for i, c := range families[f] {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, c.Name, c.Kind, c.Unit, c.Description)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCSV renders the codebook as one row per family column.
func WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"family", "position", "column", "type", "unit", "description"}); err != nil {
		return err
	}
	for _, f := range Families() {
		for i, c := range families[f] {
			row := []string{string(f), fmt.Sprint(i + 1), c.Name, string(c.Kind), c.Unit, c.Description}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
