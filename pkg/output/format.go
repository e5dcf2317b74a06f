// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/omnicalc/pkg/constants"
	"github.com/iwvelando/omnicalc/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Row is one labelled value of a report.
type Row struct {
	Label string
	Value string
}

// Table is an optional grid printed after the rows, e.g. a schedule.
type Table struct {
	Header []string
	Rows   [][]string
}

// Report is a titled result. Rows and Table drive the pretty format; Data is
// what the JSON format encodes.
type Report struct {
	Title string
	Rows  []Row
	Table *Table
	Data  any
}

// Write renders the report in the requested format.
func Write(w io.Writer, format string, report Report) error {
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}
	if format == constants.OutputFormatJSON {
		return JSONFormat(w, report)
	}
	return PrettyFormat(w, report)
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report Report) error {
	p := message.NewPrinter(language.English)

	width := 0
	for _, row := range report.Rows {
		width = max(width, len(row.Label))
	}

	if _, err := p.Fprintf(w, "--- %s ---\n", report.Title); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if _, err := p.Fprintf(w, "%-*s : %s\n", width, row.Label, row.Value); err != nil {
			return err
		}
	}

	if report.Table == nil {
		return nil
	}
	if len(report.Rows) > 0 {
		fmt.Fprintln(w)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	underline := make([]string, len(report.Table.Header))
	for i, h := range report.Table.Header {
		underline[i] = strings.Repeat("_", len(h))
	}
	for _, line := range append([][]string{report.Table.Header, underline}, report.Table.Rows...) {
		fmt.Fprintf(tw, "%s\t\n", strings.Join(line, " |\t"))
	}
	return tw.Flush()
}

// JSONFormat outputs the report data as indented JSON.
func JSONFormat(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(report.Data); err != nil {
		return fmt.Errorf("failed to encode %s as JSON: %w", report.Title, err)
	}
	return nil
}
