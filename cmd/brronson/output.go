package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"brronson/internal/ops"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// printBatchSummary renders the accounting block every mutating operation
// shares, then any per-item error details.
func printBatchSummary(out io.Writer, operation string, dryRun bool, fields ops.BatchFields) {
	mode := "live"
	if dryRun {
		mode = "dry run"
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Mode", mode},
			{"Found", strconv.Itoa(fields.Found)},
			{"Acted", strconv.Itoa(fields.Acted)},
			{"Skipped", strconv.Itoa(fields.Skipped)},
			{"Errors", strconv.Itoa(fields.Errors)},
			{"Batch limit reached", yesNo(fields.BatchLimitReached)},
			{"Remaining", strconv.Itoa(fields.Remaining)},
		},
		[]columnAlignment{alignLeft, alignRight}))
	if len(fields.ErrorDetails) > 0 {
		printList(out, fmt.Sprintf("%s errors", operation), fields.ErrorDetails)
	}
}

func printList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  %s\n", item)
	}
}
