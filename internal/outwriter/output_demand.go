package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/internal/parquet"
	"github.com/capsight/capsight/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDemandResults outputs a demand model report, dispatching based on the
// output format configured.
func WriteDemandResults(result schema.DemandModelResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDemandCSV(w, result)
		}, "Wrote CSV")

	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := parquet.ConvertDemandRecords(result.Entries)
		if err := parquet.WriteDemandParquet(rows, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDemandTable(w, result, cfg)
		}, "Wrote table")
	}
}

// writeDemandTable generates and writes the human-readable table.
func writeDemandTable(w io.Writer, result schema.DemandModelResult, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"User", "Date", "Hours", "Source", "Project", "Task"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxUserWidth := GetMaxTableUserWidth(cfg)
	var data [][]string
	for _, e := range result.Entries {
		data = append(data, []string{
			TruncateID(e.UserID, maxUserWidth),
			e.Date,
			fmtHours(e.Hours),
			string(e.Source),
			e.ProjectID,
			e.TaskID,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Modeled: %s h, unmodeled: %s h\n",
		fmtHours(result.DemandModeledHours), fmtHours(result.DemandUnmodeledHours)); err != nil {
		return err
	}
	return writeUnmodeledSummary(w, result.UnmodeledReasons)
}

// writeDemandCSV writes one row per demand entry.
func writeDemandCSV(w io.Writer, result schema.DemandModelResult) error {
	header := []string{"user", "date", "demand_hours", "source", "project", "task"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range result.Entries {
			rec := []string{
				e.UserID,
				e.Date,
				fmtHours(e.Hours),
				string(e.Source),
				e.ProjectID,
				e.TaskID,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
