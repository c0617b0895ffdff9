package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/internal/parquet"
	"github.com/capsight/capsight/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteOverallocationResults outputs an overallocation report, dispatching
// based on the output format configured.
func WriteOverallocationResults(result schema.OverallocationResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverallocationCSV(w, result)
		}, "Wrote CSV")

	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := parquet.ConvertOverallocationRecords(result.Entries)
		if err := parquet.WriteOverallocationParquet(rows, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverallocationTable(w, result, cfg)
		}, "Wrote table")
	}
}

// writeOverallocationTable generates and writes the human-readable table.
func writeOverallocationTable(w io.Writer, result schema.OverallocationResult, cfg *contract.Config) error {
	if len(result.Entries) == 0 {
		_, err := fmt.Fprintf(w, "No overallocated days at threshold %.2f\n", result.Threshold)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "User", "Date", "Capacity", "Demand", "OverBy", "Causes"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxUserWidth := GetMaxTableUserWidth(cfg)
	var data [][]string
	for i, e := range result.Entries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			TruncateID(e.UserID, maxUserWidth),
			e.Date,
			fmtHours(e.CapacityHours),
			fmtHours(e.DemandHours),
			fmtHours(e.OverByHours),
			formatTaskRefs(e.Tasks),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Overallocated days: %d across %d users (threshold %.2f)\n",
		result.TotalOverallocatedDays, result.AffectedUserCount, result.Threshold)
	return err
}

// writeOverallocationCSV writes one row per overallocated (user, day).
func writeOverallocationCSV(w io.Writer, result schema.OverallocationResult) error {
	header := []string{"rank", "user", "date", "capacity_hours", "demand_hours", "over_by_hours", "causes"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, e := range result.Entries {
			rec := []string{
				strconv.Itoa(i + 1),
				e.UserID,
				e.Date,
				fmtHours(e.CapacityHours),
				fmtHours(e.DemandHours),
				fmtHours(e.OverByHours),
				formatTaskRefs(e.Tasks),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatTaskRefs joins the contributing task/allocation causes of one entry.
// Allocation fallback entries carry no task ID, so the source label stands in.
func formatTaskRefs(refs []schema.OverallocationTaskRef) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		name := ref.TaskID
		if name == "" {
			name = string(ref.Source)
		}
		parts = append(parts, fmt.Sprintf("%s (%sh)", name, fmtHours(ref.DemandHours)))
	}
	return strings.Join(parts, "|")
}
