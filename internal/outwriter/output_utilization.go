package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/internal/parquet"
	"github.com/capsight/capsight/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteUtilizationResults outputs a utilization report, dispatching based on
// the output format configured.
func WriteUtilizationResults(result schema.UtilizationResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeUtilizationCSV(w, result)
		}, "Wrote CSV")

	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := parquet.ConvertUtilizationRecords(result.Daily, contract.GetPlainLabel)
		if err := parquet.WriteUtilizationParquet(rows, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil

	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeUtilizationTable(w, result, cfg)
		}, "Wrote table")
	}
}

// writeUtilizationTable generates and writes the human-readable table.
func writeUtilizationTable(w io.Writer, result schema.UtilizationResult, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"User", "Date", "Capacity", "Demand", "Util", "OverBy", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxUserWidth := GetMaxTableUserWidth(cfg)
	var data [][]string
	for _, d := range result.Daily {
		util := float64(d.Utilization)
		label := contract.GetPlainLabel(util)
		if cfg.UseColors {
			label = contract.GetColorLabel(util)
		}
		data = append(data, []string{
			TruncateID(d.UserID, maxUserWidth),
			d.Date,
			fmtHours(d.CapacityHours),
			fmtHours(d.DemandHours),
			contract.FormatRatio(util),
			fmtHours(d.OverByHours),
			label,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(result.Weekly) > 0 {
		if err := writeWeeklyTable(w, result.Weekly); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Totals: capacity %s h, demand %s h, average utilization %s (threshold %.2f)\n",
		fmtHours(result.TotalCapacityHours), fmtHours(result.TotalDemandHours),
		contract.FormatRatio(result.AverageUtilization), result.Threshold); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Overallocated users: %d\n", result.OverallocatedUserCount); err != nil {
		return err
	}
	return writeUnmodeledSummary(w, result.UnmodeledReasons)
}

// writeWeeklyTable renders the ISO-week rollups below the daily table.
func writeWeeklyTable(w io.Writer, weekly []schema.UserWeeklyRollup) error {
	if _, err := fmt.Fprintln(w, "Weekly rollup:"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"User", "Week", "Capacity", "Demand", "AvgUtil", "PeakUtil", "OverDays"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range weekly {
		data = append(data, []string{
			r.UserID,
			r.WeekStart,
			fmtHours(r.TotalCapacityHours),
			fmtHours(r.TotalDemandHours),
			contract.FormatRatio(r.AverageUtilization),
			contract.FormatRatio(float64(r.PeakDayUtilization)),
			strconv.Itoa(r.OverallocatedDays),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeUtilizationCSV writes the daily utilization records in CSV format.
func writeUtilizationCSV(w io.Writer, result schema.UtilizationResult) error {
	header := []string{"user", "date", "capacity_hours", "demand_hours", "utilization", "over_by_hours", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range result.Daily {
			util := float64(d.Utilization)
			rec := []string{
				d.UserID,
				d.Date,
				fmtHours(d.CapacityHours),
				fmtHours(d.DemandHours),
				contract.FormatRatio(util),
				fmtHours(d.OverByHours),
				contract.GetPlainLabel(util),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeUnmodeledSummary prints the data-quality tallies attached to a report.
func writeUnmodeledSummary(w io.Writer, reasons schema.UnmodeledReasons) error {
	if reasons == (schema.UnmodeledReasons{}) {
		return nil
	}
	_, err := fmt.Fprintf(w, "Unmodeled: %d tasks without assignee, %d without dates, %d projects with capacity disabled\n",
		reasons.NoAssignee, reasons.NoDates, reasons.CapacityDisabled)
	return err
}
