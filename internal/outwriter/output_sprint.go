package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSprintCapacityResults outputs a sprint capacity report, dispatching
// based on the output format configured. Parquet is not offered for the
// single-row sprint reports.
func WriteSprintCapacityResults(sprint *schema.Sprint, result schema.SprintCapacityResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"sprint", "capacity_hours", "load_hours", "remaining_hours",
				"committed_points", "completed_points", "remaining_points"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{
					sprint.ID,
					fmtHours(result.CapacityHours),
					fmtHours(result.LoadHours),
					fmtHours(result.RemainingHours),
					fmtPoints(result.CommittedStoryPoints),
					fmtPoints(result.CompletedStoryPoints),
					fmtPoints(result.RemainingStoryPoints),
				})
			})
		}, "Wrote CSV")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSprintCapacityText(w, sprint, result)
		}, "Wrote report")
	}
}

// writeSprintCapacityText renders the single-sprint capacity summary.
func writeSprintCapacityText(w io.Writer, sprint *schema.Sprint, result schema.SprintCapacityResult) error {
	if _, err := fmt.Fprintf(w, "Sprint %s (%s, %s → %s)\n",
		sprint.Name, sprint.Status, sprint.StartDate, sprint.EndDate); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Capacity", "Load", "Remaining", "Committed", "Completed", "Open"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{{
		fmtHours(result.CapacityHours) + "h",
		fmtHours(result.LoadHours) + "h",
		fmtHours(result.RemainingHours) + "h",
		fmtPoints(result.CommittedStoryPoints) + "pt",
		fmtPoints(result.CompletedStoryPoints) + "pt",
		fmtPoints(result.RemainingStoryPoints) + "pt",
	}}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	basis := result.CapacityBasis
	_, err := fmt.Fprintf(w, "Basis: %d workdays x %.1fh/day, %.1fh/point, %d allocations (%s), load from %s\n",
		basis.Workdays, basis.HoursPerDay, basis.PointsToHoursRatio,
		basis.AllocationCount, basis.AllocationSource, basis.LoadSource)
	return err
}

// WriteBurndownResults outputs a sprint burndown series, dispatching based on
// the output format configured.
func WriteBurndownResults(sprint *schema.Sprint, result schema.BurndownResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBurndownCSV(w, result)
		}, "Wrote CSV")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBurndownTable(w, sprint, result)
		}, "Wrote table")
	}
}

// writeBurndownTable generates and writes the human-readable series.
func writeBurndownTable(w io.Writer, sprint *schema.Sprint, result schema.BurndownResult) error {
	if _, err := fmt.Fprintf(w, "Burndown for %s (%s scope, %s total points)\n",
		sprint.Name, result.ScopeMode, fmtPoints(result.TotalPoints)); err != nil {
		return err
	}
	if len(result.Buckets) == 0 {
		_, err := fmt.Fprintln(w, "No series: sprint has no points or an empty range")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Remaining", "Completed", "Ideal"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, b := range result.Buckets {
		data = append(data, []string{
			b.Date,
			fmtPoints(b.RemainingPoints),
			fmtPoints(b.CompletedPoints),
			fmtHours(b.IdealRemaining),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeBurndownCSV writes one row per calendar day.
func writeBurndownCSV(w io.Writer, result schema.BurndownResult) error {
	header := []string{"date", "total_points", "remaining_points", "completed_points", "ideal_remaining"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, b := range result.Buckets {
			rec := []string{
				b.Date,
				fmtPoints(b.TotalPoints),
				fmtPoints(b.RemainingPoints),
				fmtPoints(b.CompletedPoints),
				fmtHours(b.IdealRemaining),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteVelocityResults outputs a project velocity report, dispatching based
// on the output format configured.
func WriteVelocityResults(projectID string, result schema.VelocityResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVelocityCSV(w, result)
		}, "Wrote CSV")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVelocityTable(w, projectID, result)
		}, "Wrote table")
	}
}

// writeVelocityTable generates and writes the human-readable table.
func writeVelocityTable(w io.Writer, projectID string, result schema.VelocityResult) error {
	if len(result.Sprints) == 0 {
		_, err := fmt.Fprintf(w, "Project %s has no completed sprints\n", projectID)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Sprint", "Ended", "Committed", "Completed", "Frozen"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, s := range result.Sprints {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Name,
			s.EndDate,
			fmtPoints(s.CommittedPoints),
			fmtPoints(s.CompletedPoints),
			strconv.FormatBool(s.Frozen),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Rolling average: %s completed points over %d sprints\n",
		fmtPoints(result.RollingAverageCompletedPoints), len(result.Sprints))
	return err
}

// writeVelocityCSV writes one row per completed sprint.
func writeVelocityCSV(w io.Writer, result schema.VelocityResult) error {
	header := []string{"rank", "sprint", "name", "end_date", "committed_points", "completed_points", "frozen"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, s := range result.Sprints {
			rec := []string{
				strconv.Itoa(i + 1),
				s.SprintID,
				s.Name,
				s.EndDate,
				fmtPoints(s.CommittedPoints),
				fmtPoints(s.CompletedPoints),
				strconv.FormatBool(s.Frozen),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
