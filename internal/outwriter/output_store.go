package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCapacityResults outputs a capacity calendar, dispatching based on the
// output format configured. Maps carry no order, so rows are sorted by user
// and date for deterministic output.
func WriteCapacityResults(capMap schema.CapacityMap, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, capMap)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"user", "date", "capacity_hours"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return forEachCapacityRow(capMap, func(userID, date string, hours float64) error {
					return cw.Write([]string{userID, date, fmtHours(hours)})
				})
			})
		}, "Wrote CSV")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCapacityTable(w, capMap, cfg)
		}, "Wrote table")
	}
}

// writeCapacityTable generates and writes the human-readable calendar.
func writeCapacityTable(w io.Writer, capMap schema.CapacityMap, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"User", "Date", "Hours"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxUserWidth := GetMaxTableUserWidth(cfg)
	var data [][]string
	err := forEachCapacityRow(capMap, func(userID, date string, hours float64) error {
		data = append(data, []string{TruncateID(userID, maxUserWidth), date, fmtHours(hours)})
		return nil
	})
	if err != nil {
		return err
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Total capacity: %s h across %d users\n", fmtHours(capMap.TotalHours()), len(capMap))
	return err
}

// forEachCapacityRow walks the capacity map in sorted user/date order.
func forEachCapacityRow(capMap schema.CapacityMap, fn func(userID, date string, hours float64) error) error {
	users := make([]string, 0, len(capMap))
	for userID := range capMap {
		users = append(users, userID)
	}
	sort.Strings(users)

	for _, userID := range users {
		days := capMap[userID]
		dates := make([]string, 0, len(days))
		for date := range days {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		for _, date := range dates {
			if err := fn(userID, date, days[date]); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteStoreStatusResults outputs override store row counts per workspace.
func WriteStoreStatusResults(counts map[string]int, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, counts)
		}, "Wrote JSON")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStoreStatusTable(w, counts, cfg)
		}, "Wrote table")
	}
}

// writeStoreStatusTable generates and writes the human-readable counts.
func writeStoreStatusTable(w io.Writer, counts map[string]int, cfg *contract.Config) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintf(w, "Override store (%s) is empty\n", cfg.StoreBackend)
		return err
	}

	workspaces := make([]string, 0, len(counts))
	total := 0
	for workspace, count := range counts {
		workspaces = append(workspaces, workspace)
		total += count
	}
	sort.Strings(workspaces)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Workspace", "Overrides"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, workspace := range workspaces {
		data = append(data, []string{workspace, strconv.Itoa(counts[workspace])})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Backend: %s, total overrides: %d\n", cfg.StoreBackend, total)
	return err
}
