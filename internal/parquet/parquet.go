// Package parquet provides data structures and functions for exporting
// capsight report data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"math"
	"os"

	"github.com/capsight/capsight/schema"
	"github.com/parquet-go/parquet-go"
)

// UtilizationRow represents one user-day utilization record for columnar export.
type UtilizationRow struct {
	// UserID is the user this row describes
	UserID string `parquet:"user_id,snappy"`

	// Date is the day in YYYY-MM-DD form
	Date string `parquet:"date,snappy"`

	// CapacityHours is the user's available hours that day
	CapacityHours float64 `parquet:"capacity_hours,snappy"`

	// DemandHours is the modeled workload that day
	DemandHours float64 `parquet:"demand_hours,snappy"`

	// Utilization is demand divided by capacity (nullable; null when capacity
	// is zero and demand is present)
	Utilization *float64 `parquet:"utilization,optional,snappy"`

	// OverByHours is how far demand exceeds threshold-scaled capacity
	OverByHours float64 `parquet:"over_by_hours,snappy"`

	// Label is the load severity bucket
	Label string `parquet:"label,snappy"`
}

// OverallocationRow represents one overallocated user-day for columnar export.
type OverallocationRow struct {
	// UserID is the overallocated user
	UserID string `parquet:"user_id,snappy"`

	// Date is the day in YYYY-MM-DD form
	Date string `parquet:"date,snappy"`

	// CapacityHours is the user's available hours that day
	CapacityHours float64 `parquet:"capacity_hours,snappy"`

	// DemandHours is the total modeled workload that day
	DemandHours float64 `parquet:"demand_hours,snappy"`

	// OverByHours is how far demand exceeds threshold-scaled capacity
	OverByHours float64 `parquet:"over_by_hours,snappy"`

	// TaskCount is the number of contributing tasks and allocations
	TaskCount int32 `parquet:"task_count,snappy"`
}

// DemandRow represents one demand entry for columnar export.
type DemandRow struct {
	// UserID is the user carrying the demand
	UserID string `parquet:"user_id,snappy"`

	// Date is the day in YYYY-MM-DD form
	Date string `parquet:"date,snappy"`

	// DemandHours is the contribution of this entry
	DemandHours float64 `parquet:"demand_hours,snappy"`

	// Source names the modeling rule that produced the entry
	Source string `parquet:"source,snappy"`

	// ProjectID is the owning project
	ProjectID string `parquet:"project_id,snappy"`

	// TaskID is the contributing task (nullable; null for allocation fallback)
	TaskID *string `parquet:"task_id,optional,snappy"`
}

// WriteUtilizationParquet writes utilization rows to a Parquet file.
func WriteUtilizationParquet(data []UtilizationRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the UtilizationRow struct tags
	writer := parquet.NewGenericWriter[UtilizationRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteOverallocationParquet writes overallocation rows to a Parquet file.
func WriteOverallocationParquet(data []OverallocationRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[OverallocationRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteDemandParquet writes demand rows to a Parquet file.
func WriteDemandParquet(data []DemandRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[DemandRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertUtilizationRecords converts daily utilization records for Parquet export.
func ConvertUtilizationRecords(daily []schema.UserDailyUtilization, labelFor func(float64) string) []UtilizationRow {
	result := make([]UtilizationRow, len(daily))
	for i, d := range daily {
		row := UtilizationRow{
			UserID:        d.UserID,
			Date:          d.Date,
			CapacityHours: d.CapacityHours,
			DemandHours:   d.DemandHours,
			OverByHours:   d.OverByHours,
			Label:         labelFor(float64(d.Utilization)),
		}
		// Infinity has no parquet representation; leave the column null.
		if !math.IsInf(float64(d.Utilization), 0) {
			u := float64(d.Utilization)
			row.Utilization = &u
		}
		result[i] = row
	}
	return result
}

// ConvertOverallocationRecords converts overallocation entries for Parquet export.
func ConvertOverallocationRecords(entries []schema.OverallocationEntry) []OverallocationRow {
	result := make([]OverallocationRow, len(entries))
	for i, e := range entries {
		result[i] = OverallocationRow{
			UserID:        e.UserID,
			Date:          e.Date,
			CapacityHours: e.CapacityHours,
			DemandHours:   e.DemandHours,
			OverByHours:   e.OverByHours,
			TaskCount:     int32(len(e.Tasks)),
		}
	}
	return result
}

// ConvertDemandRecords converts demand entries for Parquet export.
func ConvertDemandRecords(entries []schema.DemandEntry) []DemandRow {
	result := make([]DemandRow, len(entries))
	for i, e := range entries {
		row := DemandRow{
			UserID:      e.UserID,
			Date:        e.Date,
			DemandHours: e.Hours,
			Source:      string(e.Source),
			ProjectID:   e.ProjectID,
		}
		if e.TaskID != "" {
			id := e.TaskID
			row.TaskID = &id
		}
		result[i] = row
	}
	return result
}
