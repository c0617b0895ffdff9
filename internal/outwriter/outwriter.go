// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all report output operations.
// It encapsulates the various output formats and provides a clean API for the
// command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteUtilization prints a utilization report using the configured output format.
func (ow *OutWriter) WriteUtilization(result schema.UtilizationResult, cfg *contract.Config) error {
	return WriteUtilizationResults(result, cfg)
}

// WriteOverallocations prints an overallocation report using the configured output format.
func (ow *OutWriter) WriteOverallocations(result schema.OverallocationResult, cfg *contract.Config) error {
	return WriteOverallocationResults(result, cfg)
}

// WriteDemand prints a demand report using the configured output format.
func (ow *OutWriter) WriteDemand(result schema.DemandModelResult, cfg *contract.Config) error {
	return WriteDemandResults(result, cfg)
}

// WriteSprintCapacity prints a sprint capacity report using the configured output format.
func (ow *OutWriter) WriteSprintCapacity(sprint *schema.Sprint, result schema.SprintCapacityResult, cfg *contract.Config) error {
	return WriteSprintCapacityResults(sprint, result, cfg)
}

// WriteBurndown prints a sprint burndown report using the configured output format.
func (ow *OutWriter) WriteBurndown(sprint *schema.Sprint, result schema.BurndownResult, cfg *contract.Config) error {
	return WriteBurndownResults(sprint, result, cfg)
}

// WriteVelocity prints a project velocity report using the configured output format.
func (ow *OutWriter) WriteVelocity(projectID string, result schema.VelocityResult, cfg *contract.Config) error {
	return WriteVelocityResults(projectID, result, cfg)
}

// WriteCapacity prints a capacity calendar using the configured output format.
func (ow *OutWriter) WriteCapacity(capMap schema.CapacityMap, cfg *contract.Config) error {
	return WriteCapacityResults(capMap, cfg)
}

// WriteStoreStatus prints override store row counts per workspace.
func (ow *OutWriter) WriteStoreStatus(counts map[string]int, cfg *contract.Config) error {
	return WriteStoreStatusResults(counts, cfg)
}

// LogReportHeader prints a concise, 2-line header for each report.
func LogReportHeader(cfg *contract.Config, report string) {
	if cfg.UseEmojis {
		fmt.Printf("🔎 Workspace: %s/%s (Report: %s)\n", cfg.Org, cfg.Workspace, report)
		fmt.Printf("📅 Range: %s → %s\n", cfg.From, cfg.To)
		return
	}
	fmt.Printf("Workspace: %s/%s (Report: %s)\n", cfg.Org, cfg.Workspace, report)
	fmt.Printf("Range: %s -> %s\n", cfg.From, cfg.To)
}

// GetMaxTableUserWidth calculates the maximum width for user IDs in table
// output based on terminal width and table configuration.
func GetMaxTableUserWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the date, hours, ratio and label columns with
	// borders and padding.
	baseWidth := 60

	available := termWidth - baseWidth
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}

// TruncateID truncates an identifier to a maximum width with ellipsis suffix.
func TruncateID(id string, maxWidth int) string {
	runes := []rune(id)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return id
}
