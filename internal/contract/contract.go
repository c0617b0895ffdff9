// Package contract provides interfaces and shared utilities for the capsight
// CLI's internal architecture.
package contract

import (
	"context"

	"github.com/capsight/capsight/schema"
)

// SourceClient fetches workspace source data owned by the project-management
// product. The engine consumes these records but does not define their
// persistence schema. Implementations may issue the reads concurrently; the
// engine itself computes synchronously over the fetched data.
type SourceClient interface {
	// ListProjects returns all projects in the workspace.
	ListProjects(ctx context.Context, org, workspace string) ([]schema.Project, error)

	// ListTasks returns tasks in the workspace, optionally restricted to the
	// given project IDs. Soft-deleted tasks are included; the engine filters.
	ListTasks(ctx context.Context, org, workspace string, projectIDs []string) ([]schema.Task, error)

	// ListAllocations returns resource allocations, optionally restricted to
	// the given project IDs.
	ListAllocations(ctx context.Context, org, workspace string, projectIDs []string) ([]schema.Allocation, error)

	// ListSprints returns the sprints of one project.
	ListSprints(ctx context.Context, org, workspace, projectID string) ([]schema.Sprint, error)
}

// OverrideStore persists capacity overrides. Writes are upserts keyed by
// (org, workspace, user, date), so concurrent administrative edits on the same
// key cannot produce duplicate rows.
type OverrideStore interface {
	// GetOverrides returns the overrides for the given users between from and
	// to inclusive (YYYY-MM-DD). An empty userIDs slice matches no rows.
	GetOverrides(ctx context.Context, org, workspace string, userIDs []string, from, to string) ([]schema.CapacityOverride, error)

	// SetOverride inserts or replaces the override for its unique key.
	// Idempotent under repeated identical calls.
	SetOverride(ctx context.Context, ov schema.CapacityOverride) error

	// Status returns row counts grouped by workspace.
	Status(ctx context.Context) (map[string]int, error)

	// Clear removes all stored overrides.
	Clear(ctx context.Context) error

	// Close releases the underlying database handle.
	Close() error
}
