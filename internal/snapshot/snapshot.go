// Package snapshot loads workspace exports from disk and serves them through
// the source client interface. An export is a single JSON document holding the
// projects, tasks, allocations and sprints of one workspace.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
)

// Client serves source data out of a parsed workspace export.
type Client struct {
	snap schema.Snapshot
}

var _ contract.SourceClient = &Client{} // Compile-time check

// NewClient reads and parses the export file at path.
func NewClient(path string) (*Client, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap schema.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return &Client{snap: snap}, nil
}

// NewClientFromSnapshot wraps an already-parsed snapshot, mostly for tests.
func NewClientFromSnapshot(snap schema.Snapshot) *Client {
	return &Client{snap: snap}
}

// ListProjects implements the SourceClient interface.
func (c *Client) ListProjects(_ context.Context, org, workspace string) ([]schema.Project, error) {
	if err := c.checkScope(org, workspace); err != nil {
		return nil, err
	}
	return c.snap.Projects, nil
}

// ListTasks implements the SourceClient interface.
func (c *Client) ListTasks(_ context.Context, org, workspace string, projectIDs []string) ([]schema.Task, error) {
	if err := c.checkScope(org, workspace); err != nil {
		return nil, err
	}
	if len(projectIDs) == 0 {
		return c.snap.Tasks, nil
	}
	wanted := idSet(projectIDs)
	var tasks []schema.Task
	for _, t := range c.snap.Tasks {
		if _, ok := wanted[t.ProjectID]; ok {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// ListAllocations implements the SourceClient interface.
func (c *Client) ListAllocations(_ context.Context, org, workspace string, projectIDs []string) ([]schema.Allocation, error) {
	if err := c.checkScope(org, workspace); err != nil {
		return nil, err
	}
	if len(projectIDs) == 0 {
		return c.snap.Allocations, nil
	}
	wanted := idSet(projectIDs)
	var allocations []schema.Allocation
	for _, a := range c.snap.Allocations {
		if _, ok := wanted[a.ProjectID]; ok {
			allocations = append(allocations, a)
		}
	}
	return allocations, nil
}

// ListSprints implements the SourceClient interface.
func (c *Client) ListSprints(_ context.Context, org, workspace, projectID string) ([]schema.Sprint, error) {
	if err := c.checkScope(org, workspace); err != nil {
		return nil, err
	}
	var sprints []schema.Sprint
	for _, s := range c.snap.Sprints {
		if projectID == "" || s.ProjectID == projectID {
			sprints = append(sprints, s)
		}
	}
	return sprints, nil
}

// FindSprint returns the sprint with the given ID, searching all projects.
func (c *Client) FindSprint(sprintID string) (*schema.Sprint, error) {
	for i := range c.snap.Sprints {
		if c.snap.Sprints[i].ID == sprintID {
			s := c.snap.Sprints[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("sprint %s not found in snapshot", sprintID)
}

// checkScope rejects reads for a different org or workspace than the export
// was taken from. Empty values in the export match anything, which keeps
// hand-written fixtures short.
func (c *Client) checkScope(org, workspace string) error {
	if c.snap.Org != "" && org != c.snap.Org {
		return fmt.Errorf("snapshot belongs to org %s, not %s", c.snap.Org, org)
	}
	if c.snap.Workspace != "" && workspace != c.snap.Workspace {
		return fmt.Errorf("snapshot belongs to workspace %s, not %s", c.snap.Workspace, workspace)
	}
	return nil
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
