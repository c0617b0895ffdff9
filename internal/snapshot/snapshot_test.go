package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/capsight/capsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{
  "org": "acme",
  "workspace": "eng",
  "projects": [
    {"id": "p1", "name": "Atlas", "capacityEnabled": true},
    {"id": "p2", "name": "Borealis", "capacityEnabled": false}
  ],
  "tasks": [
    {"id": "t1", "projectId": "p1", "assigneeId": "u1", "status": "open"},
    {"id": "t2", "projectId": "p2", "assigneeId": "u2", "status": "done"}
  ],
  "allocations": [
    {"id": "a1", "projectId": "p1", "userId": "u1", "percent": 50}
  ],
  "sprints": [
    {"id": "s1", "projectId": "p1", "name": "Sprint 1", "status": "ACTIVE",
     "startDate": "2024-01-01", "endDate": "2024-01-12"},
    {"id": "s2", "projectId": "p2", "name": "Sprint 2", "status": "PLANNING",
     "startDate": "2024-01-15", "endDate": "2024-01-26"}
  ]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o644))
	return path
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(writeSample(t))
	require.NoError(t, err)

	ctx := context.Background()
	projects, err := client.ListProjects(ctx, "acme", "eng")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Atlas", projects[0].Name)
	assert.True(t, projects[0].CapacityEnabled)
}

func TestNewClient_Missing(t *testing.T) {
	_, err := NewClient(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestNewClient_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := NewClient(path)
	assert.Error(t, err)
}

func TestListTasks_ProjectFilter(t *testing.T) {
	client, err := NewClient(writeSample(t))
	require.NoError(t, err)
	ctx := context.Background()

	tasks, err := client.ListTasks(ctx, "acme", "eng", nil)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = client.ListTasks(ctx, "acme", "eng", []string{"p1"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
}

func TestListAllocations_ProjectFilter(t *testing.T) {
	client, err := NewClient(writeSample(t))
	require.NoError(t, err)
	ctx := context.Background()

	allocations, err := client.ListAllocations(ctx, "acme", "eng", []string{"p2"})
	require.NoError(t, err)
	assert.Empty(t, allocations)

	allocations, err = client.ListAllocations(ctx, "acme", "eng", nil)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, 50.0, allocations[0].Percent)
}

func TestListSprints(t *testing.T) {
	client, err := NewClient(writeSample(t))
	require.NoError(t, err)
	ctx := context.Background()

	sprints, err := client.ListSprints(ctx, "acme", "eng", "p1")
	require.NoError(t, err)
	require.Len(t, sprints, 1)
	assert.Equal(t, schema.SprintActive, sprints[0].Status)

	sprints, err = client.ListSprints(ctx, "acme", "eng", "")
	require.NoError(t, err)
	assert.Len(t, sprints, 2)
}

func TestFindSprint(t *testing.T) {
	client, err := NewClient(writeSample(t))
	require.NoError(t, err)

	s, err := client.FindSprint("s2")
	require.NoError(t, err)
	assert.Equal(t, "Sprint 2", s.Name)

	_, err = client.FindSprint("s9")
	assert.Error(t, err)
}

func TestScopeCheck(t *testing.T) {
	client, err := NewClient(writeSample(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.ListProjects(ctx, "other", "eng")
	assert.Error(t, err)
	_, err = client.ListProjects(ctx, "acme", "design")
	assert.Error(t, err)

	// Fixtures without scope headers match any request.
	loose := NewClientFromSnapshot(schema.Snapshot{
		Projects: []schema.Project{{ID: "p1"}},
	})
	projects, err := loose.ListProjects(ctx, "anything", "goes")
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}
