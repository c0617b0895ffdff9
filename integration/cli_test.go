//go:build basic

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCapsightVersion verifies the binary runs at all.
func TestCapsightVersion(t *testing.T) {
	home := t.TempDir()

	output, err := runCapsightCommand(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "capsight CLI")
}

// TestCapsightReportsWithSQLite drives the report commands end to end against
// the default SQLite override store.
func TestCapsightReportsWithSQLite(t *testing.T) {
	home := t.TempDir()
	snapshot := writeSampleSnapshot(t)

	scope := []string{
		"--org", "acme", "--workspace", "eng",
		"--snapshot", snapshot,
		"--from", "2024-01-01", "--to", "2024-01-05",
	}

	// Seed one override, then confirm the calendar reflects it.
	_, err := runCapsightCommand(t, home, append([]string{"capacity", "set", "alice", "2024-01-01", "4"}, scope...)...)
	require.NoError(t, err)

	output, err := runCapsightCommand(t, home, append([]string{"capacity", "show", "--users", "alice"}, scope...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "4.00")
	assert.Contains(t, output, "Total capacity: 36.00 h across 1 users")

	// Utilization picks up the override and the snapshot's demand.
	output, err = runCapsightCommand(t, home, append([]string{"utilization", "--output", "json"}, scope...)...)
	require.NoError(t, err)
	assert.Contains(t, output, `"totalDemandHours"`)

	output, err = runCapsightCommand(t, home, append([]string{"overalloc"}, scope...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "threshold")

	output, err = runCapsightCommand(t, home, append([]string{"demand", "--output", "csv"}, scope...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "user,date,demand_hours,source,project,task")

	// Sprint analytics against the snapshot's active sprint.
	output, err = runCapsightCommand(t, home, append([]string{"sprint", "capacity", "--sprint", "s1"}, scope...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "Sprint 1")

	output, err = runCapsightCommand(t, home, append([]string{"sprint", "burndown", "--sprint", "s1", "--output", "json"}, scope...)...)
	require.NoError(t, err)
	assert.Contains(t, output, `"buckets"`)

	// Store maintenance round trip.
	output, err = runCapsightCommand(t, home, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "eng")

	_, err = runCapsightCommand(t, home, "store", "clear")
	require.NoError(t, err)

	output, err = runCapsightCommand(t, home, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "is empty")
}
