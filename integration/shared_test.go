//go:build basic || database

// Package integration contains integration tests for capsight.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database tests additionally need Docker: go test -tags database ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedCapsightPath holds the path to a shared capsight binary built once for all tests.
	sharedCapsightPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getCapsightBinary returns the path to the capsight binary, building it once if needed.
func getCapsightBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "capsight-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		capsightPath := filepath.Join(tempDir, "capsight")
		buildCmd := exec.Command("go", "build", "-o", capsightPath, "./cmd/capsight")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build capsight: %v", err))
		}

		sharedCapsightPath = capsightPath
	})

	return sharedCapsightPath
}

// sampleSnapshot is a minimal but complete workspace export used by the CLI runs.
const sampleSnapshot = `{
  "org": "acme",
  "workspace": "eng",
  "projects": [
    {"id": "p1", "name": "Atlas", "capacityEnabled": true,
     "startDate": "2024-01-01", "endDate": "2024-01-31"}
  ],
  "tasks": [
    {"id": "t1", "projectId": "p1", "sprintId": "s1", "assigneeId": "alice",
     "name": "Build ingest", "status": "in_progress", "remainingHours": 10,
     "storyPoints": 5, "plannedStart": "2024-01-01", "plannedEnd": "2024-01-05"}
  ],
  "allocations": [
    {"id": "a1", "projectId": "p1", "userId": "bob", "percent": 50}
  ],
  "sprints": [
    {"id": "s1", "projectId": "p1", "name": "Sprint 1", "status": "ACTIVE",
     "startDate": "2024-01-01", "endDate": "2024-01-12"}
  ]
}`

// writeSampleSnapshot writes the shared snapshot export into a temp file.
func writeSampleSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(sampleSnapshot), 0o600); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	return path
}

// runCapsightCommand runs the shared binary with an isolated HOME so the
// default SQLite store never touches the developer's real one.
func runCapsightCommand(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	capsightPath := getCapsightBinary()
	cmd := exec.Command(capsightPath, args...)
	cmd.Dir = ".." // Run from project root
	cmd.Env = append(os.Environ(), "HOME="+home)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
