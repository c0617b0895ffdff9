package contract

import (
	"context"

	"github.com/capsight/capsight/schema"
	"github.com/stretchr/testify/mock"
)

// MockSourceClient is a mock implementation of SourceClient for testing.
type MockSourceClient struct {
	mock.Mock
}

var _ SourceClient = &MockSourceClient{} // Compile-time check

// ListProjects implements the SourceClient interface.
func (m *MockSourceClient) ListProjects(ctx context.Context, org, workspace string) ([]schema.Project, error) {
	args := m.Called(ctx, org, workspace)
	projects, _ := args.Get(0).([]schema.Project)
	return projects, args.Error(1)
}

// ListTasks implements the SourceClient interface.
func (m *MockSourceClient) ListTasks(ctx context.Context, org, workspace string, projectIDs []string) ([]schema.Task, error) {
	args := m.Called(ctx, org, workspace, projectIDs)
	tasks, _ := args.Get(0).([]schema.Task)
	return tasks, args.Error(1)
}

// ListAllocations implements the SourceClient interface.
func (m *MockSourceClient) ListAllocations(ctx context.Context, org, workspace string, projectIDs []string) ([]schema.Allocation, error) {
	args := m.Called(ctx, org, workspace, projectIDs)
	allocations, _ := args.Get(0).([]schema.Allocation)
	return allocations, args.Error(1)
}

// ListSprints implements the SourceClient interface.
func (m *MockSourceClient) ListSprints(ctx context.Context, org, workspace, projectID string) ([]schema.Sprint, error) {
	args := m.Called(ctx, org, workspace, projectID)
	sprints, _ := args.Get(0).([]schema.Sprint)
	return sprints, args.Error(1)
}

// MockOverrideStore is a mock implementation of OverrideStore for testing.
type MockOverrideStore struct {
	mock.Mock
}

var _ OverrideStore = &MockOverrideStore{} // Compile-time check

// GetOverrides implements the OverrideStore interface.
func (m *MockOverrideStore) GetOverrides(ctx context.Context, org, workspace string, userIDs []string, from, to string) ([]schema.CapacityOverride, error) {
	args := m.Called(ctx, org, workspace, userIDs, from, to)
	overrides, _ := args.Get(0).([]schema.CapacityOverride)
	return overrides, args.Error(1)
}

// SetOverride implements the OverrideStore interface.
func (m *MockOverrideStore) SetOverride(ctx context.Context, ov schema.CapacityOverride) error {
	args := m.Called(ctx, ov)
	return args.Error(0)
}

// Status implements the OverrideStore interface.
func (m *MockOverrideStore) Status(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int)
	return counts, args.Error(1)
}

// Clear implements the OverrideStore interface.
func (m *MockOverrideStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close implements the OverrideStore interface.
func (m *MockOverrideStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
