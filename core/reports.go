package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
)

// fetchAnalyticsInput performs the common Fetch and Override-Loading steps
// shared by the utilization, overallocation, and demand reports.
func fetchAnalyticsInput(ctx context.Context, cfg *contract.Config, client contract.SourceClient, store contract.OverrideStore) (AnalyticsInput, error) {
	projects, err := client.ListProjects(ctx, cfg.Org, cfg.Workspace)
	if err != nil {
		return AnalyticsInput{}, fmt.Errorf("list projects: %w", err)
	}
	tasks, err := client.ListTasks(ctx, cfg.Org, cfg.Workspace, cfg.ProjectIDs)
	if err != nil {
		return AnalyticsInput{}, fmt.Errorf("list tasks: %w", err)
	}
	allocations, err := client.ListAllocations(ctx, cfg.Org, cfg.Workspace, cfg.ProjectIDs)
	if err != nil {
		return AnalyticsInput{}, fmt.Errorf("list allocations: %w", err)
	}

	var overrides []schema.CapacityOverride
	if store != nil {
		userIDs := collectUserIDs(cfg.UserIDs, tasks, allocations)
		overrides, err = store.GetOverrides(ctx, cfg.Org, cfg.Workspace, userIDs, cfg.From, cfg.To)
		if err != nil {
			return AnalyticsInput{}, fmt.Errorf("load capacity overrides: %w", err)
		}
	}

	return AnalyticsInput{
		From:              cfg.From,
		To:                cfg.To,
		UserIDs:           cfg.UserIDs,
		ProjectIDs:        cfg.ProjectIDs,
		Threshold:         cfg.Threshold,
		IncludeDisabled:   cfg.IncludeDisabled,
		IncludeUnassigned: cfg.IncludeUnassigned,
		IncludeWeekly:     cfg.Weekly,
		Projects:          projects,
		Tasks:             tasks,
		Allocations:       allocations,
		Overrides:         overrides,
		HoursPerDay:       cfg.HoursPerDay,
	}, nil
}

// collectUserIDs unions the requested users with every user referenced by a
// task or allocation, so the override fetch covers all users a report can
// produce rows for.
func collectUserIDs(requested []string, tasks []schema.Task, allocations []schema.Allocation) []string {
	seen := make(map[string]struct{})
	for _, id := range requested {
		seen[id] = struct{}{}
	}
	for _, t := range tasks {
		if t.AssigneeID != "" {
			seen[t.AssigneeID] = struct{}{}
		}
	}
	for _, a := range allocations {
		if a.UserID != "" {
			seen[a.UserID] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// GetUtilizationResults fetches source data and computes the utilization
// report for the configured range and scope.
func GetUtilizationResults(ctx context.Context, cfg *contract.Config, client contract.SourceClient, store contract.OverrideStore) (schema.UtilizationResult, error) {
	in, err := fetchAnalyticsInput(ctx, cfg, client, store)
	if err != nil {
		return schema.UtilizationResult{}, err
	}
	return ComputeUtilization(in)
}

// GetOverallocationResults fetches source data and computes the
// overallocation report for the configured range and scope.
func GetOverallocationResults(ctx context.Context, cfg *contract.Config, client contract.SourceClient, store contract.OverrideStore) (schema.OverallocationResult, error) {
	in, err := fetchAnalyticsInput(ctx, cfg, client, store)
	if err != nil {
		return schema.OverallocationResult{}, err
	}
	return ComputeOverallocations(in)
}

// GetDailyDemandResults fetches source data and computes the raw demand model
// for the configured range and scope. Overrides do not affect demand, so the
// store is not consulted.
func GetDailyDemandResults(ctx context.Context, cfg *contract.Config, client contract.SourceClient) (schema.DemandModelResult, error) {
	in, err := fetchAnalyticsInput(ctx, cfg, client, nil)
	if err != nil {
		return schema.DemandModelResult{}, err
	}
	return BuildDailyDemand(in.demandInput())
}

// FindSprint locates the configured sprint, searching the configured projects
// or every project in the workspace when no project filter is set.
func FindSprint(ctx context.Context, cfg *contract.Config, client contract.SourceClient) (*schema.Sprint, error) {
	if cfg.SprintID == "" {
		return nil, fmt.Errorf("sprint id is required")
	}

	projectIDs := cfg.ProjectIDs
	if len(projectIDs) == 0 {
		projects, err := client.ListProjects(ctx, cfg.Org, cfg.Workspace)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
	}

	for _, projectID := range projectIDs {
		sprints, err := client.ListSprints(ctx, cfg.Org, cfg.Workspace, projectID)
		if err != nil {
			return nil, fmt.Errorf("list sprints for project %s: %w", projectID, err)
		}
		for i := range sprints {
			if sprints[i].ID == cfg.SprintID {
				s := sprints[i]
				return &s, nil
			}
		}
	}
	return nil, fmt.Errorf("sprint %s not found", cfg.SprintID)
}

// GetSprintCapacityResults locates the configured sprint and computes its
// capacity versus committed load.
func GetSprintCapacityResults(ctx context.Context, cfg *contract.Config, client contract.SourceClient) (*schema.Sprint, schema.SprintCapacityResult, error) {
	sprint, err := FindSprint(ctx, cfg, client)
	if err != nil {
		return nil, schema.SprintCapacityResult{}, err
	}

	tasks, err := client.ListTasks(ctx, cfg.Org, cfg.Workspace, []string{sprint.ProjectID})
	if err != nil {
		return nil, schema.SprintCapacityResult{}, fmt.Errorf("list tasks: %w", err)
	}
	allocations, err := client.ListAllocations(ctx, cfg.Org, cfg.Workspace, []string{sprint.ProjectID})
	if err != nil {
		return nil, schema.SprintCapacityResult{}, fmt.Errorf("list allocations: %w", err)
	}

	result, err := SprintCapacity(sprint, tasks, allocations, cfg.HoursPerDay, cfg.HoursPerPoint)
	if err != nil {
		return nil, schema.SprintCapacityResult{}, err
	}
	return sprint, result, nil
}

// GetBurndownResults locates the configured sprint and builds its daily
// burndown series.
func GetBurndownResults(ctx context.Context, cfg *contract.Config, client contract.SourceClient) (*schema.Sprint, schema.BurndownResult, error) {
	sprint, err := FindSprint(ctx, cfg, client)
	if err != nil {
		return nil, schema.BurndownResult{}, err
	}

	tasks, err := client.ListTasks(ctx, cfg.Org, cfg.Workspace, []string{sprint.ProjectID})
	if err != nil {
		return nil, schema.BurndownResult{}, fmt.Errorf("list tasks: %w", err)
	}

	result, err := BuildBurndown(sprint, tasks)
	if err != nil {
		return nil, schema.BurndownResult{}, err
	}
	return sprint, result, nil
}

// GetVelocityResults computes the rolling velocity for the first configured
// project. Velocity is a per-project report, so a project filter is required.
func GetVelocityResults(ctx context.Context, cfg *contract.Config, client contract.SourceClient) (string, schema.VelocityResult, error) {
	if len(cfg.ProjectIDs) == 0 {
		return "", schema.VelocityResult{}, fmt.Errorf("velocity requires a project filter")
	}
	projectID := cfg.ProjectIDs[0]

	sprints, err := client.ListSprints(ctx, cfg.Org, cfg.Workspace, projectID)
	if err != nil {
		return "", schema.VelocityResult{}, fmt.Errorf("list sprints: %w", err)
	}
	tasks, err := client.ListTasks(ctx, cfg.Org, cfg.Workspace, []string{projectID})
	if err != nil {
		return "", schema.VelocityResult{}, fmt.Errorf("list tasks: %w", err)
	}

	return projectID, ProjectVelocity(sprints, tasks, cfg.VelocityWindow), nil
}
