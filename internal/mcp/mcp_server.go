// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/capsight/capsight/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Capsight MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.SourceClient, store contract.OverrideStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Capsight Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		store:   store,
	}

	// --- 1. Tool: get_utilization ---
	s.AddTool(mcp.NewTool("get_utilization",
		mcp.WithDescription("Compute per-user daily utilization (demand over capacity) for a date range."),
		mcp.WithString("from", mcp.Description("Inclusive range start (YYYY-MM-DD). Defaults to the configured range.")),
		mcp.WithString("to", mcp.Description("Inclusive range end (YYYY-MM-DD).")),
		mcp.WithString("users", mcp.Description("Comma-separated user IDs to scope the report to.")),
		mcp.WithString("projects", mcp.Description("Comma-separated project IDs to scope the report to.")),
		mcp.WithNumber("threshold", mcp.Description("Overallocation threshold multiplier (clamped to 0.5-2.0).")),
		mcp.WithBoolean("weekly", mcp.Description("Attach ISO-week rollups to the result.")),
	), h.handleGetUtilization)

	// --- 2. Tool: get_overallocations ---
	s.AddTool(mcp.NewTool("get_overallocations",
		mcp.WithDescription("Find days where a user's demand exceeds threshold-scaled capacity, with the contributing tasks."),
		mcp.WithString("from", mcp.Description("Inclusive range start (YYYY-MM-DD).")),
		mcp.WithString("to", mcp.Description("Inclusive range end (YYYY-MM-DD).")),
		mcp.WithString("users", mcp.Description("Comma-separated user IDs to scope the report to.")),
		mcp.WithString("projects", mcp.Description("Comma-separated project IDs to scope the report to.")),
		mcp.WithNumber("threshold", mcp.Description("Overallocation threshold multiplier (clamped to 0.5-2.0).")),
	), h.handleGetOverallocations)

	// --- 3. Tool: get_daily_demand ---
	s.AddTool(mcp.NewTool("get_daily_demand",
		mcp.WithDescription("Compute the raw demand model: expected work hours per user per day with per-entry sources."),
		mcp.WithString("from", mcp.Description("Inclusive range start (YYYY-MM-DD).")),
		mcp.WithString("to", mcp.Description("Inclusive range end (YYYY-MM-DD).")),
		mcp.WithString("users", mcp.Description("Comma-separated user IDs to scope the report to.")),
		mcp.WithString("projects", mcp.Description("Comma-separated project IDs to scope the report to.")),
	), h.handleGetDailyDemand)

	// --- 4. Tool: get_sprint_capacity ---
	s.AddTool(mcp.NewTool("get_sprint_capacity",
		mcp.WithDescription("Compare a sprint's allocated capacity against its committed load."),
		mcp.WithString("sprint_id", mcp.Description("Sprint to analyze."), mcp.Required()),
		mcp.WithString("project_id", mcp.Description("Project owning the sprint; searched across all projects when omitted.")),
	), h.handleGetSprintCapacity)

	// --- 5. Tool: get_sprint_burndown ---
	s.AddTool(mcp.NewTool("get_sprint_burndown",
		mcp.WithDescription("Build the daily burndown series for a sprint, with an ideal linear reference line."),
		mcp.WithString("sprint_id", mcp.Description("Sprint to analyze."), mcp.Required()),
		mcp.WithString("project_id", mcp.Description("Project owning the sprint; searched across all projects when omitted.")),
	), h.handleGetSprintBurndown)

	// --- 6. Tool: get_project_velocity ---
	s.AddTool(mcp.NewTool("get_project_velocity",
		mcp.WithDescription("Compute the rolling average of completed story points over a project's recent completed sprints."),
		mcp.WithString("project_id", mcp.Description("Project to analyze."), mcp.Required()),
		mcp.WithNumber("window", mcp.Description("Number of completed sprints to average over (clamped to 1-20).")),
	), h.handleGetProjectVelocity)

	return s
}

// StartMCPServer starts the Capsight MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.SourceClient, store contract.OverrideStore) error {
	s := NewMCPServer(baseCfg, client, store)
	return server.ServeStdio(s)
}
