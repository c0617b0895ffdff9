package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/capsight/capsight/core"
	"github.com/capsight/capsight/core/dateutil"
	"github.com/capsight/capsight/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.SourceClient
	store   contract.OverrideStore
}

// applyRangeAndScope overlays the per-request range and scope arguments onto
// a cloned config, revalidating any dates the caller supplied.
func applyRangeAndScope(cfg *contract.Config, request mcp.CallToolRequest) error {
	if from := request.GetString("from", ""); from != "" {
		if _, err := dateutil.ParseDay(from); err != nil {
			return fmt.Errorf("invalid from date '%s': expected YYYY-MM-DD", from)
		}
		cfg.From = from
	}
	if to := request.GetString("to", ""); to != "" {
		if _, err := dateutil.ParseDay(to); err != nil {
			return fmt.Errorf("invalid to date '%s': expected YYYY-MM-DD", to)
		}
		cfg.To = to
	}

	start, _ := dateutil.ParseDay(cfg.From)
	end, _ := dateutil.ParseDay(cfg.To)
	if end.Before(start) {
		return fmt.Errorf("from (%s) cannot be after to (%s)", cfg.From, cfg.To)
	}

	if users := request.GetString("users", ""); users != "" {
		cfg.UserIDs = splitList(users)
	}
	if projects := request.GetString("projects", ""); projects != "" {
		cfg.ProjectIDs = splitList(projects)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (h *toolHandler) handleGetUtilization(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyRangeAndScope(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid utilization parameters: %v", err)), nil
	}
	if t := request.GetFloat("threshold", 0); t > 0 {
		cfg.Threshold = &t
	}
	cfg.Weekly = request.GetBool("weekly", false)

	result, err := core.GetUtilizationResults(ctx, cfg, h.client, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("utilization failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetOverallocations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyRangeAndScope(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid overallocation parameters: %v", err)), nil
	}
	if t := request.GetFloat("threshold", 0); t > 0 {
		cfg.Threshold = &t
	}

	result, err := core.GetOverallocationResults(ctx, cfg, h.client, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("overallocation scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDailyDemand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyRangeAndScope(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid demand parameters: %v", err)), nil
	}

	result, err := core.GetDailyDemandResults(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("demand model failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSprintCapacity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.SprintID = request.GetString("sprint_id", "")
	if cfg.SprintID == "" {
		return mcp.NewToolResultError("sprint_id is required"), nil
	}
	if p := request.GetString("project_id", ""); p != "" {
		cfg.ProjectIDs = []string{p}
	}

	_, result, err := core.GetSprintCapacityResults(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sprint capacity failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSprintBurndown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.SprintID = request.GetString("sprint_id", "")
	if cfg.SprintID == "" {
		return mcp.NewToolResultError("sprint_id is required"), nil
	}
	if p := request.GetString("project_id", ""); p != "" {
		cfg.ProjectIDs = []string{p}
	}

	_, result, err := core.GetBurndownResults(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("burndown failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetProjectVelocity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	projectID := request.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}
	cfg.ProjectIDs = []string{projectID}
	if w := request.GetInt("window", 0); w > 0 {
		cfg.VelocityWindow = w
	}

	_, result, err := core.GetVelocityResults(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("velocity failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
