// Package schema has configs, models and shared constants for all parts of capsight.
package schema

// CapacityOverride is a stored availability override for one user on one day.
// There is at most one override per (org, workspace, user, date). Hours may be
// zero, which marks an explicit day off, or any non-negative value.
type CapacityOverride struct {
	Org       string  `json:"org"`       // Organization identifier
	Workspace string  `json:"workspace"` // Workspace identifier within the organization
	UserID    string  `json:"userId"`    // User the override applies to
	Date      string  `json:"date"`      // Day the override applies to (YYYY-MM-DD)
	Hours     float64 `json:"hours"`     // Available hours for that day
}

// CapacityMap maps user ID -> date (YYYY-MM-DD) -> available hours.
// It is derived on every request and never persisted.
type CapacityMap map[string]map[string]float64

// TotalHours returns the sum of all available hours across users and days.
func (m CapacityMap) TotalHours() float64 {
	var total float64
	for _, days := range m {
		for _, hours := range days {
			total += hours
		}
	}
	return total
}

// DemandEntry is one contributing cause of workload for one user on one day.
// Multiple entries may exist for the same (user, date) from different tasks or
// allocations; consumers must sum them, never overwrite.
type DemandEntry struct {
	UserID    string       `json:"userId"`
	Date      string       `json:"date"` // YYYY-MM-DD
	Hours     float64      `json:"demandHours"`
	Source    DemandSource `json:"source"`
	ProjectID string       `json:"projectId"`
	TaskID    string       `json:"taskId,omitempty"` // Empty for allocation fallback entries
}

// UnmodeledReasons tallies why tasks or projects produced no demand entries.
// These are data-quality signals, not errors.
type UnmodeledReasons struct {
	NoAssignee       int `json:"noAssignee"`       // Tasks skipped for lacking an assignee
	NoDates          int `json:"noDates"`          // Tasks skipped for lacking a resolvable window
	CapacityDisabled int `json:"capacityDisabled"` // Projects excluded for disabled capacity tracking
}

// DemandModelResult is the full output of one demand computation. Every task
// or allocation considered is classified into exactly one outcome: modeled
// (producing zero or more entries) or unmodeled with a reason.
type DemandModelResult struct {
	Entries              []DemandEntry    `json:"entries"`
	DemandModeledHours   float64          `json:"demandModeledHours"`
	DemandUnmodeledHours float64          `json:"demandUnmodeledHours"`
	UnmodeledReasons     UnmodeledReasons `json:"unmodeledReasons"`
}

// Snapshot is a point-in-time export of one workspace's source data from the
// project-management product. The engine derives all reports from a snapshot
// plus the override store; it never mutates one.
type Snapshot struct {
	Org         string       `json:"org"`
	Workspace   string       `json:"workspace"`
	Projects    []Project    `json:"projects"`
	Tasks       []Task       `json:"tasks"`
	Allocations []Allocation `json:"allocations"`
	Sprints     []Sprint     `json:"sprints"`
}

// Project is the engine's view of a project record. Only fields the analytics
// read are carried; the persistence schema is owned elsewhere.
type Project struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CapacityEnabled bool   `json:"capacityEnabled"` // Projects opt in to capacity tracking
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
}

// Task is the engine's view of a task record.
type Task struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"projectId"`
	SprintID        string     `json:"sprintId,omitempty"`
	AssigneeID      string     `json:"assigneeId,omitempty"`
	Name            string     `json:"name"`
	Status          TaskStatus `json:"status"`
	Milestone       bool       `json:"milestone"`
	Deleted         bool       `json:"deleted"` // Soft-deleted tasks never contribute demand
	EstimateHours   float64    `json:"estimateHours,omitempty"`
	RemainingHours  float64    `json:"remainingHours,omitempty"`
	PercentComplete float64    `json:"percentComplete,omitempty"`
	StoryPoints     float64    `json:"storyPoints,omitempty"`
	PlannedStart    string     `json:"plannedStart,omitempty"` // Preferred scheduling window
	PlannedEnd      string     `json:"plannedEnd,omitempty"`
	StartDate       string     `json:"startDate,omitempty"` // Generic fallback window
	DueDate         string     `json:"dueDate,omitempty"`
	CompletedAt     string     `json:"completedAt,omitempty"` // Day the task was done (YYYY-MM-DD)
}

// Allocation is a project-level resource allocation: a percentage of a user's
// time committed to a project, optionally bounded by dates.
type Allocation struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"projectId"`
	UserID    string  `json:"userId"`
	Percent   float64 `json:"percent"`
	StartDate string  `json:"startDate,omitempty"` // Falls back to project dates when absent
	EndDate   string  `json:"endDate,omitempty"`
}
