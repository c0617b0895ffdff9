package core

import (
	"time"

	"github.com/capsight/capsight/core/dateutil"
	"github.com/capsight/capsight/schema"
)

// UnassignedUserID is the pseudo-user that carries demand from unassigned
// tasks when the caller opts in to modeling them.
const UnassignedUserID = "unassigned"

// DemandInput carries the source data and filters for one demand computation.
// Zero-valued knobs fall back to the engine defaults.
type DemandInput struct {
	From string // Inclusive range start (YYYY-MM-DD)
	To   string // Inclusive range end (YYYY-MM-DD)

	Projects    []schema.Project
	Tasks       []schema.Task
	Allocations []schema.Allocation

	ProjectIDs        []string // Optional project filter
	UserIDs           []string // Optional user filter
	IncludeDisabled   bool     // Model projects with capacity tracking disabled
	IncludeUnassigned bool     // Model assignee-less tasks under UnassignedUserID

	HoursPerDay float64 // Defaults to schema.DefaultHoursPerDay
}

// pairKey identifies a (project, user) pair for fallback suppression.
type pairKey struct {
	projectID string
	userID    string
}

// BuildDailyDemand computes expected work hours per user per day for the
// requested range, merging the task schedule (primary) and allocation
// percentages (fallback) without double-counting: for any (project, user)
// pair, demand comes from either tasks or the allocation fallback, never both.
//
// Tasks that cannot be modeled are tallied into UnmodeledReasons rather than
// failing the computation. An unresolvable or inverted range degrades to an
// empty result.
func BuildDailyDemand(in DemandInput) (schema.DemandModelResult, error) {
	result := schema.DemandModelResult{}

	rangeStart, err := dateutil.ParseDay(in.From)
	if err != nil {
		return result, err
	}
	rangeEnd, err := dateutil.ParseDay(in.To)
	if err != nil {
		return result, err
	}

	hoursPerDay := in.HoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = schema.DefaultHoursPerDay
	}

	projects := resolveProjects(in, &result.UnmodeledReasons)
	userFilter := buildIDSet(in.UserIDs)

	var modeledHours, unmodeledHours float64
	modeledPairs := make(map[pairKey]struct{})

	// Primary source: task schedules.
	for _, task := range in.Tasks {
		if _, ok := projects[task.ProjectID]; !ok || task.Deleted {
			continue
		}

		assignee := task.AssigneeID
		if assignee == "" {
			if !in.IncludeUnassigned {
				result.UnmodeledReasons.NoAssignee++
				unmodeledHours += bestKnownEffort(task)
				continue
			}
			assignee = UnassignedUserID
		}
		if len(userFilter) > 0 {
			if _, ok := userFilter[assignee]; !ok {
				continue
			}
		}

		// Milestones mark a point in time; they carry no work.
		if task.Milestone {
			continue
		}

		taskStart, taskEnd, ok := resolveTaskWindow(task)
		if !ok {
			result.UnmodeledReasons.NoDates++
			unmodeledHours += bestKnownEffort(task)
			continue
		}

		clampStart, clampEnd, ok := dateutil.Overlap(taskStart, taskEnd, rangeStart, rangeEnd)
		if !ok {
			continue
		}
		workdays := dateutil.Workdays(clampStart, clampEnd)
		if len(workdays) == 0 {
			continue
		}

		totalEffort, source := resolveTaskEffort(task, len(workdays), hoursPerDay)
		perDay := totalEffort / float64(len(workdays))
		for _, day := range workdays {
			result.Entries = append(result.Entries, schema.DemandEntry{
				UserID:    assignee,
				Date:      dateutil.FormatDay(day),
				Hours:     schema.Round2(perDay),
				Source:    source,
				ProjectID: task.ProjectID,
				TaskID:    task.ID,
			})
			modeledHours += perDay
		}
		modeledPairs[pairKey{task.ProjectID, assignee}] = struct{}{}
	}

	// Fallback source: allocation percentages, only where no task already
	// modeled the (project, user) pair.
	for _, alloc := range in.Allocations {
		project, ok := projects[alloc.ProjectID]
		if !ok {
			continue
		}
		if len(userFilter) > 0 {
			if _, ok := userFilter[alloc.UserID]; !ok {
				continue
			}
		}
		if _, ok := modeledPairs[pairKey{alloc.ProjectID, alloc.UserID}]; ok {
			continue
		}

		allocStart, allocEnd, ok := resolveAllocationWindow(alloc, project)
		if !ok {
			continue
		}
		clampStart, clampEnd, ok := dateutil.Overlap(allocStart, allocEnd, rangeStart, rangeEnd)
		if !ok {
			continue
		}

		daily := hoursPerDay * alloc.Percent / 100
		for _, day := range dateutil.Workdays(clampStart, clampEnd) {
			result.Entries = append(result.Entries, schema.DemandEntry{
				UserID:    alloc.UserID,
				Date:      dateutil.FormatDay(day),
				Hours:     schema.Round2(daily),
				Source:    schema.AllocationFallbackSource,
				ProjectID: alloc.ProjectID,
			})
			modeledHours += daily
		}
	}

	// Totals are summed unrounded and rounded once here, so per-entry display
	// rounding cannot accumulate into the workspace figure.
	result.DemandModeledHours = schema.Round2(modeledHours)
	result.DemandUnmodeledHours = schema.Round2(unmodeledHours)
	return result, nil
}

// resolveProjects returns the in-scope projects keyed by ID, applying the
// project filter and the capacity-enabled gate. Each project excluded for
// disabled capacity tracking counts once, not once per task.
func resolveProjects(in DemandInput, reasons *schema.UnmodeledReasons) map[string]schema.Project {
	projectFilter := buildIDSet(in.ProjectIDs)
	scoped := make(map[string]schema.Project, len(in.Projects))
	for _, p := range in.Projects {
		if len(projectFilter) > 0 {
			if _, ok := projectFilter[p.ID]; !ok {
				continue
			}
		}
		if !p.CapacityEnabled && !in.IncludeDisabled {
			reasons.CapacityDisabled++
			continue
		}
		scoped[p.ID] = p
	}
	return scoped
}

// resolveTaskWindow resolves a task's scheduling window, preferring planned
// dates and falling back to the generic start/due dates per bound.
func resolveTaskWindow(task schema.Task) (time.Time, time.Time, bool) {
	startStr := task.PlannedStart
	if startStr == "" {
		startStr = task.StartDate
	}
	endStr := task.PlannedEnd
	if endStr == "" {
		endStr = task.DueDate
	}
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, false
	}

	start, err := dateutil.ParseDay(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := dateutil.ParseDay(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// resolveAllocationWindow resolves an allocation's effective window from its
// own dates, falling back to the project dates per bound.
func resolveAllocationWindow(alloc schema.Allocation, project schema.Project) (time.Time, time.Time, bool) {
	startStr := alloc.StartDate
	if startStr == "" {
		startStr = project.StartDate
	}
	endStr := alloc.EndDate
	if endStr == "" {
		endStr = project.EndDate
	}
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, false
	}

	start, err := dateutil.ParseDay(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := dateutil.ParseDay(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// resolveTaskEffort determines total effort hours with the documented
// precedence: positive remaining hours, then estimate adjusted by percent
// complete, then hours derived from the schedule length.
func resolveTaskEffort(task schema.Task, workdayCount int, hoursPerDay float64) (float64, schema.DemandSource) {
	if task.RemainingHours > 0 {
		return task.RemainingHours, schema.TaskEstimateSource
	}
	if adjusted := task.EstimateHours * (100 - task.PercentComplete) / 100; adjusted > 0 {
		return adjusted, schema.TaskEstimateSource
	}
	return float64(workdayCount) * hoursPerDay, schema.TaskDurationSpreadSource
}

// bestKnownEffort estimates the hours lost to an unmodeled task, for the
// data-quality tally only.
func bestKnownEffort(task schema.Task) float64 {
	if task.RemainingHours > 0 {
		return task.RemainingHours
	}
	if adjusted := task.EstimateHours * (100 - task.PercentComplete) / 100; adjusted > 0 {
		return adjusted
	}
	return 0
}

// buildIDSet creates a lookup set for O(1) membership checks.
func buildIDSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
