package core

import (
	"testing"

	"github.com/capsight/capsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var demandProjects = []schema.Project{
	{ID: "p1", Name: "Atlas", CapacityEnabled: true, StartDate: "2024-01-01", EndDate: "2024-01-31"},
}

func demandTask(overrides func(*schema.Task)) schema.Task {
	task := schema.Task{
		ID:           "t1",
		ProjectID:    "p1",
		AssigneeID:   "u1",
		Name:         "Build ingest pipeline",
		Status:       schema.TaskOpen,
		PlannedStart: "2024-01-01",
		PlannedEnd:   "2024-01-05",
	}
	if overrides != nil {
		overrides(&task)
	}
	return task
}

func TestBuildDailyDemand_RemainingHoursPrecedence(t *testing.T) {
	task := demandTask(func(task *schema.Task) {
		task.EstimateHours = 40
		task.RemainingHours = 10
	})
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-01",
		To:       "2024-01-31",
		Projects: demandProjects,
		Tasks:    []schema.Task{task},
	})
	require.NoError(t, err)

	// Remaining hours win over the raw estimate: 10h over 5 weekdays.
	require.Len(t, result.Entries, 5)
	for _, e := range result.Entries {
		assert.Equal(t, 2.0, e.Hours)
		assert.Equal(t, schema.TaskEstimateSource, e.Source)
		assert.Equal(t, "t1", e.TaskID)
	}
	assert.Equal(t, 10.0, result.DemandModeledHours)
}

func TestBuildDailyDemand_EstimateAdjustedByPercentComplete(t *testing.T) {
	task := demandTask(func(task *schema.Task) {
		task.EstimateHours = 40
		task.PercentComplete = 50
	})
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-01",
		To:       "2024-01-31",
		Projects: demandProjects,
		Tasks:    []schema.Task{task},
	})
	require.NoError(t, err)

	assert.Equal(t, 20.0, result.DemandModeledHours)
	require.Len(t, result.Entries, 5)
	assert.Equal(t, 4.0, result.Entries[0].Hours)
	assert.Equal(t, schema.TaskEstimateSource, result.Entries[0].Source)
}

func TestBuildDailyDemand_DurationSpreadFallback(t *testing.T) {
	task := demandTask(func(task *schema.Task) {
		task.PlannedStart = "2024-01-01"
		task.PlannedEnd = "2024-01-03" // 3 weekdays
	})
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-01",
		To:       "2024-01-31",
		Projects: demandProjects,
		Tasks:    []schema.Task{task},
	})
	require.NoError(t, err)

	// No estimate or remaining hours: 3 workdays x 8h spread at 8h/day.
	require.Len(t, result.Entries, 3)
	for _, e := range result.Entries {
		assert.Equal(t, 8.0, e.Hours)
		assert.Equal(t, schema.TaskDurationSpreadSource, e.Source)
	}
	assert.Equal(t, 24.0, result.DemandModeledHours)
}

func TestBuildDailyDemand_NoDoubleCounting(t *testing.T) {
	task := demandTask(func(task *schema.Task) {
		task.RemainingHours = 10
	})
	allocations := []schema.Allocation{
		{ID: "a1", ProjectID: "p1", UserID: "u1", Percent: 100}, // Same pair as the task
		{ID: "a2", ProjectID: "p1", UserID: "u2", Percent: 50},  // Different user
	}
	result, err := BuildDailyDemand(DemandInput{
		From:        "2024-01-01",
		To:          "2024-01-05",
		Projects:    demandProjects,
		Tasks:       []schema.Task{task},
		Allocations: allocations,
	})
	require.NoError(t, err)

	// The (p1, u1) pair is task-modeled, so only u2's allocation falls back.
	var u1Hours, u2Hours float64
	for _, e := range result.Entries {
		switch e.UserID {
		case "u1":
			assert.Equal(t, schema.TaskEstimateSource, e.Source)
			u1Hours += e.Hours
		case "u2":
			assert.Equal(t, schema.AllocationFallbackSource, e.Source)
			assert.Empty(t, e.TaskID)
			u2Hours += e.Hours
		}
	}
	assert.Equal(t, 10.0, u1Hours)
	assert.Equal(t, 20.0, u2Hours) // 5 weekdays x 8h x 50%
	assert.Equal(t, 30.0, result.DemandModeledHours)
}

func TestBuildDailyDemand_AllocationWindowFallsBackToProject(t *testing.T) {
	allocations := []schema.Allocation{
		{ID: "a1", ProjectID: "p1", UserID: "u1", Percent: 25},
	}
	result, err := BuildDailyDemand(DemandInput{
		From:        "2024-01-01",
		To:          "2024-01-05",
		Projects:    demandProjects,
		Allocations: allocations,
	})
	require.NoError(t, err)

	// The allocation has no dates of its own; the project window applies,
	// clamped to the requested range.
	require.Len(t, result.Entries, 5)
	assert.Equal(t, 2.0, result.Entries[0].Hours)
	assert.Equal(t, 10.0, result.DemandModeledHours)
}

func TestBuildDailyDemand_UnmodeledReasons(t *testing.T) {
	tasks := []schema.Task{
		demandTask(func(task *schema.Task) {
			task.ID = "t1"
			task.AssigneeID = ""
			task.RemainingHours = 12
		}),
		demandTask(func(task *schema.Task) {
			task.ID = "t2"
			task.PlannedStart = ""
			task.PlannedEnd = ""
			task.EstimateHours = 8
		}),
	}
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-01",
		To:       "2024-01-31",
		Projects: demandProjects,
		Tasks:    tasks,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Entries)
	assert.Equal(t, 1, result.UnmodeledReasons.NoAssignee)
	assert.Equal(t, 1, result.UnmodeledReasons.NoDates)
	assert.Equal(t, 0.0, result.DemandModeledHours)
	assert.Equal(t, 20.0, result.DemandUnmodeledHours)
}

func TestBuildDailyDemand_DisabledProjectCountedOnce(t *testing.T) {
	projects := []schema.Project{
		{ID: "p1", CapacityEnabled: false},
	}
	tasks := []schema.Task{
		demandTask(func(task *schema.Task) { task.ID = "t1" }),
		demandTask(func(task *schema.Task) { task.ID = "t2" }),
	}
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-01",
		To:       "2024-01-31",
		Projects: projects,
		Tasks:    tasks,
	})
	require.NoError(t, err)

	// Once per excluded project, not once per task.
	assert.Equal(t, 1, result.UnmodeledReasons.CapacityDisabled)
	assert.Empty(t, result.Entries)

	// The administrative override brings the project back into scope.
	result, err = BuildDailyDemand(DemandInput{
		From:            "2024-01-01",
		To:              "2024-01-31",
		Projects:        projects,
		Tasks:           tasks,
		IncludeDisabled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.UnmodeledReasons.CapacityDisabled)
	assert.NotEmpty(t, result.Entries)
}

func TestBuildDailyDemand_MilestonesAndDeletedExcluded(t *testing.T) {
	tasks := []schema.Task{
		demandTask(func(task *schema.Task) {
			task.ID = "t1"
			task.Milestone = true
		}),
		demandTask(func(task *schema.Task) {
			task.ID = "t2"
			task.Deleted = true
		}),
	}
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-01",
		To:       "2024-01-31",
		Projects: demandProjects,
		Tasks:    tasks,
	})
	require.NoError(t, err)

	// Milestones contribute zero demand without being unmodeled; deleted
	// tasks are invisible altogether.
	assert.Empty(t, result.Entries)
	assert.Equal(t, schema.UnmodeledReasons{}, result.UnmodeledReasons)
}

func TestBuildDailyDemand_ClampsToRequestedRange(t *testing.T) {
	task := demandTask(func(task *schema.Task) {
		task.PlannedStart = "2023-12-25"
		task.PlannedEnd = "2024-01-02"
	})
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-01",
		To:       "2024-01-31",
		Projects: demandProjects,
		Tasks:    []schema.Task{task},
	})
	require.NoError(t, err)

	// Only the in-range weekdays remain after clamping.
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "2024-01-01", result.Entries[0].Date)
	assert.Equal(t, "2024-01-02", result.Entries[1].Date)
}

func TestBuildDailyDemand_TaskOutsideRangeSkipped(t *testing.T) {
	task := demandTask(func(task *schema.Task) {
		task.PlannedStart = "2024-03-01"
		task.PlannedEnd = "2024-03-05"
	})
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-01",
		To:       "2024-01-31",
		Projects: demandProjects,
		Tasks:    []schema.Task{task},
	})
	require.NoError(t, err)

	// No overlap with the requested range: no contribution, no unmodeled tally.
	assert.Empty(t, result.Entries)
	assert.Equal(t, schema.UnmodeledReasons{}, result.UnmodeledReasons)
}

func TestBuildDailyDemand_IncludeUnassigned(t *testing.T) {
	task := demandTask(func(task *schema.Task) {
		task.AssigneeID = ""
		task.RemainingHours = 5
	})
	result, err := BuildDailyDemand(DemandInput{
		From:              "2024-01-01",
		To:                "2024-01-05",
		Projects:          demandProjects,
		Tasks:             []schema.Task{task},
		IncludeUnassigned: true,
	})
	require.NoError(t, err)

	require.Len(t, result.Entries, 5)
	assert.Equal(t, UnassignedUserID, result.Entries[0].UserID)
	assert.Equal(t, 0, result.UnmodeledReasons.NoAssignee)
}

func TestBuildDailyDemand_UserFilter(t *testing.T) {
	tasks := []schema.Task{
		demandTask(func(task *schema.Task) { task.ID = "t1"; task.AssigneeID = "u1" }),
		demandTask(func(task *schema.Task) { task.ID = "t2"; task.AssigneeID = "u2" }),
	}
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-01",
		To:       "2024-01-05",
		Projects: demandProjects,
		Tasks:    tasks,
		UserIDs:  []string{"u2"},
	})
	require.NoError(t, err)

	for _, e := range result.Entries {
		assert.Equal(t, "u2", e.UserID)
	}
	require.NotEmpty(t, result.Entries)
}

func TestBuildDailyDemand_InvertedRange(t *testing.T) {
	result, err := BuildDailyDemand(DemandInput{
		From:     "2024-01-31",
		To:       "2024-01-01",
		Projects: demandProjects,
		Tasks:    []schema.Task{demandTask(nil)},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Equal(t, 0.0, result.DemandModeledHours)
}

func TestBuildDailyDemand_InvalidDate(t *testing.T) {
	_, err := BuildDailyDemand(DemandInput{From: "bad", To: "2024-01-31"})
	assert.Error(t, err)
}
