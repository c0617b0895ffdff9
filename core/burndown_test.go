package core

import (
	"testing"

	"github.com/capsight/capsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBurndown_IdealLine(t *testing.T) {
	s := sprintFixture(schema.SprintActive)
	s.StartDate = "2024-01-01"
	s.EndDate = "2024-01-05"
	tasks := []schema.Task{
		{ID: "t1", SprintID: "s1", Status: schema.TaskOpen, StoryPoints: 10},
	}

	result, err := BuildBurndown(s, tasks)
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.TotalPoints)
	assert.Equal(t, schema.LiveScope, result.ScopeMode)
	require.Len(t, result.Buckets, 5)

	wantIdeal := []float64{10, 7.5, 5, 2.5, 0}
	for i, bucket := range result.Buckets {
		assert.Equal(t, wantIdeal[i], bucket.IdealRemaining)
		assert.Equal(t, 10.0, bucket.RemainingPoints) // Nothing completed yet
		assert.Equal(t, 0.0, bucket.CompletedPoints)
	}
}

func TestBuildBurndown_CompletionsAccumulate(t *testing.T) {
	s := sprintFixture(schema.SprintActive)
	s.StartDate = "2024-01-01"
	s.EndDate = "2024-01-05"
	tasks := []schema.Task{
		{ID: "t1", SprintID: "s1", Status: schema.TaskDone, StoryPoints: 5, CompletedAt: "2024-01-02"},
		{ID: "t2", SprintID: "s1", Status: schema.TaskDone, StoryPoints: 3, CompletedAt: "2024-01-04"},
		{ID: "t3", SprintID: "s1", Status: schema.TaskOpen, StoryPoints: 2},
	}

	result, err := BuildBurndown(s, tasks)
	require.NoError(t, err)
	require.Len(t, result.Buckets, 5)

	wantRemaining := []float64{10, 5, 5, 2, 2}
	wantCompleted := []float64{0, 5, 5, 8, 8}
	for i, bucket := range result.Buckets {
		assert.Equal(t, wantRemaining[i], bucket.RemainingPoints, bucket.Date)
		assert.Equal(t, wantCompleted[i], bucket.CompletedPoints, bucket.Date)
	}
}

func TestBuildBurndown_IncludesWeekends(t *testing.T) {
	s := sprintFixture(schema.SprintActive)
	s.StartDate = "2024-01-01"
	s.EndDate = "2024-01-12"
	tasks := []schema.Task{
		{ID: "t1", SprintID: "s1", Status: schema.TaskOpen, StoryPoints: 4},
	}

	result, err := BuildBurndown(s, tasks)
	require.NoError(t, err)

	// Calendar days, not workdays: Jan 1 through Jan 12 is 12 buckets.
	require.Len(t, result.Buckets, 12)
	assert.Equal(t, "2024-01-06", result.Buckets[5].Date)
}

func TestBuildBurndown_FrozenScope(t *testing.T) {
	s := sprintFixture(schema.SprintCompleted)
	s.StartDate = "2024-01-01"
	s.EndDate = "2024-01-05"
	committed := 10.0
	s.CommittedPoints = &committed

	// Task edits after completion do not move the baseline.
	tasks := []schema.Task{
		{ID: "t1", SprintID: "s1", Status: schema.TaskDone, StoryPoints: 25, CompletedAt: "2024-01-03"},
	}
	result, err := BuildBurndown(s, tasks)
	require.NoError(t, err)

	assert.Equal(t, schema.FrozenScope, result.ScopeMode)
	assert.Equal(t, 10.0, result.TotalPoints)

	// Completions beyond the frozen baseline clamp remaining at zero.
	last := result.Buckets[len(result.Buckets)-1]
	assert.Equal(t, 0.0, last.RemainingPoints)
	assert.Equal(t, 25.0, last.CompletedPoints)
}

func TestBuildBurndown_SingleDay(t *testing.T) {
	s := sprintFixture(schema.SprintActive)
	s.StartDate = "2024-01-03"
	s.EndDate = "2024-01-03"
	tasks := []schema.Task{
		{ID: "t1", SprintID: "s1", Status: schema.TaskOpen, StoryPoints: 6},
	}

	result, err := BuildBurndown(s, tasks)
	require.NoError(t, err)

	require.Len(t, result.Buckets, 1)
	assert.Equal(t, 0.0, result.Buckets[0].IdealRemaining)
	assert.Equal(t, 6.0, result.Buckets[0].RemainingPoints)
}

func TestBuildBurndown_EmptySeries(t *testing.T) {
	s := sprintFixture(schema.SprintActive)

	// Zero scope produces no buckets.
	result, err := BuildBurndown(s, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TotalPoints)
	assert.Empty(t, result.Buckets)

	// So does an inverted date range.
	s.StartDate = "2024-01-12"
	s.EndDate = "2024-01-01"
	result, err = BuildBurndown(s, []schema.Task{{ID: "t1", SprintID: "s1", StoryPoints: 5}})
	require.NoError(t, err)
	assert.Empty(t, result.Buckets)
}

func TestBuildBurndown_InvalidDates(t *testing.T) {
	s := sprintFixture(schema.SprintActive)
	s.StartDate = "01/01/2024"
	_, err := BuildBurndown(s, nil)
	assert.Error(t, err)
}
