package core

import (
	"math"
	"sort"

	"github.com/capsight/capsight/core/dateutil"
	"github.com/capsight/capsight/schema"
)

// BuildBurndown produces one bucket per calendar day across the sprint's
// entire range, weekends included, since burndown is a continuous series.
//
// The totalPoints baseline is the live sum of current task story points, or
// the frozen committedPoints for a COMPLETED sprint. Completions accumulate
// from tasks whose completion day falls on or before each bucket's day, and
// idealRemaining ramps linearly from totalPoints to zero over calendar days.
// The series is empty when totalPoints is zero or the range is inverted.
func BuildBurndown(s *schema.Sprint, tasks []schema.Task) (schema.BurndownResult, error) {
	start, err := dateutil.ParseDay(s.StartDate)
	if err != nil {
		return schema.BurndownResult{}, err
	}
	end, err := dateutil.ParseDay(s.EndDate)
	if err != nil {
		return schema.BurndownResult{}, err
	}

	scopeMode := schema.LiveScope
	totalPoints := sumSprintPoints(s.ID, tasks, false)
	if s.Status == schema.SprintCompleted && s.CommittedPoints != nil {
		scopeMode = schema.FrozenScope
		totalPoints = *s.CommittedPoints
	}

	result := schema.BurndownResult{
		TotalPoints: totalPoints,
		ScopeMode:   scopeMode,
	}
	if totalPoints == 0 || end.Before(start) {
		return result, nil
	}

	completions := sprintCompletions(s.ID, tasks)
	days := dateutil.EnumerateDates(start, end)
	totalDays := len(days)

	var cumulative float64
	next := 0
	for i, day := range days {
		for next < len(completions) && completions[next].day <= day {
			cumulative += completions[next].points
			next++
		}

		ideal := 0.0
		if totalDays > 1 {
			ideal = totalPoints * (1 - float64(i)/float64(totalDays-1))
		}

		result.Buckets = append(result.Buckets, schema.DailyBucket{
			Date:            day,
			TotalPoints:     totalPoints,
			RemainingPoints: math.Max(0, totalPoints-cumulative),
			CompletedPoints: cumulative,
			IdealRemaining:  schema.Round2(ideal),
		})
	}
	return result, nil
}

// completion is one task's story points landing on its completion day.
type completion struct {
	day    string
	points float64
}

// sprintCompletions collects the sprint's done tasks with a completion day,
// sorted ascending so the burndown walk can consume them in order.
func sprintCompletions(sprintID string, tasks []schema.Task) []completion {
	var completions []completion
	for _, t := range tasks {
		if t.SprintID != sprintID || t.Deleted {
			continue
		}
		if t.Status != schema.TaskDone || t.CompletedAt == "" {
			continue
		}
		completions = append(completions, completion{day: t.CompletedAt, points: t.StoryPoints})
	}
	sort.Slice(completions, func(i, j int) bool {
		return completions[i].day < completions[j].day
	})
	return completions
}
