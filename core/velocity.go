package core

import (
	"sort"

	"github.com/capsight/capsight/schema"
)

// ProjectVelocity reports committed/completed points for the most recent
// completed sprints of a project, ordered by end date descending, and the
// simple average of completed points across that window.
//
// Frozen point totals are authoritative where present. Sprints completed
// before scope freezing existed carry no frozen values, so their points are
// recomputed from current task data as a fallback.
func ProjectVelocity(sprints []schema.Sprint, tasks []schema.Task, window int) schema.VelocityResult {
	window = clampWindow(window)

	completed := make([]schema.Sprint, 0, len(sprints))
	for _, s := range sprints {
		if s.Status == schema.SprintCompleted {
			completed = append(completed, s)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		if completed[i].EndDate != completed[j].EndDate {
			return completed[i].EndDate > completed[j].EndDate
		}
		return completed[i].ID > completed[j].ID
	})
	if len(completed) > window {
		completed = completed[:window]
	}

	result := schema.VelocityResult{}
	var totalCompleted float64
	for _, s := range completed {
		v := schema.SprintVelocity{
			SprintID: s.ID,
			Name:     s.Name,
			EndDate:  s.EndDate,
			Frozen:   s.Frozen(),
		}
		if v.Frozen {
			v.CommittedPoints = *s.CommittedPoints
			v.CompletedPoints = *s.CompletedPoints
		} else {
			v.CommittedPoints = sumSprintPoints(s.ID, tasks, false)
			v.CompletedPoints = sumSprintPoints(s.ID, tasks, true)
		}
		totalCompleted += v.CompletedPoints
		result.Sprints = append(result.Sprints, v)
	}

	if len(result.Sprints) > 0 {
		result.RollingAverageCompletedPoints = schema.Round2(totalCompleted / float64(len(result.Sprints)))
	}
	return result
}

// clampWindow bounds the velocity window into [1, MaxVelocityWindow], using
// the default when the caller passes zero or less.
func clampWindow(window int) int {
	if window <= 0 {
		return schema.DefaultVelocityWindow
	}
	if window > schema.MaxVelocityWindow {
		return schema.MaxVelocityWindow
	}
	return window
}
