package core

import (
	"github.com/capsight/capsight/core/dateutil"
	"github.com/capsight/capsight/schema"
)

// Allocation/load source labels for the capacity basis audit block.
const (
	allocationSourceAllocations = "allocations"
	allocationSourceNone        = "none"
	loadSourceCommittedPoints   = "committed_points"
)

// ComputeAllocatedHours converts project resource allocations into available
// sprint hours: each allocation window (defaulting to the sprint's own bounds
// when absent) is intersected with the sprint window, and its workdays are
// scaled by hoursPerDay and the allocation percentage. The sum is rounded to
// two decimals.
func ComputeAllocatedHours(sprintStart, sprintEnd string, allocations []schema.Allocation, hoursPerDay float64) (float64, error) {
	start, err := dateutil.ParseDay(sprintStart)
	if err != nil {
		return 0, err
	}
	end, err := dateutil.ParseDay(sprintEnd)
	if err != nil {
		return 0, err
	}
	if hoursPerDay <= 0 {
		hoursPerDay = schema.DefaultHoursPerDay
	}

	var total float64
	for _, alloc := range allocations {
		allocStart, allocEnd := start, end
		if alloc.StartDate != "" {
			if t, err := dateutil.ParseDay(alloc.StartDate); err == nil {
				allocStart = t
			}
		}
		if alloc.EndDate != "" {
			if t, err := dateutil.ParseDay(alloc.EndDate); err == nil {
				allocEnd = t
			}
		}

		overlapStart, overlapEnd, ok := dateutil.Overlap(allocStart, allocEnd, start, end)
		if !ok {
			continue
		}
		workdays := dateutil.CountWorkdays(overlapStart, overlapEnd)
		total += float64(workdays) * hoursPerDay * alloc.Percent / 100
	}
	return schema.Round2(total), nil
}

// LoadFromPoints converts story points into load hours. Points are the load
// proxy whenever task-level estimate hours are not tracked.
func LoadFromPoints(points, hoursPerPoint float64) float64 {
	if hoursPerPoint <= 0 {
		hoursPerPoint = schema.DefaultHoursPerPoint
	}
	return schema.Round2(points * hoursPerPoint)
}

// SprintCapacity compares allocated capacity against committed load for one
// sprint. Frozen point totals are used when present; otherwise they are
// computed live from the sprint's tasks. RemainingHours may be negative,
// which signals over-commitment.
func SprintCapacity(s *schema.Sprint, tasks []schema.Task, allocations []schema.Allocation, hoursPerDay, hoursPerPoint float64) (schema.SprintCapacityResult, error) {
	if hoursPerDay <= 0 {
		hoursPerDay = schema.DefaultHoursPerDay
	}
	if hoursPerPoint <= 0 {
		hoursPerPoint = schema.DefaultHoursPerPoint
	}

	capacityHours, err := ComputeAllocatedHours(s.StartDate, s.EndDate, allocations, hoursPerDay)
	if err != nil {
		return schema.SprintCapacityResult{}, err
	}

	committed := sumSprintPoints(s.ID, tasks, false)
	completed := sumSprintPoints(s.ID, tasks, true)
	if s.CommittedPoints != nil {
		committed = *s.CommittedPoints
	}
	if s.CompletedPoints != nil {
		completed = *s.CompletedPoints
	}

	loadHours := LoadFromPoints(committed, hoursPerPoint)

	start, err := dateutil.ParseDay(s.StartDate)
	if err != nil {
		return schema.SprintCapacityResult{}, err
	}
	end, err := dateutil.ParseDay(s.EndDate)
	if err != nil {
		return schema.SprintCapacityResult{}, err
	}

	allocationSource := allocationSourceAllocations
	if len(allocations) == 0 {
		allocationSource = allocationSourceNone
	}

	return schema.SprintCapacityResult{
		CapacityHours:        capacityHours,
		LoadHours:            loadHours,
		RemainingHours:       schema.Round2(capacityHours - loadHours),
		CommittedStoryPoints: committed,
		CompletedStoryPoints: completed,
		RemainingStoryPoints: committed - completed,
		CapacityBasis: schema.CapacityBasis{
			HoursPerDay:        hoursPerDay,
			Workdays:           dateutil.CountWorkdays(start, end),
			PointsToHoursRatio: hoursPerPoint,
			AllocationCount:    len(allocations),
			AllocationSource:   allocationSource,
			LoadSource:         loadSourceCommittedPoints,
		},
	}, nil
}
