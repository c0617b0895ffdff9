package core

import (
	"sort"

	"github.com/capsight/capsight/schema"
)

// ComputeOverallocations re-derives demand with the full task/allocation
// breakdown retained, joins it with the capacity calendar, and emits only the
// (user, day) pairs where demand exceeds threshold-scaled capacity, most
// over-allocated first.
func ComputeOverallocations(in AnalyticsInput) (schema.OverallocationResult, error) {
	threshold := ClampThreshold(in.Threshold)

	demand, err := BuildDailyDemand(in.demandInput())
	if err != nil {
		return schema.OverallocationResult{}, err
	}

	result := schema.OverallocationResult{Threshold: threshold}

	users := unionUsers(demand.Entries, in.UserIDs)
	if len(users) == 0 {
		return result, nil
	}

	capMap, err := BuildCapacityMap(users, in.From, in.To, in.Overrides)
	if err != nil {
		return schema.OverallocationResult{}, err
	}

	// Group the raw entries by (user, date), keeping every contributing
	// task/allocation for the breakdown.
	type dayKey struct {
		userID string
		date   string
	}
	type dayLoad struct {
		total float64
		tasks []schema.OverallocationTaskRef
	}
	loads := make(map[dayKey]*dayLoad)
	var keys []dayKey

	for _, e := range demand.Entries {
		key := dayKey{e.UserID, e.Date}
		load, ok := loads[key]
		if !ok {
			load = &dayLoad{}
			loads[key] = load
			keys = append(keys, key)
		}
		load.total += e.Hours
		load.tasks = append(load.tasks, schema.OverallocationTaskRef{
			TaskID:      e.TaskID,
			ProjectID:   e.ProjectID,
			DemandHours: e.Hours,
			Source:      e.Source,
		})
	}

	affected := make(map[string]struct{})
	for _, key := range keys {
		load := loads[key]
		capacity := capMap[key.userID][key.date]
		overBy := load.total - capacity*threshold
		if overBy <= 0 {
			continue
		}
		result.Entries = append(result.Entries, schema.OverallocationEntry{
			UserID:        key.userID,
			Date:          key.date,
			CapacityHours: schema.Round2(capacity),
			DemandHours:   schema.Round2(load.total),
			OverByHours:   schema.Round2(overBy),
			Tasks:         load.tasks,
		})
		affected[key.userID] = struct{}{}
	}

	// Most over-allocated first; ties break deterministically by user and day.
	sort.Slice(result.Entries, func(i, j int) bool {
		a, b := result.Entries[i], result.Entries[j]
		if a.OverByHours != b.OverByHours {
			return a.OverByHours > b.OverByHours
		}
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		return a.Date < b.Date
	})

	result.TotalOverallocatedDays = len(result.Entries)
	result.AffectedUserCount = len(affected)
	return result, nil
}
