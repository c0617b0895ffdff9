package core

import (
	"math"
	"sort"

	"github.com/capsight/capsight/core/dateutil"
	"github.com/capsight/capsight/schema"
)

// AnalyticsInput carries everything one utilization or overallocation report
// needs: the requested range and filters plus the already-fetched source data.
type AnalyticsInput struct {
	From string // Inclusive range start (YYYY-MM-DD)
	To   string // Inclusive range end (YYYY-MM-DD)

	UserIDs           []string // Explicitly requested users, joined with users found in demand
	ProjectIDs        []string
	Threshold         *float64 // Overallocation threshold; nil means the default
	IncludeDisabled   bool
	IncludeUnassigned bool
	IncludeWeekly     bool // Attach ISO-week rollups to utilization results

	Projects    []schema.Project
	Tasks       []schema.Task
	Allocations []schema.Allocation
	Overrides   []schema.CapacityOverride

	HoursPerDay float64 // Defaults to schema.DefaultHoursPerDay
}

// demandInput projects the analytics input onto the demand model's input.
func (in AnalyticsInput) demandInput() DemandInput {
	return DemandInput{
		From:              in.From,
		To:                in.To,
		Projects:          in.Projects,
		Tasks:             in.Tasks,
		Allocations:       in.Allocations,
		ProjectIDs:        in.ProjectIDs,
		UserIDs:           in.UserIDs,
		IncludeDisabled:   in.IncludeDisabled,
		IncludeUnassigned: in.IncludeUnassigned,
		HoursPerDay:       in.HoursPerDay,
	}
}

// ClampThreshold resolves the overallocation threshold: the default when
// absent, otherwise clamped into [MinThreshold, MaxThreshold]. The bound keeps
// nonsensical thresholds from silently suppressing or flooding signals.
func ClampThreshold(t *float64) float64 {
	if t == nil {
		return schema.DefaultThreshold
	}
	if *t < schema.MinThreshold {
		return schema.MinThreshold
	}
	if *t > schema.MaxThreshold {
		return schema.MaxThreshold
	}
	return *t
}

// ComputeUtilization joins the capacity calendar and the demand model into
// per-day utilization records plus workspace totals. The user scope is the
// union of users appearing in demand entries and explicitly requested users;
// when that union is empty the result is all-zero, not an error.
func ComputeUtilization(in AnalyticsInput) (schema.UtilizationResult, error) {
	threshold := ClampThreshold(in.Threshold)

	demand, err := BuildDailyDemand(in.demandInput())
	if err != nil {
		return schema.UtilizationResult{}, err
	}

	result := schema.UtilizationResult{
		Threshold:        threshold,
		UnmodeledReasons: demand.UnmodeledReasons,
	}

	users := unionUsers(demand.Entries, in.UserIDs)
	if len(users) == 0 {
		return result, nil
	}

	capMap, err := BuildCapacityMap(users, in.From, in.To, in.Overrides)
	if err != nil {
		return schema.UtilizationResult{}, err
	}
	demandByUserDate := aggregateDemand(demand.Entries)

	rangeStart, _ := dateutil.ParseDay(in.From)
	rangeEnd, _ := dateutil.ParseDay(in.To)
	days := dateutil.EnumerateDates(rangeStart, rangeEnd)

	var totalCapacity, totalDemand float64
	overallocatedUsers := make(map[string]struct{})

	for _, userID := range users {
		for _, day := range days {
			capacity := capMap[userID][day]
			demandHours := demandByUserDate[userID][day]
			utilization := safeUtilization(demandHours, capacity)
			overBy := math.Max(0, demandHours-capacity*threshold)

			result.Daily = append(result.Daily, schema.UserDailyUtilization{
				UserID:        userID,
				Date:          day,
				CapacityHours: schema.Round2(capacity),
				DemandHours:   schema.Round2(demandHours),
				Utilization:   schema.Ratio(schema.Round3(utilization)),
				OverByHours:   schema.Round2(overBy),
			})

			totalCapacity += capacity
			totalDemand += demandHours
			if overBy > 0 {
				overallocatedUsers[userID] = struct{}{}
			}
		}
	}

	result.TotalCapacityHours = schema.Round2(totalCapacity)
	result.TotalDemandHours = schema.Round2(totalDemand)
	if totalCapacity > 0 {
		result.AverageUtilization = schema.Round3(totalDemand / totalCapacity)
	}
	result.OverallocatedUserCount = len(overallocatedUsers)

	if in.IncludeWeekly {
		result.Weekly = RollupWeekly(result.Daily)
	}
	return result, nil
}

// RollupWeekly groups daily utilization records by user and by the Monday
// starting their ISO week, summing hours and tracking the peak day and the
// count of overallocated days.
func RollupWeekly(daily []schema.UserDailyUtilization) []schema.UserWeeklyRollup {
	type weekKey struct {
		userID    string
		weekStart string
	}
	buckets := make(map[weekKey]*schema.UserWeeklyRollup)

	for _, d := range daily {
		day, err := dateutil.ParseDay(d.Date)
		if err != nil {
			continue
		}
		key := weekKey{d.UserID, dateutil.FormatDay(dateutil.WeekStart(day))}
		b, ok := buckets[key]
		if !ok {
			b = &schema.UserWeeklyRollup{UserID: key.userID, WeekStart: key.weekStart}
			buckets[key] = b
		}
		b.TotalCapacityHours += d.CapacityHours
		b.TotalDemandHours += d.DemandHours
		if d.Utilization > b.PeakDayUtilization {
			b.PeakDayUtilization = d.Utilization
		}
		if d.Overallocated() {
			b.OverallocatedDays++
		}
	}

	rollups := make([]schema.UserWeeklyRollup, 0, len(buckets))
	for _, b := range buckets {
		b.TotalCapacityHours = schema.Round2(b.TotalCapacityHours)
		b.TotalDemandHours = schema.Round2(b.TotalDemandHours)
		if b.TotalCapacityHours > 0 {
			b.AverageUtilization = schema.Round3(b.TotalDemandHours / b.TotalCapacityHours)
		}
		rollups = append(rollups, *b)
	}
	sort.Slice(rollups, func(i, j int) bool {
		if rollups[i].UserID != rollups[j].UserID {
			return rollups[i].UserID < rollups[j].UserID
		}
		return rollups[i].WeekStart < rollups[j].WeekStart
	})
	return rollups
}

// unionUsers returns the sorted union of users found in demand entries and
// explicitly requested users.
func unionUsers(entries []schema.DemandEntry, requested []string) []string {
	set := make(map[string]struct{})
	for _, e := range entries {
		set[e.UserID] = struct{}{}
	}
	for _, id := range requested {
		if id != "" {
			set[id] = struct{}{}
		}
	}

	users := make([]string, 0, len(set))
	for id := range set {
		users = append(users, id)
	}
	sort.Strings(users)
	return users
}

// aggregateDemand sums demand entries per (user, date). Entries for the same
// day from different tasks or allocations add up, never overwrite.
func aggregateDemand(entries []schema.DemandEntry) map[string]map[string]float64 {
	byUser := make(map[string]map[string]float64)
	for _, e := range entries {
		perDay, ok := byUser[e.UserID]
		if !ok {
			perDay = make(map[string]float64)
			byUser[e.UserID] = perDay
		}
		perDay[e.Date] += e.Hours
	}
	return byUser
}

// safeUtilization guards the demand/capacity ratio against zero capacity:
// +Inf when there is demand anyway, 0 when there is none.
func safeUtilization(demand, capacity float64) float64 {
	if capacity == 0 {
		if demand > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return demand / capacity
}
