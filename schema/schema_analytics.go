package schema

import (
	"encoding/json"
	"math"
)

// Ratio is a utilization ratio. A zero-capacity day with positive demand is
// +Inf, which JSON cannot represent, so infinities encode as null.
type Ratio float64

// MarshalJSON implements json.Marshaler.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(r), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

// UserDailyUtilization joins capacity and demand for one user on one day.
// Utilization is demand/capacity; it is +Inf when capacity is zero but demand
// is positive, and 0 when both are zero.
type UserDailyUtilization struct {
	UserID        string  `json:"userId"`
	Date          string  `json:"date"` // YYYY-MM-DD
	CapacityHours float64 `json:"capacityHours"`
	DemandHours   float64 `json:"demandHours"`
	Utilization   Ratio   `json:"utilization"`
	OverByHours   float64 `json:"overByHours"` // max(0, demand - capacity*threshold)
}

// Overallocated reports whether this day carries more demand than the
// threshold-scaled capacity allows.
func (u UserDailyUtilization) Overallocated() bool {
	return u.OverByHours > 0
}

// UserWeeklyRollup groups daily utilization records by the Monday that starts
// their ISO week.
type UserWeeklyRollup struct {
	UserID             string  `json:"userId"`
	WeekStart          string  `json:"weekStartDate"` // Monday, YYYY-MM-DD
	TotalCapacityHours float64 `json:"totalCapacityHours"`
	TotalDemandHours   float64 `json:"totalDemandHours"`
	AverageUtilization float64 `json:"averageUtilization"`
	PeakDayUtilization Ratio   `json:"peakDayUtilization"`
	OverallocatedDays  int     `json:"overallocatedDays"`
}

// UtilizationResult is the workspace-level utilization report.
type UtilizationResult struct {
	Daily                  []UserDailyUtilization `json:"daily"`
	Weekly                 []UserWeeklyRollup     `json:"weekly,omitempty"`
	TotalCapacityHours     float64                `json:"totalCapacityHours"`
	TotalDemandHours       float64                `json:"totalDemandHours"`
	AverageUtilization     float64                `json:"averageUtilization"`
	OverallocatedUserCount int                    `json:"overallocatedUserCount"`
	Threshold              float64                `json:"threshold"`
	UnmodeledReasons       UnmodeledReasons       `json:"unmodeledReasons"`
}

// OverallocationTaskRef is one contributing task or allocation inside an
// overallocation entry.
type OverallocationTaskRef struct {
	TaskID      string       `json:"taskId,omitempty"` // Empty for allocation fallback
	ProjectID   string       `json:"projectId"`
	DemandHours float64      `json:"demandHours"`
	Source      DemandSource `json:"source"`
}

// OverallocationEntry is one (user, day) where demand exceeds threshold-scaled
// capacity, with the full contributing breakdown retained.
type OverallocationEntry struct {
	UserID        string                  `json:"userId"`
	Date          string                  `json:"date"` // YYYY-MM-DD
	CapacityHours float64                 `json:"capacityHours"`
	DemandHours   float64                 `json:"demandHours"`
	OverByHours   float64                 `json:"overByHours"`
	Tasks         []OverallocationTaskRef `json:"tasks"`
}

// OverallocationResult is the workspace-level overallocation report, sorted
// most over-allocated first.
type OverallocationResult struct {
	Entries                []OverallocationEntry `json:"entries"`
	TotalOverallocatedDays int                   `json:"totalOverallocatedDays"`
	AffectedUserCount      int                   `json:"affectedUserCount"`
	Threshold              float64               `json:"threshold"`
}

// Round2 rounds hours to two decimal places for reporting.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds utilization ratios to three decimal places for reporting.
// Infinities pass through untouched.
func Round3(v float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*1000) / 1000
}
