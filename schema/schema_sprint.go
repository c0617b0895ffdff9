package schema

// Sprint is the engine's view of a sprint record. CommittedPoints and
// CompletedPoints stay nil until the sprint transitions to COMPLETED, at which
// point they are frozen permanently and never recomputed from live task data.
type Sprint struct {
	ID              string       `json:"id"`
	ProjectID       string       `json:"projectId"`
	Name            string       `json:"name"`
	Goal            string       `json:"goal,omitempty"`
	Status          SprintStatus `json:"status"`
	StartDate       string       `json:"startDate"` // YYYY-MM-DD
	EndDate         string       `json:"endDate"`   // YYYY-MM-DD
	CommittedPoints *float64     `json:"committedPoints,omitempty"`
	CompletedPoints *float64     `json:"completedPoints,omitempty"`
	CompletedAt     string       `json:"completedAt,omitempty"` // Stamped on the COMPLETED transition
}

// Frozen reports whether the sprint carries scope-frozen point totals.
func (s *Sprint) Frozen() bool {
	return s.CommittedPoints != nil && s.CompletedPoints != nil
}

// CapacityBasis documents which inputs produced a sprint capacity report.
type CapacityBasis struct {
	HoursPerDay        float64 `json:"hoursPerDay"`
	Workdays           int     `json:"workdays"`
	PointsToHoursRatio float64 `json:"pointsToHoursRatio"`
	AllocationCount    int     `json:"allocationCount"`
	AllocationSource   string  `json:"allocationSource"` // "allocations" or "none"
	LoadSource         string  `json:"loadSource"`       // "committed_points"
}

// SprintCapacityResult compares allocated capacity against committed load for
// one sprint. RemainingHours may be negative, signalling over-commitment.
type SprintCapacityResult struct {
	CapacityHours        float64       `json:"capacityHours"`
	LoadHours            float64       `json:"loadHours"`
	RemainingHours       float64       `json:"remainingHours"`
	CommittedStoryPoints float64       `json:"committedStoryPoints"`
	CompletedStoryPoints float64       `json:"completedStoryPoints"`
	RemainingStoryPoints float64       `json:"remainingStoryPoints"`
	CapacityBasis        CapacityBasis `json:"capacityBasis"`
}

// DailyBucket is one calendar day in a burndown/burnup series. Burndown runs
// over every calendar day in the sprint range, weekends included.
type DailyBucket struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	TotalPoints     float64 `json:"totalPoints"`
	RemainingPoints float64 `json:"remainingPoints"`
	CompletedPoints float64 `json:"completedPoints"`
	IdealRemaining  float64 `json:"idealRemaining"`
}

// BurndownResult is the daily burndown/burnup series for one sprint.
type BurndownResult struct {
	TotalPoints float64       `json:"totalPoints"`
	ScopeMode   ScopeMode     `json:"scopeMode"`
	Buckets     []DailyBucket `json:"buckets"`
}

// SprintVelocity is one completed sprint's contribution to a velocity report.
type SprintVelocity struct {
	SprintID        string  `json:"sprintId"`
	Name            string  `json:"name"`
	EndDate         string  `json:"endDate"`
	CommittedPoints float64 `json:"committedPoints"`
	CompletedPoints float64 `json:"completedPoints"`
	Frozen          bool    `json:"frozen"` // False when recomputed from live task data
}

// VelocityResult is the rolling velocity report for one project.
type VelocityResult struct {
	Sprints                       []SprintVelocity `json:"sprints"`
	RollingAverageCompletedPoints float64          `json:"rollingAverageCompletedPoints"`
}
