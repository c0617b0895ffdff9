package schema

// Custom string types for type safety.
type (
	// DemandSource identifies which rule produced a demand entry.
	DemandSource string

	// SprintStatus represents a sprint lifecycle state.
	SprintStatus string

	// TaskStatus represents the workflow state of a task.
	TaskStatus string

	// ScopeMode indicates whether burndown totals come from live task data
	// or from points frozen at sprint completion.
	ScopeMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the override store.
	DatabaseBackend string
)

// All demand sources supported.
const (
	TaskEstimateSource       DemandSource = "task_estimate"        // Remaining or adjusted estimate hours
	TaskDurationSpreadSource DemandSource = "task_duration_spread" // Derived from schedule length
	AllocationFallbackSource DemandSource = "allocation_fallback"  // Project allocation percentage
)

// All sprint lifecycle states. Completed and cancelled are terminal.
const (
	SprintPlanning  SprintStatus = "PLANNING"
	SprintActive    SprintStatus = "ACTIVE"
	SprintCompleted SprintStatus = "COMPLETED"
	SprintCancelled SprintStatus = "CANCELLED"
)

// All task statuses the engine reads.
const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// All scope modes for burndown baselines.
const (
	LiveScope   ScopeMode = "live"
	FrozenScope ScopeMode = "frozen"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All override store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Engine defaults. These are injected into the pure functions per call so
// callers can override them without mutating shared configuration.
const (
	// DefaultHoursPerDay is the assumed working hours for a weekday with no override.
	DefaultHoursPerDay = 8.0

	// DefaultHoursPerPoint converts story points to load hours when task-level
	// estimate hours are unavailable.
	DefaultHoursPerPoint = 2.0

	// DefaultThreshold is the overallocation threshold applied when the caller
	// does not supply one.
	DefaultThreshold = 1.0

	// MinThreshold and MaxThreshold bound caller-supplied thresholds so that
	// nonsensical values cannot suppress or flood overallocation signals.
	MinThreshold = 0.5
	MaxThreshold = 2.0

	// DefaultVelocityWindow and MaxVelocityWindow bound the number of completed
	// sprints considered by velocity reports.
	DefaultVelocityWindow = 5
	MaxVelocityWindow     = 20
)

// DayFormat is the day-granularity date representation used on all interfaces.
const DayFormat = "2006-01-02"

// SprintTransitions is the closed transition table for the sprint lifecycle.
// A state absent from the inner map is not reachable from the outer state.
var SprintTransitions = map[SprintStatus]map[SprintStatus]struct{}{
	SprintPlanning:  {SprintActive: {}, SprintCancelled: {}},
	SprintActive:    {SprintCompleted: {}, SprintCancelled: {}},
	SprintCompleted: {},
	SprintCancelled: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid override store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSprintStatuses lists all valid sprint lifecycle states.
var ValidSprintStatuses = map[SprintStatus]struct{}{
	SprintPlanning:  {},
	SprintActive:    {},
	SprintCompleted: {},
	SprintCancelled: {},
}

// IsTerminal reports whether a sprint status has no outbound transitions.
func (s SprintStatus) IsTerminal() bool {
	return s == SprintCompleted || s == SprintCancelled
}
