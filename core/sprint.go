package core

import (
	"time"

	"github.com/capsight/capsight/core/dateutil"
	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
)

// ValidateTransition checks a sprint status change against the closed
// transition table. Completed and cancelled are terminal.
func ValidateTransition(from, to schema.SprintStatus) error {
	allowed, ok := schema.SprintTransitions[from]
	if !ok {
		return contract.NewInvalidTransition(from, to)
	}
	if _, ok := allowed[to]; !ok {
		return contract.NewInvalidTransition(from, to)
	}
	return nil
}

// TransitionSprint applies a status change to the sprint. On the transition
// to COMPLETED it freezes committed points (story points of all sprint tasks
// at that instant) and completed points (story points of done tasks) and
// stamps the completion day. Frozen values are write-once: they are never
// recomputed from live task data afterwards.
func TransitionSprint(s *schema.Sprint, to schema.SprintStatus, tasks []schema.Task, now time.Time) error {
	if err := ValidateTransition(s.Status, to); err != nil {
		return err
	}

	s.Status = to
	if to != schema.SprintCompleted {
		return nil
	}

	if s.CommittedPoints == nil {
		committed := sumSprintPoints(s.ID, tasks, false)
		s.CommittedPoints = &committed
	}
	if s.CompletedPoints == nil {
		completed := sumSprintPoints(s.ID, tasks, true)
		s.CompletedPoints = &completed
	}
	s.CompletedAt = dateutil.FormatDay(now)
	return nil
}

// UpdateSprintDetails edits the sprint's name, goal and date range. Terminal
// sprints are immutable.
func UpdateSprintDetails(s *schema.Sprint, name, goal, startDate, endDate string) error {
	if s.Status.IsTerminal() {
		return contract.NewSprintImmutable(s.ID, s.Status)
	}
	if startDate != "" {
		if _, err := dateutil.ParseDay(startDate); err != nil {
			return err
		}
		s.StartDate = startDate
	}
	if endDate != "" {
		if _, err := dateutil.ParseDay(endDate); err != nil {
			return err
		}
		s.EndDate = endDate
	}
	if name != "" {
		s.Name = name
	}
	if goal != "" {
		s.Goal = goal
	}
	return nil
}

// AssignTask links a task to the sprint. Rejected once the sprint is closed.
func AssignTask(s *schema.Sprint, task *schema.Task) error {
	if s.Status.IsTerminal() {
		return contract.NewSprintClosed(s.ID, s.Status)
	}
	task.SprintID = s.ID
	return nil
}

// RemoveTask unlinks a task from the sprint. Rejected once the sprint is closed.
func RemoveTask(s *schema.Sprint, task *schema.Task) error {
	if s.Status.IsTerminal() {
		return contract.NewSprintClosed(s.ID, s.Status)
	}
	task.SprintID = ""
	return nil
}

// sumSprintPoints totals the story points of the sprint's tasks, optionally
// counting only done ones. Soft-deleted tasks never count.
func sumSprintPoints(sprintID string, tasks []schema.Task, doneOnly bool) float64 {
	var total float64
	for _, t := range tasks {
		if t.SprintID != sprintID || t.Deleted {
			continue
		}
		if doneOnly && t.Status != schema.TaskDone {
			continue
		}
		total += t.StoryPoints
	}
	return total
}
