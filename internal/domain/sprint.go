package domain

import (
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
)

type Sprint struct {
	ID        string
	ProjectID string
	Name      string
	Goal      string
	StartDate time.Time
	EndDate   time.Time

	// Capacity is the planned story-point budget. CommittedPoints is
	// snapshotted once on planning → active and never recomputed;
	// CompletedPoints is derived from task state and owned by
	// RecomputeCompleted, never written from client input.
	Capacity        int
	CommittedPoints int
	CompletedPoints int

	Status    SprintStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Start transitions planning → active and locks in the committed-point
// snapshot from the tasks currently assigned to the sprint. Tasks added or
// removed afterwards do not change CommittedPoints; the gap shows up as
// scope creep in the sprint summary.
func (s *Sprint) Start(tasksInSprint []*Task, now time.Time) error {
	if s.Status != SprintPlanning {
		return apperr.Validation("status", "sprint %q is %s, only a planning sprint can start", s.Name, s.Status)
	}
	total := 0
	for _, t := range tasksInSprint {
		total += t.Points()
	}
	s.CommittedPoints = total
	s.Status = SprintActive
	s.UpdatedAt = now
	return nil
}

// RecomputeCompleted sets CompletedPoints to the sum of story points over
// tasks in the sprint with status done. Pure function of current task
// state, safe to re-run after a partial failure.
func (s *Sprint) RecomputeCompleted(tasksInSprint []*Task, now time.Time) {
	total := 0
	for _, t := range tasksInSprint {
		if t.Status == TaskDone {
			total += t.Points()
		}
	}
	s.CompletedPoints = total
	s.UpdatedAt = now
}

// Complete transitions active → completed. Unfinished tasks are left where
// they are; moving them elsewhere is the caller's decision.
func (s *Sprint) Complete(now time.Time) error {
	if s.Status != SprintActive {
		return apperr.Validation("status", "sprint %q is %s, only an active sprint can complete", s.Name, s.Status)
	}
	s.Status = SprintCompleted
	s.UpdatedAt = now
	return nil
}

// ArchiveAfter reports whether the sprint may move to archived from its
// current status. Completed sprints archive terminally; a planning sprint
// may be archived without ever running.
func (s *Sprint) ArchiveAfter() bool {
	return s.Status == SprintCompleted || s.Status == SprintPlanning
}

// IsOverCapacity reports whether more points were committed than planned.
// An over-capacity sprint is a health signal, not a rejected state.
func (s *Sprint) IsOverCapacity() bool {
	return s.CommittedPoints > s.Capacity
}

// TotalDays is the sprint length in whole days.
func (s *Sprint) TotalDays() int {
	return int(s.EndDate.Sub(s.StartDate).Hours() / 24)
}

// DaysRemaining is the number of whole days until the end date, floored at 0.
func (s *Sprint) DaysRemaining(today time.Time) int {
	d := int(s.EndDate.Sub(today).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
