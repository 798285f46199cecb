// Package metrics computes derived sprint views: summary, health,
// burndown, velocity and workload. Every function is deterministic and
// side-effect-free; time enters only through explicit arguments, so callers
// recompute on read instead of persisting results.
package metrics

import (
	"math"
	"time"

	"github.com/danielbarros/scrumcore/internal/domain"
)

// SprintSummary is the on-demand rollup of one sprint and its tasks.
type SprintSummary struct {
	SprintID   string
	SprintName string

	TasksTotal    int
	TasksByStatus map[domain.TaskStatus]int
	TasksByType   map[domain.TaskType]int

	Capacity        int
	CommittedPoints int
	CompletedPoints int

	// PercentageCompleted is completed/committed * 100 rounded, 0 when
	// nothing was committed.
	PercentageCompleted int

	DaysRemaining  int
	TotalDays      int
	IsOverCapacity bool

	// ScopeCreep is the current assigned point total minus the committed
	// snapshot; positive means points were added after the sprint started.
	ScopeCreep int

	// AverageCycleTime is the mean completed-minus-started duration across
	// finished tasks, nil when no finished task carries a start timestamp.
	AverageCycleTime *time.Duration
}

// Summarize computes the SprintSummary for a sprint and its current tasks.
func Summarize(sprint *domain.Sprint, tasks []*domain.Task, today time.Time) SprintSummary {
	s := SprintSummary{
		SprintID:        sprint.ID,
		SprintName:      sprint.Name,
		TasksTotal:      len(tasks),
		TasksByStatus:   make(map[domain.TaskStatus]int),
		TasksByType:     make(map[domain.TaskType]int),
		Capacity:        sprint.Capacity,
		CommittedPoints: sprint.CommittedPoints,
		CompletedPoints: sprint.CompletedPoints,
		DaysRemaining:   sprint.DaysRemaining(today),
		TotalDays:       sprint.TotalDays(),
		IsOverCapacity:  sprint.IsOverCapacity(),
	}

	assignedPoints := 0
	var cycleTotal time.Duration
	cycleCount := 0
	for _, t := range tasks {
		s.TasksByStatus[t.Status]++
		s.TasksByType[t.Type]++
		assignedPoints += t.Points()
		if t.CompletedAt != nil && t.StartedAt != nil {
			cycleTotal += t.CompletedAt.Sub(*t.StartedAt)
			cycleCount++
		}
	}

	if sprint.CommittedPoints > 0 {
		s.PercentageCompleted = roundPct(float64(sprint.CompletedPoints) / float64(sprint.CommittedPoints) * 100)
	}
	s.ScopeCreep = assignedPoints - sprint.CommittedPoints
	if cycleCount > 0 {
		avg := cycleTotal / time.Duration(cycleCount)
		s.AverageCycleTime = &avg
	}
	return s
}

func roundPct(v float64) int {
	return int(math.Round(v))
}
