package metrics

import (
	"time"

	"github.com/danielbarros/scrumcore/internal/domain"
)

// BurndownPoint is one calendar day on the burndown chart.
type BurndownPoint struct {
	Date      time.Time
	Ideal     float64
	Remaining int
	Completed int
}

// Burndown produces one point per calendar day from sprint start to end
// inclusive (length totalDays + 1). Remaining is committed points minus the
// points completed by the end of that day, derived from task completion
// timestamps, so the series is restartable from current state alone.
func Burndown(sprint *domain.Sprint, tasks []*domain.Task) []BurndownPoint {
	totalDays := sprint.TotalDays()
	committed := sprint.CommittedPoints

	series := make([]BurndownPoint, 0, totalDays+1)
	for day := 0; day <= totalDays; day++ {
		date := sprint.StartDate.AddDate(0, 0, day)

		ideal := float64(committed)
		if totalDays > 0 {
			ideal = float64(committed) * (1 - float64(day)/float64(totalDays))
		}

		completed := pointsCompletedBy(tasks, date.AddDate(0, 0, 1))
		series = append(series, BurndownPoint{
			Date:      date,
			Ideal:     ideal,
			Remaining: committed - completed,
			Completed: completed,
		})
	}
	return series
}

// pointsCompletedBy sums story points of tasks completed strictly before
// the cutoff (the exclusive end of a day).
func pointsCompletedBy(tasks []*domain.Task, cutoff time.Time) int {
	total := 0
	for _, t := range tasks {
		if t.CompletedAt != nil && t.CompletedAt.Before(cutoff) {
			total += t.Points()
		}
	}
	return total
}
