package metrics

import (
	"testing"
	"time"

	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurndown_SeriesShape(t *testing.T) {
	sprint, _ := testSprint(20, 13, 20, 10, 10)

	day2 := sprint.StartDate.AddDate(0, 0, 2).Add(15 * time.Hour)
	day6 := sprint.StartDate.AddDate(0, 0, 6).Add(9 * time.Hour)
	tasks := []*domain.Task{
		{Status: domain.TaskDone, StoryPoints: pts(5), CompletedAt: &day2},
		{Status: domain.TaskDone, StoryPoints: pts(8), CompletedAt: &day6},
		{Status: domain.TaskInProgress, StoryPoints: pts(7)},
	}

	series := Burndown(sprint, tasks)
	require.Len(t, series, 11, "totalDays + 1 points")

	assert.Equal(t, 20, series[0].Remaining, "day 0 remaining equals committed")
	assert.Equal(t, 20.0, series[0].Ideal)
	assert.Equal(t, 0.0, series[10].Ideal)
	assert.Equal(t, 20-13, series[10].Remaining, "final remaining is committed minus completed")
	assert.Equal(t, 13, series[10].Completed)

	// Completion lands on the day the task finished.
	assert.Equal(t, 20, series[1].Remaining)
	assert.Equal(t, 15, series[2].Remaining)
	assert.Equal(t, 15, series[5].Remaining)
	assert.Equal(t, 7, series[6].Remaining)
}

func TestBurndown_IdealLineIsLinear(t *testing.T) {
	sprint, _ := testSprint(10, 0, 20, 5, 0)
	series := Burndown(sprint, nil)
	require.Len(t, series, 6)
	for i, p := range series {
		assert.InDelta(t, 10*(1-float64(i)/5), p.Ideal, 1e-9, "day %d", i)
	}
}

func TestBurndown_ZeroLengthSprint(t *testing.T) {
	sprint, _ := testSprint(10, 0, 20, 0, 0)
	series := Burndown(sprint, nil)
	require.Len(t, series, 1)
	assert.Equal(t, 10.0, series[0].Ideal)
	assert.Equal(t, 10, series[0].Remaining)
}

func TestBurndown_IsRestartable(t *testing.T) {
	sprint, _ := testSprint(20, 5, 20, 10, 4)
	done := sprint.StartDate.AddDate(0, 0, 1).Add(10 * time.Hour)
	tasks := []*domain.Task{
		{Status: domain.TaskDone, StoryPoints: pts(5), CompletedAt: &done},
	}
	first := Burndown(sprint, tasks)
	second := Burndown(sprint, tasks)
	assert.Equal(t, first, second)
}
