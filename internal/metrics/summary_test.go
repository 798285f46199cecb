package metrics

import (
	"testing"
	"time"

	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(n int) *int { return &n }

func testSprint(committed, completed, capacity, totalDays, daysElapsed int) (*domain.Sprint, time.Time) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sprint := &domain.Sprint{
		ID:              "sprint-1",
		Name:            "Sprint 1",
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, totalDays),
		Capacity:        capacity,
		CommittedPoints: committed,
		CompletedPoints: completed,
		Status:          domain.SprintActive,
	}
	return sprint, start.AddDate(0, 0, daysElapsed)
}

func TestSummarize_Histograms(t *testing.T) {
	sprint, today := testSprint(20, 5, 20, 10, 2)
	tasks := []*domain.Task{
		{Status: domain.TaskDone, Type: domain.TypeStory, StoryPoints: pts(5)},
		{Status: domain.TaskInProgress, Type: domain.TypeBug, StoryPoints: pts(3)},
		{Status: domain.TaskTodo, Type: domain.TypeBug, StoryPoints: pts(8)},
	}

	s := Summarize(sprint, tasks, today)
	assert.Equal(t, 3, s.TasksTotal)
	assert.Equal(t, 1, s.TasksByStatus[domain.TaskDone])
	assert.Equal(t, 1, s.TasksByStatus[domain.TaskInProgress])
	assert.Equal(t, 2, s.TasksByType[domain.TypeBug])
	assert.Equal(t, 25, s.PercentageCompleted)
	assert.Equal(t, 8, s.DaysRemaining)
	assert.Equal(t, 10, s.TotalDays)
}

func TestSummarize_ZeroCommittedIsZeroPercent(t *testing.T) {
	sprint, today := testSprint(0, 0, 20, 10, 2)
	s := Summarize(sprint, nil, today)
	assert.Equal(t, 0, s.PercentageCompleted)
}

func TestSummarize_ScopeCreep(t *testing.T) {
	// 21 points committed at start, 13 more added later.
	sprint, today := testSprint(21, 0, 20, 10, 2)
	tasks := []*domain.Task{
		{Status: domain.TaskTodo, StoryPoints: pts(21)},
		{Status: domain.TaskTodo, StoryPoints: pts(13)},
	}
	s := Summarize(sprint, tasks, today)
	assert.Equal(t, 13, s.ScopeCreep)
}

func TestSummarize_AverageCycleTime(t *testing.T) {
	sprint, today := testSprint(20, 8, 20, 10, 5)
	start1 := today.Add(-96 * time.Hour)
	done1 := start1.Add(24 * time.Hour)
	start2 := today.Add(-72 * time.Hour)
	done2 := start2.Add(72 * time.Hour)
	tasks := []*domain.Task{
		{Status: domain.TaskDone, StartedAt: &start1, CompletedAt: &done1},
		{Status: domain.TaskDone, StartedAt: &start2, CompletedAt: &done2},
		{Status: domain.TaskDone, CompletedAt: &done2}, // no start timestamp, excluded
	}
	s := Summarize(sprint, tasks, today)
	require.NotNil(t, s.AverageCycleTime)
	assert.Equal(t, 48*time.Hour, *s.AverageCycleTime)
}

func TestSummarize_NoCycleTimeData(t *testing.T) {
	sprint, today := testSprint(20, 0, 20, 10, 5)
	tasks := []*domain.Task{
		{Status: domain.TaskInProgress},
	}
	s := Summarize(sprint, tasks, today)
	assert.Nil(t, s.AverageCycleTime)
}

func TestSummarize_IsPure(t *testing.T) {
	sprint, today := testSprint(20, 10, 20, 10, 3)
	tasks := []*domain.Task{{Status: domain.TaskDone, StoryPoints: pts(10)}}
	first := Summarize(sprint, tasks, today)
	second := Summarize(sprint, tasks, today)
	assert.Equal(t, first.PercentageCompleted, second.PercentageCompleted)
	assert.Equal(t, first.ScopeCreep, second.ScopeCreep)
	assert.Equal(t, ClassifyHealth(first), ClassifyHealth(second))
}
