package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestApplyStatus_DoneSetsCompletedAt(t *testing.T) {
	task := &Task{Status: TaskTodo}
	task.ApplyStatus(TaskDone, testNow)
	assert.Equal(t, TaskDone, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, testNow, *task.CompletedAt)
}

func TestApplyStatus_LeavingDoneClearsCompletedAt(t *testing.T) {
	earlier := testNow.Add(-time.Hour)
	task := &Task{Status: TaskDone, CompletedAt: &earlier}
	task.ApplyStatus(TaskBlocked, testNow)
	assert.Equal(t, TaskBlocked, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestApplyStatus_CompletedAtIffDone(t *testing.T) {
	statuses := []TaskStatus{
		TaskBacklog, TaskTodo, TaskInProgress, TaskInReview,
		TaskInTesting, TaskDone, TaskBlocked, TaskCancelled, TaskArchived,
	}
	task := &Task{Status: TaskBacklog}
	for _, s := range statuses {
		task.ApplyStatus(s, testNow)
		if s == TaskDone {
			assert.NotNil(t, task.CompletedAt, "status=%s", s)
		} else {
			assert.Nil(t, task.CompletedAt, "status=%s", s)
		}
	}
}

func TestApplyStatus_FirstInProgressSetsStartedAt(t *testing.T) {
	task := &Task{Status: TaskTodo}
	task.ApplyStatus(TaskInProgress, testNow)
	require.NotNil(t, task.StartedAt)
	assert.Equal(t, testNow, *task.StartedAt)

	later := testNow.Add(48 * time.Hour)
	task.ApplyStatus(TaskInReview, later)
	task.ApplyStatus(TaskInProgress, later.Add(time.Hour))
	assert.Equal(t, testNow, *task.StartedAt, "StartedAt records first entry only")
}

func TestArchive_IsSoftDelete(t *testing.T) {
	task := &Task{Status: TaskInProgress, Title: "keep me"}
	task.Archive(testNow)
	assert.Equal(t, TaskArchived, task.Status)
	assert.Equal(t, "keep me", task.Title)
}

func TestPoints_NilIsZero(t *testing.T) {
	task := &Task{}
	assert.Equal(t, 0, task.Points())
	five := 5
	task.StoryPoints = &five
	assert.Equal(t, 5, task.Points())
}

func TestCanParent(t *testing.T) {
	cases := []struct {
		typ TaskType
		ok  bool
	}{
		{TypeEpic, true},
		{TypeStory, true},
		{TypeTask, false},
		{TypeBug, false},
		{TypeSpike, false},
	}
	for _, tc := range cases {
		task := &Task{Type: tc.typ}
		assert.Equal(t, tc.ok, task.CanParent(), "type=%s", tc.typ)
	}
}
