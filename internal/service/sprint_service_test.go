package service

import (
	"testing"
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/danielbarros/scrumcore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSprintService_Create_Validation(t *testing.T) {
	ctx, env := setupEnv(t)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sp := testutil.NewTestSprint("Backwards sprint", testutil.WithSprintDates(start, start.AddDate(0, 0, -7)))
	err := env.sprintSvc.Create(ctx, sp)
	assert.True(t, apperr.IsValidation(err), "end date before start must be rejected: %v", err)

	sp = testutil.NewTestSprint("No capacity", testutil.WithCapacity(0))
	err = env.sprintSvc.Create(ctx, sp)
	assert.True(t, apperr.IsValidation(err))
}

func TestSprintService_Create_ForcesPlanningAndZeroTotals(t *testing.T) {
	ctx, env := setupEnv(t)

	sp := testutil.NewTestSprint("Tampered input",
		testutil.WithSprintStatus(domain.SprintActive),
		testutil.WithCommittedPoints(50),
		testutil.WithCompletedPoints(50),
	)
	require.NoError(t, env.sprintSvc.Create(ctx, sp))

	assert.Equal(t, domain.SprintPlanning, sp.Status)
	assert.Zero(t, sp.CommittedPoints)
	assert.Zero(t, sp.CompletedPoints)
}

func TestSprintService_ApplyPatch_OnlyTouchesSetFields(t *testing.T) {
	ctx, env := setupEnv(t)

	sp := testutil.NewTestSprint("Sprint 1")
	require.NoError(t, env.sprintSvc.Create(ctx, sp))

	capacity := 30
	patched, err := env.sprintSvc.ApplyPatch(ctx, sp.ID, domain.SprintPatch{Capacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, 30, patched.Capacity)
	assert.Equal(t, sp.Goal, patched.Goal)
	assert.Equal(t, "Sprint 1", patched.Name)

	blank := "   "
	_, err = env.sprintSvc.ApplyPatch(ctx, sp.ID, domain.SprintPatch{Name: &blank})
	assert.True(t, apperr.IsValidation(err))

	badEnd := sp.StartDate.AddDate(0, 0, -1)
	_, err = env.sprintSvc.ApplyPatch(ctx, sp.ID, domain.SprintPatch{EndDate: &badEnd})
	assert.True(t, apperr.IsValidation(err))
}

// Starting a sprint locks in the committed-point snapshot; tasks added
// afterwards widen scope creep but never move CommittedPoints.
func TestSprintService_Start_SnapshotIsImmutable(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Sprint 7", testutil.WithCapacity(20))
	require.NoError(t, env.sprints.Create(ctx, sprint))

	for _, p := range []int{8, 13} {
		task := testutil.NewTestTask("Planned work",
			testutil.WithStoryPoints(p),
			testutil.WithSprintID(sprint.ID),
			testutil.WithTaskStatus(domain.TaskTodo),
		)
		require.NoError(t, env.tasks.Create(ctx, task))
	}
	// Unestimated tasks count as zero in the snapshot.
	unestimated := testutil.NewTestTask("Unestimated", testutil.WithSprintID(sprint.ID))
	require.NoError(t, env.tasks.Create(ctx, unestimated))

	started, err := env.sprintSvc.Start(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintActive, started.Status)
	assert.Equal(t, 21, started.CommittedPoints)
	assert.True(t, started.IsOverCapacity())

	// Mid-sprint addition: the snapshot must not move.
	late := testutil.NewTestTask("Scope creep",
		testutil.WithStoryPoints(5),
		testutil.WithSprintID(sprint.ID),
	)
	require.NoError(t, env.taskSvc.Create(ctx, late))

	sprint, err = env.sprints.GetByID(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 21, sprint.CommittedPoints)
}

func TestSprintService_Start_RequiresPlanning(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Already running", testutil.WithSprintStatus(domain.SprintActive))
	require.NoError(t, env.sprints.Create(ctx, sprint))

	_, err := env.sprintSvc.Start(ctx, sprint.ID)
	assert.True(t, apperr.IsValidation(err))
}

func TestSprintService_Complete_ActiveOnly(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Never started")
	require.NoError(t, env.sprints.Create(ctx, sprint))

	_, err := env.sprintSvc.Complete(ctx, sprint.ID)
	assert.True(t, apperr.IsValidation(err))

	active := testutil.NewTestSprint("Running", testutil.WithSprintStatus(domain.SprintActive))
	require.NoError(t, env.sprints.Create(ctx, active))

	completed, err := env.sprintSvc.Complete(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintCompleted, completed.Status)
}

// Deleting a planning sprint must never take its tasks with it: every
// assigned task survives, unassigned.
func TestSprintService_Delete_UnassignsTasks(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Abandoned plan")
	require.NoError(t, env.sprints.Create(ctx, sprint))

	ids := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		task := testutil.NewTestTask("Planned task", testutil.WithSprintID(sprint.ID))
		require.NoError(t, env.tasks.Create(ctx, task))
		ids = append(ids, task.ID)
	}

	require.NoError(t, env.sprintSvc.Delete(ctx, sprint.ID))

	_, err := env.sprints.GetByID(ctx, sprint.ID)
	assert.True(t, apperr.IsNotFound(err))

	for _, id := range ids {
		task, err := env.tasks.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, task.SprintID)
	}
}

func TestSprintService_Delete_ActiveRejected(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Running", testutil.WithSprintStatus(domain.SprintActive))
	require.NoError(t, env.sprints.Create(ctx, sprint))

	err := env.sprintSvc.Delete(ctx, sprint.ID)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.sprints.GetByID(ctx, sprint.ID)
	assert.NoError(t, err, "rejected delete must leave the sprint in place")
}

func TestSprintService_Archive_CompletedAndPlanningOnly(t *testing.T) {
	ctx, env := setupEnv(t)

	active := testutil.NewTestSprint("Running", testutil.WithSprintStatus(domain.SprintActive))
	require.NoError(t, env.sprints.Create(ctx, active))
	_, err := env.sprintSvc.Archive(ctx, active.ID)
	assert.True(t, apperr.IsValidation(err))

	done := testutil.NewTestSprint("Finished", testutil.WithSprintStatus(domain.SprintCompleted))
	require.NoError(t, env.sprints.Create(ctx, done))
	archived, err := env.sprintSvc.Archive(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintArchived, archived.Status)
}

// Post-completion cleanup: unfinished tasks roll over to the next sprint,
// and both sprints' completed totals are re-derived.
func TestSprintService_ReassignTasks_RollOver(t *testing.T) {
	ctx, env := setupEnv(t)

	old := testutil.NewTestSprint("Sprint 8", testutil.WithSprintStatus(domain.SprintCompleted))
	next := testutil.NewTestSprint("Sprint 9")
	require.NoError(t, env.sprints.Create(ctx, old))
	require.NoError(t, env.sprints.Create(ctx, next))

	unfinished := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		task := testutil.NewTestTask("Leftover",
			testutil.WithStoryPoints(3),
			testutil.WithSprintID(old.ID),
			testutil.WithTaskStatus(domain.TaskInProgress),
		)
		require.NoError(t, env.tasks.Create(ctx, task))
		unfinished = append(unfinished, task.ID)
	}

	require.NoError(t, env.sprintSvc.ReassignTasks(ctx, unfinished, &next.ID))

	for _, id := range unfinished {
		task, err := env.tasks.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, task.SprintID)
		assert.Equal(t, next.ID, *task.SprintID)
	}
}

func TestSprintService_ReassignTasks_NilMeansBacklog(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Sprint 10", testutil.WithSprintStatus(domain.SprintCompleted))
	require.NoError(t, env.sprints.Create(ctx, sprint))

	task := testutil.NewTestTask("Back to the pool", testutil.WithSprintID(sprint.ID))
	require.NoError(t, env.tasks.Create(ctx, task))

	require.NoError(t, env.sprintSvc.ReassignTasks(ctx, []string{task.ID}, nil))

	task, err := env.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, task.SprintID)
}

func TestSprintService_RecomputeCompletedPoints_Idempotent(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Sprint 11", testutil.WithSprintStatus(domain.SprintActive))
	require.NoError(t, env.sprints.Create(ctx, sprint))

	task := testutil.NewTestTask("Shipped",
		testutil.WithStoryPoints(13),
		testutil.WithSprintID(sprint.ID),
		testutil.WithTaskStatus(domain.TaskTodo),
	)
	require.NoError(t, env.tasks.Create(ctx, task))
	_, err := env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskDone)
	require.NoError(t, err)

	first, err := env.sprintSvc.RecomputeCompletedPoints(ctx, sprint.ID)
	require.NoError(t, err)
	second, err := env.sprintSvc.RecomputeCompletedPoints(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, first.CompletedPoints)
	assert.Equal(t, first.CompletedPoints, second.CompletedPoints)
}
