package service

import (
	"testing"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/danielbarros/scrumcore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create_AppliesDefaults(t *testing.T) {
	ctx, env := setupEnv(t)

	task := &domain.Task{ProjectID: testutil.TestProjectID, Title: "Fix login flow", ReporterID: "user-r"}
	require.NoError(t, env.taskSvc.Create(ctx, task))

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.TypeTask, task.Type)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.TaskBacklog, task.Status)
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.StartedAt)
}

func TestTaskService_Create_RejectsOffScaleEstimate(t *testing.T) {
	ctx, env := setupEnv(t)

	task := testutil.NewTestTask("Over-precise estimate", testutil.WithStoryPoints(4))
	err := env.taskSvc.Create(ctx, task)
	assert.True(t, apperr.IsValidation(err), "4 is not on the estimate scale: %v", err)
}

func TestTaskService_Create_DoneTaskGetsCompletedAt(t *testing.T) {
	ctx, env := setupEnv(t)

	task := testutil.NewTestTask("Imported as done", testutil.WithTaskStatus(domain.TaskDone))
	require.NoError(t, env.taskSvc.Create(ctx, task))
	require.NotNil(t, task.CompletedAt)
}

func TestTaskService_Create_ParentMustBeEpicOrStory(t *testing.T) {
	ctx, env := setupEnv(t)

	bug := testutil.NewTestTask("A bug", testutil.WithTaskType(domain.TypeBug))
	require.NoError(t, env.tasks.Create(ctx, bug))

	child := testutil.NewTestTask("Subtask of a bug", testutil.WithParentID(bug.ID))
	err := env.taskSvc.Create(ctx, child)
	assert.True(t, apperr.IsValidation(err))

	epic := testutil.NewTestTask("An epic", testutil.WithTaskType(domain.TypeEpic))
	require.NoError(t, env.tasks.Create(ctx, epic))

	child = testutil.NewTestTask("Subtask of an epic", testutil.WithParentID(epic.ID))
	assert.NoError(t, env.taskSvc.Create(ctx, child))
}

// Moving a 5-point task into done must add its points to the sprint's
// completed total; moving it back out must remove them and clear the
// completion timestamp.
func TestTaskService_UpdateStatus_DonePointsFlowToSprint(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Sprint 12",
		testutil.WithSprintStatus(domain.SprintActive),
		testutil.WithCommittedPoints(20),
	)
	require.NoError(t, env.sprints.Create(ctx, sprint))

	task := testutil.NewTestTask("Checkout page",
		testutil.WithStoryPoints(5),
		testutil.WithSprintID(sprint.ID),
		testutil.WithTaskStatus(domain.TaskTodo),
	)
	require.NoError(t, env.tasks.Create(ctx, task))

	moved, err := env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskDone)
	require.NoError(t, err)
	require.NotNil(t, moved.CompletedAt)

	sprint, err = env.sprints.GetByID(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, sprint.CompletedPoints)

	// Reopening removes the points and the completion timestamp.
	moved, err = env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskBlocked)
	require.NoError(t, err)
	assert.Nil(t, moved.CompletedAt)

	sprint, err = env.sprints.GetByID(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sprint.CompletedPoints)
}

func TestTaskService_UpdateStatus_StartedAtSetOnFirstProgressOnly(t *testing.T) {
	ctx, env := setupEnv(t)

	task := testutil.NewTestTask("Spike auth", testutil.WithTaskStatus(domain.TaskTodo))
	require.NoError(t, env.tasks.Create(ctx, task))

	moved, err := env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskInProgress)
	require.NoError(t, err)
	require.NotNil(t, moved.StartedAt)
	first := *moved.StartedAt

	_, err = env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskTodo)
	require.NoError(t, err)

	moved, err = env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskInProgress)
	require.NoError(t, err)
	require.NotNil(t, moved.StartedAt)
	assert.True(t, moved.StartedAt.Equal(first), "re-entering in_progress must keep the original start")
}

func TestTaskService_UpdateStatus_UnknownStatus(t *testing.T) {
	ctx, env := setupEnv(t)

	task := testutil.NewTestTask("Any task")
	require.NoError(t, env.tasks.Create(ctx, task))

	_, err := env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskStatus("paused"))
	assert.True(t, apperr.IsValidation(err))
}

func TestTaskService_ReassignSprint_RecomputesBothSprints(t *testing.T) {
	ctx, env := setupEnv(t)

	from := testutil.NewTestSprint("Sprint 1", testutil.WithSprintStatus(domain.SprintActive))
	to := testutil.NewTestSprint("Sprint 2", testutil.WithSprintStatus(domain.SprintActive))
	require.NoError(t, env.sprints.Create(ctx, from))
	require.NoError(t, env.sprints.Create(ctx, to))

	task := testutil.NewTestTask("Done story",
		testutil.WithStoryPoints(8),
		testutil.WithSprintID(from.ID),
		testutil.WithTaskStatus(domain.TaskTodo),
	)
	require.NoError(t, env.tasks.Create(ctx, task))
	_, err := env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskDone)
	require.NoError(t, err)

	_, err = env.taskSvc.ReassignSprint(ctx, task.ID, &to.ID)
	require.NoError(t, err)

	from, err = env.sprints.GetByID(ctx, from.ID)
	require.NoError(t, err)
	to, err = env.sprints.GetByID(ctx, to.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, from.CompletedPoints, "points leave the old sprint with the task")
	assert.Equal(t, 8, to.CompletedPoints, "points arrive with the task")
}

func TestTaskService_ReassignSprint_ArchivedTargetRejected(t *testing.T) {
	ctx, env := setupEnv(t)

	target := testutil.NewTestSprint("Old sprint", testutil.WithSprintStatus(domain.SprintArchived))
	require.NoError(t, env.sprints.Create(ctx, target))

	task := testutil.NewTestTask("Orphan task")
	require.NoError(t, env.tasks.Create(ctx, task))

	_, err := env.taskSvc.ReassignSprint(ctx, task.ID, &target.ID)
	assert.True(t, apperr.IsValidation(err))
}

func TestTaskService_ApplyPatch_ClearFlagsDistinctFromUnset(t *testing.T) {
	ctx, env := setupEnv(t)

	task := testutil.NewTestTask("Estimated story", testutil.WithStoryPoints(8))
	require.NoError(t, env.tasks.Create(ctx, task))

	// A patch that touches nothing leaves the estimate alone.
	patched, err := env.taskSvc.ApplyPatch(ctx, task.ID, domain.TaskPatch{})
	require.NoError(t, err)
	require.NotNil(t, patched.StoryPoints)

	patched, err = env.taskSvc.ApplyPatch(ctx, task.ID, domain.TaskPatch{ClearStoryPoints: true})
	require.NoError(t, err)
	assert.Nil(t, patched.StoryPoints)
}

func TestTaskService_ApplyPatch_RepricingDoneTaskMovesSprintTotal(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Sprint 3", testutil.WithSprintStatus(domain.SprintActive))
	require.NoError(t, env.sprints.Create(ctx, sprint))

	task := testutil.NewTestTask("Re-estimated story",
		testutil.WithStoryPoints(3),
		testutil.WithSprintID(sprint.ID),
		testutil.WithTaskStatus(domain.TaskTodo),
	)
	require.NoError(t, env.tasks.Create(ctx, task))
	_, err := env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskDone)
	require.NoError(t, err)

	points := 8
	_, err = env.taskSvc.ApplyPatch(ctx, task.ID, domain.TaskPatch{StoryPoints: &points})
	require.NoError(t, err)

	sprint, err = env.sprints.GetByID(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, sprint.CompletedPoints)
}

func TestTaskService_Archive_RemovesPointsFromSprint(t *testing.T) {
	ctx, env := setupEnv(t)

	sprint := testutil.NewTestSprint("Sprint 4", testutil.WithSprintStatus(domain.SprintActive))
	require.NoError(t, env.sprints.Create(ctx, sprint))

	task := testutil.NewTestTask("Done then archived",
		testutil.WithStoryPoints(5),
		testutil.WithSprintID(sprint.ID),
		testutil.WithTaskStatus(domain.TaskTodo),
	)
	require.NoError(t, env.tasks.Create(ctx, task))
	_, err := env.taskSvc.UpdateStatus(ctx, task.ID, domain.TaskDone)
	require.NoError(t, err)

	require.NoError(t, env.taskSvc.Archive(ctx, task.ID))

	sprint, err = env.sprints.GetByID(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sprint.CompletedPoints)
}
