package repository

import (
	"context"
	"testing"
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/danielbarros/scrumcore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaskRepos(t *testing.T) (context.Context, *SQLiteTaskRepo, *SQLiteSprintRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return context.Background(), NewSQLiteTaskRepo(db), NewSQLiteSprintRepo(db)
}

func TestTaskRepo_CreateAndGet_RoundTrip(t *testing.T) {
	ctx, tasks, _ := setupTaskRepos(t)

	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask("Implement login",
		testutil.WithTaskType(domain.TypeStory),
		testutil.WithStoryPoints(5),
		testutil.WithAssignees("user-a", "user-b"),
	)
	task.DueDate = &due
	task.Tags = []string{"auth", "frontend"}
	task.AcceptanceCriteria = []domain.AcceptanceCriterion{
		{Text: "login form renders", Completed: true},
		{Text: "session persists", Completed: false},
	}
	require.NoError(t, tasks.Create(ctx, task))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, domain.TypeStory, got.Type)
	require.NotNil(t, got.StoryPoints)
	assert.Equal(t, 5, *got.StoryPoints)
	assert.Equal(t, []string{"user-a", "user-b"}, got.Assignees)
	assert.Equal(t, []string{"auth", "frontend"}, got.Tags)
	require.Len(t, got.AcceptanceCriteria, 2)
	assert.True(t, got.AcceptanceCriteria[0].Completed)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)
	assert.Nil(t, got.SprintID)
	assert.Nil(t, got.CompletedAt)
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	ctx, tasks, _ := setupTaskRepos(t)
	_, err := tasks.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestTaskRepo_Update_NotFound(t *testing.T) {
	ctx, tasks, _ := setupTaskRepos(t)
	task := testutil.NewTestTask("ghost")
	err := tasks.Update(ctx, task)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestTaskRepo_ListByProject_ExcludesArchivedByDefault(t *testing.T) {
	ctx, tasks, _ := setupTaskRepos(t)

	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask("active one")))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask("archived one",
		testutil.WithTaskStatus(domain.TaskArchived))))

	listed, err := tasks.ListByProject(ctx, testutil.TestProjectID, false)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	all, err := tasks.ListByProject(ctx, testutil.TestProjectID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTaskRepo_ListBySprintAndBacklog(t *testing.T) {
	ctx, tasks, sprints := setupTaskRepos(t)

	sprint := testutil.NewTestSprint("Sprint 1")
	require.NoError(t, sprints.Create(ctx, sprint))

	inSprint := testutil.NewTestTask("in sprint", testutil.WithSprintID(sprint.ID))
	backlog := testutil.NewTestTask("in backlog")
	require.NoError(t, tasks.Create(ctx, inSprint))
	require.NoError(t, tasks.Create(ctx, backlog))

	bySprint, err := tasks.ListBySprint(ctx, sprint.ID)
	require.NoError(t, err)
	require.Len(t, bySprint, 1)
	assert.Equal(t, inSprint.ID, bySprint[0].ID)

	inBacklog, err := tasks.ListBacklog(ctx, testutil.TestProjectID)
	require.NoError(t, err)
	require.Len(t, inBacklog, 1)
	assert.Equal(t, backlog.ID, inBacklog[0].ID)
}

func TestTaskRepo_ClearSprint_UnassignsAll(t *testing.T) {
	ctx, tasks, sprints := setupTaskRepos(t)

	sprint := testutil.NewTestSprint("Sprint 1")
	require.NoError(t, sprints.Create(ctx, sprint))

	for i := 0; i < 4; i++ {
		require.NoError(t, tasks.Create(ctx,
			testutil.NewTestTask("task", testutil.WithSprintID(sprint.ID))))
	}

	cleared, err := tasks.ClearSprint(ctx, sprint.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 4, cleared)

	remaining, err := tasks.ListBySprint(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	inBacklog, err := tasks.ListBacklog(ctx, testutil.TestProjectID)
	require.NoError(t, err)
	assert.Len(t, inBacklog, 4)
}
