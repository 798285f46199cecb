package service

import (
	"context"
	"testing"

	"github.com/danielbarros/scrumcore/internal/repository"
	"github.com/danielbarros/scrumcore/internal/testutil"
)

// testEnv wires every service against one in-memory database. Repos are
// exposed alongside the services so tests can seed state directly.
type testEnv struct {
	tasks    *repository.SQLiteTaskRepo
	sprints  *repository.SQLiteSprintRepo
	sessions *repository.SQLiteRetroSessionRepo
	cards    *repository.SQLiteRetroCardRepo
	actions  *repository.SQLiteRetroActionRepo

	taskSvc    TaskService
	sprintSvc  SprintService
	retroSvc   RetroService
	metricsSvc MetricsService
	importSvc  ImportService
}

func setupEnv(t *testing.T) (context.Context, *testEnv) {
	t.Helper()
	database := testutil.NewTestDB(t)

	env := &testEnv{
		tasks:    repository.NewSQLiteTaskRepo(database),
		sprints:  repository.NewSQLiteSprintRepo(database),
		sessions: repository.NewSQLiteRetroSessionRepo(database),
		cards:    repository.NewSQLiteRetroCardRepo(database),
		actions:  repository.NewSQLiteRetroActionRepo(database),
	}
	env.taskSvc = NewTaskService(env.tasks, env.sprints, nil)
	env.sprintSvc = NewSprintService(env.sprints, env.tasks, testutil.NewTestUoW(database), nil)
	env.retroSvc = NewRetroService(env.sessions, env.cards, env.actions, env.sprints, nil)
	env.metricsSvc = NewMetricsService(env.sprints, env.tasks)
	env.importSvc = NewImportService(testutil.NewTestUoW(database), nil)
	return context.Background(), env
}
