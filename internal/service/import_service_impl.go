package service

import (
	"context"
	"strings"
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/db"
	"github.com/danielbarros/scrumcore/internal/importer"
	"github.com/danielbarros/scrumcore/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observer UseCaseObserver) ImportService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &importService{uow: uow, observer: observer}
}

func (s *importService) ImportBacklog(ctx context.Context, projectID, actorID string, file *importer.BacklogFile) (summary *ImportSummary, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "backlog-import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project": projectID},
		})
	}()

	if len(file.Tasks) == 0 {
		return nil, apperr.Validation("tasks", "import file contains no tasks")
	}
	if errs := importer.ValidateBacklogFile(file); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, apperr.Validation("file", "invalid import file:\n  %s", strings.Join(msgs, "\n  "))
	}

	backlog, err := importer.Convert(file, projectID, actorID)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		for _, sp := range backlog.Sprints {
			if err := txSprints.Create(ctx, sp); err != nil {
				return err
			}
		}
		for _, t := range backlog.Tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportSummary{
		SprintsCreated: len(backlog.Sprints),
		TasksCreated:   len(backlog.Tasks),
	}, nil
}
