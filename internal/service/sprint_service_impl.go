package service

import (
	"context"
	"strings"
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/db"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/danielbarros/scrumcore/internal/repository"
	"github.com/google/uuid"
)

type sprintService struct {
	sprints  repository.SprintRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSprintService(sprints repository.SprintRepo, tasks repository.TaskRepo, uow db.UnitOfWork, observer UseCaseObserver) SprintService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &sprintService{sprints: sprints, tasks: tasks, uow: uow, observer: observer}
}

func (s *sprintService) Create(ctx context.Context, sp *domain.Sprint) error {
	if strings.TrimSpace(sp.Name) == "" {
		return apperr.Validation("name", "must not be empty")
	}
	if sp.ProjectID == "" {
		return apperr.Validation("projectId", "must not be empty")
	}
	if !sp.EndDate.After(sp.StartDate) {
		return apperr.Validation("endDate", "must be after start date")
	}
	if sp.Capacity < 1 {
		return apperr.Validation("capacity", "must be at least 1")
	}

	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sp.CreatedAt = now
	sp.UpdatedAt = now
	sp.Status = domain.SprintPlanning
	// Point totals are derived; a new sprint always starts at zero.
	sp.CommittedPoints = 0
	sp.CompletedPoints = 0
	return s.sprints.Create(ctx, sp)
}

func (s *sprintService) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	return s.sprints.GetByID(ctx, id)
}

func (s *sprintService) ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*domain.Sprint, error) {
	return s.sprints.ListByProject(ctx, projectID, includeArchived)
}

func (s *sprintService) ApplyPatch(ctx context.Context, id string, patch domain.SprintPatch) (*domain.Sprint, error) {
	sp, err := s.sprints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.Validation("name", "must not be empty")
		}
		sp.Name = *patch.Name
	}
	if patch.Goal != nil {
		sp.Goal = *patch.Goal
	}
	if patch.StartDate != nil {
		sp.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		sp.EndDate = *patch.EndDate
	}
	if !sp.EndDate.After(sp.StartDate) {
		return nil, apperr.Validation("endDate", "must be after start date")
	}
	if patch.Capacity != nil {
		if *patch.Capacity < 1 {
			return nil, apperr.Validation("capacity", "must be at least 1")
		}
		sp.Capacity = *patch.Capacity
	}

	sp.UpdatedAt = time.Now().UTC()
	if err := s.sprints.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *sprintService) Start(ctx context.Context, id string) (sp *domain.Sprint, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "sprint-start",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"sprint": id},
		})
	}()

	sp, err = s.sprints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListBySprint(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err = sp.Start(tasks, now); err != nil {
		return nil, err
	}
	if err = s.sprints.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *sprintService) Complete(ctx context.Context, id string) (sp *domain.Sprint, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "sprint-complete",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"sprint": id},
		})
	}()

	sp, err = s.sprints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = sp.Complete(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = s.sprints.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *sprintService) Archive(ctx context.Context, id string) (*domain.Sprint, error) {
	sp, err := s.sprints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sp.ArchiveAfter() {
		return nil, apperr.Validation("status", "sprint %q is %s, only completed or planning sprints can be archived", sp.Name, sp.Status)
	}
	sp.Status = domain.SprintArchived
	sp.UpdatedAt = time.Now().UTC()
	if err := s.sprints.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// Delete removes a planning sprint, unassigning its tasks first so no task
// is ever deleted with it. Both steps run in one transaction.
func (s *sprintService) Delete(ctx context.Context, id string) error {
	sp, err := s.sprints.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sp.Status != domain.SprintPlanning {
		return apperr.Validation("status", "sprint %q is %s, only a planning sprint can be deleted", sp.Name, sp.Status)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSprints := repository.NewSQLiteSprintRepo(tx)

		if _, err := txTasks.ClearSprint(ctx, id, time.Now().UTC()); err != nil {
			return err
		}
		return txSprints.Delete(ctx, id)
	})
}

// ReassignTasks moves each task to the target sprint (nil = backlog) and
// recomputes completed points for every sprint touched. Not atomic across
// tasks: a failure partway leaves earlier tasks moved.
func (s *sprintService) ReassignTasks(ctx context.Context, taskIDs []string, sprintID *string) error {
	if sprintID != nil {
		target, err := s.sprints.GetByID(ctx, *sprintID)
		if err != nil {
			return err
		}
		if target.Status == domain.SprintArchived {
			return apperr.Validation("sprintId", "sprint %q is archived", target.Name)
		}
	}

	now := time.Now().UTC()
	touched := make(map[string]bool)
	if sprintID != nil {
		touched[*sprintID] = true
	}
	for _, taskID := range taskIDs {
		t, err := s.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if t.SprintID != nil {
			touched[*t.SprintID] = true
		}
		t.SprintID = sprintID
		t.UpdatedAt = now
		if err := s.tasks.Update(ctx, t); err != nil {
			return err
		}
	}

	for id := range touched {
		if _, err := s.RecomputeCompletedPoints(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *sprintService) RecomputeCompletedPoints(ctx context.Context, sprintID string) (*domain.Sprint, error) {
	sp, err := s.sprints.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListBySprint(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	sp.RecomputeCompleted(tasks, time.Now().UTC())
	if err := s.sprints.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}
