package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/danielbarros/scrumcore/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	sprints  repository.SprintRepo
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, sprints repository.SprintRepo, observer UseCaseObserver) TaskService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &taskService{tasks: tasks, sprints: sprints, observer: observer}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return apperr.Validation("title", "must not be empty")
	}
	if t.ProjectID == "" {
		return apperr.Validation("projectId", "must not be empty")
	}
	if t.Type == "" {
		t.Type = domain.TypeTask
	}
	if !domain.ValidTaskTypes[t.Type] {
		return apperr.Validation("type", "unknown task type %q", t.Type)
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if !domain.ValidTaskPriorities[t.Priority] {
		return apperr.Validation("priority", "unknown priority %q", t.Priority)
	}
	if t.Status == "" {
		t.Status = domain.TaskBacklog
	}
	if !domain.ValidTaskStatuses[t.Status] {
		return apperr.Validation("status", "unknown status %q", t.Status)
	}
	if t.StoryPoints != nil && !domain.ValidStoryPoints[*t.StoryPoints] {
		return apperr.Validation("storyPoints", "%d is not on the estimate scale", *t.StoryPoints)
	}
	if t.ParentID != nil {
		if err := s.checkParent(ctx, *t.ParentID); err != nil {
			return err
		}
	}
	if t.SprintID != nil {
		if _, err := s.sprints.GetByID(ctx, *t.SprintID); err != nil {
			return err
		}
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	// Derived timestamps are owned by the engine, never taken from input.
	t.StartedAt = nil
	t.CompletedAt = nil
	if t.Status == domain.TaskDone {
		t.CompletedAt = &now
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return err
	}
	if t.SprintID != nil {
		return s.recomputeSprint(ctx, *t.SprintID, now)
	}
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID, includeArchived)
}

func (s *taskService) ListBySprint(ctx context.Context, sprintID string) ([]*domain.Task, error) {
	return s.tasks.ListBySprint(ctx, sprintID)
}

func (s *taskService) ListBacklog(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListBacklog(ctx, projectID)
}

func (s *taskService) ApplyPatch(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperr.Validation("title", "must not be empty")
		}
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Type != nil {
		if !domain.ValidTaskTypes[*patch.Type] {
			return nil, apperr.Validation("type", "unknown task type %q", *patch.Type)
		}
		t.Type = *patch.Type
	}
	if patch.Priority != nil {
		if !domain.ValidTaskPriorities[*patch.Priority] {
			return nil, apperr.Validation("priority", "unknown priority %q", *patch.Priority)
		}
		t.Priority = *patch.Priority
	}
	if patch.ClearStoryPoints {
		t.StoryPoints = nil
	} else if patch.StoryPoints != nil {
		if !domain.ValidStoryPoints[*patch.StoryPoints] {
			return nil, apperr.Validation("storyPoints", "%d is not on the estimate scale", *patch.StoryPoints)
		}
		t.StoryPoints = patch.StoryPoints
	}
	if patch.Assignees != nil {
		t.Assignees = *patch.Assignees
	}
	if patch.Tags != nil {
		t.Tags = *patch.Tags
	}
	if patch.ClearParent {
		t.ParentID = nil
	} else if patch.ParentID != nil {
		if err := s.checkParent(ctx, *patch.ParentID); err != nil {
			return nil, err
		}
		t.ParentID = patch.ParentID
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.AcceptanceCriteria != nil {
		t.AcceptanceCriteria = *patch.AcceptanceCriteria
	}
	if patch.EstimatedHours != nil {
		t.EstimatedHours = patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		t.ActualHours = patch.ActualHours
	}

	now := time.Now().UTC()
	t.UpdatedAt = now
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	// Point changes shift the sprint's completed total when the task is done.
	if t.SprintID != nil {
		if err := s.recomputeSprint(ctx, *t.SprintID, now); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (t *domain.Task, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "task-update-status",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"task": id, "status": string(status)},
		})
	}()

	if !domain.ValidTaskStatuses[status] {
		return nil, apperr.Validation("status", "unknown status %q", status)
	}
	t, err = s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t.ApplyStatus(status, now)
	if err = s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	if t.SprintID != nil {
		if err = s.recomputeSprint(ctx, *t.SprintID, now); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (s *taskService) ReassignSprint(ctx context.Context, id string, sprintID *string) (t *domain.Task, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "task-reassign-sprint",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"task": id},
		})
	}()

	t, err = s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sprintID != nil {
		var target *domain.Sprint
		if target, err = s.sprints.GetByID(ctx, *sprintID); err != nil {
			return nil, err
		}
		if target.Status == domain.SprintArchived {
			return nil, apperr.Validation("sprintId", "sprint %q is archived", target.Name)
		}
	}

	oldSprint := t.SprintID
	now := time.Now().UTC()
	t.SprintID = sprintID
	t.UpdatedAt = now
	if err = s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	// A single move can shift two sprints' completed totals.
	if oldSprint != nil {
		if err = s.recomputeSprint(ctx, *oldSprint, now); err != nil {
			return nil, err
		}
	}
	if sprintID != nil && (oldSprint == nil || *oldSprint != *sprintID) {
		if err = s.recomputeSprint(ctx, *sprintID, now); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (s *taskService) Archive(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	t.Archive(now)
	if err := s.tasks.Update(ctx, t); err != nil {
		return err
	}
	if t.SprintID != nil {
		return s.recomputeSprint(ctx, *t.SprintID, now)
	}
	return nil
}

func (s *taskService) checkParent(ctx context.Context, parentID string) error {
	parent, err := s.tasks.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if !parent.CanParent() {
		return apperr.Validation("parentId", "parent must be an epic or story, got %s", parent.Type)
	}
	return nil
}

// recomputeSprint is the single writer of a sprint's CompletedPoints field.
func (s *taskService) recomputeSprint(ctx context.Context, sprintID string, now time.Time) error {
	sprint, err := s.sprints.GetByID(ctx, sprintID)
	if err != nil {
		return err
	}
	tasks, err := s.tasks.ListBySprint(ctx, sprintID)
	if err != nil {
		return err
	}
	sprint.RecomputeCompleted(tasks, now)
	if err := s.sprints.Update(ctx, sprint); err != nil {
		return fmt.Errorf("storing recomputed points for sprint %s: %w", sprintID, err)
	}
	return nil
}
