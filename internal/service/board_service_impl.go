package service

import (
	"context"
	"fmt"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/danielbarros/scrumcore/internal/repository"
)

// BoardColumns is the column order of the kanban board. Cancelled and
// archived tasks are not shown.
var BoardColumns = []domain.TaskStatus{
	domain.TaskBacklog,
	domain.TaskTodo,
	domain.TaskInProgress,
	domain.TaskInReview,
	domain.TaskInTesting,
	domain.TaskDone,
	domain.TaskBlocked,
}

type boardService struct {
	tasks     repository.TaskRepo
	taskSvc   TaskService
	wipLimits map[domain.TaskStatus]int
}

// NewBoardService creates the kanban reconciliation service. wipLimits maps
// a column to its advisory card limit; zero or missing means unlimited.
func NewBoardService(tasks repository.TaskRepo, taskSvc TaskService, wipLimits map[domain.TaskStatus]int) BoardService {
	return &boardService{tasks: tasks, taskSvc: taskSvc, wipLimits: wipLimits}
}

func (s *boardService) MoveTask(ctx context.Context, taskID, dropTarget string) (*MoveResult, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	to, err := s.resolveTarget(ctx, dropTarget)
	if err != nil {
		return nil, err
	}

	from := t.Status
	if to == from {
		// Dropped back onto its own column: no mutation, no event.
		return &MoveResult{Task: t, From: from, To: to, NoOp: true}, nil
	}

	updated, err := s.taskSvc.UpdateStatus(ctx, taskID, to)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{Task: updated, From: from, To: to}
	if warning, err := s.checkWIP(ctx, updated, to); err != nil {
		return nil, err
	} else if warning != "" {
		result.WIPWarning = warning
	}
	return result, nil
}

// resolveTarget maps a drop target onto a status: first as a literal status
// value, then as another task's id (joining that card's column).
func (s *boardService) resolveTarget(ctx context.Context, dropTarget string) (domain.TaskStatus, error) {
	if status := domain.TaskStatus(dropTarget); domain.ValidTaskStatuses[status] {
		return status, nil
	}
	other, err := s.tasks.GetByID(ctx, dropTarget)
	if err == nil {
		return other.Status, nil
	}
	if apperr.IsNotFound(err) {
		return "", apperr.Validation("dropTarget", "%q is neither a column nor a card", dropTarget)
	}
	return "", err
}

// checkWIP returns an advisory warning when the destination column now
// holds more tasks than its configured limit. It never blocks the move.
func (s *boardService) checkWIP(ctx context.Context, t *domain.Task, column domain.TaskStatus) (string, error) {
	limit := s.wipLimits[column]
	if limit <= 0 {
		return "", nil
	}

	var peers []*domain.Task
	var err error
	if t.SprintID != nil {
		peers, err = s.tasks.ListBySprint(ctx, *t.SprintID)
	} else {
		peers, err = s.tasks.ListByProject(ctx, t.ProjectID, false)
	}
	if err != nil {
		return "", err
	}

	count := 0
	for _, p := range peers {
		if p.Status == column {
			count++
		}
	}
	if count > limit {
		return fmt.Sprintf("column %s holds %d tasks, over its WIP limit of %d", column, count, limit), nil
	}
	return "", nil
}

func (s *boardService) Columns(ctx context.Context, projectID string, sprintID *string) ([]BoardColumn, error) {
	var tasks []*domain.Task
	var err error
	if sprintID != nil {
		tasks, err = s.tasks.ListBySprint(ctx, *sprintID)
	} else {
		tasks, err = s.tasks.ListByProject(ctx, projectID, false)
	}
	if err != nil {
		return nil, err
	}

	byStatus := make(map[domain.TaskStatus][]*domain.Task)
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	columns := make([]BoardColumn, 0, len(BoardColumns))
	for _, status := range BoardColumns {
		columns = append(columns, BoardColumn{
			Status:   status,
			Tasks:    byStatus[status],
			WIPLimit: s.wipLimits[status],
		})
	}
	return columns, nil
}
