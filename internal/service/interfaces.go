package service

import (
	"context"
	"time"

	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/danielbarros/scrumcore/internal/importer"
	"github.com/danielbarros/scrumcore/internal/metrics"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*domain.Task, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.Task, error)
	ListBacklog(ctx context.Context, projectID string) ([]*domain.Task, error)
	// ApplyPatch mutates only the fields the patch enumerates; derived
	// fields (CompletedAt, point totals) are never client-writable.
	ApplyPatch(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	// UpdateStatus moves the task and maintains the CompletedAt invariant.
	// It recomputes the containing sprint's completed points before
	// returning.
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	// ReassignSprint moves the task into the given sprint (nil = backlog)
	// and recomputes completed points for both the old and new sprint.
	ReassignSprint(ctx context.Context, id string, sprintID *string) (*domain.Task, error)
	Archive(ctx context.Context, id string) error
}

type SprintService interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*domain.Sprint, error)
	ApplyPatch(ctx context.Context, id string, patch domain.SprintPatch) (*domain.Sprint, error)
	// Start snapshots committed points from the tasks currently assigned.
	Start(ctx context.Context, id string) (*domain.Sprint, error)
	// Complete finishes the sprint and leaves unfinished tasks untouched;
	// callers move them with ReassignTasks.
	Complete(ctx context.Context, id string) (*domain.Sprint, error)
	Archive(ctx context.Context, id string) (*domain.Sprint, error)
	// Delete is valid only while planning; it unassigns every task first.
	Delete(ctx context.Context, id string) error
	// ReassignTasks is the bulk move primitive for post-completion cleanup:
	// each task goes to the target sprint, or to the backlog when nil.
	ReassignTasks(ctx context.Context, taskIDs []string, sprintID *string) error
	// RecomputeCompletedPoints re-derives completed points from current
	// task state. Idempotent; safe to re-run after a partial failure.
	RecomputeCompletedPoints(ctx context.Context, sprintID string) (*domain.Sprint, error)
}

// MoveResult reports the outcome of a board drop.
type MoveResult struct {
	Task *domain.Task
	From domain.TaskStatus
	To   domain.TaskStatus
	// NoOp is true when the drop resolved to the task's current column.
	NoOp bool
	// WIPWarning is set when the destination column exceeds its advisory
	// limit. The move still happens.
	WIPWarning string
}

// BoardColumn is one kanban column with its tasks in display order.
type BoardColumn struct {
	Status   domain.TaskStatus
	Tasks    []*domain.Task
	WIPLimit int
}

type BoardService interface {
	// MoveTask maps a drop event onto a status transition. The drop target
	// may be a status value or another task's id (meaning "join that
	// card's column"); anything else is rejected as unresolvable.
	MoveTask(ctx context.Context, taskID, dropTarget string) (*MoveResult, error)
	// Columns returns the board for a sprint, or the whole project when
	// sprintID is nil.
	Columns(ctx context.Context, projectID string, sprintID *string) ([]BoardColumn, error)
}

type RetroService interface {
	CreateSession(ctx context.Context, sprintID string, format domain.RetroFormat, facilitatorID string, settings domain.RetroSettings) (*domain.RetroSession, error)
	GetSession(ctx context.Context, id string) (*domain.RetroSession, error)
	GetSessionBySprint(ctx context.Context, sprintID string) (*domain.RetroSession, error)
	// UpdatePhase is facilitator-only.
	UpdatePhase(ctx context.Context, sessionID string, phase domain.RetroPhase, actorID string) error
	// DeleteSession cascades to the session's cards and actions.
	// Facilitator-only.
	DeleteSession(ctx context.Context, sessionID, actorID string) error

	AddCard(ctx context.Context, sessionID, column, content, authorID string, anonymous bool) (*domain.RetroCard, error)
	ListCards(ctx context.Context, sessionID string) ([]*domain.RetroCard, error)
	// Vote adds actorID's vote; voting again on the same card is a no-op,
	// exceeding the session vote cap fails with LimitExceededError.
	Vote(ctx context.Context, cardID, actorID string) error
	Unvote(ctx context.Context, cardID, actorID string) error
	MoveCard(ctx context.Context, cardID, column string, order int) (*domain.RetroCard, error)
	// DeleteCard is permitted for the author, or for anyone when the card
	// is anonymous.
	DeleteCard(ctx context.Context, cardID, actorID string) error

	CreateAction(ctx context.Context, a *domain.RetroActionItem) error
	ListActions(ctx context.Context, sessionID string) ([]*domain.RetroActionItem, error)
	PatchAction(ctx context.Context, id string, patch domain.ActionItemPatch) (*domain.RetroActionItem, error)
	DeleteAction(ctx context.Context, id string) error
}

// SprintReport bundles the summary with its health classification.
type SprintReport struct {
	Summary metrics.SprintSummary
	Health  metrics.Health
}

type MetricsService interface {
	SprintReport(ctx context.Context, sprintID string, now time.Time) (*SprintReport, error)
	Burndown(ctx context.Context, sprintID string) ([]metrics.BurndownPoint, error)
	// Velocity covers up to window recently completed sprints.
	Velocity(ctx context.Context, projectID string, window int) (*metrics.VelocityReport, error)
	Workload(ctx context.Context, projectID string) ([]metrics.AssigneeWorkload, error)
}

// ImportSummary reports what a backlog import created.
type ImportSummary struct {
	SprintsCreated int
	TasksCreated   int
}

type ImportService interface {
	// ImportBacklog validates, converts, and persists a backlog file in one
	// transaction. Nothing is written if any entry fails validation.
	ImportBacklog(ctx context.Context, projectID, actorID string, file *importer.BacklogFile) (*ImportSummary, error)
}
