package repository

import (
	"context"
	"time"

	"github.com/danielbarros/scrumcore/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*domain.Task, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.Task, error)
	ListBacklog(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// ClearSprint unassigns every task referencing the sprint and returns
	// the number of tasks touched. Used by sprint deletion.
	ClearSprint(ctx context.Context, sprintID string, now time.Time) (int, error)
}

type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*domain.Sprint, error)
	// ListCompleted returns up to limit completed sprints for the project,
	// most recently ended first. Feeds the velocity series.
	ListCompleted(ctx context.Context, projectID string, limit int) ([]*domain.Sprint, error)
	Update(ctx context.Context, s *domain.Sprint) error
	Delete(ctx context.Context, id string) error
}

type RetroSessionRepo interface {
	Create(ctx context.Context, s *domain.RetroSession) error
	GetByID(ctx context.Context, id string) (*domain.RetroSession, error)
	GetBySprint(ctx context.Context, sprintID string) (*domain.RetroSession, error)
	Update(ctx context.Context, s *domain.RetroSession) error
	Delete(ctx context.Context, id string) error
}

type RetroCardRepo interface {
	Create(ctx context.Context, c *domain.RetroCard) error
	GetByID(ctx context.Context, id string) (*domain.RetroCard, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.RetroCard, error)
	Update(ctx context.Context, c *domain.RetroCard) error
	Delete(ctx context.Context, id string) error
	// AddVote inserts the (card, user) vote pair. Returns false without
	// error when the user already voted on the card.
	AddVote(ctx context.Context, cardID, userID string, now time.Time) (bool, error)
	RemoveVote(ctx context.Context, cardID, userID string) error
	// CountVotesByUser counts distinct cards in the session the user has
	// voted on. Enforces the per-session vote cap.
	CountVotesByUser(ctx context.Context, sessionID, userID string) (int, error)
	// MaxOrder returns the highest card order within a column, or -1 when
	// the column is empty.
	MaxOrder(ctx context.Context, sessionID, column string) (int, error)
}

type RetroActionRepo interface {
	Create(ctx context.Context, a *domain.RetroActionItem) error
	GetByID(ctx context.Context, id string) (*domain.RetroActionItem, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.RetroActionItem, error)
	Update(ctx context.Context, a *domain.RetroActionItem) error
	Delete(ctx context.Context, id string) error
}
