package service

import (
	"context"
	"strings"
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/danielbarros/scrumcore/internal/repository"
	"github.com/google/uuid"
)

// maxCardContentLen bounds feedback card content.
const maxCardContentLen = 500

type retroService struct {
	sessions repository.RetroSessionRepo
	cards    repository.RetroCardRepo
	actions  repository.RetroActionRepo
	sprints  repository.SprintRepo
	observer UseCaseObserver
}

func NewRetroService(
	sessions repository.RetroSessionRepo,
	cards repository.RetroCardRepo,
	actions repository.RetroActionRepo,
	sprints repository.SprintRepo,
	observer UseCaseObserver,
) RetroService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &retroService{
		sessions: sessions,
		cards:    cards,
		actions:  actions,
		sprints:  sprints,
		observer: observer,
	}
}

func (s *retroService) CreateSession(ctx context.Context, sprintID string, format domain.RetroFormat, facilitatorID string, settings domain.RetroSettings) (*domain.RetroSession, error) {
	if _, err := s.sprints.GetByID(ctx, sprintID); err != nil {
		return nil, err
	}
	if _, ok := domain.RetroFormatColumns[format]; !ok {
		return nil, apperr.Validation("format", "unknown retrospective format %q", format)
	}
	if facilitatorID == "" {
		return nil, apperr.Validation("facilitatorId", "must not be empty")
	}
	if settings.VotesPerPerson < 1 {
		return nil, apperr.Validation("votesPerPerson", "must be at least 1")
	}

	now := time.Now().UTC()
	session := &domain.RetroSession{
		ID:            uuid.New().String(),
		SprintID:      sprintID,
		Format:        format,
		Phase:         domain.PhaseBrainstorm,
		FacilitatorID: facilitatorID,
		Settings:      settings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *retroService) GetSession(ctx context.Context, id string) (*domain.RetroSession, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *retroService) GetSessionBySprint(ctx context.Context, sprintID string) (*domain.RetroSession, error) {
	return s.sessions.GetBySprint(ctx, sprintID)
}

func (s *retroService) UpdatePhase(ctx context.Context, sessionID string, phase domain.RetroPhase, actorID string) error {
	if !domain.ValidRetroPhases[phase] {
		return apperr.Validation("phase", "unknown phase %q", phase)
	}
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.FacilitatorID != actorID {
		return apperr.Forbidden(actorID, "only the facilitator may change the session phase")
	}
	session.Phase = phase
	session.UpdatedAt = time.Now().UTC()
	return s.sessions.Update(ctx, session)
}

func (s *retroService) DeleteSession(ctx context.Context, sessionID, actorID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "retro-delete-session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"session": sessionID},
		})
	}()

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.FacilitatorID != actorID {
		return apperr.Forbidden(actorID, "only the facilitator may delete the session")
	}
	// Cards, votes and actions cascade with the session row.
	return s.sessions.Delete(ctx, sessionID)
}

func (s *retroService) AddCard(ctx context.Context, sessionID, column, content, authorID string, anonymous bool) (*domain.RetroCard, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !domain.FormatHasColumn(session.Format, column) {
		return nil, apperr.Validation("column", "%q is not a column of the %s format", column, session.Format)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content", "must not be empty")
	}
	if len(content) > maxCardContentLen {
		return nil, apperr.Validation("content", "exceeds %d characters", maxCardContentLen)
	}
	if anonymous && !session.Settings.AllowAnonymous {
		return nil, apperr.Validation("isAnonymous", "session does not allow anonymous cards")
	}

	maxOrder, err := s.cards.MaxOrder(ctx, sessionID, column)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	card := &domain.RetroCard{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Column:      column,
		Content:     content,
		AuthorID:    authorID,
		IsAnonymous: anonymous,
		Order:       maxOrder + 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *retroService) ListCards(ctx context.Context, sessionID string) ([]*domain.RetroCard, error) {
	return s.cards.ListBySession(ctx, sessionID)
}

func (s *retroService) Vote(ctx context.Context, cardID, actorID string) error {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	// Re-voting an already voted card is an idempotent no-op, checked
	// before the cap so a repeat vote never trips the limit.
	if card.HasVote(actorID) {
		return nil
	}

	session, err := s.sessions.GetByID(ctx, card.SessionID)
	if err != nil {
		return err
	}
	used, err := s.cards.CountVotesByUser(ctx, card.SessionID, actorID)
	if err != nil {
		return err
	}
	if used >= session.Settings.VotesPerPerson {
		return apperr.LimitExceeded(session.Settings.VotesPerPerson,
			"user %s already placed %d of %d votes", actorID, used, session.Settings.VotesPerPerson)
	}

	_, err = s.cards.AddVote(ctx, cardID, actorID, time.Now().UTC())
	return err
}

func (s *retroService) Unvote(ctx context.Context, cardID, actorID string) error {
	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		return err
	}
	return s.cards.RemoveVote(ctx, cardID, actorID)
}

func (s *retroService) MoveCard(ctx context.Context, cardID, column string, order int) (*domain.RetroCard, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.GetByID(ctx, card.SessionID)
	if err != nil {
		return nil, err
	}
	if !domain.FormatHasColumn(session.Format, column) {
		return nil, apperr.Validation("column", "%q is not a column of the %s format", column, session.Format)
	}
	if order < 0 {
		return nil, apperr.Validation("order", "must not be negative")
	}

	card.Column = column
	card.Order = order
	card.UpdatedAt = time.Now().UTC()
	if err := s.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *retroService) DeleteCard(ctx context.Context, cardID, actorID string) error {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	// Anonymous cards are deletable by any participant by design.
	if !card.DeletableBy(actorID) {
		return apperr.Forbidden(actorID, "only the author may delete this card")
	}
	return s.cards.Delete(ctx, cardID)
}

func (s *retroService) CreateAction(ctx context.Context, a *domain.RetroActionItem) error {
	if _, err := s.sessions.GetByID(ctx, a.SessionID); err != nil {
		return err
	}
	if strings.TrimSpace(a.Title) == "" {
		return apperr.Validation("title", "must not be empty")
	}
	if a.Status == "" {
		a.Status = domain.ActionTodo
	}
	if !domain.ValidActionStatuses[a.Status] {
		return apperr.Validation("status", "unknown action status %q", a.Status)
	}
	for _, cardID := range a.CardIDs {
		card, err := s.cards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		if card.SessionID != a.SessionID {
			return apperr.Validation("cardIds", "card %s belongs to another session", cardID)
		}
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.actions.Create(ctx, a)
}

func (s *retroService) ListActions(ctx context.Context, sessionID string) ([]*domain.RetroActionItem, error) {
	return s.actions.ListBySession(ctx, sessionID)
}

func (s *retroService) PatchAction(ctx context.Context, id string, patch domain.ActionItemPatch) (*domain.RetroActionItem, error) {
	a, err := s.actions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperr.Validation("title", "must not be empty")
		}
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.ClearAssignee {
		a.AssigneeID = nil
	} else if patch.AssigneeID != nil {
		a.AssigneeID = patch.AssigneeID
	}
	if patch.Status != nil {
		// Action status transitions are unrestricted, any to any.
		if !domain.ValidActionStatuses[*patch.Status] {
			return nil, apperr.Validation("status", "unknown action status %q", *patch.Status)
		}
		a.Status = *patch.Status
	}
	if patch.ClearDueDate {
		a.DueDate = nil
	} else if patch.DueDate != nil {
		a.DueDate = patch.DueDate
	}
	if patch.CardIDs != nil {
		for _, cardID := range *patch.CardIDs {
			card, err := s.cards.GetByID(ctx, cardID)
			if err != nil {
				return nil, err
			}
			if card.SessionID != a.SessionID {
				return nil, apperr.Validation("cardIds", "card %s belongs to another session", cardID)
			}
		}
		a.CardIDs = *patch.CardIDs
	}

	a.UpdatedAt = time.Now().UTC()
	if err := s.actions.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *retroService) DeleteAction(ctx context.Context, id string) error {
	return s.actions.Delete(ctx, id)
}
