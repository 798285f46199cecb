package testutil

import (
	"time"

	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/google/uuid"
)

// TestProjectID is the project every fixture belongs to unless overridden.
const TestProjectID = "proj-test"

// Task options

type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithStoryPoints(p int) TaskOption {
	return func(t *domain.Task) {
		t.StoryPoints = &p
	}
}

func WithSprintID(id string) TaskOption {
	return func(t *domain.Task) {
		t.SprintID = &id
	}
}

func WithTaskType(typ domain.TaskType) TaskOption {
	return func(t *domain.Task) {
		t.Type = typ
	}
}

func WithAssignees(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.Assignees = ids
	}
}

func WithCompletedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CompletedAt = &at
	}
}

func WithStartedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartedAt = &at
	}
}

func WithParentID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ParentID = &id
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:         uuid.New().String(),
		ProjectID:  TestProjectID,
		Title:      title,
		Type:       domain.TypeTask,
		Priority:   domain.PriorityMedium,
		Status:     domain.TaskBacklog,
		ReporterID: "user-reporter",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Sprint options

type SprintOption func(*domain.Sprint)

func WithSprintStatus(s domain.SprintStatus) SprintOption {
	return func(sp *domain.Sprint) {
		sp.Status = s
	}
}

func WithCapacity(c int) SprintOption {
	return func(sp *domain.Sprint) {
		sp.Capacity = c
	}
}

func WithCommittedPoints(p int) SprintOption {
	return func(sp *domain.Sprint) {
		sp.CommittedPoints = p
	}
}

func WithCompletedPoints(p int) SprintOption {
	return func(sp *domain.Sprint) {
		sp.CompletedPoints = p
	}
}

func WithSprintDates(start, end time.Time) SprintOption {
	return func(sp *domain.Sprint) {
		sp.StartDate = start
		sp.EndDate = end
	}
}

func NewTestSprint(name string, opts ...SprintOption) *domain.Sprint {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sp := &domain.Sprint{
		ID:        uuid.New().String(),
		ProjectID: TestProjectID,
		Name:      name,
		Goal:      "test goal",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 14),
		Capacity:  20,
		Status:    domain.SprintPlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

// Retro options

type SessionOption func(*domain.RetroSession)

func WithVotesPerPerson(n int) SessionOption {
	return func(s *domain.RetroSession) {
		s.Settings.VotesPerPerson = n
	}
}

func WithFormat(f domain.RetroFormat) SessionOption {
	return func(s *domain.RetroSession) {
		s.Format = f
	}
}

func WithFacilitator(id string) SessionOption {
	return func(s *domain.RetroSession) {
		s.FacilitatorID = id
	}
}

func NewTestSession(sprintID string, opts ...SessionOption) *domain.RetroSession {
	now := time.Now().UTC()
	s := &domain.RetroSession{
		ID:            uuid.New().String(),
		SprintID:      sprintID,
		Format:        domain.FormatMadSadGlad,
		Phase:         domain.PhaseBrainstorm,
		FacilitatorID: "user-facilitator",
		Settings: domain.RetroSettings{
			AllowAnonymous: true,
			VotesPerPerson: 3,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CardOption func(*domain.RetroCard)

func WithAnonymous() CardOption {
	return func(c *domain.RetroCard) {
		c.IsAnonymous = true
	}
}

func WithColumn(col string) CardOption {
	return func(c *domain.RetroCard) {
		c.Column = col
	}
}

func WithAuthor(id string) CardOption {
	return func(c *domain.RetroCard) {
		c.AuthorID = id
	}
}

func NewTestCard(sessionID, content string, opts ...CardOption) *domain.RetroCard {
	now := time.Now().UTC()
	c := &domain.RetroCard{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Column:    "glad",
		Content:   content,
		AuthorID:  "user-author",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestAction(sessionID, title string) *domain.RetroActionItem {
	now := time.Now().UTC()
	return &domain.RetroActionItem{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Title:     title,
		Status:    domain.ActionTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
