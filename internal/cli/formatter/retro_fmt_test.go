package formatter

import (
	"testing"

	"github.com/danielbarros/scrumcore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatRetroBoard_HidesAnonymousAuthors(t *testing.T) {
	session := &domain.RetroSession{
		Format: domain.FormatMadSadGlad,
		Phase:  domain.PhaseVoting,
	}
	cards := []*domain.RetroCard{
		{ID: "card-1", Column: "glad", Content: "Great demo", AuthorID: "user-a", Votes: []string{"u1", "u2"}},
		{ID: "card-2", Column: "mad", Content: "Flaky CI", AuthorID: "user-b", IsAnonymous: true},
	}

	out := FormatRetroBoard(session, cards)
	assert.Contains(t, out, "Great demo")
	assert.Contains(t, out, "user-a")
	assert.Contains(t, out, "▲▲")
	assert.Contains(t, out, "anonymous")
	assert.NotContains(t, out, "user-b", "anonymous cards never print their author")
	assert.Contains(t, out, "SAD", "empty columns still render")
}

func TestFormatActionList(t *testing.T) {
	assignee := "user-a"
	actions := []*domain.RetroActionItem{
		{ID: "act-1", Title: "Speed up CI", Status: domain.ActionTodo, AssigneeID: &assignee},
		{ID: "act-2", Title: "Rotate on-call", Status: domain.ActionDone},
	}

	out := FormatActionList(actions)
	assert.Contains(t, out, "Speed up CI")
	assert.Contains(t, out, "user-a")
	assert.Contains(t, out, "done")
}
