package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/danielbarros/scrumcore/internal/apperr"
	"github.com/danielbarros/scrumcore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRetroRepos(t *testing.T) (context.Context, *sql.DB, *SQLiteSprintRepo, *SQLiteRetroSessionRepo, *SQLiteRetroCardRepo, *SQLiteRetroActionRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return context.Background(), db,
		NewSQLiteSprintRepo(db),
		NewSQLiteRetroSessionRepo(db),
		NewSQLiteRetroCardRepo(db),
		NewSQLiteRetroActionRepo(db)
}

func TestRetroSessionRepo_OnePerSprint(t *testing.T) {
	ctx, _, sprints, sessions, _, _ := setupRetroRepos(t)

	sprint := testutil.NewTestSprint("Sprint 1")
	require.NoError(t, sprints.Create(ctx, sprint))
	require.NoError(t, sessions.Create(ctx, testutil.NewTestSession(sprint.ID)))

	err := sessions.Create(ctx, testutil.NewTestSession(sprint.ID))
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestRetroSessionRepo_DeleteCascades(t *testing.T) {
	ctx, db, sprints, sessions, cards, actions := setupRetroRepos(t)

	sprint := testutil.NewTestSprint("Sprint 1")
	require.NoError(t, sprints.Create(ctx, sprint))
	session := testutil.NewTestSession(sprint.ID)
	require.NoError(t, sessions.Create(ctx, session))

	card := testutil.NewTestCard(session.ID, "too many meetings", testutil.WithColumn("mad"))
	require.NoError(t, cards.Create(ctx, card))
	added, err := cards.AddVote(ctx, card.ID, "user-1", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, added)
	require.NoError(t, actions.Create(ctx, testutil.NewTestAction(session.ID, "cancel standup")))

	require.NoError(t, sessions.Delete(ctx, session.ID))

	_, err = cards.GetByID(ctx, card.ID)
	assert.True(t, apperr.IsNotFound(err), "cards should cascade")

	remaining, err := actions.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "actions should cascade")

	var votes int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM retro_card_votes`).Scan(&votes))
	assert.Equal(t, 0, votes, "votes should cascade")
}

func TestRetroCardRepo_VoteIsBinary(t *testing.T) {
	ctx, _, sprints, sessions, cards, _ := setupRetroRepos(t)

	sprint := testutil.NewTestSprint("Sprint 1")
	require.NoError(t, sprints.Create(ctx, sprint))
	session := testutil.NewTestSession(sprint.ID)
	require.NoError(t, sessions.Create(ctx, session))
	card := testutil.NewTestCard(session.ID, "good pairing")
	require.NoError(t, cards.Create(ctx, card))

	now := time.Now().UTC()
	added, err := cards.AddVote(ctx, card.ID, "user-1", now)
	require.NoError(t, err)
	assert.True(t, added)

	again, err := cards.AddVote(ctx, card.ID, "user-1", now)
	require.NoError(t, err)
	assert.False(t, again, "second vote by same user is ignored")

	got, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, got.Votes)

	count, err := cards.CountVotesByUser(ctx, session.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, cards.RemoveVote(ctx, card.ID, "user-1"))
	count, err = cards.CountVotesByUser(ctx, session.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRetroCardRepo_MaxOrderPerColumn(t *testing.T) {
	ctx, _, sprints, sessions, cards, _ := setupRetroRepos(t)

	sprint := testutil.NewTestSprint("Sprint 1")
	require.NoError(t, sprints.Create(ctx, sprint))
	session := testutil.NewTestSession(sprint.ID)
	require.NoError(t, sessions.Create(ctx, session))

	max, err := cards.MaxOrder(ctx, session.ID, "glad")
	require.NoError(t, err)
	assert.Equal(t, -1, max, "empty column")

	first := testutil.NewTestCard(session.ID, "a")
	first.Order = 0
	second := testutil.NewTestCard(session.ID, "b")
	second.Order = 1
	other := testutil.NewTestCard(session.ID, "c", testutil.WithColumn("mad"))
	other.Order = 7
	require.NoError(t, cards.Create(ctx, first))
	require.NoError(t, cards.Create(ctx, second))
	require.NoError(t, cards.Create(ctx, other))

	max, err = cards.MaxOrder(ctx, session.ID, "glad")
	require.NoError(t, err)
	assert.Equal(t, 1, max, "order is tracked per column")
}

func TestRetroCardRepo_ListBySession_AttachesVotes(t *testing.T) {
	ctx, _, sprints, sessions, cards, _ := setupRetroRepos(t)

	sprint := testutil.NewTestSprint("Sprint 1")
	require.NoError(t, sprints.Create(ctx, sprint))
	session := testutil.NewTestSession(sprint.ID)
	require.NoError(t, sessions.Create(ctx, session))

	a := testutil.NewTestCard(session.ID, "a")
	b := testutil.NewTestCard(session.ID, "b")
	require.NoError(t, cards.Create(ctx, a))
	require.NoError(t, cards.Create(ctx, b))
	now := time.Now().UTC()
	_, err := cards.AddVote(ctx, a.ID, "user-1", now)
	require.NoError(t, err)
	_, err = cards.AddVote(ctx, a.ID, "user-2", now.Add(time.Second))
	require.NoError(t, err)

	listed, err := cards.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	byID := map[string]int{}
	for _, c := range listed {
		byID[c.ID] = len(c.Votes)
	}
	assert.Equal(t, 2, byID[a.ID])
	assert.Equal(t, 0, byID[b.ID])
}
