package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/gift-calendar/internal/domain"
)

func newRevealService(t *testing.T) (*RevealService, *VoteService) {
	t.Helper()
	db := newDB(t)
	addUser(t, db, "owner", "owner@x.io", "Olivia", "CODE0001")
	addUser(t, db, "alice", "alice@x.io", "Alice", "")
	addUser(t, db, "bob", "bob@x.io", "", "")
	addUser(t, db, "carol", "carol@x.io", "Carol", "")
	return &RevealService{DB: db, Location: time.UTC, Now: at(revealTime)}, newVoteService(db)
}

func TestReveal_GoldenRetrieverScenario(t *testing.T) {
	reveals, votes := newRevealService(t)
	ctx := context.Background()

	for voter, answer := range map[string]string{
		"alice": "Golden Retriever",
		"bob":   "golden retriever!!",
		"carol": "Cat",
	} {
		_, err := votes.Submit(ctx, Principal{ID: voter}, "owner", map[int]string{1: answer}, "")
		require.NoError(t, err)
	}

	res, err := reveals.Reveal(ctx, "owner", 1, false)
	require.NoError(t, err)
	assert.Equal(t, RevealAnswers, res.Type)
	assert.Equal(t, 3, res.TotalVotes)
	assert.False(t, res.Empty)
	assert.True(t, res.FirstReveal)
	require.Len(t, res.Answers, 2)

	require.NotNil(t, res.Winner)
	assert.Equal(t, "golden retriever", res.Winner.Answer)
	assert.Equal(t, "Golden Retriever", res.Winner.Label)
	assert.Equal(t, 2, res.Winner.VoteCount)
	assert.ElementsMatch(t, []string{"Alice", "bob"}, res.Winner.Voters)

	assert.Equal(t, "cat", res.Answers[1].Answer)
	assert.Equal(t, []string{"Carol"}, res.Answers[1].Voters)
	assert.Equal(t, `"golden" was mentioned 2 times`, res.Summary)
}

func TestReveal_IsIdempotent(t *testing.T) {
	reveals, votes := newRevealService(t)
	ctx := context.Background()
	_, err := votes.Submit(ctx, Principal{ID: "alice"}, "owner", map[int]string{2: "Lapland"}, "")
	require.NoError(t, err)

	first, err := reveals.Reveal(ctx, "owner", 2, false)
	require.NoError(t, err)
	second, err := reveals.Reveal(ctx, "owner", 2, false)
	require.NoError(t, err)

	assert.True(t, first.FirstReveal)
	assert.False(t, second.FirstReveal)
	second.FirstReveal = first.FirstReveal
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, countRows(t, reveals.DB, &domain.Reveal{}))
}

func TestReveal_LockedDaysAndTestMode(t *testing.T) {
	reveals, _ := newRevealService(t)
	ctx := context.Background()
	reveals.Now = at(time.Date(2025, time.December, 17, 12, 0, 0, 0, time.UTC))

	_, err := reveals.Reveal(ctx, "owner", 2, false)
	require.NoError(t, err, "day 2 unlocks on Dec 17")

	_, err = reveals.Reveal(ctx, "owner", 3, false)
	assert.True(t, errors.Is(err, ErrDayLocked))
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = reveals.Reveal(ctx, "owner", 3, true)
	assert.True(t, errors.Is(err, ErrTestModeDisabled))
	assert.Equal(t, KindForbidden, KindOf(err))

	reveals.AllowTestMode = true
	res, err := reveals.Reveal(ctx, "owner", 3, true)
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Nil(t, res.Winner)
	assert.Contains(t, res.Message, "No answers yet")

	_, err = reveals.Reveal(ctx, "owner", 10, true)
	assert.Equal(t, KindNotFound, KindOf(err))
	_, err = reveals.Reveal(ctx, "owner", 0, false)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestReveal_PersonalNotes(t *testing.T) {
	reveals, votes := newRevealService(t)
	ctx := context.Background()
	_, err := votes.Submit(ctx, Principal{ID: "alice"}, "owner", map[int]string{9: "Merry Christmas, you legend!"}, "")
	require.NoError(t, err)
	_, err = votes.Submit(ctx, Principal{ID: "carol"}, "owner", map[int]string{9: "Thanks for everything"}, "")
	require.NoError(t, err)

	res, err := reveals.Reveal(ctx, "owner", 9, false)
	require.NoError(t, err)
	assert.Equal(t, RevealNotes, res.Type)
	assert.Nil(t, res.Winner)
	assert.Len(t, res.Answers, 2)
	assert.Equal(t, 2, res.TotalVotes)
	assert.Equal(t, "2 friends shared their thoughts", res.Summary)
}

func TestResetReveals(t *testing.T) {
	reveals, _ := newRevealService(t)
	ctx := context.Background()
	views := &countingInvalidator{}
	reveals.Views = views

	_, err := reveals.ResetReveals(ctx, "owner")
	assert.True(t, errors.Is(err, ErrTestModeDisabled))

	reveals.AllowTestMode = true
	for _, d := range []int{1, 2, 3} {
		_, err := reveals.Reveal(ctx, "owner", d, false)
		require.NoError(t, err)
	}
	n, err := reveals.ResetReveals(ctx, "owner")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Zero(t, countRows(t, reveals.DB, &domain.Reveal{}))
	assert.Equal(t, 4, views.calls["owner"])
}
