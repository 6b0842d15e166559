package repo

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/domain"
)

func TestIncrementAnswer_InsertThenIncrement(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	a1, err := IncrementAnswer(ctx, db, "owner", 1, "golden retriever")
	if err != nil || a1.VoteCount != 1 {
		t.Fatalf("first IncrementAnswer = (%+v, %v)", a1, err)
	}
	a2, err := IncrementAnswer(ctx, db, "owner", 1, "golden retriever")
	if err != nil {
		t.Fatalf("second IncrementAnswer: %v", err)
	}
	if a2.ID != a1.ID || a2.VoteCount != 2 {
		t.Fatalf("expected same row with count 2, got %+v (first id %s)", a2, a1.ID)
	}

	// Different category or owner gets its own row.
	b, _ := IncrementAnswer(ctx, db, "owner", 2, "golden retriever")
	c, _ := IncrementAnswer(ctx, db, "other", 1, "golden retriever")
	if b.ID == a1.ID || c.ID == a1.ID || b.VoteCount != 1 || c.VoteCount != 1 {
		t.Fatalf("answers must be scoped by owner and category: %+v %+v", b, c)
	}
}

func TestCreateVote_DuplicateRollsBackIncrement(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	submit := func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			a, err := IncrementAnswer(ctx, tx, "owner", 1, "cat")
			if err != nil {
				return err
			}
			return CreateVote(ctx, tx, "owner", "voter", 1, a.ID)
		})
	}
	if err := submit(); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if err := submit(); err != ErrDuplicate {
		t.Fatalf("second vote err = %v; want ErrDuplicate", err)
	}

	answers, err := ListAnswers(ctx, db, "owner", 1)
	if err != nil || len(answers) != 1 || answers[0].VoteCount != 1 {
		t.Fatalf("rollback must undo the increment, got (%+v, %v)", answers, err)
	}
	var votes int64
	db.Model(&domain.Vote{}).Count(&votes)
	if votes != 1 {
		t.Fatalf("expected exactly one vote row, got %d", votes)
	}
}

func TestListAnswers_OrderByCountThenInsertion(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()

	for _, s := range []string{"a", "b", "b", "c", "c"} {
		if _, err := IncrementAnswer(ctx, db, "o", 1, s); err != nil {
			t.Fatalf("IncrementAnswer(%s): %v", s, err)
		}
	}
	got, err := ListAnswers(ctx, db, "o", 1)
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	order := []string{got[0].Answer, got[1].Answer, got[2].Answer}
	if order[0] != "b" || order[1] != "c" || order[2] != "a" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestAnswerTotalsAndVoters(t *testing.T) {
	db := newFullDB(t)
	ctx := context.Background()
	seedUser(t, db, "v1", "vee@x.io", strp("Vee"))
	seedUser(t, db, "v2", "wanda@x.io", nil)

	cast := func(voter string, cat int, text string) string {
		var id string
		err := db.Transaction(func(tx *gorm.DB) error {
			a, err := IncrementAnswer(ctx, tx, "o", cat, text)
			if err != nil {
				return err
			}
			id = a.ID
			return CreateVote(ctx, tx, "o", voter, cat, a.ID)
		})
		if err != nil {
			t.Fatalf("cast %s/%d: %v", voter, cat, err)
		}
		return id
	}
	dog := cast("v1", 1, "dog")
	cast("v2", 1, "dog")
	cast("v3", 1, "owl")
	cast("v1", 7, "pizza")

	totals, err := AnswerTotals(ctx, db, "o")
	if err != nil || len(totals) != 2 {
		t.Fatalf("AnswerTotals = (%+v, %v)", totals, err)
	}
	if totals[0] != (CategoryTotals{CategoryID: 1, Answers: 2, Votes: 3}) {
		t.Fatalf("category 1 totals: %+v", totals[0])
	}
	if totals[1] != (CategoryTotals{CategoryID: 7, Answers: 1, Votes: 1}) {
		t.Fatalf("category 7 totals: %+v", totals[1])
	}

	rows, err := VotersForAnswers(ctx, db, []string{dog})
	if err != nil || len(rows) != 2 {
		t.Fatalf("VotersForAnswers = (%+v, %v)", rows, err)
	}
	if rows[0].VoterID != "v1" || rows[0].Name == nil || *rows[0].Name != "Vee" {
		t.Fatalf("first voter row: %+v", rows[0])
	}
	if rows[1].Name != nil || rows[1].Email == nil || *rows[1].Email != "wanda@x.io" {
		t.Fatalf("second voter row: %+v", rows[1])
	}
	if out, err := VotersForAnswers(ctx, db, nil); err != nil || out != nil {
		t.Fatalf("VotersForAnswers(nil) = (%v, %v)", out, err)
	}

	voted, err := HasVoted(ctx, db, "o", "v3")
	if err != nil || !voted {
		t.Fatalf("HasVoted(v3) = (%v, %v)", voted, err)
	}
	voted, _ = HasVoted(ctx, db, "o", "stranger")
	if voted {
		t.Fatalf("stranger should not have voted")
	}

	set, err := VotersOf(ctx, db, "o", []string{"v1", "v2", "stranger"})
	if err != nil || !set["v1"] || !set["v2"] || set["stranger"] {
		t.Fatalf("VotersOf = (%v, %v)", set, err)
	}
}
