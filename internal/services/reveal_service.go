package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/advent"
	"github.com/tbourn/gift-calendar/internal/answers"
	"github.com/tbourn/gift-calendar/internal/domain"
	"github.com/tbourn/gift-calendar/internal/repo"
)

// Reveal payload types.
const (
	RevealAnswers = "answers"
	RevealNotes   = "notes"
)

// RevealedAnswer is one aggregated answer with the friends who gave it.
type RevealedAnswer struct {
	ID        string   `json:"id"`
	Answer    string   `json:"answer"`
	Label     string   `json:"label"`
	VoteCount int      `json:"vote_count"`
	Voters    []string `json:"voters"`
}

// RevealResult is what the owner sees behind a door.
type RevealResult struct {
	Day        int              `json:"day"`
	Category   domain.Category  `json:"category"`
	Type       string           `json:"type"`
	Answers    []RevealedAnswer `json:"answers"`
	Winner     *RevealedAnswer  `json:"winner,omitempty"`
	TotalVotes int              `json:"total_votes"`
	Summary    string           `json:"summary,omitempty"`
	Empty      bool             `json:"empty"`
	Message    string           `json:"message,omitempty"`
	// FirstReveal is false when the day had already been opened.
	FirstReveal bool `json:"first_reveal"`
}

// RevealService opens calendar doors.
type RevealService struct {
	DB    *gorm.DB
	Views Invalidator
	// AllowTestMode lets callers bypass the unlock schedule.
	AllowTestMode bool
	// Location is the calendar time zone; nil means time.Local.
	Location *time.Location
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Reveal opens day on ownerID's calendar and returns its aggregated answers.
// Revealing an already revealed day returns the same payload.
func (s *RevealService) Reveal(ctx context.Context, ownerID string, day int, testMode bool) (*RevealResult, error) {
	const op = "RevealService.Reveal"
	if testMode && !s.AllowTestMode {
		return nil, wrap(op, ErrTestModeDisabled)
	}
	if !advent.IsUnlocked(day, clock(s.Now, s.Location), testMode) {
		return nil, wrap(op, ErrDayLocked)
	}

	tr := otel.Tracer("services/RevealService")
	ctx, span := tr.Start(ctx, "Reveal", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
		attribute.Int("day", day),
		attribute.Bool("test_mode", testMode),
	))
	defer span.End()

	cat, err := repo.GetCategory(ctx, s.DB, day)
	if err != nil {
		return nil, wrap(op, err, ErrCategoryNotFound)
	}
	first, err := repo.CreateReveal(ctx, s.DB, ownerID, day)
	if err != nil {
		return nil, wrap(op, err)
	}
	if first {
		invalidate(s.Views, ownerID)
	}

	rows, err := repo.ListAnswers(ctx, s.DB, ownerID, day)
	if err != nil {
		return nil, wrap(op, err)
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	voters, err := repo.VotersForAnswers(ctx, s.DB, ids)
	if err != nil {
		return nil, wrap(op, err)
	}
	byAnswer := make(map[string][]string, len(rows))
	for _, v := range voters {
		byAnswer[v.AnswerID] = append(byAnswer[v.AnswerID], DisplayName(v.Name, v.Email))
	}

	res := &RevealResult{
		Day:         day,
		Category:    *cat,
		Type:        RevealAnswers,
		Answers:     make([]RevealedAnswer, 0, len(rows)),
		FirstReveal: first,
	}
	if cat.IsNotes() {
		res.Type = RevealNotes
	}
	texts := make([]string, 0, len(rows))
	for _, r := range rows {
		names := byAnswer[r.ID]
		if names == nil {
			names = []string{}
		}
		res.Answers = append(res.Answers, RevealedAnswer{
			ID:        r.ID,
			Answer:    r.Answer,
			Label:     answers.Label(r.Answer),
			VoteCount: r.VoteCount,
			Voters:    names,
		})
		res.TotalVotes += r.VoteCount
		for i := 0; i < r.VoteCount; i++ {
			texts = append(texts, r.Answer)
		}
	}

	if len(rows) == 0 {
		res.Empty = true
		res.Message = "No answers yet for " + cat.Name + ". Invite more friends to vote!"
	} else {
		if res.Type == RevealAnswers {
			w := res.Answers[0]
			res.Winner = &w
		}
		res.Summary = answers.Summarize(texts, res.TotalVotes)
	}

	revealsTotal.WithLabelValues(res.Type).Inc()
	span.SetAttributes(attribute.Int("answers.count", len(rows)), attribute.Bool("reveal.first", first))
	return res, nil
}

// ResetReveals closes every door of ownerID's calendar again. Only available
// when test mode is allowed.
func (s *RevealService) ResetReveals(ctx context.Context, ownerID string) (int64, error) {
	const op = "RevealService.ResetReveals"
	if !s.AllowTestMode {
		return 0, wrap(op, ErrTestModeDisabled)
	}
	n, err := repo.DeleteReveals(ctx, s.DB, ownerID)
	if err != nil {
		return 0, wrap(op, err)
	}
	invalidate(s.Views, ownerID)
	return n, nil
}
