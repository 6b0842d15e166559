package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/answers"
	"github.com/tbourn/gift-calendar/internal/domain"
	"github.com/tbourn/gift-calendar/internal/repo"
)

// AcceptedAnswer is the tally an answer reached after a vote.
type AcceptedAnswer struct {
	CategoryID int    `json:"category_id"`
	AnswerID   string `json:"answer_id"`
	Answer     string `json:"answer"`
	VoteCount  int    `json:"vote_count"`
}

// CategoryError is the failure of one category within a batch.
type CategoryError struct {
	CategoryID int    `json:"category_id"`
	Kind       Kind   `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// SubmitResult is the outcome of a batch of answers.
type SubmitResult struct {
	Submitted int              `json:"submitted"`
	Accepted  []AcceptedAnswer `json:"accepted"`
	Errors    []CategoryError  `json:"errors"`
}

// VoteService aggregates friends' answers into per-category tallies.
type VoteService struct {
	DB          *gorm.DB
	Invitations *InvitationService
	Views       Invalidator
	// MaxAnswerRunes caps normalized answers; zero means answers.MaxRunes.
	MaxAnswerRunes int
	// Location is the calendar time zone; nil means time.Local.
	Location *time.Location
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// SubmitAnswer records voterID's answer for one category of ownerID's
// calendar. The answer is aggregated with identical answers; a second vote
// by the same voter on the same category fails with ErrAlreadyVoted and
// leaves every tally unchanged.
//
// SubmitAnswer does not check the voting window or the owner's voting
// settings. Submit is the entry point for callers and enforces both before
// calling it.
func (s *VoteService) SubmitAnswer(ctx context.Context, ownerID, voterID string, categoryID int, raw string) (*AcceptedAnswer, error) {
	const op = "VoteService.SubmitAnswer"
	if voterID == ownerID {
		return nil, wrap(op, ErrSelfVote)
	}
	text := answers.Canonical(raw, s.MaxAnswerRunes)
	if text == "" {
		return nil, wrap(op, ErrEmptyAnswer)
	}

	tr := otel.Tracer("services/VoteService")
	ctx, span := tr.Start(ctx, "SubmitAnswer", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
		attribute.Int("category.id", categoryID),
	))
	defer span.End()

	if _, err := repo.GetCategory(ctx, s.DB, categoryID); err != nil {
		return nil, wrap(op, err, ErrCategoryNotFound)
	}

	// The transaction opens with a write so SQLite takes the write lock
	// up front instead of upgrading a read snapshot.
	var got *domain.CategoryAnswer
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := repo.IncrementAnswer(ctx, tx, ownerID, categoryID, text)
		if err != nil {
			return err
		}
		if err := repo.CreateVote(ctx, tx, ownerID, voterID, categoryID, a.ID); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrAlreadyVoted
			}
			return err
		}
		got = a
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrap(op, err)
	}
	return &AcceptedAnswer{
		CategoryID: categoryID,
		AnswerID:   got.ID,
		Answer:     got.Answer,
		VoteCount:  got.VoteCount,
	}, nil
}

// Submit records a batch of answers keyed by category id. Categories are
// processed independently; the call fails only if none succeeded. On success
// the voter's invitation is marked voted, by inviteToken when it matches.
func (s *VoteService) Submit(ctx context.Context, voter Principal, ownerID string, batch map[int]string, inviteToken string) (*SubmitResult, error) {
	const op = "VoteService.Submit"
	if voter.ID == "" {
		return nil, wrap(op, ErrUnauthenticated)
	}
	if voter.ID == ownerID {
		return nil, wrap(op, ErrSelfVote)
	}

	tr := otel.Tracer("services/VoteService")
	ctx, span := tr.Start(ctx, "Submit", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
		attribute.Int("answers.count", len(batch)),
	))
	defer span.End()

	owner, err := repo.GetUser(ctx, s.DB, ownerID)
	if err != nil {
		return nil, wrap(op, err, ErrCalendarNotFound)
	}
	if err := votingWindow(owner, clock(s.Now, s.Location)); err != nil {
		return nil, wrap(op, err)
	}
	if len(batch) == 0 {
		return nil, wrap(op, ErrNoAnswers)
	}

	ids := make([]int, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	res := &SubmitResult{Accepted: []AcceptedAnswer{}, Errors: []CategoryError{}}
	allDuplicates := true
	var storeErr error
	for _, id := range ids {
		a, err := s.SubmitAnswer(ctx, ownerID, voter.ID, id, batch[id])
		votesTotal.WithLabelValues(voteResult(err)).Inc()
		if err != nil {
			k := KindOf(err)
			if k == KindDependencyFailure {
				zerolog.Ctx(ctx).Error().Err(err).Int("category_id", id).Msg("vote failed")
				if storeErr == nil {
					storeErr = err
				}
			}
			if !errors.Is(err, ErrAlreadyVoted) {
				allDuplicates = false
			}
			res.Errors = append(res.Errors, CategoryError{
				CategoryID: id,
				Kind:       k,
				Code:       k.String(),
				Message:    MessageOf(err),
			})
			continue
		}
		res.Accepted = append(res.Accepted, *a)
	}
	res.Submitted = len(res.Accepted)

	if res.Submitted == 0 {
		span.SetStatus(codes.Error, "no category accepted")
		switch {
		case storeErr != nil:
			return res, wrap(op, storeErr)
		case allDuplicates:
			return res, wrap(op, ErrAlreadyVoted)
		default:
			return res, wrap(op, ErrNoValidAnswers)
		}
	}

	invalidate(s.Views, ownerID)
	if s.Invitations != nil {
		if _, err := s.Invitations.MarkVoted(ctx, ownerID, voter.ID, voter.Email, inviteToken); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("owner_id", ownerID).Msg("mark invitation voted failed")
		}
	}
	return res, nil
}
