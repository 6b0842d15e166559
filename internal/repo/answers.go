// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// CategoryAnswer and Vote models, which together form the vote tally of a
// calendar.
//
// Functions:
//
//   - IncrementAnswer(ctx, tx, ownerID, categoryID, text) -> *domain.CategoryAnswer, error
//     Inserts the answer with vote_count = 1 or bumps vote_count on conflict.
//
//   - CreateVote(ctx, tx, ownerID, voterID, categoryID, answerID) -> error
//     Inserts a Vote row; returns ErrDuplicate when the voter already voted
//     for this (calendar, category).
//
//   - ListAnswers(ctx, db, ownerID, categoryID) -> []domain.CategoryAnswer, error
//     Returns answers ordered by vote_count DESC, created_at ASC, id ASC.
//
// IncrementAnswer and CreateVote are meant to run inside the same
// transaction so that a rejected vote also rolls back its increment.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/gift-calendar/internal/domain"
)

// CategoryTotals aggregates the answers of one category for a calendar.
type CategoryTotals struct {
	CategoryID int
	Answers    int64
	Votes      int64
}

// VoterRow is one vote joined with the voter's profile.
type VoterRow struct {
	AnswerID string
	VoterID  string
	Name     *string
	Email    *string
}

// IncrementAnswer upserts the (ownerID, categoryID, text) answer and returns
// the stored row with its current vote count.
func IncrementAnswer(ctx context.Context, db *gorm.DB, ownerID string, categoryID int, text string) (*domain.CategoryAnswer, error) {
	now := time.Now().UTC()
	row := &domain.CategoryAnswer{
		ID:              uuid.NewString(),
		CalendarOwnerID: ownerID,
		CategoryID:      categoryID,
		Answer:          text,
		VoteCount:       1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "calendar_owner_id"}, {Name: "category_id"}, {Name: "answer"}},
		DoUpdates: clause.Assignments(map[string]any{
			"vote_count": gorm.Expr("category_answers.vote_count + 1"),
			"updated_at": now,
		}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	// The primary key in row is ours only when the insert won; read it back.
	var got domain.CategoryAnswer
	if err := db.WithContext(ctx).
		Where("calendar_owner_id = ? AND category_id = ? AND answer = ?", ownerID, categoryID, text).
		First(&got).Error; err != nil {
		return nil, err
	}
	return &got, nil
}

// CreateVote records that voterID contributed answerID.
func CreateVote(ctx context.Context, db *gorm.DB, ownerID, voterID string, categoryID int, answerID string) error {
	v := &domain.Vote{
		ID:              uuid.NewString(),
		CalendarOwnerID: ownerID,
		VoterID:         voterID,
		CategoryID:      categoryID,
		AnswerID:        answerID,
		CreatedAt:       time.Now().UTC(),
	}
	return dup(db.WithContext(ctx).Omit(clause.Associations).Create(v).Error)
}

// ListAnswers returns the answers of one category, most voted first; ties
// are broken by insertion order.
func ListAnswers(ctx context.Context, db *gorm.DB, ownerID string, categoryID int) ([]domain.CategoryAnswer, error) {
	var out []domain.CategoryAnswer
	err := db.WithContext(ctx).
		Where("calendar_owner_id = ? AND category_id = ?", ownerID, categoryID).
		Order("vote_count DESC, created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// AnswerTotals returns per-category answer and vote totals for a calendar.
// Categories without answers are absent.
func AnswerTotals(ctx context.Context, db *gorm.DB, ownerID string) ([]CategoryTotals, error) {
	var out []CategoryTotals
	err := db.WithContext(ctx).Model(&domain.CategoryAnswer{}).
		Select("category_id, COUNT(*) AS answers, COALESCE(SUM(vote_count), 0) AS votes").
		Where("calendar_owner_id = ?", ownerID).
		Group("category_id").
		Order("category_id ASC").
		Scan(&out).Error
	return out, err
}

// VotersForAnswers returns one row per vote on the given answers, joined with
// the voter's profile, in vote order. Voters without a user row get nil
// name and email.
func VotersForAnswers(ctx context.Context, db *gorm.DB, answerIDs []string) ([]VoterRow, error) {
	if len(answerIDs) == 0 {
		return nil, nil
	}
	var out []VoterRow
	err := db.WithContext(ctx).Table("votes").
		Select("votes.answer_id, votes.voter_id, users.name, users.email").
		Joins("LEFT JOIN users ON users.id = votes.voter_id").
		Where("votes.answer_id IN ?", answerIDs).
		Order("votes.created_at ASC, votes.id ASC").
		Scan(&out).Error
	return out, err
}

// HasVoted reports whether voterID has at least one vote on ownerID's calendar.
func HasVoted(ctx context.Context, db *gorm.DB, ownerID, voterID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Vote{}).
		Where("calendar_owner_id = ? AND voter_id = ?", ownerID, voterID).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// VotersOf returns the subset of voterIDs that voted on ownerID's calendar.
func VotersOf(ctx context.Context, db *gorm.DB, ownerID string, voterIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(voterIDs) == 0 {
		return out, nil
	}
	var ids []string
	err := db.WithContext(ctx).Model(&domain.Vote{}).
		Distinct("voter_id").
		Where("calendar_owner_id = ? AND voter_id IN ?", ownerID, voterIDs).
		Pluck("voter_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
