// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return ErrNotFound.
//   - A calendar code collision is reported as ErrDuplicate.
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/gift-calendar/internal/domain"
)

// EnsureUser inserts the user if no row with that id exists yet. It reports
// whether a new row was created and returns the stored user either way.
// Email is refreshed from the identity provider on every call; a stored name
// is never overwritten.
func EnsureUser(ctx context.Context, db *gorm.DB, id, email string, name *string) (*domain.User, bool, error) {
	now := time.Now().UTC()
	u := &domain.User{
		ID:            id,
		Email:         email,
		Name:          name,
		VotingEnabled: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(u)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected == 1
	if !created && email != "" {
		if err := db.WithContext(ctx).Model(&domain.User{}).
			Where("id = ? AND email <> ?", id, email).
			Updates(map[string]any{"email": email, "updated_at": now}).Error; err != nil {
			return nil, false, err
		}
	}
	got, err := GetUser(ctx, db, id)
	if err != nil {
		return nil, false, err
	}
	return got, created, nil
}

// GetUser fetches a user by id, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByCode fetches the owner of a calendar code, or ErrNotFound.
func GetUserByCode(ctx context.Context, db *gorm.DB, code string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("calendar_code = ?", code).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns the users with the given ids in no particular order.
// Unknown ids are silently skipped.
func ListUsers(ctx context.Context, db *gorm.DB, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []domain.User
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// SetCalendarCode assigns code to the user only if none is set yet.
// It reports false when the user already had a code (or does not exist) and
// returns ErrDuplicate when another user already holds code.
func SetCalendarCode(ctx context.Context, db *gorm.DB, id, code string) (bool, error) {
	res := db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND calendar_code IS NULL", id).
		Updates(map[string]any{"calendar_code": code, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, dup(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// UpdateUserName sets the display name. Returns ErrNotFound for unknown ids.
func UpdateUserName(ctx context.Context, db *gorm.DB, id, name string) error {
	res := db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateVoting stores the owner's voting switch and optional deadline.
// A nil deadline clears it. Returns ErrNotFound for unknown ids.
func UpdateVoting(ctx context.Context, db *gorm.DB, id string, enabled bool, deadline *time.Time) error {
	res := db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"voting_enabled":  enabled,
			"voting_deadline": deadline,
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
