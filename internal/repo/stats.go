// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/domain"
)

// InvitationsStats returns aggregate metadata for a sender's invitations: the
// total number of rows and the maximum UpdatedAt timestamp among those rows.
//
// When the sender has no invitations, the returned count is 0 and
// maxUpdatedAt is nil.
func InvitationsStats(ctx context.Context, db *gorm.DB, senderID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Invitation{}).Where("sender_id = ?", senderID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// CalendarVoteCount returns how many votes ownerID's calendar has received.
// Invitation listings include a per-friend "has voted" flag, so the count is
// part of their ETag.
func CalendarVoteCount(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Vote{}).Where("calendar_owner_id = ?", ownerID).Count(&n).Error
	return n, err
}
