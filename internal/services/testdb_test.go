package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/domain"
	"github.com/tbourn/gift-calendar/internal/repo"
)

var (
	// votingTime is inside the global voting window.
	votingTime = time.Date(2025, time.December, 1, 12, 0, 0, 0, time.UTC)
	// revealTime has every day unlocked.
	revealTime = time.Date(2025, time.December, 24, 9, 0, 0, 0, time.UTC)
)

func at(t time.Time) func() time.Time { return func() time.Time { return t } }

// newDB opens a migrated, seeded SQLite file in a temp dir. A file (not
// shared memory) keeps the busy timeout meaningful for concurrent writers.
func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "gifts.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, repo.Migrate(context.Background(), db))
	return db
}

// addUser provisions a user; a non-empty code is assigned as calendar code.
func addUser(t *testing.T, db *gorm.DB, id, email, name, code string) *domain.User {
	t.Helper()
	ctx := context.Background()
	var n *string
	if name != "" {
		n = &name
	}
	_, _, err := repo.EnsureUser(ctx, db, id, email, n)
	require.NoError(t, err)
	if code != "" {
		ok, err := repo.SetCalendarCode(ctx, db, id, code)
		require.NoError(t, err)
		require.True(t, ok)
	}
	u, err := repo.GetUser(ctx, db, id)
	require.NoError(t, err)
	return u
}

func newVoteService(db *gorm.DB) *VoteService {
	return &VoteService{
		DB:          db,
		Invitations: &InvitationService{DB: db},
		Location:    time.UTC,
		Now:         at(votingTime),
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
