package repo

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbourn/gift-calendar/internal/domain"
)

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "gifts.db")
	db, err := OpenSQLite(path)
	if err == nil || db != nil {
		t.Fatalf("OpenSQLite(%q) = (%v, %v); want error", path, db, err)
	}
}

func TestOpenSQLite_ConnectionSettings(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "gifts.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	pragmas := map[string]string{
		"journal_mode": "wal",
		"synchronous":  "1",
		"foreign_keys": "1",
		"busy_timeout": "5000",
	}
	for name, want := range pragmas {
		var got string
		if err := db.Raw("PRAGMA " + name).Row().Scan(&got); err != nil {
			t.Fatalf("PRAGMA %s: %v", name, err)
		}
		if strings.ToLower(got) != want {
			t.Fatalf("PRAGMA %s = %q; want %q", name, got, want)
		}
	}
	if n := sqlDB.Stats().MaxOpenConnections; n != 10 {
		t.Fatalf("MaxOpenConnections = %d; want 10", n)
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("gifts.db")
	if !strings.HasPrefix(got, "gifts.db?_pragma=busy_timeout(5000)&_pragma=") {
		t.Fatalf("withPragmas = %q", got)
	}
	if strings.Count(got, "_pragma=") != len(sqlitePragmas) {
		t.Fatalf("every pragma should be present: %q", got)
	}
	if got := withPragmas("file:x?mode=memory"); !strings.HasPrefix(got, "file:x?mode=memory&_pragma=") {
		t.Fatalf("existing query should be extended, got %q", got)
	}
}

func TestOpen_Drivers(t *testing.T) {
	if _, err := Open("mysql", "", ""); err == nil || !strings.Contains(err.Error(), "unsupported driver") {
		t.Fatalf("Open(mysql) err = %v", err)
	}
	for _, driver := range []string{"", "sqlite"} {
		db, err := Open(driver, filepath.Join(t.TempDir(), "gifts.db"), "")
		if err != nil {
			t.Fatalf("Open(%q): %v", driver, err)
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func TestMigrate_CreatesSchema(t *testing.T) {
	db := newFullDB(t)
	for _, model := range []any{
		&domain.User{}, &domain.Category{}, &domain.Invitation{}, &domain.CategoryAnswer{},
		&domain.Vote{}, &domain.Reveal{}, &domain.Idempotency{},
	} {
		if !db.Migrator().HasTable(model) {
			t.Fatalf("missing table for %T", model)
		}
	}
	// running twice is harmless
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	u := seedUser(t, db, "u1", "u1@example.com", nil)
	if !u.VotingEnabled {
		t.Fatalf("new users start with voting enabled: %+v", u)
	}
}

func TestSeedCategories_OrderAndLookup(t *testing.T) {
	db := newTestDB(t, &domain.Category{})
	ctx := context.Background()
	for range 2 {
		if err := SeedCategories(ctx, db); err != nil {
			t.Fatalf("SeedCategories: %v", err)
		}
	}

	cats, err := ListCategories(ctx, db)
	if err != nil || len(cats) != 9 {
		t.Fatalf("ListCategories = %d, %v; want 9", len(cats), err)
	}
	for i, c := range cats {
		if c.ID != i+1 || c.DisplayOrder != i+1 {
			t.Fatalf("category %d out of order: %+v", i, c)
		}
	}
	if last := cats[8]; !last.IsNotes() || last.Name != "Personal Note" {
		t.Fatalf("day 9 should be the personal note, got %+v", last)
	}

	if c, err := GetCategory(ctx, db, 3); err != nil || c.Code != "plant" {
		t.Fatalf("GetCategory(3) = (%+v, %v)", c, err)
	}
	if _, err := GetCategory(ctx, db, 42); err != ErrNotFound {
		t.Fatalf("GetCategory(42) err = %v; want ErrNotFound", err)
	}
}
