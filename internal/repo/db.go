// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and PostgreSQL, schema migrations and the
// category seed.
package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/gift-calendar/internal/domain"
)

// Open dispatches to the driver named by driver ("sqlite" or "postgres").
func Open(driver, path, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite", "":
		return OpenSQLite(path)
	case "postgres":
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("repo: unsupported driver %q", driver)
	}
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	// PRAGMAs go in the DSN so every pooled connection gets them.
	db, err := gorm.Open(sqlite.Open(withPragmas(path)), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	tunePool(db, 10)
	if err := instrument(db); err != nil {
		return nil, err
	}
	return db, nil
}

var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"foreign_keys(1)",
}

func withPragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(path)
	for _, p := range sqlitePragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

// OpenPostgres connects to PostgreSQL using a libpq-style or URL DSN.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	tunePool(db, 25)
	if err := instrument(db); err != nil {
		return nil, err
	}
	return db, nil
}

func tunePool(db *gorm.DB, maxOpen int) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxOpen)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
}

// instrument attaches OpenTelemetry spans to every GORM statement. Spans are
// no-ops until a tracer provider is installed.
func instrument(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate creates or updates every table used by the application.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Invitation{},
		&domain.CategoryAnswer{},
		&domain.Vote{},
		&domain.Reveal{},
		&domain.Idempotency{},
	)
}

// DefaultCategories is the fixed set of prompts, one per calendar day.
var DefaultCategories = []domain.Category{
	{ID: 1, Name: "Animal", Code: "animal", Description: "An animal that reminds you of them", Prompt: "If they were an animal, which one would they be?", DisplayOrder: 1},
	{ID: 2, Name: "Place", Code: "place", Description: "A place that feels like them", Prompt: "Which place in the world fits them best?", DisplayOrder: 2},
	{ID: 3, Name: "Plant", Code: "plant", Description: "A plant or flower that matches their vibe", Prompt: "If they were a plant, what would they be?", DisplayOrder: 3},
	{ID: 4, Name: "Character", Code: "character", Description: "A fictional character they resemble", Prompt: "Which character from a book, film or show are they?", DisplayOrder: 4},
	{ID: 5, Name: "Season", Code: "season", Description: "The season that suits them", Prompt: "Which season are they?", DisplayOrder: 5},
	{ID: 6, Name: "Hobby", Code: "hobby", Description: "A hobby they would love", Prompt: "What hobby should they pick up next?", DisplayOrder: 6},
	{ID: 7, Name: "Food", Code: "food", Description: "A food that represents them", Prompt: "If they were a dish, which one would they be?", DisplayOrder: 7},
	{ID: 8, Name: "Colour", Code: "colour", Description: "A colour that describes them", Prompt: "Which colour describes them best?", DisplayOrder: 8},
	{ID: 9, Name: "Personal Note", Code: domain.PersonalNoteCode, Description: "A few words from you to them", Prompt: "Leave them a personal note.", DisplayOrder: 9},
}

// SeedCategories upserts DefaultCategories. Running it repeatedly is safe and
// refreshes names and prompts.
func SeedCategories(ctx context.Context, db *gorm.DB) error {
	cats := make([]domain.Category, len(DefaultCategories))
	copy(cats, DefaultCategories)
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "code", "description", "prompt", "display_order"}),
	}).Create(&cats).Error
}

// Migrate runs AutoMigrate followed by SeedCategories.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := SeedCategories(ctx, db); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}
