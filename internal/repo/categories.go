package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/domain"
)

// ListCategories returns all categories in display order.
func ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var out []domain.Category
	err := db.WithContext(ctx).Order("display_order ASC, id ASC").Find(&out).Error
	return out, err
}

// GetCategory fetches a category by id, or ErrNotFound.
func GetCategory(ctx context.Context, db *gorm.DB, id int) (*domain.Category, error) {
	var c domain.Category
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
