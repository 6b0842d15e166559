package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/gift-calendar/internal/domain"
)

// CreateReveal records that userID opened categoryID. A repeated call is a
// no-op and reports false.
func CreateReveal(ctx context.Context, db *gorm.DB, userID string, categoryID int) (bool, error) {
	r := &domain.Reveal{
		ID:         uuid.NewString(),
		UserID:     userID,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC(),
	}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(r)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RevealedDays returns the category ids userID has revealed, ascending.
func RevealedDays(ctx context.Context, db *gorm.DB, userID string) ([]int, error) {
	var days []int
	err := db.WithContext(ctx).Model(&domain.Reveal{}).
		Where("user_id = ?", userID).
		Order("category_id ASC").
		Pluck("category_id", &days).Error
	return days, err
}

// DeleteReveals removes all of userID's reveals and returns how many went.
func DeleteReveals(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	res := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Reveal{})
	return res.RowsAffected, res.Error
}
