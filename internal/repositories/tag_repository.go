package repositories

import (
	"context"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"

	"gorm.io/gorm"
)

// TagRepository is the usage-count store behind tag accounting. It
// implements tags.Counter: counts clamp at zero and a row reaching zero is
// deleted immediately.
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error
	return tags, err
}

// Increment bumps each named tag's count, creating missing rows at 1.
func (r *TagRepository) Increment(ctx context.Context, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			res := tx.Model(&models.Tag{}).
				Where("name = ?", name).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Create(&models.Tag{Name: name, UsageCount: 1, CreatedAt: time.Now().UTC()}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Decrement lowers each named tag's count, never below zero, and prunes
// rows that reach it. Unknown names are a no-op rather than an error.
func (r *TagRepository) Decrement(ctx context.Context, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			res := tx.Model(&models.Tag{}).
				Where("name = ? AND usage_count > 0", name).
				UpdateColumn("usage_count", gorm.Expr("usage_count - 1"))
			if res.Error != nil {
				return res.Error
			}
		}
		return tx.Where("usage_count <= 0").Delete(&models.Tag{}).Error
	})
}

// ResetAll replaces the whole index with freshly computed counts. Used by
// the reconcile sweep.
func (r *TagRepository) ResetAll(ctx context.Context, counts map[string]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		for name, count := range counts {
			if count <= 0 {
				continue
			}
			if err := tx.Create(&models.Tag{Name: name, UsageCount: count, CreatedAt: now}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
