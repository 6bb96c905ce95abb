package repositories

import (
	"context"
	"errors"

	"github.com/shaoyun/taskmaster-pro/internal/models"

	"gorm.io/gorm"
)

// SprintRepository persists sprints. Deletion never cascades to tasks;
// dangling sprint_id references are tolerated by every reader.
type SprintRepository struct {
	db *gorm.DB
}

func NewSprintRepository(db *gorm.DB) *SprintRepository {
	return &SprintRepository{db: db}
}

func (r *SprintRepository) Create(ctx context.Context, sprint *models.Sprint) error {
	return r.db.WithContext(ctx).Create(sprint).Error
}

func (r *SprintRepository) FindByID(ctx context.Context, id string) (*models.Sprint, error) {
	var sprint models.Sprint
	if err := r.db.WithContext(ctx).First(&sprint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sprint, nil
}

func (r *SprintRepository) List(ctx context.Context) ([]models.Sprint, error) {
	var sprints []models.Sprint
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&sprints).Error
	return sprints, err
}

// FindLatest returns the sprint with the most recent end date, or nil when
// none exist. New default windows chain off it.
func (r *SprintRepository) FindLatest(ctx context.Context) (*models.Sprint, error) {
	var sprint models.Sprint
	err := r.db.WithContext(ctx).Order("end_date desc").First(&sprint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sprint, nil
}

func (r *SprintRepository) Update(ctx context.Context, sprint *models.Sprint) error {
	return r.db.WithContext(ctx).Save(sprint).Error
}

func (r *SprintRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Sprint{}, "id = ?", id).Error
}
