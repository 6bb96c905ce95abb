package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository is the user-scoped key-value store. The sprint
// recurrence configuration lives here so it survives across sessions.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&models.Setting{Key: key, Value: value}).Error
}

// LoadSprintConfig reads the persisted sprint configuration, filling any
// missing key with its documented default.
func (r *SettingsRepository) LoadSprintConfig(ctx context.Context) (models.SprintConfig, error) {
	cfg := models.DefaultSprintConfig()

	if v, ok, err := r.Get(ctx, models.SettingSprintDurationUnit); err != nil {
		return cfg, err
	} else if ok {
		cfg.DurationUnit = models.DurationUnit(v)
	}

	if v, ok, err := r.Get(ctx, models.SettingSprintStartDay); err != nil {
		return cfg, err
	} else if ok {
		day, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("corrupt %s setting %q: %w", models.SettingSprintStartDay, v, err)
		}
		cfg.StartDay = time.Weekday(day)
	}

	if v, ok, err := r.Get(ctx, models.SettingSprintStartTime); err != nil {
		return cfg, err
	} else if ok {
		cfg.StartTime = v
	}

	return cfg, cfg.Validate()
}

// SaveSprintConfig validates and persists the configuration.
func (r *SettingsRepository) SaveSprintConfig(ctx context.Context, cfg models.SprintConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := r.Set(ctx, models.SettingSprintDurationUnit, string(cfg.DurationUnit)); err != nil {
		return err
	}
	if err := r.Set(ctx, models.SettingSprintStartDay, strconv.Itoa(int(cfg.StartDay))); err != nil {
		return err
	}
	return r.Set(ctx, models.SettingSprintStartTime, cfg.StartTime)
}
