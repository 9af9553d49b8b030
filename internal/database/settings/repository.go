// Package settings provides database operations for runtime settings such as
// the active provider and refill bookkeeping.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	name, err := repo.Get(ctx, entities.SettingKeyActiveProvider)
package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
)

// Repository is a key/value store over the settings table.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting row by key.
func (r *Repository) GetSetting(ctx context.Context, key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lexicon.NotFoundErrorf("setting %q", key)
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Get returns the value stored under key. Missing keys yield an error
// wrapping lexicon.ErrNotFound.
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	setting, err := r.GetSetting(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Set creates or updates a setting.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	setting := entities.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// Delete removes a setting by key. Deleting a missing key is not an error.
func (r *Repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.Setting{}).Error
}
