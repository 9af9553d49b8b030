// Package providers reads the provider catalog seeded at startup.
package providers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
)

// Repository handles provider catalog queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new provider catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns the enabled catalog entries ordered by ID.
func (r *Repository) ListActive(ctx context.Context) ([]entities.ModelProvider, error) {
	var list []entities.ModelProvider
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&list).Error
	return list, err
}

// FindByName retrieves a catalog entry by provider name.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.ModelProvider, error) {
	var p entities.ModelProvider
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lexicon.NotFoundErrorf("provider %q", name)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
