// Package vocabulary provides database operations for vocabulary records.
//
// This package implements the Store interface defined in internal/enrichment.
//
// # Usage
//
//	repo := vocabulary.NewRepository(db)
//	record, err := repo.FindByWord(ctx, "xylophone")
package vocabulary

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
)

// Repository handles all vocabulary database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new vocabulary repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID retrieves a record by primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.VocabularyRecord, error) {
	var record entities.VocabularyRecord
	err := r.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lexicon.NotFoundErrorf("word id %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByWord retrieves a record by its exact word text.
func (r *Repository) FindByWord(ctx context.Context, word string) (*entities.VocabularyRecord, error) {
	var record entities.VocabularyRecord
	err := r.db.WithContext(ctx).Where("word = ?", word).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lexicon.NotFoundErrorf("word %q", word)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll returns every record ordered by ID.
func (r *Repository) FindAll(ctx context.Context) ([]entities.VocabularyRecord, error) {
	var records []entities.VocabularyRecord
	err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error
	return records, err
}

// List returns one page of records, newest first, and the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]entities.VocabularyRecord, int64, error) {
	var records []entities.VocabularyRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&entities.VocabularyRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&records).Error
	return records, total, err
}

// Save inserts a new record or updates an existing one in place. Inserting a
// word that is already stored fails with lexicon.ErrConflict.
func (r *Repository) Save(ctx context.Context, record *entities.VocabularyRecord) error {
	err := r.db.WithContext(ctx).Save(record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return lexicon.ConflictErrorf("word %q", record.Word)
	}
	return err
}

// Delete removes a record by ID.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.VocabularyRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return lexicon.NotFoundErrorf("word id %d", id)
	}
	return nil
}
