package vocabulary

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_vocabulary_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.VocabularyRecord{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestRecord(t *testing.T, db *gorm.DB, word, meanings string) *entities.VocabularyRecord {
	r := &entities.VocabularyRecord{
		Word:     word,
		Meanings: meanings,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func TestRepository_SaveCreatesThenUpdates(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	record := &entities.VocabularyRecord{Word: "apple"}
	require.NoError(t, repo.Save(ctx, record))
	assert.NotZero(t, record.ID)

	record.PhoneticUS = "/ˈæpəl/"
	require.NoError(t, repo.Save(ctx, record))

	var count int64
	db.Model(&entities.VocabularyRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)

	found, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "/ˈæpəl/", found.PhoneticUS)
}

func TestRepository_FindByWord(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	createTestRecord(t, db, "xylophone", `[{"pos":"n.","definition":"木琴"}]`)

	record, err := repo.FindByWord(ctx, "xylophone")
	require.NoError(t, err)
	assert.True(t, record.HasMeanings())

	_, err = repo.FindByWord(ctx, "missing")
	assert.ErrorIs(t, err, lexicon.ErrNotFound)
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, lexicon.ErrNotFound)
}

func TestRepository_FindAll_OrderedByID(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestRecord(t, db, "zebra", "")
	createTestRecord(t, db, "apple", "")
	createTestRecord(t, db, "mango", "")

	records, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "zebra", records[0].Word)
	assert.Equal(t, "apple", records[1].Word)
	assert.Equal(t, "mango", records[2].Word)
}

func TestRepository_List_Pagination(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	for _, w := range []string{"one", "two", "three", "four", "five"} {
		createTestRecord(t, db, w, "")
	}

	page, total, err := repo.List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)

	rest, _, err := repo.List(context.Background(), 10, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestRepository_Delete(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	record := createTestRecord(t, db, "apple", "")

	require.NoError(t, repo.Delete(ctx, record.ID))

	_, err := repo.FindByID(ctx, record.ID)
	assert.ErrorIs(t, err, lexicon.ErrNotFound)

	err = repo.Delete(ctx, record.ID)
	assert.ErrorIs(t, err, lexicon.ErrNotFound)
}

func TestRepository_UniqueWord(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entities.VocabularyRecord{Word: "apple"}))
	err := repo.Save(ctx, &entities.VocabularyRecord{Word: "apple"})
	assert.ErrorIs(t, err, lexicon.ErrConflict)
}
