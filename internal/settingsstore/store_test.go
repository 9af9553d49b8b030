package settingsstore

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/lexicon/internal/database"
	"github.com/mrlokans/lexicon/internal/database/settings"
)

func setupDatabaseStore(t *testing.T) (*DatabaseStore, func()) {
	t.Helper()
	dbPath := "./test_settingsstore_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.Open(database.Options{Path: dbPath, LogLevel: logger.Silent})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewDatabaseStore(settings.NewRepository(db.DB)), cleanup
}

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisStore(RedisOptions{Addr: mr.Addr()})
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestKeyValueStores(t *testing.T) {
	backends := map[string]func(t *testing.T) KeyValueStore{
		"database": func(t *testing.T) KeyValueStore {
			store, cleanup := setupDatabaseStore(t)
			t.Cleanup(cleanup)
			return store
		},
		"redis": func(t *testing.T) KeyValueStore {
			store, _ := setupRedisStore(t)
			return store
		},
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			_, ok, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "ai:model:use", "yi"))
			require.NoError(t, store.Set(ctx, "ai:model:use", "deepseek"))

			value, ok, err := store.Get(ctx, "ai:model:use")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "deepseek", value)
		})
	}
}

func TestRedisStore_SharesValuesWithServer(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	require.NoError(t, mr.Set("ai:model:use", "deepseek"))
	value, ok, err := store.Get(ctx, "ai:model:use")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "deepseek", value)

	require.NoError(t, store.Set(ctx, "ai:model:use", "yi"))
	got, err := mr.Get("ai:model:use")
	require.NoError(t, err)
	assert.Equal(t, "yi", got)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := setupRedisStore(t)
	mr.Close()

	_, _, err := store.Get(context.Background(), "ai:model:use")
	assert.Error(t, err)
}
