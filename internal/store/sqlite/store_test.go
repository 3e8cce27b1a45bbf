// internal/store/sqlite/store_test.go
package sqlite

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database with the repo migrations applied
func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	s, err := NewSQLiteStore(":memory:", "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		err := s.Close()
		require.NoError(t, err, "Failed to close database")
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	log.Println("Starting SQLite store tests...")
	code := m.Run()
	log.Println("Finished SQLite store tests")
	os.Exit(code)
}

func TestSetAndGet(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		value, found, err := s.Get(ctx, "eduspace:nobody")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "paMessage", "Fire drill at noon"))

		value, found, err := s.Get(ctx, "paMessage")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Fire drill at noon", value)
	})

	t.Run("overwrite keeps one row", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "gradesLocked", "false"))
		require.NoError(t, s.Set(ctx, "gradesLocked", "true"))

		value, found, err := s.Get(ctx, "gradesLocked")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "true", value)

		var count int
		require.NoError(t, s.DB.Get(&count, `SELECT COUNT(*) FROM kv_entries WHERE name = 'gradesLocked'`))
		assert.Equal(t, 1, count)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "paMessage", ""))

		value, found, err := s.Get(ctx, "paMessage")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "", value)
	})
}

func TestTranslateToSQLite(t *testing.T) {
	got := translateToSQLite(`updated_at BIGINT NOT NULL DEFAULT 0`)
	assert.Equal(t, `updated_at INTEGER NOT NULL DEFAULT 0`, got)
}
