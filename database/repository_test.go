package database

import (
	"context"
	"lightningbowl-sync/models"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "lightningbowl-db-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return NewRepository(db), cleanup
}

func TestKeyValue(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		var settings models.SyncSettings
		found, err := repo.GetJSON(ctx, models.SettingsStorageKey, &settings)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("round trip and overwrite", func(t *testing.T) {
		first := models.SyncSettings{Enabled: true, Provider: models.ProviderDropbox, Frequency: models.FrequencyDaily}
		require.NoError(t, repo.SetJSON(ctx, models.SettingsStorageKey, first))

		second := first
		second.FolderPath = "Bowling"
		second.ConnectedProvider = models.ProviderDropbox
		require.NoError(t, repo.SetJSON(ctx, models.SettingsStorageKey, second))

		var got models.SyncSettings
		found, err := repo.GetJSON(ctx, models.SettingsStorageKey, &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, second, got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteKey(ctx, models.SettingsStorageKey))
		var got models.SyncSettings
		found, err := repo.GetJSON(ctx, models.SettingsStorageKey, &got)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestGames(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	older := models.Game{GameID: "g1", Date: 1000, TotalScore: 150, League: "Tuesday"}
	newer := models.Game{GameID: "g2", Date: 2000, TotalScore: 201}

	require.NoError(t, repo.SaveGame(ctx, older))
	require.NoError(t, repo.SaveGame(ctx, newer))

	games, err := repo.GetGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "g2", games[0].GameID, "newest game first")

	older.TotalScore = 155
	require.NoError(t, repo.SaveGame(ctx, older))
	games, err = repo.GetGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, 155, games[1].TotalScore)

	require.NoError(t, repo.ReplaceGames(ctx, []models.Game{{GameID: "g3", Date: 3000}}))
	games, err = repo.GetGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "g3", games[0].GameID)

	require.NoError(t, repo.DeleteGame(ctx, "g3"))
	games, err = repo.GetGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestLeagues(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.AddLeague(ctx, "Tuesday"))
	require.NoError(t, repo.AddLeague(ctx, "Monday"))
	require.NoError(t, repo.AddLeague(ctx, "Tuesday"))

	leagues, err := repo.GetLeagues(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Tuesday"}, leagues)
}

func TestCookies(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	require.NoError(t, repo.SaveCookie(ctx, StoredCookie{Domain: "auth.example.com", Path: "/", Name: "session", Value: "a", ExpiresAt: &future, HTTPOnly: true}))
	require.NoError(t, repo.SaveCookie(ctx, StoredCookie{Domain: "auth.example.com", Path: "/", Name: "old", Value: "b", ExpiresAt: &past}))
	require.NoError(t, repo.SaveCookie(ctx, StoredCookie{Domain: "auth.example.com", Path: "/", Name: "session", Value: "c", ExpiresAt: &future, HTTPOnly: true}))

	removed, err := repo.DeleteExpiredCookies(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	cookies, err := repo.GetCookies(ctx)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "c", cookies[0].Value)
	assert.True(t, cookies[0].HTTPOnly)
	require.NotNil(t, cookies[0].ExpiresAt)
	assert.Equal(t, future.Unix(), cookies[0].ExpiresAt.Unix())

	require.NoError(t, repo.DeleteCookie(ctx, "auth.example.com", "/", "session"))
	cookies, err = repo.GetCookies(ctx)
	require.NoError(t, err)
	assert.Empty(t, cookies)
}
