package games

import (
	"context"
	"lightningbowl-sync/database"
	"lightningbowl-sync/models"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "lightningbowl-games-*")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := NewStore(database.NewRepository(db), logger)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}
	return store, cleanup
}

func TestStore_ReadyAfterLoad(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	select {
	case <-store.Ready():
		t.Fatal("ready before load")
	default:
	}

	require.NoError(t, store.Load(context.Background()))

	select {
	case <-store.Ready():
	default:
		t.Fatal("not ready after load")
	}
	assert.Empty(t, store.All())
}

func TestStore_AddAndReload(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	require.NoError(t, store.Load(ctx))

	first, err := store.Add(ctx, models.Game{Date: 1000, TotalScore: 150, League: "Monday"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.GameID)

	_, err = store.Add(ctx, models.Game{GameID: "b", Date: 2000, TotalScore: 180})
	require.NoError(t, err)

	// same id updates in place
	_, err = store.Add(ctx, models.Game{GameID: "b", Date: 2000, TotalScore: 190})
	require.NoError(t, err)

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].GameID)
	assert.Equal(t, 190, all[0].TotalScore)

	reloaded := NewStore(store.repo, store.logger)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, all, reloaded.All())

	leagues, err := store.Leagues(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday"}, leagues)

	require.NoError(t, store.Delete(ctx, "b"))
	assert.Len(t, store.All(), 1)
}

func TestStore_Replace(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	require.NoError(t, store.Load(ctx))

	_, err := store.Add(ctx, models.Game{GameID: "old", Date: 1})
	require.NoError(t, err)

	err = store.Replace(ctx, []models.Game{
		{GameID: "x", Date: 10},
		{GameID: "y", Date: 30},
		{GameID: "z", Date: 20},
	}, []string{"Thursday"})
	require.NoError(t, err)

	var ids []string
	for _, g := range store.All() {
		ids = append(ids, g.GameID)
	}
	assert.Equal(t, []string{"y", "z", "x"}, ids)

	leagues, err := store.Leagues(ctx)
	require.NoError(t, err)
	assert.Contains(t, leagues, "Thursday")
}
