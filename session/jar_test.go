package session

import (
	"context"
	"lightningbowl-sync/database"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestJar(t *testing.T) (*Jar, *database.Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "lightningbowl-jar-*")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	repo := database.NewRepository(db)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}
	return NewJar(repo, logger), repo, cleanup
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestJar_SetAndMatch(t *testing.T) {
	jar, _, cleanup := setupTestJar(t)
	defer cleanup()

	backend := mustParse(t, "https://auth.lightningbowl.de/google-drive/access-token")
	jar.SetCookies(backend, []*http.Cookie{
		{Name: "session", Value: "abc", Domain: ".lightningbowl.de", Path: "/", HttpOnly: true, Secure: true},
		{Name: "scoped", Value: "x", Path: "/dropbox"},
	})

	tests := []struct {
		name  string
		url   string
		names []string
	}{
		{"same host root path", "https://auth.lightningbowl.de/onedrive/disconnect", []string{"session"}},
		{"sibling subdomain shares domain cookie", "https://app.lightningbowl.de/", []string{"session"}},
		{"scoped path", "https://auth.lightningbowl.de/dropbox/access-token", []string{"session", "scoped"}},
		{"secure cookie not sent over http", "http://auth.lightningbowl.de/", nil},
		{"foreign host", "https://example.com/", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range jar.Cookies(mustParse(t, tt.url)) {
				got = append(got, c.Name)
			}
			assert.ElementsMatch(t, tt.names, got)
		})
	}
}

func TestJar_RejectsForeignDomain(t *testing.T) {
	jar, _, cleanup := setupTestJar(t)
	defer cleanup()

	jar.SetCookies(mustParse(t, "https://auth.lightningbowl.de/"), []*http.Cookie{
		{Name: "evil", Value: "1", Domain: "example.com"},
	})

	assert.Empty(t, jar.Cookies(mustParse(t, "https://example.com/")))
}

func TestJar_PersistsAcrossReload(t *testing.T) {
	jar, repo, cleanup := setupTestJar(t)
	defer cleanup()

	u := mustParse(t, "http://localhost:3000/")
	jar.SetCookies(u, []*http.Cookie{{Name: "session", Value: "persisted", MaxAge: 3600}})

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	reloaded := NewJar(repo, logger)
	require.NoError(t, reloaded.Load(context.Background()))

	cookies := reloaded.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "persisted", cookies[0].Value)
}

func TestJar_DeletionAndExpiry(t *testing.T) {
	jar, repo, cleanup := setupTestJar(t)
	defer cleanup()

	u := mustParse(t, "http://localhost:3000/")
	jar.SetCookies(u, []*http.Cookie{{Name: "session", Value: "v"}})
	require.Len(t, jar.Cookies(u), 1)

	jar.SetCookies(u, []*http.Cookie{{Name: "session", MaxAge: -1}})
	assert.Empty(t, jar.Cookies(u))

	stored, err := repo.GetCookies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)

	jar.SetCookies(u, []*http.Cookie{{Name: "short", Value: "v", MaxAge: 60}})
	jar.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	assert.Empty(t, jar.Cookies(u))

	jar.Cleanup(context.Background())
	stored, err = repo.GetCookies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}
