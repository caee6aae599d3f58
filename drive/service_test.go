package drive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeDrive records calls against a minimal Drive v3 surface.
type fakeDrive struct {
	folders     map[string]string
	searches    atomic.Int32
	creates     atomic.Int32
	uploads     atomic.Int32
	lastQuery   string
	lastParent  string
	missingID   string
	authHeaders []string
}

func (f *fakeDrive) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/files"):
			f.searches.Add(1)
			f.lastQuery = r.URL.Query().Get("q")
			var files []map[string]string
			for name, id := range f.folders {
				if f.lastQuery == FolderQuery(name) {
					files = append(files, map[string]string{"id": id, "name": name})
				}
			}
			json.NewEncoder(w).Encode(map[string]any{"files": files})

		case r.Method == http.MethodPost && r.URL.Query().Get("uploadType") == "multipart":
			f.uploads.Add(1)
			body, _ := io.ReadAll(r.Body)
			if f.missingID != "" && strings.Contains(string(body), f.missingID) {
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, `{"error":{"code":404,"message":"File not found: `+f.missingID+`."}}`)
				return
			}
			for _, id := range f.folders {
				if strings.Contains(string(body), id) {
					f.lastParent = id
				}
			}
			io.WriteString(w, `{"id":"file-1","name":"upload.xlsx"}`)

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/files"):
			f.creates.Add(1)
			var meta map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&meta))
			assert.Equal(t, folderMimeType, meta["mimeType"])
			name := meta["name"].(string)
			f.folders[name] = "created-" + name
			json.NewEncoder(w).Encode(map[string]string{"id": f.folders[name]})

		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.String())
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func newTestService(t *testing.T, fake *fakeDrive) *Service {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	svc, err := NewService(context.Background(), "test-token", option.WithEndpoint(srv.URL+"/drive/v3/"))
	require.NoError(t, err)
	return svc
}

func TestFolderQuery_EscapesQuotes(t *testing.T) {
	assert.Equal(t,
		`name='Bob\'s Games' and mimeType='application/vnd.google-apps.folder' and trashed=false`,
		FolderQuery("Bob's Games"))
}

func TestGetOrCreateFolder_ReusesExisting(t *testing.T) {
	fake := &fakeDrive{folders: map[string]string{"Test": "existing-id"}}
	svc := newTestService(t, fake)

	id, err := svc.GetOrCreateFolder(context.Background(), "Test")

	require.NoError(t, err)
	assert.Equal(t, "existing-id", id)
	assert.Equal(t, int32(1), fake.searches.Load())
	assert.Equal(t, int32(0), fake.creates.Load())
	assert.Equal(t, "Bearer test-token", fake.authHeaders[0])
}

func TestGetOrCreateFolder_CreatesMissing(t *testing.T) {
	fake := &fakeDrive{folders: map[string]string{}}
	svc := newTestService(t, fake)

	id, err := svc.GetOrCreateFolder(context.Background(), "Lightningbowl Game-History")

	require.NoError(t, err)
	assert.Equal(t, "created-Lightningbowl Game-History", id)
	assert.Equal(t, int32(1), fake.searches.Load())
	assert.Equal(t, int32(1), fake.creates.Load())
}

func TestUploadToFolder(t *testing.T) {
	tests := []struct {
		name         string
		folders      map[string]string
		cachedID     string
		missingID    string
		wantFolderID string
		wantSearches int32
		wantUploads  int32
	}{
		{
			name:         "resolves folder then uploads",
			folders:      map[string]string{"Games": "games-id"},
			wantFolderID: "games-id",
			wantSearches: 1,
			wantUploads:  1,
		},
		{
			name:         "cached folder skips lookup",
			folders:      map[string]string{"Games": "games-id"},
			cachedID:     "games-id",
			wantFolderID: "games-id",
			wantSearches: 0,
			wantUploads:  1,
		},
		{
			name:         "stale cached folder falls back to lookup",
			folders:      map[string]string{"Games": "games-id"},
			cachedID:     "deleted-id",
			missingID:    "deleted-id",
			wantFolderID: "games-id",
			wantSearches: 1,
			wantUploads:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDrive{folders: tt.folders, missingID: tt.missingID}
			svc := newTestService(t, fake)

			folderID, err := svc.UploadToFolder(context.Background(), "Games", tt.cachedID, "game_data_01.02.2025.xlsx",
				"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("xlsx-bytes"))

			require.NoError(t, err)
			assert.Equal(t, tt.wantFolderID, folderID)
			assert.Equal(t, tt.wantSearches, fake.searches.Load())
			assert.Equal(t, tt.wantUploads, fake.uploads.Load())
			assert.Equal(t, tt.wantFolderID, fake.lastParent)
		})
	}
}

func TestUploadToFolder_ErrorCarriesDriveMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":{"code":403,"message":"The user's Drive storage quota has been exceeded."}}`)
	}))
	defer srv.Close()

	svc, err := NewService(context.Background(), "t", option.WithEndpoint(srv.URL+"/drive/v3/"))
	require.NoError(t, err)

	_, err = svc.UploadToFolder(context.Background(), "Games", "known", "f.xlsx", "x", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage quota has been exceeded")
	assert.False(t, IsNotFound(err))
}
