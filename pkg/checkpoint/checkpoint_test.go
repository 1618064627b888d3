package checkpoint

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"devscout/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, kind string) *Manager[models.Post] {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("XDG_DATA_HOME is only honoured on linux")
	}
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	mgr, err := NewManager[models.Post](kind)
	require.NoError(t, err)
	return mgr
}

func TestCreateAndLoad(t *testing.T) {
	mgr := newTestManager(t, "posts")

	cp, err := mgr.Create(101)
	require.NoError(t, err)
	assert.Equal(t, "posts", cp.Kind)
	assert.Equal(t, 101, cp.Total)
	assert.Equal(t, currentVersion, cp.Version)
	_, err = uuid.Parse(cp.RunID)
	assert.NoError(t, err)

	loaded, err := mgr.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, cp.RunID, loaded.RunID)
	assert.Equal(t, 0, loaded.NextCursor)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "devscout", "checkpoints", "posts.checkpoint.json"), mgr.Path())
}

func TestLoadMissing(t *testing.T) {
	mgr := newTestManager(t, "news")

	cp, err := mgr.Load()
	assert.NoError(t, err)
	assert.Nil(t, cp)
	assert.False(t, mgr.Exists())

	info, err := mgr.Info()
	assert.NoError(t, err)
	assert.Nil(t, info)
}

func TestUpdateProgressRoundTripsRecords(t *testing.T) {
	mgr := newTestManager(t, "posts")

	cp, err := mgr.Create(3)
	require.NoError(t, err)

	records := []models.Post{
		{ID: "b", Title: "second", RelevanceScore: 70, MatchedKeywords: []string{"api"}},
		{ID: "a", Title: "first", RelevanceScore: 40},
	}
	require.NoError(t, mgr.UpdateProgress(cp, records, 2))

	loaded, err := mgr.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.NextCursor)
	require.Len(t, loaded.Records, 2)
	assert.Equal(t, "b", loaded.Records[0].ID)
	assert.Equal(t, []string{"api"}, loaded.Records[0].MatchedKeywords)
	assert.True(t, loaded.Resumable(3))

	info, err := mgr.Info()
	require.NoError(t, err)
	assert.Equal(t, 2, info["records"])
	assert.Equal(t, 2, info["next_cursor"])
}

func TestResumable(t *testing.T) {
	var missing *Checkpoint[models.Post]
	assert.False(t, missing.Resumable(5))

	cp := &Checkpoint[models.Post]{Total: 5, NextCursor: 3}
	assert.True(t, cp.Resumable(5))
	assert.False(t, cp.Resumable(6), "source list changed")

	cp.NextCursor = 5
	assert.False(t, cp.Resumable(5), "already complete")

	cp.NextCursor = 0
	assert.False(t, cp.Resumable(5), "nothing done yet")
}

func TestDelete(t *testing.T) {
	mgr := newTestManager(t, "prospects")

	_, err := mgr.Create(27)
	require.NoError(t, err)
	assert.True(t, mgr.Exists())

	require.NoError(t, mgr.Delete())
	assert.False(t, mgr.Exists())

	// deleting twice is fine
	assert.NoError(t, mgr.Delete())
}

func TestAtomicWriteLeavesNoTempFile(t *testing.T) {
	mgr := newTestManager(t, "posts")

	cp, err := mgr.Create(2)
	require.NoError(t, err)
	require.NoError(t, mgr.UpdateProgress(cp, nil, 1))

	_, err = os.Stat(mgr.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	mgr := newTestManager(t, "posts")
	require.NoError(t, os.WriteFile(mgr.Path(), []byte(`{"kind":"posts","version":99}`), 0644))

	_, err := mgr.Load()
	assert.Error(t, err)
}

func TestLoadCorrupt(t *testing.T) {
	mgr := newTestManager(t, "posts")
	require.NoError(t, os.WriteFile(mgr.Path(), []byte(`{not json`), 0644))

	_, err := mgr.Load()
	assert.Error(t, err)
}

func TestBackup(t *testing.T) {
	mgr := newTestManager(t, "posts")

	// no checkpoint, nothing to do
	require.NoError(t, mgr.Backup())

	_, err := mgr.Create(4)
	require.NoError(t, err)
	require.NoError(t, mgr.Backup())

	original, err := os.ReadFile(mgr.Path())
	require.NoError(t, err)
	backup, err := os.ReadFile(mgr.Path() + ".backup")
	require.NoError(t, err)
	assert.Equal(t, original, backup)
}
