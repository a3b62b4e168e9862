package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_OpenInitializesSchemaAndSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "pyuml.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	first := Run{
		ID:         "run-1",
		Timestamp:  base,
		InputDir:   "models",
		OutputPath: "models.puml",
		Units:      2,
		Classes:    5,
		Attributes: 9,
		Relations:  4,
		Duration:   120 * time.Millisecond,
	}
	second := first
	second.ID = "run-2"
	second.Timestamp = base.Add(time.Hour)
	second.Relations = 6

	require.NoError(t, store.SaveRun(first))
	require.NoError(t, store.SaveRun(second))

	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0])
	assert.Equal(t, first, runs[1])

	runs, err = store.RecentRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-2", runs[0].ID)
}

func TestStore_RecentRunsOrdersSubSecondTimestamps(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "pyuml.db"))
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	stamps := []struct {
		id string
		at time.Time
	}{
		{id: "whole-second", at: base},
		{id: "tenth", at: base.Add(100 * time.Millisecond)},
		{id: "twelve-hundredths", at: base.Add(120 * time.Millisecond)},
		{id: "half-second", at: base.Add(500 * time.Millisecond)},
		{id: "next-second", at: base.Add(time.Second)},
		{id: "next-and-a-half", at: base.Add(1500 * time.Millisecond)},
	}
	for _, s := range stamps {
		require.NoError(t, store.SaveRun(Run{ID: s.id, Timestamp: s.at}))
	}

	runs, err := store.RecentRuns(len(stamps))
	require.NoError(t, err)
	require.Len(t, runs, len(stamps))
	for i, run := range runs {
		want := stamps[len(stamps)-1-i]
		assert.Equal(t, want.id, run.ID)
		assert.True(t, want.at.Equal(run.Timestamp), "run %s timestamp %s", run.ID, run.Timestamp)
	}
}

func TestStore_SaveRunUpsertsByID(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "pyuml.db"))
	require.NoError(t, err)
	defer store.Close()

	run := Run{ID: "same", Timestamp: time.Now().UTC(), InputDir: "a", OutputPath: "a.puml", Units: 1}
	require.NoError(t, store.SaveRun(run))
	run.Units = 3
	require.NoError(t, store.SaveRun(run))

	runs, err := store.RecentRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Units)
}

func TestStore_SaveRunRequiresID(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "pyuml.db"))
	require.NoError(t, err)
	defer store.Close()

	assert.Error(t, store.SaveRun(Run{InputDir: "a"}))
}

func TestStore_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyuml.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveRun(Run{ID: "r", Timestamp: time.Now().UTC()}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.RecentRuns(5)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Equal(t, path, store.Path())
}

func TestOpen_RejectsInvalidPaths(t *testing.T) {
	_, err := Open("   ")
	assert.Error(t, err)

	dir := t.TempDir()
	_, err = Open(dir)
	assert.Error(t, err, "directory path must be rejected")

	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	_, err = Open(filepath.Join(blocker, "pyuml.db"))
	assert.Error(t, err)
}
