package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoad(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "ledgers")
	store := NewFileStore(dir)
	now := time.Date(2026, time.March, 5, 14, 30, 7, 0, time.UTC)
	doc := NewDocument("run-1", sampleLedger().Snapshot(), now)

	location, err := store.Save(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dc_entries_Mar_05_2026_14_30_07.yaml"), location)

	info, err := os.Stat(location)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, doc.Snapshot(), loaded.Snapshot())
	assert.Equal(t, "run-1", loaded.RunID)
}

func TestFileStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())
	_, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 7\n"), 0o600))

	_, err := NewFileStore("").Load(context.Background(), path)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestFileStore_SaveUnwritableDir(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := NewFileStore(file).Save(context.Background(), NewDocument("r", sampleLedger().Snapshot(), time.Now()))
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	store, err := Open("/var/lib/dcdeploy", nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	store, err = Open("s3://ledgers/runs", nil)
	require.NoError(t, err)
	s3store, ok := store.(*S3Store)
	require.True(t, ok)
	assert.Equal(t, "ledgers", s3store.bucket)
	assert.Equal(t, "runs", s3store.prefix)
}
