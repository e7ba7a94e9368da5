package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drifterrors "github.com/driftlens/driftlens/internal/errors"
)

func TestLocalStorage_SaveAndLoad(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	data := []byte(`[{"CloudResourceItem":{"id":"vpc-1"},"IacResourceItem":null,"State":"Missing","ChangeLog":[]}]`)
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	path, err := store.SaveReport(data, at)
	require.NoError(t, err)
	assert.Contains(t, path, "report-20260314-093000.json")

	loaded, err := store.LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestLocalStorage_BaseDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, store.BaseDir())

	saved, err := store.SaveReport([]byte(`[]`), time.Now())
	require.NoError(t, err)
	assert.Contains(t, saved, store.BaseDir())
}

func TestLocalStorage_ListNewestFirst(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	older, err := store.SaveReport([]byte(`[]`), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	// Listing sorts by file mtime; separate the two writes
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	newer, err := store.SaveReport([]byte(`[]`), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	reports, err := store.ListReports()
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, newer, reports[0].Path)
	assert.Equal(t, older, reports[1].Path)

	latest, err := store.LatestReport()
	require.NoError(t, err)
	assert.Equal(t, newer, latest)
}

func TestLocalStorage_LatestWithEmptyHistory(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.LatestReport()
	require.Error(t, err)
	assert.True(t, drifterrors.IsType(err, drifterrors.ErrorTypeStorage))
}

func TestWriteFileAtomic_NoPartialFiles(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/report.json"

	require.NoError(t, writeFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, writeFileAtomic(path, []byte("second"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
