package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "ui.toml"), nil)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)
	st := store.Load()
	require.NotNil(t, st)
	assert.Empty(t, st.Tables)
}

func TestSetColumnPersists(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetColumn("channels", "description", true))
	require.NoError(t, store.SetColumn("channels", "video_count", false))
	require.NoError(t, store.SetColumn("videos", "published_at", false))

	// A fresh store over the same file sees the same overrides.
	reopened := NewStoreAt(store.Path(), nil)
	channels := reopened.TableColumns("channels")
	assert.Equal(t, map[string]bool{"description": true, "video_count": false}, channels)

	videos := reopened.TableColumns("videos")
	assert.Equal(t, map[string]bool{"published_at": false}, videos)

	assert.Empty(t, reopened.TableColumns("jobs"))
}

func TestSetColumnOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetColumn("channels", "description", false))
	require.NoError(t, store.SetColumn("channels", "description", true))

	assert.Equal(t, map[string]bool{"description": true}, store.TableColumns("channels"))
}

func TestResetTable(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetColumn("channels", "description", true))
	require.NoError(t, store.SetColumn("videos", "title", false))

	require.NoError(t, store.ResetTable("channels"))

	assert.Empty(t, store.TableColumns("channels"))
	assert.Equal(t, map[string]bool{"title": false}, store.TableColumns("videos"))

	// Resetting an unknown table is a no-op.
	require.NoError(t, store.ResetTable("does-not-exist"))
}

func TestLoadDegradesOnCorruptFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o750))
	require.NoError(t, os.WriteFile(store.Path(), []byte("not [valid toml"), 0o600))

	st := store.Load()
	require.NotNil(t, st)
	assert.Empty(t, st.Tables)

	// The store stays writable after a corrupt read.
	require.NoError(t, store.SetColumn("channels", "description", true))
	assert.Equal(t, map[string]bool{"description": true}, store.TableColumns("channels"))
}

func TestTableColumnsReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetColumn("channels", "description", true))

	overrides := store.TableColumns("channels")
	overrides["description"] = false
	overrides["injected"] = true

	assert.Equal(t, map[string]bool{"description": true}, store.TableColumns("channels"))
}
