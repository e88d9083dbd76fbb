package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store over a temp path with environment overrides
// neutralized.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvAPIKey, "")
	return NewStoreAt(filepath.Join(t.TempDir(), "credentials.yaml"), nil)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	cred := Credential{BaseURL: "http://localhost:8080", APIKey: "secret-key-123"}
	require.NoError(t, store.Save(cred))

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, cred.BaseURL, loaded.BaseURL)
	assert.Equal(t, cred.APIKey, loaded.APIKey)
	assert.True(t, store.Exists())
}

func TestSaveRejectsInvalidCredential(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		name string
		cred Credential
	}{
		{"empty base URL", Credential{APIKey: "k"}},
		{"empty API key", Credential{BaseURL: "http://localhost"}},
		{"not a URL", Credential{BaseURL: "not a url", APIKey: "k"}},
		{"wrong scheme", Credential{BaseURL: "ftp://host", APIKey: "k"}},
		{"no scheme", Credential{BaseURL: "example.com/api", APIKey: "k"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, store.Save(tc.cred))
		})
	}

	assert.False(t, store.Exists(), "invalid credentials must never be written")
}

func TestLoadMissingProfile(t *testing.T) {
	store := newTestStore(t)
	assert.Nil(t, store.Load())
	assert.False(t, store.Exists())
}

func TestLoadDegradesOnCorruptProfile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o750))

	// Unparseable YAML.
	require.NoError(t, os.WriteFile(store.Path(), []byte("{{{{"), 0o600))
	assert.Nil(t, store.Load())

	// Parseable YAML, undecodable values.
	require.NoError(t, os.WriteFile(store.Path(), []byte("base_url: '!!!'\napi_key: '!!!'\n"), 0o600))
	assert.Nil(t, store.Load())

	// Parseable, decodable, but incomplete.
	require.NoError(t, os.WriteFile(store.Path(), []byte("base_url: ''\napi_key: ''\n"), 0o600))
	assert.Nil(t, store.Load())
}

func TestValuesEncodedOnDisk(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(Credential{BaseURL: "http://ingest.internal", APIKey: "super-secret-key"}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	content := string(raw)
	assert.NotContains(t, content, "super-secret-key")
	assert.NotContains(t, content, "http://ingest.internal")

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(Credential{BaseURL: "http://localhost", APIKey: "k"}))

	store.Clear()
	assert.False(t, store.Exists())

	// Clearing a missing profile must not fail.
	store.Clear()
}

func TestEnvironmentOverridesProfile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(Credential{BaseURL: "http://from-file", APIKey: "file-key"}))

	t.Setenv(EnvAPIURL, "http://from-env")
	t.Setenv(EnvAPIKey, "env-key")

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "http://from-env", loaded.BaseURL)
	assert.Equal(t, "env-key", loaded.APIKey)

	// One variable alone is not a usable override.
	t.Setenv(EnvAPIKey, "")
	loaded = store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "http://from-file", loaded.BaseURL)
}

func TestRedactKey(t *testing.T) {
	assert.Equal(t, "", RedactKey(""))
	assert.Equal(t, "***", RedactKey("abcd"))
	assert.Equal(t, "abcd***", RedactKey("abcdefghij"))
	assert.False(t, strings.Contains(RedactKey("abcdefghij"), "efghij"))
}
