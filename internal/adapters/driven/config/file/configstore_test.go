package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigStore_SetPersistsAsSections tests that dotted keys come
// back from a fresh store and land on disk as TOML tables.
func TestConfigStore_SetPersistsAsSections(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("textgen.provider", "openai"))
	require.NoError(t, store.Set("textgen.model", "gpt-4o-mini"))
	require.NoError(t, store.Set("stores.abstracts", "historical_abstracts"))
	require.NoError(t, store.Set("ingestion.max_overlap_tokens", 50))
	require.NoError(t, store.Set("tasks.backend", "sqlite"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "openai", reopened.GetString("textgen.provider"))
	assert.Equal(t, "gpt-4o-mini", reopened.GetString("textgen.model"))
	assert.Equal(t, "historical_abstracts", reopened.GetString("stores.abstracts"))
	assert.Equal(t, 50, reopened.GetInt("ingestion.max_overlap_tokens"))
	assert.Equal(t, "sqlite", reopened.GetString("tasks.backend"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[textgen]")
	assert.Contains(t, string(raw), "[ingestion]")
	assert.NotContains(t, string(raw), "textgen.provider = ")
}

// TestConfigStore_ReadsHandWrittenFile tests loading a config a user
// edited directly, including a nested graph section.
func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `[textgen]
provider = "googleai"
model = "gemini-2.5-flash"

[ingestion]
max_tokens_per_chunk = 512
poll_interval = "3s"

[graph]
uri = "bolt://localhost:7687"
username = "neo4j"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "googleai", store.GetString("textgen.provider"))
	assert.Equal(t, "gemini-2.5-flash", store.GetString("textgen.model"))
	assert.Equal(t, 512, store.GetInt("ingestion.max_tokens_per_chunk"))
	assert.Equal(t, "3s", store.GetString("ingestion.poll_interval"))
	assert.Equal(t, "bolt://localhost:7687", store.GetString("graph.uri"))
}

// TestConfigStore_TypedGetters tests miss and type-mismatch fallbacks.
func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("jobs.workers", 8))
	require.NoError(t, store.Set("server.address", "127.0.0.1:9090"))
	require.NoError(t, store.Set("mcp.readonly", true))

	t.Run("hit", func(t *testing.T) {
		assert.Equal(t, 8, store.GetInt("jobs.workers"))
		assert.Equal(t, "127.0.0.1:9090", store.GetString("server.address"))
		assert.True(t, store.GetBool("mcp.readonly"))
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := store.Get("graph.password")
		assert.False(t, ok)
		assert.Empty(t, store.GetString("graph.password"))
		assert.Zero(t, store.GetInt("graph.password"))
		assert.False(t, store.GetBool("graph.password"))
	})

	t.Run("wrong type", func(t *testing.T) {
		assert.Empty(t, store.GetString("jobs.workers"))
		assert.Zero(t, store.GetInt("server.address"))
		assert.False(t, store.GetBool("server.address"))
	})
}

// TestConfigStore_Int64FromTOML tests that integers decoded from disk
// read back through GetInt.
func TestConfigStore_Int64FromTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.toml"),
		[]byte("[jobs]\nworkers = 4\n"), 0o600,
	))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, store.GetInt("jobs.workers"))
}

// TestConfigStore_SecretsArePrivate tests the 0600 file mode, since the
// file carries API keys and database passwords.
func TestConfigStore_SecretsArePrivate(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("textgen.api_key", "sk-test"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// TestNewConfigStore_MissingAndCorrupt tests the empty-start and
// bad-file paths.
func TestNewConfigStore_MissingAndCorrupt(t *testing.T) {
	t.Run("no file starts empty", func(t *testing.T) {
		store, err := NewConfigStore(t.TempDir())
		require.NoError(t, err)
		_, ok := store.Get("textgen.provider")
		assert.False(t, ok)
	})

	t.Run("creates nested config dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "deep", "config")
		store, err := NewConfigStore(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	})

	t.Run("unparseable file fails open", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[textgen\n"), 0o600))
		store, err := NewConfigStore(dir)
		require.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("unusable config dir fails open", func(t *testing.T) {
		store, err := NewConfigStore("/dev/null/filesearch")
		require.Error(t, err)
		assert.Nil(t, store)
	})
}

// TestConfigStore_OverwriteKeepsSiblings tests that rewriting one key
// in a section leaves the rest of the section intact.
func TestConfigStore_OverwriteKeepsSiblings(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("stores.abstracts", "abstracts_store"))
	require.NoError(t, store.Set("stores.manuscripts", "manuscripts_store"))
	require.NoError(t, store.Set("stores.abstracts", "rare_abstracts"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "rare_abstracts", reopened.GetString("stores.abstracts"))
	assert.Equal(t, "manuscripts_store", reopened.GetString("stores.manuscripts"))
}
