package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultWindowSize, cfg.Chunking.WindowSize)
	assert.Equal(t, DefaultOverlap, cfg.Chunking.Overlap)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
	assert.Equal(t, DefaultProvider, cfg.Embedding.Provider)
	assert.Equal(t, filepath.Join(DefaultStoreDir, "flat.index"), cfg.Storage.IndexPath)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docrag.toml")
	content := `
[chunking]
window_size = 600
overlap = 80

[embedding]
provider = "ollama"
model = "all-minilm"

[retrieval]
top_k = 8

[storage]
index_path = "store/custom.index"
metadata_path = "store/custom.json"
audit_db_path = "store/audit.db"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.Chunking.WindowSize)
	assert.Equal(t, 80, cfg.Chunking.Overlap)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, "all-minilm", cfg.Embedding.Model)
	assert.Equal(t, 8, cfg.Retrieval.TopK)
	assert.Equal(t, "store/audit.db", cfg.Storage.AuditDBPath)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWindowSize, cfg.Chunking.WindowSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"WINDOW_SIZE", "450")
	t.Setenv(EnvPrefix+"TOP_K", "2")
	t.Setenv(EnvPrefix+"PROVIDER", "ollama")
	t.Setenv(EnvPrefix+"API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 450, cfg.Chunking.WindowSize)
	assert.Equal(t, 2, cfg.Retrieval.TopK)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, "secret", cfg.Embedding.APIKey)
}

func TestLoad_MalformedIntEnvIsAnError(t *testing.T) {
	t.Setenv(EnvPrefix+"TOP_K", "four")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPrefix+"TOP_K")
	assert.Contains(t, err.Error(), "invalid integer")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"window below overlap", func(c *Config) { c.Chunking.WindowSize = 50; c.Chunking.Overlap = 50 }},
		{"zero window", func(c *Config) { c.Chunking.WindowSize = 0 }},
		{"zero topK", func(c *Config) { c.Retrieval.TopK = 0 }},
		{"unknown provider", func(c *Config) { c.Embedding.Provider = "bert" }},
		{"missing index path", func(c *Config) { c.Storage.IndexPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("chunking = ["), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
