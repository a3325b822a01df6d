// Package config loads docrag configuration from a TOML file with
// environment overrides.
//
// Configuration is an explicit value handed to the pipeline constructor;
// there is no process-wide settings singleton. Two pipelines in one
// process can run with different configurations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values, applied before file and environment
// overrides.
const (
	DefaultWindowSize = 900
	DefaultOverlap    = 120
	DefaultTopK       = 4
	DefaultProvider   = "openai"
	DefaultHTTPAddr   = ":8080"
	DefaultStoreDir   = ".docrag"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "DOCRAG_"

// Config carries every option one docrag instance is scoped to.
type Config struct {
	// Chunking configures segmentation.
	Chunking ChunkingConfig `toml:"chunking"`

	// Embedding selects and configures the embedding provider.
	Embedding EmbeddingConfig `toml:"embedding"`

	// Retrieval configures query-time behaviour.
	Retrieval RetrievalConfig `toml:"retrieval"`

	// Storage locates the persisted index generation.
	Storage StorageConfig `toml:"storage"`

	// Server configures the HTTP shim.
	Server ServerConfig `toml:"server"`
}

// ChunkingConfig configures the segmentation window.
type ChunkingConfig struct {
	// WindowSize is the chunk window in characters.
	WindowSize int `toml:"window_size"`

	// Overlap is the overlap between consecutive windows in characters.
	Overlap int `toml:"overlap"`
}

// EmbeddingConfig selects the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama".
	Provider string `toml:"provider"`

	// Model is the embedding model identifier; empty selects the
	// provider default.
	Model string `toml:"model"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates against the provider. Usually supplied via
	// the DOCRAG_API_KEY environment variable rather than the file.
	APIKey string `toml:"api_key"`
}

// RetrievalConfig configures query-time behaviour.
type RetrievalConfig struct {
	// TopK is the maximum number of chunks a query retrieves.
	TopK int `toml:"top_k"`
}

// StorageConfig locates the persisted artifacts.
type StorageConfig struct {
	// IndexPath is the similarity-index file.
	IndexPath string `toml:"index_path"`

	// MetadataPath is the chunk-metadata file.
	MetadataPath string `toml:"metadata_path"`

	// AuditDBPath is the query audit log database. Empty disables
	// audit logging.
	AuditDBPath string `toml:"audit_db_path"`
}

// ServerConfig configures the HTTP shim.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Chunking: ChunkingConfig{
			WindowSize: DefaultWindowSize,
			Overlap:    DefaultOverlap,
		},
		Embedding: EmbeddingConfig{
			Provider: DefaultProvider,
		},
		Retrieval: RetrievalConfig{
			TopK: DefaultTopK,
		},
		Storage: StorageConfig{
			IndexPath:    filepath.Join(DefaultStoreDir, "flat.index"),
			MetadataPath: filepath.Join(DefaultStoreDir, "metadata.json"),
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
	}
}

// Load reads the TOML file at path (skipped when path is empty or the
// file does not exist), applies DOCRAG_* environment overrides, and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults plus environment are enough.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnv overlays DOCRAG_* environment variables onto cfg. A set but
// malformed integer variable is an error, not a silent fallback.
func applyEnv(cfg *Config) error {
	if v, ok, err := lookupInt("WINDOW_SIZE"); err != nil {
		return err
	} else if ok {
		cfg.Chunking.WindowSize = v
	}
	if v, ok, err := lookupInt("OVERLAP"); err != nil {
		return err
	} else if ok {
		cfg.Chunking.Overlap = v
	}
	if v, ok, err := lookupInt("TOP_K"); err != nil {
		return err
	} else if ok {
		cfg.Retrieval.TopK = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PROVIDER"); ok {
		cfg.Embedding.Provider = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "MODEL"); ok {
		cfg.Embedding.Model = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "BASE_URL"); ok {
		cfg.Embedding.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "API_KEY"); ok {
		cfg.Embedding.APIKey = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "INDEX_PATH"); ok {
		cfg.Storage.IndexPath = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "METADATA_PATH"); ok {
		cfg.Storage.MetadataPath = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "AUDIT_DB_PATH"); ok {
		cfg.Storage.AuditDBPath = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "HTTP_ADDR"); ok {
		cfg.Server.Addr = v
	}
	return nil
}

func lookupInt(key string) (int, bool, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s%s: invalid integer %q", EnvPrefix, key, v)
	}
	return n, true, nil
}

// Validate checks the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Chunking.WindowSize <= 0 || c.Chunking.Overlap <= 0 {
		return fmt.Errorf("chunking: window_size and overlap must be positive")
	}
	if c.Chunking.WindowSize <= c.Chunking.Overlap {
		return fmt.Errorf("chunking: window_size %d must exceed overlap %d",
			c.Chunking.WindowSize, c.Chunking.Overlap)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval: top_k must be positive")
	}
	switch c.Embedding.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("embedding: unknown provider %q", c.Embedding.Provider)
	}
	if c.Storage.IndexPath == "" || c.Storage.MetadataPath == "" {
		return fmt.Errorf("storage: index_path and metadata_path are required")
	}
	return nil
}
