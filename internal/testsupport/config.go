package testsupport

import (
	"path/filepath"
	"testing"

	"pokedexd/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.PokeAPI.MaxRetries = 1
	cfg.Populate.PageDelayMS = 0
	cfg.Populate.FetchDelayMS = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}

	return &cfg
}

// WithDexRange overrides the browsable identifier bounds.
func WithDexRange(minID, maxID int64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Dex.MinID = minID
		cfg.Dex.MaxID = maxID
	}
}

// WithBaseURL points the API client at a test server.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.PokeAPI.BaseURL = url
	}
}
