package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"pokedexd/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "pokedex", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.PokeAPI.BaseURL != "https://pokeapi.co/api/v2" {
		t.Fatalf("unexpected base url: %q", cfg.PokeAPI.BaseURL)
	}
	if cfg.Dex.MinID != 1 || cfg.Dex.MaxID != 1025 {
		t.Fatalf("unexpected dex bounds: %d..%d", cfg.Dex.MinID, cfg.Dex.MaxID)
	}
	if cfg.Input.DeviceName != "gpio-keys" {
		t.Fatalf("unexpected input device: %q", cfg.Input.DeviceName)
	}
	if got := cfg.SocketPath(); got != filepath.Join(cfg.Paths.LogDir, "pokedex.sock") {
		t.Fatalf("unexpected socket path: %q", got)
	}
	if got := cfg.DatabasePath(); got != filepath.Join(wantData, "pokedex.db") {
		t.Fatalf("unexpected database path: %q", got)
	}
}

func TestLoadReadsFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		"[pokeapi]",
		`base_url = "http://localhost:9999/api/"`,
		"max_retries = 5",
		"",
		"[dex]",
		"max_id = 151",
		"",
		"[logging]",
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.PokeAPI.BaseURL != "http://localhost:9999/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.PokeAPI.BaseURL)
	}
	if cfg.PokeAPI.MaxRetries != 5 {
		t.Fatalf("unexpected max retries: %d", cfg.PokeAPI.MaxRetries)
	}
	if cfg.Dex.MaxID != 151 {
		t.Fatalf("unexpected max id: %d", cfg.Dex.MaxID)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadDexRange(t *testing.T) {
	cfg := config.Default()
	cfg.Dex.MinID = 100
	cfg.Dex.MaxID = 50
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for inverted dex range")
	}

	cfg = config.Default()
	cfg.Dex.MinID = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for min_id below 1")
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown log format")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.PokeAPI.BaseURL != "https://pokeapi.co/api/v2" {
		t.Fatalf("unexpected sample base url: %q", cfg.PokeAPI.BaseURL)
	}
	if cfg.Input.DebounceMS != 200 {
		t.Fatalf("unexpected sample debounce: %d", cfg.Input.DebounceMS)
	}
}
