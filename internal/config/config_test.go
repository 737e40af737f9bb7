package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(envAPIKey, "")
	t.Setenv(envToken, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Trello.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.Trello.BaseURL, defaultBaseURL)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Fatalf("Backend = %q, want %q", cfg.Cache.Backend, BackendFile)
	}

	wantCache, err := expandPath(defaultDataDir + "/cache.toml")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if cfg.Cache.Path != wantCache {
		t.Fatalf("Cache.Path = %q, want %q", cfg.Cache.Path, wantCache)
	}
	if cfg.UI.Currency != "$" || cfg.UI.Theme != defaultTheme {
		t.Fatalf("UI = %#v, want defaults", cfg.UI)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.Trello.APIKey != "" || cfg.Trello.Token != "" {
		t.Fatalf("credentials = %#v, want empty", cfg.Trello)
	}
}

func TestLoad_ParsesAndTrimsTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(envAPIKey, "")
	t.Setenv(envToken, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_level = " DEBUG "

[trello]
api_key = "  key-1  "
token = "tok-1"

[cache]
backend = "SQLite"
path = "~/cache/tally.db"

[ui]
currency = "€"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Trello.APIKey != "key-1" || cfg.Trello.Token != "tok-1" {
		t.Fatalf("Trello = %#v, want trimmed credentials", cfg.Trello)
	}
	if cfg.Cache.Backend != BackendSQLite {
		t.Fatalf("Backend = %q, want %q", cfg.Cache.Backend, BackendSQLite)
	}
	if cfg.Cache.Path != filepath.Join(home, "cache", "tally.db") {
		t.Fatalf("Cache.Path = %q, want it under HOME", cfg.Cache.Path)
	}
	if cfg.UI.Currency != "€" {
		t.Fatalf("Currency = %q, want €", cfg.UI.Currency)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envAPIKey, "")
	t.Setenv(envToken, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(`
trello:
  api_key: yaml-key
  token: yaml-token
cache:
  backend: redis
  redis_url: redis://cache:6379/2
  namespace: tally-test
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Trello.APIKey != "yaml-key" || cfg.Trello.Token != "yaml-token" {
		t.Fatalf("Trello = %#v, want yaml credentials", cfg.Trello)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisURL != "redis://cache:6379/2" {
		t.Fatalf("Cache = %#v, want redis settings", cfg.Cache)
	}
	if cfg.Cache.Namespace != "tally-test" {
		t.Fatalf("Namespace = %q, want tally-test", cfg.Cache.Namespace)
	}
}

func TestLoad_EnvironmentOverridesCredentials(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envAPIKey, "env-key")
	t.Setenv(envToken, "env-token")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[trello]\napi_key = \"file-key\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Trello.APIKey != "env-key" || cfg.Trello.Token != "env-token" {
		t.Fatalf("Trello = %#v, want env credentials", cfg.Trello)
	}
}

func TestLoad_UnknownBackendFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"floppy\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "floppy") {
		t.Fatalf("Load error = %v, want unknown backend error", err)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_file = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestDefaultCachePath_PerBackend(t *testing.T) {
	if got := DefaultCachePath(BackendSQLite); !strings.HasSuffix(got, "cache.db") {
		t.Fatalf("DefaultCachePath(sqlite) = %q, want cache.db", got)
	}
	if got := DefaultCachePath(BackendFile); !strings.HasSuffix(got, "cache.toml") {
		t.Fatalf("DefaultCachePath(file) = %q, want cache.toml", got)
	}
}

func TestWithCacheBackend(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	same, err := cfg.WithCacheBackend("")
	if err != nil || same.Cache != cfg.Cache {
		t.Fatalf("WithCacheBackend(\"\") = %#v, %v, want unchanged", same.Cache, err)
	}

	sqlite, err := cfg.WithCacheBackend("SQLite")
	if err != nil {
		t.Fatalf("WithCacheBackend(sqlite) returned error: %v", err)
	}
	if sqlite.Cache.Backend != BackendSQLite || !strings.HasSuffix(sqlite.Cache.Path, "cache.db") {
		t.Fatalf("cache = %#v, want sqlite at cache.db", sqlite.Cache)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Fatalf("WithCacheBackend modified the receiver: %#v", cfg.Cache)
	}

	if _, err := cfg.WithCacheBackend("etcd"); err == nil {
		t.Fatalf("WithCacheBackend(etcd) returned nil error")
	}
}
