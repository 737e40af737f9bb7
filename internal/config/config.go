package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config captures everything trellotally reads at startup.
type Config struct {
	Trello   Trello
	Cache    Cache
	UI       UI
	LogFile  string
	LogLevel string
}

// Trello holds the API endpoint and the pre-provisioned credentials.
type Trello struct {
	APIKey  string
	Token   string
	BaseURL string
}

// Cache selects and locates the local cache backend.
type Cache struct {
	Backend   string // file, sqlite, redis or memory
	Path      string
	RedisURL  string
	Namespace string
}

// UI holds presentation settings.
type UI struct {
	Theme    string
	Currency string
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const (
	defaultConfigPath   = "~/.config/trellotally/config.toml"
	defaultDataDir      = "~/.local/share/trellotally"
	defaultLogFile      = "~/.local/state/trellotally/trellotally.log"
	defaultLogLevel     = "info"
	defaultBaseURL      = "https://api.trello.com/1"
	defaultRedisURL     = "redis://127.0.0.1:6379/0"
	defaultNamespace    = "trellotally"
	defaultTheme        = "Nightfox"
	defaultCurrency     = "$"
	envAPIKey           = "TRELLO_API_KEY"
	envToken            = "TRELLO_TOKEN"
	defaultCacheBackend = BackendFile
)

type rawConfig struct {
	Trello struct {
		APIKey  string `toml:"api_key" yaml:"api_key"`
		Token   string `toml:"token" yaml:"token"`
		BaseURL string `toml:"base_url" yaml:"base_url"`
	} `toml:"trello" yaml:"trello"`
	Cache struct {
		Backend   string `toml:"backend" yaml:"backend"`
		Path      string `toml:"path" yaml:"path"`
		RedisURL  string `toml:"redis_url" yaml:"redis_url"`
		Namespace string `toml:"namespace" yaml:"namespace"`
	} `toml:"cache" yaml:"cache"`
	UI struct {
		Theme    string `toml:"theme" yaml:"theme"`
		Currency string `toml:"currency" yaml:"currency"`
	} `toml:"ui" yaml:"ui"`
	LogFile  string `toml:"log_file" yaml:"log_file"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Load locates and parses the config, falling back to defaults when missing.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
// TRELLO_API_KEY and TRELLO_TOKEN override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := unmarshal(resolved, bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	return build(raw)
}

func unmarshal(path string, data []byte, raw *rawConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, raw)
	default:
		return toml.Unmarshal(data, raw)
	}
}

func build(raw rawConfig) (Config, error) {
	cfg := Config{
		Trello: Trello{
			APIKey:  strings.TrimSpace(raw.Trello.APIKey),
			Token:   strings.TrimSpace(raw.Trello.Token),
			BaseURL: orDefault(raw.Trello.BaseURL, defaultBaseURL),
		},
		Cache: Cache{
			Backend:   strings.ToLower(orDefault(raw.Cache.Backend, defaultCacheBackend)),
			RedisURL:  orDefault(raw.Cache.RedisURL, defaultRedisURL),
			Namespace: orDefault(raw.Cache.Namespace, defaultNamespace),
		},
		UI: UI{
			Theme:    orDefault(raw.UI.Theme, defaultTheme),
			Currency: orDefault(raw.UI.Currency, defaultCurrency),
		},
		LogFile:  mustExpand(orDefault(raw.LogFile, defaultLogFile)),
		LogLevel: strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel)),
	}

	if v := strings.TrimSpace(os.Getenv(envAPIKey)); v != "" {
		cfg.Trello.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(envToken)); v != "" {
		cfg.Trello.Token = v
	}

	switch cfg.Cache.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	cachePath := strings.TrimSpace(raw.Cache.Path)
	if cachePath == "" {
		cachePath = DefaultCachePath(cfg.Cache.Backend)
	}
	cfg.Cache.Path = mustExpand(cachePath)

	return cfg, nil
}

// DefaultCachePath returns the on-disk location used by a file-backed cache
// backend when none is configured.
func DefaultCachePath(backend string) string {
	switch backend {
	case BackendSQLite:
		return defaultDataDir + "/cache.db"
	default:
		return defaultDataDir + "/cache.toml"
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// WithCacheBackend returns a copy of c using backend. Switching to a
// different backend also moves the cache to that backend's default path.
func (c Config) WithCacheBackend(backend string) (Config, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	switch backend {
	case "", c.Cache.Backend:
		return c, nil
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown cache backend %q", backend)
	}
	c.Cache.Backend = backend
	c.Cache.Path = mustExpand(DefaultCachePath(backend))
	return c, nil
}
