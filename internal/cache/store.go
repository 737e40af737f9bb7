package cache

import (
	"context"
	"fmt"

	"github.com/five82/trellotally/internal/config"
)

// Store is a string key/value store scoped to one namespace. It knows
// nothing about the structure of the values it holds.
type Store interface {
	// Get returns the value stored under key. ok is false when the key was
	// never set (or was cleared).
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set creates or overwrites key.
	Set(ctx context.Context, key, value string) error
	// ClearAll removes every key in the namespace.
	ClearAll(ctx context.Context) error
	Close() error
}

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg config.Cache) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return OpenFile(cfg.Path, cfg.Namespace)
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.Path, cfg.Namespace)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.RedisURL, cfg.Namespace)
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
