package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// File keeps the namespace as a table of a TOML document on disk. Every
// operation re-reads the document and every change rewrites it, so other
// namespaces (and other handles on the same file) are preserved.
type File struct {
	mu        sync.Mutex
	path      string
	namespace string
	doc       map[string]map[string]string
}

var _ Store = (*File)(nil)

// OpenFile loads path (a missing file is an empty cache).
func OpenFile(path, namespace string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("cache path is empty")
	}
	if namespace == "" {
		namespace = "default"
	}
	f := &File{path: path, namespace: namespace}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	f.doc = make(map[string]map[string]string)
	bytes, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache: %w", err)
	}
	if err := toml.Unmarshal(bytes, &f.doc); err != nil {
		return fmt.Errorf("parse cache: %w", err)
	}
	return nil
}

func (f *File) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	bytes, err := toml.Marshal(f.doc)
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.WriteFile(f.path, bytes, 0o600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return "", false, err
	}
	v, ok := f.doc[f.namespace][key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return err
	}
	table := f.doc[f.namespace]
	if table == nil {
		table = make(map[string]string)
		f.doc[f.namespace] = table
	}
	table[key] = value
	return f.save()
}

func (f *File) ClearAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(); err != nil {
		return err
	}
	if _, ok := f.doc[f.namespace]; !ok {
		return nil
	}
	delete(f.doc, f.namespace)
	return f.save()
}

func (f *File) Close() error { return nil }
